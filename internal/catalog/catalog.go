// Package catalog holds the immutable reference data of the questionnaire:
// problem categories with their questions, support environments, program
// steps and the rule table that maps answers to a recommended plan.
//
// The built-in catalogue is embedded as YAML and parsed once. Alternative
// catalogues can be loaded from disk; every catalogue is validated before use.
package catalog

import (
	_ "embed"
	"fmt"
	"os"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/simplestep/pathfinder/internal/models"
)

//go:embed catalog.yaml
var embeddedCatalog []byte

// Rule is one entry of the recommendation rule table.
type Rule struct {
	Key  models.RuleKey
	Plan models.RecommendedPlan
}

// Catalog is a validated, read-only set of reference tables.
// All accessors return copies; the catalogue itself never changes after Parse.
type Catalog struct {
	categories   []models.Category
	environments []models.Environment
	steps        []models.Step
	stepIndex    map[models.StepID]int
	rules        []Rule
	ruleIndex    map[models.RuleKey]int
	defaultPlan  models.RecommendedPlan
}

var (
	defaultOnce    sync.Once
	defaultCatalog *Catalog
)

// Default returns the built-in catalogue.
// It panics if the embedded document is invalid, which is a build defect.
func Default() *Catalog {
	defaultOnce.Do(func() {
		c, err := Parse(embeddedCatalog)
		if err != nil {
			panic(fmt.Sprintf("catalog: embedded catalogue is invalid: %v", err))
		}
		defaultCatalog = c
	})
	return defaultCatalog
}

// Load reads and validates a catalogue file.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog file: %w", err)
	}
	c, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("invalid catalog %s: %w", path, err)
	}
	return c, nil
}

// Categories returns all problem categories in presentation order.
func (c *Catalog) Categories() []models.Category {
	out := make([]models.Category, len(c.categories))
	for i, cat := range c.categories {
		out[i] = copyCategory(cat)
	}
	return out
}

// Category returns the reference record of a problem category.
func (c *Catalog) Category(id models.ProblemCategory) (models.Category, bool) {
	for _, cat := range c.categories {
		if cat.ID == id {
			return copyCategory(cat), true
		}
	}
	return models.Category{}, false
}

// HasQuestion reports whether questionID belongs to the category.
func (c *Catalog) HasQuestion(id models.ProblemCategory, questionID string) bool {
	for _, cat := range c.categories {
		if cat.ID != id {
			continue
		}
		for _, q := range cat.Questions {
			if q.ID == questionID {
				return true
			}
		}
	}
	return false
}

// Environments returns all support environments in presentation order.
func (c *Catalog) Environments() []models.Environment {
	out := make([]models.Environment, len(c.environments))
	copy(out, c.environments)
	return out
}

// Environment returns the reference record of a support environment.
func (c *Catalog) Environment(id models.SupportEnvironment) (models.Environment, bool) {
	for _, env := range c.environments {
		if env.ID == id {
			return env, true
		}
	}
	return models.Environment{}, false
}

// Steps returns all program steps in ascending order.
func (c *Catalog) Steps() []models.Step {
	out := make([]models.Step, len(c.steps))
	for i, s := range c.steps {
		out[i] = copyStep(s)
	}
	return out
}

// Step returns the reference record of a program step.
func (c *Catalog) Step(id models.StepID) (models.Step, bool) {
	i, ok := c.stepIndex[id]
	if !ok {
		return models.Step{}, false
	}
	return copyStep(c.steps[i]), true
}

// Rule looks up the plan stored for key. The returned plan is a copy.
func (c *Catalog) Rule(key models.RuleKey) (models.RecommendedPlan, bool) {
	i, ok := c.ruleIndex[key]
	if !ok {
		return models.RecommendedPlan{}, false
	}
	return c.rules[i].Plan.Clone(), true
}

// Rules returns the rule table in document order.
func (c *Catalog) Rules() []Rule {
	out := make([]Rule, len(c.rules))
	for i, r := range c.rules {
		out[i] = Rule{Key: r.Key, Plan: r.Plan.Clone()}
	}
	return out
}

// DefaultPlan returns the fallback plan used when no rule applies.
func (c *Catalog) DefaultPlan() models.RecommendedPlan {
	return c.defaultPlan.Clone()
}

func copyCategory(cat models.Category) models.Category {
	questions := make([]models.Question, len(cat.Questions))
	copy(questions, cat.Questions)
	cat.Questions = questions
	return cat
}

func copyStep(s models.Step) models.Step {
	details := make([]string, len(s.Details))
	copy(details, s.Details)
	s.Details = details
	return s
}

// document mirrors the YAML layout of a catalogue file.
type document struct {
	DefaultPlan  planYAML          `yaml:"default_plan"`
	Categories   []categoryYAML    `yaml:"categories"`
	Environments []environmentYAML `yaml:"environments"`
	Steps        []stepYAML        `yaml:"steps"`
	Rules        []ruleYAML        `yaml:"rules"`
}

type planYAML struct {
	Name  string   `yaml:"name"`
	Steps []string `yaml:"steps"`
}

type categoryYAML struct {
	ID        string         `yaml:"id"`
	Title     string         `yaml:"title"`
	Icon      string         `yaml:"icon"`
	Questions []questionYAML `yaml:"questions"`
}

type questionYAML struct {
	ID    string `yaml:"id"`
	Label string `yaml:"label"`
	Other bool   `yaml:"other"`
}

type environmentYAML struct {
	ID       string `yaml:"id"`
	Title    string `yaml:"title"`
	Subtitle string `yaml:"subtitle"`
}

type stepYAML struct {
	ID           string   `yaml:"id"`
	DiagramTitle string   `yaml:"diagram_title"`
	Title        string   `yaml:"title"`
	Description  string   `yaml:"description"`
	Details      []string `yaml:"details"`
}

type ruleYAML struct {
	Categories  []string `yaml:"categories"`
	Environment string   `yaml:"environment"`
	Name        string   `yaml:"name"`
	Steps       []string `yaml:"steps"`
}

// Parse decodes and validates a YAML catalogue.
func Parse(data []byte) (*Catalog, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse catalog: %w", err)
	}

	c := &Catalog{
		stepIndex: make(map[models.StepID]int),
		ruleIndex: make(map[models.RuleKey]int),
	}

	if err := c.buildCategories(doc.Categories); err != nil {
		return nil, err
	}
	if err := c.buildEnvironments(doc.Environments); err != nil {
		return nil, err
	}
	if err := c.buildSteps(doc.Steps); err != nil {
		return nil, err
	}

	defaultSteps, err := c.stepIDs(doc.DefaultPlan.Steps)
	if err != nil {
		return nil, fmt.Errorf("default_plan: %w", err)
	}
	if doc.DefaultPlan.Name == "" {
		return nil, fmt.Errorf("default_plan: name is required")
	}
	c.defaultPlan = models.RecommendedPlan{Name: doc.DefaultPlan.Name, Steps: defaultSteps}

	if err := c.buildRules(doc.Rules); err != nil {
		return nil, err
	}

	return c, nil
}

func (c *Catalog) buildCategories(in []categoryYAML) error {
	seen := make(map[models.ProblemCategory]bool)
	for i, raw := range in {
		id := models.ProblemCategory(raw.ID)
		if !id.IsValid() {
			return fmt.Errorf("categories[%d]: unknown category %q", i, raw.ID)
		}
		if seen[id] {
			return fmt.Errorf("categories[%d]: duplicate category %q", i, raw.ID)
		}
		seen[id] = true

		cat := models.Category{ID: id, Title: raw.Title, Icon: raw.Icon}
		questionIDs := make(map[string]bool)
		otherCount := 0
		for j, q := range raw.Questions {
			if q.ID == "" {
				return fmt.Errorf("categories[%d].questions[%d]: id is required", i, j)
			}
			if questionIDs[q.ID] {
				return fmt.Errorf("category %s: duplicate question %q", id, q.ID)
			}
			questionIDs[q.ID] = true
			if q.Other {
				otherCount++
			}
			cat.Questions = append(cat.Questions, models.Question{ID: q.ID, Label: q.Label, Other: q.Other})
		}
		if otherCount != 1 {
			return fmt.Errorf("category %s: expected exactly one other question, got %d", id, otherCount)
		}
		c.categories = append(c.categories, cat)
	}

	for _, id := range models.Categories {
		if !seen[id] {
			return fmt.Errorf("categories: missing category %q", id)
		}
	}
	return nil
}

func (c *Catalog) buildEnvironments(in []environmentYAML) error {
	seen := make(map[models.SupportEnvironment]bool)
	for i, raw := range in {
		id := models.SupportEnvironment(raw.ID)
		if !id.IsValid() {
			return fmt.Errorf("environments[%d]: unknown environment %q", i, raw.ID)
		}
		if seen[id] {
			return fmt.Errorf("environments[%d]: duplicate environment %q", i, raw.ID)
		}
		seen[id] = true
		c.environments = append(c.environments, models.Environment{ID: id, Title: raw.Title, Subtitle: raw.Subtitle})
	}

	for _, id := range models.Environments {
		if !seen[id] {
			return fmt.Errorf("environments: missing environment %q", id)
		}
	}
	return nil
}

func (c *Catalog) buildSteps(in []stepYAML) error {
	for i, raw := range in {
		id := models.StepID(raw.ID)
		if id.Number() <= 0 {
			return fmt.Errorf("steps[%d]: malformed step id %q", i, raw.ID)
		}
		if _, dup := c.stepIndex[id]; dup {
			return fmt.Errorf("steps[%d]: duplicate step %q", i, raw.ID)
		}
		if i > 0 && id.Number() <= c.steps[i-1].ID.Number() {
			return fmt.Errorf("steps[%d]: step %q is out of order", i, raw.ID)
		}
		c.stepIndex[id] = len(c.steps)
		c.steps = append(c.steps, models.Step{
			ID:           id,
			DiagramTitle: raw.DiagramTitle,
			Title:        raw.Title,
			Description:  raw.Description,
			Details:      raw.Details,
		})
	}
	return nil
}

func (c *Catalog) buildRules(in []ruleYAML) error {
	for i, raw := range in {
		var set models.CategorySet
		for _, name := range raw.Categories {
			cat := models.ProblemCategory(name)
			if !cat.IsValid() {
				return fmt.Errorf("rules[%d]: unknown category %q", i, name)
			}
			set = set.With(cat)
		}
		if set.IsEmpty() {
			return fmt.Errorf("rules[%d]: at least one category is required", i)
		}

		env := models.SupportEnvironment(raw.Environment)
		if !env.IsValid() {
			return fmt.Errorf("rules[%d]: unknown environment %q", i, raw.Environment)
		}
		if raw.Name == "" {
			return fmt.Errorf("rules[%d]: name is required", i)
		}

		steps, err := c.stepIDs(raw.Steps)
		if err != nil {
			return fmt.Errorf("rules[%d]: %w", i, err)
		}

		key := models.RuleKey{Categories: set, Environment: env}
		if _, dup := c.ruleIndex[key]; dup {
			return fmt.Errorf("rules[%d]: duplicate rule for %s", i, key)
		}
		c.ruleIndex[key] = len(c.rules)
		c.rules = append(c.rules, Rule{
			Key:  key,
			Plan: models.RecommendedPlan{Name: raw.Name, Steps: steps},
		})
	}
	return nil
}

// stepIDs converts raw identifiers, rejecting unknown and repeated steps.
func (c *Catalog) stepIDs(raw []string) ([]models.StepID, error) {
	ids := make([]models.StepID, 0, len(raw))
	seen := make(map[models.StepID]bool)
	for _, s := range raw {
		id := models.StepID(s)
		if _, ok := c.stepIndex[id]; !ok {
			return nil, fmt.Errorf("unknown step %q", s)
		}
		if seen[id] {
			return nil, fmt.Errorf("duplicate step %q", s)
		}
		seen[id] = true
		ids = append(ids, id)
	}
	return ids, nil
}
