// Package diagnosis collects the questionnaire answers and produces the
// immutable snapshot that plan resolution and summaries work from.
package diagnosis

import (
	"errors"
	"fmt"

	"github.com/simplestep/pathfinder/internal/catalog"
	"github.com/simplestep/pathfinder/internal/models"
)

var (
	// ErrMissingEnvironment is returned when completing without a support environment.
	ErrMissingEnvironment = errors.New("support environment not selected")

	// ErrInvalidQuestion is returned when a question is not defined for the category.
	ErrInvalidQuestion = errors.New("unknown question")

	// ErrInvalidEnvironment is returned for an unknown support environment.
	ErrInvalidEnvironment = errors.New("unknown support environment")
)

// Answers maps question ids to checkbox values, per category.
type Answers map[models.ProblemCategory]map[string]bool

// clone returns a deep copy of a.
func (a Answers) clone() Answers {
	out := make(Answers, len(a))
	for cat, questions := range a {
		q := make(map[string]bool, len(questions))
		for id, v := range questions {
			q[id] = v
		}
		out[cat] = q
	}
	return out
}

// State accumulates answers while the diagnosis screen is open.
// It is not safe for concurrent use.
type State struct {
	catalog     *catalog.Catalog
	answers     Answers
	environment models.SupportEnvironment
}

// NewState creates a State with every question of the catalogue unchecked.
// A nil catalogue selects the built-in one.
func NewState(c *catalog.Catalog) *State {
	if c == nil {
		c = catalog.Default()
	}
	answers := make(Answers)
	for _, cat := range c.Categories() {
		ids := cat.QuestionIDs()
		questions := make(map[string]bool, len(ids))
		for _, id := range ids {
			questions[id] = false
		}
		answers[cat.ID] = questions
	}
	return &State{catalog: c, answers: answers}
}

// SetAnswer records one checkbox value.
func (s *State) SetAnswer(category models.ProblemCategory, questionID string, value bool) error {
	if !s.catalog.HasQuestion(category, questionID) {
		return fmt.Errorf("%w: %s.%s", ErrInvalidQuestion, category, questionID)
	}
	s.answers[category][questionID] = value
	return nil
}

// Answer returns the current value of one checkbox.
func (s *State) Answer(category models.ProblemCategory, questionID string) bool {
	return s.answers[category][questionID]
}

// SetEnvironment replaces the environment choice.
// EnvironmentNone clears it.
func (s *State) SetEnvironment(env models.SupportEnvironment) error {
	if env != models.EnvironmentNone && !env.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidEnvironment, env)
	}
	s.environment = env
	return nil
}

// Environment returns the current environment choice.
func (s *State) Environment() models.SupportEnvironment {
	return s.environment
}

// IsCategorySelected reports whether any checkbox of the category is set.
func (s *State) IsCategorySelected(category models.ProblemCategory) bool {
	return anyTrue(s.answers[category])
}

// Complete validates the answers and returns an immutable snapshot.
// It fails with ErrMissingEnvironment and leaves the state untouched
// when no environment has been chosen.
func (s *State) Complete() (Data, error) {
	if s.environment == models.EnvironmentNone {
		return Data{}, ErrMissingEnvironment
	}
	return Data{answers: s.answers.clone(), environment: s.environment}, nil
}

// Data is the immutable snapshot of a completed diagnosis.
// Copies share state safely because nothing mutates it after construction.
type Data struct {
	answers     Answers
	environment models.SupportEnvironment
}

// NewData builds a snapshot directly from answers.
// Answers are copied; env may be EnvironmentNone.
func NewData(answers Answers, env models.SupportEnvironment) Data {
	return Data{answers: answers.clone(), environment: env}
}

// Answer returns the recorded value of one checkbox.
func (d Data) Answer(category models.ProblemCategory, questionID string) bool {
	return d.answers[category][questionID]
}

// Answers returns a copy of the answers of one category.
func (d Data) Answers(category models.ProblemCategory) map[string]bool {
	out := make(map[string]bool, len(d.answers[category]))
	for id, v := range d.answers[category] {
		out[id] = v
	}
	return out
}

// Environment returns the chosen environment, or EnvironmentNone.
func (d Data) Environment() models.SupportEnvironment {
	return d.environment
}

// ActiveCategories returns the categories with at least one checked box.
// The "other" flag counts like any other question.
func (d Data) ActiveCategories() models.CategorySet {
	var active models.CategorySet
	for _, cat := range models.Categories {
		if anyTrue(d.answers[cat]) {
			active = active.With(cat)
		}
	}
	return active
}

// IsActive reports whether the category has at least one checked box.
func (d Data) IsActive(category models.ProblemCategory) bool {
	return anyTrue(d.answers[category])
}

func anyTrue(values map[string]bool) bool {
	for _, v := range values {
		if v {
			return true
		}
	}
	return false
}
