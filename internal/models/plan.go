package models

import (
	"strconv"
	"strings"
)

// StepID identifies one of the fixed intervention program stages.
type StepID string

// Program step identifiers
const (
	Step1 StepID = "STEP1"
	Step2 StepID = "STEP2"
	Step3 StepID = "STEP3"
	Step4 StepID = "STEP4"
)

const stepPrefix = "STEP"

// Number returns the numeric suffix of the step identifier, or 0 if malformed.
func (s StepID) Number() int {
	if !strings.HasPrefix(string(s), stepPrefix) {
		return 0
	}
	n, err := strconv.Atoi(strings.TrimPrefix(string(s), stepPrefix))
	if err != nil || n < 0 {
		return 0
	}
	return n
}

// Step is the reference record for a program stage.
type Step struct {
	ID           StepID
	DiagramTitle string   // Short name used in plan listings
	Title        string   // Headline
	Description  string   // Paragraph describing the program
	Details      []string // Bullet points
}

// Label returns "STEP n: DiagramTitle".
func (s Step) Label() string {
	return stepPrefix + " " + strconv.Itoa(s.ID.Number()) + ": " + s.DiagramTitle
}

// RecommendedPlan is a named, ordered sequence of program steps.
// Plans are values; callers must not modify Steps of a plan they did not create.
type RecommendedPlan struct {
	Name  string
	Steps []StepID
}

// HasSteps reports whether the plan recommends at least one step.
func (p RecommendedPlan) HasSteps() bool {
	return len(p.Steps) > 0
}

// Clone returns a copy that shares no memory with p.
func (p RecommendedPlan) Clone() RecommendedPlan {
	steps := make([]StepID, len(p.Steps))
	copy(steps, p.Steps)
	return RecommendedPlan{Name: p.Name, Steps: steps}
}

// Equal reports whether both plans have the same name and step sequence.
func (p RecommendedPlan) Equal(other RecommendedPlan) bool {
	if p.Name != other.Name || len(p.Steps) != len(other.Steps) {
		return false
	}
	for i := range p.Steps {
		if p.Steps[i] != other.Steps[i] {
			return false
		}
	}
	return true
}

// RuleKey identifies one entry of the recommendation rule table.
type RuleKey struct {
	Categories  CategorySet
	Environment SupportEnvironment
}

// String renders the key as "<sorted categories>_<environment>",
// e.g. "behavior_language_home".
func (k RuleKey) String() string {
	return k.Categories.String() + "_" + string(k.Environment)
}
