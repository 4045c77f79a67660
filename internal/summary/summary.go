// Package summary renders a completed diagnosis and its recommended plan as
// human-readable text for the contact submission, and as Markdown/HTML for
// exports.
package summary

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/yuin/goldmark"

	"github.com/simplestep/pathfinder/internal/catalog"
	"github.com/simplestep/pathfinder/internal/diagnosis"
	"github.com/simplestep/pathfinder/internal/models"
)

// Fixed texts used in the summaries.
const (
	NoStepsMessage    = "추천된 세부 프로그램이 없습니다. 전문가 상담을 통해 결정됩니다."
	NoEnvironmentText = "선택 안함"
	yesText           = "예"
	noText            = "아니오"
)

// Formatter renders summaries using the labels of a catalogue.
// All methods are pure.
type Formatter struct {
	catalog  *catalog.Catalog
	markdown goldmark.Markdown
}

// NewFormatter creates a Formatter. A nil catalogue selects the built-in one.
func NewFormatter(c *catalog.Catalog) *Formatter {
	if c == nil {
		c = catalog.Default()
	}
	return &Formatter{
		catalog:  c,
		markdown: goldmark.New(),
	}
}

// Diagnosis renders the answers of every active category, in fixed order,
// followed by the chosen support environment.
func (f *Formatter) Diagnosis(data diagnosis.Data) string {
	var sb strings.Builder
	sb.WriteString("진단 결과:\n\n")
	sb.WriteString("문제 영역:\n")

	for _, id := range models.Categories {
		if !data.IsActive(id) {
			continue
		}
		cat, ok := f.catalog.Category(id)
		if !ok {
			continue
		}
		fmt.Fprintf(&sb, "\n[%s]\n", cat.Title)
		for _, q := range cat.Questions {
			fmt.Fprintf(&sb, "- %s: %s\n", q.Label, yesNo(data.Answer(id, q.ID)))
		}
	}

	// The environment is written as its display label, never its id.
	fmt.Fprintf(&sb, "\n지원 환경: %s\n", f.EnvironmentLabel(data.Environment()))
	return sb.String()
}

// EnvironmentLabel returns the display label of env, or NoEnvironmentText.
func (f *Formatter) EnvironmentLabel(env models.SupportEnvironment) string {
	if env == models.EnvironmentNone {
		return NoEnvironmentText
	}
	if e, ok := f.catalog.Environment(env); ok {
		return e.Label()
	}
	return string(env)
}

// Plan renders every step of the plan with its description and details.
// A plan without steps renders NoStepsMessage regardless of its name.
func (f *Formatter) Plan(plan models.RecommendedPlan) string {
	if !plan.HasSteps() {
		return NoStepsMessage
	}

	var sb strings.Builder
	sb.WriteString("추천된 플랜의 세부 내용:\n\n")
	for _, id := range plan.Steps {
		step, ok := f.catalog.Step(id)
		if !ok {
			continue
		}
		fmt.Fprintf(&sb, "[%s]\n", step.Label())
		// The step headline follows the label so the submitted text names
		// each program, not only its diagram title.
		if step.Title != "" {
			fmt.Fprintf(&sb, "%s\n", step.Title)
		}
		fmt.Fprintf(&sb, "%s\n", step.Description)
		sb.WriteString("주요 내용:\n")
		for _, detail := range step.Details {
			fmt.Fprintf(&sb, "- %s\n", detail)
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

// PlanDisplay returns the one-line plan description used to pre-fill the
// contact form: step labels joined by commas, or the plan name when the
// plan has no steps.
func (f *Formatter) PlanDisplay(plan models.RecommendedPlan) string {
	if !plan.HasSteps() {
		return plan.Name
	}
	labels := make([]string, 0, len(plan.Steps))
	for _, id := range plan.Steps {
		if step, ok := f.catalog.Step(id); ok {
			labels = append(labels, step.Label())
		}
	}
	return strings.Join(labels, ", ")
}

// PlanMarkdown renders the plan as a Markdown document.
func (f *Formatter) PlanMarkdown(plan models.RecommendedPlan) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "# %s\n\n", plan.Name)

	if !plan.HasSteps() {
		sb.WriteString(NoStepsMessage)
		sb.WriteString("\n")
		return sb.String()
	}

	for _, id := range plan.Steps {
		step, ok := f.catalog.Step(id)
		if !ok {
			continue
		}
		fmt.Fprintf(&sb, "## %s\n\n", step.Label())
		if step.Title != "" {
			fmt.Fprintf(&sb, "**%s**\n\n", step.Title)
		}
		if step.Description != "" {
			fmt.Fprintf(&sb, "%s\n\n", step.Description)
		}
		for _, detail := range step.Details {
			fmt.Fprintf(&sb, "- %s\n", detail)
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

// PlanHTML converts PlanMarkdown to HTML.
func (f *Formatter) PlanHTML(plan models.RecommendedPlan) (string, error) {
	var buf bytes.Buffer
	if err := f.markdown.Convert([]byte(f.PlanMarkdown(plan)), &buf); err != nil {
		return "", fmt.Errorf("failed to render plan html: %w", err)
	}
	return buf.String(), nil
}

func yesNo(v bool) string {
	if v {
		return yesText
	}
	return noText
}
