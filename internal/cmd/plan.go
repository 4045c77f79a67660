package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/simplestep/pathfinder/internal/diagnosis"
	"github.com/simplestep/pathfinder/internal/export"
	"github.com/simplestep/pathfinder/internal/logger"
	"github.com/simplestep/pathfinder/internal/models"
	"github.com/simplestep/pathfinder/internal/resolver"
	"github.com/simplestep/pathfinder/internal/summary"
)

// Plan output formats
const (
	formatText     = "text"
	formatMarkdown = "markdown"
	formatHTML     = "html"
)

// NewPlanCommand creates the plan command
func NewPlanCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Resolve the recommended plan without the interactive session",
		Long: `Resolve the recommended plan for a set of problem categories and a
support environment, and print it or write it to a file.

Categories: language, behavior, development (repeat the flag or separate with commas).
Environments: home, expert, institution.
No category selects the expert consultation plan.

Examples:
  pathfinder plan --category language --env home
  pathfinder plan --category language,behavior --env expert --format markdown
  pathfinder plan --category development --env institution --format html --output plan.html`,
		Args: cobra.NoArgs,
		RunE: runPlan,
	}

	cmd.Flags().StringSlice("category", nil, "Problem category (language, behavior, development)")
	cmd.Flags().String("env", "", "Support environment (home, expert, institution)")
	cmd.Flags().String("format", formatText, "Output format: text, markdown, html")
	cmd.Flags().String("output", "", "Write the plan to this file instead of stdout")

	return cmd
}

func runPlan(cmd *cobra.Command, args []string) error {
	rawCategories, _ := cmd.Flags().GetStringSlice("category")
	rawEnv, _ := cmd.Flags().GetString("env")
	format, _ := cmd.Flags().GetString("format")
	output, _ := cmd.Flags().GetString("output")

	active, err := parseCategories(rawCategories)
	if err != nil {
		return err
	}
	env, err := parseEnvironment(rawEnv)
	if err != nil {
		return err
	}
	format = strings.ToLower(format)
	if format != formatText && format != formatMarkdown && format != formatHTML {
		return fmt.Errorf("invalid format %q, must be one of: text, markdown, html", format)
	}

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	cat, err := loadCatalog(cfg)
	if err != nil {
		return err
	}

	plan := resolver.New(cat).Resolve(active, env)
	logger.NewConsoleLogger(cmd.ErrOrStderr(), cfg.LogLevel).
		LogPlan(models.RuleKey{Categories: active, Environment: env}, plan)

	content, err := renderPlan(summary.NewFormatter(cat), plan, format)
	if err != nil {
		return err
	}

	if output == "" {
		fmt.Fprint(cmd.OutOrStdout(), content)
		return nil
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	if err := export.WriteFile(ctx, output, []byte(content)); err != nil {
		return fmt.Errorf("failed to write plan: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Plan written to %s\n", output)
	return nil
}

// parseCategories accepts category names, each possibly comma separated.
func parseCategories(raw []string) (models.CategorySet, error) {
	var set models.CategorySet
	for _, item := range raw {
		for _, name := range strings.Split(item, ",") {
			name = strings.ToLower(strings.TrimSpace(name))
			if name == "" {
				continue
			}
			c := models.ProblemCategory(name)
			if !c.IsValid() {
				return 0, fmt.Errorf("unknown category %q, must be one of: language, behavior, development", name)
			}
			set = set.With(c)
		}
	}
	return set, nil
}

func parseEnvironment(raw string) (models.SupportEnvironment, error) {
	env := models.SupportEnvironment(strings.ToLower(strings.TrimSpace(raw)))
	if env == models.EnvironmentNone {
		return env, fmt.Errorf("%w: --env is required (home, expert, institution)", diagnosis.ErrMissingEnvironment)
	}
	if !env.IsValid() {
		return env, fmt.Errorf("%w: %q", diagnosis.ErrInvalidEnvironment, raw)
	}
	return env, nil
}

func renderPlan(f *summary.Formatter, plan models.RecommendedPlan, format string) (string, error) {
	switch format {
	case formatMarkdown:
		return f.PlanMarkdown(plan), nil
	case formatHTML:
		return f.PlanHTML(plan)
	default:
		var sb strings.Builder
		fmt.Fprintf(&sb, "추천 플랜: %s\n", plan.Name)
		if plan.HasSteps() {
			fmt.Fprintf(&sb, "%s\n", f.PlanDisplay(plan))
		}
		sb.WriteString("\n")
		sb.WriteString(f.Plan(plan))
		if !strings.HasSuffix(sb.String(), "\n") {
			sb.WriteString("\n")
		}
		return sb.String(), nil
	}
}
