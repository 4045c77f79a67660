package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/simplestep/pathfinder/internal/catalog"
	"github.com/simplestep/pathfinder/internal/models"
)

// NewRulesCommand creates the rules command
func NewRulesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "rules",
		Short: "Print the recommendation rule table",
		Long: `Print every rule of the recommendation table as
<categories>_<environment>: <plan name> (<steps>), followed by the plan
used when no rule matches.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			cat, err := loadCatalog(cfg)
			if err != nil {
				return err
			}
			displayRules(cmd.OutOrStdout(), cat)
			return nil
		},
	}
}

func displayRules(w io.Writer, cat *catalog.Catalog) {
	cyan := color.New(color.FgCyan, color.Bold)
	keyColor := color.New(color.FgCyan)

	rules := cat.Rules()
	cyan.Fprintf(w, "=== Recommendation Rules (%d) ===\n\n", len(rules))
	for _, r := range rules {
		fmt.Fprintf(w, "%s: %s (%s)\n", keyColor.Sprint(r.Key.String()), r.Plan.Name, joinSteps(r.Plan.Steps))
	}

	def := cat.DefaultPlan()
	fmt.Fprintf(w, "\n%s: %s (%s)\n", keyColor.Sprint("default"), def.Name, joinSteps(def.Steps))
}

func joinSteps(steps []models.StepID) string {
	if len(steps) == 0 {
		return "no steps"
	}
	parts := make([]string, len(steps))
	for i, s := range steps {
		parts[i] = string(s)
	}
	return strings.Join(parts, ", ")
}
