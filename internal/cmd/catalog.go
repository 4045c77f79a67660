package cmd

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/simplestep/pathfinder/internal/catalog"
)

// NewCatalogCommand creates the catalog command
func NewCatalogCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "catalog",
		Short: "Print categories, support environments and program steps",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			cat, err := loadCatalog(cfg)
			if err != nil {
				return err
			}
			displayCatalog(cmd.OutOrStdout(), cat)
			return nil
		},
	}
}

func displayCatalog(w io.Writer, cat *catalog.Catalog) {
	cyan := color.New(color.FgCyan, color.Bold)
	green := color.New(color.FgGreen)

	cyan.Fprintf(w, "Problem categories:\n")
	for _, c := range cat.Categories() {
		fmt.Fprintf(w, "\n  %s %s ", c.Icon, c.Title)
		green.Fprintf(w, "(%s)\n", c.ID)
		for _, q := range c.Questions {
			fmt.Fprintf(w, "    - %s: %s\n", q.ID, q.Label)
		}
	}

	fmt.Fprintln(w)
	cyan.Fprintf(w, "Support environments:\n")
	for _, e := range cat.Environments() {
		fmt.Fprintf(w, "  %s ", e.Label())
		green.Fprintf(w, "(%s)\n", e.ID)
	}

	fmt.Fprintln(w)
	cyan.Fprintf(w, "Program steps:\n")
	for _, s := range cat.Steps() {
		fmt.Fprintf(w, "\n  %s\n", s.Label())
		fmt.Fprintf(w, "    %s\n", s.Title)
		for _, d := range s.Details {
			fmt.Fprintf(w, "    - %s\n", d)
		}
	}
}
