package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/simplestep/pathfinder/internal/catalog"
	"github.com/simplestep/pathfinder/internal/config"
)

// Version is injected at build time via -ldflags
var Version = "dev"

// NewRootCommand creates and returns the root cobra command for pathfinder
func NewRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pathfinder",
		Short: "Guided developmental-support questionnaire",
		Long: `Pathfinder walks a guardian through a short questionnaire about their
child's needs, recommends a support plan from a fixed rule table and
sends a contact request for the recommended plan.

Screens: intro → diagnosis → result → action.`,
		Version: Version,
		// Silence usage on errors to avoid duplicate help text
		SilenceUsage: true,
	}

	cmd.PersistentFlags().String("config", "", "Path to config file (default: .pathfinder/config.yaml)")
	cmd.PersistentFlags().String("catalog", "", "Path to an alternative catalog file (default: built-in)")

	cmd.AddCommand(NewRunCommand())
	cmd.AddCommand(NewPlanCommand())
	cmd.AddCommand(NewRulesCommand())
	cmd.AddCommand(NewCatalogCommand())

	return cmd
}

// loadConfig builds the effective configuration:
// defaults, config file, .env and PATHFINDER_* variables, then flags.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	if err := config.LoadDotEnv(".env"); err != nil {
		return nil, err
	}

	configPath, _ := cmd.Flags().GetString("config")
	var cfg *config.Config
	var err error
	if configPath != "" {
		cfg, err = config.LoadConfig(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load config from %s: %w", configPath, err)
		}
	} else {
		cfg, err = config.LoadConfigFromDir(".")
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
	}

	if err := cfg.ApplyEnv(os.LookupEnv); err != nil {
		return nil, fmt.Errorf("failed to apply environment: %w", err)
	}

	endpoint := changedString(cmd, "endpoint")
	logLevel := changedString(cmd, "log-level")
	logDir := changedString(cmd, "log-dir")
	catalogPath := changedString(cmd, "catalog")
	timeout, err := changedDuration(cmd, "timeout")
	if err != nil {
		return nil, err
	}
	cfg.MergeWithFlags(endpoint, timeout, logLevel, logDir, catalogPath)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// loadCatalog returns the catalog named by the configuration.
func loadCatalog(cfg *config.Config) (*catalog.Catalog, error) {
	if cfg.CatalogPath == "" {
		return catalog.Default(), nil
	}
	c, err := catalog.Load(cfg.CatalogPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog: %w", err)
	}
	return c, nil
}

// changedString returns a pointer to the flag value when the flag exists
// on cmd and was set on the command line.
func changedString(cmd *cobra.Command, name string) *string {
	f := cmd.Flags().Lookup(name)
	if f == nil || !f.Changed {
		return nil
	}
	v := f.Value.String()
	return &v
}

func changedDuration(cmd *cobra.Command, name string) (*time.Duration, error) {
	f := cmd.Flags().Lookup(name)
	if f == nil || !f.Changed {
		return nil, nil
	}
	d, err := time.ParseDuration(f.Value.String())
	if err != nil {
		return nil, fmt.Errorf("invalid %s format %q: %w", name, f.Value.String(), err)
	}
	return &d, nil
}
