package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/simplestep/pathfinder/internal/config"
	"github.com/simplestep/pathfinder/internal/contact"
	"github.com/simplestep/pathfinder/internal/logger"
	"github.com/simplestep/pathfinder/internal/session"
)

// stdinReader supplies the answers for interactive sessions (replaced in tests).
var stdinReader = session.NewStdinReader

// NewRunCommand creates the run command
func NewRunCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Start an interactive questionnaire session",
		Long: `Start an interactive questionnaire session in the terminal.

The session shows the intro screen, asks which concerns apply to the child
and which support environment is preferred, shows the recommended plan and
finally collects and sends the contact form.

Configuration is loaded from .pathfinder/config.yaml if present, then from
.env and PATHFINDER_* environment variables. CLI flags override both.

Examples:
  pathfinder run
  pathfinder run --endpoint https://forms.example.com/contact
  pathfinder run --log-level debug --log-dir ./logs
  pathfinder run --catalog ./catalog.yaml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSession(cmd, stdinReader())
		},
	}

	cmd.Flags().String("endpoint", "", "URL the contact form is posted to")
	cmd.Flags().String("timeout", "", "Submission timeout (e.g., 10s, 1m)")
	cmd.Flags().String("log-level", "", "Log level: trace, debug, info, warn, error")
	cmd.Flags().String("log-dir", "", "Directory for session logs (empty string disables file logging)")

	return cmd
}

// runSession runs one interactive session reading answers from reader.
func runSession(cmd *cobra.Command, reader session.LineReader) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	cat, err := loadCatalog(cfg)
	if err != nil {
		return err
	}

	log, closeLog, err := buildLogger(cfg, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	defer closeLog()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt)
	defer stop()

	submitter := contact.NewHTTPSubmitter(cfg.Endpoint, cfg.Timeout, log)
	s := session.New(reader, cmd.OutOrStdout(), submitter,
		session.WithCatalog(cat),
		session.WithLogger(log),
		session.WithFormName(cfg.FormName),
	)

	if err := s.Run(ctx); err != nil {
		return fmt.Errorf("session %s: %w", s.ID(), err)
	}
	return nil
}

// buildLogger creates the console logger and, when a log directory is
// configured, a file logger next to it. The returned func closes the file.
func buildLogger(cfg *config.Config, console io.Writer) (logger.Logger, func(), error) {
	consoleLog := logger.NewConsoleLogger(console, cfg.LogLevel)
	if cfg.LogDir == "" {
		return consoleLog, func() {}, nil
	}

	fileLog, err := logger.NewFileLoggerWithDirAndLevel(cfg.LogDir, cfg.LogLevel)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create file logger: %w", err)
	}
	return logger.NewMultiLogger(consoleLog, fileLog), func() { fileLog.Close() }, nil
}
