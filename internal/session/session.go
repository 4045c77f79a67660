// Package session runs the questionnaire in a terminal. It renders each
// screen, reads answers line by line and drives the flow controller from
// intro through diagnosis and result to the contact form.
package session

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/mattn/go-isatty"

	"github.com/simplestep/pathfinder/internal/catalog"
	"github.com/simplestep/pathfinder/internal/contact"
	"github.com/simplestep/pathfinder/internal/diagnosis"
	"github.com/simplestep/pathfinder/internal/flow"
	"github.com/simplestep/pathfinder/internal/logger"
	"github.com/simplestep/pathfinder/internal/resolver"
	"github.com/simplestep/pathfinder/internal/summary"
)

// errQuit ends the session at the user's request.
var errQuit = errors.New("session quit")

// LineReader defines interface for reading user input (for testing)
type LineReader interface {
	ReadString(delim byte) (string, error)
}

// NewStdinReader wraps os.Stdin in a buffered LineReader.
func NewStdinReader() LineReader {
	return bufio.NewReader(os.Stdin)
}

// Logger receives session events.
type Logger interface {
	flow.Logger
	LogInfo(message string)
	LogSubmission(err error)
}

// Option configures a Session.
type Option func(*Session)

// WithCatalog replaces the built-in reference data.
func WithCatalog(c *catalog.Catalog) Option {
	return func(s *Session) {
		s.catalog = c
	}
}

// WithLogger sets the session event logger. Events are discarded by default.
func WithLogger(l Logger) Option {
	return func(s *Session) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithFormName sets the form identifier sent with submissions.
func WithFormName(name string) Option {
	return func(s *Session) {
		s.formName = name
	}
}

// WithViewport replaces the terminal viewport.
func WithViewport(v flow.Viewport) Option {
	return func(s *Session) {
		s.viewport = v
	}
}

// Session is one interactive questionnaire run. It is not safe for concurrent use.
type Session struct {
	id         string
	reader     LineReader
	out        io.Writer
	catalog    *catalog.Catalog
	formatter  *summary.Formatter
	controller *flow.Controller
	state      *diagnosis.State
	tracker    *contact.Tracker
	viewport   flow.Viewport
	logger     Logger
	formName   string
}

// New creates a session reading from reader, writing to out and sending
// contact forms through submitter.
func New(reader LineReader, out io.Writer, submitter contact.Submitter, opts ...Option) *Session {
	s := &Session{
		id:       uuid.New().String(),
		reader:   reader,
		out:      out,
		tracker:  contact.NewTracker(submitter),
		logger:   logger.NewNoOpLogger(),
		formName: contact.DefaultFormName,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.catalog == nil {
		s.catalog = catalog.Default()
	}
	if s.viewport == nil {
		s.viewport = NewTerminalViewport(out)
	}
	s.formatter = summary.NewFormatter(s.catalog)

	s.controller = flow.NewController(resolver.New(s.catalog),
		flow.WithViewport(s.viewport),
		flow.WithLogger(s.logger),
	)
	return s
}

// ID returns the session identifier used in logs.
func (s *Session) ID() string {
	return s.id
}

// Screen returns the screen the session is on.
func (s *Session) Screen() flow.Screen {
	return s.controller.Screen()
}

// Run shows screens until the user quits, input ends or ctx is cancelled.
// Quitting and end of input are not errors; cancellation returns ctx.Err(),
// also while a prompt is waiting for input.
func (s *Session) Run(ctx context.Context) error {
	s.logger.LogInfo(fmt.Sprintf("Session %s started", s.id))
	defer s.logger.LogInfo(fmt.Sprintf("Session %s ended", s.id))

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		var err error
		switch s.controller.Screen() {
		case flow.ScreenIntro:
			err = s.intro(ctx)
		case flow.ScreenDiagnosis:
			err = s.diagnosis(ctx)
		case flow.ScreenResult:
			err = s.result(ctx)
		case flow.ScreenAction:
			err = s.action(ctx)
		default:
			return fmt.Errorf("unknown screen %q", s.controller.Screen())
		}

		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if errors.Is(err, errQuit) || errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
	}
}

type readResult struct {
	line string
	err  error
}

// prompt prints label and returns the trimmed answer.
// A final line without a newline is still returned. The read runs in its
// own goroutine so a cancelled ctx ends the prompt without waiting for input.
func (s *Session) prompt(ctx context.Context, label string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	fmt.Fprint(s.out, label)

	done := make(chan readResult, 1)
	go func() {
		line, err := s.reader.ReadString('\n')
		done <- readResult{line: line, err: err}
	}()

	var res readResult
	select {
	case <-ctx.Done():
		fmt.Fprintln(s.out)
		return "", ctx.Err()
	case res = <-done:
	}
	if err := ctx.Err(); err != nil {
		fmt.Fprintln(s.out)
		return "", err
	}

	if res.err != nil {
		fmt.Fprintln(s.out)
		if errors.Is(res.err, io.EOF) && res.line != "" {
			return strings.TrimSpace(res.line), nil
		}
		return "", res.err
	}
	return strings.TrimSpace(res.line), nil
}

// menu prompts and maps "q" to errQuit.
func (s *Session) menu(ctx context.Context, label string) (string, error) {
	answer, err := s.prompt(ctx, label)
	if err != nil {
		return "", err
	}
	if strings.EqualFold(answer, "q") {
		return "", errQuit
	}
	return answer, nil
}

// TerminalViewport clears the screen on every transition when its output
// is a terminal. Other writers are left untouched.
type TerminalViewport struct {
	out     io.Writer
	enabled bool
}

// NewTerminalViewport creates a viewport for out.
func NewTerminalViewport(out io.Writer) *TerminalViewport {
	f, ok := out.(*os.File)
	return &TerminalViewport{
		out:     out,
		enabled: ok && isatty.IsTerminal(f.Fd()),
	}
}

// ScrollToTop moves the cursor home and clears the terminal.
func (v *TerminalViewport) ScrollToTop() {
	if v.enabled {
		fmt.Fprint(v.out, "\x1b[H\x1b[2J")
	}
}
