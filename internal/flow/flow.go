// Package flow implements the four-screen questionnaire state machine:
// intro → diagnosis → result → action, with restart back to intro.
//
// The controller owns the diagnosis snapshot and the recommended plan once
// the diagnosis is completed and drops both on restart.
package flow

import (
	"errors"
	"fmt"

	"github.com/simplestep/pathfinder/internal/diagnosis"
	"github.com/simplestep/pathfinder/internal/logger"
	"github.com/simplestep/pathfinder/internal/models"
)

// Screen identifies one state of the questionnaire.
type Screen string

// Questionnaire screens
const (
	ScreenIntro     Screen = "intro"
	ScreenDiagnosis Screen = "diagnosis"
	ScreenResult    Screen = "result"
	ScreenAction    Screen = "action"
)

// FallbackMessage is shown when a screen's data is not available.
const FallbackMessage = "결과를 불러오는 중 오류가 발생했습니다."

var (
	// ErrInvalidTransition is returned when an event is not allowed in the current screen.
	ErrInvalidTransition = errors.New("invalid screen transition")

	// ErrMissingEnvironment is returned when completing a diagnosis without an environment.
	ErrMissingEnvironment = diagnosis.ErrMissingEnvironment

	// ErrDataUnavailable is returned when the action screen is requested without a plan.
	ErrDataUnavailable = errors.New("recommendation data unavailable")
)

// TransitionError describes a rejected transition.
type TransitionError struct {
	From  Screen
	Event string
	Err   error
}

// Error implements the error interface.
func (e *TransitionError) Error() string {
	return fmt.Sprintf("%s from %s: %v", e.Event, e.From, e.Err)
}

// Unwrap returns the underlying sentinel error.
func (e *TransitionError) Unwrap() error {
	return e.Err
}

// PlanResolver produces the plan for a completed diagnosis.
type PlanResolver interface {
	Resolve(active models.CategorySet, env models.SupportEnvironment) models.RecommendedPlan
}

// Viewport is the presentation collaborator reset on every transition.
type Viewport interface {
	ScrollToTop()
}

// Logger receives flow events.
type Logger interface {
	LogTransition(from, to string)
	LogPlan(key models.RuleKey, plan models.RecommendedPlan)
	LogWarn(message string)
}

// Option configures a Controller.
type Option func(*Controller)

// WithViewport sets the viewport reset on each transition.
func WithViewport(v Viewport) Option {
	return func(c *Controller) {
		c.viewport = v
	}
}

// WithLogger sets the flow event logger. A nil logger keeps the default,
// which discards events.
func WithLogger(l Logger) Option {
	return func(c *Controller) {
		if l != nil {
			c.logger = l
		}
	}
}

// Controller is the screen state machine. It is not safe for concurrent use.
type Controller struct {
	screen   Screen
	data     *diagnosis.Data
	plan     *models.RecommendedPlan
	resolver PlanResolver
	viewport Viewport
	logger   Logger
}

// NewController creates a Controller on the intro screen.
func NewController(resolver PlanResolver, opts ...Option) *Controller {
	c := &Controller{
		screen:   ScreenIntro,
		resolver: resolver,
		logger:   logger.NewNoOpLogger(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Screen returns the current screen.
func (c *Controller) Screen() Screen {
	return c.screen
}

// Diagnosis returns the retained diagnosis snapshot, if any.
func (c *Controller) Diagnosis() (diagnosis.Data, bool) {
	if c.data == nil {
		return diagnosis.Data{}, false
	}
	return *c.data, true
}

// Plan returns a copy of the retained plan, if any.
func (c *Controller) Plan() (models.RecommendedPlan, bool) {
	if c.plan == nil {
		return models.RecommendedPlan{}, false
	}
	return c.plan.Clone(), true
}

// Start moves from intro to diagnosis.
func (c *Controller) Start() error {
	if c.screen != ScreenIntro {
		return c.reject("start", ErrInvalidTransition)
	}
	c.moveTo(ScreenDiagnosis)
	return nil
}

// Complete resolves the plan for data and moves from diagnosis to result.
// Without a support environment nothing happens: the resolver is not called
// and the screen stays on diagnosis.
func (c *Controller) Complete(data diagnosis.Data) (models.RecommendedPlan, error) {
	if c.screen != ScreenDiagnosis {
		return models.RecommendedPlan{}, c.reject("complete", ErrInvalidTransition)
	}
	if data.Environment() == models.EnvironmentNone {
		return models.RecommendedPlan{}, c.reject("complete", ErrMissingEnvironment)
	}

	active := data.ActiveCategories()
	plan := c.resolver.Resolve(active, data.Environment())
	c.logger.LogPlan(models.RuleKey{Categories: active, Environment: data.Environment()}, plan)

	c.data = &data
	c.plan = &plan
	c.moveTo(ScreenResult)
	return plan.Clone(), nil
}

// Proceed moves from result to action. It fails with ErrDataUnavailable,
// leaving the screen unchanged, when no plan is retained.
func (c *Controller) Proceed() error {
	if c.screen != ScreenResult {
		return c.reject("proceed", ErrInvalidTransition)
	}
	if c.plan == nil || c.data == nil {
		return c.reject("proceed", ErrDataUnavailable)
	}
	c.moveTo(ScreenAction)
	return nil
}

// Restart drops the retained diagnosis and plan and returns to intro.
func (c *Controller) Restart() error {
	if c.screen != ScreenAction {
		return c.reject("restart", ErrInvalidTransition)
	}
	c.data = nil
	c.plan = nil
	c.moveTo(ScreenIntro)
	return nil
}

func (c *Controller) moveTo(next Screen) {
	prev := c.screen
	c.screen = next
	if c.viewport != nil {
		c.viewport.ScrollToTop()
	}
	c.logger.LogTransition(string(prev), string(next))
}

func (c *Controller) reject(event string, err error) error {
	terr := &TransitionError{From: c.screen, Event: event, Err: err}
	c.logger.LogWarn(terr.Error())
	return terr
}
