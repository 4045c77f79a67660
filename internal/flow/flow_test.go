package flow

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/simplestep/pathfinder/internal/diagnosis"
	"github.com/simplestep/pathfinder/internal/models"
	"github.com/simplestep/pathfinder/internal/resolver"
)

// countingResolver records calls and delegates to the real resolver.
type countingResolver struct {
	calls int
	inner *resolver.Resolver
}

func (r *countingResolver) Resolve(active models.CategorySet, env models.SupportEnvironment) models.RecommendedPlan {
	r.calls++
	return r.inner.Resolve(active, env)
}

type countingViewport struct {
	resets int
}

func (v *countingViewport) ScrollToTop() {
	v.resets++
}

type recordingLogger struct {
	transitions []string
	plans       []string
	warnings    []string
}

func (l *recordingLogger) LogTransition(from, to string) {
	l.transitions = append(l.transitions, from+"->"+to)
}

func (l *recordingLogger) LogPlan(key models.RuleKey, plan models.RecommendedPlan) {
	l.plans = append(l.plans, key.String()+"="+plan.Name)
}

func (l *recordingLogger) LogWarn(message string) {
	l.warnings = append(l.warnings, message)
}

func newTestController() (*Controller, *countingResolver, *countingViewport, *recordingLogger) {
	r := &countingResolver{inner: resolver.New(nil)}
	v := &countingViewport{}
	l := &recordingLogger{}
	return NewController(r, WithViewport(v), WithLogger(l)), r, v, l
}

func languageAtHome() diagnosis.Data {
	return diagnosis.NewData(
		diagnosis.Answers{models.CategoryLanguage: {"lessThan30Words": true}},
		models.EnvironmentHome,
	)
}

func TestController_FullCycle(t *testing.T) {
	c, r, v, l := newTestController()
	assert.Equal(t, ScreenIntro, c.Screen())

	require.NoError(t, c.Start())
	assert.Equal(t, ScreenDiagnosis, c.Screen())

	plan, err := c.Complete(languageAtHome())
	require.NoError(t, err)
	assert.Equal(t, ScreenResult, c.Screen())
	assert.Equal(t, "NDBI 모듈", plan.Name)
	assert.Equal(t, []models.StepID{models.Step1}, plan.Steps)
	assert.Equal(t, 1, r.calls)

	retained, ok := c.Plan()
	require.True(t, ok)
	assert.True(t, retained.Equal(plan))
	data, ok := c.Diagnosis()
	require.True(t, ok)
	assert.Equal(t, models.EnvironmentHome, data.Environment())

	require.NoError(t, c.Proceed())
	assert.Equal(t, ScreenAction, c.Screen())

	require.NoError(t, c.Restart())
	assert.Equal(t, ScreenIntro, c.Screen())
	_, ok = c.Plan()
	assert.False(t, ok)
	_, ok = c.Diagnosis()
	assert.False(t, ok)

	assert.Equal(t, 4, v.resets)
	assert.Equal(t, []string{
		"intro->diagnosis",
		"diagnosis->result",
		"result->action",
		"action->intro",
	}, l.transitions)
	assert.Equal(t, []string{"language_home=NDBI 모듈"}, l.plans)
}

func TestController_CompleteWithoutEnvironment(t *testing.T) {
	c, r, v, l := newTestController()
	require.NoError(t, c.Start())
	resetsBefore := v.resets

	data := diagnosis.NewData(
		diagnosis.Answers{models.CategoryBehavior: {"problemBehavior": true}},
		models.EnvironmentNone,
	)
	_, err := c.Complete(data)

	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMissingEnvironment))
	assert.True(t, errors.Is(err, diagnosis.ErrMissingEnvironment))
	assert.Equal(t, ScreenDiagnosis, c.Screen())
	assert.Equal(t, 0, r.calls)
	assert.Equal(t, resetsBefore, v.resets)
	_, ok := c.Plan()
	assert.False(t, ok)
	assert.Len(t, l.warnings, 1)
}

func TestController_ProceedWithoutPlanShowsFallback(t *testing.T) {
	c, _, v, _ := newTestController()
	c.screen = ScreenResult

	err := c.Proceed()
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrDataUnavailable))
	assert.Equal(t, ScreenResult, c.Screen())
	assert.Equal(t, 0, v.resets)
}

func TestController_InvalidTransitions(t *testing.T) {
	tests := []struct {
		name   string
		screen Screen
		event  func(c *Controller) error
	}{
		{"complete from intro", ScreenIntro, func(c *Controller) error {
			_, err := c.Complete(languageAtHome())
			return err
		}},
		{"proceed from intro", ScreenIntro, (*Controller).Proceed},
		{"restart from intro", ScreenIntro, (*Controller).Restart},
		{"start from diagnosis", ScreenDiagnosis, (*Controller).Start},
		{"restart from result", ScreenResult, (*Controller).Restart},
		{"start from action", ScreenAction, (*Controller).Start},
		{"proceed from action", ScreenAction, (*Controller).Proceed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, r, _, _ := newTestController()
			c.screen = tt.screen

			err := tt.event(c)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidTransition))
			assert.Equal(t, tt.screen, c.Screen())
			assert.Equal(t, 0, r.calls)

			var terr *TransitionError
			require.True(t, errors.As(err, &terr))
			assert.Equal(t, tt.screen, terr.From)
		})
	}
}

func TestController_PlanIsNotShared(t *testing.T) {
	c, _, _, _ := newTestController()
	require.NoError(t, c.Start())

	plan, err := c.Complete(languageAtHome())
	require.NoError(t, err)
	plan.Steps[0] = models.Step4

	retained, _ := c.Plan()
	assert.Equal(t, []models.StepID{models.Step1}, retained.Steps)
}

func TestController_WithoutCollaborators(t *testing.T) {
	for _, opts := range [][]Option{nil, {WithLogger(nil)}} {
		c := NewController(resolver.New(nil), opts...)
		require.NoError(t, c.Start())
		assert.Error(t, c.Start())
		_, err := c.Complete(languageAtHome())
		require.NoError(t, err)
		require.NoError(t, c.Proceed())
		require.NoError(t, c.Restart())
	}
}

func TestProgress(t *testing.T) {
	assert.Nil(t, ProgressFor(ScreenIntro))

	nodes := ProgressFor(ScreenResult)
	require.Len(t, nodes, 3)
	assert.Equal(t, ProgressNode{Number: 1, Title: "아이 진단", Complete: true}, nodes[0])
	assert.Equal(t, ProgressNode{Number: 2, Title: "솔루션 추천", Active: true}, nodes[1])
	assert.Equal(t, ProgressNode{Number: 3, Title: "신청 및 문의"}, nodes[2])

	c, _, _, _ := newTestController()
	require.NoError(t, c.Start())
	assert.True(t, c.Progress()[0].Active)
}
