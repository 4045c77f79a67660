package logger

import "github.com/simplestep/pathfinder/internal/models"

// Logger is the set of events a pathfinder session reports.
// ConsoleLogger, FileLogger, MultiLogger and NoOpLogger implement it.
type Logger interface {
	LogTrace(message string)
	LogDebug(message string)
	LogInfo(message string)
	LogWarn(message string)
	LogError(message string)
	LogTransition(from, to string)
	LogPlan(key models.RuleKey, plan models.RecommendedPlan)
	LogSubmission(err error)
}

// MultiLogger forwards every event to each of its loggers in order.
type MultiLogger struct {
	loggers []Logger
}

// NewMultiLogger combines loggers. Nil entries are skipped.
func NewMultiLogger(loggers ...Logger) *MultiLogger {
	m := &MultiLogger{}
	for _, l := range loggers {
		if l != nil {
			m.loggers = append(m.loggers, l)
		}
	}
	return m
}

func (m *MultiLogger) LogTrace(message string) {
	for _, l := range m.loggers {
		l.LogTrace(message)
	}
}

func (m *MultiLogger) LogDebug(message string) {
	for _, l := range m.loggers {
		l.LogDebug(message)
	}
}

func (m *MultiLogger) LogInfo(message string) {
	for _, l := range m.loggers {
		l.LogInfo(message)
	}
}

func (m *MultiLogger) LogWarn(message string) {
	for _, l := range m.loggers {
		l.LogWarn(message)
	}
}

func (m *MultiLogger) LogError(message string) {
	for _, l := range m.loggers {
		l.LogError(message)
	}
}

func (m *MultiLogger) LogTransition(from, to string) {
	for _, l := range m.loggers {
		l.LogTransition(from, to)
	}
}

func (m *MultiLogger) LogPlan(key models.RuleKey, plan models.RecommendedPlan) {
	for _, l := range m.loggers {
		l.LogPlan(key, plan)
	}
}

func (m *MultiLogger) LogSubmission(err error) {
	for _, l := range m.loggers {
		l.LogSubmission(err)
	}
}
