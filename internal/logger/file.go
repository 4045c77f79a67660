package logger

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/simplestep/pathfinder/internal/models"
)

// FileLogger logs session events to files in the configured log directory.
// It creates one timestamped log file per session and maintains a
// latest.log symlink pointing to the most recent one.
// It is thread-safe and supports log level filtering.
type FileLogger struct {
	logDir     string
	sessionLog *os.File
	logFile    string
	logLevel   string
	mu         sync.Mutex
}

// NewFileLoggerWithDirAndLevel creates a new FileLogger with a custom log directory and log level.
// It creates the directory if needed, opens session-YYYYMMDD-HHMMSS.log
// and points latest.log at it.
func NewFileLoggerWithDirAndLevel(logDir string, logLevel string) (*FileLogger, error) {
	if err := os.MkdirAll(logDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	started := time.Now()
	logFile := filepath.Join(logDir, fmt.Sprintf("session-%s.log", started.Format("20060102-150405")))

	file, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to create session log file: %w", err)
	}

	symlinkPath := filepath.Join(logDir, "latest.log")
	if _, err := os.Lstat(symlinkPath); err == nil {
		if err := os.Remove(symlinkPath); err != nil {
			file.Close()
			return nil, fmt.Errorf("failed to remove old symlink: %w", err)
		}
	}
	if err := os.Symlink(filepath.Base(logFile), symlinkPath); err != nil {
		file.Close()
		return nil, fmt.Errorf("failed to create symlink: %w", err)
	}

	logger := &FileLogger{
		logDir:     logDir,
		sessionLog: file,
		logFile:    logFile,
		logLevel:   normalizeLogLevel(logLevel),
	}

	logger.write("=== Pathfinder Session Log ===\n")
	logger.write(fmt.Sprintf("Started at: %s\n\n", started.Format(time.RFC3339)))

	return logger, nil
}

// Path returns the session log file path.
func (fl *FileLogger) Path() string {
	return fl.logFile
}

func (fl *FileLogger) shouldLog(messageLevel string) bool {
	return logLevelToInt(messageLevel) >= logLevelToInt(fl.logLevel)
}

// LogTrace logs a trace-level message (most verbose).
func (fl *FileLogger) LogTrace(message string) {
	fl.logWithLevel("TRACE", message)
}

// LogDebug logs a debug-level message.
func (fl *FileLogger) LogDebug(message string) {
	fl.logWithLevel("DEBUG", message)
}

// LogInfo logs an info-level message.
func (fl *FileLogger) LogInfo(message string) {
	fl.logWithLevel("INFO", message)
}

// LogWarn logs a warning-level message.
func (fl *FileLogger) LogWarn(message string) {
	fl.logWithLevel("WARN", message)
}

// LogError logs an error-level message.
func (fl *FileLogger) LogError(message string) {
	fl.logWithLevel("ERROR", message)
}

func (fl *FileLogger) logWithLevel(level string, message string) {
	if !fl.shouldLog(strings.ToLower(level)) {
		return
	}
	fl.write(fmt.Sprintf("[%s] [%s] %s\n", timestamp(), level, message))
}

// LogTransition records a screen change at DEBUG level.
func (fl *FileLogger) LogTransition(from, to string) {
	if !fl.shouldLog("debug") {
		return
	}
	fl.write(fmt.Sprintf("[%s] Screen %s -> %s\n", timestamp(), from, to))
}

// LogPlan records the resolved plan with its full step list at INFO level.
func (fl *FileLogger) LogPlan(key models.RuleKey, plan models.RecommendedPlan) {
	if !fl.shouldLog("info") {
		return
	}

	ts := timestamp()
	message := fmt.Sprintf("[%s] Plan for %s: %s (%s)\n", ts, key, plan.Name, stepCount(len(plan.Steps)))
	for _, id := range plan.Steps {
		message += fmt.Sprintf("[%s]   - %s\n", ts, id)
	}
	fl.write(message)
}

// LogSubmission records the outcome of a contact submission.
func (fl *FileLogger) LogSubmission(err error) {
	if err != nil {
		fl.LogError(fmt.Sprintf("Contact submission failed: %v", err))
		return
	}
	if !fl.shouldLog("info") {
		return
	}
	fl.write(fmt.Sprintf("[%s] Contact submission accepted\n", timestamp()))
}

// Close flushes and closes the session log file.
// It should be called when the logger is no longer needed.
func (fl *FileLogger) Close() error {
	fl.mu.Lock()
	defer fl.mu.Unlock()

	if fl.sessionLog != nil {
		if err := fl.sessionLog.Sync(); err != nil {
			return fmt.Errorf("failed to sync session log: %w", err)
		}
		if err := fl.sessionLog.Close(); err != nil {
			return fmt.Errorf("failed to close session log: %w", err)
		}
		fl.sessionLog = nil
	}

	return nil
}

// write is a thread-safe helper to append to the session log file.
func (fl *FileLogger) write(message string) {
	fl.mu.Lock()
	defer fl.mu.Unlock()

	if fl.sessionLog != nil {
		fl.sessionLog.WriteString(message)
		fl.sessionLog.Sync()
	}
}
