package contact

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// ErrSubmissionFailed is returned when the endpoint does not accept the form.
var ErrSubmissionFailed = errors.New("전송에 실패했습니다. 잠시 후 다시 시도해주세요")

// RequestIDHeader carries the per-submission identifier.
const RequestIDHeader = "X-Request-ID"

// SubmissionError describes a failed submission.
type SubmissionError struct {
	RequestID  string
	StatusCode int // 0 when no response was received
	Err        error
}

// Error implements the error interface.
func (e *SubmissionError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("submission %s rejected with status %d: %v", e.RequestID, e.StatusCode, ErrSubmissionFailed)
	}
	return fmt.Sprintf("submission %s failed: %v", e.RequestID, e.Err)
}

// Unwrap lets errors.Is match ErrSubmissionFailed and the transport error.
func (e *SubmissionError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrSubmissionFailed}
	}
	return []error{ErrSubmissionFailed, e.Err}
}

// Submitter delivers a payload to the form-handling backend.
type Submitter interface {
	Submit(ctx context.Context, payload Payload) error
}

// Logger receives submission events.
type Logger interface {
	LogInfo(message string)
	LogError(message string)
}

// HTTPSubmitter posts payloads as URL-encoded form bodies.
type HTTPSubmitter struct {
	endpoint   string
	httpClient *http.Client
	logger     Logger
	newID      func() string
}

// NewHTTPSubmitter creates a submitter for endpoint.
// A zero timeout leaves the HTTP client without a deadline.
func NewHTTPSubmitter(endpoint string, timeout time.Duration, logger Logger) *HTTPSubmitter {
	return &HTTPSubmitter{
		endpoint: endpoint,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: logger,
		newID:  func() string { return uuid.New().String() },
	}
}

// Submit posts the payload. Any non-2xx response is a failure; there are no retries.
func (s *HTTPSubmitter) Submit(ctx context.Context, payload Payload) error {
	requestID := s.newID()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint, strings.NewReader(payload.Encode()))
	if err != nil {
		return &SubmissionError{RequestID: requestID, Err: err}
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set(RequestIDHeader, requestID)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		s.logError(fmt.Sprintf("Submission %s failed: %v", requestID, err))
		return &SubmissionError{RequestID: requestID, Err: err}
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		s.logError(fmt.Sprintf("Submission %s rejected: HTTP %d", requestID, resp.StatusCode))
		return &SubmissionError{RequestID: requestID, StatusCode: resp.StatusCode}
	}

	if s.logger != nil {
		s.logger.LogInfo(fmt.Sprintf("Submission %s accepted", requestID))
	}
	return nil
}

func (s *HTTPSubmitter) logError(message string) {
	if s.logger != nil {
		s.logger.LogError(message)
	}
}

// Status is the presentation-layer view of a submission.
type Status int

// Submission states
const (
	StatusIdle Status = iota
	StatusLoading
	StatusSuccess
	StatusError
)

// String returns the lower-case name of the status.
func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusLoading:
		return "loading"
	case StatusSuccess:
		return "success"
	case StatusError:
		return "error"
	default:
		return "unknown"
	}
}

// Tracker submits payloads and records the outcome as a Status.
// It is safe for concurrent use so a UI can poll while a submission runs.
type Tracker struct {
	submitter Submitter
	mu        sync.Mutex
	status    Status
	lastErr   error
}

// NewTracker creates an idle Tracker.
func NewTracker(submitter Submitter) *Tracker {
	return &Tracker{submitter: submitter}
}

// Submit runs one submission, moving the status through loading to
// success or error. A submission already in flight is rejected.
func (t *Tracker) Submit(ctx context.Context, payload Payload) error {
	t.mu.Lock()
	if t.status == StatusLoading {
		t.mu.Unlock()
		return fmt.Errorf("submission already in progress")
	}
	t.status = StatusLoading
	t.lastErr = nil
	t.mu.Unlock()

	err := t.submitter.Submit(ctx, payload)

	t.mu.Lock()
	defer t.mu.Unlock()
	if err != nil {
		t.status = StatusError
		t.lastErr = err
		return err
	}
	t.status = StatusSuccess
	return nil
}

// Status returns the current status.
func (t *Tracker) Status() Status {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.status
}

// Err returns the error of the last failed submission.
func (t *Tracker) Err() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.lastErr
}

// Reset returns the tracker to idle.
func (t *Tracker) Reset() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.status = StatusIdle
	t.lastErr = nil
}
