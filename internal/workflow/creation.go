package workflow

import (
	"strings"
	"time"

	"github.com/ad/go-progress-bar/internal/config"
	"github.com/ad/go-progress-bar/internal/db"
	"github.com/ad/go-progress-bar/internal/fsm"
)

// ValidationError is a user-input failure. It is always recoverable and its
// message is surfaced verbatim to the caller.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

var (
	errNameRequired      = &ValidationError{Message: "name is required"}
	errEndTimeRequired   = &ValidationError{Message: "end time is required"}
	errEndTimeInvalid    = &ValidationError{Message: "invalid end time format"}
	errStartTimeRequired = &ValidationError{Message: "start time is required"}
	errStartTimeInvalid  = &ValidationError{Message: "invalid start time format"}
	errEndTimeInPast     = &ValidationError{Message: "end time must be in the future"}
	errStartAfterEnd     = &ValidationError{Message: "start time must be before end time"}
)

// Input is the raw creation request as submitted by the visitor.
// UseCurrentTime means the start instant is the moment the request is
// validated, not a user-supplied value.
type Input struct {
	Name           string
	StartTime      string
	EndTime        string
	UseCurrentTime bool
	ClientIP       string
}

// Result is the locator for a freshly created bar.
type Result struct {
	ID  string
	URL string
}

// CreationWorkflow walks collecting -> validating -> persisting ->
// succeeded/failed for each submission. Validation short-circuits on the
// first failing rule so every rejection carries exactly one message.
type CreationWorkflow struct {
	bars *db.BarRepository
	cfg  *config.Config

	// now is swappable for tests that pin the clock.
	now func() time.Time

	state string
}

func NewCreationWorkflow(bars *db.BarRepository, cfg *config.Config) *CreationWorkflow {
	return &CreationWorkflow{
		bars:  bars,
		cfg:   cfg,
		now:   time.Now,
		state: fsm.StateCollecting,
	}
}

func (w *CreationWorkflow) State() string {
	return w.state
}

// Create validates in, persists the bar, and returns its locator.
// "now" is captured once on entry and reused for every comparison, so the
// future-end check and a defaulted start time cannot drift apart.
func (w *CreationWorkflow) Create(in Input) (*Result, error) {
	now := w.now()

	w.state = fsm.StateValidating
	name, startTime, endTime, err := w.validate(in, now)
	if err != nil {
		w.state = fsm.StateFailed
		return nil, err
	}

	w.state = fsm.StatePersisting
	id, err := w.bars.Create(name, startTime, endTime, in.ClientIP)
	if err != nil {
		w.state = fsm.StateFailed
		return nil, err
	}

	w.state = fsm.StateSucceeded
	return &Result{ID: id, URL: w.cfg.ShareURL(id)}, nil
}

func (w *CreationWorkflow) validate(in Input, now time.Time) (string, time.Time, time.Time, error) {
	var zero time.Time

	name := strings.TrimSpace(in.Name)
	if name == "" {
		return "", zero, zero, errNameRequired
	}

	if strings.TrimSpace(in.EndTime) == "" {
		return "", zero, zero, errEndTimeRequired
	}
	endTime, err := parseInstant(in.EndTime)
	if err != nil {
		return "", zero, zero, errEndTimeInvalid
	}

	startTime := now
	if !in.UseCurrentTime {
		if strings.TrimSpace(in.StartTime) == "" {
			return "", zero, zero, errStartTimeRequired
		}
		startTime, err = parseInstant(in.StartTime)
		if err != nil {
			return "", zero, zero, errStartTimeInvalid
		}
	}

	if !endTime.After(now) {
		return "", zero, zero, errEndTimeInPast
	}
	if !startTime.Before(endTime) {
		return "", zero, zero, errStartAfterEnd
	}

	return name, startTime, endTime, nil
}

func parseInstant(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	// Datetime-local inputs arrive without a zone offset.
	return time.ParseInLocation("2006-01-02T15:04:05", s, time.Local)
}
