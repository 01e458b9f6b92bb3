package session

import (
	"context"
	"time"

	"github.com/ad/go-progress-bar/internal/fsm"
	"github.com/ad/go-progress-bar/internal/timemath"
)

const (
	// TickInterval is the period between recomputations.
	TickInterval = time.Second

	// DefaultCloseThreshold is the trailing window (seconds) in which the UI
	// swaps to the big numeric countdown. The year page uses a wider window.
	DefaultCloseThreshold = 10
	YearCloseThreshold    = 30
)

// Snapshot is the server-computed seed handed to a session on page load.
// After the first tick only End matters: remaining time is always recomputed
// from the absolute end instant, never by subtracting from a previous value,
// so timer scheduling jitter cannot accumulate into drift.
type Snapshot struct {
	TotalSeconds     int64
	RemainingSeconds int64
	End              time.Time
}

// Frame is the displayable result of one tick.
type Frame struct {
	Remaining        timemath.Breakdown
	RemainingSeconds int64
	Percent          int
	CloseToEnd       bool
	Done             bool
}

// Session advances a countdown once per TickInterval. It transitions
// running -> done exactly once; the completion callback is latched so a
// celebratory effect fires a single time no matter how often the zero state
// is observed afterwards.
type Session struct {
	snapshot       Snapshot
	closeThreshold int64

	// now is swappable for deterministic tests.
	now func() time.Time

	state     string
	completed bool

	OnTick     func(Frame)
	OnComplete func()
}

func NewSession(snapshot Snapshot) *Session {
	return &Session{
		snapshot:       snapshot,
		closeThreshold: DefaultCloseThreshold,
		now:            time.Now,
		state:          fsm.SessionRunning,
	}
}

// SetCloseThreshold overrides the close-to-end window, in seconds.
func (s *Session) SetCloseThreshold(seconds int64) {
	s.closeThreshold = seconds
}

func (s *Session) State() string {
	return s.state
}

func (s *Session) Completed() bool {
	return s.completed
}

// Tick recomputes the frame for the current instant and applies the state
// transition. Safe to call after completion; the frame stays frozen at zero
// and no callbacks re-fire.
func (s *Session) Tick() Frame {
	now := s.now()

	remaining := int64(s.snapshot.End.Sub(now) / time.Second)
	if remaining < 0 {
		remaining = 0
	}

	elapsed := s.snapshot.TotalSeconds - remaining
	if elapsed < 0 {
		elapsed = 0
	}
	if elapsed > s.snapshot.TotalSeconds {
		elapsed = s.snapshot.TotalSeconds
	}

	frame := Frame{
		Remaining:        timemath.RemainingBreakdown(now, s.snapshot.End),
		RemainingSeconds: remaining,
		Percent:          timemath.ProgressPercent(elapsed, s.snapshot.TotalSeconds),
		CloseToEnd:       remaining > 0 && remaining <= s.closeThreshold,
		Done:             remaining <= 0,
	}

	if frame.Done && s.state == fsm.SessionRunning {
		s.state = fsm.SessionDone
		s.completed = true
		if s.OnComplete != nil {
			s.OnComplete()
		}
	}

	if s.OnTick != nil {
		s.OnTick(frame)
	}
	return frame
}

// Run ticks immediately, then once per TickInterval until the countdown
// reaches zero or ctx is cancelled. The ticker is stopped on every exit
// path; after completion nothing changes state, so no further ticks run.
func (s *Session) Run(ctx context.Context) {
	if frame := s.Tick(); frame.Done {
		return
	}

	ticker := time.NewTicker(TickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if frame := s.Tick(); frame.Done {
				return
			}
		}
	}
}
