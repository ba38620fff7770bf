package form

import (
	"context"
	"sync"
	"time"
)

// ResetDelay is how long the confirmation stays visible before the draft is
// cleared.
const ResetDelay = 2 * time.Second

type Status int

const (
	StatusIdle Status = iota
	StatusPending
	StatusSucceeded
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusPending:
		return "pending"
	case StatusSucceeded:
		return "success"
	case StatusFailed:
		return "error"
	default:
		return "idle"
	}
}

type Submitter interface {
	Submit(ctx context.Context, endpoint string, d *Draft) error
}

// Session drives one form: a draft plus the submission state around it.
// Only one submission may be in flight at a time.
type Session struct {
	mu       sync.Mutex
	draft    *Draft
	pinned   Pinned
	endpoint string
	status   Status
	message  string

	submitter Submitter
	now       func() time.Time
	schedule  func(time.Duration, func())
}

type SessionOption func(*Session)

// WithClock replaces time.Now, used for the default time slot on reset.
func WithClock(now func() time.Time) SessionOption {
	return func(s *Session) { s.now = now }
}

// WithScheduler replaces time.AfterFunc for the post-success reset.
func WithScheduler(schedule func(time.Duration, func())) SessionOption {
	return func(s *Session) { s.schedule = schedule }
}

// NewSession starts from a copy of d, or a fresh draft when d is nil.
// endpoint is the configured ingest URL; pinned.EndpointURL overrides it.
func NewSession(d *Draft, pinned Pinned, endpoint string, submitter Submitter, opts ...SessionOption) *Session {
	s := &Session{
		pinned:    pinned,
		endpoint:  endpoint,
		submitter: submitter,
		now:       time.Now,
		schedule: func(d time.Duration, f func()) {
			time.AfterFunc(d, f)
		},
	}
	for _, opt := range opts {
		opt(s)
	}
	if d == nil {
		d = NewDraft(pinned, s.now())
	}
	cp := *d
	s.draft = &cp
	return s
}

// Draft returns a snapshot of the draft. Changes go through Update.
func (s *Session) Draft() Draft {
	s.mu.Lock()
	defer s.mu.Unlock()
	return *s.draft
}

// Update applies fn to the draft under the session lock. The draft is
// frozen while a submission is in flight.
func (s *Session) Update(fn func(d *Draft) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.status == StatusPending {
		return ErrSubmissionInFlight
	}
	return fn(s.draft)
}

func (s *Session) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

func (s *Session) Message() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.message
}

// Submit sends the draft. Failures keep the draft so the user can retry; a
// success schedules Reset after ResetDelay.
func (s *Session) Submit(ctx context.Context) error {
	s.mu.Lock()
	if s.status == StatusPending {
		s.mu.Unlock()
		return ErrSubmissionInFlight
	}
	if err := s.draft.Validate(); err != nil {
		s.failLocked(err)
		s.mu.Unlock()
		return err
	}
	endpoint, err := ResolveEndpoint(s.pinned.EndpointURL, s.endpoint)
	if err != nil {
		s.failLocked(err)
		s.mu.Unlock()
		return err
	}
	s.status = StatusPending
	s.message = ""
	snapshot := *s.draft
	s.mu.Unlock()

	err = s.submitter.Submit(ctx, endpoint, &snapshot)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.failLocked(err)
		return err
	}
	s.status = StatusSucceeded
	s.message = MsgSaved
	s.schedule(ResetDelay, s.Reset)
	return nil
}

// Reset clears the draft, keeping pinned values, and returns to idle.
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.draft.Reset(s.pinned, s.now())
	s.status = StatusIdle
	s.message = ""
}

func (s *Session) failLocked(err error) {
	s.status = StatusFailed
	s.message = err.Error()
}
