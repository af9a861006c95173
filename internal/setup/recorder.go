package setup

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
)

var (
	// ErrUnknownRecording is returned for an id the Recorder never issued.
	ErrUnknownRecording = errors.New("unknown recording")
	// ErrRecordingFinished is returned when stopping a recording twice.
	ErrRecordingFinished = errors.New("recording already stopped")
)

// DefaultRecordingLimit caps a voice sample.
const DefaultRecordingLimit = 120 * time.Second

// abandonAfter is how long past the limit an unstopped session is kept
// before Start forgets it.
const abandonAfter = 10 * time.Minute

// Clock abstracts time for testability.
type Clock interface {
	Now() time.Time
}

type realClock struct{}

func (realClock) Now() time.Time { return time.Now() }

// Recording is a snapshot of one recording session.
type Recording struct {
	ID        string    `json:"id"`
	StartedAt time.Time `json:"started_at"`
	// Elapsed is capped at the recording limit.
	Elapsed time.Duration `json:"-"`
	// Done is true once the session was stopped or hit the limit.
	Done    bool `json:"done"`
	Stopped bool `json:"stopped"`
}

// ElapsedSeconds is Elapsed in whole seconds.
func (r Recording) ElapsedSeconds() int {
	return int(r.Elapsed / time.Second)
}

type session struct {
	started time.Time
	stopped time.Time
}

// Recorder tracks simulated voice recordings. No audio is captured: a
// session is only a start time that runs until stopped or the limit.
type Recorder struct {
	clock Clock
	limit time.Duration

	mu       sync.Mutex
	sessions map[string]*session
}

// NewRecorder creates a Recorder. A non-positive limit means DefaultRecordingLimit.
func NewRecorder(limit time.Duration) *Recorder {
	return NewRecorderWithClock(limit, realClock{})
}

// NewRecorderWithClock creates a Recorder with a custom clock (for testing).
func NewRecorderWithClock(limit time.Duration, clock Clock) *Recorder {
	if limit <= 0 {
		limit = DefaultRecordingLimit
	}
	return &Recorder{
		clock:    clock,
		limit:    limit,
		sessions: make(map[string]*session),
	}
}

// Limit returns the maximum recording length.
func (r *Recorder) Limit() time.Duration { return r.limit }

// Start opens a new session and forgets sessions abandoned long ago.
func (r *Recorder) Start() Recording {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.clock.Now()
	for id, s := range r.sessions {
		if now.Sub(s.started) > r.limit+abandonAfter {
			delete(r.sessions, id)
		}
	}

	id := uuid.New().String()
	s := &session{started: now}
	r.sessions[id] = s
	return r.snapshot(id, s)
}

// Get reports the current state of a session.
func (r *Recorder) Get(id string) (Recording, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.sessions[id]
	if !ok {
		return Recording{}, ErrUnknownRecording
	}
	return r.snapshot(id, s), nil
}

// Stop ends a session early or at the limit and returns its final state.
// A session that ran into the limit can still be stopped once.
func (r *Recorder) Stop(id string) (Recording, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.sessions[id]
	if !ok {
		return Recording{}, ErrUnknownRecording
	}
	if !s.stopped.IsZero() {
		return Recording{}, ErrRecordingFinished
	}
	now := r.clock.Now()
	if limitAt := s.started.Add(r.limit); now.After(limitAt) {
		now = limitAt
	}
	s.stopped = now
	return r.snapshot(id, s), nil
}

// Discard forgets a session.
func (r *Recorder) Discard(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, id)
}

// Reset forgets every session.
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions = make(map[string]*session)
}

func (r *Recorder) snapshot(id string, s *session) Recording {
	end := s.stopped
	if end.IsZero() {
		end = r.clock.Now()
	}
	elapsed := end.Sub(s.started)
	if elapsed < 0 {
		elapsed = 0
	}
	if elapsed > r.limit {
		elapsed = r.limit
	}
	return Recording{
		ID:        id,
		StartedAt: s.started,
		Elapsed:   elapsed,
		Done:      !s.stopped.IsZero() || elapsed >= r.limit,
		Stopped:   !s.stopped.IsZero(),
	}
}
