package setup

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func newTestRecorder() (*Recorder, *fakeClock) {
	clock := &fakeClock{now: time.Date(2025, 1, 1, 9, 0, 0, 0, time.UTC)}
	return NewRecorderWithClock(DefaultRecordingLimit, clock), clock
}

func TestRecorder_StartAndTick(t *testing.T) {
	r, clock := newTestRecorder()

	rec := r.Start()
	require.NotEmpty(t, rec.ID)
	assert.Equal(t, 0, rec.ElapsedSeconds())
	assert.False(t, rec.Done)

	clock.Advance(42 * time.Second)
	rec, err := r.Get(rec.ID)
	require.NoError(t, err)
	assert.Equal(t, 42, rec.ElapsedSeconds())
	assert.False(t, rec.Done)
}

func TestRecorder_CapsAtLimit(t *testing.T) {
	r, clock := newTestRecorder()
	rec := r.Start()

	clock.Advance(5 * time.Minute)
	rec, err := r.Get(rec.ID)
	require.NoError(t, err)
	assert.Equal(t, 120, rec.ElapsedSeconds())
	assert.True(t, rec.Done)
	assert.False(t, rec.Stopped)

	rec, err = r.Stop(rec.ID)
	require.NoError(t, err)
	assert.Equal(t, 120, rec.ElapsedSeconds())
	assert.True(t, rec.Stopped)
}

func TestRecorder_StopEarly(t *testing.T) {
	r, clock := newTestRecorder()
	rec := r.Start()

	clock.Advance(30 * time.Second)
	stopped, err := r.Stop(rec.ID)
	require.NoError(t, err)
	assert.Equal(t, 30, stopped.ElapsedSeconds())
	assert.True(t, stopped.Done)

	clock.Advance(time.Minute)
	later, err := r.Get(rec.ID)
	require.NoError(t, err)
	assert.Equal(t, 30, later.ElapsedSeconds(), "a stopped recording no longer advances")
}

func TestRecorder_Errors(t *testing.T) {
	r, _ := newTestRecorder()

	_, err := r.Get("nope")
	assert.ErrorIs(t, err, ErrUnknownRecording)
	_, err = r.Stop("nope")
	assert.ErrorIs(t, err, ErrUnknownRecording)

	rec := r.Start()
	_, err = r.Stop(rec.ID)
	require.NoError(t, err)
	_, err = r.Stop(rec.ID)
	assert.ErrorIs(t, err, ErrRecordingFinished)
}

func TestRecorder_DiscardAndReset(t *testing.T) {
	r, _ := newTestRecorder()
	a := r.Start()
	b := r.Start()
	assert.NotEqual(t, a.ID, b.ID)

	r.Discard(a.ID)
	_, err := r.Get(a.ID)
	assert.ErrorIs(t, err, ErrUnknownRecording)

	r.Reset()
	_, err = r.Get(b.ID)
	assert.ErrorIs(t, err, ErrUnknownRecording)
}

func TestNewRecorder_DefaultLimit(t *testing.T) {
	assert.Equal(t, DefaultRecordingLimit, NewRecorder(0).Limit())
	assert.Equal(t, 10*time.Second, NewRecorder(10*time.Second).Limit())
}

func TestRecorder_StartForgetsAbandonedSessions(t *testing.T) {
	r, clock := newTestRecorder()
	old := r.Start()

	clock.Advance(DefaultRecordingLimit + abandonAfter/2)
	recent := r.Start()
	_, err := r.Get(old.ID)
	require.NoError(t, err, "session within the grace period must survive")

	clock.Advance(abandonAfter)
	r.Start()

	_, err = r.Get(old.ID)
	assert.ErrorIs(t, err, ErrUnknownRecording)
	_, err = r.Get(recent.ID)
	assert.NoError(t, err)
}
