package profile

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
)

// ErrNotFound is returned by Store.Get when the key holds no value.
var ErrNotFound = errors.New("key not found")

// Storage keys of the four persisted profile slices.
const (
	KeyUserProfile      = "humanmode_user_profile"
	KeyVoicePatterns    = "humanmode_voice_patterns"
	KeySkills           = "humanmode_skills"
	KeyInterviewContext = "humanmode_interview_context"
)

// SliceKeys returns the slice keys in setup order.
func SliceKeys() []string {
	return []string{KeyUserProfile, KeyVoicePatterns, KeySkills, KeyInterviewContext}
}

// Store is a flat string key-value store. Implemented by the backends in
// internal/storage.
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Remove(ctx context.Context, key string) error
	Clear(ctx context.Context) error
}

// Slices reads and writes JSON values through a Store. Failures are logged
// and reduced to "absent" or a no-op; they never reach the caller.
type Slices struct {
	store Store
}

func NewSlices(store Store) *Slices {
	return &Slices{store: store}
}

// Get decodes the value under key into target. It reports false when the
// key is absent, the store fails, or the stored JSON does not decode.
func (s *Slices) Get(ctx context.Context, key string, target any) bool {
	ok, _ := s.Lookup(ctx, key, target)
	return ok
}

// Lookup is Get that also returns the store failure, if any. Absent keys and
// malformed values are not failures.
func (s *Slices) Lookup(ctx context.Context, key string, target any) (bool, error) {
	raw, err := s.store.Get(ctx, key)
	if errors.Is(err, ErrNotFound) {
		return false, nil
	}
	if err != nil {
		slog.Warn("reading profile slice failed", "key", key, "error", err)
		return false, err
	}
	if raw == "" || raw == "null" {
		return false, nil
	}
	if err := json.Unmarshal([]byte(raw), target); err != nil {
		slog.Warn("malformed profile slice, skipping", "key", key, "error", err)
		return false, nil
	}
	return true, nil
}

// Set stores value under key as JSON.
func (s *Slices) Set(ctx context.Context, key string, value any) {
	b, err := json.Marshal(value)
	if err != nil {
		slog.Error("encoding profile slice failed", "key", key, "error", err)
		return
	}
	if err := s.store.Set(ctx, key, string(b)); err != nil {
		slog.Error("saving profile slice failed", "key", key, "error", err)
	}
}

func (s *Slices) Remove(ctx context.Context, key string) {
	if err := s.store.Remove(ctx, key); err != nil && !errors.Is(err, ErrNotFound) {
		slog.Error("removing profile slice failed", "key", key, "error", err)
	}
}

func (s *Slices) Clear(ctx context.Context) {
	if err := s.store.Clear(ctx); err != nil {
		slog.Error("clearing profile store failed", "error", err)
	}
}
