package storage

import (
	"context"
	"fmt"

	"github.com/kalambet/humanmode/internal/profile"
)

// ErrNotFound is returned when a requested key does not exist.
var ErrNotFound = profile.ErrNotFound

// Backend is a profile.Store that owns a connection.
type Backend interface {
	profile.Store
	Close() error
}

// Backend kinds accepted by OpenBackend.
const (
	BackendSQLite = "sqlite"
	BackendRedis  = "redis"
	BackendMemory = "memory"
)

// BackendOptions selects and configures a backend.
type BackendOptions struct {
	Kind        string
	DataDir     string
	RedisURL    string
	RedisPrefix string
}

// OpenBackend opens the backend named by opts.Kind.
func OpenBackend(ctx context.Context, opts BackendOptions) (Backend, error) {
	switch opts.Kind {
	case BackendSQLite, "":
		s, err := Open(opts.DataDir)
		if err != nil {
			return nil, err
		}
		return s, nil
	case BackendRedis:
		r, err := NewRedisStore(ctx, opts.RedisURL, opts.RedisPrefix)
		if err != nil {
			return nil, err
		}
		return r, nil
	case BackendMemory:
		return NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("unknown storage backend %q", opts.Kind)
	}
}
