package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

type keyType int

const (
	kString keyType = iota
	kInt
	kFloat
	kDuration
)

type keySpec struct {
	key     string
	typ     keyType
	env     string
	secret  bool
	apply   func(cfg *Config, v any)
	extract func(cfg Config) any
}

var specs = []keySpec{
	{
		key: "server.port", typ: kInt, env: "HUMANMODE_SERVER_PORT",
		apply:   func(cfg *Config, v any) { cfg.Server.Port = v.(int) },
		extract: func(cfg Config) any { return cfg.Server.Port },
	},
	{
		key: "storage.backend", typ: kString, env: "HUMANMODE_STORAGE_BACKEND",
		apply:   func(cfg *Config, v any) { cfg.Storage.Backend = v.(string) },
		extract: func(cfg Config) any { return cfg.Storage.Backend },
	},
	{
		key: "storage.data_dir", typ: kString, env: "HUMANMODE_STORAGE_DATA_DIR",
		apply:   func(cfg *Config, v any) { cfg.Storage.DataDir = v.(string) },
		extract: func(cfg Config) any { return cfg.Storage.DataDir },
	},
	{
		key: "redis.url", typ: kString, env: "HUMANMODE_REDIS_URL",
		apply:   func(cfg *Config, v any) { cfg.Redis.URL = v.(string) },
		extract: func(cfg Config) any { return cfg.Redis.URL },
	},
	{
		key: "redis.prefix", typ: kString, env: "HUMANMODE_REDIS_PREFIX",
		apply:   func(cfg *Config, v any) { cfg.Redis.Prefix = v.(string) },
		extract: func(cfg Config) any { return cfg.Redis.Prefix },
	},
	{
		key: "log.level", typ: kString, env: "HUMANMODE_LOG_LEVEL",
		apply:   func(cfg *Config, v any) { cfg.Log.Level = v.(string) },
		extract: func(cfg Config) any { return cfg.Log.Level },
	},
	{
		key: "demo.generate_delay", typ: kDuration, env: "HUMANMODE_DEMO_GENERATE_DELAY",
		apply:   func(cfg *Config, v any) { cfg.Demo.GenerateDelay = v.(time.Duration) },
		extract: func(cfg Config) any { return cfg.Demo.GenerateDelay },
	},
	{
		key: "voice.recording_limit", typ: kDuration, env: "HUMANMODE_VOICE_RECORDING_LIMIT",
		apply:   func(cfg *Config, v any) { cfg.Voice.RecordingLimit = v.(time.Duration) },
		extract: func(cfg Config) any { return cfg.Voice.RecordingLimit },
	},
	{
		key: "voice.stage_scale", typ: kFloat, env: "HUMANMODE_VOICE_STAGE_SCALE",
		apply:   func(cfg *Config, v any) { cfg.Voice.StageScale = v.(float64) },
		extract: func(cfg Config) any { return cfg.Voice.StageScale },
	},
	{
		key: "api.token", typ: kString, env: "HUMANMODE_API_TOKEN",
		secret:  true,
		apply:   func(cfg *Config, v any) { cfg.API.Token = v.(string) },
		extract: func(cfg Config) any { return cfg.API.Token },
	},
}

func lookupSpec(key string) (keySpec, bool) {
	for _, s := range specs {
		if s.key == key {
			return s, true
		}
	}
	return keySpec{}, false
}

// parse converts raw into the Go type apply expects.
func (s keySpec) parse(raw string) (any, error) {
	switch s.typ {
	case kInt:
		return strconv.Atoi(raw)
	case kFloat:
		return strconv.ParseFloat(raw, 64)
	case kDuration:
		return parseDuration(raw)
	default:
		return raw, nil
	}
}

// applyRaw parses raw and applies it. A value that does not parse leaves the
// current setting in place; source names where raw came from.
func (s keySpec) applyRaw(cfg *Config, raw, source string) {
	v, err := s.parse(raw)
	if err != nil {
		fmt.Fprintf(os.Stderr, "[WARN] could not parse %s=%q: %v. Using default value.\n", source, raw, err)
		return
	}
	s.apply(cfg, v)
}

func applyBackend(cfg *Config, b Backend) error {
	for _, s := range specs {
		if s.secret {
			continue
		}
		raw, ok, err := b.Lookup(s.key)
		if err != nil {
			return fmt.Errorf("reading %s: %w", s.key, err)
		}
		if ok && raw != "" {
			s.applyRaw(cfg, raw, s.key)
		}
	}
	return nil
}

func applyEnvOverrides(cfg *Config) {
	for _, s := range specs {
		if raw := os.Getenv(s.env); s.env != "" && raw != "" {
			s.applyRaw(cfg, raw, s.env)
		}
	}
}

// parseDuration accepts Go duration syntax ("1.5s") or a bare number of
// milliseconds ("1500").
func parseDuration(s string) (time.Duration, error) {
	if ms, err := strconv.Atoi(s); err == nil {
		if ms < 0 {
			return 0, fmt.Errorf("negative duration %q", s)
		}
		return time.Duration(ms) * time.Millisecond, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, err
	}
	if d < 0 {
		return 0, fmt.Errorf("negative duration %q", s)
	}
	return d, nil
}
