package config

import (
	"fmt"
	"log/slog"
	"strings"
	"time"
)

type Config struct {
	Server  ServerConfig
	Storage StorageConfig
	Redis   RedisConfig
	Log     LogConfig
	Demo    DemoConfig
	Voice   VoiceConfig
	API     APIConfig
}

type ServerConfig struct {
	Port int
}

type StorageConfig struct {
	// Backend is one of "sqlite", "redis" or "memory".
	Backend string
	DataDir string
}

type RedisConfig struct {
	URL    string
	Prefix string
}

type LogConfig struct {
	Level string
}

type DemoConfig struct {
	GenerateDelay time.Duration
}

type VoiceConfig struct {
	RecordingLimit time.Duration
	// StageScale multiplies every analysis stage duration; 0 disables the waits.
	StageScale float64
}

type APIConfig struct {
	// Token enables bearer auth on the HTTP API when non-empty.
	Token string
}

func defaults() Config {
	return Config{
		Server: ServerConfig{
			Port: 4100,
		},
		Storage: StorageConfig{
			Backend: "sqlite",
			DataDir: defaultDataDir(),
		},
		Redis: RedisConfig{
			URL:    "redis://localhost:6379/0",
			Prefix: "humanmode",
		},
		Log: LogConfig{
			Level: "info",
		},
		Demo: DemoConfig{
			GenerateDelay: 1500 * time.Millisecond,
		},
		Voice: VoiceConfig{
			RecordingLimit: 120 * time.Second,
			StageScale:     1.0,
		},
	}
}

// Load reads configuration from the platform-native backend, environment
// variables, and platform secret store.
//
// On macOS the backend is UserDefaults (domain: com.humanmode.app) and the
// API token falls back to the macOS Keychain.
// On Linux the backend is a JSON file at $XDG_CONFIG_HOME/humanmode/config.json
// and the token falls back to $XDG_DATA_HOME/humanmode/secrets.json.
//
// Environment variables (HUMANMODE_*) override backend values on all platforms.
func Load() (Config, error) {
	return loadWith(newPlatformBackend(), keychainReader{})
}

// keychain abstracts secret-store access for testing.
type keychain interface {
	Get(service, account string) (string, error)
}

const (
	keychainService = "humanmode"
	tokenAccount    = "api_token"
)

func loadWith(b Backend, kc keychain) (Config, error) {
	cfg := defaults()

	if err := applyBackend(&cfg, b); err != nil {
		return Config{}, err
	}

	applyEnvOverrides(&cfg)

	if cfg.API.Token == "" {
		if tok, err := kc.Get(keychainService, tokenAccount); err == nil && tok != "" {
			cfg.API.Token = tok
		}
	}

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid config: server.port %d out of range", c.Server.Port)
	}
	switch c.Storage.Backend {
	case "sqlite", "redis", "memory":
	default:
		return fmt.Errorf("invalid config: storage.backend %q (want sqlite, redis or memory)", c.Storage.Backend)
	}
	if c.Storage.Backend == "redis" && c.Redis.URL == "" {
		return fmt.Errorf("invalid config: redis.url is required when storage.backend is redis")
	}
	if c.Voice.StageScale < 0 {
		return fmt.Errorf("invalid config: voice.stage_scale must not be negative")
	}
	return nil
}

// SlogLevel maps the configured level name to a slog.Level. Unknown names
// mean info.
func (l LogConfig) SlogLevel() slog.Level {
	switch strings.ToLower(l.Level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}
	return slog.LevelInfo
}

// keychainReader reads from the platform secret store.
type keychainReader struct{}

func (keychainReader) Get(service, account string) (string, error) {
	out, err := keychainGet(service, account)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(out)), nil
}
