//go:build !darwin

package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
)

func defaultDataDir() string {
	return xdgDir("XDG_DATA_HOME", filepath.Join(".local", "share"), "humanmode-data")
}

// xdgDir resolves $env/humanmode, falling back to ~/fallback/humanmode and
// finally to orphan when there is no home directory.
func xdgDir(env, fallback, orphan string) string {
	if dir := os.Getenv(env); dir != "" {
		return filepath.Join(dir, "humanmode")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return orphan
	}
	return filepath.Join(home, fallback, "humanmode")
}

func configFilePath() string {
	return filepath.Join(xdgDir("XDG_CONFIG_HOME", ".config", "."), "config.json")
}

// jsonFileBackend keeps config in a flat JSON object under the XDG config
// directory. Hand-edited numbers and booleans are accepted on read.
type jsonFileBackend struct {
	path   string
	values map[string]any
}

func newPlatformBackend() Backend {
	b := &jsonFileBackend{path: configFilePath(), values: map[string]any{}}
	b.load()
	return b
}

func (b *jsonFileBackend) load() {
	data, err := os.ReadFile(b.path)
	if os.IsNotExist(err) {
		return
	}
	if err == nil {
		err = json.Unmarshal(data, &b.values)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "[WARN] ignoring config file %s: %v\n", b.path, err)
		b.values = map[string]any{}
	}
}

func (b *jsonFileBackend) flush() error {
	if err := os.MkdirAll(filepath.Dir(b.path), 0o700); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}
	data, err := json.MarshalIndent(b.values, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(b.path, append(data, '\n'), 0o600)
}

func (b *jsonFileBackend) Lookup(key string) (string, bool, error) {
	v, ok := b.values[key]
	if !ok {
		return "", false, nil
	}
	switch val := v.(type) {
	case string:
		return val, true, nil
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64), true, nil
	case bool:
		return strconv.FormatBool(val), true, nil
	default:
		return "", true, fmt.Errorf("%s in %s must be a string or number", key, b.path)
	}
}

func (b *jsonFileBackend) Store(key, val string) error {
	b.values[key] = val
	return b.flush()
}

func (b *jsonFileBackend) Remove(key string) error {
	if _, ok := b.values[key]; !ok {
		return nil
	}
	delete(b.values, key)
	return b.flush()
}
