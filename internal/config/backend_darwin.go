//go:build darwin

package config

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

const defaultsDomain = "com.humanmode.app"

func defaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "humanmode-data"
	}
	return filepath.Join(home, "Library", "Application Support", "humanmode")
}

// defaultsBackend keeps config in the user defaults database through the
// defaults(1) tool.
type defaultsBackend struct {
	domain string
}

func newPlatformBackend() Backend {
	return defaultsBackend{domain: defaultsDomain}
}

// run executes defaults with args. missing is true when defaults exits 1,
// which it does for an absent domain or key.
func (b defaultsBackend) run(args ...string) (out string, missing bool, err error) {
	raw, err := exec.Command("defaults", args...).CombinedOutput()
	out = strings.TrimSpace(string(raw))
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) && exitErr.ExitCode() == 1 {
		return "", true, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("defaults %s: %w (%s)", args[0], err, out)
	}
	return out, false, nil
}

func (b defaultsBackend) Lookup(key string) (string, bool, error) {
	out, missing, err := b.run("read", b.domain, key)
	if err != nil || missing {
		return "", false, err
	}
	return out, true, nil
}

func (b defaultsBackend) Store(key, val string) error {
	_, _, err := b.run("write", b.domain, key, "-string", val)
	return err
}

func (b defaultsBackend) Remove(key string) error {
	_, _, err := b.run("delete", b.domain, key)
	return err
}
