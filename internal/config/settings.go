// Package config resolves the paths and environment a supervisor invocation
// passes through to process spawning. Everything here is explicit
// configuration handed to the supervisor constructor; nothing is read from
// ambient global state.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Settings holds the resolved filesystem paths and environment overrides
// for one invocation. The core treats all of it as opaque spawn parameters.
type Settings struct {
	// VirtualEnv is the virtual environment root activated for children.
	VirtualEnv string
	// AppRoot is the working directory for spawned processes.
	AppRoot string
	// LogDir receives per-process log files when set.
	LogDir string
	// PIDDir receives per-process PID files when set.
	PIDDir string
	// Env overrides applied on top of the supervisor's environment,
	// typically parsed from an env file.
	Env map[string]string
}

// Resolve makes every configured path absolute.
func (s *Settings) Resolve() error {
	for _, p := range []*string{&s.VirtualEnv, &s.AppRoot, &s.LogDir, &s.PIDDir} {
		if *p == "" {
			continue
		}
		abs, err := filepath.Abs(os.ExpandEnv(*p))
		if err != nil {
			return fmt.Errorf("resolve path %q: %w", *p, err)
		}
		*p = abs
	}
	return nil
}

// Environ assembles the complete spawn environment: the supervisor's own
// environment, then the configured overrides, then virtual environment
// activation (VIRTUAL_ENV and a PATH prefix of its bin directory).
func (s Settings) Environ() []string {
	env := environMap(os.Environ())
	for k, v := range s.Env {
		env[k] = v
	}
	if s.VirtualEnv != "" {
		env["VIRTUAL_ENV"] = s.VirtualEnv
		bin := filepath.Join(s.VirtualEnv, "bin")
		if path := env["PATH"]; path != "" {
			env["PATH"] = bin + string(os.PathListSeparator) + path
		} else {
			env["PATH"] = bin
		}
	}

	merged := make([]string, 0, len(env))
	for k, v := range env {
		merged = append(merged, k+"="+v)
	}
	return merged
}

func environMap(entries []string) map[string]string {
	env := make(map[string]string, len(entries))
	for _, entry := range entries {
		if k, v, ok := strings.Cut(entry, "="); ok {
			env[k] = v
		}
	}
	return env
}
