package config

import (
	"regexp"
	"strings"

	"github.com/arthur-debert/toolstrap/pkg/errors"
)

var envKeyPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

var gitBackends = map[string]bool{"cli": true, "go-git": true}

// Validate reports the first problem that would make a run impossible.
func (c *Config) Validate() error {
	required := []struct{ key, value string }{
		{"platform.required_os", c.Platform.RequiredOS},
		{"toolchain.executable", c.Toolchain.Executable},
		{"toolchain.install_dir", c.Toolchain.InstallDir},
		{"toolchain.repository", c.Toolchain.Repository},
		{"toolchain.branch", c.Toolchain.Branch},
		{"toolchain.startup_file", c.Toolchain.StartupFile},
		{"runtime_env.path", c.RuntimeEnv.Path},
	}
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			return invalid(r.key, "must not be empty")
		}
	}

	if !gitBackends[c.Toolchain.GitBackend] {
		return invalid("toolchain.git_backend", "must be one of cli, go-git").
			WithDetail("value", c.Toolchain.GitBackend)
	}
	if len(c.Toolchain.ShellenvArgs) == 0 {
		return invalid("toolchain.shellenv_args", "must not be empty")
	}
	if strings.ContainsAny(c.Toolchain.InstallDir, "\n\"") {
		return invalid("toolchain.install_dir", "must not contain quotes or newlines")
	}

	seen := make(map[string]bool, len(c.RuntimeEnv.Entries))
	for _, e := range c.RuntimeEnv.Entries {
		if !envKeyPattern.MatchString(e.Key) {
			return invalid("runtime_env.entries", "invalid key").WithDetail("key", e.Key)
		}
		if seen[e.Key] {
			return invalid("runtime_env.entries", "duplicate key").WithDetail("key", e.Key)
		}
		seen[e.Key] = true
		if strings.ContainsAny(e.Value, "\r\n") {
			return invalid("runtime_env.entries", "value must be a single line").WithDetail("key", e.Key)
		}
	}

	for _, check := range c.Diagnostics.Checks {
		if check.Label == "" || check.Command == "" {
			return invalid("diagnostics.checks", "every check needs a label and a command")
		}
	}

	if c.Commands.Timeout <= 0 {
		return invalid("commands.timeout", "must be positive")
	}
	return nil
}

func invalid(key, reason string) *errors.ToolstrapError {
	return errors.Newf(errors.ErrConfigValid, "invalid configuration: %s %s", key, reason).
		WithDetail("key", key)
}
