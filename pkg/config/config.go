package config

import (
	"time"
)

// Config is the effective toolstrap configuration.
type Config struct {
	Platform    Platform    `koanf:"platform" toml:"platform" json:"platform"`
	Toolchain   Toolchain   `koanf:"toolchain" toml:"toolchain" json:"toolchain"`
	Packages    Packages    `koanf:"packages" toml:"packages" json:"packages"`
	RuntimeEnv  RuntimeEnv  `koanf:"runtime_env" toml:"runtime_env" json:"runtimeEnv"`
	Diagnostics Diagnostics `koanf:"diagnostics" toml:"diagnostics" json:"diagnostics"`
	Commands    Commands    `koanf:"commands" toml:"commands" json:"commands"`
}

// Platform holds the host requirements
type Platform struct {
	RequiredOS string `koanf:"required_os" toml:"required_os" json:"requiredOS"`
}

// Toolchain describes the package manager and where to install it.
type Toolchain struct {
	// Executable is the program searched for on PATH.
	Executable string `koanf:"executable" toml:"executable" json:"executable"`
	InstallDir string `koanf:"install_dir" toml:"install_dir" json:"installDir"`
	Repository string `koanf:"repository" toml:"repository" json:"repository"`
	// Branch is used for refreshes when the remote HEAD is unknown.
	Branch       string   `koanf:"branch" toml:"branch" json:"branch"`
	GitBackend   string   `koanf:"git_backend" toml:"git_backend" json:"gitBackend"`
	ShellenvArgs []string `koanf:"shellenv_args" toml:"shellenv_args" json:"shellenvArgs"`
	StartupFile  string   `koanf:"startup_file" toml:"startup_file" json:"startupFile"`
}

// Packages lists what is installed in one package-manager call
type Packages struct {
	Install []string `koanf:"install" toml:"install" json:"install"`
}

// RuntimeEnv is the KEY="value" file patched for the downstream runtime.
type RuntimeEnv struct {
	Path    string     `koanf:"path" toml:"path" json:"path"`
	Entries []EnvEntry `koanf:"entries" toml:"entries" json:"entries"`
}

// EnvEntry is one managed key. Value is a text/template.
type EnvEntry struct {
	Key   string `koanf:"key" toml:"key" json:"key"`
	Value string `koanf:"value" toml:"value" json:"value"`
}

// Diagnostics holds the post-install checks
type Diagnostics struct {
	Checks []Check `koanf:"checks" toml:"checks" json:"checks"`
}

// Check is one diagnostic command.
type Check struct {
	Label   string   `koanf:"label" toml:"label" json:"label"`
	Command string   `koanf:"command" toml:"command" json:"command"`
	Args    []string `koanf:"args" toml:"args" json:"args"`
}

// Commands holds settings for spawned processes
type Commands struct {
	Timeout Duration `koanf:"timeout" toml:"timeout" json:"timeout"`
}

// Duration is a time.Duration that reads and writes as "30m".
type Duration time.Duration

// Std returns d as a time.Duration.
func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

func (d Duration) String() string {
	return time.Duration(d).String()
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	*d = Duration(v)
	return nil
}
