package bootstrap

import (
	"github.com/arthur-debert/toolstrap/pkg/diagnostics"
	"github.com/arthur-debert/toolstrap/pkg/errors"
	"github.com/arthur-debert/toolstrap/pkg/packages"
	"github.com/arthur-debert/toolstrap/pkg/platform"
	"github.com/arthur-debert/toolstrap/pkg/runtimeenv"
	"github.com/arthur-debert/toolstrap/pkg/shellenv"
	"github.com/arthur-debert/toolstrap/pkg/toolchain"
)

// Path is the branch a run took to obtain the package manager.
type Path string

const (
	// PathReuse means an installation was found on PATH.
	PathReuse Path = "reuse"
	// PathInstall means toolstrap cloned or refreshed its own installation.
	PathInstall Path = "install"
)

// Warning is an advisory failure the run continued past.
type Warning struct {
	Code    errors.ErrorCode `json:"code"`
	Message string           `json:"message"`
}

// Report records everything a run did. A run that stops on a fatal error
// still returns the report filled up to that point.
type Report struct {
	Platform      platform.Info           `json:"platform"`
	Path          Path                    `json:"path,omitempty"`
	Installation  toolchain.Installation  `json:"installation"`
	InstallAction toolchain.InstallAction `json:"installAction,omitempty"`

	StartupFile    string `json:"startupFile,omitempty"`
	StartupChanged bool   `json:"startupChanged"`

	Bindings []shellenv.Binding `json:"bindings,omitempty"`
	Prefix   string             `json:"prefix,omitempty"`

	Packages packages.Outcome `json:"packages"`

	RuntimeEnvFile string              `json:"runtimeEnvFile,omitempty"`
	RuntimeEnv     []runtimeenv.Change `json:"runtimeEnv,omitempty"`

	Diagnostics []diagnostics.Result `json:"diagnostics,omitempty"`
	Warnings    []Warning            `json:"warnings,omitempty"`

	// Environment is the overlay after activation. It is not serialised.
	Environment shellenv.Overlay `json:"-"`
}

func (r *Report) warn(err error) {
	r.Warnings = append(r.Warnings, Warning{Code: errors.GetErrorCode(err), Message: err.Error()})
}
