// Package vcs clones and refreshes the package manager's working copy.
//
// Two backends implement Git: CLIGit shells out to the git binary through a
// runner.Runner, GoGit works in-process with go-git. Both refresh the same
// way: fetch origin, then hard-reset to origin/HEAD, or to origin/<branch>
// when the remote HEAD is not known.
package vcs

import (
	"context"

	"github.com/arthur-debert/toolstrap/pkg/errors"
	"github.com/arthur-debert/toolstrap/pkg/runner"
	"github.com/arthur-debert/toolstrap/pkg/types"
)

// Backend names accepted by New.
const (
	BackendCLI   = "cli"
	BackendGoGit = "go-git"
)

// RemoteName is the remote created by Clone and used by Refresh.
const RemoteName = "origin"

// Git is the version-control capability the installer needs.
type Git interface {
	// Clone creates a working copy of url at dir.
	Clone(ctx context.Context, url, dir string) error

	// Refresh fetches the remote and hard-resets the working copy to its
	// default branch.
	Refresh(ctx context.Context, dir string) error

	// IsWorkingCopy reports whether dir is the root of a working copy.
	IsWorkingCopy(dir string) bool
}

// New returns the backend called name. branch is the fallback used when
// the remote HEAD cannot be resolved. The CLI backend looks for working
// copies through fs; go-git always works on the real filesystem.
func New(name, branch string, r runner.Runner, fs types.FS) (Git, error) {
	switch name {
	case "", BackendCLI:
		return NewCLIGit(r, fs, branch), nil
	case BackendGoGit:
		return NewGoGit(branch), nil
	default:
		return nil, errors.Newf(errors.ErrConfigValid, "unknown git backend %q", name).
			WithDetail("backends", []string{BackendCLI, BackendGoGit})
	}
}
