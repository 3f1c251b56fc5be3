package toolchain

import (
	"context"
	"path/filepath"

	"github.com/arthur-debert/toolstrap/pkg/errors"
	"github.com/arthur-debert/toolstrap/pkg/logging"
	"github.com/arthur-debert/toolstrap/pkg/types"
	"github.com/arthur-debert/toolstrap/pkg/vcs"
)

// InstallAction records what Install did.
type InstallAction string

const (
	ActionCloned    InstallAction = "cloned"
	ActionRefreshed InstallAction = "refreshed"
)

// Installer clones the package manager, or refreshes an existing clone.
type Installer struct {
	fs         types.FS
	git        vcs.Git
	executable string
}

// NewInstaller creates an installer using git for checkouts.
func NewInstaller(fs types.FS, git vcs.Git, executable string) *Installer {
	return &Installer{fs: fs, git: git, executable: executable}
}

// Install makes dir a current checkout of repository.
//
// A failed clone is an ErrClone error and the returned Installation is
// empty. A failed refresh is an advisory ErrRefresh error returned together
// with a usable Installation, since the previous checkout is still in place.
func (i *Installer) Install(ctx context.Context, repository, dir string) (Installation, InstallAction, error) {
	logger := logging.GetLogger("toolchain.installer")
	inst := NewInstallation(dir, i.executable)

	if i.git.IsWorkingCopy(dir) {
		logger.Info().Str("dir", dir).Msg("Refreshing existing checkout")
		if err := i.git.Refresh(ctx, dir); err != nil {
			logger.Warn().Err(err).Str("dir", dir).Msg("Refresh failed, keeping current checkout")
			return inst, ActionRefreshed, errors.Wrapf(err, errors.ErrRefresh, "failed to refresh %s", dir).
				WithDetail("dir", dir)
		}
		return inst, ActionRefreshed, nil
	}

	parent := filepath.Dir(dir)
	if err := i.fs.MkdirAll(parent, 0755); err != nil {
		return Installation{}, ActionCloned, errors.Wrapf(err, errors.ErrDirCreate, "cannot create %s", parent).
			WithDetail("dir", parent)
	}

	logger.Info().Str("repository", repository).Str("dir", dir).Msg("Cloning package manager")
	if err := i.git.Clone(ctx, repository, dir); err != nil {
		return Installation{}, ActionCloned, errors.Wrapf(err, errors.ErrClone, "failed to clone %s into %s", repository, dir).
			WithDetail("repository", repository).
			WithDetail("dir", dir)
	}
	return inst, ActionCloned, nil
}
