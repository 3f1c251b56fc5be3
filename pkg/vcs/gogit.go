package vcs

import (
	"context"
	stderrors "errors"
	"os"

	"github.com/arthur-debert/toolstrap/pkg/logging"
	gogit "github.com/go-git/go-git/v5"
	gitconfig "github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/rs/zerolog"
)

// GoGit implements Git with go-git, without a git binary.
type GoGit struct {
	branch string
	logger zerolog.Logger
}

// NewGoGit creates an in-process backend.
func NewGoGit(branch string) *GoGit {
	return &GoGit{
		branch: branch,
		logger: logging.GetLogger("vcs.gogit"),
	}
}

func (g *GoGit) Clone(ctx context.Context, url, dir string) error {
	_, err := gogit.PlainCloneContext(ctx, dir, false, &gogit.CloneOptions{
		URL:        url,
		RemoteName: RemoteName,
		Progress:   os.Stderr,
	})
	return err
}

func (g *GoGit) Refresh(ctx context.Context, dir string) error {
	repo, err := gogit.PlainOpen(dir)
	if err != nil {
		return err
	}

	err = repo.FetchContext(ctx, &gogit.FetchOptions{
		RemoteName: RemoteName,
		Force:      true,
		RefSpecs:   []gitconfig.RefSpec{gitconfig.RefSpec("+refs/heads/*:refs/remotes/" + RemoteName + "/*")},
	})
	if err != nil && !stderrors.Is(err, gogit.NoErrAlreadyUpToDate) {
		return err
	}

	target, err := g.resolveTarget(repo)
	if err != nil {
		return err
	}

	wt, err := repo.Worktree()
	if err != nil {
		return err
	}

	g.logger.Debug().Str("dir", dir).Str("commit", target.String()).Msg("Hard reset")
	return wt.Reset(&gogit.ResetOptions{Commit: target, Mode: gogit.HardReset})
}

// resolveTarget finds the commit of origin/HEAD, then of the remote branch
// tracked by the local HEAD, then of the configured fallback branch.
func (g *GoGit) resolveTarget(repo *gogit.Repository) (plumbing.Hash, error) {
	candidates := []plumbing.ReferenceName{plumbing.NewRemoteHEADReferenceName(RemoteName)}
	if head, err := repo.Head(); err == nil && head.Name().IsBranch() {
		candidates = append(candidates, plumbing.NewRemoteReferenceName(RemoteName, head.Name().Short()))
	}
	candidates = append(candidates, plumbing.NewRemoteReferenceName(RemoteName, g.branch))

	for _, name := range candidates {
		ref, err := repo.Reference(name, true)
		if err == nil {
			return ref.Hash(), nil
		}
	}
	return plumbing.ZeroHash, plumbing.ErrReferenceNotFound
}

func (g *GoGit) IsWorkingCopy(dir string) bool {
	_, err := gogit.PlainOpen(dir)
	return err == nil
}

var _ Git = (*GoGit)(nil)
