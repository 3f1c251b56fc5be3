package testutil

import (
	"context"
	"path/filepath"
	"sync"

	"github.com/arthur-debert/toolstrap/pkg/types"
)

// FakeGit records clones and refreshes. A successful Clone creates
// dir/.git in its filesystem and then runs OnClone, which tests use to lay
// down the files a real checkout would contain.
type FakeGit struct {
	FS         types.FS
	CloneErr   error
	RefreshErr error
	OnClone    func(dir string)

	mu        sync.Mutex
	clones    []string
	refreshes []string
}

// NewFakeGit creates a FakeGit working against fs.
func NewFakeGit(fs types.FS) *FakeGit {
	return &FakeGit{FS: fs}
}

// Clone records url and dir and, unless CloneErr is set, creates a checkout.
func (g *FakeGit) Clone(_ context.Context, url, dir string) error {
	g.mu.Lock()
	g.clones = append(g.clones, url+" "+dir)
	g.mu.Unlock()

	if g.CloneErr != nil {
		return g.CloneErr
	}
	if err := g.FS.MkdirAll(filepath.Join(dir, ".git"), 0755); err != nil {
		return err
	}
	if g.OnClone != nil {
		g.OnClone(dir)
	}
	return nil
}

// Refresh records dir and returns RefreshErr.
func (g *FakeGit) Refresh(_ context.Context, dir string) error {
	g.mu.Lock()
	g.refreshes = append(g.refreshes, dir)
	g.mu.Unlock()
	return g.RefreshErr
}

// IsWorkingCopy reports whether dir/.git exists.
func (g *FakeGit) IsWorkingCopy(dir string) bool {
	return Exists(g.FS, filepath.Join(dir, ".git"))
}

// Clones returns "url dir" for every Clone call.
func (g *FakeGit) Clones() []string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return append([]string(nil), g.clones...)
}

// Refreshes returns the directories passed to Refresh.
func (g *FakeGit) Refreshes() []string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return append([]string(nil), g.refreshes...)
}
