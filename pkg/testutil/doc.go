// Package testutil provides the fakes and filesystem helpers shared by
// toolstrap's package tests.
//
// Key components:
//   - NewMemoryFS: an in-memory types.FS backed by afero
//   - FakeRunner: scripted runner.Runner keyed by command line, with a call log
//   - FakeGit: a vcs.Git double that materialises working copies in a FS
//
// Tests should build everything inline and never touch the real home
// directory; only pkg/runner and pkg/filesystem exercise the OS directly.
package testutil
