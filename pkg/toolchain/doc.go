// Package toolchain finds, installs and activates the package manager.
//
// A run takes one of two paths. When the package manager's executable is
// already on PATH, Locator returns it and nothing is installed (reuse).
// Otherwise Installer clones it into the configured directory, or refreshes
// an earlier clone (install). Either way Activator then evaluates the
// package manager's shellenv output into a new environment overlay.
package toolchain
