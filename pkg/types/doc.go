// Package types holds the capability interfaces shared across toolstrap
// packages, so that components depend on an interface rather than on the
// operating system.
package types
