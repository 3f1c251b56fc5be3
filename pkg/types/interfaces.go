package types

import (
	"io/fs"
)

// FS is the filesystem interface required for toolstrap operations
type FS interface {
	// File operations
	Stat(name string) (fs.FileInfo, error)
	ReadFile(name string) ([]byte, error)
	WriteFile(name string, data []byte, perm fs.FileMode) error

	// AppendFile writes data at the end of name, creating it with perm
	// when it does not exist. Existing content is never rewritten.
	AppendFile(name string, data []byte, perm fs.FileMode) error

	// Directory operations
	MkdirAll(path string, perm fs.FileMode) error
	ReadDir(name string) ([]fs.DirEntry, error)
}
