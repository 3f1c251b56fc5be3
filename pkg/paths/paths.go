// Package paths provides centralized path handling for toolstrap.
// It resolves the user's home and XDG directories and locates executables
// on a search path through the types.FS abstraction.
package paths

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/arthur-debert/toolstrap/pkg/errors"
	"github.com/arthur-debert/toolstrap/pkg/types"
)

// Environment variable names
const (
	// EnvHome is the standard home directory variable
	EnvHome = "HOME"

	// EnvPath is the executable search path variable
	EnvPath = "PATH"

	// EnvConfigFile points at an explicit toolstrap config file
	EnvConfigFile = "TOOLSTRAP_CONFIG"

	// EnvConfigDir overrides the XDG config directory for toolstrap
	EnvConfigDir = "TOOLSTRAP_CONFIG_DIR"
)

const (
	// AppDirName is the directory name for toolstrap-specific files
	AppDirName = "toolstrap"

	// ConfigFileName is the name of the user configuration file
	ConfigFileName = "config.toml"
)

// GetHomeDirectory returns the user's home directory.
// It first tries os.UserHomeDir(), then falls back to the HOME environment variable.
func GetHomeDirectory() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err == nil && homeDir != "" {
		return homeDir, nil
	}

	homeDir = os.Getenv(EnvHome)
	if homeDir != "" {
		return homeDir, nil
	}

	return "", errors.New(errors.ErrFileAccess, "unable to determine home directory: neither os.UserHomeDir() nor HOME environment variable are available")
}

// ExpandHome expands a leading ~ to the user's home directory.
// Paths of the form ~user are returned unchanged.
func ExpandHome(path string) (string, error) {
	if path == "" || path[0] != '~' {
		return path, nil
	}
	if len(path) > 1 && path[1] != '/' && path[1] != filepath.Separator {
		return path, nil
	}

	homeDir, err := GetHomeDirectory()
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrFileAccess, "cannot expand %s", path)
	}
	if len(path) == 1 {
		return homeDir, nil
	}
	return filepath.Join(homeDir, path[2:]), nil
}

// ConfigDir returns the directory holding toolstrap's user configuration.
func ConfigDir() string {
	if dir := os.Getenv(EnvConfigDir); dir != "" {
		if expanded, err := ExpandHome(dir); err == nil {
			return expanded
		}
		return dir
	}
	return filepath.Join(xdg.ConfigHome, AppDirName)
}

// ConfigFilePath returns the user configuration file path.
// TOOLSTRAP_CONFIG wins over the XDG location.
func ConfigFilePath() string {
	if file := os.Getenv(EnvConfigFile); file != "" {
		if expanded, err := ExpandHome(file); err == nil {
			return expanded
		}
		return file
	}
	return filepath.Join(ConfigDir(), ConfigFileName)
}

// FindExecutable searches searchPath (a list separated by os.PathListSeparator)
// for an executable regular file called name. Names containing a separator
// are checked directly. Empty entries are skipped rather than meaning ".".
func FindExecutable(fsys types.FS, name, searchPath string) (string, bool) {
	if name == "" {
		return "", false
	}
	if strings.ContainsRune(name, '/') {
		if isExecutable(fsys, name) {
			return name, true
		}
		return "", false
	}

	for _, dir := range filepath.SplitList(searchPath) {
		if dir == "" {
			continue
		}
		candidate := filepath.Join(dir, name)
		if isExecutable(fsys, candidate) {
			return candidate, true
		}
	}
	return "", false
}

func isExecutable(fsys types.FS, path string) bool {
	info, err := fsys.Stat(path)
	if err != nil {
		return false
	}
	mode := info.Mode()
	return mode.IsRegular() && mode&fs.FileMode(0111) != 0
}
