package toolchain

import (
	"path/filepath"
	"strings"

	"github.com/arthur-debert/toolstrap/pkg/logging"
	"github.com/arthur-debert/toolstrap/pkg/paths"
	"github.com/arthur-debert/toolstrap/pkg/shellenv"
	"github.com/arthur-debert/toolstrap/pkg/types"
)

// Installation is a located or installed package manager.
type Installation struct {
	// Executable is the absolute path of the package manager binary.
	Executable string `json:"executable"`

	// Root is the installation root, the parent of its bin directory.
	Root string `json:"root"`
}

// NewInstallation describes the package manager installed under root.
func NewInstallation(root, executable string) Installation {
	return Installation{
		Executable: filepath.Join(root, "bin", executable),
		Root:       root,
	}
}

// Locator searches the overlay's PATH for an existing installation.
type Locator struct {
	fs         types.FS
	executable string
}

// NewLocator creates a locator for the named executable.
func NewLocator(fs types.FS, executable string) *Locator {
	return &Locator{fs: fs, executable: executable}
}

// Locate reports the installation found on PATH, if any.
func (l *Locator) Locate(ov shellenv.Overlay) (Installation, bool) {
	logger := logging.GetLogger("toolchain.locator")

	exe, ok := paths.FindExecutable(l.fs, l.executable, ov.Value(paths.EnvPath))
	if !ok {
		logger.Info().Str("executable", l.executable).Msg("Package manager not found on PATH")
		return Installation{}, false
	}

	inst := Installation{Executable: exe, Root: RootOf(exe, l.executable)}
	logger.Info().Str("executable", inst.Executable).Str("root", inst.Root).Msg("Found package manager")
	return inst, true
}

// RootOf strips the /bin/<name> suffix from exe. When exe does not end that
// way the parent of its directory is used.
func RootOf(exe, name string) string {
	suffix := string(filepath.Separator) + filepath.Join("bin", name)
	if root := strings.TrimSuffix(exe, suffix); root != exe && root != "" {
		return root
	}
	return filepath.Dir(filepath.Dir(exe))
}
