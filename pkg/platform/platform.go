// Package platform refuses to run on an unsupported operating system and
// describes the one it runs on.
package platform

import (
	"runtime"

	"github.com/arthur-debert/toolstrap/pkg/errors"
	"github.com/arthur-debert/toolstrap/pkg/logging"
	"github.com/arthur-debert/toolstrap/pkg/types"
	"github.com/beevik/etree"
)

// SystemVersionPlist is where macOS records its product name and version.
const SystemVersionPlist = "/System/Library/CoreServices/SystemVersion.plist"

// Info describes the host.
type Info struct {
	OS             string `json:"os"`
	Arch           string `json:"arch"`
	ProductName    string `json:"productName,omitempty"`
	ProductVersion string `json:"productVersion,omitempty"`
}

// Guard checks the host against a required OS.
type Guard struct {
	fs        types.FS
	goos      string
	goarch    string
	plistPath string
}

// NewGuard creates a guard for the running host.
func NewGuard(fs types.FS) *Guard {
	return &Guard{
		fs:        fs,
		goos:      runtime.GOOS,
		goarch:    runtime.GOARCH,
		plistPath: SystemVersionPlist,
	}
}

// WithGOOS overrides the detected OS.
func (g *Guard) WithGOOS(goos string) *Guard {
	if goos != "" {
		g.goos = goos
	}
	return g
}

// Check fails with ErrPlatform unless the host OS is required. On darwin
// the product fields are filled from SystemVersion.plist when it can be read.
func (g *Guard) Check(required string) (Info, error) {
	logger := logging.GetLogger("platform")
	info := Info{OS: g.goos, Arch: g.goarch}

	if g.goos != required {
		return info, errors.Newf(errors.ErrPlatform, "unsupported platform %s: toolstrap requires %s", g.goos, required).
			WithDetail("os", g.goos).
			WithDetail("required", required)
	}

	if g.goos == "darwin" {
		data, err := g.fs.ReadFile(g.plistPath)
		if err != nil {
			logger.Debug().Err(err).Str("path", g.plistPath).Msg("Cannot read system version")
			return info, nil
		}
		name, version, err := ParseSystemVersion(data)
		if err != nil {
			logger.Debug().Err(err).Str("path", g.plistPath).Msg("Cannot parse system version")
			return info, nil
		}
		info.ProductName = name
		info.ProductVersion = version
	}

	logger.Info().
		Str("os", info.OS).
		Str("arch", info.Arch).
		Str("product", info.ProductName).
		Str("version", info.ProductVersion).
		Msg("Platform check passed")
	return info, nil
}

// ParseSystemVersion extracts ProductName and ProductVersion from an XML
// property list.
func ParseSystemVersion(data []byte) (name, version string, err error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(data); err != nil {
		return "", "", errors.Wrap(err, errors.ErrInvalidInput, "malformed property list")
	}

	dict := doc.FindElement("/plist/dict")
	if dict == nil {
		return "", "", errors.New(errors.ErrInvalidInput, "property list has no top-level dict")
	}

	values := plistStrings(dict)
	return values["ProductName"], values["ProductVersion"], nil
}

// plistStrings pairs each <key> with the <string> that follows it.
func plistStrings(dict *etree.Element) map[string]string {
	out := make(map[string]string)
	children := dict.ChildElements()
	for i := 0; i+1 < len(children); i++ {
		if children[i].Tag != "key" {
			continue
		}
		if next := children[i+1]; next.Tag == "string" {
			out[children[i].Text()] = next.Text()
		}
	}
	return out
}
