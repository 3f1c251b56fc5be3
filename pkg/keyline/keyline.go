// Package keyline maintains text files as sets of uniquely keyed lines.
//
// A keyed line has the shape KEY="value"; its key prefix is everything up to
// and including the first '='. The Appender only ever adds a line at the end
// of a file and only when no existing line already carries the key, so the
// first value written for a key is the one that stays. Unrelated lines and
// their order are left exactly as found.
//
// The same append-if-absent primitive is exposed for free-form lines through
// EnsureContaining, used for shell startup files where the marker is a
// substring of the statement rather than a key.
package keyline

import (
	"bytes"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/toolstrap/pkg/errors"
	"github.com/arthur-debert/toolstrap/pkg/logging"
	"github.com/arthur-debert/toolstrap/pkg/types"
)

const (
	dirPerm  fs.FileMode = 0755
	filePerm fs.FileMode = 0644
)

// Appender appends lines to files through a types.FS.
type Appender struct {
	fs types.FS
}

// New returns an Appender operating on fsys.
func New(fsys types.FS) *Appender {
	return &Appender{fs: fsys}
}

// KeyPrefix returns the key part of line including the first '='.
// Leading whitespace is ignored.
func KeyPrefix(line string) (string, error) {
	trimmed := strings.TrimSpace(line)
	idx := strings.IndexByte(trimmed, '=')
	if idx <= 0 {
		return "", errors.Newf(errors.ErrInvalidInput, "line %q has no KEY= prefix", line)
	}
	return trimmed[:idx+1], nil
}

// EnsureKey appends line to path unless a line starting with the same key
// prefix is already present. It reports whether the file changed.
func (a *Appender) EnsureKey(path, line string) (bool, error) {
	prefix, err := KeyPrefix(line)
	if err != nil {
		return false, err
	}
	return a.ensure(path, line, func(existing string) bool {
		return strings.HasPrefix(existing, prefix)
	})
}

// EnsureContaining appends line to path unless some existing line contains
// needle. It reports whether the file changed.
func (a *Appender) EnsureContaining(path, needle, line string) (bool, error) {
	if needle == "" {
		return false, errors.New(errors.ErrInvalidInput, "needle must not be empty")
	}
	return a.ensure(path, line, func(existing string) bool {
		return strings.Contains(existing, needle)
	})
}

func (a *Appender) ensure(path, line string, matches func(string) bool) (bool, error) {
	logger := logging.GetLogger("keyline").With().Str("path", path).Logger()

	if strings.ContainsAny(line, "\r\n") {
		return false, errors.Newf(errors.ErrInvalidInput, "line %q spans multiple lines", line)
	}

	content, err := a.read(path)
	if err != nil {
		return false, err
	}

	if anyLine(content, matches) {
		logger.Debug().Str("line", line).Msg("Line already present, leaving file untouched")
		return false, nil
	}

	if err := a.fs.MkdirAll(filepath.Dir(path), dirPerm); err != nil {
		return false, errors.Wrapf(err, errors.ErrDirCreate, "cannot create parent of %s", path)
	}

	var buf bytes.Buffer
	if len(content) > 0 && content[len(content)-1] != '\n' {
		buf.WriteByte('\n')
	}
	buf.WriteString(line)
	buf.WriteByte('\n')

	if err := a.fs.AppendFile(path, buf.Bytes(), filePerm); err != nil {
		return false, errors.Wrapf(err, errors.ErrFileWrite, "cannot append to %s", path).
			WithDetail("line", line)
	}

	logger.Info().Str("line", line).Msg("Appended line")
	return true, nil
}

// read returns the file content, treating a missing file as empty.
func (a *Appender) read(path string) ([]byte, error) {
	content, err := a.fs.ReadFile(path)
	if err == nil {
		return content, nil
	}
	if errors.IsNotExist(err) {
		return nil, nil
	}
	return nil, errors.Wrapf(err, errors.ErrFileAccess, "cannot read %s", path)
}

// anyLine walks every line of content with no length limit. Trailing
// carriage returns and surrounding blanks are ignored.
func anyLine(content []byte, matches func(string) bool) bool {
	for _, line := range bytes.Split(content, []byte{'\n'}) {
		if matches(string(bytes.TrimSpace(line))) {
			return true
		}
	}
	return false
}
