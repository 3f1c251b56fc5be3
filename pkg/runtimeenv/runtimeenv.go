// Package runtimeenv writes the managed KEY="value" lines that let the
// downstream runtime's build system find the installed toolchain.
package runtimeenv

import (
	"bytes"
	"text/template"

	"github.com/arthur-debert/toolstrap/pkg/config"
	"github.com/arthur-debert/toolstrap/pkg/errors"
	"github.com/arthur-debert/toolstrap/pkg/keyline"
	"github.com/arthur-debert/toolstrap/pkg/logging"
	"github.com/arthur-debert/toolstrap/pkg/types"
)

// TemplateData is available to entry value templates.
type TemplateData struct {
	// Prefix is the package manager's reported prefix.
	Prefix string
	// Root is the installation root.
	Root string
}

// Change reports what happened to one managed key.
type Change struct {
	Key     string `json:"key"`
	Line    string `json:"line"`
	Changed bool   `json:"changed"`
}

// Render expands every entry into its KEY="value" line, in order.
func Render(entries []config.EnvEntry, data TemplateData) ([]string, error) {
	lines := make([]string, 0, len(entries))
	for _, e := range entries {
		tmpl, err := template.New(e.Key).Option("missingkey=error").Parse(e.Value)
		if err != nil {
			return nil, errors.Wrapf(err, errors.ErrTemplate, "invalid value template for %s", e.Key).
				WithDetail("key", e.Key)
		}
		var buf bytes.Buffer
		if err := tmpl.Execute(&buf, data); err != nil {
			return nil, errors.Wrapf(err, errors.ErrTemplate, "cannot render value for %s", e.Key).
				WithDetail("key", e.Key)
		}
		lines = append(lines, e.Key+`="`+buf.String()+`"`)
	}
	return lines, nil
}

// Patcher applies rendered entries to a runtime-environment file.
type Patcher struct {
	appender *keyline.Appender
}

// NewPatcher creates a patcher writing through fs.
func NewPatcher(fs types.FS) *Patcher {
	return &Patcher{appender: keyline.New(fs)}
}

// Apply renders entries and appends each line whose key is absent from
// path. Keys that are already present keep their existing value. The first
// write error stops the run of entries and is returned with the changes made
// so far.
func (p *Patcher) Apply(path string, entries []config.EnvEntry, data TemplateData) ([]Change, error) {
	logger := logging.GetLogger("runtimeenv")

	lines, err := Render(entries, data)
	if err != nil {
		return nil, err
	}

	changes := make([]Change, 0, len(lines))
	for i, line := range lines {
		changed, err := p.appender.EnsureKey(path, line)
		if err != nil {
			return changes, err
		}
		changes = append(changes, Change{Key: entries[i].Key, Line: line, Changed: changed})
	}

	added := 0
	for _, c := range changes {
		if c.Changed {
			added++
		}
	}
	logger.Info().Str("path", path).Int("added", added).Int("present", len(changes)-added).Msg("Runtime environment patched")
	return changes, nil
}
