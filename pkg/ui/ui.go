// Package ui renders bootstrap reports for the operator in terminal
// (styled), text (plain) or JSON form.
package ui

import (
	"io"

	"github.com/arthur-debert/toolstrap/pkg/bootstrap"
	"github.com/arthur-debert/toolstrap/pkg/errors"
	"github.com/arthur-debert/toolstrap/pkg/ui/json"
	"github.com/arthur-debert/toolstrap/pkg/ui/terminal"
	"github.com/arthur-debert/toolstrap/pkg/ui/text"
)

// Renderer is the common interface for all output renderers.
type Renderer interface {
	// RenderReport renders the outcome of a run, complete or partial.
	RenderReport(report *bootstrap.Report) error

	// RenderError renders a fatal error
	RenderError(err error) error

	// RenderMessage renders a simple message
	RenderMessage(msg string) error
}

// NewRenderer creates a renderer for format writing to w. FormatAuto is
// resolved with DetectFormat.
func NewRenderer(format Format, w io.Writer) (Renderer, error) {
	switch format {
	case FormatAuto:
		return NewRenderer(DetectFormat(w), w)
	case FormatTerminal:
		return terminal.New(w), nil
	case FormatText:
		return text.New(w), nil
	case FormatJSON:
		return json.New(w), nil
	default:
		return nil, errors.Newf(errors.ErrInvalidInput, "unknown format: %v", format)
	}
}
