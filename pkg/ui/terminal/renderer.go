// Package terminal provides rich terminal output with colors and styling
package terminal

import (
	"fmt"
	"io"

	"github.com/arthur-debert/toolstrap/pkg/bootstrap"
	"github.com/arthur-debert/toolstrap/pkg/ui/styles"
	"github.com/arthur-debert/toolstrap/pkg/ui/text"
)

// Renderer renders the text layout with lipgloss styles
type Renderer struct {
	output io.Writer
	styles styles.Registry
}

// New creates a new terminal renderer
func New(w io.Writer) *Renderer {
	return &Renderer{output: w, styles: styles.Default()}
}

// RenderReport renders the report with styling
func (r *Renderer) RenderReport(report *bootstrap.Report) error {
	return text.Layout(r.output, report, r.styles.Render)
}

// RenderError renders an error in the Error style
func (r *Renderer) RenderError(err error) error {
	_, werr := fmt.Fprintln(r.output, r.styles.Render("Error", "Error:")+" "+err.Error())
	return werr
}

// RenderMessage renders a simple message
func (r *Renderer) RenderMessage(msg string) error {
	_, err := fmt.Fprintln(r.output, msg)
	return err
}
