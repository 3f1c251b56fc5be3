// Package text renders reports as plain text. The same layout is used by
// the terminal renderer with styles applied.
package text

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/arthur-debert/toolstrap/pkg/bootstrap"
)

// Painter applies a named style to s.
type Painter func(style, s string) string

// Plain leaves text unstyled.
func Plain(_ string, s string) string { return s }

// Renderer provides plain text output without colors or styling
type Renderer struct {
	output io.Writer
}

// New creates a new text renderer
func New(output io.Writer) *Renderer {
	return &Renderer{output: output}
}

// RenderReport renders the report as plain text
func (r *Renderer) RenderReport(report *bootstrap.Report) error {
	return Layout(r.output, report, Plain)
}

// RenderError renders an error as plain text
func (r *Renderer) RenderError(err error) error {
	_, werr := fmt.Fprintf(r.output, "Error: %v\n", err)
	return werr
}

// RenderMessage renders a simple message
func (r *Renderer) RenderMessage(msg string) error {
	_, err := fmt.Fprintln(r.output, msg)
	return err
}

// Layout writes report to w, painting each part with paint.
func Layout(w io.Writer, report *bootstrap.Report, paint Painter) error {
	var b bytes.Buffer
	row := func(label, value string) {
		fmt.Fprintf(&b, "%s %s\n", paint("Label", fmt.Sprintf("%-13s", label)), value)
	}

	b.WriteString(paint("Header", "toolstrap") + "\n")

	row("Platform", platformLine(report))
	if report.Path != "" {
		row("Toolchain", toolchainLine(report, paint))
	}
	if report.StartupFile != "" {
		row("Startup file", paint("Path", report.StartupFile)+" "+changedWord(report.StartupChanged, paint))
	}
	if len(report.Bindings) > 0 {
		row("Environment", fmt.Sprintf("%d variables from shellenv", len(report.Bindings)))
	}
	if len(report.Packages.Packages) > 0 {
		row("Packages", packagesLine(report, paint))
	}

	if report.RuntimeEnvFile != "" && len(report.RuntimeEnv) > 0 {
		row("Runtime env", paint("Path", report.RuntimeEnvFile))
		for _, c := range report.RuntimeEnv {
			if c.Changed {
				fmt.Fprintf(&b, "  %s %s\n", paint("Success", "+"), c.Line)
			} else {
				fmt.Fprintf(&b, "  %s %s %s\n", paint("Muted", "="), paint("Key", c.Key), paint("Muted", "already set"))
			}
		}
	}

	if len(report.Diagnostics) > 0 {
		b.WriteString(paint("Header", "Diagnostics") + "\n")
		for _, d := range report.Diagnostics {
			mark := paint("Success", "ok  ")
			if !d.OK {
				mark = paint("Error", "FAIL")
			}
			fmt.Fprintf(&b, "  %s %-12s %s\n", mark, d.Label, d.Output)
		}
	}

	if len(report.Warnings) > 0 {
		b.WriteString(paint("Header", "Warnings") + "\n")
		for _, warning := range report.Warnings {
			fmt.Fprintf(&b, "  %s %s\n", paint("Warning", "!"), warning.Message)
		}
	}

	_, err := w.Write(b.Bytes())
	return err
}

func platformLine(report *bootstrap.Report) string {
	p := report.Platform
	arch := p.OS
	if p.Arch != "" {
		arch += "/" + p.Arch
	}
	if p.ProductName == "" {
		return arch
	}
	return strings.TrimSpace(p.ProductName+" "+p.ProductVersion) + " (" + arch + ")"
}

func toolchainLine(report *bootstrap.Report, paint Painter) string {
	detail := string(report.Path)
	if report.InstallAction != "" {
		detail += ", " + string(report.InstallAction)
	}
	return paint("Path", report.Installation.Root) + " " + paint("Muted", "("+detail+")")
}

func packagesLine(report *bootstrap.Report, paint Painter) string {
	names := strings.Join(report.Packages.Packages, " ")
	if report.Packages.Success {
		return names + " " + paint("Success", "installed")
	}
	return names + " " + paint("Warning", fmt.Sprintf("install exited with status %d", report.Packages.ExitCode))
}

func changedWord(changed bool, paint Painter) string {
	if changed {
		return paint("Success", "updated")
	}
	return paint("Muted", "unchanged")
}
