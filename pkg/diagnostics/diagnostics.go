// Package diagnostics re-runs the installed tools so the operator can see
// that each one resolves. Results are informational only.
package diagnostics

import (
	"context"

	"github.com/arthur-debert/toolstrap/pkg/config"
	"github.com/arthur-debert/toolstrap/pkg/errors"
	"github.com/arthur-debert/toolstrap/pkg/logging"
	"github.com/arthur-debert/toolstrap/pkg/runner"
	"github.com/arthur-debert/toolstrap/pkg/shellenv"
)

// Result is the outcome of one check.
type Result struct {
	Label   string `json:"label"`
	Command string `json:"command"`
	OK      bool   `json:"ok"`
	Output  string `json:"output,omitempty"`
	Error   string `json:"error,omitempty"`
}

// Reporter runs checks with the overlay environment.
type Reporter struct {
	runner runner.Runner
}

// NewReporter creates a reporter running checks through r.
func NewReporter(r runner.Runner) *Reporter {
	return &Reporter{runner: r}
}

// Run executes every check in order. Failed checks do not stop the rest;
// each one is returned as an advisory ErrDiagnostic error alongside the
// full result list.
func (rep *Reporter) Run(ctx context.Context, checks []config.Check, ov shellenv.Overlay) ([]Result, []error) {
	logger := logging.GetLogger("diagnostics")
	results := make([]Result, 0, len(checks))
	var failures []error

	for _, check := range checks {
		cmd := runner.Command{Name: check.Command, Args: check.Args, Env: ov.Environ()}
		res, err := rep.runner.Run(ctx, cmd)

		result := Result{Label: check.Label, Command: cmd.String(), Output: res.FirstLine()}
		if err != nil {
			result.Error = err.Error()
			failures = append(failures, errors.Wrapf(err, errors.ErrDiagnostic, "check %s failed", check.Label).
				WithDetail("check", check.Label).
				WithDetail("command", cmd.String()))
			logger.Warn().Err(err).Str("check", check.Label).Msg("Diagnostic check failed")
		} else {
			result.OK = true
			logger.Debug().Str("check", check.Label).Str("output", result.Output).Msg("Diagnostic check passed")
		}
		results = append(results, result)
	}

	return results, failures
}
