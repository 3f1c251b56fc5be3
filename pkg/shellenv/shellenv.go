// Package shellenv turns the output of a package manager's environment-export
// command (for Homebrew, `brew shellenv`) into variable bindings, and carries
// them as an Overlay through the rest of a run.
//
// The output is parsed with a real shell parser rather than pattern matching,
// so quoting and parameter expansions such as ${PATH+:$PATH} resolve the way a
// shell would resolve them. Only assignments are evaluated: `export NAME=value`,
// `NAME=value; export NAME` and bare `NAME=value`. Statements that would need
// a shell to run (command substitution, conditionals, eval) are skipped and
// reported back to the caller.
package shellenv

import (
	"bytes"
	"strings"

	"github.com/arthur-debert/toolstrap/pkg/errors"
	"github.com/arthur-debert/toolstrap/pkg/logging"
	"mvdan.cc/sh/v3/expand"
	"mvdan.cc/sh/v3/syntax"
)

// Evaluation is the result of applying shellenv output to an overlay.
type Evaluation struct {
	// Overlay is the base overlay with all bindings applied.
	Overlay Overlay

	// Bindings lists the assignments in the order they were applied.
	Bindings []Binding

	// Skipped holds the statements that were not evaluated.
	Skipped []string
}

// Evaluate applies the assignments in script on top of base. Each value is
// expanded against the bindings made so far. It fails only when nothing in
// the script could be evaluated.
func Evaluate(script string, base Overlay) (Evaluation, error) {
	logger := logging.GetLogger("shellenv")

	stmts, unparsed := parseStatements(script)
	eval := Evaluation{Overlay: base, Skipped: unparsed}

	for _, stmt := range stmts {
		assigns, ok := assignmentsOf(stmt)
		if !ok {
			eval.Skipped = append(eval.Skipped, render(stmt))
			continue
		}

		for _, as := range assigns {
			b, err := evaluateAssign(as, eval.Overlay)
			if err != nil {
				logger.Debug().Err(err).Str("statement", render(stmt)).Msg("Skipping assignment")
				eval.Skipped = append(eval.Skipped, render(stmt))
				break
			}
			eval.Overlay = eval.Overlay.With(b)
			eval.Bindings = append(eval.Bindings, b)
		}
	}

	if len(eval.Bindings) == 0 {
		return eval, errors.New(errors.ErrShellenv, "environment-export output contained no usable assignments").
			WithDetail("skipped", len(eval.Skipped))
	}

	logger.Debug().
		Int("bindings", len(eval.Bindings)).
		Int("skipped", len(eval.Skipped)).
		Msg("Evaluated environment-export output")

	return eval, nil
}

// parseStatements parses the whole script, falling back to one line at a
// time so a single odd line does not discard the rest.
func parseStatements(script string) ([]*syntax.Stmt, []string) {
	parser := syntax.NewParser(syntax.Variant(syntax.LangBash))

	if file, err := parser.Parse(strings.NewReader(script), "shellenv"); err == nil {
		return file.Stmts, nil
	}

	var stmts []*syntax.Stmt
	var unparsed []string
	for _, line := range strings.Split(script, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		file, err := parser.Parse(strings.NewReader(line), "shellenv")
		if err != nil {
			unparsed = append(unparsed, strings.TrimSpace(line))
			continue
		}
		stmts = append(stmts, file.Stmts...)
	}
	return stmts, unparsed
}

// assignmentsOf extracts the assignments of an export or bare-assignment
// statement. Anything else reports false.
func assignmentsOf(stmt *syntax.Stmt) ([]*syntax.Assign, bool) {
	if stmt.Negated || stmt.Background || len(stmt.Redirs) > 0 {
		return nil, false
	}

	switch cmd := stmt.Cmd.(type) {
	case *syntax.DeclClause:
		if cmd.Variant == nil || cmd.Variant.Value != "export" {
			return nil, false
		}
		var assigns []*syntax.Assign
		for _, as := range cmd.Args {
			// `export NAME` only marks an existing binding for export,
			// and everything in an overlay is exported already.
			if as.Naked {
				continue
			}
			assigns = append(assigns, as)
		}
		return assigns, true
	case *syntax.CallExpr:
		if len(cmd.Args) > 0 || len(cmd.Assigns) == 0 {
			return nil, false
		}
		return cmd.Assigns, true
	default:
		return nil, false
	}
}

func evaluateAssign(as *syntax.Assign, current Overlay) (Binding, error) {
	if as.Name == nil || as.Index != nil || as.Array != nil {
		return Binding{}, errors.New(errors.ErrShellenv, "unsupported assignment form")
	}

	value := ""
	if as.Value != nil {
		cfg := &expand.Config{Env: expand.ListEnviron(current.Environ()...)}
		expanded, err := expand.Literal(cfg, as.Value)
		if err != nil {
			return Binding{}, errors.Wrapf(err, errors.ErrShellenv, "cannot expand value of %s", as.Name.Value)
		}
		value = expanded
	}

	if as.Append {
		value = current.Value(as.Name.Value) + value
	}

	return Binding{Name: as.Name.Value, Value: value}, nil
}

func render(stmt *syntax.Stmt) string {
	var buf bytes.Buffer
	if err := syntax.NewPrinter().Print(&buf, stmt); err != nil {
		return ""
	}
	return strings.TrimSpace(buf.String())
}
