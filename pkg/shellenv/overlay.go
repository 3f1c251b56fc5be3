package shellenv

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Binding is a single NAME=value assignment taken from shellenv output.
type Binding struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// Overlay is an immutable view of a process environment. Steps that change
// the environment return a new Overlay instead of mutating the process, so
// every later step sees exactly the bindings handed to it.
type Overlay struct {
	vars map[string]string
}

// FromEnviron builds an overlay from KEY=value pairs as returned by
// os.Environ. Later duplicates win; malformed entries are ignored.
func FromEnviron(environ []string) Overlay {
	vars := make(map[string]string, len(environ))
	for _, kv := range environ {
		idx := strings.IndexByte(kv, '=')
		if idx <= 0 {
			continue
		}
		vars[kv[:idx]] = kv[idx+1:]
	}
	return Overlay{vars: vars}
}

// Current snapshots the running process environment.
func Current() Overlay {
	return FromEnviron(os.Environ())
}

// Get returns the value bound to name.
func (o Overlay) Get(name string) (string, bool) {
	v, ok := o.vars[name]
	return v, ok
}

// Value returns the value bound to name or the empty string.
func (o Overlay) Value(name string) string {
	return o.vars[name]
}

// With returns a copy of the overlay with the bindings applied in order.
func (o Overlay) With(bindings ...Binding) Overlay {
	vars := make(map[string]string, len(o.vars)+len(bindings))
	for k, v := range o.vars {
		vars[k] = v
	}
	for _, b := range bindings {
		vars[b.Name] = b.Value
	}
	return Overlay{vars: vars}
}

// Environ renders the overlay as sorted KEY=value pairs for a child process.
func (o Overlay) Environ() []string {
	out := make([]string, 0, len(o.vars))
	for k, v := range o.vars {
		out = append(out, k+"="+v)
	}
	sort.Strings(out)
	return out
}

// Len returns the number of bound variables.
func (o Overlay) Len() int {
	return len(o.vars)
}

// PathList splits PATH into its entries.
func (o Overlay) PathList() []string {
	return filepath.SplitList(o.vars["PATH"])
}

// HasPathEntry reports whether dir is one of the PATH entries.
func (o Overlay) HasPathEntry(dir string) bool {
	clean := filepath.Clean(dir)
	for _, entry := range o.PathList() {
		if entry != "" && filepath.Clean(entry) == clean {
			return true
		}
	}
	return false
}

// PrependPath returns a copy with dirs placed at the front of PATH, in the
// given order. Entries already on PATH are not duplicated.
func (o Overlay) PrependPath(dirs ...string) Overlay {
	var front []string
	for _, d := range dirs {
		if d != "" && !o.HasPathEntry(d) {
			front = append(front, d)
		}
	}
	if len(front) == 0 {
		return o
	}
	parts := append(front, o.PathList()...)
	return o.With(Binding{Name: "PATH", Value: strings.Join(parts, string(os.PathListSeparator))})
}
