package shellenv_test

import (
	"testing"

	"github.com/arthur-debert/toolstrap/pkg/shellenv"
	"github.com/stretchr/testify/assert"
)

func TestFromEnviron(t *testing.T) {
	ov := shellenv.FromEnviron([]string{"A=1", "B=x=y", "A=2", "malformed", "=nokey", "EMPTY="})

	assert.Equal(t, "2", ov.Value("A"), "later duplicates win")
	assert.Equal(t, "x=y", ov.Value("B"))
	v, ok := ov.Get("EMPTY")
	assert.True(t, ok)
	assert.Equal(t, "", v)
	assert.Equal(t, 3, ov.Len())
	assert.Equal(t, []string{"A=2", "B=x=y", "EMPTY="}, ov.Environ())
}

func TestOverlayWithIsACopy(t *testing.T) {
	base := shellenv.FromEnviron([]string{"A=1"})
	next := base.With(shellenv.Binding{Name: "A", Value: "2"}, shellenv.Binding{Name: "B", Value: "3"})

	assert.Equal(t, "1", base.Value("A"))
	assert.Equal(t, 1, base.Len())
	assert.Equal(t, "2", next.Value("A"))
	assert.Equal(t, "3", next.Value("B"))
}

func TestPrependPath(t *testing.T) {
	base := shellenv.FromEnviron([]string{"PATH=/usr/bin:/bin"})

	ov := base.PrependPath("/opt/homebrew/bin", "/opt/homebrew/sbin")
	assert.Equal(t, []string{"/opt/homebrew/bin", "/opt/homebrew/sbin", "/usr/bin", "/bin"}, ov.PathList())
	assert.True(t, ov.HasPathEntry("/opt/homebrew/bin/"))

	again := ov.PrependPath("/opt/homebrew/bin", "/usr/bin")
	assert.Equal(t, ov.Value("PATH"), again.Value("PATH"), "entries already present are not duplicated")

	assert.Equal(t, "/usr/bin:/bin", base.Value("PATH"))
}

func TestPrependPath_EmptyPath(t *testing.T) {
	ov := shellenv.FromEnviron(nil).PrependPath("/opt/homebrew/bin")
	assert.Equal(t, "/opt/homebrew/bin", ov.Value("PATH"))
}
