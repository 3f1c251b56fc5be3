package styles_test

import (
	"testing"

	"github.com/arthur-debert/toolstrap/pkg/ui/styles"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultHasSemanticStyles(t *testing.T) {
	reg := styles.Default()
	for _, name := range []string{"Header", "Label", "Success", "Error", "Warning", "Muted", "Path", "Key"} {
		_, ok := reg[name]
		assert.True(t, ok, name)
	}
}

func TestLoad(t *testing.T) {
	reg, err := styles.Load([]byte(`
colors:
  accent: {light: "#000000", dark: "#FFFFFF"}
styles:
  Accent: {bold: true, foreground: accent}
  Wide: {width: 10}
`))
	require.NoError(t, err)
	assert.Len(t, reg, 2)
	assert.Contains(t, reg.Render("Accent", "hi"), "hi")
	assert.Len(t, reg.Render("Wide", "abc"), 10, "width pads the text")

	_, err = styles.Load([]byte("styles: [not, a, map]"))
	assert.Error(t, err)
}

func TestRenderUnknownStyle(t *testing.T) {
	assert.Equal(t, "plain", styles.Registry{}.Render("Nope", "plain"))
}
