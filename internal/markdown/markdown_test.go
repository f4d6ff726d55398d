package markdown

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRender(t *testing.T) {
	r := NewRenderer()

	out, err := r.Render("# Launch Day\n\nWe shipped **three** sites.\n\n- [x] design\n")
	require.NoError(t, err)
	assert.Contains(t, out, `<h1 id="launch-day">Launch Day</h1>`)
	assert.Contains(t, out, "<strong>three</strong>")
	assert.Contains(t, out, `type="checkbox"`)
}

func TestRenderDropsRawHTML(t *testing.T) {
	out, err := NewRenderer().Render("hello <script>alert(1)</script>")
	require.NoError(t, err)
	assert.NotContains(t, out, "<script>")
}
