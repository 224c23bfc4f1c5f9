package export

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inamate/svgscene/internal/engine"
	"github.com/inamate/svgscene/internal/geometry"
	"github.com/inamate/svgscene/internal/svg"
)

func TestCanvasSize(t *testing.T) {
	w, h := CanvasSize(geometry.Rect{X: 10, Y: 5, Width: 20.2, Height: 10}, 16)
	assert.Equal(t, 47, w)
	assert.Equal(t, 31, h)

	w, h = CanvasSize(geometry.Rect{X: -50, Y: -50, Width: 10, Height: 10}, 0)
	assert.Equal(t, 0, w)
	assert.Equal(t, 0, h)
}

func TestWriteStandalone(t *testing.T) {
	sg := engine.NewSceneGraph()
	sg.Root.AddChild(svg.NewRect(0, 0, 100, 50))

	var buf bytes.Buffer
	require.NoError(t, WriteStandalone(&buf, "demo", sg, DefaultMargin))

	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "<?xml"))
	assert.Contains(t, out, `width="116"`)
	assert.Contains(t, out, `height="66"`)
	assert.Contains(t, out, "<title>demo</title>")
	assert.Contains(t, out, "  <svg style=")
	assert.Contains(t, out, "<rect shape-rendering='optimizeSpeed' x='0' y='0' width='100' height='50'/>")
	assert.True(t, strings.HasSuffix(strings.TrimSpace(out), "</svg>"))
}
