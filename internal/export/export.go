// Package export wraps rendered drawing markup into a standalone SVG file.
package export

import (
	"fmt"
	"io"
	"math"

	svgo "github.com/ajstarks/svgo"

	"github.com/inamate/svgscene/internal/engine"
	"github.com/inamate/svgscene/internal/geometry"
)

// DefaultMargin is added to the right and bottom of the exported canvas.
const DefaultMargin = 16

// CanvasSize returns the integer canvas size that holds box plus margin,
// measured from the origin.
func CanvasSize(box geometry.Rect, margin int) (int, int) {
	w := int(math.Ceil(math.Max(0, box.X+box.Width))) + margin
	h := int(math.Ceil(math.Max(0, box.Y+box.Height))) + margin
	return w, h
}

// WriteStandalone writes an XML document containing the drawing's markup,
// sized to fit its top-level shapes.
func WriteStandalone(w io.Writer, title string, sg *engine.SceneGraph, margin int) error {
	width, height := CanvasSize(sg.Bounds(), margin)

	canvas := svgo.New(w)
	canvas.Start(width, height)
	if title != "" {
		canvas.Title(title)
	}
	if _, err := fmt.Fprint(canvas.Writer, sg.Root.Markup(1)); err != nil {
		return fmt.Errorf("write markup: %w", err)
	}
	canvas.End()
	return nil
}
