package svg

import "github.com/inamate/svgscene/internal/geometry"

// Rect is an axis-aligned rectangle.
type Rect struct {
	base
	x, y, width, height float64
}

func NewRect(x, y, width, height float64, opts ...Option) *Rect {
	return &Rect{
		base:   newBase(opts),
		x:      x,
		y:      y,
		width:  width,
		height: height,
	}
}

func (r *Rect) BoundingBox() geometry.Rect {
	return geometry.Rect{X: r.x, Y: r.y, Width: r.width, Height: r.height}
}

func (r *Rect) Markup() string {
	return r.element("rect",
		attr("x", r.x),
		attr("y", r.y),
		attr("width", r.width),
		attr("height", r.height),
	)
}
