package svg

import "github.com/inamate/svgscene/internal/geometry"

// Circle is positioned by the top-left corner of its bounding square, not by
// its center.
type Circle struct {
	base
	x, y, r float64
}

func NewCircle(x, y, r float64, opts ...Option) *Circle {
	return &Circle{base: newBase(opts), x: x, y: y, r: r}
}

// Center returns the rendered center, (x+r, y+r).
func (c *Circle) Center() geometry.Point {
	return geometry.Point{X: c.x + c.r, Y: c.y + c.r}
}

func (c *Circle) BoundingBox() geometry.Rect {
	return geometry.Rect{X: c.x, Y: c.y, Width: 2 * c.r, Height: 2 * c.r}
}

func (c *Circle) Markup() string {
	center := c.Center()
	return c.element("circle",
		attr("cx", center.X),
		attr("cy", center.Y),
		attr("r", c.r),
	)
}

// Ellipse follows the same top-left convention as Circle.
type Ellipse struct {
	base
	x, y, rx, ry float64
}

func NewEllipse(x, y, rx, ry float64, opts ...Option) *Ellipse {
	return &Ellipse{base: newBase(opts), x: x, y: y, rx: rx, ry: ry}
}

// Center returns the rendered center, (x+rx, y+ry).
func (e *Ellipse) Center() geometry.Point {
	return geometry.Point{X: e.x + e.rx, Y: e.y + e.ry}
}

func (e *Ellipse) BoundingBox() geometry.Rect {
	return geometry.Rect{X: e.x, Y: e.y, Width: 2 * e.rx, Height: 2 * e.ry}
}

func (e *Ellipse) Markup() string {
	center := e.Center()
	return e.element("ellipse",
		attr("cx", center.X),
		attr("cy", center.Y),
		attr("rx", e.rx),
		attr("ry", e.ry),
	)
}
