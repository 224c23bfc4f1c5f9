package svg

import (
	"fmt"
	"strings"

	"github.com/inamate/svgscene/internal/geometry"
)

const minSides = 3

// Polygon is a regular polygon whose circumscribing square has its top-left
// corner at (x, y) and whose center-to-vertex radius is size.
type Polygon struct {
	base
	sides    int
	size     float64
	x, y     float64
	rotation float64
	points   []geometry.Point
}

// NewPolygon computes the vertices once, rounded to the profile precision.
// Rotation is in degrees.
func NewPolygon(sides int, size, x, y, rotation float64, opts ...Option) (*Polygon, error) {
	if sides < minSides {
		return nil, fmt.Errorf("%w: polygon needs at least %d sides, got %d", ErrInvalidGeometry, minSides, sides)
	}

	p := &Polygon{
		base:     newBase(opts),
		sides:    sides,
		size:     size,
		x:        x,
		y:        y,
		rotation: rotation,
	}
	center := geometry.Point{X: x + size, Y: y + size}
	p.points = geometry.RegularPolygon(center, size, sides, rotation, p.profile.Precision)
	return p, nil
}

func (p *Polygon) Sides() int { return p.sides }

// Points returns a copy of the vertices in generation order.
func (p *Polygon) Points() []geometry.Point {
	return append([]geometry.Point(nil), p.points...)
}

// BoundingBox is the tight box around the generated vertices.
func (p *Polygon) BoundingBox() geometry.Rect {
	return geometry.BoundsOf(p.points)
}

func (p *Polygon) Markup() string {
	return p.element("polygon", pointsAttr(p.points))
}

// BoundedPolygon is a regular polygon stretched to the ellipse inscribed in
// an explicit rectangle.
type BoundedPolygon struct {
	base
	bounds   geometry.Rect
	sides    int
	rotation float64
	points   []geometry.Point
}

func NewBoundedPolygon(x, y, width, height float64, sides int, rotation float64, opts ...Option) (*BoundedPolygon, error) {
	if sides < minSides {
		return nil, fmt.Errorf("%w: bounded polygon needs at least %d sides, got %d", ErrInvalidGeometry, minSides, sides)
	}

	p := &BoundedPolygon{
		base:     newBase(opts),
		bounds:   geometry.Rect{X: x, Y: y, Width: width, Height: height},
		sides:    sides,
		rotation: rotation,
	}
	p.points = geometry.InscribedPolygon(p.bounds, sides, rotation, p.profile.Precision)
	return p, nil
}

func (p *BoundedPolygon) Sides() int { return p.sides }

func (p *BoundedPolygon) Points() []geometry.Point {
	return append([]geometry.Point(nil), p.points...)
}

// BoundingBox returns the declared rectangle, whatever the vertex extents.
func (p *BoundedPolygon) BoundingBox() geometry.Rect {
	return p.bounds
}

func (p *BoundedPolygon) Markup() string {
	return p.element("polygon", pointsAttr(p.points))
}

func pointsAttr(points []geometry.Point) string {
	parts := make([]string, len(points))
	for i, pt := range points {
		parts[i] = formatNumber(pt.X) + "," + formatNumber(pt.Y)
	}
	return "points='" + strings.Join(parts, " ") + "'"
}
