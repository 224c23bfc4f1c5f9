// Package geometry holds the pure math behind the shape nodes: regular
// polygon vertices, decimal rounding and axis-aligned bounding boxes.
package geometry

import "math"

// Round rounds v to precision decimal places, halves away from zero.
// A negative precision is treated as zero. Rounding applies to the binary
// value, so Round(1.005, 2) is 1 because 1.005 is stored as 1.00499...
func Round(v float64, precision int) float64 {
	if precision <= 0 {
		return math.Round(v)
	}
	scale := math.Pow10(precision)
	return math.Round(v*scale) / scale
}

// NormalizeDegrees wraps a rotation into [0, 360).
func NormalizeDegrees(degrees float64) float64 {
	d := math.Mod(degrees, 360)
	if d < 0 {
		d += 360
	}
	return d
}

// RegularPolygon returns the vertices of a regular polygon centred on center
// with the given circumradius. Vertex i sits at angle 2πi/sides plus the
// rotation, so the first vertex points along +X before rotation.
func RegularPolygon(center Point, radius float64, sides int, rotation float64, precision int) []Point {
	return polygonPoints(center, radius, radius, sides, rotation, precision)
}

// InscribedPolygon returns the vertices of a regular polygon stretched to fit
// the ellipse inscribed in bounds.
func InscribedPolygon(bounds Rect, sides int, rotation float64, precision int) []Point {
	cx, cy := bounds.Center()
	return polygonPoints(Point{X: cx, Y: cy}, bounds.Width/2, bounds.Height/2, sides, rotation, precision)
}

func polygonPoints(center Point, rx, ry float64, sides int, rotation float64, precision int) []Point {
	if sides <= 0 {
		return nil
	}

	rad := 2 * math.Pi * (NormalizeDegrees(rotation) / 360)
	step := 2 * math.Pi / float64(sides)

	points := make([]Point, 0, sides)
	for i := 0; i < sides; i++ {
		theta := step*float64(i) + rad
		points = append(points, Point{
			X: Round(center.X+rx*math.Cos(theta), precision),
			Y: Round(center.Y+ry*math.Sin(theta), precision),
		})
	}
	return points
}
