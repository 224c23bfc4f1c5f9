package geometry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRound(t *testing.T) {
	tests := []struct {
		v         float64
		precision int
		want      float64
	}{
		{2.5, 0, 3},
		{-2.5, 0, -3},
		{0.5, 0, 1},
		{-0.5, 0, -1},
		{2.4, 0, 2},
		{0.125, 2, 0.13},
		{-0.125, 2, -0.13},
		{12.3456, 3, 12.346},
		{7, 3, 7},
		{2.5, -1, 3},
		// scaling works on the binary value: 1.005 is stored just below 1.005
		{1.005, 2, 1},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Round(tt.v, tt.precision), "Round(%v, %d)", tt.v, tt.precision)
	}
}

func TestNormalizeDegrees(t *testing.T) {
	assert.Equal(t, 0.0, NormalizeDegrees(0))
	assert.Equal(t, 0.0, NormalizeDegrees(360))
	assert.Equal(t, 30.0, NormalizeDegrees(390))
	assert.Equal(t, 330.0, NormalizeDegrees(-30))
	assert.Equal(t, 30.0, NormalizeDegrees(-330))
	assert.Equal(t, 90.0, NormalizeDegrees(-990))
}

func TestRegularPolygonVertexCount(t *testing.T) {
	for n := 3; n <= 12; n++ {
		points := RegularPolygon(Point{X: 50, Y: 50}, 25, n, 17, 3)
		assert.Len(t, points, n)
	}
	assert.Empty(t, RegularPolygon(Point{}, 10, 0, 0, 0))
}

func TestRegularPolygonSquare(t *testing.T) {
	points := RegularPolygon(Point{X: 10, Y: 10}, 10, 4, 0, 0)
	require.Len(t, points, 4)
	assert.Equal(t, []Point{{20, 10}, {10, 20}, {0, 10}, {10, 0}}, points)

	box := BoundsOf(points)
	assert.Equal(t, Rect{X: 0, Y: 0, Width: 20, Height: 20}, box)
	assert.Equal(t, box.Width, box.Height)
}

func TestRegularPolygonRotationWrap(t *testing.T) {
	for _, rotation := range []float64{0, 15, 45, 90, 137} {
		base := RegularPolygon(Point{X: 40, Y: 40}, 30, 5, rotation, 3)
		for _, k := range []float64{-2, -1, 1, 3} {
			wrapped := RegularPolygon(Point{X: 40, Y: 40}, 30, 5, rotation+360*k, 3)
			assert.Equal(t, base, wrapped, "rotation %v + 360*%v", rotation, k)
		}
	}
}

func TestRegularPolygonDeterministic(t *testing.T) {
	a := RegularPolygon(Point{X: 3.3, Y: 7.7}, 12.5, 7, -42, 3)
	b := RegularPolygon(Point{X: 3.3, Y: 7.7}, 12.5, 7, -42, 3)
	assert.Equal(t, a, b)
}

func TestInscribedPolygon(t *testing.T) {
	points := InscribedPolygon(Rect{X: 0, Y: 0, Width: 40, Height: 20}, 4, 0, 0)
	assert.Equal(t, []Point{{40, 10}, {20, 20}, {0, 10}, {20, 0}}, points)
	assert.Len(t, InscribedPolygon(Rect{Width: 10, Height: 10}, 9, 33, 3), 9)
}

func TestBoundsOfContainsAndTight(t *testing.T) {
	points := RegularPolygon(Point{X: 100, Y: 60}, 35, 7, 23, 0)
	box := BoundsOf(points)

	var left, right, top, bottom bool
	for _, p := range points {
		assert.True(t, box.Contains(p.X, p.Y), "point %v outside %v", p, box)
		left = left || p.X == box.X
		right = right || p.X == box.X+box.Width
		top = top || p.Y == box.Y
		bottom = bottom || p.Y == box.Y+box.Height
	}
	assert.True(t, left && right && top && bottom, "box %v is not tight", box)
}

func TestBoundsOfZeroCoordinates(t *testing.T) {
	box := BoundsOf([]Point{{0, 0}, {-5, 3}, {4, 0}})
	assert.Equal(t, Rect{X: -5, Y: 0, Width: 9, Height: 3}, box)
	assert.Equal(t, Rect{}, BoundsOf(nil))
}

func TestRectUnion(t *testing.T) {
	a := Rect{X: 0, Y: 0, Width: 10, Height: 10}
	b := Rect{X: 5, Y: -5, Width: 10, Height: 10}
	assert.Equal(t, Rect{X: 0, Y: -5, Width: 15, Height: 15}, a.Union(b))
	assert.Equal(t, a, a.Union(Rect{}))
	assert.Equal(t, b, Rect{}.Union(b))
}
