package ambient

import "math"

// EllipseOutline returns n+1 points around an ellipse rotated by rotation
// radians. The last point repeats the first.
func EllipseOutline(cx, cy, rx, ry, rotation float64, n int) []Point {
	if n < 3 {
		n = 3
	}
	sin, cos := math.Sincos(rotation)
	pts := make([]Point, n+1)
	for i := range pts {
		t := 2 * math.Pi * float64(i%n) / float64(n)
		ex, ey := rx*math.Cos(t), ry*math.Sin(t)
		pts[i] = Point{X: cx + ex*cos - ey*sin, Y: cy + ex*sin + ey*cos}
	}
	return pts
}
