package ambient

import (
	"math"
	"testing"
)

func TestEllipseOutline(t *testing.T) {
	pts := EllipseOutline(10, 20, 5, 2, 0, 4)
	if len(pts) != 5 {
		t.Fatalf("expected 5 points, got %d", len(pts))
	}
	if pts[0] != pts[4] {
		t.Errorf("expected closed outline, got %v and %v", pts[0], pts[4])
	}
	if pts[0].Dist(Point{X: 15, Y: 20}) > 1e-9 {
		t.Errorf("expected first point on the major axis, got %v", pts[0])
	}
	if pts[1].Dist(Point{X: 10, Y: 22}) > 1e-9 {
		t.Errorf("expected second point on the minor axis, got %v", pts[1])
	}
}

func TestEllipseOutlineRotated(t *testing.T) {
	pts := EllipseOutline(0, 0, 5, 2, math.Pi/2, 4)
	if pts[0].Dist(Point{X: 0, Y: 5}) > 1e-9 {
		t.Errorf("expected major axis along y, got %v", pts[0])
	}
}

func TestEllipseOutlineMinimumSegments(t *testing.T) {
	if n := len(EllipseOutline(0, 0, 1, 1, 0, 1)); n != 4 {
		t.Errorf("expected 4 points for the minimum triangle, got %d", n)
	}
}
