package analysis

import (
	"image"
	"image/color"
	"math"
	"testing"

	"github.com/san-kum/ambient/internal/ambient"
)

func solid(w, h int, c color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i], img.Pix[i+1], img.Pix[i+2], img.Pix[i+3] = c.R, c.G, c.B, c.A
	}
	return img
}

func TestCompareIdentical(t *testing.T) {
	a := solid(30, 30, color.RGBA{R: 40, G: 80, B: 120, A: 255})
	b := solid(30, 30, color.RGBA{R: 40, G: 80, B: 120, A: 255})

	res := Compare(a, b, DefaultThreshold)
	if res.Count != 0 {
		t.Errorf("expected no differing pixels, got %d", res.Count)
	}
	if !res.Bounds.Empty() {
		t.Errorf("expected empty bounds, got %v", res.Bounds)
	}
	if res.Total != 900 {
		t.Errorf("expected total 900, got %d", res.Total)
	}
	if res.Resized {
		t.Error("expected no resize for equal sizes")
	}
}

func TestCompareThreshold(t *testing.T) {
	a := solid(10, 10, color.RGBA{R: 100, G: 100, B: 100, A: 255})
	b := solid(10, 10, color.RGBA{R: 100, G: 100, B: 100, A: 255})
	b.SetRGBA(2, 3, color.RGBA{R: 110, G: 100, B: 100, A: 255})
	b.SetRGBA(7, 8, color.RGBA{R: 100, G: 89, B: 100, A: 255})

	res := Compare(a, b, 10)
	if res.Count != 1 {
		t.Fatalf("expected 1 differing pixel, got %d", res.Count)
	}
	if !res.Differs(7, 8) || res.Differs(2, 3) {
		t.Error("expected only (7,8) to exceed the threshold")
	}
	if res.Bounds != image.Rect(7, 8, 8, 9) {
		t.Errorf("expected bounds (7,8)-(8,9), got %v", res.Bounds)
	}
	if math.Abs(res.Percent()-1) > 1e-9 {
		t.Errorf("expected 1%%, got %.4f", res.Percent())
	}
}

func TestCompareRegions(t *testing.T) {
	a := solid(10, 9, color.RGBA{A: 255})
	b := solid(10, 9, color.RGBA{A: 255})
	for x := 0; x < 10; x++ {
		b.SetRGBA(x, 8, color.RGBA{R: 255, A: 255})
	}

	res := Compare(a, b, DefaultThreshold)
	if len(res.Regions) != 3 {
		t.Fatalf("expected 3 regions, got %d", len(res.Regions))
	}
	want := map[string]int{"top": 0, "middle": 0, "bottom": 10}
	for _, r := range res.Regions {
		if r.Count != want[r.Name] {
			t.Errorf("region %s: expected %d, got %d", r.Name, want[r.Name], r.Count)
		}
		if r.Total != 30 {
			t.Errorf("region %s: expected total 30, got %d", r.Name, r.Total)
		}
	}
	if res.Bounds != image.Rect(0, 8, 10, 9) {
		t.Errorf("unexpected bounds %v", res.Bounds)
	}
}

func TestCompareResizes(t *testing.T) {
	a := solid(20, 10, color.RGBA{R: 50, G: 50, B: 50, A: 255})
	b := solid(40, 20, color.RGBA{R: 50, G: 50, B: 50, A: 255})

	res := Compare(a, b, DefaultThreshold)
	if !res.Resized {
		t.Fatal("expected second image to be resized")
	}
	if res.SizeB != image.Pt(40, 20) {
		t.Errorf("expected original size recorded, got %v", res.SizeB)
	}
	if res.Total != 200 {
		t.Errorf("expected total from first image, got %d", res.Total)
	}
	if res.Count != 0 {
		t.Errorf("expected uniform images to match after scaling, got %d", res.Count)
	}
}

func TestOverlay(t *testing.T) {
	a := solid(4, 4, color.RGBA{B: 200, A: 255})
	b := solid(4, 4, color.RGBA{B: 200, A: 255})
	b.SetRGBA(1, 2, color.RGBA{G: 255, A: 255})

	out := Overlay(a, Compare(a, b, DefaultThreshold))
	if got := out.RGBAAt(1, 2); got != (color.RGBA{R: 255, A: 255}) {
		t.Errorf("expected red at diff, got %v", got)
	}
	if got := out.RGBAAt(0, 0); got != (color.RGBA{B: 200, A: 255}) {
		t.Errorf("expected original colour elsewhere, got %v", got)
	}
}

func TestSummarize(t *testing.T) {
	if st := Summarize(nil); st.Count != 0 {
		t.Errorf("expected empty stats, got %+v", st)
	}

	strips := []ambient.Strip{
		{X: 0, W: 10, Speed: 0.01},
		{X: 10, W: 20, Speed: 0.03},
		{X: 30, W: 30, Speed: 0.02},
	}
	st := Summarize(strips)
	if st.Count != 3 {
		t.Errorf("expected 3 strips, got %d", st.Count)
	}
	if st.Covered != 60 {
		t.Errorf("expected coverage 60, got %v", st.Covered)
	}
	if st.MinWidth != 10 || st.MaxWidth != 30 || st.MeanWidth != 20 {
		t.Errorf("unexpected widths %+v", st)
	}
	if math.Abs(st.StdWidth-math.Sqrt(200.0/3)) > 1e-9 {
		t.Errorf("unexpected std %v", st.StdWidth)
	}
	if st.MinSpeed != 0.01 || st.MaxSpeed != 0.03 {
		t.Errorf("unexpected speeds %+v", st)
	}

	w := Widths(strips)
	if len(w) != 3 || w[1] != 20 {
		t.Errorf("unexpected widths %v", w)
	}
}
