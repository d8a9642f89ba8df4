package analysis

import (
	"image"
	"image/color"
	"image/draw"

	xdraw "golang.org/x/image/draw"
)

// DefaultThreshold is the per-channel difference above which a pixel counts
// as changed.
const DefaultThreshold = 10

// Region is a horizontal band of the compared area.
type Region struct {
	Name  string
	Count int
	Total int
}

func (r Region) Percent() float64 {
	if r.Total == 0 {
		return 0
	}
	return float64(r.Count) / float64(r.Total) * 100
}

// DiffResult describes how two images differ.
type DiffResult struct {
	SizeA, SizeB image.Point
	Resized      bool
	Threshold    int
	Count        int
	Total        int
	// Bounds is empty when nothing differs.
	Bounds  image.Rectangle
	Regions []Region
	mask    []bool
	stride  int
}

func (d *DiffResult) Percent() float64 {
	if d.Total == 0 {
		return 0
	}
	return float64(d.Count) / float64(d.Total) * 100
}

// Differs reports whether the pixel at (x, y), relative to the first
// image's origin, exceeded the threshold.
func (d *DiffResult) Differs(x, y int) bool {
	if x < 0 || y < 0 || x >= d.stride || d.stride == 0 {
		return false
	}
	i := y*d.stride + x
	return i < len(d.mask) && d.mask[i]
}

// Compare diffs b against a. If the sizes differ b is rescaled to a's size
// first.
func Compare(a, b image.Image, threshold int) *DiffResult {
	ab, bb := a.Bounds(), b.Bounds()
	res := &DiffResult{
		SizeA:     ab.Size(),
		SizeB:     bb.Size(),
		Threshold: threshold,
	}

	if ab.Size() != bb.Size() {
		scaled := image.NewRGBA(image.Rect(0, 0, ab.Dx(), ab.Dy()))
		xdraw.CatmullRom.Scale(scaled, scaled.Bounds(), b, bb, xdraw.Src, nil)
		b, bb = scaled, scaled.Bounds()
		res.Resized = true
	}

	w, h := ab.Dx(), ab.Dy()
	res.Total = w * h
	res.stride = w
	res.mask = make([]bool, w*h)

	minX, minY, maxX, maxY := w, h, -1, -1
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			ca := color.NRGBAModel.Convert(a.At(ab.Min.X+x, ab.Min.Y+y)).(color.NRGBA)
			cb := color.NRGBAModel.Convert(b.At(bb.Min.X+x, bb.Min.Y+y)).(color.NRGBA)
			if !exceeds(ca, cb, threshold) {
				continue
			}
			res.mask[y*w+x] = true
			res.Count++
			minX, maxX = min(minX, x), max(maxX, x)
			minY, maxY = min(minY, y), max(maxY, y)
		}
	}
	if res.Count > 0 {
		res.Bounds = image.Rect(minX, minY, maxX+1, maxY+1)
	}

	bands := []struct {
		name       string
		start, end int
	}{
		{"top", 0, h / 3},
		{"middle", h / 3, 2 * h / 3},
		{"bottom", 2 * h / 3, h},
	}
	for _, band := range bands {
		r := Region{Name: band.name, Total: (band.end - band.start) * w}
		for y := band.start; y < band.end; y++ {
			for x := 0; x < w; x++ {
				if res.mask[y*w+x] {
					r.Count++
				}
			}
		}
		res.Regions = append(res.Regions, r)
	}

	return res
}

func exceeds(a, b color.NRGBA, threshold int) bool {
	return absDiff(a.R, b.R) > threshold ||
		absDiff(a.G, b.G) > threshold ||
		absDiff(a.B, b.B) > threshold
}

func absDiff(a, b uint8) int {
	if a > b {
		return int(a - b)
	}
	return int(b - a)
}

// Overlay returns a copy of a with every differing pixel painted red.
func Overlay(a image.Image, res *DiffResult) *image.RGBA {
	ab := a.Bounds()
	out := image.NewRGBA(image.Rect(0, 0, ab.Dx(), ab.Dy()))
	draw.Draw(out, out.Bounds(), a, ab.Min, draw.Src)

	red := color.RGBA{R: 255, A: 255}
	for y := 0; y < ab.Dy(); y++ {
		for x := 0; x < ab.Dx(); x++ {
			if res.Differs(x, y) {
				out.SetRGBA(x, y, red)
			}
		}
	}
	return out
}
