// Package cursor draws the flower marker that trails the pointer on wide,
// pointer-capable viewports.
package cursor

import (
	"image/color"
	"math"

	"github.com/san-kum/ambient/internal/ambient"
)

const (
	PetalCount  = 6
	PetalOffset = 18.0
	PetalRadius = 20.0
	InnerRadius = 9.0
	DotRadius   = 2.0
)

var (
	PetalColor  = color.NRGBA{R: 255, G: 220, B: 120, A: 40}
	InnerColor  = color.NRGBA{R: 255, G: 140, B: 200, A: 160}
	DotColor    = color.NRGBA{R: 255, G: 255, B: 255, A: 255}
	Transparent = color.NRGBA{}
)

// Lerp moves current toward target by the fraction smoothing. Repeated calls
// approach the target geometrically without reaching it.
func Lerp(current, target ambient.Point, smoothing float64) ambient.Point {
	return current.Add(target.Sub(current).Scale(smoothing))
}

// Render draws six additive petals around pos, then the inner disk and the
// centre dot. The surface is left in normal blend mode.
func Render(dst ambient.Surface, pos ambient.Point) {
	dst.SetBlend(ambient.BlendAdditive)
	for i := 0; i < PetalCount; i++ {
		a := float64(i) * 2 * math.Pi / PetalCount
		c := pos.Add(ambient.Point{X: math.Cos(a) * PetalOffset, Y: math.Sin(a) * PetalOffset})
		dst.FillEllipse(c.X, c.Y, PetalRadius, PetalRadius, a, PetalColor)
	}
	dst.FillEllipse(pos.X, pos.Y, InnerRadius, InnerRadius, 0, InnerColor)
	dst.FillEllipse(pos.X, pos.Y, DotRadius, DotRadius, 0, DotColor)
	dst.SetBlend(ambient.BlendNormal)
}
