package ambient

import (
	"image/color"
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

// HSBA converts hue in degrees and saturation, brightness and alpha on a
// 0-100 scale to a straight-alpha colour. Hue wraps, the rest clamp.
func HSBA(h, s, b, a float64) color.NRGBA {
	h = math.Mod(h, 360)
	if h < 0 {
		h += 360
	}
	c := colorful.Hsv(h, clamp(s, 0, 100)/100, clamp(b, 0, 100)/100).Clamped()
	r, g, bl := c.RGB255()
	return color.NRGBA{R: r, G: g, B: bl, A: Alpha(a)}
}

// Alpha maps a 0-100 opacity to 0-255.
func Alpha(a float64) uint8 {
	return uint8(math.Round(clamp(a, 0, 100) * 255 / 100))
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
