package stripfield

import (
	"image/color"
	"math"

	"github.com/san-kum/ambient/internal/ambient"
)

const (
	// SpeedFactor damps the per-frame phase advance of every strip.
	SpeedFactor = 3.0
	// StripAlpha is the translucency of a strip band, 0-100.
	StripAlpha = 70.0
	// BandThickness is the height of one sampled band. It exceeds the
	// vertical step on wide screens so neighbouring bands overlap.
	BandThickness = 3.0
	PhaseRange    = 1000.0

	noiseScaleX = 0.01
	noiseScaleY = 0.005
)

// Generate partitions [0, viewportWidth) into consecutive strips with widths
// drawn from [StripMin, StripMax]. The last strip may overhang the viewport.
func Generate(viewportWidth float64, p ambient.DeviceProfile, rnd ambient.Rand) []ambient.Strip {
	if viewportWidth <= 0 || p.StripMin <= 0 || p.StripMax < p.StripMin {
		return nil
	}

	capacity := 0
	if p.StripBase > 0 {
		capacity = int(viewportWidth/p.StripBase) + 1
	}
	strips := make([]ambient.Strip, 0, capacity)

	x := 0.0
	for x < viewportWidth {
		w := ambient.Uniform(rnd, p.StripMin, p.StripMax)
		strips = append(strips, ambient.Strip{
			X:     x,
			W:     w,
			Phase: ambient.Uniform(rnd, 0, PhaseRange),
			Speed: ambient.Uniform(rnd, p.SpeedMin, p.SpeedMax),
		})
		x += w
	}
	return strips
}

// Advance moves the strip phase by one frame. Motion is tied to frame rate,
// not wall-clock time.
func Advance(s *ambient.Strip, speedFactor float64) {
	s.Phase += s.Speed * speedFactor
}

func Render(dst ambient.Surface, s ambient.Strip, height float64, p ambient.DeviceProfile, th ambient.Theme, n ambient.Noise) {
	step := p.VerticalStep
	if step <= 0 {
		step = 1
	}
	for y := 0.0; y < height; y += step {
		dst.FillRect(s.X, y, s.W, BandThickness, BandColor(s, y, th, n))
	}
}

// BandColor is the colour of the band of s starting at y.
func BandColor(s ambient.Strip, y float64, th ambient.Theme, n ambient.Noise) color.NRGBA {
	v := n.Noise3(s.X*noiseScaleX, y*noiseScaleY, s.Phase)
	hue := th.BaseHue + math.Sin(v*2*math.Pi)*th.HueRange
	sat := th.Saturation + v*20
	bri := th.Brightness + math.Sin(s.Phase+y*0.01)*6
	return ambient.HSBA(hue, sat, bri, StripAlpha)
}
