package analysis

import (
	"math"

	"github.com/san-kum/ambient/internal/ambient"
)

// StripStats summarises a strip layout.
type StripStats struct {
	Count     int
	Covered   float64
	MinWidth  float64
	MaxWidth  float64
	MeanWidth float64
	StdWidth  float64
	MinSpeed  float64
	MaxSpeed  float64
}

func Summarize(strips []ambient.Strip) StripStats {
	if len(strips) == 0 {
		return StripStats{}
	}

	st := StripStats{
		Count:    len(strips),
		MinWidth: math.Inf(1),
		MaxWidth: math.Inf(-1),
		MinSpeed: math.Inf(1),
		MaxSpeed: math.Inf(-1),
	}

	sum := 0.0
	for _, s := range strips {
		sum += s.W
		st.MinWidth = math.Min(st.MinWidth, s.W)
		st.MaxWidth = math.Max(st.MaxWidth, s.W)
		st.MinSpeed = math.Min(st.MinSpeed, s.Speed)
		st.MaxSpeed = math.Max(st.MaxSpeed, s.Speed)
	}
	last := strips[len(strips)-1]
	st.Covered = last.X + last.W
	st.MeanWidth = sum / float64(len(strips))

	variance := 0.0
	for _, s := range strips {
		d := s.W - st.MeanWidth
		variance += d * d
	}
	st.StdWidth = math.Sqrt(variance / float64(len(strips)))

	return st
}

// Widths returns the strip widths in layout order, suitable for plotting.
func Widths(strips []ambient.Strip) []float64 {
	out := make([]float64, len(strips))
	for i, s := range strips {
		out[i] = s.W
	}
	return out
}
