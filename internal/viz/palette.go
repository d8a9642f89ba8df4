package viz

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/ambient/internal/ambient"
	"github.com/san-kum/ambient/internal/stripfield"
)

type flat float64

func (f flat) Noise3(_, _, _ float64) float64 { return float64(f) }

// Hex formats c as #rrggbb, dropping alpha.
func Hex(c color.NRGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// Swatch renders width background cells of colour c.
func Swatch(c color.NRGBA, width int) string {
	return lipgloss.NewStyle().
		Background(lipgloss.Color(Hex(c))).
		Render(strings.Repeat(" ", max(width, 0)))
}

// Ramp samples the band colours of th across the noise range [0, 1].
func Ramp(th ambient.Theme, n int) []color.NRGBA {
	if n <= 0 {
		return nil
	}
	out := make([]color.NRGBA, n)
	for i := range out {
		v := 0.0
		if n > 1 {
			v = float64(i) / float64(n-1)
		}
		out[i] = stripfield.BandColor(ambient.Strip{}, 0, th, flat(v))
	}
	return out
}

// ThemeRamp renders Ramp(th, width) as one coloured cell per sample.
func ThemeRamp(th ambient.Theme, width int) string {
	var sb strings.Builder
	for _, c := range Ramp(th, width) {
		sb.WriteString(Swatch(c, 1))
	}
	return sb.String()
}
