package tui

import (
	"fmt"
	"image"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Cells renders img as cols x rows terminal cells, two image rows per cell
// using the upper half block. Pixels outside img render black.
func Cells(img *image.RGBA, cols, rows int) string {
	var sb strings.Builder
	for r := 0; r < rows; r++ {
		var run strings.Builder
		var runTop, runBottom string
		flush := func() {
			if run.Len() == 0 {
				return
			}
			sb.WriteString(lipgloss.NewStyle().
				Foreground(lipgloss.Color(runTop)).
				Background(lipgloss.Color(runBottom)).
				Render(run.String()))
			run.Reset()
		}

		for c := 0; c < cols; c++ {
			top := hexAt(img, c, 2*r)
			bottom := hexAt(img, c, 2*r+1)
			if top != runTop || bottom != runBottom {
				flush()
				runTop, runBottom = top, bottom
			}
			run.WriteString("▀")
		}
		flush()
		if r < rows-1 {
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}

func hexAt(img *image.RGBA, x, y int) string {
	if img == nil || !(image.Point{X: x, Y: y}).In(img.Bounds()) {
		return "#000000"
	}
	c := img.RGBAAt(x, y)
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}
