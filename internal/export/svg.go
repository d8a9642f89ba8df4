// Package export writes scene frames and cursor paths as SVG documents.
package export

import (
	"fmt"
	"image/color"
	"math"
	"slices"
	"strings"
	"sync"

	"github.com/san-kum/ambient/internal/ambient"
)

type element struct {
	markup string
	blend  ambient.BlendMode
}

// Surface records drawing calls as SVG elements.
type Surface struct {
	w, h  int
	blend ambient.BlendMode
	elems []element
}

func NewSurface(w, h int) *Surface {
	return &Surface{w: w, h: h}
}

func (s *Surface) Resize(w, h int) { s.w, s.h = w, h }

func (s *Surface) Size() (int, int) { return s.w, s.h }

func (s *Surface) SetBlend(mode ambient.BlendMode) { s.blend = mode }

func (s *Surface) Len() int { return len(s.elems) }

// Clear drops recorded elements and paints c over the whole surface.
func (s *Surface) Clear(c color.NRGBA) {
	s.elems = s.elems[:0]
	if c.A == 0 {
		return
	}
	s.elems = append(s.elems, element{
		markup: fmt.Sprintf(`<rect width="100%%" height="100%%" %s/>`, fill(c)),
	})
}

func (s *Surface) FillRect(x, y, w, h float64, c color.NRGBA) {
	s.elems = append(s.elems, element{
		markup: fmt.Sprintf(`<rect x="%.2f" y="%.2f" width="%.2f" height="%.2f" %s/>`, x, y, w, h, fill(c)),
		blend:  s.blend,
	})
}

func (s *Surface) FillEllipse(cx, cy, rx, ry, rotation float64, c color.NRGBA) {
	var sb strings.Builder
	if rx == ry {
		sb.WriteString(fmt.Sprintf(`<circle cx="%.2f" cy="%.2f" r="%.2f" %s/>`, cx, cy, rx, fill(c)))
	} else {
		sb.WriteString(fmt.Sprintf(`<ellipse cx="%.2f" cy="%.2f" rx="%.2f" ry="%.2f"`, cx, cy, rx, ry))
		if rotation != 0 {
			sb.WriteString(fmt.Sprintf(` transform="rotate(%.2f %.2f %.2f)"`, rotation*180/math.Pi, cx, cy))
		}
		sb.WriteString(" " + fill(c) + "/>")
	}
	s.elems = append(s.elems, element{markup: sb.String(), blend: s.blend})
}

// writeBody emits the elements, grouping additive runs under a plus-lighter
// blend group.
func (s *Surface) writeBody(sb *strings.Builder) {
	open := false
	for i, e := range s.elems {
		if e.blend == ambient.BlendAdditive && (i == 0 || s.elems[i-1].blend != ambient.BlendAdditive) {
			sb.WriteString(`<g style="mix-blend-mode:plus-lighter">` + "\n")
			open = true
		}
		if e.blend != ambient.BlendAdditive && open {
			sb.WriteString("</g>\n")
			open = false
		}
		sb.WriteString(e.markup)
		sb.WriteByte('\n')
	}
	if open {
		sb.WriteString("</g>\n")
	}
}

// Document returns the surface as a standalone SVG.
func (s *Surface) Document() string {
	var sb strings.Builder
	header(&sb, s.w, s.h)
	s.writeBody(&sb)
	sb.WriteString("</svg>")
	return sb.String()
}

func header(sb *strings.Builder, w, h int) {
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
`, w, h, w, h))
}

func fill(c color.NRGBA) string {
	attr := fmt.Sprintf(`fill="#%02x%02x%02x"`, c.R, c.G, c.B)
	if c.A != 255 {
		attr += fmt.Sprintf(` fill-opacity="%.3f"`, float64(c.A)/255)
	}
	return attr
}

// Host mounts SVG surfaces on declared containers and stacks them as layers.
type Host struct {
	mu         sync.Mutex
	containers []string
	mounted    map[string]*Surface
	precise    bool
}

func NewHost(containers ...string) *Host {
	return &Host{containers: containers, mounted: make(map[string]*Surface), precise: true}
}

func (h *Host) CreateSurface(container string, w, hgt int) (ambient.Surface, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if !slices.Contains(h.containers, container) {
		return nil, ambient.ErrNoContainer
	}
	s := NewSurface(w, hgt)
	h.mounted[container] = s
	return s, nil
}

func (h *Host) ReleaseSurface(s ambient.Surface) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for id, m := range h.mounted {
		if ambient.Surface(m) == s {
			delete(h.mounted, id)
		}
	}
}

func (h *Host) SetPointerVisible(bool) {}

func (h *Host) PrecisePointer() bool { return h.precise }

// Document stacks every mounted surface, one group per container.
func (h *Host) Document() string {
	h.mu.Lock()
	defer h.mu.Unlock()

	w, hgt := 0, 0
	for _, s := range h.mounted {
		w, hgt = max(w, s.w), max(hgt, s.h)
	}

	var sb strings.Builder
	header(&sb, w, hgt)
	for _, id := range h.containers {
		s, ok := h.mounted[id]
		if !ok {
			continue
		}
		sb.WriteString(fmt.Sprintf(`<g id="%s">`+"\n", id))
		s.writeBody(&sb)
		sb.WriteString("</g>\n")
	}
	sb.WriteString("</svg>")
	return sb.String()
}

// PathToSVG draws one polyline per path, fitted to width x height with 10%
// padding. Strokes are applied to paths in order and repeat if short.
func PathToSVG(paths [][]ambient.Point, width, height int, strokes ...string) string {
	var all []ambient.Point
	for _, p := range paths {
		all = append(all, p...)
	}
	if len(all) < 2 {
		return ""
	}
	if len(strokes) == 0 {
		strokes = []string{"#ff9ff3"}
	}

	minX, maxX := all[0].X, all[0].X
	minY, maxY := all[0].Y, all[0].Y
	for _, p := range all {
		minX, maxX = math.Min(minX, p.X), math.Max(maxX, p.X)
		minY, maxY = math.Min(minY, p.Y), math.Max(maxY, p.Y)
	}

	rangeX := maxX - minX
	rangeY := maxY - minY
	if rangeX == 0 {
		rangeX = 1
	}
	if rangeY == 0 {
		rangeY = 1
	}
	minX -= rangeX * 0.1
	minY -= rangeY * 0.1
	rangeX *= 1.2
	rangeY *= 1.2

	var sb strings.Builder
	header(&sb, width, height)
	sb.WriteString(`<rect width="100%" height="100%" fill="#0a0a0a"/>` + "\n")

	for i, path := range paths {
		if len(path) < 2 {
			continue
		}
		sb.WriteString(fmt.Sprintf(`<path fill="none" stroke="%s" stroke-width="1.5" d="M`, strokes[i%len(strokes)]))
		for j, p := range path {
			x := (p.X - minX) / rangeX * float64(width)
			y := (p.Y - minY) / rangeY * float64(height)
			if j == 0 {
				sb.WriteString(fmt.Sprintf("%.1f,%.1f", x, y))
			} else {
				sb.WriteString(fmt.Sprintf(" L%.1f,%.1f", x, y))
			}
		}
		sb.WriteString(`"/>` + "\n")
	}

	sb.WriteString("</svg>")
	return sb.String()
}
