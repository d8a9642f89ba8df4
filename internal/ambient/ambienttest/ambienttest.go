// Package ambienttest provides recording fakes of the ambient seams for tests.
package ambienttest

import (
	"image/color"

	"github.com/san-kum/ambient/internal/ambient"
)

type Rect struct {
	X, Y, W, H float64
	Color      color.NRGBA
	Blend      ambient.BlendMode
}

type Ellipse struct {
	CX, CY, RX, RY, Rotation float64
	Color                    color.NRGBA
	Blend                    ambient.BlendMode
}

// Surface records every drawing call.
type Surface struct {
	Container string
	W, H      int
	Blend     ambient.BlendMode
	Rects     []Rect
	Ellipses  []Ellipse
	Clears    []color.NRGBA
	Resizes   int
}

func (s *Surface) Resize(w, h int) {
	s.W, s.H = w, h
	s.Resizes++
}

func (s *Surface) Size() (int, int) { return s.W, s.H }

func (s *Surface) Clear(c color.NRGBA) {
	s.Clears = append(s.Clears, c)
	s.Rects = s.Rects[:0]
	s.Ellipses = s.Ellipses[:0]
}

func (s *Surface) FillRect(x, y, w, h float64, c color.NRGBA) {
	s.Rects = append(s.Rects, Rect{X: x, Y: y, W: w, H: h, Color: c, Blend: s.Blend})
}

func (s *Surface) FillEllipse(cx, cy, rx, ry, rotation float64, c color.NRGBA) {
	s.Ellipses = append(s.Ellipses, Ellipse{CX: cx, CY: cy, RX: rx, RY: ry, Rotation: rotation, Color: c, Blend: s.Blend})
}

func (s *Surface) SetBlend(mode ambient.BlendMode) { s.Blend = mode }

// Host mounts surfaces only on the containers it was created with.
type Host struct {
	Containers     map[string]bool
	Surfaces       map[string]*Surface
	Created        int
	Released       int
	PointerVisible bool
	Touch          bool
}

func NewHost(containers ...string) *Host {
	h := &Host{
		Containers:     make(map[string]bool),
		Surfaces:       make(map[string]*Surface),
		PointerVisible: true,
	}
	for _, c := range containers {
		h.Containers[c] = true
	}
	return h
}

func (h *Host) CreateSurface(container string, w, hgt int) (ambient.Surface, error) {
	if !h.Containers[container] {
		return nil, ambient.ErrNoContainer
	}
	s := &Surface{Container: container, W: w, H: hgt}
	h.Surfaces[container] = s
	h.Created++
	return s, nil
}

func (h *Host) ReleaseSurface(s ambient.Surface) {
	if rs, ok := s.(*Surface); ok {
		delete(h.Surfaces, rs.Container)
	}
	h.Released++
}

func (h *Host) SetPointerVisible(v bool) { h.PointerVisible = v }
func (h *Host) PrecisePointer() bool     { return !h.Touch }

// SeqRand cycles through fixed values in [0, 1).
type SeqRand struct {
	Values []float64
	i      int
}

func (r *SeqRand) Float64() float64 {
	if len(r.Values) == 0 {
		return 0
	}
	v := r.Values[r.i%len(r.Values)]
	r.i++
	return v
}

// ConstNoise returns the same value everywhere.
type ConstNoise float64

func (n ConstNoise) Noise3(x, y, z float64) float64 { return float64(n) }
