package gui

import (
	"image/color"
	"slices"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/san-kum/ambient/internal/ambient"
	"github.com/san-kum/ambient/internal/raster"
)

type opKind int

const (
	opClear opKind = iota
	opRect
	opEllipse
	opBlend
)

type op struct {
	kind       opKind
	x, y, w, h float64
	rotation   float64
	c          color.NRGBA
	blend      ambient.BlendMode
}

// Surface records drawing calls made during a tick. Present replays them
// into the surface's render texture on the window thread.
type Surface struct {
	w, h    int
	ops     []op
	tex     rl.RenderTexture2D
	loaded  bool
	resized bool
}

func newSurface(w, h int) *Surface {
	return &Surface{w: w, h: h, resized: true}
}

func (s *Surface) Resize(w, h int) {
	if w == s.w && h == s.h {
		return
	}
	s.w, s.h = w, h
	s.resized = true
}

func (s *Surface) Size() (int, int) { return s.w, s.h }

// Clear drops pending calls, since the clear would overwrite them.
func (s *Surface) Clear(c color.NRGBA) {
	s.ops = append(s.ops[:0], op{kind: opClear, c: c})
}

func (s *Surface) FillRect(x, y, w, h float64, c color.NRGBA) {
	s.ops = append(s.ops, op{kind: opRect, x: x, y: y, w: w, h: h, c: c})
}

func (s *Surface) FillEllipse(cx, cy, rx, ry, rotation float64, c color.NRGBA) {
	s.ops = append(s.ops, op{kind: opEllipse, x: cx, y: cy, w: rx, h: ry, rotation: rotation, c: c})
}

func (s *Surface) SetBlend(mode ambient.BlendMode) {
	s.ops = append(s.ops, op{kind: opBlend, blend: mode})
}

func rlColor(c color.NRGBA) rl.Color {
	return rl.NewColor(c.R, c.G, c.B, c.A)
}

// flush replays pending calls. Must run on the window thread.
func (s *Surface) flush() {
	if s.resized {
		s.unload()
		s.tex = rl.LoadRenderTexture(int32(s.w), int32(s.h))
		s.loaded = true
		s.resized = false
	}
	if len(s.ops) == 0 {
		return
	}

	rl.BeginTextureMode(s.tex)
	additive := false
	for _, o := range s.ops {
		switch o.kind {
		case opClear:
			rl.ClearBackground(rlColor(o.c))
		case opBlend:
			if additive {
				rl.EndBlendMode()
				additive = false
			}
			if o.blend == ambient.BlendAdditive {
				rl.BeginBlendMode(rl.BlendAdditive)
				additive = true
			}
		case opRect:
			rl.DrawRectangleRec(rl.NewRectangle(float32(o.x), float32(o.y), float32(o.w), float32(o.h)), rlColor(o.c))
		case opEllipse:
			rl.DrawTriangleFan(fan(o), rlColor(o.c))
		}
	}
	if additive {
		rl.EndBlendMode()
	}
	rl.EndTextureMode()
	s.ops = s.ops[:0]
}

func fan(o op) []rl.Vector2 {
	outline := ambient.EllipseOutline(o.x, o.y, o.w, o.h, o.rotation, raster.EllipseSegments)
	pts := make([]rl.Vector2, 0, len(outline)+1)
	pts = append(pts, rl.NewVector2(float32(o.x), float32(o.y)))
	for _, p := range outline {
		pts = append(pts, rl.NewVector2(float32(p.X), float32(p.Y)))
	}
	return pts
}

// draw blits the texture to the current target. Render textures are
// stored upside down.
func (s *Surface) draw() {
	if !s.loaded {
		return
	}
	src := rl.NewRectangle(0, 0, float32(s.tex.Texture.Width), -float32(s.tex.Texture.Height))
	rl.DrawTextureRec(s.tex.Texture, src, rl.NewVector2(0, 0), rl.White)
}

func (s *Surface) unload() {
	if s.loaded {
		rl.UnloadRenderTexture(s.tex)
		s.loaded = false
	}
}

// Host mounts render texture surfaces on the window. All methods must be
// called from the window thread.
type Host struct {
	containers []string
	mounted    map[string]*Surface
	precise    bool
	hidden     bool
}

func newHost(precise bool, containers ...string) *Host {
	return &Host{containers: containers, mounted: make(map[string]*Surface), precise: precise}
}

func (h *Host) CreateSurface(container string, w, hgt int) (ambient.Surface, error) {
	if !slices.Contains(h.containers, container) {
		return nil, ambient.ErrNoContainer
	}
	s := newSurface(w, hgt)
	h.mounted[container] = s
	return s, nil
}

func (h *Host) ReleaseSurface(s ambient.Surface) {
	for id, m := range h.mounted {
		if ambient.Surface(m) == s {
			m.unload()
			delete(h.mounted, id)
		}
	}
}

func (h *Host) SetPointerVisible(visible bool) {
	if visible == !h.hidden {
		return
	}
	h.hidden = !visible
	if visible {
		rl.ShowCursor()
	} else {
		rl.HideCursor()
	}
}

func (h *Host) PrecisePointer() bool { return h.precise }

// Present flushes every surface and draws them in container order.
func (h *Host) Present() {
	for _, id := range h.containers {
		if s, ok := h.mounted[id]; ok {
			s.flush()
		}
	}
	for _, id := range h.containers {
		if s, ok := h.mounted[id]; ok {
			s.draw()
		}
	}
}

func (h *Host) close() {
	for id, s := range h.mounted {
		s.unload()
		delete(h.mounted, id)
	}
}
