package canvas

import (
	"image"
	"image/color"
	"slices"
	"sync"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/san-kum/ambient/internal/ambient"
	"github.com/san-kum/ambient/internal/raster"
)

var (
	whiteOnce     sync.Once
	whiteSubImage *ebiten.Image
)

// white returns a 1x1 white source for DrawTriangles. Sampling the centre
// of a 3x3 image avoids bleeding at the edges.
func white() *ebiten.Image {
	whiteOnce.Do(func() {
		img := ebiten.NewImage(3, 3)
		img.Fill(color.White)
		whiteSubImage = img.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)
	})
	return whiteSubImage
}

// Surface draws into an offscreen ebiten image.
type Surface struct {
	img   *ebiten.Image
	w, h  int
	blend ambient.BlendMode

	vs []ebiten.Vertex
	is []uint16
}

func newSurface(w, h int) *Surface {
	s := &Surface{}
	s.Resize(w, h)
	return s
}

func (s *Surface) Resize(w, h int) {
	if s.img != nil && w == s.w && h == s.h {
		return
	}
	if s.img != nil {
		s.img.Deallocate()
	}
	s.w, s.h = w, h
	s.img = ebiten.NewImage(max(w, 1), max(h, 1))
}

func (s *Surface) Size() (int, int) { return s.w, s.h }

func (s *Surface) SetBlend(mode ambient.BlendMode) { s.blend = mode }

func (s *Surface) Clear(c color.NRGBA) {
	s.img.Fill(c)
}

func (s *Surface) FillRect(x, y, w, h float64, c color.NRGBA) {
	var p vector.Path
	p.MoveTo(float32(x), float32(y))
	p.LineTo(float32(x+w), float32(y))
	p.LineTo(float32(x+w), float32(y+h))
	p.LineTo(float32(x), float32(y+h))
	p.Close()
	s.fill(&p, c, false)
}

func (s *Surface) FillEllipse(cx, cy, rx, ry, rotation float64, c color.NRGBA) {
	var p vector.Path
	for i, pt := range ambient.EllipseOutline(cx, cy, rx, ry, rotation, raster.EllipseSegments) {
		if i == 0 {
			p.MoveTo(float32(pt.X), float32(pt.Y))
		} else {
			p.LineTo(float32(pt.X), float32(pt.Y))
		}
	}
	p.Close()
	s.fill(&p, c, true)
}

func (s *Surface) fill(p *vector.Path, c color.NRGBA, antialias bool) {
	s.vs, s.is = p.AppendVerticesAndIndicesForFilling(s.vs[:0], s.is[:0])
	r, g, b, a := float32(c.R)/255, float32(c.G)/255, float32(c.B)/255, float32(c.A)/255
	for i := range s.vs {
		s.vs[i].SrcX, s.vs[i].SrcY = 1, 1
		s.vs[i].ColorR, s.vs[i].ColorG, s.vs[i].ColorB, s.vs[i].ColorA = r, g, b, a
	}

	op := &ebiten.DrawTrianglesOptions{
		AntiAlias:      antialias,
		ColorScaleMode: ebiten.ColorScaleModeStraightAlpha,
		Blend:          ebiten.BlendSourceOver,
	}
	if s.blend == ambient.BlendAdditive {
		op.Blend = ebiten.BlendLighter
	}
	s.img.DrawTriangles(s.vs, s.is, white(), op)
}

// Host mounts offscreen images and composites them onto the screen.
type Host struct {
	mu         sync.Mutex
	containers []string
	mounted    map[string]*Surface
	precise    bool
}

func newHost(precise bool, containers ...string) *Host {
	return &Host{containers: containers, mounted: make(map[string]*Surface), precise: precise}
}

func (h *Host) CreateSurface(container string, w, hgt int) (ambient.Surface, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if !slices.Contains(h.containers, container) {
		return nil, ambient.ErrNoContainer
	}
	s := newSurface(w, hgt)
	h.mounted[container] = s
	return s, nil
}

func (h *Host) ReleaseSurface(s ambient.Surface) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for id, m := range h.mounted {
		if ambient.Surface(m) == s {
			m.img.Deallocate()
			delete(h.mounted, id)
		}
	}
}

func (h *Host) SetPointerVisible(visible bool) {
	if visible {
		ebiten.SetCursorMode(ebiten.CursorModeVisible)
	} else {
		ebiten.SetCursorMode(ebiten.CursorModeHidden)
	}
}

func (h *Host) PrecisePointer() bool { return h.precise }

// Present draws the mounted surfaces onto screen in container order.
func (h *Host) Present(screen *ebiten.Image) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, id := range h.containers {
		if s, ok := h.mounted[id]; ok {
			screen.DrawImage(s.img, nil)
		}
	}
}
