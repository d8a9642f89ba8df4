package raster

import (
	"image"
	"image/draw"
	"image/png"
	"io"
	"os"
	"slices"
	"sync"

	"github.com/san-kum/ambient/internal/ambient"
)

// Host is an offscreen ambient.Host. Surfaces composite in the order their
// containers were declared.
type Host struct {
	mu             sync.Mutex
	containers     []string
	mounted        map[string]*Surface
	scale          float64
	precise        bool
	pointerVisible bool
}

func NewHost(containers ...string) *Host {
	return &Host{
		containers:     containers,
		mounted:        make(map[string]*Surface),
		scale:          1,
		precise:        true,
		pointerVisible: true,
	}
}

// SetScale sets the image pixels per viewport pixel of surfaces created
// afterwards.
func (h *Host) SetScale(scale float64) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if scale > 0 {
		h.scale = scale
	}
}

func (h *Host) SetPrecisePointer(precise bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.precise = precise
}

func (h *Host) CreateSurface(container string, w, hgt int) (ambient.Surface, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if !slices.Contains(h.containers, container) {
		return nil, ambient.ErrNoContainer
	}
	s := NewSurface(w, hgt, h.scale)
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

func (h *Host) SetPointerVisible(v bool) {
	h.mu.Lock()
	h.pointerVisible = v
	h.mu.Unlock()
}

func (h *Host) PointerVisible() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.pointerVisible
}

func (h *Host) PrecisePointer() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.precise
}

func (h *Host) Surface(container string) (*Surface, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	s, ok := h.mounted[container]
	return s, ok
}

// Composite flattens all mounted surfaces into a new image.
func (h *Host) Composite() *image.RGBA {
	h.mu.Lock()
	defer h.mu.Unlock()

	var bounds image.Rectangle
	layers := make([]*Surface, 0, len(h.mounted))
	for _, id := range h.containers {
		if s, ok := h.mounted[id]; ok {
			layers = append(layers, s)
			bounds = bounds.Union(s.img.Bounds())
		}
	}

	out := image.NewRGBA(bounds)
	for _, s := range layers {
		draw.Draw(out, s.img.Bounds(), s.img, s.img.Bounds().Min, draw.Over)
	}
	return out
}

func EncodePNG(w io.Writer, img image.Image) error {
	return png.Encode(w, img)
}

func WritePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func ReadPNG(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return png.Decode(f)
}
