package raster

import (
	"bytes"
	"errors"
	"image/color"
	"path/filepath"
	"testing"

	"github.com/san-kum/ambient/internal/ambient"
)

func TestHostContainers(t *testing.T) {
	h := NewHost("bg")
	if _, err := h.CreateSurface("missing", 10, 10); !errors.Is(err, ambient.ErrNoContainer) {
		t.Errorf("expected ErrNoContainer, got %v", err)
	}
	s, err := h.CreateSurface("bg", 10, 10)
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if _, ok := h.Surface("bg"); !ok {
		t.Error("expected mounted surface")
	}
	h.ReleaseSurface(s)
	if _, ok := h.Surface("bg"); ok {
		t.Error("expected released surface")
	}
}

func TestHostCompositeOrder(t *testing.T) {
	h := NewHost("bg", "overlay")
	over, _ := h.CreateSurface("overlay", 4, 4)
	bg, _ := h.CreateSurface("bg", 4, 4)

	bg.Clear(color.NRGBA{B: 255, A: 255})
	over.Clear(color.NRGBA{})
	over.FillRect(0, 0, 2, 2, color.NRGBA{R: 255, A: 255})

	img := h.Composite()
	if got := img.RGBAAt(0, 0); got != (color.RGBA{R: 255, A: 255}) {
		t.Errorf("expected overlay on top, got %v", got)
	}
	if got := img.RGBAAt(3, 3); got != (color.RGBA{B: 255, A: 255}) {
		t.Errorf("expected background visible, got %v", got)
	}
}

func TestHostPointerState(t *testing.T) {
	h := NewHost()
	if !h.PrecisePointer() || !h.PointerVisible() {
		t.Error("expected precise visible pointer by default")
	}
	h.SetPrecisePointer(false)
	h.SetPointerVisible(false)
	if h.PrecisePointer() || h.PointerVisible() {
		t.Error("pointer state not updated")
	}
}

func TestHostScale(t *testing.T) {
	h := NewHost("bg")
	h.SetScale(0.5)
	s, _ := h.CreateSurface("bg", 100, 40)
	if b := s.(*Surface).Image().Bounds(); b.Dx() != 50 || b.Dy() != 20 {
		t.Errorf("expected 50x20, got %v", b)
	}
}

func TestPNGRoundTrip(t *testing.T) {
	s := NewSurface(8, 8, 1)
	s.Clear(color.NRGBA{R: 10, G: 20, B: 30, A: 255})

	var buf bytes.Buffer
	if err := EncodePNG(&buf, s.Image()); err != nil {
		t.Fatalf("encode failed: %v", err)
	}
	if buf.Len() == 0 {
		t.Fatal("empty png")
	}

	path := filepath.Join(t.TempDir(), "frame.png")
	if err := WritePNG(path, s.Image()); err != nil {
		t.Fatalf("write failed: %v", err)
	}
	img, err := ReadPNG(path)
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}
	r, g, b, _ := img.At(3, 3).RGBA()
	if r>>8 != 10 || g>>8 != 20 || b>>8 != 30 {
		t.Errorf("unexpected pixel %d %d %d", r>>8, g>>8, b>>8)
	}
}
