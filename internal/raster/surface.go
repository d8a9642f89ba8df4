// Package raster renders scenes into in-memory RGBA images for headless
// output, terminal previews and pixel comparisons.
package raster

import (
	"image"
	"image/color"
	"math"

	"golang.org/x/image/vector"

	"github.com/san-kum/ambient/internal/ambient"
)

// EllipseSegments is the polygon resolution of a full ellipse.
const EllipseSegments = 48

// Surface is an ambient.Surface backed by a premultiplied RGBA image. Scale
// maps viewport pixels to image pixels.
type Surface struct {
	img   *image.RGBA
	w, h  int
	scale float64
	blend ambient.BlendMode

	z    *vector.Rasterizer
	mask *image.Alpha
}

func NewSurface(w, h int, scale float64) *Surface {
	if scale <= 0 {
		scale = 1
	}
	s := &Surface{scale: scale, z: vector.NewRasterizer(1, 1)}
	s.Resize(w, h)
	return s
}

func (s *Surface) Resize(w, h int) {
	s.w, s.h = w, h
	pw := int(math.Ceil(float64(w) * s.scale))
	ph := int(math.Ceil(float64(h) * s.scale))
	s.img = image.NewRGBA(image.Rect(0, 0, max(pw, 0), max(ph, 0)))
}

func (s *Surface) Size() (int, int) { return s.w, s.h }

func (s *Surface) Image() *image.RGBA { return s.img }

func (s *Surface) Scale() float64 { return s.scale }

func (s *Surface) SetBlend(mode ambient.BlendMode) { s.blend = mode }

// Clear replaces every pixel regardless of the blend mode.
func (s *Surface) Clear(c color.NRGBA) {
	p := color.RGBAModel.Convert(c).(color.RGBA)
	pix := s.img.Pix
	for i := 0; i+3 < len(pix); i += 4 {
		pix[i], pix[i+1], pix[i+2], pix[i+3] = p.R, p.G, p.B, p.A
	}
}

func (s *Surface) FillRect(x, y, w, h float64, c color.NRGBA) {
	r := image.Rect(
		int(math.Floor(x*s.scale)),
		int(math.Floor(y*s.scale)),
		int(math.Ceil((x+w)*s.scale)),
		int(math.Ceil((y+h)*s.scale)),
	).Intersect(s.img.Bounds())
	for py := r.Min.Y; py < r.Max.Y; py++ {
		i := s.img.PixOffset(r.Min.X, py)
		for px := r.Min.X; px < r.Max.X; px++ {
			s.put(i, c, 255)
			i += 4
		}
	}
}

func (s *Surface) FillEllipse(cx, cy, rx, ry, rotation float64, c color.NRGBA) {
	if rx <= 0 || ry <= 0 {
		return
	}
	cx, cy, rx, ry = cx*s.scale, cy*s.scale, rx*s.scale, ry*s.scale
	reach := math.Max(rx, ry)
	box := image.Rect(
		int(math.Floor(cx-reach)),
		int(math.Floor(cy-reach)),
		int(math.Ceil(cx+reach)),
		int(math.Ceil(cy+reach)),
	)
	clip := box.Intersect(s.img.Bounds())
	if clip.Empty() {
		return
	}

	bw, bh := box.Dx(), box.Dy()
	s.z.Reset(bw, bh)
	for i, p := range ambient.EllipseOutline(cx, cy, rx, ry, rotation, EllipseSegments) {
		px := float32(p.X - float64(box.Min.X))
		py := float32(p.Y - float64(box.Min.Y))
		if i == 0 {
			s.z.MoveTo(px, py)
		} else {
			s.z.LineTo(px, py)
		}
	}
	s.z.ClosePath()

	if s.mask == nil || s.mask.Rect.Dx() < bw || s.mask.Rect.Dy() < bh {
		s.mask = image.NewAlpha(image.Rect(0, 0, bw, bh))
	} else {
		clear(s.mask.Pix)
	}
	m := s.mask.SubImage(image.Rect(0, 0, bw, bh)).(*image.Alpha)
	s.z.Draw(m, m.Bounds(), image.Opaque, image.Point{})

	for py := clip.Min.Y; py < clip.Max.Y; py++ {
		i := s.img.PixOffset(clip.Min.X, py)
		for px := clip.Min.X; px < clip.Max.X; px++ {
			if cov := m.AlphaAt(px-box.Min.X, py-box.Min.Y).A; cov > 0 {
				s.put(i, c, uint32(cov))
			}
			i += 4
		}
	}
}

// put composites c with coverage cov (0-255) onto the pixel at offset i.
func (s *Surface) put(i int, c color.NRGBA, cov uint32) {
	a := uint32(c.A) * cov / 255
	if a == 0 {
		return
	}
	sr := uint32(c.R) * a / 255
	sg := uint32(c.G) * a / 255
	sb := uint32(c.B) * a / 255
	d := s.img.Pix[i : i+4 : i+4]

	if s.blend == ambient.BlendAdditive {
		d[0] = sat(sr + uint32(d[0]))
		d[1] = sat(sg + uint32(d[1]))
		d[2] = sat(sb + uint32(d[2]))
		d[3] = sat(a + uint32(d[3]))
		return
	}
	inv := 255 - a
	d[0] = uint8(sr + uint32(d[0])*inv/255)
	d[1] = uint8(sg + uint32(d[1])*inv/255)
	d[2] = uint8(sb + uint32(d[2])*inv/255)
	d[3] = uint8(a + uint32(d[3])*inv/255)
}

func sat(v uint32) uint8 {
	if v > 255 {
		return 255
	}
	return uint8(v)
}
