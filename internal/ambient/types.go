package ambient

import (
	"image/color"
	"math"
)

type Point struct {
	X, Y float64
}

func (p Point) Add(q Point) Point {
	return Point{X: p.X + q.X, Y: p.Y + q.Y}
}

func (p Point) Sub(q Point) Point {
	return Point{X: p.X - q.X, Y: p.Y - q.Y}
}

func (p Point) Scale(f float64) Point {
	return Point{X: p.X * f, Y: p.Y * f}
}

func (p Point) Dist(q Point) float64 {
	return math.Hypot(p.X-q.X, p.Y-q.Y)
}

// Strip is one vertical band of the background. X is the prefix sum of the
// widths of all strips before it.
type Strip struct {
	X     float64
	W     float64
	Phase float64
	Speed float64
}

type DeviceClass int

const (
	Narrow DeviceClass = iota
	Medium
	Wide
)

func (c DeviceClass) String() string {
	switch c {
	case Narrow:
		return "narrow"
	case Medium:
		return "medium"
	case Wide:
		return "wide"
	default:
		return "unknown"
	}
}

type DeviceProfile struct {
	Class        DeviceClass
	StripBase    float64
	StripMin     float64
	StripMax     float64
	VerticalStep float64
	SpeedMin     float64
	SpeedMax     float64
}

// Theme holds the HSB parameters of the strip colours. Saturation and
// Brightness are on a 0-100 scale, hues in degrees.
type Theme struct {
	Name       string  `yaml:"name"`
	BaseHue    float64 `yaml:"base_hue"`
	HueRange   float64 `yaml:"hue_range"`
	Saturation float64 `yaml:"saturation"`
	Brightness float64 `yaml:"brightness"`
}

var SunsetTheme = Theme{
	Name:       "sunset",
	BaseHue:    280,
	HueRange:   60,
	Saturation: 50,
	Brightness: 90,
}

type BlendMode int

const (
	BlendNormal BlendMode = iota
	BlendAdditive
)

func (m BlendMode) String() string {
	if m == BlendAdditive {
		return "additive"
	}
	return "normal"
}

// Surface is an immediate-mode drawing target covering the whole viewport.
// Colours are straight (non-premultiplied) alpha.
type Surface interface {
	Resize(w, h int)
	Size() (w, h int)
	Clear(c color.NRGBA)
	FillRect(x, y, w, h float64, c color.NRGBA)
	// FillEllipse fills an ellipse with radii rx, ry rotated by rotation
	// radians around its centre.
	FillEllipse(cx, cy, rx, ry, rotation float64, c color.NRGBA)
	SetBlend(mode BlendMode)
}

// Host attaches surfaces to named containers of the embedding page or window.
type Host interface {
	// CreateSurface returns ErrNoContainer when container does not exist.
	CreateSurface(container string, w, h int) (Surface, error)
	ReleaseSurface(s Surface)
	SetPointerVisible(visible bool)
	PrecisePointer() bool
}

// Scheduler invokes onTick once per frame until stopped. Ticks never overlap.
type Scheduler interface {
	Start(onTick func()) error
	Stop()
}

// Rand is satisfied by *math/rand.Rand.
type Rand interface {
	Float64() float64
}

// Noise is a coherent noise field with values in [0, 1].
type Noise interface {
	Noise3(x, y, z float64) float64
}

// Uniform draws from [lo, hi).
func Uniform(r Rand, lo, hi float64) float64 {
	return lo + r.Float64()*(hi-lo)
}
