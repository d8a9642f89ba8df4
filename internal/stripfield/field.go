package stripfield

import (
	"math/rand"
	"time"

	"go.uber.org/zap"

	"github.com/san-kum/ambient/internal/ambient"
	"github.com/san-kum/ambient/internal/noise"
)

// Container is the default host container of the background surface.
const Container = "bg-canvas-hero"

// Background is the opaque base colour painted under the strips.
var Background = ambient.HSBA(210, 30, 95, 100)

// Field owns the strip collection and its drawing surface. It is driven by a
// single goroutine: Setup, Resize and Tick must not be called concurrently.
type Field struct {
	host      ambient.Host
	container string
	surface   ambient.Surface
	rnd       ambient.Rand
	noise     ambient.Noise
	theme     ambient.Theme
	log       *zap.Logger

	profile ambient.DeviceProfile
	strips  []ambient.Strip
	width   float64
	height  float64
	active  bool
}

type Option func(*Field)

func WithTheme(th ambient.Theme) Option { return func(f *Field) { f.theme = th } }
func WithRand(r ambient.Rand) Option    { return func(f *Field) { f.rnd = r } }
func WithNoise(n ambient.Noise) Option  { return func(f *Field) { f.noise = n } }
func WithLogger(l *zap.Logger) Option   { return func(f *Field) { f.log = l } }
func WithContainer(id string) Option    { return func(f *Field) { f.container = id } }

func NewField(host ambient.Host, opts ...Option) *Field {
	f := &Field{
		host:      host,
		container: Container,
		theme:     ambient.SunsetTheme,
		log:       zap.NewNop(),
	}
	for _, opt := range opts {
		opt(f)
	}
	if f.rnd == nil {
		f.rnd = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if f.noise == nil {
		f.noise = noise.NewPerlin(time.Now().UnixNano(), noise.DefaultOctaves)
	}
	return f
}

// Setup attaches the field to its container and generates the first strip
// layout. A missing container leaves the field inactive.
func (f *Field) Setup(w, h int) {
	if f.active {
		return
	}
	s, err := f.host.CreateSurface(f.container, w, h)
	if err != nil {
		f.log.Debug("strip field not mounted", zap.String("container", f.container), zap.Error(err))
		return
	}
	f.surface = s
	f.active = true
	f.regenerate(w, h)
	f.log.Info("strip field mounted",
		zap.String("container", f.container),
		zap.Stringer("device", f.profile.Class),
		zap.Int("strips", len(f.strips)))
}

// Resize re-runs device classification and regenerates every strip.
func (f *Field) Resize(w, h int) {
	if !f.active {
		return
	}
	f.surface.Resize(w, h)
	f.regenerate(w, h)
	f.log.Debug("strip field resized",
		zap.Int("width", w), zap.Int("height", h),
		zap.Stringer("device", f.profile.Class),
		zap.Int("strips", len(f.strips)))
}

func (f *Field) regenerate(w, h int) {
	f.width, f.height = float64(w), float64(h)
	f.profile = Configure(f.width)
	f.strips = Generate(f.width, f.profile, f.rnd)
}

// Tick paints the background, then advances and renders each strip.
func (f *Field) Tick() {
	if !f.active {
		return
	}
	f.surface.SetBlend(ambient.BlendNormal)
	f.surface.Clear(Background)
	for i := range f.strips {
		Advance(&f.strips[i], SpeedFactor)
		Render(f.surface, f.strips[i], f.height, f.profile, f.theme, f.noise)
	}
}

// Teardown releases the surface. The field can be set up again afterwards.
func (f *Field) Teardown() {
	if !f.active {
		return
	}
	f.host.ReleaseSurface(f.surface)
	f.surface = nil
	f.strips = nil
	f.active = false
}

func (f *Field) Active() bool                   { return f.active }
func (f *Field) Profile() ambient.DeviceProfile { return f.profile }
func (f *Field) Theme() ambient.Theme           { return f.theme }

func (f *Field) Strips() []ambient.Strip {
	out := make([]ambient.Strip, len(f.strips))
	copy(out, f.strips)
	return out
}
