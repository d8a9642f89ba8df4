package cursor

import (
	"go.uber.org/zap"

	"github.com/san-kum/ambient/internal/ambient"
)

const (
	// MinWidth is the narrowest viewport that shows the flower.
	MinWidth = 1025
	// Smoothing is the per-frame lerp factor toward the pointer.
	Smoothing = 0.75
	Container = "cursor-overlay"
)

// Follower owns the overlay surface and the smoothed cursor position. An
// instance exists only while the viewport is wide enough and the pointer is
// precise; Resize creates and tears it down.
type Follower struct {
	host      ambient.Host
	container string
	smoothing float64
	log       *zap.Logger

	surface    ambient.Surface
	pos        ambient.Point
	target     ambient.Point
	active     bool
	renders    int
	generation int
}

type Option func(*Follower)

func WithLogger(l *zap.Logger) Option  { return func(f *Follower) { f.log = l } }
func WithContainer(id string) Option   { return func(f *Follower) { f.container = id } }
func WithSmoothing(s float64) Option   { return func(f *Follower) { f.smoothing = s } }
func WithStart(p ambient.Point) Option { return func(f *Follower) { f.target = p } }

func NewFollower(host ambient.Host, opts ...Option) *Follower {
	f := &Follower{
		host:      host,
		container: Container,
		smoothing: Smoothing,
		log:       zap.NewNop(),
	}
	for _, opt := range opts {
		opt(f)
	}
	if f.smoothing <= 0 || f.smoothing > 1 {
		f.smoothing = Smoothing
	}
	return f
}

// Resize re-evaluates the activation gate for a viewport of w x h.
func (f *Follower) Resize(w, h int) {
	want := w >= MinWidth && f.host.PrecisePointer()
	switch {
	case want && !f.active:
		f.mount(w, h)
	case !want && f.active:
		f.teardown()
	case f.active:
		f.surface.Resize(w, h)
	}
}

func (f *Follower) mount(w, h int) {
	s, err := f.host.CreateSurface(f.container, w, h)
	if err != nil {
		f.log.Debug("cursor overlay not mounted", zap.String("container", f.container), zap.Error(err))
		return
	}
	f.surface = s
	f.pos = f.target
	f.renders = 0
	f.generation++
	f.active = true
	f.host.SetPointerVisible(false)
	f.log.Info("cursor follower created", zap.Int("generation", f.generation), zap.Int("width", w))
}

func (f *Follower) teardown() {
	f.host.ReleaseSurface(f.surface)
	f.host.SetPointerVisible(true)
	f.surface = nil
	f.active = false
	f.log.Info("cursor follower removed", zap.Int("generation", f.generation), zap.Int("renders", f.renders))
}

// Teardown removes the overlay regardless of viewport width.
func (f *Follower) Teardown() {
	if f.active {
		f.teardown()
	}
}

// SetTarget records the live pointer position for the next tick.
func (f *Follower) SetTarget(p ambient.Point) { f.target = p }

func (f *Follower) Tick() {
	if !f.active {
		return
	}
	f.pos = Lerp(f.pos, f.target, f.smoothing)
	f.surface.Clear(Transparent)
	Render(f.surface, f.pos)
	f.renders++
}

func (f *Follower) Active() bool            { return f.active }
func (f *Follower) Position() ambient.Point { return f.pos }
func (f *Follower) Target() ambient.Point   { return f.target }

// Renders counts render calls of the current instance.
func (f *Follower) Renders() int { return f.renders }

// Generation counts instances created so far.
func (f *Follower) Generation() int { return f.generation }
