// Package scene composes the strip field and the cursor follower into one
// frame-driven unit fed by host events.
package scene

import (
	"fmt"
	"math/rand"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/san-kum/ambient/internal/ambient"
	"github.com/san-kum/ambient/internal/cursor"
	"github.com/san-kum/ambient/internal/noise"
	"github.com/san-kum/ambient/internal/stripfield"
)

type options struct {
	theme   ambient.Theme
	seed    int64
	octaves int
	rnd     ambient.Rand
	noise   ambient.Noise
	log     *zap.Logger
}

type Option func(*options)

func WithTheme(th ambient.Theme) Option { return func(o *options) { o.theme = th } }
func WithSeed(seed int64) Option        { return func(o *options) { o.seed = seed } }
func WithOctaves(n int) Option          { return func(o *options) { o.octaves = n } }
func WithRand(r ambient.Rand) Option    { return func(o *options) { o.rnd = r } }
func WithNoise(n ambient.Noise) Option  { return func(o *options) { o.noise = n } }
func WithLogger(l *zap.Logger) Option   { return func(o *options) { o.log = l } }

type Scene struct {
	field    *stripfield.Field
	follower *cursor.Follower
	inputs   Inputs
	log      *zap.Logger

	sched  ambient.Scheduler
	width  int
	height int
	frames atomic.Uint64
}

// New builds a scene on host. Without WithSeed the strip layout and noise
// field are seeded from the clock.
func New(host ambient.Host, opts ...Option) *Scene {
	o := options{
		theme:   ambient.SunsetTheme,
		seed:    time.Now().UnixNano(),
		octaves: noise.DefaultOctaves,
		log:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.rnd == nil {
		o.rnd = rand.New(rand.NewSource(o.seed))
	}
	if o.noise == nil {
		o.noise = noise.NewPerlin(o.seed, o.octaves)
	}

	return &Scene{
		field: stripfield.NewField(host,
			stripfield.WithTheme(o.theme),
			stripfield.WithRand(o.rnd),
			stripfield.WithNoise(o.noise),
			stripfield.WithLogger(o.log.Named("strips")),
		),
		follower: cursor.NewFollower(host,
			cursor.WithLogger(o.log.Named("cursor")),
		),
		log: o.log,
	}
}

// Start mounts both components for a w x h viewport and registers the tick
// with sched.
func (s *Scene) Start(sched ambient.Scheduler, w, h int) error {
	if w <= 0 || h <= 0 {
		return fmt.Errorf("start scene %dx%d: %w", w, h, ambient.ErrInvalidViewport)
	}
	s.width, s.height = w, h
	s.field.Setup(w, h)
	s.follower.Resize(w, h)

	if err := sched.Start(s.Tick); err != nil {
		return fmt.Errorf("start scheduler: %w", err)
	}
	s.sched = sched
	s.log.Info("scene started",
		zap.Int("width", w), zap.Int("height", h),
		zap.Bool("background", s.field.Active()),
		zap.Bool("cursor", s.follower.Active()))
	return nil
}

// Stop halts the scheduler and releases both surfaces.
func (s *Scene) Stop() {
	if s.sched != nil {
		s.sched.Stop()
		s.sched = nil
	}
	s.follower.Teardown()
	s.field.Teardown()
	s.log.Info("scene stopped", zap.Uint64("frames", s.frames.Load()))
}

// Resize records a viewport change for the next tick.
func (s *Scene) Resize(w, h int) { s.inputs.Resize(w, h) }

// PointerMove records the live pointer position for the next tick.
func (s *Scene) PointerMove(x, y float64) { s.inputs.PointerMove(x, y) }

// Tick applies pending events, then updates and draws the background and
// the cursor.
func (s *Scene) Tick() {
	in := s.inputs.take()
	if in.resized && in.width > 0 && in.height > 0 {
		s.width, s.height = in.width, in.height
		s.field.Resize(in.width, in.height)
		s.follower.Resize(in.width, in.height)
	}
	if in.moved {
		s.follower.SetTarget(in.pointer)
	}

	s.field.Tick()
	s.follower.Tick()
	s.frames.Add(1)
}

func (s *Scene) Field() *stripfield.Field   { return s.field }
func (s *Scene) Follower() *cursor.Follower { return s.follower }
func (s *Scene) Frames() uint64             { return s.frames.Load() }
func (s *Scene) Size() (int, int)           { return s.width, s.height }
