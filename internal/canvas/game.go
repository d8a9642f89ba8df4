// Package canvas runs the scene as an ebiten game, in a native window or in
// the browser when built with GOOS=js.
package canvas

import (
	"errors"
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"go.uber.org/zap"

	"github.com/san-kum/ambient/internal/cursor"
	"github.com/san-kum/ambient/internal/frame"
	"github.com/san-kum/ambient/internal/scene"
	"github.com/san-kum/ambient/internal/stripfield"
)

type Options struct {
	Width, Height int
	FPS           int
	Touch         bool
	Debug         bool
	Logger        *zap.Logger
}

type Game struct {
	scene *scene.Scene
	host  *Host
	pump  *frame.Pump
	log   *zap.Logger
	debug bool

	width, height int
	started       bool
	paused        bool
	lastX, lastY  int
	prevKey       map[ebiten.Key]bool
}

// NewHost returns a host with the scene's containers.
func NewHost(touch bool) *Host {
	return newHost(!touch, stripfield.Container, cursor.Container)
}

func NewGame(sc *scene.Scene, host *Host, opts Options) *Game {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	return &Game{
		scene:   sc,
		host:    host,
		pump:    frame.NewPump(),
		log:     log,
		debug:   opts.Debug,
		lastX:   -1,
		lastY:   -1,
		prevKey: map[ebiten.Key]bool{},
	}
}

func (g *Game) justPressed(k ebiten.Key) bool {
	pressed := ebiten.IsKeyPressed(k)
	jp := pressed && !g.prevKey[k]
	g.prevKey[k] = pressed
	return jp
}

func (g *Game) Update() error {
	if g.width <= 0 || g.height <= 0 {
		return nil
	}
	if !g.started {
		if err := g.scene.Start(g.pump, g.width, g.height); err != nil {
			return err
		}
		g.started = true
	}

	if x, y := ebiten.CursorPosition(); x != g.lastX || y != g.lastY {
		g.lastX, g.lastY = x, y
		g.scene.PointerMove(float64(x), float64(y))
	}

	if g.justPressed(ebiten.KeySpace) {
		g.paused = !g.paused
	}
	if g.justPressed(ebiten.KeyD) {
		g.debug = !g.debug
	}
	if g.justPressed(ebiten.KeyEscape) || g.justPressed(ebiten.KeyQ) {
		return ebiten.Termination
	}

	if !g.paused {
		g.pump.Tick()
	}
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.host.Present(screen)
	if g.debug {
		status := fmt.Sprintf("TPS %0.1f  FPS %0.1f  %dx%d  frame %d  cursor:%v",
			ebiten.ActualTPS(), ebiten.ActualFPS(), g.width, g.height,
			g.scene.Frames(), g.scene.Follower().Active())
		if g.paused {
			status = "PAUSED  " + status
		}
		ebitenutil.DebugPrintAt(screen, status, 12, 12)
	}
}

// Layout tracks the outside size one to one and reports changes to the
// scene as resizes.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth != g.width || outsideHeight != g.height {
		g.width, g.height = outsideWidth, outsideHeight
		if g.started {
			g.log.Debug("layout changed", zap.Int("width", g.width), zap.Int("height", g.height))
			g.scene.Resize(g.width, g.height)
		}
	}
	return outsideWidth, outsideHeight
}

// Run builds the scene with build and blocks until the window closes.
func Run(build func(*Host) *scene.Scene, opts Options) error {
	if opts.FPS <= 0 {
		opts.FPS = frame.DefaultFPS
	}
	if opts.Width <= 0 || opts.Height <= 0 {
		opts.Width, opts.Height = 1280, 720
	}

	host := NewHost(opts.Touch)
	g := NewGame(build(host), host, opts)

	ebiten.SetWindowSize(opts.Width, opts.Height)
	ebiten.SetWindowTitle("ambient")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(opts.FPS)

	err := ebiten.RunGame(g)
	if g.started {
		g.scene.Stop()
	}
	if err != nil && !errors.Is(err, ebiten.Termination) {
		return fmt.Errorf("canvas: %w", err)
	}
	return nil
}
