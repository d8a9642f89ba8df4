// Package gui runs the scene in a resizable raylib window.
package gui

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"
	"go.uber.org/zap"

	"github.com/san-kum/ambient/internal/cursor"
	"github.com/san-kum/ambient/internal/frame"
	"github.com/san-kum/ambient/internal/scene"
	"github.com/san-kum/ambient/internal/stripfield"
)

var (
	ColText    = rl.NewColor(20, 20, 30, 255)
	ColTextDim = rl.NewColor(60, 60, 80, 200)
)

type Options struct {
	Width, Height int
	FPS           int
	// Touch reports the pointer as imprecise so the cursor never mounts.
	Touch  bool
	Logger *zap.Logger
}

type App struct {
	Scene   *scene.Scene
	Host    *Host
	Pump    *frame.Pump
	Paused  bool
	ShowHUD bool

	log     *zap.Logger
	lastPtr rl.Vector2
}

func initWindow(opts Options) {
	rl.SetConfigFlags(rl.FlagWindowResizable | rl.FlagMsaa4xHint)
	rl.InitWindow(int32(opts.Width), int32(opts.Height), "ambient")
	rl.SetTargetFPS(int32(opts.FPS))
	rl.SetExitKey(rl.KeyQ)
	rl.DisableBackfaceCulling()
}

// NewHost returns a window host with the scene's containers.
func NewHost(touch bool) *Host {
	return newHost(!touch, stripfield.Container, cursor.Container)
}

// Run opens the window, builds the scene with build and blocks until the
// window closes.
func Run(build func(*Host) *scene.Scene, opts Options) error {
	if opts.FPS <= 0 {
		opts.FPS = frame.DefaultFPS
	}
	if opts.Width <= 0 || opts.Height <= 0 {
		opts.Width, opts.Height = 1280, 720
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}

	initWindow(opts)
	defer rl.CloseWindow()

	host := NewHost(opts.Touch)
	defer host.close()

	app := &App{
		Scene:   build(host),
		Host:    host,
		Pump:    frame.NewPump(),
		ShowHUD: true,
		log:     opts.Logger,
	}
	if err := app.Scene.Start(app.Pump, rl.GetScreenWidth(), rl.GetScreenHeight()); err != nil {
		return fmt.Errorf("gui: %w", err)
	}
	defer app.Scene.Stop()

	app.RunLoop()
	return nil
}

func (a *App) RunLoop() {
	for !rl.WindowShouldClose() {
		a.Update()
		a.Draw()
	}
}

// Update feeds window events to the scene and advances one frame.
func (a *App) Update() {
	if rl.IsWindowResized() {
		w, h := rl.GetScreenWidth(), rl.GetScreenHeight()
		a.log.Debug("window resized", zap.Int("width", w), zap.Int("height", h))
		a.Scene.Resize(w, h)
	}

	if p := rl.GetMousePosition(); p != a.lastPtr {
		a.lastPtr = p
		a.Scene.PointerMove(float64(p.X), float64(p.Y))
	}

	if rl.IsKeyPressed(rl.KeySpace) {
		a.Paused = !a.Paused
	}
	if rl.IsKeyPressed(rl.KeyH) {
		a.ShowHUD = !a.ShowHUD
	}
	if rl.IsKeyPressed(rl.KeyS) {
		name := fmt.Sprintf("ambient_%06d.png", a.Scene.Frames())
		rl.TakeScreenshot(name)
		a.log.Info("screenshot written", zap.String("path", name))
	}

	if !a.Paused || rl.IsKeyPressed(rl.KeyPeriod) {
		a.Pump.Tick()
	}
}

func (a *App) Draw() {
	rl.BeginDrawing()
	rl.ClearBackground(rl.Black)
	a.Host.Present()
	if a.ShowHUD {
		a.DrawHUD()
	}
	rl.EndDrawing()
}

func (a *App) DrawHUD() {
	w, h := a.Scene.Size()
	status := "RUNNING"
	if a.Paused {
		status = "PAUSED"
	}
	rl.DrawText(fmt.Sprintf("%s  %dx%d  %s", status, w, h, a.Scene.Field().Profile().Class), 20, 20, 16, ColText)
	rl.DrawText(fmt.Sprintf("%d FPS  frame %d", rl.GetFPS(), a.Scene.Frames()), 20, int32(h)-56, 14, ColTextDim)
	rl.DrawText("[SPACE] PAUSE  [.] STEP  [S] SCREENSHOT  [H] HUD  [Q] QUIT", 20, int32(h)-32, 14, ColTextDim)
}
