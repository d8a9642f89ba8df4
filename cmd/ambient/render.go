package main

import (
	"errors"
	"fmt"
	"math"
	"os"
	"sync"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/san-kum/ambient/internal/ambient"
	"github.com/san-kum/ambient/internal/automation"
	"github.com/san-kum/ambient/internal/config"
	"github.com/san-kum/ambient/internal/cursor"
	"github.com/san-kum/ambient/internal/export"
	"github.com/san-kum/ambient/internal/frame"
	"github.com/san-kum/ambient/internal/raster"
	"github.com/san-kum/ambient/internal/storage"
	"github.com/san-kum/ambient/internal/stripfield"
	"github.com/san-kum/ambient/internal/viz"
)

var (
	renderScale   float64
	renderFrames  int
	renderPointer string
	realtime      bool
	scenarioPath  string

	svgFrames  int
	svgPointer string

	trailFrames int
	smoothing   float64

	outPath string
)

func validPointer(path string) error {
	switch path {
	case automation.PathCircle, automation.PathCenter, automation.PathNone:
		return nil
	}
	return fmt.Errorf("unknown pointer path %q (circle, center, none)", path)
}

// hooked wraps a scheduler so every tick is bracketed by before and after.
type hooked struct {
	ambient.Scheduler
	before, after func()
}

func (h hooked) Start(onTick func()) error {
	return h.Scheduler.Start(func() {
		h.before()
		onTick()
		h.after()
	})
}

func runRender(cmd *cobra.Command, args []string) error {
	cfg, th, log, err := setup(cmd, false)
	if err != nil {
		return err
	}
	defer log.Sync()
	if err := validPointer(renderPointer); err != nil {
		return err
	}
	if renderScale <= 0 {
		return fmt.Errorf("scale must be positive, got %v", renderScale)
	}
	if scenarioPath != "" {
		if realtime {
			return errors.New("--scenario cannot be combined with --realtime")
		}
		return renderScenario(cmd, cfg, th, log)
	}

	st := storage.New(cfg.DataDir)
	if err := st.Init(); err != nil {
		return err
	}

	host := raster.NewHost(stripfield.Container, cursor.Container)
	host.SetScale(renderScale)
	sc := newScene(host, cfg, th, log)

	if cfg.Frames == 0 {
		return errors.New("nothing to render: frames is 0")
	}

	// mu is held for the whole of every tick, so opening the run below
	// cannot race a realtime tick.
	var (
		run      *storage.Run
		mu       sync.Mutex
		frameErr error
		i        int
	)
	before := func() {
		mu.Lock()
		if p, ok := automation.PathPoint(renderPointer, i, cfg.Frames, cfg.Width, cfg.Height); ok {
			sc.PointerMove(p.X, p.Y)
		}
	}
	after := func() {
		defer mu.Unlock()
		i++
		if run == nil || frameErr != nil {
			return
		}
		if err := run.AddFrame(host.Composite()); err != nil {
			frameErr = err
		}
		if !realtime {
			fmt.Fprintf(os.Stderr, "\r%s %d/%d", viz.ProgressBar(float64(i)/float64(cfg.Frames), 30), i, cfg.Frames)
		}
	}

	var sched ambient.Scheduler
	var pump *frame.Pump
	var ticker *frame.Ticker
	if realtime {
		ticker = frame.NewTicker(cfg.FPS, frame.WithLimit(cfg.Frames), frame.WithLogger(log.Named("ticker")))
		sched = ticker
	} else {
		pump = frame.NewPump()
		sched = pump
	}

	start := time.Now()
	p, _ := automation.PathPoint(renderPointer, 0, cfg.Frames, cfg.Width, cfg.Height)
	sc.Follower().SetTarget(p)

	mu.Lock()
	if err := sc.Start(hooked{sched, before, after}, cfg.Width, cfg.Height); err != nil {
		mu.Unlock()
		return err
	}
	defer sc.Stop()

	run, err = st.Begin(storage.RunMetadata{
		Theme:   th.Name,
		Seed:    cfg.Seed,
		Width:   cfg.Width,
		Height:  cfg.Height,
		FPS:     cfg.FPS,
		Profile: sc.Field().Profile().Class.String(),
		Cursor:  sc.Follower().Active(),
	}, sc.Field().Strips())
	mu.Unlock()
	if err != nil {
		return err
	}

	if realtime {
		<-ticker.Done()
	} else {
		pump.Step(cfg.Frames)
		fmt.Fprintln(os.Stderr)
	}

	mu.Lock()
	defer mu.Unlock()
	if frameErr != nil {
		return fmt.Errorf("write frame: %w", frameErr)
	}
	meta, err := run.Close(time.Since(start))
	if err != nil {
		return err
	}

	log.Info("render finished",
		zap.String("run", meta.ID),
		zap.Int("frames", meta.Frames),
		zap.Int("strips", meta.Strips),
		zap.Duration("elapsed", time.Since(start)))
	fmt.Println(viz.Success.Render("run saved:"), meta.ID)
	return nil
}

// renderScenario replays a scripted scenario frame by frame into a new run.
func renderScenario(cmd *cobra.Command, cfg *config.Config, th ambient.Theme, log *zap.Logger) error {
	scn, err := automation.LoadScenario(scenarioPath)
	if err != nil {
		return err
	}
	if scn.TotalFrames() == 0 {
		return errors.New("nothing to render: scenario has no frames")
	}

	st := storage.New(cfg.DataDir)
	if err := st.Init(); err != nil {
		return err
	}

	host := raster.NewHost(stripfield.Container, cursor.Container)
	host.SetScale(renderScale)
	sc := newScene(host, cfg, th, log)
	pump := frame.NewPump()

	start := time.Now()
	if err := sc.Start(pump, scn.Width, scn.Height); err != nil {
		return err
	}
	defer sc.Stop()

	run, err := st.Begin(storage.RunMetadata{
		Theme:   th.Name,
		Seed:    cfg.Seed,
		Width:   scn.Width,
		Height:  scn.Height,
		FPS:     cfg.FPS,
		Profile: sc.Field().Profile().Class.String(),
		Cursor:  sc.Follower().Active(),
	}, sc.Field().Strips())
	if err != nil {
		return err
	}

	total := scn.TotalFrames()
	log.Info("scenario loaded",
		zap.String("name", scn.Name),
		zap.Int("steps", len(scn.Steps)),
		zap.Int("frames", total))

	n, err := automation.RunScenario(cmd.Context(), scn, sc, pump, func(i int) error {
		fmt.Fprintf(os.Stderr, "\r%s %d/%d", viz.ProgressBar(float64(i+1)/float64(total), 30), i+1, total)
		return run.AddFrame(host.Composite())
	})
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return err
	}
	meta, err := run.Close(time.Since(start))
	if err != nil {
		return err
	}

	log.Info("scenario finished",
		zap.String("run", meta.ID),
		zap.Int("frames", n),
		zap.Duration("elapsed", time.Since(start)))
	fmt.Println(viz.Success.Render("run saved:"), meta.ID)
	return nil
}

func runSVG(cmd *cobra.Command, args []string) error {
	cfg, th, log, err := setup(cmd, false)
	if err != nil {
		return err
	}
	defer log.Sync()
	if err := validPointer(svgPointer); err != nil {
		return err
	}

	host := export.NewHost(stripfield.Container, cursor.Container)
	sc := newScene(host, cfg, th, log)
	pump := frame.NewPump()
	if err := sc.Start(pump, cfg.Width, cfg.Height); err != nil {
		return err
	}
	defer sc.Stop()

	for i := 0; i < max(svgFrames, 1); i++ {
		if p, ok := automation.PathPoint(svgPointer, i, svgFrames, cfg.Width, cfg.Height); ok {
			sc.PointerMove(p.X, p.Y)
		}
		pump.Tick()
	}

	return writeOut(host.Document())
}

func runTrail(cmd *cobra.Command, args []string) error {
	cfg, _, log, err := setup(cmd, false)
	if err != nil {
		return err
	}
	defer log.Sync()

	s := cursor.Smoothing
	if smoothing != 0 {
		if smoothing <= 0 || smoothing > 1 {
			return fmt.Errorf("smoothing must be in (0, 1], got %v", smoothing)
		}
		s = smoothing
	}

	n := max(trailFrames, 2)
	target := make([]ambient.Point, n)
	follow := make([]ambient.Point, n)
	pos, _ := automation.PathPoint(automation.PathCircle, 0, n, cfg.Width, cfg.Height)
	maxLag := 0.0
	for i := range target {
		target[i], _ = automation.PathPoint(automation.PathCircle, i, n, cfg.Width, cfg.Height)
		pos = cursor.Lerp(pos, target[i], s)
		follow[i] = pos
		maxLag = math.Max(maxLag, pos.Dist(target[i]))
	}
	log.Info("trail simulated", zap.Int("frames", n), zap.Float64("smoothing", s), zap.Float64("max_lag", maxLag))

	return writeOut(export.PathToSVG([][]ambient.Point{target, follow}, cfg.Width, cfg.Height, "#54a0ff", "#ff9ff3"))
}

func writeOut(doc string) error {
	if outPath == "" {
		_, err := fmt.Println(doc)
		return err
	}
	if err := os.WriteFile(outPath, []byte(doc), 0644); err != nil {
		return err
	}
	fmt.Fprintln(os.Stderr, viz.Success.Render("written:"), outPath)
	return nil
}

func initConfig(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if !cmd.Flags().Changed("seed") {
		cfg.Seed = 0
	}
	path := "ambient.yaml"
	if len(args) > 0 {
		path = args[0]
	}
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("%s already exists", path)
	}
	if err := config.Save(path, cfg); err != nil {
		return err
	}
	fmt.Println(viz.Success.Render("config written:"), path)
	return nil
}
