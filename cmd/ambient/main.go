package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/san-kum/ambient/internal/ambient"
	"github.com/san-kum/ambient/internal/automation"
	"github.com/san-kum/ambient/internal/canvas"
	"github.com/san-kum/ambient/internal/config"
	"github.com/san-kum/ambient/internal/gui"
	"github.com/san-kum/ambient/internal/scene"
	"github.com/san-kum/ambient/internal/tui"
)

var (
	configFile string
	dataDir    string
	themeName  string
	seed       int64
	width      int
	height     int
	fps        int
	octaves    int
	logLevel   string
	logFile    string

	touch        bool
	debugOverlay bool
	snapshotDir  string
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// newRootCmd registers the commands. The root runs the desktop window when
// no subcommand is given. Commands that share a flag name with different
// defaults bind separate variables.
func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:          "ambient",
		Short:        "animated strip-field background and flower cursor",
		SilenceUsage: true,
		RunE:         runGUI,
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&configFile, "config", "", "config file path (yaml)")
	pf.StringVar(&dataDir, "data", config.DefaultDataDir, "data directory for render runs")
	pf.StringVar(&themeName, "theme", "sunset", "colour theme")
	pf.Int64Var(&seed, "seed", 0, "random seed (0 picks one from the clock)")
	pf.IntVar(&width, "width", config.DefaultWidth, "viewport width in pixels")
	pf.IntVar(&height, "height", config.DefaultHeight, "viewport height in pixels")
	pf.IntVar(&fps, "fps", config.DefaultFPS, "frames per second")
	pf.IntVar(&octaves, "octaves", 4, "noise octaves")
	pf.StringVar(&logLevel, "log-level", config.DefaultLevel, "log level (debug, info, warn, error)")
	pf.StringVar(&logFile, "log-file", "", "write logs to this file instead of stderr")
	rootCmd.Flags().BoolVar(&touch, "touch", false, "report a coarse pointer (no cursor)")

	guiCmd := &cobra.Command{
		Use:   "gui",
		Short: "run in a raylib window",
		RunE:  runGUI,
	}
	guiCmd.Flags().BoolVar(&touch, "touch", false, "report a coarse pointer (no cursor)")

	canvasCmd := &cobra.Command{
		Use:   "canvas",
		Short: "run as an ebiten game (native window or browser)",
		RunE:  runCanvas,
	}
	canvasCmd.Flags().BoolVar(&touch, "touch", false, "report a coarse pointer (no cursor)")
	canvasCmd.Flags().BoolVar(&debugOverlay, "debug", false, "show the debug overlay")

	tuiCmd := &cobra.Command{
		Use:   "tui",
		Short: "preview in the terminal",
		RunE:  runTUI,
	}
	tuiCmd.Flags().StringVar(&snapshotDir, "snapshots", ".", "directory for snapshot PNGs")

	renderCmd := &cobra.Command{
		Use:   "render",
		Short: "render frames headless into a run directory",
		RunE:  runRender,
	}
	renderCmd.Flags().IntVar(&renderFrames, "frames", config.DefaultFrames, "number of frames")
	renderCmd.Flags().Float64Var(&renderScale, "scale", 1, "image pixels per viewport pixel")
	renderCmd.Flags().StringVar(&renderPointer, "pointer", automation.PathCircle, "simulated pointer path (circle, center, none)")
	renderCmd.Flags().BoolVar(&realtime, "realtime", false, "pace frames with a wall-clock ticker at --fps")
	renderCmd.Flags().StringVar(&scenarioPath, "scenario", "", "replay a YAML scenario of resize and pointer steps")

	svgCmd := &cobra.Command{
		Use:   "svg",
		Short: "export one frame as SVG",
		RunE:  runSVG,
	}
	svgCmd.Flags().IntVar(&svgFrames, "frames", 1, "frames to advance before exporting")
	svgCmd.Flags().StringVarP(&outPath, "out", "o", "", "output file (stdout if empty)")
	svgCmd.Flags().StringVar(&svgPointer, "pointer", automation.PathCenter, "simulated pointer path (circle, center, none)")

	trailCmd := &cobra.Command{
		Use:   "trail",
		Short: "plot the cursor lag against a pointer path as SVG",
		RunE:  runTrail,
	}
	trailCmd.Flags().IntVar(&trailFrames, "frames", 240, "frames to simulate")
	trailCmd.Flags().Float64Var(&smoothing, "smoothing", 0, "override the follow factor (0 keeps the default)")
	trailCmd.Flags().StringVarP(&outPath, "out", "o", "", "output file (stdout if empty)")

	initCmd := &cobra.Command{
		Use:   "init [path]",
		Short: "write a config file with the current settings",
		Args:  cobra.MaximumNArgs(1),
		RunE:  initConfig,
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list render runs",
		RunE:  listRuns,
	}

	showCmd := &cobra.Command{
		Use:   "show [run_id]",
		Short: "show a render run and plot its strip widths",
		Args:  cobra.ExactArgs(1),
		RunE:  showRun,
	}

	stripsCmd := &cobra.Command{
		Use:   "strips",
		Short: "generate a strip layout for --width and summarise it",
		RunE:  showStrips,
	}
	stripsCmd.Flags().BoolVar(&showAll, "all", false, "print every strip")

	profilesCmd := &cobra.Command{
		Use:   "profiles",
		Short: "print the device profile table",
		RunE:  showProfiles,
	}

	themesCmd := &cobra.Command{
		Use:   "themes",
		Short: "list colour themes with swatches",
		RunE:  showThemes,
	}

	sweepCmd := &cobra.Command{
		Use:   "sweep",
		Short: "regenerate the strip layout across a range of widths",
		RunE:  sweepWidths,
	}
	sweepCmd.Flags().IntVar(&sweepMin, "min", 320, "smallest viewport width")
	sweepCmd.Flags().IntVar(&sweepMax, "max", 1920, "largest viewport width")
	sweepCmd.Flags().IntVar(&sweepStep, "step", 80, "width increment")

	diffCmd := &cobra.Command{
		Use:   "diff [a.png] [b.png]",
		Short: "compare two frames pixel by pixel",
		Args:  cobra.ExactArgs(2),
		RunE:  diffImages,
	}
	diffCmd.Flags().IntVar(&threshold, "threshold", 10, "per-channel difference threshold")
	diffCmd.Flags().StringVarP(&outPath, "out", "o", "", "write a diff image with changes in red")

	rootCmd.AddCommand(guiCmd, canvasCmd, tuiCmd, renderCmd, svgCmd, trailCmd, initCmd,
		listCmd, showCmd, stripsCmd, sweepCmd, profilesCmd, themesCmd, diffCmd)

	return rootCmd
}

// loadConfig layers defaults, the config file, the environment (.env
// included) and explicitly set flags, in that order.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	env, err := config.Env(".env")
	if err != nil {
		return nil, err
	}

	cfg := config.DefaultConfig()
	path := configFile
	if path == "" {
		path = env[config.EnvConfig]
	}
	if path != "" {
		cfg, err = config.Load(path)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
	}
	if err := cfg.ApplyEnv(env); err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("data") {
		cfg.DataDir = dataDir
	}
	if flags.Changed("theme") {
		cfg.Theme = themeName
	}
	if flags.Changed("seed") {
		cfg.Seed = seed
	}
	if flags.Changed("width") {
		cfg.Width = width
	}
	if flags.Changed("height") {
		cfg.Height = height
	}
	if flags.Changed("fps") {
		cfg.FPS = fps
	}
	if flags.Changed("frames") {
		if cfg.Frames, err = flags.GetInt("frames"); err != nil {
			return nil, err
		}
	}
	if flags.Changed("octaves") {
		cfg.NoiseOctaves = octaves
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = logLevel
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	return cfg, nil
}

// newLogger builds a development logger at the configured level. quiet
// discards output unless --log-file is set, for hosts that own the terminal.
func newLogger(cfg *config.Config, quiet bool) (*zap.Logger, error) {
	if quiet && logFile == "" {
		return zap.NewNop(), nil
	}
	lvl, err := zapcore.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, err
	}
	zc := zap.NewDevelopmentConfig()
	zc.Level = zap.NewAtomicLevelAt(lvl)
	zc.OutputPaths = []string{"stderr"}
	if logFile != "" {
		zc.OutputPaths = []string{logFile}
	}
	return zc.Build()
}

func setup(cmd *cobra.Command, quiet bool) (*config.Config, ambient.Theme, *zap.Logger, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, ambient.Theme{}, nil, err
	}
	th, err := cfg.ResolveTheme()
	if err != nil {
		return nil, ambient.Theme{}, nil, err
	}
	log, err := newLogger(cfg, quiet)
	if err != nil {
		return nil, ambient.Theme{}, nil, err
	}
	return cfg, th, log, nil
}

func newScene(host ambient.Host, cfg *config.Config, th ambient.Theme, log *zap.Logger) *scene.Scene {
	return scene.New(host,
		scene.WithTheme(th),
		scene.WithSeed(cfg.Seed),
		scene.WithOctaves(cfg.NoiseOctaves),
		scene.WithLogger(log),
	)
}

func runGUI(cmd *cobra.Command, args []string) error {
	cfg, th, log, err := setup(cmd, false)
	if err != nil {
		return err
	}
	defer log.Sync()

	return gui.Run(func(h *gui.Host) *scene.Scene {
		return newScene(h, cfg, th, log)
	}, gui.Options{Width: cfg.Width, Height: cfg.Height, FPS: cfg.FPS, Touch: touch, Logger: log})
}

func runCanvas(cmd *cobra.Command, args []string) error {
	cfg, th, log, err := setup(cmd, false)
	if err != nil {
		return err
	}
	defer log.Sync()

	return canvas.Run(func(h *canvas.Host) *scene.Scene {
		return newScene(h, cfg, th, log)
	}, canvas.Options{Width: cfg.Width, Height: cfg.Height, FPS: cfg.FPS, Touch: touch, Debug: debugOverlay, Logger: log})
}

func runTUI(cmd *cobra.Command, args []string) error {
	cfg, th, log, err := setup(cmd, true)
	if err != nil {
		return err
	}
	defer log.Sync()

	host := tui.Host()
	return tui.Run(newScene(host, cfg, th, log), host, tui.Options{
		FPS:         cfg.FPS,
		SnapshotDir: snapshotDir,
		Logger:      log,
	})
}
