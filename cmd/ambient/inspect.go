package main

import (
	"fmt"
	"math/rand"
	"slices"
	"strconv"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/ambient/internal/ambient"
	"github.com/san-kum/ambient/internal/analysis"
	"github.com/san-kum/ambient/internal/automation"
	"github.com/san-kum/ambient/internal/config"
	"github.com/san-kum/ambient/internal/raster"
	"github.com/san-kum/ambient/internal/storage"
	"github.com/san-kum/ambient/internal/stripfield"
	"github.com/san-kum/ambient/internal/viz"
)

var (
	showAll   bool
	threshold int
	sweepMin  int
	sweepMax  int
	sweepStep int
)

func f2(v float64) string { return strconv.FormatFloat(v, 'f', 2, 64) }
func f3(v float64) string { return strconv.FormatFloat(v, 'f', 3, 64) }

func listRuns(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	runs, err := storage.New(cfg.DataDir).List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	rows := make([][]string, 0, len(runs))
	for _, run := range runs {
		rows = append(rows, []string{
			run.ID,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Theme,
			fmt.Sprintf("%dx%d", run.Width, run.Height),
			run.Profile,
			strconv.Itoa(run.Frames),
			strconv.Itoa(run.Strips),
			strconv.FormatBool(run.Cursor),
		})
	}
	fmt.Println(viz.Table([]string{"ID", "TIME", "THEME", "SIZE", "PROFILE", "FRAMES", "STRIPS", "CURSOR"}, rows))
	return nil
}

func showRun(cmd *cobra.Command, args []string) error {
	runID := args[0]
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	st := storage.New(cfg.DataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}
	strips, err := st.LoadStrips(runID)
	if err != nil {
		return err
	}

	fmt.Println(viz.Title.Render("run " + meta.ID))
	fmt.Println(viz.KV("time", meta.Timestamp.Format("2006-01-02 15:04:05"), 10))
	fmt.Println(viz.KV("theme", meta.Theme, 10))
	fmt.Println(viz.KV("seed", meta.Seed, 10))
	fmt.Println(viz.KV("viewport", fmt.Sprintf("%dx%d (%s)", meta.Width, meta.Height, meta.Profile), 10))
	fmt.Println(viz.KV("frames", meta.Frames, 10))
	fmt.Println(viz.KV("cursor", meta.Cursor, 10))
	fmt.Println(viz.KV("elapsed", fmt.Sprintf("%.2fs", meta.Elapsed), 10))
	if meta.Frames > 0 {
		fmt.Println(viz.KV("last", st.FramePath(runID, meta.Frames-1), 10))
	}
	fmt.Println()

	printStrips(strips, float64(meta.Width))
	return nil
}

func showStrips(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	p := stripfield.Configure(float64(cfg.Width))
	strips := stripfield.Generate(float64(cfg.Width), p, rand.New(rand.NewSource(cfg.Seed)))

	fmt.Println(viz.Title.Render(fmt.Sprintf("%s profile at %dpx", p.Class, cfg.Width)))
	fmt.Println(viz.Table(profileHeaders, [][]string{profileRow(p)}))

	if showAll {
		rows := make([][]string, 0, len(strips))
		for i, s := range strips {
			rows = append(rows, []string{strconv.Itoa(i), f2(s.X), f2(s.W), f2(s.Phase), f3(s.Speed)})
		}
		fmt.Println(viz.Table([]string{"#", "X", "W", "PHASE", "SPEED"}, rows))
	}
	printStrips(strips, float64(cfg.Width))
	return nil
}

func printStrips(strips []ambient.Strip, viewport float64) {
	if len(strips) == 0 {
		fmt.Println("no strips")
		return
	}

	st := analysis.Summarize(strips)
	fmt.Println(viz.KV("strips", st.Count, 10))
	fmt.Println(viz.KV("covered", fmt.Sprintf("%s / %s px", f2(st.Covered), f2(viewport)), 10))
	fmt.Println(viz.KV("width", fmt.Sprintf("%s..%s  mean %s  sd %s", f2(st.MinWidth), f2(st.MaxWidth), f2(st.MeanWidth), f2(st.StdWidth)), 10))
	fmt.Println(viz.KV("speed", fmt.Sprintf("%s..%s", f3(st.MinSpeed), f3(st.MaxSpeed)), 10))
	fmt.Println()

	graph := asciigraph.Plot(analysis.Widths(strips),
		asciigraph.Height(10),
		asciigraph.Width(80),
		asciigraph.Caption("strip width by index"),
	)
	fmt.Println(graph)
}

// sweepWidths regenerates the layout across a range of viewport widths and
// plots the strip count.
func sweepWidths(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	results, err := automation.RunSweep(cmd.Context(), sweepMin, sweepMax, sweepStep, cfg.Seed)
	if err != nil {
		return err
	}

	rows := make([][]string, 0, len(results))
	counts := make([]float64, 0, len(results))
	for _, r := range results {
		rows = append(rows, []string{
			strconv.Itoa(r.Width), r.Class.String(), strconv.Itoa(r.Strips), f2(r.Covered),
		})
		counts = append(counts, float64(r.Strips))
	}
	fmt.Println(viz.Title.Render(fmt.Sprintf("sweep %d..%d step %d (seed %d)", sweepMin, sweepMax, sweepStep, cfg.Seed)))
	fmt.Println(viz.Table([]string{"WIDTH", "CLASS", "STRIPS", "COVERED"}, rows))
	if len(counts) > 1 {
		fmt.Println(asciigraph.Plot(counts,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption("strip count by width"),
		))
	}
	return nil
}

var profileHeaders = []string{"CLASS", "BASE", "MIN", "MAX", "STEP", "SPEED MIN", "SPEED MAX"}

func profileRow(p ambient.DeviceProfile) []string {
	return []string{
		p.Class.String(),
		f2(p.StripBase),
		f2(p.StripMin),
		f2(p.StripMax),
		f2(p.VerticalStep),
		f3(p.SpeedMin),
		f3(p.SpeedMax),
	}
}

func showProfiles(cmd *cobra.Command, args []string) error {
	rows := [][]string{}
	for _, p := range stripfield.Profiles() {
		rows = append(rows, profileRow(p))
	}
	fmt.Println(viz.Table(profileHeaders, rows))
	fmt.Println(viz.Subtle.Render(fmt.Sprintf("narrow < %dpx <= medium < %dpx <= wide",
		int(stripfield.MediumMinWidth), int(stripfield.WideMinWidth))))
	return nil
}

func showThemes(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	var custom []string
	for name := range cfg.Themes {
		if _, ok := config.GetTheme(name); !ok {
			custom = append(custom, name)
		}
	}
	slices.Sort(custom)
	names := append(config.ListThemes(), custom...)

	for _, name := range names {
		probe := *cfg
		probe.Theme = name
		th, err := probe.ResolveTheme()
		if err != nil {
			return err
		}
		marker := "  "
		if name == cfg.Theme {
			marker = viz.Success.Render("* ")
		}
		fmt.Printf("%s%-8s %s  %s\n", marker, name, viz.ThemeRamp(th, 40),
			viz.Subtle.Render(fmt.Sprintf("hue %g±%g sat %g bri %g", th.BaseHue, th.HueRange, th.Saturation, th.Brightness)))
	}
	return nil
}

func diffImages(cmd *cobra.Command, args []string) error {
	a, err := raster.ReadPNG(args[0])
	if err != nil {
		return err
	}
	b, err := raster.ReadPNG(args[1])
	if err != nil {
		return err
	}

	res := analysis.Compare(a, b, threshold)
	if res.Resized {
		fmt.Println(viz.Warning.Render(fmt.Sprintf("sizes differ: %dx%d vs %dx%d, second image rescaled",
			res.SizeA.X, res.SizeA.Y, res.SizeB.X, res.SizeB.Y)))
	}

	fmt.Println(viz.KV("image 1", fmt.Sprintf("%s (%dx%d)", args[0], res.SizeA.X, res.SizeA.Y), 10))
	fmt.Println(viz.KV("image 2", fmt.Sprintf("%s (%dx%d)", args[1], res.SizeB.X, res.SizeB.Y), 10))
	fmt.Println(viz.KV("differing", fmt.Sprintf("%d / %d (%.2f%%)", res.Count, res.Total, res.Percent()), 10))
	fmt.Println(viz.KV("threshold", res.Threshold, 10))

	if res.Count > 0 {
		bb := res.Bounds
		fmt.Println(viz.KV("bounds", fmt.Sprintf("top %d left %d bottom %d right %d (%dx%d)",
			bb.Min.Y, bb.Min.X, bb.Max.Y, bb.Max.X, bb.Dx(), bb.Dy()), 10))
		rows := make([][]string, 0, len(res.Regions))
		for _, r := range res.Regions {
			rows = append(rows, []string{r.Name, strconv.Itoa(r.Count), strconv.Itoa(r.Total), fmt.Sprintf("%.2f%%", r.Percent())})
		}
		fmt.Println(viz.Table([]string{"REGION", "DIFF", "TOTAL", "PCT"}, rows))
	} else {
		fmt.Println(viz.Success.Render("images match"))
	}

	if outPath != "" {
		if err := raster.WritePNG(outPath, analysis.Overlay(a, res)); err != nil {
			return err
		}
		fmt.Println(viz.KV("diff image", outPath, 10))
	}
	return nil
}
