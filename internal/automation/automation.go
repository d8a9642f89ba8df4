// Package automation drives scenes from scripted event sequences and sweeps
// layout parameters.
package automation

import (
	"context"
	"errors"
	"fmt"
	"math"
	"math/rand"
	"os"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/ambient/internal/ambient"
	"github.com/san-kum/ambient/internal/stripfield"
)

// Pointer paths understood by PathPoint.
const (
	PathNone   = "none"
	PathCenter = "center"
	PathCircle = "circle"
)

// Scenario defines a scripted sequence of viewport and pointer events
type Scenario struct {
	Name        string         `yaml:"name"`
	Description string         `yaml:"description"`
	Width       int            `yaml:"width"`
	Height      int            `yaml:"height"`
	Steps       []ScenarioStep `yaml:"steps"`
}

// ScenarioStep applies its events once, then runs Frames ticks. Path, when
// set, moves the pointer before every tick of the step.
type ScenarioStep struct {
	Frames  int            `yaml:"frames"`
	Resize  *Size          `yaml:"resize,omitempty"`
	Pointer *ambient.Point `yaml:"pointer,omitempty"`
	Path    string         `yaml:"path,omitempty"`
}

type Size struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// Target receives scenario events. *scene.Scene satisfies it.
type Target interface {
	Resize(w, h int)
	PointerMove(x, y float64)
}

// Stepper runs one frame. *frame.Pump satisfies it.
type Stepper interface {
	Tick() bool
}

// LoadScenario loads a scenario from a YAML file
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var scenario Scenario
	if err := yaml.Unmarshal(data, &scenario); err != nil {
		return nil, err
	}
	if err := scenario.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return &scenario, nil
}

func (s *Scenario) Validate() error {
	var errs []error
	if s.Width <= 0 || s.Height <= 0 {
		errs = append(errs, fmt.Errorf("viewport must be positive, got %dx%d", s.Width, s.Height))
	}
	if len(s.Steps) == 0 {
		errs = append(errs, errors.New("scenario has no steps"))
	}
	for i, st := range s.Steps {
		if st.Frames < 0 {
			errs = append(errs, fmt.Errorf("step %d: frames must be >= 0", i+1))
		}
		if st.Resize != nil && (st.Resize.Width <= 0 || st.Resize.Height <= 0) {
			errs = append(errs, fmt.Errorf("step %d: resize must be positive", i+1))
		}
		switch st.Path {
		case "", PathNone, PathCenter, PathCircle:
		default:
			errs = append(errs, fmt.Errorf("step %d: unknown path %q", i+1, st.Path))
		}
	}
	return errors.Join(errs...)
}

// TotalFrames is the number of ticks the scenario runs.
func (s *Scenario) TotalFrames() int {
	n := 0
	for _, st := range s.Steps {
		n += st.Frames
	}
	return n
}

// PathPoint returns the pointer position of frame i of total along path in
// a w x h viewport, or false when the path does not move the pointer.
func PathPoint(path string, i, total, w, h int) (ambient.Point, bool) {
	cx, cy := float64(w)/2, float64(h)/2
	switch path {
	case PathCenter:
		return ambient.Point{X: cx, Y: cy}, true
	case PathCircle:
		r := math.Min(cx, cy) * 0.6
		t := 2 * math.Pi * float64(i) / float64(max(total, 1))
		return ambient.Point{X: cx + r*math.Cos(t), Y: cy + r*math.Sin(t)}, true
	}
	return ambient.Point{}, false
}

// RunScenario executes all steps against t, calling onFrame after every
// tick with the zero-based frame index. It returns the number of frames run.
func RunScenario(ctx context.Context, scenario *Scenario, t Target, step Stepper, onFrame func(frame int) error) (int, error) {
	w, h := scenario.Width, scenario.Height
	frame := 0

	for i, st := range scenario.Steps {
		if st.Resize != nil {
			w, h = st.Resize.Width, st.Resize.Height
			t.Resize(w, h)
		}
		if st.Pointer != nil {
			t.PointerMove(st.Pointer.X, st.Pointer.Y)
		}

		for k := 0; k < st.Frames; k++ {
			if err := ctx.Err(); err != nil {
				return frame, err
			}
			if p, ok := PathPoint(st.Path, k, st.Frames, w, h); ok {
				t.PointerMove(p.X, p.Y)
			}
			if !step.Tick() {
				return frame, fmt.Errorf("step %d: scheduler stopped", i+1)
			}
			if onFrame != nil {
				if err := onFrame(frame); err != nil {
					return frame, fmt.Errorf("step %d frame %d: %w", i+1, frame, err)
				}
			}
			frame++
		}
	}

	return frame, nil
}

// SweepResult holds the layout generated at one viewport width
type SweepResult struct {
	Width   int
	Class   ambient.DeviceClass
	Strips  int
	Covered float64
}

// RunSweep generates a strip layout at every width from minW to maxW in
// increments of step, each from a fresh source seeded with seed. Widths are
// generated concurrently; results are in width order.
func RunSweep(ctx context.Context, minW, maxW, step int, seed int64) ([]SweepResult, error) {
	if step <= 0 {
		return nil, fmt.Errorf("sweep step must be positive, got %d", step)
	}
	if minW <= 0 || maxW < minW {
		return nil, fmt.Errorf("invalid sweep range %d..%d", minW, maxW)
	}

	n := (maxW-minW)/step + 1
	results := make([]SweepResult, n)
	errs := make([]error, n)

	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			if err := ctx.Err(); err != nil {
				errs[idx] = err
				return
			}
			results[idx] = sweepOne(minW+idx*step, seed)
		}(i)
	}

	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return results, nil
}

func sweepOne(w int, seed int64) SweepResult {
	p := stripfield.Configure(float64(w))
	strips := stripfield.Generate(float64(w), p, rand.New(rand.NewSource(seed)))

	covered := 0.0
	if n := len(strips); n > 0 {
		covered = strips[n-1].X + strips[n-1].W
	}
	return SweepResult{
		Width:   w,
		Class:   p.Class,
		Strips:  len(strips),
		Covered: covered,
	}
}
