package automation

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/san-kum/ambient/internal/ambient"
)

type recorder struct {
	resizes  []Size
	pointers []ambient.Point
	ticks    int
}

func (r *recorder) Resize(w, h int)          { r.resizes = append(r.resizes, Size{w, h}) }
func (r *recorder) PointerMove(x, y float64) { r.pointers = append(r.pointers, ambient.Point{X: x, Y: y}) }
func (r *recorder) Tick() bool               { r.ticks++; return true }

const scenarioYAML = `
name: shrink
description: wide then narrow
width: 1280
height: 720
steps:
  - frames: 2
    pointer: {x: 100, y: 50}
  - frames: 3
    path: center
    resize: {width: 400, height: 300}
`

func writeScenario(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scenario.yaml")
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadAndRunScenario(t *testing.T) {
	sc, err := LoadScenario(writeScenario(t, scenarioYAML))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if sc.Name != "shrink" || sc.TotalFrames() != 5 {
		t.Errorf("unexpected scenario %+v", sc)
	}

	r := &recorder{}
	var seen []int
	n, err := RunScenario(context.Background(), sc, r, r, func(i int) error {
		seen = append(seen, i)
		return nil
	})
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if n != 5 || r.ticks != 5 || len(seen) != 5 || seen[4] != 4 {
		t.Errorf("expected 5 frames, got n=%d ticks=%d seen=%v", n, r.ticks, seen)
	}
	if len(r.resizes) != 1 || r.resizes[0] != (Size{400, 300}) {
		t.Errorf("expected one resize to 400x300, got %v", r.resizes)
	}
	// one explicit pointer, then the centre of the resized viewport per tick
	if len(r.pointers) != 4 {
		t.Fatalf("expected 4 pointer moves, got %d", len(r.pointers))
	}
	if r.pointers[0] != (ambient.Point{X: 100, Y: 50}) {
		t.Errorf("expected explicit pointer first, got %v", r.pointers[0])
	}
	if r.pointers[3] != (ambient.Point{X: 200, Y: 150}) {
		t.Errorf("expected centre of 400x300, got %v", r.pointers[3])
	}
}

func TestRunScenarioFrameError(t *testing.T) {
	sc := &Scenario{Width: 10, Height: 10, Steps: []ScenarioStep{{Frames: 4}}}
	boom := errors.New("disk full")
	r := &recorder{}
	n, err := RunScenario(context.Background(), sc, r, r, func(i int) error {
		if i == 1 {
			return boom
		}
		return nil
	})
	if !errors.Is(err, boom) {
		t.Errorf("expected wrapped frame error, got %v", err)
	}
	if n != 1 {
		t.Errorf("expected 1 completed frame, got %d", n)
	}
}

func TestRunScenarioCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	sc := &Scenario{Width: 10, Height: 10, Steps: []ScenarioStep{{Frames: 4}}}
	r := &recorder{}
	if _, err := RunScenario(ctx, sc, r, r, nil); !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
	if r.ticks != 0 {
		t.Errorf("expected no ticks, got %d", r.ticks)
	}
}

func TestScenarioValidate(t *testing.T) {
	tests := []struct {
		name string
		sc   Scenario
		ok   bool
	}{
		{"valid", Scenario{Width: 1, Height: 1, Steps: []ScenarioStep{{Frames: 1}}}, true},
		{"no viewport", Scenario{Steps: []ScenarioStep{{Frames: 1}}}, false},
		{"no steps", Scenario{Width: 1, Height: 1}, false},
		{"negative frames", Scenario{Width: 1, Height: 1, Steps: []ScenarioStep{{Frames: -1}}}, false},
		{"bad resize", Scenario{Width: 1, Height: 1, Steps: []ScenarioStep{{Resize: &Size{0, 5}}}}, false},
		{"bad path", Scenario{Width: 1, Height: 1, Steps: []ScenarioStep{{Path: "zigzag"}}}, false},
	}
	for _, tt := range tests {
		err := tt.sc.Validate()
		if tt.ok != (err == nil) {
			t.Errorf("%s: ok=%v, err=%v", tt.name, tt.ok, err)
		}
	}
}

func TestPathPoint(t *testing.T) {
	if _, ok := PathPoint(PathNone, 0, 10, 100, 100); ok {
		t.Error("expected no pointer for none")
	}
	p, ok := PathPoint(PathCircle, 0, 4, 200, 100)
	if !ok || p != (ambient.Point{X: 130, Y: 50}) {
		t.Errorf("expected (130,50), got %v", p)
	}
	p, _ = PathPoint(PathCircle, 2, 4, 200, 100)
	if p.Dist(ambient.Point{X: 70, Y: 50}) > 1e-9 {
		t.Errorf("expected (70,50) half way round, got %v", p)
	}
}

func TestRunSweep(t *testing.T) {
	res, err := RunSweep(context.Background(), 500, 1100, 300, 7)
	if err != nil {
		t.Fatal(err)
	}
	if len(res) != 3 {
		t.Fatalf("expected 3 widths, got %d", len(res))
	}
	wantClass := []ambient.DeviceClass{ambient.Narrow, ambient.Medium, ambient.Wide}
	for i, r := range res {
		if r.Class != wantClass[i] {
			t.Errorf("width %d: expected %v, got %v", r.Width, wantClass[i], r.Class)
		}
		if r.Strips == 0 || r.Covered < float64(r.Width) {
			t.Errorf("width %d: expected full coverage, got %d strips covering %.1f", r.Width, r.Strips, r.Covered)
		}
	}

	again, _ := RunSweep(context.Background(), 500, 1100, 300, 7)
	for i := range res {
		if again[i] != res[i] {
			t.Errorf("sweep not reproducible at %d: %+v vs %+v", res[i].Width, res[i], again[i])
		}
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := RunSweep(ctx, 500, 600, 50, 7); !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}

	if _, err := RunSweep(context.Background(), 100, 50, 10, 1); err == nil {
		t.Error("expected error for inverted range")
	}
	if _, err := RunSweep(context.Background(), 100, 200, 0, 1); err == nil {
		t.Error("expected error for zero step")
	}
}

func TestShippedScenario(t *testing.T) {
	sc, err := LoadScenario(filepath.Join("..", "..", "scenarios", "shrink.yaml"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if sc.TotalFrames() != 120 {
		t.Errorf("expected 120 frames, got %d", sc.TotalFrames())
	}
	if sc.Steps[1].Resize == nil || sc.Steps[1].Resize.Width != 800 {
		t.Errorf("expected second step to resize to 800, got %+v", sc.Steps[1].Resize)
	}
}
