package stripfield

import (
	"math/rand"
	"testing"

	"github.com/san-kum/ambient/internal/ambient"
	"github.com/san-kum/ambient/internal/ambient/ambienttest"
)

func newTestField(host *ambienttest.Host) *Field {
	return NewField(host,
		WithRand(rand.New(rand.NewSource(5))),
		WithNoise(ambienttest.ConstNoise(0.3)),
	)
}

func TestFieldMissingContainer(t *testing.T) {
	host := ambienttest.NewHost()
	f := newTestField(host)

	f.Setup(1280, 800)
	f.Resize(700, 500)
	f.Tick()

	if f.Active() {
		t.Error("field should stay inactive without a container")
	}
	if host.Created != 0 {
		t.Errorf("expected no surfaces, got %d", host.Created)
	}
	if len(f.Strips()) != 0 {
		t.Errorf("expected no strips, got %d", len(f.Strips()))
	}
}

func TestFieldSetupAndTick(t *testing.T) {
	host := ambienttest.NewHost(Container)
	f := newTestField(host)
	f.Setup(1280, 800)

	if !f.Active() {
		t.Fatal("expected active field")
	}
	if f.Profile().Class != ambient.Wide {
		t.Errorf("expected wide profile, got %s", f.Profile().Class)
	}

	before := f.Strips()
	f.Tick()
	after := f.Strips()

	for i := range before {
		want := before[i].Phase + before[i].Speed*SpeedFactor
		if after[i].Phase != want {
			t.Fatalf("strip %d: expected phase %v, got %v", i, want, after[i].Phase)
		}
	}

	surf := host.Surfaces[Container]
	if len(surf.Clears) != 1 || surf.Clears[0] != Background {
		t.Errorf("expected one clear with the background colour, got %v", surf.Clears)
	}
	if want := len(before) * 400; len(surf.Rects) != want {
		t.Errorf("expected %d bands, got %d", want, len(surf.Rects))
	}
}

func TestFieldResizeRegenerates(t *testing.T) {
	host := ambienttest.NewHost(Container)
	f := newTestField(host)
	f.Setup(1280, 800)

	f.Resize(500, 900)
	if f.Profile().Class != ambient.Narrow {
		t.Errorf("expected narrow profile after shrink, got %s", f.Profile().Class)
	}
	checkTiling(t, 500, f.Profile(), f.Strips())

	surf := host.Surfaces[Container]
	if surf.W != 500 || surf.H != 900 || surf.Resizes != 1 {
		t.Errorf("surface not resized: %dx%d (%d resizes)", surf.W, surf.H, surf.Resizes)
	}

	// same class still regenerates
	first := f.Strips()
	f.Resize(500, 900)
	second := f.Strips()
	if len(first) == len(second) && first[0] == second[0] {
		t.Error("expected a fresh layout on every resize")
	}
}

func TestFieldSetupIdempotent(t *testing.T) {
	host := ambienttest.NewHost(Container)
	f := newTestField(host)
	f.Setup(800, 600)
	f.Setup(800, 600)
	if host.Created != 1 {
		t.Errorf("expected one surface, got %d", host.Created)
	}
}

func TestFieldTeardown(t *testing.T) {
	host := ambienttest.NewHost(Container)
	f := newTestField(host)
	f.Setup(800, 600)
	f.Teardown()

	if f.Active() || host.Released != 1 {
		t.Errorf("expected released inactive field, active=%v released=%d", f.Active(), host.Released)
	}
	f.Tick()
	f.Setup(800, 600)
	if !f.Active() || host.Created != 2 {
		t.Error("expected field to mount again after teardown")
	}
}

func TestFieldCustomTheme(t *testing.T) {
	host := ambienttest.NewHost("hero-2")
	th := ambient.Theme{Name: "test", BaseHue: 100, HueRange: 0, Saturation: 40, Brightness: 80}
	f := NewField(host, WithContainer("hero-2"), WithTheme(th),
		WithRand(rand.New(rand.NewSource(1))), WithNoise(ambienttest.ConstNoise(0)))
	f.Setup(300, 10)
	f.Tick()

	if f.Theme() != th {
		t.Errorf("expected theme %+v, got %+v", th, f.Theme())
	}
	rects := host.Surfaces["hero-2"].Rects
	if len(rects) == 0 {
		t.Fatal("expected bands")
	}
	want := BandColor(f.Strips()[0], 0, th, ambienttest.ConstNoise(0))
	if rects[0].Color != want {
		t.Errorf("expected %v, got %v", want, rects[0].Color)
	}
}
