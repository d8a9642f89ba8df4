package storage

import (
	"image"
	"image/color"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/san-kum/ambient/internal/ambient"
)

func testStrips() []ambient.Strip {
	return []ambient.Strip{
		{X: 0, W: 18.5, Phase: 12.25, Speed: 0.02},
		{X: 18.5, W: 20, Phase: 400, Speed: 0.045},
	}
}

func TestRunLifecycle(t *testing.T) {
	s := New(t.TempDir())
	require.NoError(t, s.Init())

	run, err := s.Begin(RunMetadata{Theme: "sunset", Seed: 7, Width: 4, Height: 2}, testStrips())
	require.NoError(t, err)
	assert.Regexp(t, `^sunset_[0-9a-f]{8}$`, run.ID())

	img := image.NewRGBA(image.Rect(0, 0, 4, 2))
	img.SetRGBA(1, 1, color.RGBA{R: 200, A: 255})
	require.NoError(t, run.AddFrame(img))
	require.NoError(t, run.AddFrame(img))

	meta, err := run.Close(1500 * time.Millisecond)
	require.NoError(t, err)
	assert.Equal(t, 2, meta.Frames)
	assert.Equal(t, 2, meta.Strips)
	assert.InDelta(t, 1.5, meta.Elapsed, 1e-9)

	assert.ErrorIs(t, run.AddFrame(img), ErrRunClosed)
	_, err = run.Close(0)
	assert.ErrorIs(t, err, ErrRunClosed)

	loaded, err := s.Load(run.ID())
	require.NoError(t, err)
	assert.Equal(t, int64(7), loaded.Seed)
	assert.Equal(t, 2, loaded.Frames)

	strips, err := s.LoadStrips(run.ID())
	require.NoError(t, err)
	assert.Equal(t, testStrips(), strips)

	frame, err := s.LoadFrame(run.ID(), 1)
	require.NoError(t, err)
	r, _, _, _ := frame.At(1, 1).RGBA()
	assert.Equal(t, uint32(200), r>>8)

	_, err = os.Stat(s.FramePath(run.ID(), 2))
	assert.True(t, os.IsNotExist(err))
}

func TestListOrdersByTimestamp(t *testing.T) {
	s := New(t.TempDir())
	base := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	for i, id := range []string{"b", "a", "c"} {
		run, err := s.Begin(RunMetadata{ID: id, Timestamp: base.Add(time.Duration(2-i) * time.Minute)}, nil)
		require.NoError(t, err)
		_, err = run.Close(0)
		require.NoError(t, err)
	}
	require.NoError(t, os.MkdirAll(filepath.Join(s.Dir(), "broken"), 0755))

	runs, err := s.List()
	require.NoError(t, err)
	require.Len(t, runs, 3)
	assert.Equal(t, []string{"c", "a", "b"}, []string{runs[0].ID, runs[1].ID, runs[2].ID})
}

func TestListMissingDir(t *testing.T) {
	runs, err := New(filepath.Join(t.TempDir(), "none")).List()
	require.NoError(t, err)
	assert.Empty(t, runs)
}

func TestLoadStripsMalformed(t *testing.T) {
	s := New(t.TempDir())
	dir := filepath.Join(s.Dir(), "bad")
	require.NoError(t, os.MkdirAll(dir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "strips.csv"), []byte("x,w,phase,speed\n1,2,oops,4\n"), 0644))

	_, err := s.LoadStrips("bad")
	assert.Error(t, err)
}

func TestLoadStripsEmpty(t *testing.T) {
	s := New(t.TempDir())
	run, err := s.Begin(RunMetadata{ID: "empty"}, nil)
	require.NoError(t, err)

	strips, err := s.LoadStrips(run.ID())
	require.NoError(t, err)
	assert.Empty(t, strips)
}
