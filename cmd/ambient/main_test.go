package main

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/san-kum/ambient/internal/config"
	"github.com/san-kum/ambient/internal/storage"
)

func TestCommandFlagDefaults(t *testing.T) {
	root := newRootCmd()

	tests := []struct {
		cmd, flag, want string
	}{
		{"render", "frames", strconv.Itoa(config.DefaultFrames)},
		{"render", "pointer", "circle"},
		{"svg", "frames", "1"},
		{"svg", "pointer", "center"},
		{"trail", "frames", "240"},
	}
	for _, tt := range tests {
		c, _, err := root.Find([]string{tt.cmd})
		require.NoError(t, err)
		f := c.Flags().Lookup(tt.flag)
		require.NotNil(t, f, "%s --%s", tt.cmd, tt.flag)
		assert.Equal(t, tt.want, f.DefValue, "%s --%s default", tt.cmd, tt.flag)
		assert.Equal(t, tt.want, f.Value.String(), "%s --%s value after registration", tt.cmd, tt.flag)
	}

	// the bound variables keep their own command's default
	assert.Equal(t, "circle", renderPointer)
	assert.Equal(t, "center", svgPointer)
	assert.Equal(t, config.DefaultFrames, renderFrames)
	assert.Equal(t, 1, svgFrames)
	assert.Equal(t, 240, trailFrames)
}

func TestSVGCommandDefaults(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "frame.svg")

	root := newRootCmd()
	root.SetArgs([]string{"svg", "--width", "64", "--height", "48", "--seed", "3", "--data", dir, "-o", out})
	require.NoError(t, root.Execute())

	assert.Equal(t, 1, svgFrames)
	assert.Equal(t, "center", svgPointer)
	doc, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(doc), "<svg"), "expected an svg document")
}

func TestRenderCommandFrames(t *testing.T) {
	dir := t.TempDir()

	root := newRootCmd()
	root.SetArgs([]string{"render", "--width", "64", "--height", "48", "--seed", "3",
		"--frames", "2", "--data", dir})
	require.NoError(t, root.Execute())
	assert.Equal(t, "circle", renderPointer)

	runs, err := storage.New(dir).List()
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, 2, runs[0].Frames)
}
