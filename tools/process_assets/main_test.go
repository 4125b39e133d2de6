package main

import (
	"image"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProcessScalesAndKeepsLayout(t *testing.T) {
	in, out := t.TempDir(), t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(in, "bar"), 0o755))
	f, err := os.Create(filepath.Join(in, "bar", "idle.png"))
	require.NoError(t, err)
	require.NoError(t, png.Encode(f, image.NewRGBA(image.Rect(0, 0, 40, 30))))
	require.NoError(t, f.Close())
	require.NoError(t, os.WriteFile(filepath.Join(in, "notes.txt"), []byte("skip me"), 0o644))

	n, err := process(in, out, 80, 60)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	g, err := os.Open(filepath.Join(out, "bar", "idle.png"))
	require.NoError(t, err)
	defer g.Close()
	cfg, err := png.DecodeConfig(g)
	require.NoError(t, err)
	assert.Equal(t, 80, cfg.Width)
	assert.Equal(t, 60, cfg.Height)
}
