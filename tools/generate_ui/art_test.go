package main

import (
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollectRefs(t *testing.T) {
	refs, err := collectRefs("../../engine/campaign/testdata")
	require.NoError(t, err)

	var paths []string
	for _, r := range refs {
		paths = append(paths, r.Path)
	}
	assert.Equal(t, []string{
		"ashes/background.png",
		"bar/barkeep.png",
		"bar/barkeep_idle.png",
		"bar/barkeep_lean.png",
		"bar/barkeep_talk.png",
		"dawn/background.png",
	}, paths, "shared dialogue art is listed once")
	assert.True(t, refs[1].Portrait)
}

func TestGenerateSkipsExisting(t *testing.T) {
	out := t.TempDir()
	refs := []artRef{
		{Path: "bar/idle.png", Label: "Barkeep / start"},
		{Path: "bar/face.png", Label: "Barkeep", Portrait: true},
	}
	written, err := generate(refs, out, 64, 48, false)
	require.NoError(t, err)
	assert.Len(t, written, 2)

	f, err := os.Open(filepath.Join(out, "bar", "face.png"))
	require.NoError(t, err)
	defer f.Close()
	cfg, err := png.DecodeConfig(f)
	require.NoError(t, err)
	assert.Equal(t, 128, cfg.Width)
	assert.Equal(t, 160, cfg.Height)

	written, err = generate(refs, out, 64, 48, false)
	require.NoError(t, err)
	assert.Empty(t, written)

	written, err = generate(refs, out, 64, 48, true)
	require.NoError(t, err)
	assert.Len(t, written, 2)
}
