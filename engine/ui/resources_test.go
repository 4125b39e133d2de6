package ui

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writePNG(t *testing.T, path string, w, h int) {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, color.NRGBA{R: uint8(x * 10), G: 80, B: 160, A: 255})
		}
	}
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, png.Encode(f, img))
}

func TestLoadScaledResizes(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bar.png")
	writePNG(t, path, 16, 8)

	img, err := LoadScaled(path, 64, 32)
	require.NoError(t, err)
	assert.Equal(t, 64, img.Bounds().Dx())
	assert.Equal(t, 32, img.Bounds().Dy())

	native, err := LoadScaled(path, 0, 0)
	require.NoError(t, err)
	assert.Equal(t, 16, native.Bounds().Dx())
}

func TestLoadScaledErrors(t *testing.T) {
	dir := t.TempDir()
	_, err := LoadScaled(filepath.Join(dir, "missing.png"), 0, 0)
	assert.ErrorIs(t, err, os.ErrNotExist)

	junk := filepath.Join(dir, "junk.png")
	require.NoError(t, os.WriteFile(junk, []byte("not an image"), 0o644))
	_, err = LoadScaled(junk, 0, 0)
	assert.ErrorContains(t, err, "decode")
}

func TestResourcesMissingImageIsNil(t *testing.T) {
	r := NewResources(t.TempDir(), 320, 200, nil)
	assert.Nil(t, r.Background("bars/none.png"))
	assert.Nil(t, r.Image(""))
	assert.Len(t, r.failed, 1)
}
