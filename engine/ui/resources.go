package ui

import (
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"sync"

	"github.com/hajimehoshi/ebiten/v2"
	xdraw "golang.org/x/image/draw"
)

// Resources loads UI images from the assets directory and caches them.
// A missing or broken file yields nil so screens fall back to flat colours.
type Resources struct {
	Dir    string
	Width  int
	Height int
	log    *slog.Logger

	mu     sync.Mutex
	images map[string]*ebiten.Image
	failed map[string]bool
}

func NewResources(dir string, width, height int, log *slog.Logger) *Resources {
	if dir == "" {
		dir = AssetsDir()
	}
	if log == nil {
		log = slog.Default()
	}
	return &Resources{
		Dir:    dir,
		Width:  width,
		Height: height,
		log:    log,
		images: make(map[string]*ebiten.Image),
		failed: make(map[string]bool),
	}
}

// AssetsDir finds assets/ next to the executable, then relative to the
// source tree, then relative to the working directory.
func AssetsDir() string {
	exe, err := os.Executable()
	if err == nil {
		dir := filepath.Join(filepath.Dir(exe), "assets")
		if _, err := os.Stat(dir); err == nil {
			return dir
		}
	}
	_, filename, _, _ := runtime.Caller(0)
	dir := filepath.Join(filepath.Dir(filename), "..", "..", "assets")
	if _, err := os.Stat(dir); err == nil {
		return dir
	}
	return "assets"
}

// Image returns the named image at its native size
func (r *Resources) Image(name string) *ebiten.Image {
	return r.get(name, 0, 0)
}

// Background returns the named image scaled to the screen size
func (r *Resources) Background(name string) *ebiten.Image {
	return r.get(name, r.Width, r.Height)
}

func (r *Resources) get(name string, w, h int) *ebiten.Image {
	if name == "" {
		return nil
	}
	key := fmt.Sprintf("%s@%dx%d", name, w, h)
	r.mu.Lock()
	defer r.mu.Unlock()
	if img, ok := r.images[key]; ok {
		return img
	}
	if r.failed[key] {
		return nil
	}
	src, err := LoadScaled(r.path(name), w, h)
	if err != nil {
		r.log.Warn("could not load ui image", "image", name, "error", err)
		r.failed[key] = true
		return nil
	}
	img := ebiten.NewImageFromImage(src)
	r.images[key] = img
	return img
}

func (r *Resources) path(name string) string {
	if filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(r.Dir, filepath.FromSlash(name))
}

// LoadScaled decodes the image at path. When w and h are positive the
// result is resampled to exactly that size.
func LoadScaled(path string, w, h int) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	src, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	if w <= 0 || h <= 0 || (src.Bounds().Dx() == w && src.Bounds().Dy() == h) {
		return src, nil
	}
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), src, src.Bounds(), xdraw.Over, nil)
	return dst, nil
}
