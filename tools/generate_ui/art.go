package main

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"math"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/1siamBot/rts-screens/engine/campaign"
	"github.com/1siamBot/rts-screens/engine/dialogue"
)

var (
	colGlow   = color.NRGBA{0, 200, 255, 200}
	colBevel  = color.NRGBA{80, 88, 105, 200}
	colShadow = color.NRGBA{10, 12, 18, 200}
	colLabel  = color.NRGBA{200, 220, 255, 255}
)

// artRef is one image referenced by the data
type artRef struct {
	Path     string // relative to the assets directory
	Label    string
	Portrait bool
}

// collectRefs lists every distinct image named by the campaigns under
// dataDir and their dialogues, sorted by path
func collectRefs(dataDir string) ([]artRef, error) {
	defs, err := campaign.LoadDefinitions(dataDir)
	if err != nil {
		return nil, err
	}
	seen := map[string]bool{}
	var refs []artRef
	add := func(path, label string, portrait bool) {
		if path == "" || seen[path] {
			return
		}
		seen[path] = true
		refs = append(refs, artRef{Path: path, Label: label, Portrait: portrait})
	}
	for _, def := range defs {
		add(def.Background, def.Name, false)
		p, err := dialogue.LoadFile(filepath.Join(dataDir, def.Dialogue))
		if err != nil {
			return nil, fmt.Errorf("campaign %s: %w", def.ID, err)
		}
		add(p.Portrait, p.Name, true)
		for _, name := range p.StateNames() {
			add(p.States[name].Image, p.Name+" / "+name, false)
		}
	}
	slices.SortFunc(refs, func(a, b artRef) int { return strings.Compare(a.Path, b.Path) })
	return refs, nil
}

// generate writes a placeholder PNG for each ref and returns the paths
// it wrote
func generate(refs []artRef, outDir string, w, h int, force bool) ([]string, error) {
	var written []string
	for _, ref := range refs {
		path := filepath.Join(outDir, filepath.FromSlash(ref.Path))
		if !force {
			if _, err := os.Stat(path); err == nil {
				continue
			}
		}
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return written, err
		}
		iw, ih := w, h
		if ref.Portrait {
			iw, ih = 128, 160
		}
		img := genBackground(iw, ih, ref.Label)
		if err := savePNG(path, img); err != nil {
			return written, err
		}
		written = append(written, path)
	}
	return written, nil
}

// genBackground paints brushed dark steel with a glowing rim, rivets and
// the label centred
func genBackground(w, h int, label string) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			base := 24.0 + 6.0*float64(x)/float64(w)
			noise := 2.0 * math.Sin(float64(y)*0.7+float64(x)*0.03)
			brushed := 1.5 * math.Sin(float64(y)*2.1+float64(x)*0.02)
			v := base + noise + brushed
			img.Set(x, y, color.NRGBA{clamp8(v * 0.88), clamp8(v * 0.92), clamp8(v * 1.15), 255})
		}
	}
	drawBevel(img)
	for y := 20; y < h-20; y += 40 {
		drawRivet(img, 5, y, 6)
		drawRivet(img, w-11, y, 6)
	}
	drawGlowLineH(img, 0, w, 0, colGlow, 3)
	drawGlowLineH(img, 0, w, h-1, colGlow, 3)
	drawLabel(img, label)
	return img
}

func drawLabel(img *image.RGBA, label string) {
	face := basicfont.Face7x13
	b := img.Bounds()
	d := &font.Drawer{Dst: img, Src: image.NewUniform(colLabel), Face: face}
	width := d.MeasureString(label).Ceil()
	d.Dot = fixed.P((b.Dx()-width)/2, b.Dy()/2+face.Ascent/2)
	d.DrawString(label)
}

func drawBevel(img *image.RGBA) {
	b := img.Bounds()
	for y := 0; y < b.Dy(); y++ {
		img.Set(0, y, colBevel)
		img.Set(b.Dx()-1, y, colShadow)
	}
	for x := 0; x < b.Dx(); x++ {
		img.Set(x, 1, colBevel)
		img.Set(x, b.Dy()-2, colShadow)
	}
}

func clamp8(v float64) uint8 {
	return uint8(math.Max(0, math.Min(255, v)))
}

func drawGlowLineH(img *image.RGBA, x0, x1, y int, c color.NRGBA, thickness int) {
	b := img.Bounds()
	for dy := -thickness; dy <= thickness; dy++ {
		py := y + dy
		if py < 0 || py >= b.Max.Y {
			continue
		}
		dist := math.Abs(float64(dy)) / float64(thickness+1)
		alpha := uint8(float64(c.A) * (1.0 - dist*dist))
		line := image.Rect(x0, py, min(x1, b.Max.X), py+1)
		draw.Draw(img, line, image.NewUniform(color.NRGBA{c.R, c.G, c.B, alpha}), image.Point{}, draw.Over)
	}
}

func drawRivet(img *image.RGBA, x, y, size int) {
	cx, cy := float64(x)+float64(size)/2, float64(y)+float64(size)/2
	r := float64(size) / 2
	b := img.Bounds()
	for dy := 0; dy < size; dy++ {
		for dx := 0; dx < size; dx++ {
			px, py := x+dx, y+dy
			if !image.Pt(px, py).In(b) {
				continue
			}
			ddx, ddy := float64(px)-cx, float64(py)-cy
			if math.Hypot(ddx, ddy) > r {
				continue
			}
			light := 0.5 + 0.5*(ddx/r*0.3-ddy/r*0.5)
			v := light * 140
			img.Set(px, py, color.NRGBA{clamp8(v), clamp8(v * 1.05), clamp8(v * 1.15), 255})
		}
	}
}

func savePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("%s: %w", path, err)
	}
	return f.Close()
}
