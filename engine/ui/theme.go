package ui

import (
	"image"
	"image/color"
	"math"
	"sync"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"
)

var (
	ColorBG      = color.RGBA{8, 8, 16, 255}
	ColorPanel   = color.RGBA{15, 15, 30, 230}
	ColorBorder  = color.RGBA{0, 140, 200, 255}
	ColorAccent  = color.RGBA{0, 200, 255, 255}
	ColorBtn     = color.RGBA{25, 35, 55, 240}
	ColorBtnHov  = color.RGBA{35, 55, 90, 255}
	ColorBtnAct  = color.RGBA{0, 100, 160, 255}
	ColorBtnDis  = color.RGBA{20, 20, 30, 200}
	ColorText    = color.RGBA{200, 220, 255, 255}
	ColorTextDim = color.RGBA{100, 120, 150, 255}
	ColorGold    = color.RGBA{255, 200, 50, 255}
	ColorRed     = color.RGBA{220, 50, 50, 255}
	ColorGreen   = color.RGBA{50, 220, 80, 255}
	ColorShade   = color.RGBA{0, 0, 0, 160}
)

// LineHeight is the height of one line of UI text
const LineHeight = 14

var face = sync.OnceValue(func() text.Face {
	return text.NewGoXFace(basicfont.Face7x13)
})

// DrawText draws s with its top-left corner at x, y
func DrawText(dst *ebiten.Image, s string, x, y int, clr color.Color) {
	op := &text.DrawOptions{}
	op.GeoM.Translate(float64(x), float64(y))
	op.ColorScale.ScaleWithColor(clr)
	op.LineSpacing = LineHeight
	text.Draw(dst, s, face(), op)
}

// DrawTextCentered centers s inside r
func DrawTextCentered(dst *ebiten.Image, s string, r Rect, clr color.Color) {
	w := TextWidth(s)
	DrawText(dst, s, r.X+(r.W-w)/2, r.Y+(r.H-LineHeight)/2, clr)
}

// TextWidth is the pixel width of s in the UI face. The face is fixed
// width, so no glyph lookup is needed.
func TextWidth(s string) int {
	return len([]rune(s)) * basicfont.Face7x13.Advance
}

// Wrap splits s into lines no wider than width pixels
func Wrap(s string, width int) []string {
	maxChars := width / basicfont.Face7x13.Advance
	if maxChars <= 0 {
		return nil
	}
	var lines []string
	for _, para := range splitLines(s) {
		line := ""
		for _, word := range splitWords(para) {
			switch {
			case line == "":
				line = word
			case len([]rune(line))+1+len([]rune(word)) <= maxChars:
				line += " " + word
			default:
				lines = append(lines, line)
				line = word
			}
			for len([]rune(line)) > maxChars {
				r := []rune(line)
				lines = append(lines, string(r[:maxChars]))
				line = string(r[maxChars:])
			}
		}
		lines = append(lines, line)
	}
	return lines
}

func splitLines(s string) []string {
	var out []string
	start := 0
	for i, r := range s {
		if r == '\n' {
			out = append(out, s[start:i])
			start = i + 1
		}
	}
	return append(out, s[start:])
}

func splitWords(s string) []string {
	var out []string
	word := []rune{}
	for _, r := range s {
		if r == ' ' || r == '\t' {
			if len(word) > 0 {
				out = append(out, string(word))
				word = word[:0]
			}
			continue
		}
		word = append(word, r)
	}
	if len(word) > 0 {
		out = append(out, string(word))
	}
	return out
}

// DrawPanel draws the standard framed panel used by every screen
func DrawPanel(dst *ebiten.Image, r Rect, title string) {
	tex := panelTexture()
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(r.W)/float64(panelTexSize), float64(r.H)/float64(panelTexSize))
	op.GeoM.Translate(float64(r.X), float64(r.Y))
	dst.DrawImage(tex, op)
	drawRoundedRectStroke(dst, float32(r.X), float32(r.Y), float32(r.W), float32(r.H), 8, ColorBorder)
	if title != "" {
		DrawText(dst, title, r.X+14, r.Y+10, ColorAccent)
		vector.DrawFilledRect(dst, float32(r.X+12), float32(r.Y+28), float32(r.W-24), 2, ColorAccent, false)
	}
}

const panelTexSize = 128

var panelTexture = sync.OnceValue(func() *ebiten.Image {
	return ebiten.NewImageFromImage(darkMetal(panelTexSize, panelTexSize))
})

// darkMetal renders the brushed dark panel texture on the CPU
func darkMetal(w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			grad := 22.0 + 8.0*(1.0-float64(y)/float64(h))
			lineNoise := 2.0 * math.Sin(float64(y)*0.8+float64(x)*0.01)
			noise := 3.0 * math.Sin(float64(x*7919+y*7927)*0.001)
			v := grad + lineNoise + noise
			img.SetNRGBA(x, y, color.NRGBA{
				R: clampByte(v * 0.9),
				G: clampByte(v * 0.95),
				B: clampByte(v * 1.2),
				A: 230,
			})
		}
	}
	return img
}

func clampByte(v float64) uint8 {
	return uint8(math.Max(0, math.Min(255, v)))
}

// drawRoundedRect fills a rectangle with rounded corners
func drawRoundedRect(dst *ebiten.Image, x, y, w, h, r float32, clr color.Color) {
	r = clampRadius(w, h, r)
	if r <= 0 {
		vector.DrawFilledRect(dst, x, y, w, h, clr, false)
		return
	}
	vector.DrawFilledRect(dst, x+r, y, w-2*r, h, clr, false)
	vector.DrawFilledRect(dst, x, y+r, r, h-2*r, clr, false)
	vector.DrawFilledRect(dst, x+w-r, y+r, r, h-2*r, clr, false)
	vector.DrawFilledCircle(dst, x+r, y+r, r, clr, true)
	vector.DrawFilledCircle(dst, x+w-r, y+r, r, clr, true)
	vector.DrawFilledCircle(dst, x+r, y+h-r, r, clr, true)
	vector.DrawFilledCircle(dst, x+w-r, y+h-r, r, clr, true)
}

// drawRoundedRectStroke outlines a rectangle with rounded corners
func drawRoundedRectStroke(dst *ebiten.Image, x, y, w, h, r float32, clr color.Color) {
	r = clampRadius(w, h, r)
	vector.StrokeLine(dst, x+r, y, x+w-r, y, 1, clr, false)
	vector.StrokeLine(dst, x+r, y+h, x+w-r, y+h, 1, clr, false)
	vector.StrokeLine(dst, x, y+r, x, y+h-r, 1, clr, false)
	vector.StrokeLine(dst, x+w, y+r, x+w, y+h-r, 1, clr, false)
	if r <= 0 {
		return
	}
	corners := [4][3]float64{
		{float64(x + r), float64(y + r), math.Pi},
		{float64(x + w - r), float64(y + r), 1.5 * math.Pi},
		{float64(x + w - r), float64(y + h - r), 0},
		{float64(x + r), float64(y + h - r), 0.5 * math.Pi},
	}
	const segs = 6
	for _, c := range corners {
		for i := 0; i < segs; i++ {
			a0 := c[2] + float64(i)*math.Pi/2/segs
			a1 := c[2] + float64(i+1)*math.Pi/2/segs
			vector.StrokeLine(dst,
				float32(c[0]+float64(r)*math.Cos(a0)), float32(c[1]+float64(r)*math.Sin(a0)),
				float32(c[0]+float64(r)*math.Cos(a1)), float32(c[1]+float64(r)*math.Sin(a1)),
				1, clr, true)
		}
	}
}

func clampRadius(w, h, r float32) float32 {
	if r > w/2 {
		r = w / 2
	}
	if r > h/2 {
		r = h / 2
	}
	if r < 0 {
		r = 0
	}
	return r
}

// Lighten brightens clr for hover feedback
func Lighten(clr color.RGBA, d int) color.RGBA {
	clr.R = uint8(min(int(clr.R)+d, 255))
	clr.G = uint8(min(int(clr.G)+d, 255))
	clr.B = uint8(min(int(clr.B)+d, 255))
	return clr
}
