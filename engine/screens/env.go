// Package screens holds the campaign front end: main menu, single player
// campaign selection, trait customization, the bar and the save/load list.
package screens

import (
	"image/color"
	"log/slog"
	"math"

	"github.com/1siamBot/rts-screens/engine/audio"
	"github.com/1siamBot/rts-screens/engine/core"
	"github.com/1siamBot/rts-screens/engine/logger"
	"github.com/1siamBot/rts-screens/engine/ui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// frameDT is the time one Update stands for at ebiten's default TPS
const frameDT = 1.0 / 60

// Env is shared by every screen
type Env struct {
	Width, Height int
	Manager       *ui.Manager
	Bus           *core.EventBus
	Audio         *audio.AudioManager
	Res           *ui.Resources
	Session       *core.Session
	Log           *slog.Logger
}

func (e *Env) emit(t core.EventType, payload any) {
	if e.Bus == nil {
		return
	}
	var tick uint64
	if e.Session != nil && e.Session.Loop != nil {
		tick = e.Session.Loop.CurrentTick()
	}
	e.Bus.Emit(core.Event{Type: t, Tick: tick, Payload: payload})
}

func (e *Env) logger(screen string) *slog.Logger {
	l := e.Log
	if l == nil {
		l = slog.Default()
	}
	return logger.WithScreen(l, screen)
}

func (e *Env) background(name string) *ebiten.Image {
	if e.Res == nil {
		return nil
	}
	return e.Res.Background(name)
}

func (e *Env) pop() {
	if e.Manager != nil {
		e.Manager.Pop()
	}
}

// drawBackground draws img stretched over the screen, or the animated grid
// when there is no image
func drawBackground(screen *ebiten.Image, img *ebiten.Image, w, h int, t float64) {
	screen.Fill(ui.ColorBG)
	if img != nil {
		op := &ebiten.DrawImageOptions{}
		b := img.Bounds()
		op.GeoM.Scale(float64(w)/float64(b.Dx()), float64(h)/float64(b.Dy()))
		screen.DrawImage(img, op)
		return
	}
	gridAlpha := uint8(15)
	for i := 0; i < 20; i++ {
		x := float32(math.Mod(float64(i)*70+t*20, float64(w)))
		vector.StrokeLine(screen, x, 0, x, float32(h), 1, color.RGBA{0, 80, 120, gridAlpha}, false)
	}
	for i := 0; i < 12; i++ {
		y := float32(math.Mod(float64(i)*65+t*15, float64(h)))
		vector.StrokeLine(screen, 0, y, float32(w), y, 1, color.RGBA{0, 80, 120, gridAlpha}, false)
	}
	for i := 0; i < 30; i++ {
		px := float32(math.Mod(float64(i)*43.7+t*10+float64(i*i)*0.3, float64(w)))
		py := float32(math.Mod(float64(i)*67.3+t*5+float64(i)*1.7, float64(h)))
		alpha := uint8(20 + 20*math.Sin(t*2+float64(i)))
		vector.DrawFilledCircle(screen, px, py, 1.5, color.RGBA{0, 180, 255, alpha}, false)
	}
}

// hoverCue plays the hover sound when the hovered item changes to a real one
func hoverCue(a *audio.AudioManager, prev, cur int) {
	if cur >= 0 && cur != prev {
		a.PlayCue(audio.SndHover)
	}
}
