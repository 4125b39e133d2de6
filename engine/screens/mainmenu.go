package screens

import (
	"image/color"
	"math"

	"github.com/1siamBot/rts-screens/engine/audio"
	"github.com/1siamBot/rts-screens/engine/input"
	"github.com/1siamBot/rts-screens/engine/ui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// MainMenu is the title screen
type MainMenu struct {
	env      *Env
	tick     float64
	buttons  []*ui.Button
	hoverIdx int
	Version  string

	OnSinglePlayer func()
	OnLoadGame     func()
	OnQuit         func()
}

func NewMainMenu(env *Env) *MainMenu {
	m := &MainMenu{env: env, hoverIdx: -1}
	cx := env.Width / 2
	startY := env.Height/2 - 20
	bw, bh, gap := 260, 40, 8
	for i, name := range []string{"SINGLE PLAYER", "LOAD GAME", "EXIT"} {
		m.buttons = append(m.buttons, ui.NewButton(ui.Rect{
			X: cx - bw/2, Y: startY + i*(bh+gap), W: bw, H: bh,
		}, name))
	}
	return m
}

func (m *MainMenu) Name() string { return "main_menu" }
func (m *MainMenu) OnEnter()     { m.hoverIdx = -1 }
func (m *MainMenu) OnExit()      {}

// Button returns the menu button at i, in display order
func (m *MainMenu) Button(i int) *ui.Button {
	return m.buttons[i]
}

func (m *MainMenu) Update(in *input.InputState) error {
	m.tick += frameDT
	if in.IsKeyJustPressed(ebiten.KeyEscape) {
		m.activate(2)
		return nil
	}
	prev := m.hoverIdx
	m.hoverIdx = -1
	clicked := -1
	for i, b := range m.buttons {
		if b.Update(in) {
			clicked = i
		}
		if b.Hovered {
			m.hoverIdx = i
		}
	}
	hoverCue(m.env.Audio, prev, m.hoverIdx)
	if clicked >= 0 {
		m.env.Audio.PlayCue(audio.SndClick)
		m.activate(clicked)
	}
	return nil
}

func (m *MainMenu) activate(i int) {
	var cb func()
	switch i {
	case 0:
		cb = m.OnSinglePlayer
	case 1:
		cb = m.OnLoadGame
	case 2:
		cb = m.OnQuit
	}
	if cb != nil {
		cb()
	}
}

func (m *MainMenu) Draw(screen *ebiten.Image) {
	drawBackground(screen, nil, m.env.Width, m.env.Height, m.tick)
	m.drawTitle(screen)
	for _, b := range m.buttons {
		b.Draw(screen)
	}
	if m.Version != "" {
		ui.DrawText(screen, m.Version, 10, m.env.Height-20, ui.ColorTextDim)
	}
}

func (m *MainMenu) drawTitle(screen *ebiten.Image) {
	cx := m.env.Width / 2
	title := "COMMAND & CONQUER"
	subtitle := "CAMPAIGN"

	titleW := ui.TextWidth(title)
	pulse := 0.7 + 0.3*math.Sin(m.tick*2)
	glow := ui.Rect{X: cx - titleW/2 - 20, Y: 60, W: titleW + 40, H: 70}
	vector.DrawFilledRect(screen, float32(glow.X), float32(glow.Y), float32(glow.W), float32(glow.H),
		color.RGBA{0, 100, 180, uint8(40 * pulse)}, false)

	ty := 75
	// fake bold by overdrawing with offsets
	for dx := -1; dx <= 1; dx++ {
		for dy := -1; dy <= 1; dy++ {
			ui.DrawText(screen, title, cx-titleW/2+dx, ty+dy, ui.ColorText)
		}
	}
	lineY := float32(ty + 20)
	vector.DrawFilledRect(screen, float32(cx-120), lineY, 240, 2, ui.ColorAccent, false)
	vector.DrawFilledRect(screen, float32(cx-120), lineY-1, 240, 4, color.RGBA{0, 180, 255, 40}, false)

	ui.DrawText(screen, subtitle, cx-ui.TextWidth(subtitle)/2, ty+30, ui.ColorTextDim)
}
