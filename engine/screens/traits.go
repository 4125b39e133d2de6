package screens

import (
	"fmt"
	"log/slog"

	"github.com/1siamBot/rts-screens/engine/audio"
	"github.com/1siamBot/rts-screens/engine/core"
	"github.com/1siamBot/rts-screens/engine/input"
	"github.com/1siamBot/rts-screens/engine/traits"
	"github.com/1siamBot/rts-screens/engine/ui"
	"github.com/hajimehoshi/ebiten/v2"
)

const (
	traitColumns = 2
	traitRowH    = 26
)

// TraitScreen is the point-buy customization page shown before a
// campaign. Every toggle re-resolves the whole selection.
type TraitScreen struct {
	env  *Env
	sel  *traits.Selection
	log  *slog.Logger
	tick float64

	boxes      []*ui.Checkbox
	hoverIdx   int
	btnConfirm *ui.Button
	btnBack    *ui.Button

	OnConfirm func(ids []string)
}

// NewTraitScreen opens the catalog with allowance points to spend.
// preselected ids are applied as if toggled in order.
func NewTraitScreen(env *Env, c *traits.Catalog, allowance int, preselected ...string) (*TraitScreen, error) {
	sel, err := traits.NewSelection(c, allowance, preselected...)
	if err != nil {
		return nil, err
	}
	t := &TraitScreen{env: env, sel: sel, log: env.logger("traits"), hoverIdx: -1}
	colW := (env.Width - 160) / traitColumns
	for i, tr := range c.Traits {
		col, row := i%traitColumns, i/traitColumns
		t.boxes = append(t.boxes, &ui.Checkbox{
			Rect:  ui.Rect{X: 80 + col*colW, Y: 110 + row*traitRowH, W: colW - 20, H: traitRowH - 4},
			Label: tr.Name,
		})
	}
	by := env.Height - 90
	t.btnConfirm = ui.NewButton(ui.Rect{X: 60, Y: by, W: 140, H: 36}, "CONFIRM")
	t.btnBack = ui.NewButton(ui.Rect{X: env.Width - 200, Y: by, W: 140, H: 36}, "BACK")
	t.sync()
	return t, nil
}

func (t *TraitScreen) Name() string { return "traits" }
func (t *TraitScreen) OnEnter()     { t.hoverIdx = -1 }
func (t *TraitScreen) OnExit()      {}

// Selection exposes the resolved pick
func (t *TraitScreen) Selection() *traits.Selection {
	return t.sel
}

// Box returns the checkbox of the i-th catalog trait
func (t *TraitScreen) Box(i int) *ui.Checkbox {
	return t.boxes[i]
}

// sync mirrors the selection into the checkboxes
func (t *TraitScreen) sync() {
	for i, tr := range t.sel.Catalog().Traits {
		b := t.boxes[i]
		b.Checked = t.sel.Selected(tr.ID)
		b.Disabled = !t.sel.Enabled(tr.ID)
	}
}

func (t *TraitScreen) Update(in *input.InputState) error {
	t.tick += frameDT
	if in.IsKeyJustPressed(ebiten.KeyEscape) {
		t.env.pop()
		return nil
	}
	prev := t.hoverIdx
	t.hoverIdx = -1
	for i, b := range t.boxes {
		clicked := b.Update(in)
		if b.Hovered {
			t.hoverIdx = i
			if in.LeftJustPressed && b.Disabled {
				t.env.Audio.PlayCue(audio.SndDenied)
			}
		}
		if clicked {
			if err := t.Toggle(t.sel.Catalog().Traits[i].ID); err != nil {
				return err
			}
		}
	}
	hoverCue(t.env.Audio, prev, t.hoverIdx)

	confirm := t.btnConfirm.Update(in)
	back := t.btnBack.Update(in)
	switch {
	case confirm || in.IsKeyJustPressed(ebiten.KeyEnter):
		t.env.Audio.PlayCue(audio.SndClick)
		t.Confirm()
	case back:
		t.env.Audio.PlayCue(audio.SndClick)
		t.env.pop()
	}
	return nil
}

// Toggle flips one trait. An error means the resolver could not bring the
// selection back within budget, which the game treats as fatal.
func (t *TraitScreen) Toggle(id string) error {
	changed, err := t.sel.Toggle(id)
	if err != nil {
		t.log.Error("trait selection broke its budget", "trait", id, "error", err)
		return fmt.Errorf("traits: %w", err)
	}
	if changed {
		t.env.Audio.PlayCue(audio.SndToggle)
	} else {
		t.env.Audio.PlayCue(audio.SndDenied)
	}
	t.sync()
	return nil
}

// Confirm stores the pick on the session and hands it on
func (t *TraitScreen) Confirm() {
	ids := t.sel.SelectedIDs()
	if t.env.Session != nil {
		t.env.Session.Traits = ids
	}
	t.log.Info("traits confirmed", "traits", ids, "remaining", t.sel.Remaining())
	t.env.emit(core.EvtTraitsConfirmed, ids)
	if t.OnConfirm != nil {
		t.OnConfirm(ids)
	}
}

func (t *TraitScreen) Draw(screen *ebiten.Image) {
	drawBackground(screen, nil, t.env.Width, t.env.Height, t.tick)
	ui.DrawPanel(screen, ui.Rect{X: 40, Y: 40, W: t.env.Width - 80, H: t.env.Height - 80}, "TRAITS")

	pts := fmt.Sprintf("Points left: %d / %d", t.sel.Remaining(), t.sel.Allowance())
	clr := ui.ColorGreen
	if t.sel.Remaining() == 0 {
		clr = ui.ColorGold
	}
	ui.DrawText(screen, pts, t.env.Width-60-ui.TextWidth(pts), 52, clr)

	for i, b := range t.boxes {
		b.Draw(screen)
		cost := fmt.Sprintf("%+d", t.sel.Catalog().Traits[i].Cost)
		costClr := ui.ColorText
		if b.Disabled {
			costClr = ui.ColorTextDim
		}
		ui.DrawText(screen, cost, b.X+b.W-ui.TextWidth(cost)-4, b.Y+(b.H-ui.LineHeight)/2, costClr)
	}
	t.drawHover(screen)
	t.btnConfirm.Draw(screen)
	t.btnBack.Draw(screen)
}

func (t *TraitScreen) drawHover(screen *ebiten.Image) {
	if t.hoverIdx < 0 {
		return
	}
	tr := t.sel.Catalog().Traits[t.hoverIdx]
	x, y := 80, t.env.Height-200
	desc, err := traits.Describe(tr)
	if err != nil {
		desc = tr.Description
	}
	ui.DrawText(screen, tr.Name, x, y, ui.ColorGold)
	y += ui.LineHeight + 4
	for _, line := range ui.Wrap(desc, t.env.Width-2*x) {
		ui.DrawText(screen, line, x, y, ui.ColorText)
		y += ui.LineHeight
	}
	if r := t.sel.Reason(tr.ID); r != "" {
		ui.DrawText(screen, r, x, y+4, ui.ColorRed)
	}
}
