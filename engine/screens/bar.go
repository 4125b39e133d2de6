package screens

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/1siamBot/rts-screens/engine/audio"
	"github.com/1siamBot/rts-screens/engine/core"
	"github.com/1siamBot/rts-screens/engine/dialogue"
	"github.com/1siamBot/rts-screens/engine/input"
	"github.com/1siamBot/rts-screens/engine/media"
	"github.com/1siamBot/rts-screens/engine/ui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// PauseDialogue is the pause reason held while a conversation is open
const PauseDialogue = "dialogue"

const (
	barRowH    = 22
	barMaxRows = 9
)

var digitKeys = [barMaxRows]ebiten.Key{
	ebiten.KeyDigit1, ebiten.KeyDigit2, ebiten.KeyDigit3,
	ebiten.KeyDigit4, ebiten.KeyDigit5, ebiten.KeyDigit6,
	ebiten.KeyDigit7, ebiten.KeyDigit8, ebiten.KeyDigit9,
}

// BarScreen is a conversation with a person in the bar. The picture shown
// follows the current dialogue state; videos attached to a speech play
// before the conversation moves on.
type BarScreen struct {
	env    *Env
	walker *dialogue.Walker
	player media.VideoPlayer
	log    *slog.Logger

	ctx      context.Context
	cancel   context.CancelFunc
	playback *media.Playback
	pending  dialogue.Transition
	hoverIdx int
	// scroll is the index of the first option shown in the panel
	scroll int
	tick   float64

	// OnSave opens the save screen (F5)
	OnSave func()
	// OnEnd runs after the conversation is over and the screen popped
	OnEnd func(spoken map[string][]int)
}

func NewBarScreen(env *Env, walker *dialogue.Walker, player media.VideoPlayer) *BarScreen {
	return &BarScreen{
		env:      env,
		walker:   walker,
		player:   player,
		log:      env.logger("bar"),
		hoverIdx: -1,
	}
}

func (b *BarScreen) Name() string { return "bar" }

func (b *BarScreen) OnEnter() {
	b.ctx, b.cancel = context.WithCancel(context.Background())
	if s := b.env.Session; s != nil && s.Loop != nil {
		s.Loop.PauseFor(PauseDialogue)
	}
	b.env.emit(core.EvtDialogueStarted, b.walker.Person().Name)
}

func (b *BarScreen) OnExit() {
	if b.cancel != nil {
		b.cancel()
	}
}

// Playing reports whether a speech video is running
func (b *BarScreen) Playing() bool {
	return b.playback != nil
}

// Walker returns the conversation being shown
func (b *BarScreen) Walker() *dialogue.Walker {
	return b.walker
}

func (b *BarScreen) Update(in *input.InputState) error {
	b.tick += frameDT
	if b.playback != nil {
		return b.updateVideo(in)
	}
	if b.walker.Ended() {
		return nil
	}
	if in.IsKeyJustPressed(ebiten.KeyF5) && b.OnSave != nil {
		b.OnSave()
		return nil
	}
	if in.IsKeyJustPressed(ebiten.KeyEscape) {
		b.finish()
		return nil
	}

	opts := b.walker.Options()
	b.updateScroll(in, len(opts))
	prev := b.hoverIdx
	b.hoverIdx = -1
	for i := b.scroll; i < b.visibleEnd(len(opts)); i++ {
		if b.optionRect(i, len(opts)).Contains(in.MouseX, in.MouseY) {
			b.hoverIdx = i
		}
	}
	hoverCue(b.env.Audio, prev, b.hoverIdx)

	choice := -1
	if in.LeftJustPressed && b.hoverIdx >= 0 {
		choice = b.hoverIdx
	}
	for i, k := range digitKeys {
		if b.scroll+i < len(opts) && in.IsKeyJustPressed(k) {
			choice = b.scroll + i
		}
	}
	if choice < 0 {
		return nil
	}
	return b.choose(choice)
}

// Scroll returns the index of the first option in the panel
func (b *BarScreen) Scroll() int {
	return b.scroll
}

// updateScroll pages through states with more options than fit in the
// panel. Digit keys always refer to the rows currently shown.
func (b *BarScreen) updateScroll(in *input.InputState, n int) {
	switch {
	case in.IsKeyJustPressed(ebiten.KeyPageDown):
		b.scroll += barMaxRows
	case in.IsKeyJustPressed(ebiten.KeyPageUp):
		b.scroll -= barMaxRows
	case in.ScrollY < 0 && b.panelRect(n).Contains(in.MouseX, in.MouseY):
		b.scroll++
	case in.ScrollY > 0 && b.panelRect(n).Contains(in.MouseX, in.MouseY):
		b.scroll--
	}
	b.scroll = max(min(b.scroll, n-barMaxRows), 0)
}

func (b *BarScreen) visibleEnd(n int) int {
	return min(b.scroll+barMaxRows, n)
}

func (b *BarScreen) choose(i int) error {
	tr, err := b.walker.Choose(i)
	if errors.Is(err, dialogue.ErrBadChoice) {
		b.env.Audio.PlayCue(audio.SndDenied)
		return nil
	}
	if err != nil {
		return fmt.Errorf("bar: %w", err)
	}
	b.env.Audio.PlayCue(audio.SndSelect)
	b.env.emit(core.EvtSpeechChosen, tr)
	if tr.Video != "" && b.player != nil {
		b.pending = tr
		b.playback = media.Start(b.ctx, b.player, tr.Video)
		return nil
	}
	b.apply(tr)
	return nil
}

func (b *BarScreen) updateVideo(in *input.InputState) error {
	if in.IsKeyJustPressed(ebiten.KeyEscape) || in.IsKeyJustPressed(ebiten.KeySpace) || in.LeftJustPressed {
		b.playback.Skip()
	}
	done, err := b.playback.Poll()
	if !done {
		return nil
	}
	if err != nil {
		b.log.Warn("speech video failed", "clip", b.playback.Clip, "error", err)
	}
	b.playback = nil
	b.apply(b.pending)
	return nil
}

func (b *BarScreen) apply(tr dialogue.Transition) {
	b.walker.Apply(tr)
	b.hoverIdx = -1
	b.scroll = 0
	if b.walker.Ended() {
		b.finish()
	}
}

// finish closes the conversation and hands control back to whatever was
// paused for it
func (b *BarScreen) finish() {
	if !b.walker.Ended() {
		b.walker.Apply(dialogue.Transition{})
	}
	if s := b.env.Session; s != nil && s.Loop != nil {
		s.Loop.ResumeFrom(PauseDialogue)
	}
	spoken := b.walker.Spoken()
	b.env.emit(core.EvtDialogueEnded, spoken)
	b.log.Info("conversation over", "person", b.walker.Person().Name, "spoken", b.walker.SpokenCount())
	b.env.pop()
	if b.OnEnd != nil {
		b.OnEnd(spoken)
	}
}

func (b *BarScreen) panelRect(n int) ui.Rect {
	h := 44 + min(n, barMaxRows)*barRowH
	return ui.Rect{X: 40, Y: b.env.Height - 40 - h, W: b.env.Width - 80, H: h}
}

// optionRect is where option i is drawn while it is scrolled into view
func (b *BarScreen) optionRect(i, n int) ui.Rect {
	p := b.panelRect(n)
	return ui.Rect{X: p.X + 12, Y: p.Y + 36 + (i-b.scroll)*barRowH, W: p.W - 24, H: barRowH}
}

func (b *BarScreen) Draw(screen *ebiten.Image) {
	if b.playback != nil {
		screen.Fill(ui.ColorBG)
		msg := fmt.Sprintf("[video: %s]", b.playback.Clip)
		ui.DrawTextCentered(screen, msg, ui.Rect{W: b.env.Width, H: b.env.Height}, ui.ColorText)
		ui.DrawText(screen, "SPACE to skip", 10, b.env.Height-20, ui.ColorTextDim)
		return
	}
	st := b.walker.Current()
	if st == nil {
		screen.Fill(ui.ColorBG)
		return
	}
	drawBackground(screen, b.env.background(st.Image), b.env.Width, b.env.Height, b.tick)

	opts := b.walker.Options()
	p := b.panelRect(len(opts))
	ui.DrawPanel(screen, p, b.walker.Person().Name)
	for i := b.scroll; i < b.visibleEnd(len(opts)); i++ {
		sp := opts[i]
		r := b.optionRect(i, len(opts))
		clr := ui.ColorText
		if sp.Spoken {
			clr = ui.ColorTextDim
		}
		if i == b.hoverIdx {
			vector.DrawFilledRect(screen, float32(r.X), float32(r.Y), float32(r.W), float32(r.H), ui.ColorBtnHov, false)
			clr = ui.ColorAccent
		}
		ui.DrawText(screen, fmt.Sprintf("%d. %s", i-b.scroll+1, sp.Text), r.X+6, r.Y+(r.H-ui.LineHeight)/2, clr)
	}
	hint := "F5 save   ESC leave"
	if len(opts) > barMaxRows {
		hint = fmt.Sprintf("%d-%d of %d   PGUP/PGDN more   %s", b.scroll+1, b.visibleEnd(len(opts)), len(opts), hint)
	}
	ui.DrawText(screen, hint, 10, b.env.Height-20, ui.ColorTextDim)
}
