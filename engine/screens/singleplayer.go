package screens

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/1siamBot/rts-screens/engine/audio"
	"github.com/1siamBot/rts-screens/engine/campaign"
	"github.com/1siamBot/rts-screens/engine/core"
	"github.com/1siamBot/rts-screens/engine/input"
	"github.com/1siamBot/rts-screens/engine/ui"
	"github.com/hajimehoshi/ebiten/v2"
)

// SingleplayerScreen lets the player pick a campaign and starts it. The
// intro video and the data load run together; the screen waits for both.
type SingleplayerScreen struct {
	env     *Env
	defs    []*campaign.Definition
	starter *campaign.Starter
	log     *slog.Logger
	tick    float64

	list     *ui.ListBox
	btnStart *ui.Button
	btnBack  *ui.Button

	ctx       context.Context
	cancel    context.CancelFunc
	launch    *campaign.Launch
	launching *campaign.Definition
	errText   string

	// OnReady receives the loaded campaign once intro and load are done
	OnReady func(b *campaign.Bundle)
}

func NewSingleplayerScreen(env *Env, defs []*campaign.Definition, starter *campaign.Starter) *SingleplayerScreen {
	s := &SingleplayerScreen{env: env, defs: defs, starter: starter, log: env.logger("singleplayer")}
	s.list = ui.NewListBox(ui.Rect{X: 60, Y: 100, W: 300, H: env.Height - 220})
	s.list.Focused = true
	names := make([]string, len(defs))
	for i, d := range defs {
		names[i] = d.Name
	}
	s.list.SetItems(names)
	if len(defs) > 0 {
		s.list.Selected = 0
	}
	by := env.Height - 90
	s.btnStart = ui.NewButton(ui.Rect{X: 60, Y: by, W: 140, H: 36}, "START")
	s.btnBack = ui.NewButton(ui.Rect{X: env.Width - 200, Y: by, W: 140, H: 36}, "BACK")
	return s
}

func (s *SingleplayerScreen) Name() string { return "singleplayer" }

func (s *SingleplayerScreen) OnEnter() {
	s.ctx, s.cancel = context.WithCancel(context.Background())
	s.errText = ""
}

// OnExit abandons a start still in flight
func (s *SingleplayerScreen) OnExit() {
	if s.cancel != nil {
		s.cancel()
	}
	s.launch = nil
	s.launching = nil
}

// Selected returns the highlighted campaign or nil
func (s *SingleplayerScreen) Selected() *campaign.Definition {
	if i := s.list.Selected; i >= 0 && i < len(s.defs) {
		return s.defs[i]
	}
	return nil
}

// Launching reports whether a campaign start is in flight
func (s *SingleplayerScreen) Launching() bool {
	return s.launch != nil
}

// Error returns the last start failure shown to the player
func (s *SingleplayerScreen) Error() string {
	return s.errText
}

func (s *SingleplayerScreen) Update(in *input.InputState) error {
	s.tick += frameDT
	if s.launch != nil {
		s.updateLaunch(in)
		return nil
	}
	if in.IsKeyJustPressed(ebiten.KeyEscape) {
		s.env.pop()
		return nil
	}
	activated := s.list.Update(in)
	s.btnStart.Disabled = s.Selected() == nil
	start := s.btnStart.Update(in)
	back := s.btnBack.Update(in)
	switch {
	case activated || start:
		s.env.Audio.PlayCue(audio.SndClick)
		s.Start()
	case back:
		s.env.Audio.PlayCue(audio.SndClick)
		s.env.pop()
	}
	return nil
}

// Start launches the highlighted campaign
func (s *SingleplayerScreen) Start() {
	def := s.Selected()
	if def == nil || s.launch != nil {
		return
	}
	if s.ctx == nil {
		s.OnEnter()
	}
	s.errText = ""
	s.launching = def
	s.log.Info("starting campaign", "campaign", def.ID)
	s.launch = s.starter.Start(s.ctx, def)
}

func (s *SingleplayerScreen) updateLaunch(in *input.InputState) {
	if in.IsKeyJustPressed(ebiten.KeySpace) || in.IsKeyJustPressed(ebiten.KeyEscape) || in.LeftJustPressed {
		s.launch.SkipIntro()
	}
	res, ok := s.launch.Poll()
	if !ok {
		return
	}
	def := s.launching
	s.launch = nil
	s.launching = nil
	if res.Err != nil {
		s.errText = fmt.Sprintf("Could not start %s: %v", def.Name, res.Err)
		s.env.Audio.PlayCue(audio.SndDenied)
		return
	}
	s.beginSession(res.Bundle)
	s.env.emit(core.EvtCampaignReady, res.Bundle.Def.ID)
	if s.OnReady != nil {
		s.OnReady(res.Bundle)
	}
}

// beginSession resets the running session for a fresh campaign
func (s *SingleplayerScreen) beginSession(b *campaign.Bundle) {
	sess := s.env.Session
	if sess == nil {
		return
	}
	sess.CampaignID = b.Def.ID
	sess.Difficulty = b.Def.Difficulty
	sess.Traits = nil
	sess.Level = ""
	if len(b.Def.Levels) > 0 {
		sess.Level = b.Def.Levels[0]
	}
	if sess.Loop != nil {
		sess.Loop.SetGameTime(0)
	}
	sess.Players.Reset()
	sess.Players.AddPlayer(&core.Player{ID: 0, Name: "Player", Money: b.Def.StartMoney})
}

func (s *SingleplayerScreen) Draw(screen *ebiten.Image) {
	sel := s.Selected()
	var bg *ebiten.Image
	if sel != nil {
		bg = s.env.background(sel.Background)
	}
	drawBackground(screen, bg, s.env.Width, s.env.Height, s.tick)

	if s.launching != nil {
		msg := fmt.Sprintf("Starting %s...", s.launching.Name)
		ui.DrawTextCentered(screen, msg, ui.Rect{W: s.env.Width, H: s.env.Height}, ui.ColorText)
		ui.DrawText(screen, "SPACE to skip the intro", 10, s.env.Height-20, ui.ColorTextDim)
		return
	}

	ui.DrawPanel(screen, ui.Rect{X: 40, Y: 40, W: s.env.Width - 80, H: s.env.Height - 80}, "SINGLE PLAYER")
	s.list.Draw(screen)
	if sel != nil {
		x := s.list.X + s.list.W + 30
		y := s.list.Y
		ui.DrawText(screen, sel.Name, x, y, ui.ColorGold)
		y += 2 * ui.LineHeight
		for _, line := range ui.Wrap(sel.Description, s.env.Width-x-70) {
			ui.DrawText(screen, line, x, y, ui.ColorText)
			y += ui.LineHeight
		}
		y += ui.LineHeight
		ui.DrawText(screen, fmt.Sprintf("Trait points: %d", sel.Allowance), x, y, ui.ColorTextDim)
		ui.DrawText(screen, fmt.Sprintf("Missions: %d", len(sel.Levels)), x, y+ui.LineHeight, ui.ColorTextDim)
	}
	s.btnStart.Draw(screen)
	s.btnBack.Draw(screen)
	if s.errText != "" {
		ui.DrawText(screen, s.errText, 60, s.env.Height-40-ui.LineHeight, ui.ColorRed)
	}
}
