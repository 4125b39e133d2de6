package main

import (
	"context"
	"fmt"

	"github.com/1siamBot/rts-screens/engine/campaign"
	"github.com/1siamBot/rts-screens/engine/config"
	"github.com/1siamBot/rts-screens/engine/dialogue"
	"github.com/1siamBot/rts-screens/engine/media"
	"github.com/1siamBot/rts-screens/engine/savegame"
	"github.com/1siamBot/rts-screens/engine/screens"
)

// flow wires the screens together:
// main menu -> single player -> traits -> bar, and main menu -> load -> bar
type flow struct {
	env     *screens.Env
	cfg     *config.Config
	defs    []*campaign.Definition
	loader  *campaign.Loader
	starter *campaign.Starter
	clips   media.VideoPlayer

	bundle *campaign.Bundle
	walker *dialogue.Walker
}

func (f *flow) mainMenu() *screens.MainMenu {
	m := screens.NewMainMenu(f.env)
	m.Version = version
	m.OnSinglePlayer = func() {
		sp := screens.NewSingleplayerScreen(f.env, f.defs, f.starter)
		sp.OnReady = f.campaignReady
		f.env.Manager.Push(sp)
	}
	m.OnLoadGame = func() {
		f.env.Manager.Push(f.saveScreen(screens.ModeLoad))
	}
	m.OnQuit = f.env.Manager.Quit
	return m
}

func (f *flow) campaignReady(b *campaign.Bundle) {
	ts, err := screens.NewTraitScreen(f.env, b.Catalog, b.Def.Allowance)
	if err != nil {
		f.env.Log.Error("campaign traits unusable", "campaign", b.Def.ID, "error", err)
		return
	}
	ts.OnConfirm = func([]string) {
		f.openBar(b)
	}
	f.env.Manager.Replace(ts)
}

// openBar starts a fresh conversation in the bar of b
func (f *flow) openBar(b *campaign.Bundle) {
	w, err := dialogue.NewWalker(b.Person)
	if err != nil {
		f.env.Log.Error("campaign dialogue unusable", "campaign", b.Def.ID, "error", err)
		return
	}
	f.showBar(b, w, nil)
}

// showBar puts the bar on top of the main menu. spoken restores
// conversation progress from a save.
func (f *flow) showBar(b *campaign.Bundle, w *dialogue.Walker, spoken map[string][]int) {
	w.MarkSpoken(spoken)
	f.bundle, f.walker = b, w

	bar := screens.NewBarScreen(f.env, w, f.clips)
	bar.OnSave = func() {
		f.env.Manager.Push(f.saveScreen(screens.ModeSave))
	}
	f.env.Session.Loop.Play()
	f.env.Manager.Reset(f.mainMenu())
	f.env.Manager.Push(bar)
}

func (f *flow) saveScreen(mode screens.SaveMode) *screens.SaveLoadScreen {
	s := screens.NewSaveLoadScreen(f.env, f.cfg.SaveDir, mode)
	s.World = f.world
	s.OnLoad = f.loaded
	return s
}

// world encodes the campaign progress stored with a save
func (f *flow) world() []byte {
	if f.bundle == nil || f.walker == nil {
		return nil
	}
	p := campaign.NewProgress(f.bundle.Def.ID, f.env.Session.Traits, f.walker.Spoken())
	data, err := p.Marshal()
	if err != nil {
		f.env.Log.Error("encoding campaign progress failed", "error", err)
		return nil
	}
	return data
}

// loaded reopens the bar of the campaign a save was made in. Nothing is
// changed when the save cannot be continued.
func (f *flow) loaded(meta savegame.Meta, world []byte) error {
	p, err := campaign.ParseProgress(world)
	if err != nil {
		return fmt.Errorf("save has no usable campaign: %w", err)
	}
	def, err := campaign.Find(f.defs, p.ID)
	if err != nil {
		return err
	}
	b, err := f.loader.Load(context.Background(), def)
	if err != nil {
		return fmt.Errorf("load campaign %s: %w", def.ID, err)
	}
	w, err := dialogue.NewWalker(b.Person)
	if err != nil {
		return fmt.Errorf("campaign %s dialogue: %w", def.ID, err)
	}
	f.env.Log.Info("continuing campaign", "file", meta.Filename, "campaign", def.ID)
	f.env.Session.CampaignID = def.ID
	f.env.Session.Traits = p.Traits
	f.showBar(b, w, p.SpokenMap())
	return nil
}
