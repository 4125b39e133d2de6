package main

import (
	"log/slog"
	"os"
	"time"

	"github.com/1siamBot/rts-screens/engine/audio"
	"github.com/1siamBot/rts-screens/engine/campaign"
	"github.com/1siamBot/rts-screens/engine/config"
	"github.com/1siamBot/rts-screens/engine/core"
	"github.com/1siamBot/rts-screens/engine/input"
	"github.com/1siamBot/rts-screens/engine/logger"
	"github.com/1siamBot/rts-screens/engine/media"
	"github.com/1siamBot/rts-screens/engine/screens"
	"github.com/1siamBot/rts-screens/engine/ui"
	"github.com/hajimehoshi/ebiten/v2"
)

const (
	version   = "v0.6.0"
	introTime = 4 * time.Second
	clipTime  = 2 * time.Second
)

// Game implements ebiten.Game interface
type Game struct {
	cfg      *config.Config
	input    *input.InputState
	gameLoop *core.GameLoop
	eventBus *core.EventBus
	screens  *ui.Manager
}

func (g *Game) Update() error {
	g.input.Update()
	g.gameLoop.Update()
	err := g.screens.Update(g.input)
	g.eventBus.Dispatch()
	return err
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.screens.Draw(screen)
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.cfg.ScreenWidth, g.cfg.ScreenHeight
}

// economy pays each human player a fixed income per second of game time
type economy struct {
	players *core.PlayerManager
	income  int
	acc     float64
}

func (e *economy) Tick(dt float64) {
	e.acc += dt
	for e.acc >= 1 {
		e.acc--
		for _, p := range e.players.Players {
			if !p.IsAI {
				p.Money += e.income
			}
		}
	}
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}
	log := logger.Setup(cfg)

	defs, err := campaign.LoadDefinitions(cfg.DataDir)
	if err != nil {
		log.Error("loading campaigns failed", "dir", cfg.DataDir, "error", err)
		os.Exit(1)
	}
	log.Info("campaigns loaded", "count", len(defs), "dir", cfg.DataDir)

	bus := core.NewEventBus()
	bus.OnAny(func(e core.Event) {
		log.Debug("event", "type", e.Type.String(), "tick", e.Tick)
	})
	session := core.NewSession(nil)
	loop := core.NewGameLoop(&economy{players: session.Players, income: 10}, cfg.TickRate)
	session.Loop = loop

	env := &screens.Env{
		Width:   cfg.ScreenWidth,
		Height:  cfg.ScreenHeight,
		Manager: ui.NewManager(bus, log),
		Bus:     bus,
		Audio:   audio.NewAudioManager(log),
		Res:     ui.NewResources(cfg.AssetsDir, cfg.ScreenWidth, cfg.ScreenHeight, log),
		Session: session,
		Log:     log,
	}
	loader := campaign.NewLoader(cfg.DataDir, log)
	f := &flow{
		env:     env,
		cfg:     cfg,
		defs:    defs,
		loader:  loader,
		clips:   media.NewTimedPlayer(clipTime, log),
		starter: &campaign.Starter{Loader: loader, Player: media.NewTimedPlayer(introTime, log), SkipIntro: cfg.SkipIntro, Log: log},
	}
	env.Manager.Push(f.mainMenu())

	g := &Game{
		cfg:      cfg,
		input:    input.NewInputState(),
		gameLoop: loop,
		eventBus: bus,
		screens:  env.Manager,
	}

	ebiten.SetWindowSize(cfg.ScreenWidth, cfg.ScreenHeight)
	ebiten.SetWindowTitle("RTS Campaign " + version)
	ebiten.SetFullscreen(cfg.Fullscreen)
	if err := ebiten.RunGame(g); err != nil {
		log.Error("game stopped", "error", err)
		os.Exit(1)
	}
}
