package screens

import (
	"context"
	"testing"
	"time"

	"github.com/1siamBot/rts-screens/engine/audio"
	"github.com/1siamBot/rts-screens/engine/core"
	"github.com/1siamBot/rts-screens/engine/input"
	"github.com/1siamBot/rts-screens/engine/logger"
	"github.com/1siamBot/rts-screens/engine/ui"
	"github.com/stretchr/testify/require"
)

func newTestEnv(t *testing.T) *Env {
	t.Helper()
	bus := core.NewEventBus()
	log := logger.Discard()
	return &Env{
		Width:   800,
		Height:  600,
		Manager: ui.NewManager(bus, log),
		Bus:     bus,
		Audio:   audio.NewAudioManager(nil),
		Session: core.NewSession(core.NewGameLoop(nil, 20)),
		Log:     log,
	}
}

// recordEvents collects every event type the bus delivers
func recordEvents(env *Env) *[]core.EventType {
	var got []core.EventType
	env.Bus.OnAny(func(e core.Event) { got = append(got, e.Type) })
	return &got
}

// step runs one frame of s with the given input and clears it afterwards
func step(t *testing.T, s ui.Screen, in *input.InputState) {
	t.Helper()
	require.NoError(t, s.Update(in))
	in.EndFrame()
}

// pump updates s with idle input until done holds
func pump(t *testing.T, s ui.Screen, done func() bool) {
	t.Helper()
	in := input.NewInputState()
	deadline := time.Now().Add(2 * time.Second)
	for !done() {
		if time.Now().After(deadline) {
			t.Fatal("screen did not settle")
		}
		require.NoError(t, s.Update(in))
		time.Sleep(2 * time.Millisecond)
	}
}

// gatedPlayer plays until release is closed or its context ends
type gatedPlayer struct {
	release chan struct{}
}

func newGatedPlayer() *gatedPlayer {
	return &gatedPlayer{release: make(chan struct{})}
}

func (p *gatedPlayer) Play(ctx context.Context, clip string) error {
	select {
	case <-p.release:
	case <-ctx.Done():
	}
	return nil
}
