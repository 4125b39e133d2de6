package screens

import (
	"fmt"
	"testing"

	"github.com/1siamBot/rts-screens/engine/core"
	"github.com/1siamBot/rts-screens/engine/dialogue"
	"github.com/1siamBot/rts-screens/engine/input"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBar(t *testing.T, env *Env, player *gatedPlayer) *BarScreen {
	t.Helper()
	p, err := dialogue.LoadFile("../dialogue/testdata/barkeep.json")
	require.NoError(t, err)
	w, err := dialogue.NewWalker(p)
	require.NoError(t, err)
	if player == nil {
		return NewBarScreen(env, w, nil)
	}
	return NewBarScreen(env, w, player)
}

func TestBarWalksToTheEnd(t *testing.T) {
	env := newTestEnv(t)
	events := recordEvents(env)
	loop := env.Session.Loop
	loop.Play()

	menu := NewMainMenu(env)
	env.Manager.Push(menu)
	bar := newBar(t, env, nil)
	var spoken map[string][]int
	bar.OnEnd = func(s map[string][]int) { spoken = s }
	env.Manager.Push(bar)
	assert.Equal(t, core.StatePaused, loop.State)

	in := input.NewInputState()
	in.Press(ebiten.KeyDigit2)
	step(t, bar, in)
	require.Equal(t, "work", bar.Walker().Current().Name)
	assert.True(t, bar.Walker().Person().States["start"].Speeches[1].Spoken)

	// a state without speeches offers a single way out
	opts := bar.Walker().Options()
	require.Len(t, opts, 1)
	r := bar.optionRect(0, len(opts))
	in.Click(r.X+5, r.Y+5)
	step(t, bar, in)

	assert.True(t, bar.Walker().Ended())
	assert.Equal(t, core.StatePlaying, loop.State)
	assert.Equal(t, menu, env.Manager.Current())
	assert.Equal(t, map[string][]int{"start": {1}}, spoken)

	env.Bus.Dispatch()
	assert.Subset(t, *events, []core.EventType{
		core.EvtDialogueStarted, core.EvtSpeechChosen, core.EvtDialogueEnded,
	})
}

func TestBarPlaysVideoBeforeMoving(t *testing.T) {
	env := newTestEnv(t)
	player := newGatedPlayer()
	bar := newBar(t, env, player)
	env.Manager.Push(bar)

	in := input.NewInputState()
	in.Press(ebiten.KeyDigit1)
	step(t, bar, in)
	require.True(t, bar.Playing())
	assert.Equal(t, "start", bar.Walker().Current().Name, "state changes after the video")

	close(player.release)
	pump(t, bar, func() bool { return !bar.Playing() })
	assert.Equal(t, "news", bar.Walker().Current().Name)
}

func TestBarSkipVideo(t *testing.T) {
	env := newTestEnv(t)
	bar := newBar(t, env, newGatedPlayer())
	env.Manager.Push(bar)

	in := input.NewInputState()
	in.Press(ebiten.KeyDigit1)
	step(t, bar, in)
	require.True(t, bar.Playing())

	in.Press(ebiten.KeySpace)
	step(t, bar, in)
	pump(t, bar, func() bool { return !bar.Playing() })
	assert.Equal(t, "news", bar.Walker().Current().Name)
}

func TestBarIgnoresMissingOptionAndLeavesOnEscape(t *testing.T) {
	env := newTestEnv(t)
	env.Session.Loop.Play()
	bar := newBar(t, env, nil)
	saves := 0
	bar.OnSave = func() { saves++ }
	env.Manager.Push(bar)

	in := input.NewInputState()
	in.Press(ebiten.KeyDigit9)
	step(t, bar, in)
	assert.Equal(t, "start", bar.Walker().Current().Name)

	in.Press(ebiten.KeyF5)
	step(t, bar, in)
	assert.Equal(t, 1, saves)

	in.Press(ebiten.KeyEscape)
	step(t, bar, in)
	assert.True(t, bar.Walker().Ended())
	assert.Nil(t, env.Manager.Current())
	assert.False(t, env.Session.Loop.PausedFor(PauseDialogue))
}

// talkative has more options at the start than the panel shows at once.
// Only the tenth one leads somewhere else.
func talkative(t *testing.T) *dialogue.Walker {
	t.Helper()
	start := &dialogue.State{Name: dialogue.StartState}
	for i := range 12 {
		sp := &dialogue.Speech{Text: fmt.Sprintf("line %d", i+1), To: dialogue.StartState}
		if i == 9 {
			sp.To = "far"
		}
		start.Speeches = append(start.Speeches, sp)
	}
	p := &dialogue.Person{Name: "Gossip", States: map[string]*dialogue.State{
		dialogue.StartState: start,
		"far":               {Name: "far"},
	}}
	require.NoError(t, p.Validate())
	w, err := dialogue.NewWalker(p)
	require.NoError(t, err)
	return w
}

func TestBarScrollsToLaterOptions(t *testing.T) {
	env := newTestEnv(t)
	bar := NewBarScreen(env, talkative(t), nil)
	env.Manager.Push(bar)
	in := input.NewInputState()

	in.Press(ebiten.KeyPageDown)
	step(t, bar, in)
	assert.Equal(t, 3, bar.Scroll(), "scroll stops with the last option on the bottom row")

	// rows are numbered from the top of the panel, so 7 is the tenth option
	in.Press(ebiten.KeyDigit7)
	step(t, bar, in)
	assert.Equal(t, "far", bar.Walker().Current().Name)
	assert.Equal(t, 0, bar.Scroll())
}

func TestBarWheelAndClickReachLastOption(t *testing.T) {
	env := newTestEnv(t)
	w := talkative(t)
	bar := NewBarScreen(env, w, nil)
	env.Manager.Push(bar)
	n := len(w.Options())
	in := input.NewInputState()

	p := bar.panelRect(n)
	for range 5 {
		in.MouseX, in.MouseY = p.X+20, p.Y+20
		in.ScrollY = -1
		step(t, bar, in)
	}
	require.Equal(t, 3, bar.Scroll())

	r := bar.optionRect(n-1, n)
	require.True(t, p.Contains(r.X+5, r.Y+5))
	in.Click(r.X+5, r.Y+5)
	step(t, bar, in)
	assert.True(t, w.Person().States[dialogue.StartState].Speeches[n-1].Spoken)
	assert.Equal(t, dialogue.StartState, w.Current().Name)
}
