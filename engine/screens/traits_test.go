package screens

import (
	"testing"

	"github.com/1siamBot/rts-screens/engine/core"
	"github.com/1siamBot/rts-screens/engine/input"
	"github.com/1siamBot/rts-screens/engine/traits"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// catalog order: tough, fast, pacifist, warmonger, loner, commander, rich
const (
	idxTough = iota
	idxFast
	idxPacifist
	idxWarmonger
	idxLoner
	idxCommander
	idxRich
)

func loadTraits(t *testing.T) *traits.Catalog {
	t.Helper()
	c, err := traits.LoadCatalogFile("../traits/testdata/traits.json")
	require.NoError(t, err)
	return c
}

func clickBox(t *testing.T, s *TraitScreen, i int) error {
	t.Helper()
	in := input.NewInputState()
	b := s.Box(i)
	in.Click(b.X+5, b.Y+5)
	return s.Update(in)
}

func TestTraitScreenTogglesAndDisables(t *testing.T) {
	env := newTestEnv(t)
	s, err := NewTraitScreen(env, loadTraits(t), 6)
	require.NoError(t, err)
	env.Manager.Push(s)
	assert.False(t, s.Box(idxRich).Disabled, "rich fits the whole allowance")

	require.NoError(t, clickBox(t, s, idxTough))
	assert.True(t, s.Box(idxTough).Checked)
	assert.Equal(t, 3, s.Selection().Remaining())
	assert.True(t, s.Box(idxRich).Disabled)
	assert.True(t, s.Box(idxCommander).Disabled)
	assert.False(t, s.Box(idxFast).Disabled)

	// clicking a disabled trait changes nothing
	require.NoError(t, clickBox(t, s, idxRich))
	assert.False(t, s.Box(idxRich).Checked)

	require.NoError(t, clickBox(t, s, idxPacifist))
	assert.Equal(t, 5, s.Selection().Remaining())
	assert.True(t, s.Box(idxWarmonger).Disabled)
	assert.Equal(t, "excluded by Pacifist", s.Selection().Reason("warmonger"))

	require.NoError(t, clickBox(t, s, idxTough))
	assert.False(t, s.Box(idxTough).Checked)
	assert.Equal(t, 8, s.Selection().Remaining())
}

func TestTraitScreenConfirm(t *testing.T) {
	env := newTestEnv(t)
	events := recordEvents(env)
	s, err := NewTraitScreen(env, loadTraits(t), 6, "loner", "fast")
	require.NoError(t, err)
	var got []string
	s.OnConfirm = func(ids []string) { got = ids }

	assert.True(t, s.Box(idxCommander).Disabled)
	in := input.NewInputState()
	in.Click(s.btnConfirm.X+5, s.btnConfirm.Y+5)
	require.NoError(t, s.Update(in))

	assert.Equal(t, []string{"fast", "loner"}, got)
	assert.Equal(t, got, env.Session.Traits)
	env.Bus.Dispatch()
	assert.Contains(t, *events, core.EvtTraitsConfirmed)
}

func TestTraitScreenBudgetViolationIsFatal(t *testing.T) {
	env := newTestEnv(t)
	s, err := NewTraitScreen(env, loadTraits(t), -2, "pacifist")
	require.NoError(t, err)
	assert.Equal(t, 0, s.Selection().Remaining())

	err = clickBox(t, s, idxPacifist)
	assert.ErrorIs(t, err, traits.ErrBudgetViolated)
}

func TestTraitScreenUnknownPreselection(t *testing.T) {
	env := newTestEnv(t)
	_, err := NewTraitScreen(env, loadTraits(t), 6, "nope")
	assert.ErrorIs(t, err, traits.ErrUnknownTrait)
}
