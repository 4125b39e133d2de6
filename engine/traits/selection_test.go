package traits

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func toggle(t *testing.T, s *Selection, id string) {
	t.Helper()
	ok, err := s.Toggle(id)
	require.NoError(t, err)
	require.True(t, ok, "toggle %s refused", id)
}

func TestFreshSelectionDisablesUnaffordable(t *testing.T) {
	s, err := NewSelection(loadTestCatalog(t), 5)
	require.NoError(t, err)

	assert.Equal(t, 5, s.Remaining())
	assert.Empty(t, s.SelectedIDs())
	assert.True(t, s.Enabled("commander"))
	assert.False(t, s.Enabled("rich"))
	assert.Equal(t, "needs 6 points, 5 left", s.Reason("rich"))
	assert.Empty(t, s.Reason("tough"))
}

func TestToggleSpendsPoints(t *testing.T) {
	s, err := NewSelection(loadTestCatalog(t), 5)
	require.NoError(t, err)

	toggle(t, s, "tough")
	assert.Equal(t, 2, s.Remaining())
	assert.Equal(t, 3, s.Total())
	assert.True(t, s.Enabled("fast"))
	assert.True(t, s.Enabled("loner"))
	assert.False(t, s.Enabled("warmonger"))
	assert.False(t, s.Enabled("commander"))

	toggle(t, s, "tough")
	assert.False(t, s.Selected("tough"))
	assert.Equal(t, 5, s.Remaining())
}

func TestExcludedTraitIsDisabledWithReason(t *testing.T) {
	s, err := NewSelection(loadTestCatalog(t), 10)
	require.NoError(t, err)

	toggle(t, s, "pacifist")
	assert.Equal(t, 12, s.Remaining())
	assert.False(t, s.Enabled("warmonger"))
	assert.Equal(t, "excluded by Pacifist", s.Reason("warmonger"))

	toggle(t, s, "loner")
	assert.Equal(t, "excluded by Loner", s.Reason("commander"))
}

func TestToggleDisabledIsRefused(t *testing.T) {
	s, err := NewSelection(loadTestCatalog(t), 5)
	require.NoError(t, err)

	ok, err := s.Toggle("rich")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.False(t, s.Selected("rich"))
	assert.Equal(t, 5, s.Remaining())
}

func TestDroppingDrawbackDeselectsMostRecentPositive(t *testing.T) {
	s, err := NewSelection(loadTestCatalog(t), 5)
	require.NoError(t, err)

	toggle(t, s, "tough")    // 2 left
	toggle(t, s, "pacifist") // 4 left
	toggle(t, s, "fast")     // 2 left
	toggle(t, s, "loner")    // 1 left
	require.Equal(t, 1, s.Remaining())

	// giving the drawback back costs 2 points, so the last perk goes
	toggle(t, s, "pacifist")
	assert.Equal(t, []string{"tough", "fast"}, s.SelectedIDs())
	assert.Equal(t, 0, s.Remaining())
	assert.True(t, s.Enabled("pacifist"))
	assert.False(t, s.Enabled("loner"))
}

func TestDroppingDrawbackCanCascade(t *testing.T) {
	s, err := NewSelection(loadTestCatalog(t), 1)
	require.NoError(t, err)

	toggle(t, s, "pacifist") // 3 left
	toggle(t, s, "fast")     // 1 left
	toggle(t, s, "loner")    // 0 left

	toggle(t, s, "pacifist") // -2: drop loner (-1), then fast (1)
	assert.Equal(t, []string{}, s.SelectedIDs())
	assert.Equal(t, 1, s.Remaining())
}

func TestPreselectedConflictsEarlierWins(t *testing.T) {
	c := loadTestCatalog(t)

	s, err := NewSelection(c, 20, "loner", "commander")
	require.NoError(t, err)
	assert.Equal(t, []string{"loner"}, s.SelectedIDs())

	s, err = NewSelection(c, 20, "commander", "loner")
	require.NoError(t, err)
	assert.Equal(t, []string{"commander"}, s.SelectedIDs())
	assert.False(t, s.Enabled("loner"))
}

func TestPreselectedOverBudgetDropsLatest(t *testing.T) {
	s, err := NewSelection(loadTestCatalog(t), 6, "tough", "commander", "fast")
	require.NoError(t, err)
	// fast dropped first (still 8 > 6), then commander
	assert.Equal(t, []string{"tough"}, s.SelectedIDs())
	assert.Equal(t, 3, s.Remaining())
}

func TestSelectionInvariantViolation(t *testing.T) {
	c := loadTestCatalog(t)

	_, err := NewSelection(c, -1)
	assert.ErrorIs(t, err, ErrBudgetViolated)

	_, err = NewSelection(c, -3, "pacifist")
	assert.ErrorIs(t, err, ErrBudgetViolated)
}

func TestUnknownTrait(t *testing.T) {
	c := loadTestCatalog(t)
	_, err := NewSelection(c, 5, "ghost")
	assert.ErrorIs(t, err, ErrUnknownTrait)

	s, err := NewSelection(c, 5)
	require.NoError(t, err)
	_, err = s.Toggle("ghost")
	assert.ErrorIs(t, err, ErrUnknownTrait)
}

func TestSelectionNeverGoesNegative(t *testing.T) {
	c := loadTestCatalog(t)
	s, err := NewSelection(c, 7)
	require.NoError(t, err)

	ids := []string{"tough", "fast", "pacifist", "warmonger", "loner", "commander", "rich"}
	for round := 0; round < 3; round++ {
		for _, id := range ids {
			_, err := s.Toggle(id)
			require.NoError(t, err)
			assert.GreaterOrEqual(t, s.Remaining(), 0)
			for _, a := range s.SelectedIDs() {
				for _, b := range s.SelectedIDs() {
					assert.False(t, c.Get(a).Conflicts(c.Get(b)), "%s and %s both selected", a, b)
				}
			}
		}
	}
}
