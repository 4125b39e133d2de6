package campaign

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProgressRoundTrip(t *testing.T) {
	p := NewProgress("dawn", []string{"fast", "loner"}, map[string][]int{
		"start": {2, 0},
		"news":  {0},
		"work":  nil,
	})
	assert.Equal(t, []SpokenState{
		{State: "news", Speeches: []int{0}},
		{State: "start", Speeches: []int{0, 2}},
	}, p.Spoken)

	data, err := p.Marshal()
	require.NoError(t, err)
	assert.Contains(t, string(data), `<campaign id="dawn">`)

	got, err := ParseProgress(data)
	require.NoError(t, err)
	assert.Equal(t, "dawn", got.ID)
	assert.Equal(t, []string{"fast", "loner"}, got.Traits)
	assert.Equal(t, map[string][]int{"news": {0}, "start": {0, 2}}, got.SpokenMap())
}

func TestParseProgressErrors(t *testing.T) {
	_, err := ParseProgress(nil)
	assert.Error(t, err)

	_, err = ParseProgress([]byte(`<campaign>`))
	assert.ErrorContains(t, err, "campaign progress")

	_, err = ParseProgress([]byte(`<campaign></campaign>`))
	assert.ErrorContains(t, err, "missing campaign id")
}
