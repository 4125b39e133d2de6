package dialogue

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFile(t *testing.T) {
	p, err := LoadFile("testdata/barkeep.json")
	require.NoError(t, err)

	assert.Equal(t, "Barkeep", p.Name)
	assert.Equal(t, []string{"news", "start", "work"}, p.StateNames())
	assert.Equal(t, "start", p.States["start"].Name)
	assert.Equal(t, "bar/news.bik", p.States["start"].Speeches[0].Video)
	assert.True(t, p.States["start"].Speeches[2].Ends())
}

func TestLoadRejectsMissingStart(t *testing.T) {
	_, err := Load(strings.NewReader(`{"name":"x","states":{"hello":{"speeches":[]}}}`))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNoStartState))
}

func TestLoadSuggestsClosestState(t *testing.T) {
	src := `{"name":"x","states":{
		"start":{"speeches":[{"text":"a","to":"mision"}]},
		"mission":{"speeches":[]}
	}}`
	_, err := Load(strings.NewReader(src))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnknownState))
	assert.Contains(t, err.Error(), `links to "mision"`)
	assert.Contains(t, err.Error(), `did you mean "mission"?`)
}

func TestLoadNoSuggestionForDistantName(t *testing.T) {
	src := `{"name":"x","states":{
		"start":{"speeches":[{"text":"a","to":"zzzzzzzzzz"}]}
	}}`
	_, err := Load(strings.NewReader(src))
	require.Error(t, err)
	assert.NotContains(t, err.Error(), "did you mean")
}

func TestLoadRejectsBadJSON(t *testing.T) {
	_, err := Load(strings.NewReader(`{"states":`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode dialogue")
}

func TestLoadCollectsEveryProblem(t *testing.T) {
	src := `{"name":"x","states":{
		"intro":{"speeches":[{"text":"a","to":"nowhere"},{"text":"b","to":"elsewhere"}]}
	}}`
	_, err := Load(strings.NewReader(src))
	require.Error(t, err)
	msg := err.Error()
	assert.Contains(t, msg, ErrNoStartState.Error())
	assert.Contains(t, msg, "nowhere")
	assert.Contains(t, msg, "elsewhere")
}

func TestUnreachable(t *testing.T) {
	p, err := LoadFile("testdata/barkeep.json")
	require.NoError(t, err)
	assert.Empty(t, p.Unreachable())

	src := `{"name":"x","states":{
		"start":{"speeches":[{"text":"a","to":"loop"}]},
		"loop":{"speeches":[{"text":"b","to":"start"}]},
		"orphan":{"speeches":[{"text":"c","to":"start"}]}
	}}`
	p, err = Load(strings.NewReader(src))
	require.NoError(t, err)
	assert.Equal(t, []string{"orphan"}, p.Unreachable())
}
