package audio

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPlayCueTracksHistory(t *testing.T) {
	am := NewAudioManager(nil)
	am.PlayCue(SndClick)
	am.PlayCue(SndDenied)

	assert.Equal(t, SndDenied, am.Last())
	assert.Equal(t, 2, am.Played())
	assert.Equal(t, []SoundID{SndClick, SndDenied}, am.History())
}

func TestHistoryIsBounded(t *testing.T) {
	am := NewAudioManager(nil)
	for i := 0; i < 40; i++ {
		am.PlayCue(SndHover)
	}
	assert.Len(t, am.History(), 32)
	assert.Equal(t, 40, am.Played())
}

func TestNilManagerIsSilent(t *testing.T) {
	var am *AudioManager
	assert.NotPanics(t, func() { am.PlayCue(SndClick) })
}

func TestVolume(t *testing.T) {
	am := NewAudioManager(nil)
	am.SetVolume(2)
	assert.Equal(t, 1.0, am.MasterVolume)
	am.SetVolume(0.5)
	assert.InDelta(t, 0.4, am.Volume(), 1e-9)
	am.Muted = true
	assert.Equal(t, 0.0, am.Volume())
}
