package audio

import "log/slog"

// SoundID identifies a UI sound cue
type SoundID string

const (
	SndClick  SoundID = "click"
	SndHover  SoundID = "hover"
	SndToggle SoundID = "toggle"
	SndDenied SoundID = "denied"
	SndSelect SoundID = "select"
)

// AudioManager plays UI cues. Playback is done by the host engine; this
// keeps volume state and the cue trail so screens can stay engine-agnostic.
type AudioManager struct {
	MasterVolume float64
	SFXVolume    float64
	Muted        bool

	log     *slog.Logger
	last    SoundID
	played  int
	history []SoundID
}

func NewAudioManager(log *slog.Logger) *AudioManager {
	return &AudioManager{
		MasterVolume: 1.0,
		SFXVolume:    0.8,
		log:          log,
	}
}

// PlayCue queues a UI cue at the current effective volume
func (am *AudioManager) PlayCue(id SoundID) {
	if am == nil {
		return
	}
	am.last = id
	am.played++
	am.history = append(am.history, id)
	if len(am.history) > 32 {
		am.history = am.history[len(am.history)-32:]
	}
	if am.log != nil {
		am.log.Debug("ui cue", "sound", string(id), "volume", am.Volume())
	}
}

// Volume is the effective cue volume
func (am *AudioManager) Volume() float64 {
	if am.Muted {
		return 0
	}
	return am.SFXVolume * am.MasterVolume
}

// Last returns the most recent cue, or "" when nothing was played
func (am *AudioManager) Last() SoundID {
	return am.last
}

// Played returns how many cues were played in total
func (am *AudioManager) Played() int {
	return am.played
}

// History returns the recent cue trail, oldest first
func (am *AudioManager) History() []SoundID {
	return append([]SoundID(nil), am.history...)
}

// SetVolume sets master volume (0-1)
func (am *AudioManager) SetVolume(v float64) {
	if v < 0 {
		v = 0
	}
	if v > 1 {
		v = 1
	}
	am.MasterVolume = v
}
