package media

import (
	"context"
	"log/slog"
	"time"
)

// VideoPlayer plays a clip to completion or until ctx is cancelled.
// A cancelled playback is a skip, not a failure: implementations return
// nil in that case.
type VideoPlayer interface {
	Play(ctx context.Context, clip string) error
}

// TimedPlayer stands in for the engine's video decoder: it logs the clip
// and holds for a fixed duration.
type TimedPlayer struct {
	Duration time.Duration
	Log      *slog.Logger
}

func NewTimedPlayer(d time.Duration, log *slog.Logger) *TimedPlayer {
	return &TimedPlayer{Duration: d, Log: log}
}

func (p *TimedPlayer) Play(ctx context.Context, clip string) error {
	if clip == "" {
		return nil
	}
	if p.Log != nil {
		p.Log.Info("playing video", "clip", clip, "duration", p.Duration)
	}
	if p.Duration <= 0 {
		return nil
	}
	t := time.NewTimer(p.Duration)
	defer t.Stop()
	select {
	case <-t.C:
	case <-ctx.Done():
		if p.Log != nil {
			p.Log.Info("video skipped", "clip", clip)
		}
	}
	return nil
}

// Playback runs a clip in the background so the UI thread can poll for
// completion instead of blocking a frame.
type Playback struct {
	Clip   string
	cancel context.CancelFunc
	done   chan error
	err    error
	over   bool
}

// Start begins playing clip on player
func Start(ctx context.Context, player VideoPlayer, clip string) *Playback {
	ctx, cancel := context.WithCancel(ctx)
	pb := &Playback{Clip: clip, cancel: cancel, done: make(chan error, 1)}
	go func() {
		pb.done <- player.Play(ctx, clip)
	}()
	return pb
}

// Skip asks the player to stop early
func (pb *Playback) Skip() {
	pb.cancel()
}

// Poll reports whether playback has finished, and its error if any.
// It never blocks.
func (pb *Playback) Poll() (bool, error) {
	if pb.over {
		return true, pb.err
	}
	select {
	case err := <-pb.done:
		pb.over = true
		pb.err = err
		pb.cancel()
		return true, err
	default:
		return false, nil
	}
}

// Wait blocks until playback ends
func (pb *Playback) Wait() error {
	if pb.over {
		return pb.err
	}
	pb.err = <-pb.done
	pb.over = true
	pb.cancel()
	return pb.err
}
