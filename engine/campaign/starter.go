package campaign

import (
	"context"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/1siamBot/rts-screens/engine/media"
)

// StartResult is handed back to the UI thread once both the intro video
// and the data load are done
type StartResult struct {
	Bundle *Bundle
	Err    error
}

// Starter plays a campaign's intro video while its data loads, and
// reports back when both have finished
type Starter struct {
	Loader    BundleLoader
	Player    media.VideoPlayer
	SkipIntro bool
	Log       *slog.Logger
}

// Launch is one campaign start in flight
type Launch struct {
	result chan StartResult
	cancel context.CancelFunc
	skip   context.CancelFunc
	done   bool
	res    StartResult
}

// Start begins loading def and playing its intro
func (s *Starter) Start(ctx context.Context, def *Definition) *Launch {
	ctx, cancel := context.WithCancel(ctx)
	skipCtx, skip := context.WithCancel(context.Background())
	l := &Launch{result: make(chan StartResult, 1), cancel: cancel, skip: skip}

	go func() {
		defer cancel()
		defer skip()

		g, gctx := errgroup.WithContext(ctx)
		var bundle *Bundle

		g.Go(func() error {
			if s.SkipIntro || s.Player == nil || def.IntroVideo == "" {
				return nil
			}
			vctx, stop := context.WithCancel(gctx)
			defer stop()
			unregister := context.AfterFunc(skipCtx, stop)
			defer unregister()
			if err := s.Player.Play(vctx, def.IntroVideo); err != nil && s.Log != nil {
				// a broken intro never blocks the campaign
				s.Log.Warn("intro video failed", "campaign", def.ID, "clip", def.IntroVideo, "error", err)
			}
			return nil
		})
		g.Go(func() error {
			b, err := s.Loader.Load(gctx, def)
			if err != nil {
				return err
			}
			bundle = b
			return nil
		})

		err := g.Wait()
		if err != nil {
			bundle = nil
			if s.Log != nil {
				s.Log.Error("campaign start failed", "campaign", def.ID, "error", err)
			}
		}
		l.result <- StartResult{Bundle: bundle, Err: err}
	}()
	return l
}

// SkipIntro stops the intro video; loading carries on
func (l *Launch) SkipIntro() {
	l.skip()
}

// Cancel abandons the start. A result may still arrive but callers that
// cancel are expected to drop the launch.
func (l *Launch) Cancel() {
	l.cancel()
}

// Poll returns the result once both tasks are done. It never blocks.
func (l *Launch) Poll() (StartResult, bool) {
	if l.done {
		return l.res, true
	}
	select {
	case res := <-l.result:
		l.done = true
		l.res = res
		return res, true
	default:
		return StartResult{}, false
	}
}

// Wait blocks for the result
func (l *Launch) Wait() StartResult {
	if !l.done {
		l.res = <-l.result
		l.done = true
	}
	return l.res
}
