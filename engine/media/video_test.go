package media

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingPlayer struct{}

func (failingPlayer) Play(context.Context, string) error { return errors.New("codec missing") }

func TestTimedPlayerEmptyClipReturnsImmediately(t *testing.T) {
	p := NewTimedPlayer(time.Hour, nil)
	require.NoError(t, p.Play(context.Background(), ""))
}

func TestPlaybackSkip(t *testing.T) {
	pb := Start(context.Background(), NewTimedPlayer(time.Hour, nil), "intro.bik")
	done, _ := pb.Poll()
	assert.False(t, done)

	pb.Skip()
	require.NoError(t, pb.Wait())

	done, err := pb.Poll()
	assert.True(t, done)
	assert.NoError(t, err)
}

func TestPlaybackReportsError(t *testing.T) {
	pb := Start(context.Background(), failingPlayer{}, "x.bik")
	err := pb.Wait()
	assert.EqualError(t, err, "codec missing")

	done, err := pb.Poll()
	assert.True(t, done)
	assert.EqualError(t, err, "codec missing")
}

func TestPlaybackPollEventuallyFinishes(t *testing.T) {
	pb := Start(context.Background(), NewTimedPlayer(time.Millisecond, nil), "short.bik")
	assert.Eventually(t, func() bool {
		done, _ := pb.Poll()
		return done
	}, time.Second, time.Millisecond)
}
