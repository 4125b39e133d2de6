package savegame

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeAt(t *testing.T, dir, name string, at time.Time) {
	t.Helper()
	_, err := Write(dir, name, Meta{SavedAt: at, Level: name}, nil)
	require.NoError(t, err)
}

func TestScanOrdersNewestFirstAndSkipsBadFiles(t *testing.T) {
	dir := t.TempDir()
	base := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	writeAt(t, dir, "old", base)
	writeAt(t, dir, "new", base.Add(2*time.Hour))
	writeAt(t, dir, "mid", base.Add(time.Hour))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "broken.xml"), []byte("<savegame>"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("ignored"), 0o644))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "folder.xml"), 0o755))

	var logs bytes.Buffer
	log := slog.New(slog.NewTextHandler(&logs, nil))

	metas, err := Scan(context.Background(), dir, log)
	require.NoError(t, err)

	var names []string
	for _, m := range metas {
		names = append(names, m.Filename)
	}
	assert.Equal(t, []string{"new.xml", "mid.xml", "old.xml"}, names)
	assert.Contains(t, logs.String(), "skipping unreadable save")
	assert.Contains(t, logs.String(), "broken.xml")
}

func TestScanTiesBreakByName(t *testing.T) {
	dir := t.TempDir()
	at := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	writeAt(t, dir, "b", at)
	writeAt(t, dir, "a", at)

	metas, err := Scan(context.Background(), dir, nil)
	require.NoError(t, err)
	require.Len(t, metas, 2)
	assert.Equal(t, "a.xml", metas[0].Filename)
}

func TestScanMissingDirIsEmpty(t *testing.T) {
	metas, err := Scan(context.Background(), filepath.Join(t.TempDir(), "nope"), nil)
	require.NoError(t, err)
	assert.Empty(t, metas)
}

func TestScanHonoursCancellation(t *testing.T) {
	dir := t.TempDir()
	writeAt(t, dir, "one", time.Now())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Scan(ctx, dir, nil)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestScanAsyncDeliversOnce(t *testing.T) {
	dir := t.TempDir()
	writeAt(t, dir, "one", time.Now())

	ch := ScanAsync(context.Background(), dir, nil)
	res, ok := <-ch
	require.True(t, ok)
	require.NoError(t, res.Err)
	assert.Len(t, res.Entries, 1)

	_, ok = <-ch
	assert.False(t, ok, "channel closes after the result")
}
