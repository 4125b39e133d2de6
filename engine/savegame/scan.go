package savegame

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Scan lists the saves in dir, newest first. Files that fail to parse are
// logged and left out. A missing directory is an empty listing.
func Scan(ctx context.Context, dir string, log *slog.Logger) ([]Meta, error) {
	entries, err := os.ReadDir(dir)
	if errors.Is(err, fs.ErrNotExist) {
		return []Meta{}, nil
	}
	if err != nil {
		return nil, err
	}

	metas := make([]Meta, 0, len(entries))
	for _, e := range entries {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if e.IsDir() || !strings.EqualFold(filepath.Ext(e.Name()), Ext) {
			continue
		}
		m, err := ReadMeta(filepath.Join(dir, e.Name()))
		if err != nil {
			if log != nil {
				log.Warn("skipping unreadable save", "file", e.Name(), "error", err)
			}
			continue
		}
		metas = append(metas, m)
	}

	sort.SliceStable(metas, func(i, j int) bool {
		if !metas[i].SavedAt.Equal(metas[j].SavedAt) {
			return metas[i].SavedAt.After(metas[j].SavedAt)
		}
		return metas[i].Filename < metas[j].Filename
	})
	return metas, nil
}

// ScanResult is what a background scan hands back to the UI thread
type ScanResult struct {
	Entries []Meta
	Err     error
}

// ScanAsync runs Scan on a goroutine. The channel receives exactly one
// result and is then closed; cancelling ctx makes the result an error.
func ScanAsync(ctx context.Context, dir string, log *slog.Logger) <-chan ScanResult {
	out := make(chan ScanResult, 1)
	go func() {
		defer close(out)
		entries, err := Scan(ctx, dir, log)
		out <- ScanResult{Entries: entries, Err: err}
	}()
	return out
}
