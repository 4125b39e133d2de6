// process_assets bakes artist backgrounds down to the game resolution so
// the game does not resample them at load time. Every PNG or JPEG under
// -in is scaled to -w x -h and written as PNG under -out with the same
// relative path.
package main

import (
	"flag"
	"fmt"
	"image/png"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/1siamBot/rts-screens/engine/ui"
)

func main() {
	in := flag.String("in", "assets/src", "directory with source images")
	out := flag.String("out", "assets", "directory to write scaled images into")
	w := flag.Int("w", 1280, "target width")
	h := flag.Int("h", 720, "target height")
	flag.Parse()

	n, err := process(*in, *out, *w, *h)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Processed %d images\n", n)
}

func process(in, out string, w, h int) (int, error) {
	count := 0
	err := filepath.WalkDir(in, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		ext := strings.ToLower(filepath.Ext(path))
		if ext != ".png" && ext != ".jpg" && ext != ".jpeg" {
			return nil
		}
		rel, err := filepath.Rel(in, path)
		if err != nil {
			return err
		}
		img, err := ui.LoadScaled(path, w, h)
		if err != nil {
			return err
		}
		dst := filepath.Join(out, strings.TrimSuffix(rel, filepath.Ext(rel))+".png")
		if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
			return err
		}
		f, err := os.Create(dst)
		if err != nil {
			return err
		}
		if err := png.Encode(f, img); err != nil {
			f.Close()
			return fmt.Errorf("%s: %w", dst, err)
		}
		if err := f.Close(); err != nil {
			return err
		}
		fmt.Printf("  → %s\n", dst)
		count++
		return nil
	})
	return count, err
}
