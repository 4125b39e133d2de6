// generate_ui paints placeholder art for every image the campaign data
// refers to: campaign backgrounds, bar state pictures and portraits.
// Existing files are left alone unless -force is given.
package main

import (
	"flag"
	"fmt"
	"os"
)

func main() {
	dataDir := flag.String("data", "data", "campaign data directory")
	outDir := flag.String("out", "assets", "assets directory to write into")
	width := flag.Int("w", 1280, "background width")
	height := flag.Int("h", 720, "background height")
	force := flag.Bool("force", false, "overwrite existing images")
	flag.Parse()

	refs, err := collectRefs(*dataDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Generating %d placeholder images...\n", len(refs))
	written, err := generate(refs, *outDir, *width, *height, *force)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %v\n", err)
		os.Exit(1)
	}
	for _, p := range written {
		fmt.Printf("  → %s\n", p)
	}
	fmt.Printf("Done: %d written, %d kept\n", len(written), len(refs)-len(written))
}
