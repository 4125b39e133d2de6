// Command validate checks every campaign under a data directory: the
// definition, its dialogue links, its trait catalog and its level files.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"

	"github.com/1siamBot/rts-screens/engine/campaign"
	"github.com/1siamBot/rts-screens/engine/config"
	"github.com/1siamBot/rts-screens/engine/logger"
	"github.com/1siamBot/rts-screens/engine/traits"
)

var (
	okStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true)
	failStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
	warnStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
)

func main() {
	dataDir := "data"
	if cfg, err := config.Load(); err == nil {
		dataDir = cfg.DataDir
	}
	flag.StringVar(&dataDir, "data", dataDir, "campaign data directory")
	flag.Parse()
	os.Exit(run(context.Background(), dataDir, os.Stdout))
}

// run validates dataDir, reports to w and returns the exit code
func run(ctx context.Context, dataDir string, w io.Writer) int {
	defs, err := campaign.LoadDefinitions(dataDir)
	if err != nil {
		fmt.Fprintf(w, "%s %v\n", failStyle.Render("FAIL"), err)
		return 1
	}
	if len(defs) == 0 {
		fmt.Fprintf(w, "%s no campaigns under %s\n", failStyle.Render("FAIL"), dataDir)
		return 1
	}

	loader := campaign.NewLoader(dataDir, logger.Discard())
	failed := 0
	for _, def := range defs {
		problems, warnings := check(ctx, loader, def)
		if len(problems) > 0 {
			failed++
			fmt.Fprintf(w, "%s %s\n", failStyle.Render("FAIL"), def.ID)
		} else {
			fmt.Fprintf(w, "%s %s\n", okStyle.Render("ok  "), def.ID)
		}
		for _, p := range problems {
			fmt.Fprintf(w, "     %s\n", p)
		}
		for _, warn := range warnings {
			fmt.Fprintf(w, "     %s\n", warnStyle.Render(warn))
		}
	}
	fmt.Fprintf(w, "%d campaigns, %d failed\n", len(defs), failed)
	if failed > 0 {
		return 1
	}
	return 0
}

func check(ctx context.Context, loader *campaign.Loader, def *campaign.Definition) (problems, warnings []string) {
	b, err := loader.Load(ctx, def)
	if err != nil {
		return []string{err.Error()}, nil
	}
	for _, t := range b.Catalog.Traits {
		if _, err := traits.Describe(t); err != nil {
			problems = append(problems, err.Error())
		}
	}
	if _, err := traits.NewSelection(b.Catalog, def.Allowance); err != nil {
		problems = append(problems, fmt.Sprintf("allowance %d: %v", def.Allowance, err))
	}
	for _, name := range b.Person.Unreachable() {
		warnings = append(warnings, fmt.Sprintf("dialogue state %q is never reached", name))
	}
	return problems, warnings
}
