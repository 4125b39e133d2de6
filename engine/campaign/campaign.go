// Package campaign loads single-player campaign definitions and the data
// bundle a campaign needs before its first mission.
package campaign

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"

	"github.com/1siamBot/rts-screens/engine/dialogue"
	"github.com/1siamBot/rts-screens/engine/traits"
)

var ErrUnknownCampaign = errors.New("unknown campaign")

// Definition describes a campaign as listed on the single player screen.
// Paths are relative to the data directory.
type Definition struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Background  string   `json:"background"`
	IntroVideo  string   `json:"intro_video,omitempty"`
	Allowance   int      `json:"allowance"`
	StartMoney  int      `json:"start_money"`
	Difficulty  string   `json:"difficulty,omitempty"`
	Dialogue    string   `json:"dialogue"`
	Traits      string   `json:"traits"`
	Levels      []string `json:"levels"`
}

// Validate checks the fields every campaign needs
func (d *Definition) Validate() error {
	var errs []error
	if d.ID == "" {
		errs = append(errs, errors.New("missing id"))
	}
	if d.Name == "" {
		errs = append(errs, errors.New("missing name"))
	}
	if d.Dialogue == "" {
		errs = append(errs, errors.New("missing dialogue"))
	}
	if d.Traits == "" {
		errs = append(errs, errors.New("missing traits"))
	}
	if len(d.Levels) == 0 {
		errs = append(errs, errors.New("no levels"))
	}
	if d.Allowance < 0 {
		errs = append(errs, fmt.Errorf("negative allowance %d", d.Allowance))
	}
	return errors.Join(errs...)
}

// LoadDefinitions reads every campaigns/*.json file under dataDir, sorted
// by name
func LoadDefinitions(dataDir string) ([]*Definition, error) {
	paths, err := filepath.Glob(filepath.Join(dataDir, "campaigns", "*.json"))
	if err != nil {
		return nil, err
	}
	defs := make([]*Definition, 0, len(paths))
	seen := make(map[string]string)
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		var def Definition
		if err := json.Unmarshal(data, &def); err != nil {
			return nil, fmt.Errorf("%s: %w", filepath.Base(path), err)
		}
		if err := def.Validate(); err != nil {
			return nil, fmt.Errorf("%s: %w", filepath.Base(path), err)
		}
		if other, dup := seen[def.ID]; dup {
			return nil, fmt.Errorf("%s: campaign id %q already used by %s", filepath.Base(path), def.ID, other)
		}
		seen[def.ID] = filepath.Base(path)
		defs = append(defs, &def)
	}
	sort.Slice(defs, func(i, j int) bool { return defs[i].Name < defs[j].Name })
	return defs, nil
}

// Find returns the definition with id
func Find(defs []*Definition, id string) (*Definition, error) {
	for _, d := range defs {
		if d.ID == id {
			return d, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrUnknownCampaign, id)
}

// Bundle is everything loaded for a campaign before play starts
type Bundle struct {
	Def     *Definition
	Person  *dialogue.Person
	Catalog *traits.Catalog
	Levels  []string // resolved level paths
}

// BundleLoader loads the data of a campaign
type BundleLoader interface {
	Load(ctx context.Context, def *Definition) (*Bundle, error)
}

// Loader reads bundles from the data directory
type Loader struct {
	DataDir string
	Log     *slog.Logger
}

func NewLoader(dataDir string, log *slog.Logger) *Loader {
	return &Loader{DataDir: dataDir, Log: log}
}

func (l *Loader) path(rel string) string {
	if filepath.IsAbs(rel) {
		return rel
	}
	return filepath.Join(l.DataDir, rel)
}

// Load reads the dialogue and trait files of def and checks that every
// level file is present
func (l *Loader) Load(ctx context.Context, def *Definition) (*Bundle, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	person, err := dialogue.LoadFile(l.path(def.Dialogue))
	if err != nil {
		return nil, fmt.Errorf("campaign %s: %w", def.ID, err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	catalog, err := traits.LoadCatalogFile(l.path(def.Traits))
	if err != nil {
		return nil, fmt.Errorf("campaign %s: %w", def.ID, err)
	}

	levels := make([]string, 0, len(def.Levels))
	for _, lvl := range def.Levels {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		p := l.path(lvl)
		if _, err := os.Stat(p); err != nil {
			return nil, fmt.Errorf("campaign %s: level %s: %w", def.ID, lvl, err)
		}
		levels = append(levels, p)
	}

	if l.Log != nil {
		l.Log.Info("campaign loaded", "campaign", def.ID, "levels", len(levels), "traits", catalog.Len(), "states", len(person.States))
	}
	return &Bundle{Def: def, Person: person, Catalog: catalog, Levels: levels}, nil
}
