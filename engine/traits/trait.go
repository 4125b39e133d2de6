// Package traits implements the point-buy perks picked before a campaign.
package traits

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"text/template"
)

var (
	ErrUnknownTrait   = errors.New("unknown trait")
	ErrBudgetViolated = errors.New("trait selection exceeds point budget")
)

// Trait is a selectable perk. Positive costs spend points, negative costs
// (drawbacks) give them back.
type Trait struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	Kind          string   `json:"kind"`
	Cost          int      `json:"cost"`
	ExcludesIDs   []string `json:"excludes_ids,omitempty"`
	ExcludesKinds []string `json:"excludes_kinds,omitempty"`
	Description   string   `json:"description"`
}

// Excludes reports whether selecting t rules out other
func (t *Trait) Excludes(other *Trait) bool {
	if t.ID == other.ID {
		return false
	}
	for _, id := range t.ExcludesIDs {
		if id == other.ID {
			return true
		}
	}
	for _, kind := range t.ExcludesKinds {
		if kind == other.Kind {
			return true
		}
	}
	return false
}

// Conflicts is the symmetric form of Excludes
func (t *Trait) Conflicts(other *Trait) bool {
	return t.Excludes(other) || other.Excludes(t)
}

type describeData struct {
	Name    string
	Kind    string
	Cost    int
	AbsCost int
}

// Describe renders the description template of t. Templates may use
// {{.Name}}, {{.Kind}}, {{.Cost}} and {{.AbsCost}}.
func Describe(t *Trait) (string, error) {
	if !strings.Contains(t.Description, "{{") {
		return t.Description, nil
	}
	tmpl, err := template.New(t.ID).Option("missingkey=error").Parse(t.Description)
	if err != nil {
		return "", fmt.Errorf("trait %s description: %w", t.ID, err)
	}
	abs := t.Cost
	if abs < 0 {
		abs = -abs
	}
	var sb strings.Builder
	err = tmpl.Execute(&sb, describeData{Name: t.Name, Kind: t.Kind, Cost: t.Cost, AbsCost: abs})
	if err != nil {
		return "", fmt.Errorf("trait %s description: %w", t.ID, err)
	}
	return sb.String(), nil
}

// Catalog is the ordered list of every trait on offer
type Catalog struct {
	Traits []*Trait
	byID   map[string]*Trait
}

type catalogFile struct {
	Traits []*Trait `json:"traits"`
}

// NewCatalog indexes traits and checks their references
func NewCatalog(traits []*Trait) (*Catalog, error) {
	c := &Catalog{Traits: traits, byID: make(map[string]*Trait, len(traits))}
	var errs []error
	for i, t := range traits {
		if t == nil || t.ID == "" {
			errs = append(errs, fmt.Errorf("trait %d: missing id", i))
			continue
		}
		if _, dup := c.byID[t.ID]; dup {
			errs = append(errs, fmt.Errorf("trait %s: duplicate id", t.ID))
			continue
		}
		c.byID[t.ID] = t
	}
	for _, t := range c.byID {
		for _, id := range t.ExcludesIDs {
			if _, ok := c.byID[id]; !ok {
				errs = append(errs, fmt.Errorf("trait %s excludes %q: %w", t.ID, id, ErrUnknownTrait))
			}
		}
		if _, err := Describe(t); err != nil {
			errs = append(errs, err)
		}
	}
	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	return c, nil
}

// LoadCatalog decodes a catalog from JSON
func LoadCatalog(r io.Reader) (*Catalog, error) {
	var f catalogFile
	if err := json.NewDecoder(r).Decode(&f); err != nil {
		return nil, fmt.Errorf("decode traits: %w", err)
	}
	return NewCatalog(f.Traits)
}

// LoadCatalogFile loads a catalog from a JSON file
func LoadCatalogFile(path string) (*Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	c, err := LoadCatalog(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

// Get returns the trait with id, or nil
func (c *Catalog) Get(id string) *Trait {
	return c.byID[id]
}

// Len returns the number of traits
func (c *Catalog) Len() int {
	return len(c.Traits)
}
