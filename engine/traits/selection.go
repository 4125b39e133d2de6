package traits

import (
	"fmt"
	"slices"
)

// Selection is the player's current pick from a catalog, kept consistent
// with the point allowance and the exclusion rules after every change
type Selection struct {
	catalog   *Catalog
	allowance int

	selected  map[string]bool
	order     []string // selected ids, least recently toggled first
	enabled   map[string]bool
	reasons   map[string]string
	remaining int
}

// NewSelection starts a selection with the given allowance. Preselected
// ids are applied in order, as if the player had toggled them.
func NewSelection(c *Catalog, allowance int, preselected ...string) (*Selection, error) {
	s := &Selection{
		catalog:   c,
		allowance: allowance,
		selected:  make(map[string]bool),
		enabled:   make(map[string]bool),
		reasons:   make(map[string]string),
	}
	for _, id := range preselected {
		if c.Get(id) == nil {
			return nil, fmt.Errorf("%w: %s", ErrUnknownTrait, id)
		}
		if !s.selected[id] {
			s.selected[id] = true
			s.order = append(s.order, id)
		}
	}
	if err := s.Resolve(); err != nil {
		return nil, err
	}
	return s, nil
}

// Toggle flips a trait and re-resolves the selection. Disabled traits
// cannot be switched on; the returned bool is false in that case.
func (s *Selection) Toggle(id string) (bool, error) {
	if s.catalog.Get(id) == nil {
		return false, fmt.Errorf("%w: %s", ErrUnknownTrait, id)
	}
	if s.selected[id] {
		s.deselect(id)
	} else {
		if !s.enabled[id] {
			return false, nil
		}
		s.selected[id] = true
		s.order = append(s.order, id)
	}
	return true, s.Resolve()
}

func (s *Selection) deselect(id string) {
	delete(s.selected, id)
	s.order = slices.DeleteFunc(s.order, func(o string) bool { return o == id })
}

// Resolve drops conflicting and unaffordable traits and recomputes which
// of the remaining ones can still be picked. Traits selected earlier win
// exclusion conflicts; when points run short the most recently toggled
// trait with a positive cost is dropped first.
func (s *Selection) Resolve() error {
	for {
		kept := s.applyExclusions()
		s.remaining = s.allowance - s.Total()
		if s.remaining >= 0 {
			s.refreshEnabled(kept)
			return nil
		}
		victim := ""
		for i := len(s.order) - 1; i >= 0; i-- {
			if s.catalog.Get(s.order[i]).Cost > 0 {
				victim = s.order[i]
				break
			}
		}
		if victim == "" {
			return fmt.Errorf("%w: %d points over with nothing left to drop", ErrBudgetViolated, -s.remaining)
		}
		s.deselect(victim)
	}
}

// applyExclusions walks the selection oldest first and drops any trait
// that conflicts with one already kept
func (s *Selection) applyExclusions() []*Trait {
	kept := make([]*Trait, 0, len(s.order))
	var dropped []string
	for _, id := range s.order {
		t := s.catalog.Get(id)
		if conflictsWith(t, kept) != nil {
			dropped = append(dropped, id)
			continue
		}
		kept = append(kept, t)
	}
	for _, id := range dropped {
		s.deselect(id)
	}
	return kept
}

func conflictsWith(t *Trait, kept []*Trait) *Trait {
	for _, k := range kept {
		if k.Conflicts(t) {
			return k
		}
	}
	return nil
}

func (s *Selection) refreshEnabled(kept []*Trait) {
	clear(s.enabled)
	clear(s.reasons)
	for _, t := range s.catalog.Traits {
		if s.selected[t.ID] {
			s.enabled[t.ID] = true
			continue
		}
		if by := conflictsWith(t, kept); by != nil {
			s.reasons[t.ID] = "excluded by " + by.Name
			continue
		}
		if t.Cost > s.remaining {
			s.reasons[t.ID] = fmt.Sprintf("needs %d points, %d left", t.Cost, s.remaining)
			continue
		}
		s.enabled[t.ID] = true
	}
}

// Selected reports whether id is picked
func (s *Selection) Selected(id string) bool {
	return s.selected[id]
}

// Enabled reports whether id can be toggled
func (s *Selection) Enabled(id string) bool {
	return s.enabled[id]
}

// Reason explains why id is disabled, empty when it is not
func (s *Selection) Reason(id string) string {
	return s.reasons[id]
}

// Remaining returns the points left to spend
func (s *Selection) Remaining() int {
	return s.remaining
}

// Allowance returns the starting points
func (s *Selection) Allowance() int {
	return s.allowance
}

// Total returns the summed cost of the picked traits
func (s *Selection) Total() int {
	total := 0
	for id := range s.selected {
		total += s.catalog.Get(id).Cost
	}
	return total
}

// SelectedIDs returns the picked ids in catalog order
func (s *Selection) SelectedIDs() []string {
	ids := make([]string, 0, len(s.selected))
	for _, t := range s.catalog.Traits {
		if s.selected[t.ID] {
			ids = append(ids, t.ID)
		}
	}
	return ids
}

// Catalog returns the catalog the selection draws from
func (s *Selection) Catalog() *Catalog {
	return s.catalog
}
