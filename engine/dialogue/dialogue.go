// Package dialogue holds the branching conversations played in the bar
// between missions and the walker that steps through them.
package dialogue

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/agnivade/levenshtein"
)

// StartState is the state every conversation opens in
const StartState = "start"

// ExitState may be used as a link target to end the conversation explicitly
const ExitState = "exit"

var (
	ErrNoStartState = errors.New("dialogue has no start state")
	ErrUnknownState = errors.New("unknown dialogue state")
	ErrEnded        = errors.New("dialogue has ended")
	ErrBadChoice    = errors.New("no such speech option")
)

// Speech is one line the player can pick
type Speech struct {
	Text   string `json:"text"`
	To     string `json:"to"`
	Video  string `json:"video,omitempty"`
	Spoken bool   `json:"-"`
}

// Ends reports whether picking the speech leaves the conversation
func (s *Speech) Ends() bool {
	return s.To == "" || s.To == ExitState
}

// State is a node of the conversation: what the person looks like and
// what the player may answer
type State struct {
	Name     string    `json:"-"`
	Image    string    `json:"image"`
	Speeches []*Speech `json:"speeches"`
}

// Person is someone the player can talk to
type Person struct {
	Name     string            `json:"name"`
	Portrait string            `json:"portrait,omitempty"`
	States   map[string]*State `json:"states"`
}

// Load decodes and validates a person from JSON
func Load(r io.Reader) (*Person, error) {
	var p Person
	if err := json.NewDecoder(r).Decode(&p); err != nil {
		return nil, fmt.Errorf("decode dialogue: %w", err)
	}
	for name, st := range p.States {
		if st == nil {
			st = &State{}
			p.States[name] = st
		}
		st.Name = name
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return &p, nil
}

// LoadFile loads a person from a JSON file
func LoadFile(path string) (*Person, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	p, err := Load(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return p, nil
}

// StateNames returns the state names in sorted order
func (p *Person) StateNames() []string {
	names := make([]string, 0, len(p.States))
	for name := range p.States {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Validate checks that the start state exists and that every link points
// to a state or ends the conversation
func (p *Person) Validate() error {
	var errs []error
	if _, ok := p.States[StartState]; !ok {
		errs = append(errs, ErrNoStartState)
	}
	names := p.StateNames()
	for _, name := range names {
		for i, sp := range p.States[name].Speeches {
			if sp == nil {
				errs = append(errs, fmt.Errorf("state %q speech %d: empty entry", name, i))
				continue
			}
			if sp.Ends() {
				continue
			}
			if _, ok := p.States[sp.To]; ok {
				continue
			}
			err := fmt.Errorf("%w: state %q speech %d links to %q", ErrUnknownState, name, i, sp.To)
			if hint := closest(sp.To, names); hint != "" {
				err = fmt.Errorf("%w (did you mean %q?)", err, hint)
			}
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// closest returns the candidate nearest to name when it is near enough to
// be a likely typo
func closest(name string, candidates []string) string {
	limit := len(name) / 3
	if limit < 2 {
		limit = 2
	}
	best, bestDist := "", limit+1
	for _, c := range candidates {
		d := levenshtein.ComputeDistance(name, c)
		if d < bestDist {
			best, bestDist = c, d
		}
	}
	return best
}

// Unreachable lists states that no chain of links from the start state
// leads to, sorted by name
func (p *Person) Unreachable() []string {
	seen := map[string]bool{}
	queue := []string{StartState}
	for len(queue) > 0 {
		name := queue[0]
		queue = queue[1:]
		st, ok := p.States[name]
		if !ok || seen[name] {
			continue
		}
		seen[name] = true
		for _, sp := range st.Speeches {
			if sp != nil && !sp.Ends() {
				queue = append(queue, sp.To)
			}
		}
	}
	var out []string
	for _, name := range p.StateNames() {
		if !seen[name] {
			out = append(out, name)
		}
	}
	return out
}
