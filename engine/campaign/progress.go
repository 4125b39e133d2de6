package campaign

import (
	"cmp"
	"encoding/xml"
	"errors"
	"fmt"
	"slices"
)

// Progress is the campaign state stored in the world section of a save
type Progress struct {
	XMLName xml.Name      `xml:"campaign"`
	ID      string        `xml:"id,attr"`
	Traits  []string      `xml:"trait"`
	Spoken  []SpokenState `xml:"spoken"`
}

// SpokenState lists the speeches already picked in one dialogue state
type SpokenState struct {
	State    string `xml:"state,attr"`
	Speeches []int  `xml:"speech"`
}

// NewProgress captures a running campaign. States come out sorted so
// the same progress always encodes the same way.
func NewProgress(id string, traits []string, spoken map[string][]int) Progress {
	p := Progress{ID: id, Traits: slices.Clone(traits)}
	for state, idx := range spoken {
		if len(idx) == 0 {
			continue
		}
		sorted := slices.Clone(idx)
		slices.Sort(sorted)
		p.Spoken = append(p.Spoken, SpokenState{State: state, Speeches: sorted})
	}
	slices.SortFunc(p.Spoken, func(a, b SpokenState) int {
		return cmp.Compare(a.State, b.State)
	})
	return p
}

// Marshal encodes p for the save's world payload
func (p Progress) Marshal() ([]byte, error) {
	return xml.Marshal(p)
}

// SpokenMap is the inverse of the spoken argument to NewProgress
func (p Progress) SpokenMap() map[string][]int {
	out := make(map[string][]int, len(p.Spoken))
	for _, s := range p.Spoken {
		out[s.State] = append(out[s.State], s.Speeches...)
	}
	return out
}

// ParseProgress reads progress from a save's world payload
func ParseProgress(world []byte) (Progress, error) {
	var p Progress
	if len(world) == 0 {
		return p, errors.New("save has no campaign progress")
	}
	if err := xml.Unmarshal(world, &p); err != nil {
		return p, fmt.Errorf("campaign progress: %w", err)
	}
	if p.ID == "" {
		return p, errors.New("campaign progress: missing campaign id")
	}
	return p, nil
}
