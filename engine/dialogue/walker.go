package dialogue

// leaveText labels the implicit option offered by a state without speeches
const leaveText = "Leave"

// Transition is a chosen speech that has not been applied yet. The screen
// may play Video first and then hand the transition back to Apply.
type Transition struct {
	From   string
	Speech int
	Video  string
	To     string // empty when the conversation ends
}

// Ends reports whether applying the transition finishes the dialogue
func (t Transition) Ends() bool {
	return t.To == ""
}

// Walker steps through a Person's states. Exactly one state is current
// until the conversation ends.
type Walker struct {
	person  *Person
	current *State
	ended   bool
	leave   *Speech
}

// NewWalker opens the conversation at the start state
func NewWalker(p *Person) (*Walker, error) {
	start, ok := p.States[StartState]
	if !ok {
		return nil, ErrNoStartState
	}
	return &Walker{
		person:  p,
		current: start,
		leave:   &Speech{Text: leaveText},
	}, nil
}

// Person returns who is being talked to
func (w *Walker) Person() *Person {
	return w.person
}

// Current returns the current state, nil once ended
func (w *Walker) Current() *State {
	return w.current
}

// Ended reports whether the conversation is over
func (w *Walker) Ended() bool {
	return w.ended
}

// Options returns the speeches to offer for the current state. A state
// with no speeches offers a single option that ends the conversation.
func (w *Walker) Options() []*Speech {
	if w.ended {
		return nil
	}
	if len(w.current.Speeches) == 0 {
		return []*Speech{w.leave}
	}
	return w.current.Speeches
}

// Choose picks option i, marks it spoken and returns the transition it
// leads to. The current state does not change until Apply.
func (w *Walker) Choose(i int) (Transition, error) {
	if w.ended {
		return Transition{}, ErrEnded
	}
	opts := w.Options()
	if i < 0 || i >= len(opts) {
		return Transition{}, ErrBadChoice
	}
	sp := opts[i]
	sp.Spoken = true

	tr := Transition{From: w.current.Name, Speech: i, Video: sp.Video}
	if !sp.Ends() {
		if _, ok := w.person.States[sp.To]; ok {
			tr.To = sp.To
		}
	}
	return tr, nil
}

// Apply moves to the transition's target, or ends the conversation when
// the target does not resolve to a state
func (w *Walker) Apply(tr Transition) {
	if w.ended {
		return
	}
	next, ok := w.person.States[tr.To]
	if tr.To == "" || !ok {
		w.ended = true
		w.current = nil
		return
	}
	w.current = next
}

// Reset returns to the start state. Spoken marks are kept so revisits
// still show what was already asked.
func (w *Walker) Reset() {
	w.current = w.person.States[StartState]
	w.ended = false
}

// SpokenCount returns how many speeches were picked at least once
func (w *Walker) SpokenCount() int {
	n := 0
	for _, st := range w.person.States {
		for _, sp := range st.Speeches {
			if sp.Spoken {
				n++
			}
		}
	}
	return n
}

// Spoken lists picked speeches as state name to speech indexes, for
// persisting conversation progress
func (w *Walker) Spoken() map[string][]int {
	out := make(map[string][]int)
	for _, name := range w.person.StateNames() {
		for i, sp := range w.person.States[name].Speeches {
			if sp.Spoken {
				out[name] = append(out[name], i)
			}
		}
	}
	return out
}

// MarkSpoken restores progress produced by Spoken. Unknown entries are
// ignored.
func (w *Walker) MarkSpoken(spoken map[string][]int) {
	for name, idx := range spoken {
		st, ok := w.person.States[name]
		if !ok {
			continue
		}
		for _, i := range idx {
			if i >= 0 && i < len(st.Speeches) {
				st.Speeches[i].Spoken = true
			}
		}
	}
}
