package ui

import (
	"log/slog"

	"github.com/1siamBot/rts-screens/engine/core"
	"github.com/1siamBot/rts-screens/engine/input"
	"github.com/hajimehoshi/ebiten/v2"
)

// Screen is one full-window page of the front end
type Screen interface {
	Name() string
	OnEnter()
	OnExit()
	Update(in *input.InputState) error
	Draw(dst *ebiten.Image)
}

// Resumer is implemented by screens that need to know when the screen
// above them was popped.
type Resumer interface {
	OnResume()
}

// Manager owns the screen stack. Only the top screen is updated and drawn.
type Manager struct {
	stack []Screen
	bus   *core.EventBus
	log   *slog.Logger
	quit  bool
}

func NewManager(bus *core.EventBus, log *slog.Logger) *Manager {
	if log == nil {
		log = slog.Default()
	}
	return &Manager{bus: bus, log: log}
}

// Current returns the top screen or nil
func (m *Manager) Current() Screen {
	if len(m.stack) == 0 {
		return nil
	}
	return m.stack[len(m.stack)-1]
}

// Depth is the number of stacked screens
func (m *Manager) Depth() int {
	return len(m.stack)
}

// Push puts s on top of the stack. The covered screen keeps its state.
func (m *Manager) Push(s Screen) {
	m.stack = append(m.stack, s)
	s.OnEnter()
	m.changed()
}

// Pop removes the top screen and resumes the one below it
func (m *Manager) Pop() {
	if len(m.stack) == 0 {
		return
	}
	top := m.stack[len(m.stack)-1]
	m.stack[len(m.stack)-1] = nil
	m.stack = m.stack[:len(m.stack)-1]
	top.OnExit()
	if r, ok := m.Current().(Resumer); ok {
		r.OnResume()
	}
	m.changed()
}

// Replace swaps the top screen for s without resuming the one below
func (m *Manager) Replace(s Screen) {
	if n := len(m.stack); n > 0 {
		top := m.stack[n-1]
		m.stack = m.stack[:n-1]
		top.OnExit()
	}
	m.Push(s)
}

// Reset clears the stack and shows s
func (m *Manager) Reset(s Screen) {
	for len(m.stack) > 0 {
		top := m.stack[len(m.stack)-1]
		m.stack = m.stack[:len(m.stack)-1]
		top.OnExit()
	}
	m.Push(s)
}

// Quit makes the next Update return ebiten.Termination
func (m *Manager) Quit() {
	m.quit = true
	if m.bus != nil {
		m.bus.Emit(core.Event{Type: core.EvtQuit})
	}
}

func (m *Manager) Update(in *input.InputState) error {
	if m.quit {
		return ebiten.Termination
	}
	top := m.Current()
	if top == nil {
		return ebiten.Termination
	}
	if err := top.Update(in); err != nil {
		m.log.Error("screen failed", "screen", top.Name(), "error", err)
		return err
	}
	return nil
}

func (m *Manager) Draw(dst *ebiten.Image) {
	if top := m.Current(); top != nil {
		top.Draw(dst)
	}
}

func (m *Manager) changed() {
	name := ""
	if top := m.Current(); top != nil {
		name = top.Name()
	}
	m.log.Debug("screen changed", "screen", name, "depth", len(m.stack))
	if m.bus != nil {
		m.bus.Emit(core.Event{Type: core.EvtScreenChanged, Payload: name})
	}
}
