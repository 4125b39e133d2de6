package main

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/1siamBot/rts-screens/engine/dialogue"
)

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("39")).
			Bold(true)

	stateStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	optionStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("255"))

	spokenStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("243"))

	cursorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214")).
			Bold(true)

	videoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("86")).
			Italic(true)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("62")).
			Padding(1, 2)
)

// maxHistory is how many past lines stay on screen
const maxHistory = 12

// model is the bubbletea model walking one conversation
type model struct {
	walker  *dialogue.Walker
	cursor  int
	history []string
	err     error
}

func newModel(p *dialogue.Person) (model, error) {
	w, err := dialogue.NewWalker(p)
	if err != nil {
		return model{}, err
	}
	return model{walker: w}, nil
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch s := key.String(); s {
	case "ctrl+c", "q", "esc":
		return m, tea.Quit
	case "r":
		m.walker.Reset()
		m.cursor = 0
		m.history = append(m.history, "-- restarted --")
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.walker.Options())-1 {
			m.cursor++
		}
	case "enter", " ":
		return m.choose(m.cursor)
	default:
		if len(s) == 1 && s[0] >= '1' && s[0] <= '9' {
			return m.choose(int(s[0] - '1'))
		}
	}
	return m, nil
}

func (m model) choose(i int) (tea.Model, tea.Cmd) {
	if m.walker.Ended() {
		return m, nil
	}
	opts := m.walker.Options()
	tr, err := m.walker.Choose(i)
	if err != nil {
		m.err = err
		return m, nil
	}
	m.err = nil
	m.record("> " + opts[i].Text)
	if tr.Video != "" {
		m.record(videoStyle.Render(fmt.Sprintf("[video: %s]", tr.Video)))
	}
	m.walker.Apply(tr)
	m.cursor = 0
	return m, nil
}

func (m *model) record(line string) {
	m.history = append(m.history, line)
	if len(m.history) > maxHistory {
		m.history = m.history[len(m.history)-maxHistory:]
	}
}

func (m model) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(m.walker.Person().Name))
	b.WriteString("\n\n")
	for _, line := range m.history {
		b.WriteString(line)
		b.WriteString("\n")
	}
	if len(m.history) > 0 {
		b.WriteString("\n")
	}

	if m.walker.Ended() {
		b.WriteString(stateStyle.Render("The conversation is over."))
		b.WriteString("\n\n")
		b.WriteString(helpStyle.Render("r restart • q quit"))
		return panelStyle.Render(b.String())
	}

	st := m.walker.Current()
	b.WriteString(stateStyle.Render(fmt.Sprintf("[%s] %s", st.Name, st.Image)))
	b.WriteString("\n")
	for i, sp := range m.walker.Options() {
		style := optionStyle
		if sp.Spoken {
			style = spokenStyle
		}
		prefix := "  "
		if i == m.cursor {
			prefix = cursorStyle.Render("> ")
		}
		b.WriteString(prefix + style.Render(fmt.Sprintf("%d. %s", i+1, sp.Text)) + "\n")
	}
	if m.err != nil {
		b.WriteString("\n" + errorStyle.Render(m.err.Error()) + "\n")
	}
	b.WriteString("\n")
	b.WriteString(helpStyle.Render("↑/↓ move • enter or 1-9 pick • r restart • q quit"))
	return panelStyle.Render(b.String())
}
