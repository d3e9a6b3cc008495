package viz

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/san-kum/motionlab/internal/sim"
)

// Factory builds a fresh controller for the named demo.
type Factory func(name string) (*sim.Controller, error)

type MenuItem struct {
	Name        string
	Description string
}

const (
	stateMenu = iota
	stateLive
)

// Menu is the root program: a demo picker that opens a LiveModel and returns to
// the list when that model is closed with esc.
type Menu struct {
	state  int
	cursor int
	items  []MenuItem
	build  Factory
	fps    int
	live   LiveModel
	err    error
}

func NewMenu(items []MenuItem, build Factory, fps int) Menu {
	return Menu{items: items, build: build, fps: fps}
}

func (m Menu) Init() tea.Cmd { return nil }

func (m Menu) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.state == stateLive {
		if _, ok := msg.(BackMsg); ok {
			m.state = stateMenu
			return m, nil
		}
		next, cmd := m.live.Update(msg)
		m.live = next.(LiveModel)
		return m, cmd
	}

	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch key.String() {
	case "q", "ctrl+c", "esc":
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.items)-1 {
			m.cursor++
		}
	case "enter", " ":
		return m.open()
	}
	return m, nil
}

func (m Menu) open() (Menu, tea.Cmd) {
	if len(m.items) == 0 {
		return m, nil
	}
	ctrl, err := m.build(m.items[m.cursor].Name)
	if err != nil {
		m.err = err
		return m, nil
	}
	m.err = nil
	m.live = NewLiveModel(ctrl, m.fps)
	m.state = stateLive
	return m, m.live.Init()
}

// Selected is the demo under the cursor.
func (m Menu) Selected() string {
	if len(m.items) == 0 {
		return ""
	}
	return m.items[m.cursor].Name
}

func (m Menu) View() string {
	if m.state == stateLive {
		return m.live.View()
	}

	t := CurrentTheme
	title := lipgloss.NewStyle().Foreground(t.Primary).Bold(true)
	muted := lipgloss.NewStyle().Foreground(t.Muted)
	pick := lipgloss.NewStyle().Foreground(t.Accent).Bold(true)
	text := lipgloss.NewStyle().Foreground(t.Text)

	var b strings.Builder
	b.WriteString("\n\n    " + title.Render("MOTIONLAB") + "\n    " + muted.Render("kinematics demonstrations") + "\n    " + muted.Render("─────────────────────────") + "\n\n")
	for i, item := range m.items {
		if i == m.cursor {
			fmt.Fprintf(&b, "    %s %s  %s\n", pick.Render("▸"), text.Bold(true).Render(fmt.Sprintf("%-14s", item.Name)), pick.Render(item.Description))
		} else {
			fmt.Fprintf(&b, "      %s  %s\n", muted.Render(fmt.Sprintf("%-14s", item.Name)), muted.Render(item.Description))
		}
	}
	if m.err != nil {
		b.WriteString("\n    " + lipgloss.NewStyle().Foreground(t.Error).Render(m.err.Error()) + "\n")
	}
	b.WriteString("\n    " + pick.Render("j/k") + muted.Render(" navigate  ") + pick.Render("enter") + muted.Render(" open  ") + pick.Render("q") + muted.Render(" quit") + "\n")
	return b.String()
}

func RunMenu(items []MenuItem, build Factory, fps int) error {
	_, err := tea.NewProgram(NewMenu(items, build, fps), tea.WithAltScreen()).Run()
	return err
}

func RunLive(ctrl *sim.Controller, fps int) error {
	_, err := tea.NewProgram(NewLiveModel(ctrl, fps), tea.WithAltScreen()).Run()
	return err
}
