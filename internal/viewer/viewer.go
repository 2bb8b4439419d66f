// Package viewer is a scroll-back pager over already formatted log lines.
package viewer

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var (
	statusStyle     = lipgloss.NewStyle().Padding(0, 1).Reverse(true)
	statusLineStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	lineNumberStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

type model struct {
	viewport viewport.Model
	help     help.Model
	keys     KeyMap

	title  string
	lines  int
	width  int
	height int
	ready  bool
}

func newModel(title string, lines []string) model {
	keys := newKeyMap()

	numbered := make([]string, len(lines))
	digits := len(fmt.Sprint(len(lines)))
	for i, l := range lines {
		numbered[i] = lineNumberStyle.Render(fmt.Sprintf("%*d", digits, i+1)) + " " + l
	}

	vp := viewport.New(0, 0)
	vp.KeyMap = keys.KeyMap
	vp.SetContent(strings.Join(numbered, "\n"))

	return model{
		viewport: vp,
		help:     help.New(),
		keys:     keys,
		title:    title,
		lines:    len(lines),
	}
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
			m.resize()
			return m, nil
		case key.Matches(msg, m.keys.Top):
			m.viewport.GotoTop()
			return m, nil
		case key.Matches(msg, m.keys.Bottom):
			m.viewport.GotoBottom()
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.ready = true
		m.resize()
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// resize fits the viewport into the window above the footer.
func (m *model) resize() {
	m.viewport.Width = m.width
	m.help.Width = m.width
	m.viewport.Height = max(0, m.height-lipgloss.Height(m.footerView()))
}

func (m model) View() string {
	if !m.ready {
		return "loading…"
	}
	return lipgloss.JoinVertical(lipgloss.Left, m.viewport.View(), m.footerView())
}

// Position returns the 1-based number of the top visible line and the total.
func (m model) Position() (int, int) {
	if m.lines == 0 {
		return 0, 0
	}
	return m.viewport.YOffset + 1, m.lines
}

func (m model) footerView() string {
	cur, total := m.Position()
	status := statusStyle.Render(fmt.Sprintf("%s  %d/%d  %3.f%%", m.title, cur, total, m.viewport.ScrollPercent()*100))

	line := statusLineStyle.Render(strings.Repeat("─", max(0, m.width-lipgloss.Width(status))))
	bar := lipgloss.JoinHorizontal(lipgloss.Center, status, line)

	return lipgloss.JoinVertical(lipgloss.Left, bar, m.help.View(m.keys))
}

// Run shows lines in a full-screen pager until the user quits or ctx is done.
func Run(ctx context.Context, title string, lines []string) error {
	p := tea.NewProgram(newModel(title, lines), tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && errors.Is(context.Cause(ctx), context.Canceled) {
			return nil
		}
		return err
	}
	return nil
}
