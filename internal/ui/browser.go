package ui

import (
	"fmt"
	"strings"

	"charm.land/bubbles/v2/list"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/velotools/gearrange-cli/internal/session"
)

// configItem represents one session configuration in the browser list.
type configItem struct {
	entry *session.Entry
}

func (i configItem) Title() string {
	return i.entry.Name
}

func (i configItem) Description() string {
	d := i.entry.Drivetrain
	c := i.entry.Cadence
	return Dim.Render(fmt.Sprintf("chainring [%s] · cassette [%s] · wheel %.0f mm · %.0f‒%.0f rpm",
		d.Chainring().String(),
		d.Cassette().String(),
		d.Wheel().DiameterMM(),
		c.Lower(), c.Upper(),
	))
}

func (i configItem) FilterValue() string { return i.entry.Name }

// browserModel is the Bubble Tea model for the session browser.
type browserModel struct {
	list     list.Model
	registry *session.Registry

	plotView string
	quitting bool
	width    int
	height   int
}

// NewSessionBrowser creates the interactive browser over the session's
// configured drivetrains.
func NewSessionBrowser(registry *session.Registry) *browserModel {
	delegate := list.NewDefaultDelegate()
	delegate.SetHeight(3)
	delegate.SetSpacing(0)

	delegate.Styles.SelectedTitle = delegate.Styles.SelectedTitle.
		Foreground(ColorHighlight).
		BorderForeground(ColorPrimary)
	delegate.Styles.SelectedDesc = delegate.Styles.SelectedDesc.
		Foreground(ColorTextDim).
		BorderForeground(ColorPrimary)

	l := list.New(entryItems(registry), delegate, 0, 0)
	l.Title = "Your current Drivetrains"
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(false)
	l.SetShowHelp(false)
	l.Styles.Title = lipgloss.NewStyle().
		Foreground(ColorPrimary).
		Bold(true).
		Padding(0, 0, 1, 0)

	return &browserModel{
		list:     l,
		registry: registry,
		width:    80,
		height:   24,
	}
}

// Init initializes the model
func (m *browserModel) Init() tea.Cmd {
	return nil
}

// Update handles messages
func (m *browserModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.plotView != "" {
			// Any of the close keys returns to the list.
			switch msg.String() {
			case "esc", "backspace", "enter", "q":
				m.plotView = ""
				return m, nil
			case "ctrl+c":
				m.quitting = true
				return m, tea.Quit
			}
			return m, nil
		}

		switch msg.String() {
		case "ctrl+c", "esc", "q":
			m.quitting = true
			return m, tea.Quit
		case "enter":
			if i, ok := m.list.SelectedItem().(configItem); ok {
				e := i.entry
				m.plotView = RenderConfigDetail(e.Name, e.Drivetrain, e.Cadence, m.plotWidth())
			}
			return m, nil
		case "d":
			if i, ok := m.list.SelectedItem().(configItem); ok {
				m.registry.Remove(i.entry.Name)
				m.list.SetItems(entryItems(m.registry))
			}
			return m, nil
		default:
			var cmd tea.Cmd
			m.list, cmd = m.list.Update(msg)
			return m, cmd
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.list.SetSize(msg.Width-4, msg.Height-8)
		return m, nil
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

// View renders the model
func (m *browserModel) View() tea.View {
	if m.quitting {
		return tea.NewView("")
	}

	var b strings.Builder

	if m.plotView != "" {
		b.WriteString(m.plotView)
		b.WriteString("\n")
		b.WriteString(Muted.Render("esc: back · ctrl+c: quit"))
		return tea.NewView(b.String())
	}

	b.WriteString(m.list.View())
	b.WriteString("\n\n")
	b.WriteString(Muted.Render("enter: plot · d: delete · ↑/↓: navigate · q: quit"))
	return tea.NewView(b.String())
}

func (m *browserModel) plotWidth() int {
	w := m.width - 30
	if w < 20 {
		w = 60
	}
	return w
}

// RunSessionBrowser runs the browser until the user quits.
func RunSessionBrowser(registry *session.Registry) error {
	p := tea.NewProgram(NewSessionBrowser(registry))
	_, err := p.Run()
	return err
}

func entryItems(registry *session.Registry) []list.Item {
	entries := registry.List()
	items := make([]list.Item, len(entries))
	for i, e := range entries {
		items[i] = configItem{entry: e}
	}
	return items
}
