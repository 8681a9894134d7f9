package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

// dashboardEntry pairs a menu label with its target screen. The logout
// entry has no target and is handled specially.
type dashboardEntry struct {
	label  string
	screen Screen
	logout bool
}

// dashboardEntries lists the signed-in menu in display order
var dashboardEntries = []dashboardEntry{
	{label: "Devices", screen: ScreenDevices},
	{label: "Automation Rules", screen: ScreenRules},
	{label: "Smart Door", screen: ScreenDoor},
	{label: "Camera", screen: ScreenCamera},
	{label: "TV", screen: ScreenTV},
	{label: "Weather Adjustment", screen: ScreenWeather},
	{label: "Log Out", logout: true},
}

// DashboardModel represents the signed-in landing screen
type DashboardModel struct {
	Cursor int

	// UI state
	Width  int
	Height int
}

// NewDashboardModel creates a new dashboard model
func NewDashboardModel() DashboardModel {
	return DashboardModel{}
}

// Init initializes the dashboard model
func (m DashboardModel) Init() tea.Cmd {
	return nil
}

// Update handles messages and updates the model
func (m DashboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
			}

		case "down", "j":
			if m.Cursor < len(dashboardEntries)-1 {
				m.Cursor++
			}

		case "enter", " ":
			entry := dashboardEntries[m.Cursor]
			if entry.logout {
				return m, func() tea.Msg { return logoutMsg{} }
			}
			target := entry.screen
			return m, func() tea.Msg { return screenTransitionMsg{screen: target} }

		case "q", "esc":
			return m, tea.Quit
		}
	}

	return m, nil
}

// View renders the dashboard menu
func (m DashboardModel) View() string {
	var b strings.Builder

	b.WriteString(RenderTitle("Smart Home Dashboard"))
	b.WriteString("\n")
	b.WriteString(RenderSubtitle("  Select a category to control"))
	b.WriteString("\n\n")

	for i, entry := range dashboardEntries {
		b.WriteString(RenderMenuItem(entry.label, i == m.Cursor))
		b.WriteString("\n")
	}

	helpText := "↑/k up • ↓/j down • enter: select • q: quit"
	return RenderApplicationContainer(b.String(), helpText, m.Width, m.Height)
}
