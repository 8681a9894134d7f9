package tui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/smarthome-tech/homectl/internal/api"
)

// doorResultMsg carries the outcome of a door control request
type doorResultMsg struct {
	message string
	err     error
}

// doorChoice pairs a menu label with the action it dispatches
type doorChoice struct {
	Label  string
	Action string
}

var doorChoices = []doorChoice{
	{Label: "Lock", Action: api.DoorActionLock},
	{Label: "Unlock", Action: api.DoorActionUnlock},
	{Label: "Busy", Action: api.DoorActionBusy},
}

// doorStatusAfter returns the local door status a confirmed action
// transitions to.
func doorStatusAfter(action string) string {
	switch action {
	case api.DoorActionLock:
		return api.DoorStatusLocked
	case api.DoorActionUnlock:
		return api.DoorStatusUnlocked
	default:
		return api.DoorStatusBusy
	}
}

// DoorModel represents the smart door control screen. The door state is
// tracked locally: a dispatched action flips the displayed status right
// away and a failure flips it back. The server exposes no read endpoint
// for the door, so the local status is all there is.
type DoorModel struct {
	client *api.Client

	Status     string
	PrevStatus string
	Cursor     int

	Busy    bool
	Message string
	Failed  bool

	// UI state
	Width   int
	Height  int
	Spinner spinner.Model
}

// NewDoorModel creates a new smart door screen model
func NewDoorModel(client *api.Client) DoorModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = SpinnerStyle

	return DoorModel{
		client:  client,
		Status:  api.DoorStatusUnlocked,
		Spinner: s,
	}
}

// Init initializes the door model
func (m DoorModel) Init() tea.Cmd {
	return nil
}

// Update handles messages and updates the model
func (m DoorModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.Busy {
			return m, nil
		}

		switch msg.String() {
		case "esc", "q":
			return m, func() tea.Msg { return goBackMsg{} }

		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
			}

		case "down", "j":
			if m.Cursor < len(doorChoices)-1 {
				m.Cursor++
			}

		case "enter", " ":
			return m.dispatch(doorChoices[m.Cursor].Action)
		}

	case doorResultMsg:
		m.Busy = false
		if msg.err != nil {
			// Revert the optimistic flip
			m.Status = m.PrevStatus
			m.Message = api.FailureMessage(msg.err)
			m.Failed = true
			return m, authGate(msg.err)
		}
		m.Message = msg.message
		m.Failed = false
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.Spinner, cmd = m.Spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}

// dispatch flips the local status and sends the door command
func (m DoorModel) dispatch(action string) (tea.Model, tea.Cmd) {
	m.Busy = true
	m.Message = ""
	m.PrevStatus = m.Status
	m.Status = doorStatusAfter(action)

	cmd := api.DoorCommand{Action: action, Status: m.Status}
	client := m.client
	return m, tea.Batch(m.Spinner.Tick, func() tea.Msg {
		message, err := client.ControlDoor(context.Background(), cmd)
		return doorResultMsg{message: message, err: err}
	})
}

// View renders the smart door screen
func (m DoorModel) View() string {
	var b strings.Builder

	b.WriteString(RenderTitle("Smart Door"))
	b.WriteString("\n")

	statusStyle := lipgloss.NewStyle().Foreground(SecondaryColor).Bold(true)
	if m.Status != api.DoorStatusLocked {
		statusStyle = statusStyle.Foreground(WarningColor)
	}
	b.WriteString("  Door is ")
	b.WriteString(statusStyle.Render(m.Status))
	b.WriteString("\n\n")

	for i, choice := range doorChoices {
		b.WriteString(RenderMenuItem(choice.Label, i == m.Cursor))
		b.WriteString("\n")
	}

	if m.Busy {
		b.WriteString("\n  ")
		b.WriteString(SpinnerStyle.Render(m.Spinner.View() + " Working..."))
		b.WriteString("\n")
	} else if m.Message != "" {
		b.WriteString("\n  ")
		if m.Failed {
			b.WriteString(RenderError(m.Message))
		} else {
			b.WriteString(RenderSuccess(m.Message))
		}
		b.WriteString("\n")
	}

	helpText := "↑/↓: move • enter: perform action • esc: back"
	return RenderApplicationContainer(b.String(), helpText, m.Width, m.Height)
}
