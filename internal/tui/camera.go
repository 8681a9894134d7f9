package tui

import (
	"context"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/smarthome-tech/homectl/internal/api"
)

// defaultRecordDuration is the recording length in seconds used when the
// user submits an empty duration.
const defaultRecordDuration = 30

// cameraResultMsg carries the outcome of a camera control request
type cameraResultMsg struct {
	message string
	err     error
}

// cameraChoice pairs a menu label with the action it dispatches
type cameraChoice struct {
	Label  string
	Action string
}

var cameraChoices = []cameraChoice{
	{Label: "Turn On", Action: api.CameraActionOn},
	{Label: "Turn Off", Action: api.CameraActionOff},
	{Label: "Record", Action: api.CameraActionRecord},
	{Label: "Snapshot", Action: api.CameraActionSnapshot},
}

// CameraModel represents the camera control screen. The record action
// prompts for a duration before dispatching; every other action fires
// immediately.
type CameraModel struct {
	client *api.Client

	Cursor        int
	PromptingFor  string
	DurationInput textinput.Model

	Busy    bool
	Message string
	Failed  bool

	// UI state
	Width   int
	Height  int
	Spinner spinner.Model
}

// NewCameraModel creates a new camera screen model
func NewCameraModel(client *api.Client) CameraModel {
	duration := textinput.New()
	duration.Placeholder = strconv.Itoa(defaultRecordDuration)
	duration.CharLimit = 5
	duration.Width = 10

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = SpinnerStyle

	return CameraModel{
		client:        client,
		DurationInput: duration,
		Spinner:       s,
	}
}

// Init initializes the camera model
func (m CameraModel) Init() tea.Cmd {
	return nil
}

// Update handles messages and updates the model
func (m CameraModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.Busy {
			return m, nil
		}
		if m.PromptingFor != "" {
			return m.updatePrompt(msg)
		}
		return m.updateMenu(msg)

	case cameraResultMsg:
		m.Busy = false
		if msg.err != nil {
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

	if m.PromptingFor != "" {
		var cmd tea.Cmd
		m.DurationInput, cmd = m.DurationInput.Update(msg)
		return m, cmd
	}
	return m, nil
}

// updateMenu handles keys on the action menu
func (m CameraModel) updateMenu(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "q":
		return m, func() tea.Msg { return goBackMsg{} }

	case "up", "k":
		if m.Cursor > 0 {
			m.Cursor--
		}

	case "down", "j":
		if m.Cursor < len(cameraChoices)-1 {
			m.Cursor++
		}

	case "enter", " ":
		action := cameraChoices[m.Cursor].Action
		if action == api.CameraActionRecord {
			m.PromptingFor = action
			m.DurationInput.SetValue("")
			m.DurationInput.Focus()
			return m, textinput.Blink
		}
		return m.dispatch(api.CameraCommand{Action: action})
	}

	return m, nil
}

// updatePrompt handles keys while the duration prompt is open
func (m CameraModel) updatePrompt(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.PromptingFor = ""
		m.DurationInput.Blur()
		return m, nil

	case "enter":
		duration := defaultRecordDuration
		if raw := strings.TrimSpace(m.DurationInput.Value()); raw != "" {
			parsed, err := strconv.Atoi(raw)
			if err != nil || parsed <= 0 {
				m.Message = "Duration must be a positive number of seconds."
				m.Failed = true
				return m, nil
			}
			duration = parsed
		}
		action := m.PromptingFor
		m.PromptingFor = ""
		m.DurationInput.Blur()
		return m.dispatch(api.CameraCommand{Action: action, Duration: &duration})
	}

	var cmd tea.Cmd
	m.DurationInput, cmd = m.DurationInput.Update(msg)
	return m, cmd
}

// dispatch sends the camera command
func (m CameraModel) dispatch(cmd api.CameraCommand) (tea.Model, tea.Cmd) {
	m.Busy = true
	m.Message = ""

	client := m.client
	return m, tea.Batch(m.Spinner.Tick, func() tea.Msg {
		message, err := client.ControlCamera(context.Background(), cmd)
		return cameraResultMsg{message: message, err: err}
	})
}

// View renders the camera screen
func (m CameraModel) View() string {
	var b strings.Builder

	b.WriteString(RenderTitle("Camera"))
	b.WriteString("\n")

	if m.PromptingFor != "" {
		b.WriteString("  Recording duration (seconds): ")
		b.WriteString(m.DurationInput.View())
		b.WriteString("\n")
	} else {
		for i, choice := range cameraChoices {
			b.WriteString(RenderMenuItem(choice.Label, i == m.Cursor))
			b.WriteString("\n")
		}
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

	var helpText string
	if m.PromptingFor != "" {
		helpText = "enter: start recording • esc: cancel"
	} else {
		helpText = "↑/↓: move • enter: perform action • esc: back"
	}
	return RenderApplicationContainer(b.String(), helpText, m.Width, m.Height)
}
