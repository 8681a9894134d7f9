package tui

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/smarthome-tech/homectl/internal/api"
)

// TV volume bounds tracked locally between requests
const (
	tvVolumeMin     = 0
	tvVolumeMax     = 100
	tvVolumeDefault = 10
)

// tvResultMsg carries the outcome of a TV control request
type tvResultMsg struct {
	message string
	volume  int
	err     error
}

// tvChoice pairs a menu label with the action it dispatches
type tvChoice struct {
	Label  string
	Action string
}

var tvChoices = []tvChoice{
	{Label: "Turn On", Action: api.TVActionOn},
	{Label: "Turn Off", Action: api.TVActionOff},
	{Label: "Volume Up", Action: api.TVActionVolumeUp},
	{Label: "Volume Down", Action: api.TVActionVolumeDown},
	{Label: "Change Channel", Action: api.TVActionChangeChannel},
}

// TVModel represents the TV control screen. Volume is tracked locally and
// only committed when the server confirms the request; change_channel
// prompts for a channel number before dispatching.
type TVModel struct {
	client *api.Client

	Cursor       int
	Volume       int
	Prompting    bool
	ChannelInput textinput.Model

	Busy    bool
	Message string
	Failed  bool

	// UI state
	Width   int
	Height  int
	Spinner spinner.Model
}

// NewTVModel creates a new TV screen model
func NewTVModel(client *api.Client) TVModel {
	channel := textinput.New()
	channel.Placeholder = "channel"
	channel.CharLimit = 4
	channel.Width = 10

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = SpinnerStyle

	return TVModel{
		client:       client,
		Volume:       tvVolumeDefault,
		ChannelInput: channel,
		Spinner:      s,
	}
}

// Init initializes the TV model
func (m TVModel) Init() tea.Cmd {
	return nil
}

// Update handles messages and updates the model
func (m TVModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.Busy {
			return m, nil
		}
		if m.Prompting {
			return m.updatePrompt(msg)
		}
		return m.updateMenu(msg)

	case tvResultMsg:
		m.Busy = false
		if msg.err != nil {
			m.Message = api.FailureMessage(msg.err)
			m.Failed = true
			return m, authGate(msg.err)
		}
		m.Volume = msg.volume
		m.Message = msg.message
		m.Failed = false
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.Spinner, cmd = m.Spinner.Update(msg)
		return m, cmd
	}

	if m.Prompting {
		var cmd tea.Cmd
		m.ChannelInput, cmd = m.ChannelInput.Update(msg)
		return m, cmd
	}
	return m, nil
}

// updateMenu handles keys on the action menu
func (m TVModel) updateMenu(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "q":
		return m, func() tea.Msg { return goBackMsg{} }

	case "up", "k":
		if m.Cursor > 0 {
			m.Cursor--
		}

	case "down", "j":
		if m.Cursor < len(tvChoices)-1 {
			m.Cursor++
		}

	case "enter", " ":
		action := tvChoices[m.Cursor].Action
		switch action {
		case api.TVActionVolumeUp:
			volume := m.Volume + 1
			if volume > tvVolumeMax {
				volume = tvVolumeMax
			}
			return m.dispatch(api.TVCommand{Action: action, Volume: &volume}, volume)

		case api.TVActionVolumeDown:
			volume := m.Volume - 1
			if volume < tvVolumeMin {
				volume = tvVolumeMin
			}
			return m.dispatch(api.TVCommand{Action: action, Volume: &volume}, volume)

		case api.TVActionChangeChannel:
			m.Prompting = true
			m.ChannelInput.SetValue("")
			m.ChannelInput.Focus()
			return m, textinput.Blink

		default:
			return m.dispatch(api.TVCommand{Action: action}, m.Volume)
		}
	}

	return m, nil
}

// updatePrompt handles keys while the channel prompt is open
func (m TVModel) updatePrompt(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.Prompting = false
		m.ChannelInput.Blur()
		return m, nil

	case "enter":
		raw := strings.TrimSpace(m.ChannelInput.Value())
		channel, err := strconv.Atoi(raw)
		if err != nil || channel <= 0 {
			m.Message = "Channel must be a positive number."
			m.Failed = true
			return m, nil
		}
		m.Prompting = false
		m.ChannelInput.Blur()
		return m.dispatch(api.TVCommand{Action: api.TVActionChangeChannel, Channel: &channel}, m.Volume)
	}

	var cmd tea.Cmd
	m.ChannelInput, cmd = m.ChannelInput.Update(msg)
	return m, cmd
}

// dispatch sends the TV command. volume is the local volume to commit
// when the server confirms.
func (m TVModel) dispatch(cmd api.TVCommand, volume int) (tea.Model, tea.Cmd) {
	m.Busy = true
	m.Message = ""

	client := m.client
	return m, tea.Batch(m.Spinner.Tick, func() tea.Msg {
		message, err := client.ControlTV(context.Background(), cmd)
		return tvResultMsg{message: message, volume: volume, err: err}
	})
}

// View renders the TV screen
func (m TVModel) View() string {
	var b strings.Builder

	b.WriteString(RenderTitle("TV"))
	b.WriteString("\n")
	b.WriteString(RenderSubtitle(fmt.Sprintf("  Volume: %d", m.Volume)))
	b.WriteString("\n\n")

	if m.Prompting {
		b.WriteString("  Channel: ")
		b.WriteString(m.ChannelInput.View())
		b.WriteString("\n")
	} else {
		for i, choice := range tvChoices {
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
	if m.Prompting {
		helpText = "enter: change channel • esc: cancel"
	} else {
		helpText = "↑/↓: move • enter: perform action • esc: back"
	}
	return RenderApplicationContainer(b.String(), helpText, m.Width, m.Height)
}
