package tui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/smarthome-tech/homectl/internal/api"
)

// weatherResultMsg carries the outcome of a weather adjustment request
type weatherResultMsg struct {
	message string
	err     error
}

// WeatherModel represents the weather adjustment screen: the user names a
// location and the server tunes devices for the weather there.
type WeatherModel struct {
	client *api.Client

	LocationInput textinput.Model

	Busy    bool
	Message string
	Failed  bool

	// UI state
	Width   int
	Height  int
	Spinner spinner.Model
}

// NewWeatherModel creates a new weather screen model
func NewWeatherModel(client *api.Client) WeatherModel {
	location := textinput.New()
	location.Placeholder = "city or region"
	location.CharLimit = 64
	location.Width = 30
	location.Focus()

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = SpinnerStyle

	return WeatherModel{
		client:        client,
		LocationInput: location,
		Spinner:       s,
	}
}

// Init initializes the weather model
func (m WeatherModel) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages and updates the model
func (m WeatherModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.Busy {
			return m, nil
		}

		switch msg.String() {
		case "esc":
			return m, func() tea.Msg { return goBackMsg{} }

		case "enter":
			location := strings.TrimSpace(m.LocationInput.Value())
			if location == "" {
				m.Message = "Location is required."
				m.Failed = true
				return m, nil
			}
			m.Busy = true
			m.Message = ""
			client := m.client
			return m, tea.Batch(m.Spinner.Tick, func() tea.Msg {
				message, err := client.AdjustWeather(context.Background(), location)
				return weatherResultMsg{message: message, err: err}
			})
		}

	case weatherResultMsg:
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

	var cmd tea.Cmd
	m.LocationInput, cmd = m.LocationInput.Update(msg)
	return m, cmd
}

// View renders the weather adjustment screen
func (m WeatherModel) View() string {
	var b strings.Builder

	b.WriteString(RenderTitle("Weather Adjustment"))
	b.WriteString("\n")
	b.WriteString(RenderSubtitle("  Adjust devices for the weather at a location"))
	b.WriteString("\n\n")

	b.WriteString("  Location: ")
	b.WriteString(m.LocationInput.View())
	b.WriteString("\n")

	if m.Busy {
		b.WriteString("\n  ")
		b.WriteString(SpinnerStyle.Render(m.Spinner.View() + " Adjusting..."))
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

	helpText := "enter: adjust • esc: back"
	return RenderApplicationContainer(b.String(), helpText, m.Width, m.Height)
}
