package tui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/smarthome-tech/homectl/internal/api"
)

// loginResultMsg carries the outcome of a login attempt
type loginResultMsg struct {
	token string
	err   error
}

// LoginModel represents the sign-in screen state
type LoginModel struct {
	client *api.Client

	// Form state
	Username   textinput.Model
	Password   textinput.Model
	FocusIndex int

	// Submission state
	Submitting bool
	ErrMsg     string

	// Notice shown above the form (e.g. after a forced sign-out)
	Notice string

	// UI state
	Width   int
	Height  int
	Spinner spinner.Model
}

// NewLoginModel creates a new login screen model
func NewLoginModel(client *api.Client) LoginModel {
	username := textinput.New()
	username.Placeholder = "username"
	username.CharLimit = 64
	username.Width = 30
	username.Focus()

	password := textinput.New()
	password.Placeholder = "password"
	password.CharLimit = 64
	password.Width = 30
	password.EchoMode = textinput.EchoPassword
	password.EchoCharacter = '•'

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = SpinnerStyle

	return LoginModel{
		client:   client,
		Username: username,
		Password: password,
		Spinner:  s,
	}
}

// Init initializes the login model
func (m LoginModel) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages and updates the model
func (m LoginModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.Submitting {
			// Ignore input while a request is in flight
			return m, nil
		}

		switch msg.String() {
		case "esc":
			return m, tea.Quit

		case "tab", "shift+tab", "up", "down":
			return m.cycleFocus(msg.String()), textinput.Blink

		case "ctrl+r":
			// Switch to the registration screen
			return m, func() tea.Msg { return screenTransitionMsg{screen: ScreenRegister} }

		case "enter":
			if m.FocusIndex == 0 {
				// Move to the password field first
				return m.cycleFocus("tab"), textinput.Blink
			}
			return m.submit()
		}

	case loginResultMsg:
		m.Submitting = false
		if msg.err != nil {
			m.ErrMsg = api.FailureMessage(msg.err)
			return m, nil
		}
		token := msg.token
		return m, func() tea.Msg { return loggedInMsg{token: token} }

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.Spinner, cmd = m.Spinner.Update(msg)
		return m, cmd
	}

	return m.updateInputs(msg)
}

// cycleFocus moves focus between the username and password fields
func (m LoginModel) cycleFocus(key string) LoginModel {
	if key == "shift+tab" || key == "up" {
		m.FocusIndex--
	} else {
		m.FocusIndex++
	}
	if m.FocusIndex < 0 {
		m.FocusIndex = 1
	}
	if m.FocusIndex > 1 {
		m.FocusIndex = 0
	}

	if m.FocusIndex == 0 {
		m.Username.Focus()
		m.Password.Blur()
	} else {
		m.Username.Blur()
		m.Password.Focus()
	}
	return m
}

// submit validates the form and dispatches the login request
func (m LoginModel) submit() (tea.Model, tea.Cmd) {
	username := strings.TrimSpace(m.Username.Value())
	password := m.Password.Value()

	if username == "" || password == "" {
		m.ErrMsg = "Username and password are required."
		return m, nil
	}

	m.Submitting = true
	m.ErrMsg = ""

	client := m.client
	return m, tea.Batch(
		m.Spinner.Tick,
		func() tea.Msg {
			token, err := client.Login(context.Background(), username, password)
			return loginResultMsg{token: token, err: err}
		},
	)
}

// updateInputs forwards messages to the focused text input
func (m LoginModel) updateInputs(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds [2]tea.Cmd
	m.Username, cmds[0] = m.Username.Update(msg)
	m.Password, cmds[1] = m.Password.Update(msg)
	return m, tea.Batch(cmds[0], cmds[1])
}

// View renders the login screen
func (m LoginModel) View() string {
	var b strings.Builder

	b.WriteString(RenderTitle("Sign In"))
	b.WriteString("\n")

	if m.Notice != "" {
		b.WriteString("  ")
		b.WriteString(WarningBoxStyle.Render(m.Notice))
		b.WriteString("\n\n")
	}

	b.WriteString("  Username: ")
	b.WriteString(m.Username.View())
	b.WriteString("\n\n")
	b.WriteString("  Password: ")
	b.WriteString(m.Password.View())
	b.WriteString("\n\n")

	if m.Submitting {
		b.WriteString("  ")
		b.WriteString(SpinnerStyle.Render(m.Spinner.View() + " Signing in..."))
		b.WriteString("\n")
	} else if m.ErrMsg != "" {
		b.WriteString("  ")
		b.WriteString(RenderError(m.ErrMsg))
		b.WriteString("\n")
	}

	helpText := "tab: next field • enter: sign in • ctrl+r: register • esc: quit"
	return RenderApplicationContainer(b.String(), helpText, m.Width, m.Height)
}
