package tui

import (
	"context"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/smarthome-tech/homectl/internal/api"
)

// registerRedirectDelay is how long the success message stays on screen
// before the user is taken back to the login screen.
const registerRedirectDelay = 5 * time.Second

// registerResultMsg carries the outcome of a registration attempt
type registerResultMsg struct {
	message string
	err     error
}

// registerRedirectMsg fires after the post-success delay
type registerRedirectMsg struct{}

// RegisterModel represents the account creation screen state
type RegisterModel struct {
	client *api.Client

	// Form state
	Username   textinput.Model
	Password   textinput.Model
	FocusIndex int

	// Submission state
	Submitting bool
	ErrMsg     string
	SuccessMsg string

	// UI state
	Width   int
	Height  int
	Spinner spinner.Model
}

// NewRegisterModel creates a new registration screen model
func NewRegisterModel(client *api.Client) RegisterModel {
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

	return RegisterModel{
		client:   client,
		Username: username,
		Password: password,
		Spinner:  s,
	}
}

// Init initializes the register model
func (m RegisterModel) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages and updates the model
func (m RegisterModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.Submitting || m.SuccessMsg != "" {
			// Ignore input while a request is in flight or during the
			// post-success redirect window
			return m, nil
		}

		switch msg.String() {
		case "esc":
			return m, func() tea.Msg { return goBackMsg{} }

		case "tab", "shift+tab", "up", "down":
			return m.cycleFocus(msg.String()), textinput.Blink

		case "enter":
			if m.FocusIndex == 0 {
				return m.cycleFocus("tab"), textinput.Blink
			}
			return m.submit()
		}

	case registerResultMsg:
		m.Submitting = false
		if msg.err != nil {
			m.ErrMsg = api.FailureMessage(msg.err)
			return m, nil
		}
		m.Username.SetValue("")
		m.Password.SetValue("")
		m.SuccessMsg = msg.message
		return m, tea.Tick(registerRedirectDelay, func(time.Time) tea.Msg {
			return registerRedirectMsg{}
		})

	case registerRedirectMsg:
		return m, func() tea.Msg { return screenTransitionMsg{screen: ScreenLogin} }

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.Spinner, cmd = m.Spinner.Update(msg)
		return m, cmd
	}

	return m.updateInputs(msg)
}

// cycleFocus moves focus between the username and password fields
func (m RegisterModel) cycleFocus(key string) RegisterModel {
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

// submit validates the form and dispatches the registration request
func (m RegisterModel) submit() (tea.Model, tea.Cmd) {
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
			message, err := client.Register(context.Background(), username, password)
			return registerResultMsg{message: message, err: err}
		},
	)
}

// updateInputs forwards messages to the focused text input
func (m RegisterModel) updateInputs(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds [2]tea.Cmd
	m.Username, cmds[0] = m.Username.Update(msg)
	m.Password, cmds[1] = m.Password.Update(msg)
	return m, tea.Batch(cmds[0], cmds[1])
}

// View renders the registration screen
func (m RegisterModel) View() string {
	var b strings.Builder

	b.WriteString(RenderTitle("Create Account"))
	b.WriteString("\n")

	b.WriteString("  Username: ")
	b.WriteString(m.Username.View())
	b.WriteString("\n\n")
	b.WriteString("  Password: ")
	b.WriteString(m.Password.View())
	b.WriteString("\n\n")

	switch {
	case m.Submitting:
		b.WriteString("  ")
		b.WriteString(SpinnerStyle.Render(m.Spinner.View() + " Creating account..."))
		b.WriteString("\n")
	case m.SuccessMsg != "":
		b.WriteString("  ")
		b.WriteString(RenderSuccess(m.SuccessMsg + " Redirecting to sign in..."))
		b.WriteString("\n")
	case m.ErrMsg != "":
		b.WriteString("  ")
		b.WriteString(RenderError(m.ErrMsg))
		b.WriteString("\n")
	}

	helpText := "tab: next field • enter: create account • esc: back to sign in"
	return RenderApplicationContainer(b.String(), helpText, m.Width, m.Height)
}
