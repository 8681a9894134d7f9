package tui

import (
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/smarthome-tech/homectl/internal/api"
	"github.com/smarthome-tech/homectl/internal/logging"
	"github.com/smarthome-tech/homectl/internal/session"
)

// Screen represents the current active screen in the application
type Screen string

const (
	ScreenLogin     Screen = "login"
	ScreenRegister  Screen = "register"
	ScreenDashboard Screen = "dashboard"
	ScreenDevices   Screen = "devices"
	ScreenRules     Screen = "rules"
	ScreenDoor      Screen = "door"
	ScreenCamera    Screen = "camera"
	ScreenTV        Screen = "tv"
	ScreenWeather   Screen = "weather"
)

// Messages for screen transitions
type screenTransitionMsg struct {
	screen Screen
}

type goBackMsg struct{}

// loggedInMsg is emitted by the login screen once the server accepts
// credentials. The token has not been persisted yet when this arrives.
type loggedInMsg struct {
	token string
}

// logoutMsg is emitted by the dashboard when the user logs out.
type logoutMsg struct{}

// sessionExpiredMsg is emitted by any screen whose request came back with
// an authentication failure. The stored token is stale and the user must
// sign in again.
type sessionExpiredMsg struct{}

// authGate turns a request error into a session expiry notification when
// the server rejected our token. Screens call this with every result error
// so that a revoked or expired token drops the user back to the login
// screen instead of leaving a panel stuck on an error message.
func authGate(err error) tea.Cmd {
	if err == nil || !api.IsAuthFailure(err) {
		return nil
	}
	return func() tea.Msg { return sessionExpiredMsg{} }
}

// AppModel is the top-level coordinator model that manages screen transitions
type AppModel struct {
	// Current screen state
	CurrentScreen  Screen
	PreviousScreen Screen

	// Screen models
	LoginModel     LoginModel
	RegisterModel  RegisterModel
	DashboardModel DashboardModel
	DevicesModel   DevicesModel
	RulesModel     RulesModel
	DoorModel      DoorModel
	CameraModel    CameraModel
	TVModel        TVModel
	WeatherModel   WeatherModel

	// Shared application state
	Client  *api.Client
	Session *session.Session

	// Notice shown on the login screen after a forced sign-out
	LoginNotice string

	// UI state
	Width  int
	Height int
}

// NewAppModel creates the application model. A session holding a token
// starts at the dashboard; otherwise the user lands on the login screen.
func NewAppModel(client *api.Client, sess *session.Session) AppModel {
	model := AppModel{
		Client:  client,
		Session: sess,
	}

	if sess.Authenticated() {
		model.CurrentScreen = ScreenDashboard
		model.DashboardModel = NewDashboardModel()
	} else {
		model.CurrentScreen = ScreenLogin
		model.LoginModel = NewLoginModel(client)
	}

	return model
}

// Init initializes the application
func (m AppModel) Init() tea.Cmd {
	switch m.CurrentScreen {
	case ScreenLogin:
		return m.LoginModel.Init()
	case ScreenDashboard:
		return m.DashboardModel.Init()
	default:
		return nil
	}
}

// Update handles all messages and routes them to the appropriate screen
func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		m.propagateSize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		// Global quit handler
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}

	case screenTransitionMsg:
		return m.transitionTo(msg.screen)

	case goBackMsg:
		return m.goBack()

	case loggedInMsg:
		if err := m.Session.SetToken(msg.token); err != nil {
			logging.Warn("failed to persist session token", zap.Error(err))
		}
		m.LoginNotice = ""
		return m.transitionTo(ScreenDashboard)

	case logoutMsg:
		if err := m.Session.Clear(); err != nil {
			logging.Warn("failed to clear session", zap.Error(err))
		}
		return m.transitionTo(ScreenLogin)

	case sessionExpiredMsg:
		if err := m.Session.Clear(); err != nil {
			logging.Warn("failed to clear session", zap.Error(err))
		}
		m.LoginNotice = "Your session has expired. Please sign in again."
		return m.transitionTo(ScreenLogin)
	}

	// Route to current screen
	return m.updateCurrentScreen(msg)
}

// propagateSize pushes terminal dimensions into every screen model
func (m *AppModel) propagateSize(width, height int) {
	m.LoginModel.Width, m.LoginModel.Height = width, height
	m.RegisterModel.Width, m.RegisterModel.Height = width, height
	m.DashboardModel.Width, m.DashboardModel.Height = width, height
	m.DevicesModel.Width, m.DevicesModel.Height = width, height
	m.RulesModel.Width, m.RulesModel.Height = width, height
	m.DoorModel.Width, m.DoorModel.Height = width, height
	m.CameraModel.Width, m.CameraModel.Height = width, height
	m.TVModel.Width, m.TVModel.Height = width, height
	m.WeatherModel.Width, m.WeatherModel.Height = width, height
}

// updateCurrentScreen routes updates to the currently active screen
func (m AppModel) updateCurrentScreen(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch m.CurrentScreen {
	case ScreenLogin:
		updated, c := m.LoginModel.Update(msg)
		m.LoginModel = updated.(LoginModel)
		cmd = c

	case ScreenRegister:
		updated, c := m.RegisterModel.Update(msg)
		m.RegisterModel = updated.(RegisterModel)
		cmd = c

	case ScreenDashboard:
		updated, c := m.DashboardModel.Update(msg)
		m.DashboardModel = updated.(DashboardModel)
		cmd = c

	case ScreenDevices:
		updated, c := m.DevicesModel.Update(msg)
		m.DevicesModel = updated.(DevicesModel)
		cmd = c

	case ScreenRules:
		updated, c := m.RulesModel.Update(msg)
		m.RulesModel = updated.(RulesModel)
		cmd = c

	case ScreenDoor:
		updated, c := m.DoorModel.Update(msg)
		m.DoorModel = updated.(DoorModel)
		cmd = c

	case ScreenCamera:
		updated, c := m.CameraModel.Update(msg)
		m.CameraModel = updated.(CameraModel)
		cmd = c

	case ScreenTV:
		updated, c := m.TVModel.Update(msg)
		m.TVModel = updated.(TVModel)
		cmd = c

	case ScreenWeather:
		updated, c := m.WeatherModel.Update(msg)
		m.WeatherModel = updated.(WeatherModel)
		cmd = c
	}

	return m, cmd
}

// transitionTo transitions to a new screen. Screens past the dashboard
// require a token; without one the user is redirected to login.
func (m AppModel) transitionTo(screen Screen) (tea.Model, tea.Cmd) {
	if requiresAuth(screen) && !m.Session.Authenticated() {
		screen = ScreenLogin
	}

	m.PreviousScreen = m.CurrentScreen
	m.CurrentScreen = screen

	var cmd tea.Cmd

	// Each screen is rebuilt fresh on entry. Drafts and transient errors
	// do not survive navigation.
	switch screen {
	case ScreenLogin:
		m.LoginModel = NewLoginModel(m.Client)
		m.LoginModel.Notice = m.LoginNotice
		m.LoginModel.Width, m.LoginModel.Height = m.Width, m.Height
		cmd = m.LoginModel.Init()

	case ScreenRegister:
		m.RegisterModel = NewRegisterModel(m.Client)
		m.RegisterModel.Width, m.RegisterModel.Height = m.Width, m.Height
		cmd = m.RegisterModel.Init()

	case ScreenDashboard:
		m.DashboardModel = NewDashboardModel()
		m.DashboardModel.Width, m.DashboardModel.Height = m.Width, m.Height
		cmd = m.DashboardModel.Init()

	case ScreenDevices:
		m.DevicesModel = NewDevicesModel(m.Client)
		m.DevicesModel.Width, m.DevicesModel.Height = m.Width, m.Height
		cmd = m.DevicesModel.Init()

	case ScreenRules:
		m.RulesModel = NewRulesModel(m.Client)
		m.RulesModel.Width, m.RulesModel.Height = m.Width, m.Height
		cmd = m.RulesModel.Init()

	case ScreenDoor:
		m.DoorModel = NewDoorModel(m.Client)
		m.DoorModel.Width, m.DoorModel.Height = m.Width, m.Height
		cmd = m.DoorModel.Init()

	case ScreenCamera:
		m.CameraModel = NewCameraModel(m.Client)
		m.CameraModel.Width, m.CameraModel.Height = m.Width, m.Height
		cmd = m.CameraModel.Init()

	case ScreenTV:
		m.TVModel = NewTVModel(m.Client)
		m.TVModel.Width, m.TVModel.Height = m.Width, m.Height
		cmd = m.TVModel.Init()

	case ScreenWeather:
		m.WeatherModel = NewWeatherModel(m.Client)
		m.WeatherModel.Width, m.WeatherModel.Height = m.Width, m.Height
		cmd = m.WeatherModel.Init()
	}

	return m, cmd
}

// requiresAuth reports whether a screen needs a stored token
func requiresAuth(screen Screen) bool {
	switch screen {
	case ScreenLogin, ScreenRegister:
		return false
	}
	return true
}

// goBack returns to the previous screen
func (m AppModel) goBack() (tea.Model, tea.Cmd) {
	switch m.CurrentScreen {
	case ScreenLogin:
		// Can't go back from login - quit instead
		return m, tea.Quit

	case ScreenRegister:
		return m.transitionTo(ScreenLogin)

	case ScreenDashboard:
		// Dashboard is the root of the signed-in experience
		return m, tea.Quit

	default:
		// Category panels return to the dashboard
		return m.transitionTo(ScreenDashboard)
	}
}

// View renders the current screen
// Each screen handles its own container using RenderApplicationContainer()
func (m AppModel) View() string {
	switch m.CurrentScreen {
	case ScreenLogin:
		return m.LoginModel.View()
	case ScreenRegister:
		return m.RegisterModel.View()
	case ScreenDashboard:
		return m.DashboardModel.View()
	case ScreenDevices:
		return m.DevicesModel.View()
	case ScreenRules:
		return m.RulesModel.View()
	case ScreenDoor:
		return m.DoorModel.View()
	case ScreenCamera:
		return m.CameraModel.View()
	case ScreenTV:
		return m.TVModel.View()
	case ScreenWeather:
		return m.WeatherModel.View()
	default:
		return "Unknown screen"
	}
}
