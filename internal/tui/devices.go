package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/smarthome-tech/homectl/internal/api"
	"github.com/smarthome-tech/homectl/internal/panel"
)

// deviceScreenMode selects which part of the devices screen has focus
type deviceScreenMode int

const (
	deviceModeList deviceScreenMode = iota
	deviceModeCreate
	deviceModeAction
)

// deviceAction pairs a menu label with the action and status strings the
// control endpoint expects for it.
type deviceAction struct {
	Label  string
	Action string
	Status string
}

// actionsForDevice returns the control actions available for a device
// type. Types without dedicated behaviors fall back to plain on/off.
func actionsForDevice(deviceType string) []deviceAction {
	switch deviceType {
	case api.DeviceTypeLight:
		return []deviceAction{
			{Label: "Turn On", Action: "Turn On", Status: "on"},
			{Label: "Turn Off", Action: "Turn Off", Status: "off"},
			{Label: "Dim", Action: "Dim", Status: "Dim"},
		}
	case api.DeviceTypeAC:
		return []deviceAction{
			{Label: "Turn On", Action: "Turn On", Status: "on"},
			{Label: "Turn Off", Action: "Turn Off", Status: "off"},
			{Label: "Increase Temperature", Action: "IncreaseTemp", Status: "Increasing Temperature"},
			{Label: "Decrease Temperature", Action: "DecreaseTemp", Status: "Decreasing Temperature"},
		}
	default:
		// moon_light, refrigerator and unrecognized types
		return []deviceAction{
			{Label: "Turn On", Action: "Turn On", Status: "on"},
			{Label: "Turn Off", Action: "Turn Off", Status: "off"},
		}
	}
}

// deviceTypes lists the creatable types in display order
var deviceTypes = []string{
	api.DeviceTypeLight,
	api.DeviceTypeAC,
	api.DeviceTypeMoonLight,
	api.DeviceTypeRefrigerator,
}

// Messages for async device operations
type devicesFetchedMsg struct {
	devices []api.Device
	err     error
}

type deviceCreatedMsg struct {
	device api.Device
	err    error
}

type deviceDeletedMsg struct {
	id  string
	err error
}

type deviceControlledMsg struct {
	err error
}

// DevicesModel represents the device management screen
type DevicesModel struct {
	client *api.Client
	Panel  *panel.List[api.Device]

	Mode   deviceScreenMode
	Cursor int

	// Create form state
	NameInput  textinput.Model
	TypeCursor int

	// Action menu state
	ActionTarget api.Device
	ActionCursor int

	// UI state
	Width   int
	Height  int
	Spinner spinner.Model
}

// NewDevicesModel creates a new devices screen model
func NewDevicesModel(client *api.Client) DevicesModel {
	nameInput := textinput.New()
	nameInput.Placeholder = "device name"
	nameInput.CharLimit = 64
	nameInput.Width = 30

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = SpinnerStyle

	return DevicesModel{
		client:    client,
		Panel:     panel.NewList(func(d api.Device) string { return d.ID }),
		NameInput: nameInput,
		Spinner:   s,
	}
}

// Init starts the initial device fetch
func (m DevicesModel) Init() tea.Cmd {
	if !m.Panel.Begin() {
		return nil
	}
	return tea.Batch(m.Spinner.Tick, m.fetchDevices())
}

// fetchDevices is a command that loads the device list
func (m DevicesModel) fetchDevices() tea.Cmd {
	client := m.client
	return func() tea.Msg {
		devices, err := client.ListDevices(context.Background())
		return devicesFetchedMsg{devices: devices, err: err}
	}
}

// Update handles messages and updates the model
func (m DevicesModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.Panel.Busy() {
			// Inputs are disabled while a request is in flight
			return m, nil
		}
		switch m.Mode {
		case deviceModeCreate:
			return m.updateCreateMode(msg)
		case deviceModeAction:
			return m.updateActionMode(msg)
		default:
			return m.updateListMode(msg)
		}

	case devicesFetchedMsg:
		if msg.err != nil {
			m.Panel.FinishFailure(api.FailureMessage(msg.err))
			return m, authGate(msg.err)
		}
		m.Panel.FinishFetch(msg.devices, "Devices fetched successfully")
		m.clampCursor()
		return m, nil

	case deviceCreatedMsg:
		if msg.err != nil {
			m.Panel.FinishFailure(api.FailureMessage(msg.err))
			return m, authGate(msg.err)
		}
		m.Panel.FinishCreate(msg.device, fmt.Sprintf("Device %q created", msg.device.Name))
		m.Mode = deviceModeList
		m.NameInput.Blur()
		return m, nil

	case deviceDeletedMsg:
		if msg.err != nil {
			m.Panel.FinishFailure(api.FailureMessage(msg.err))
			return m, authGate(msg.err)
		}
		m.Panel.FinishDelete(msg.id, "Device deleted")
		m.clampCursor()
		return m, nil

	case deviceControlledMsg:
		if msg.err != nil {
			m.Panel.FinishFailure(api.FailureMessage(msg.err))
			return m, authGate(msg.err)
		}
		// A confirmed control changes server-side state; refetch so the
		// list reflects it rather than guessing at the new status.
		m.Panel.FinishAction("Action successful")
		m.Mode = deviceModeList
		if m.Panel.Begin() {
			return m, tea.Batch(m.Spinner.Tick, m.fetchDevices())
		}
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.Spinner, cmd = m.Spinner.Update(msg)
		return m, cmd
	}

	if m.Mode == deviceModeCreate {
		var cmd tea.Cmd
		m.NameInput, cmd = m.NameInput.Update(msg)
		return m, cmd
	}
	return m, nil
}

// updateListMode handles keys while browsing the device list
func (m DevicesModel) updateListMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	items := m.Panel.Items()

	switch msg.String() {
	case "esc", "q":
		return m, func() tea.Msg { return goBackMsg{} }

	case "up", "k":
		if m.Cursor > 0 {
			m.Cursor--
		}

	case "down", "j":
		if m.Cursor < len(items)-1 {
			m.Cursor++
		}

	case "r":
		if m.Panel.Begin() {
			return m, tea.Batch(m.Spinner.Tick, m.fetchDevices())
		}

	case "n":
		m.Mode = deviceModeCreate
		m.Panel.StartNew()
		m.NameInput.SetValue("")
		m.NameInput.Focus()
		m.TypeCursor = 0
		return m, textinput.Blink

	case "d":
		if m.Cursor < len(items) && m.Panel.Begin() {
			id := items[m.Cursor].ID
			client := m.client
			return m, tea.Batch(m.Spinner.Tick, func() tea.Msg {
				err := client.DeleteDevice(context.Background(), id)
				return deviceDeletedMsg{id: id, err: err}
			})
		}

	case "enter", " ":
		if m.Cursor < len(items) {
			m.Mode = deviceModeAction
			m.ActionTarget = items[m.Cursor]
			m.ActionCursor = 0
		}
	}

	return m, nil
}

// updateCreateMode handles keys while the create form is open
func (m DevicesModel) updateCreateMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.Mode = deviceModeList
		m.Panel.ClearDraft()
		m.NameInput.Blur()
		return m, nil

	case "left", "shift+tab":
		if m.TypeCursor > 0 {
			m.TypeCursor--
		}
		return m, nil

	case "right", "tab":
		if m.TypeCursor < len(deviceTypes)-1 {
			m.TypeCursor++
		}
		return m, nil

	case "enter":
		name := strings.TrimSpace(m.NameInput.Value())
		if name == "" {
			return m, nil
		}
		if draft := m.Panel.Draft(); draft != nil {
			draft.Name = name
			draft.Type = deviceTypes[m.TypeCursor]
		}
		if !m.Panel.Begin() {
			return m, nil
		}
		deviceType := deviceTypes[m.TypeCursor]
		client := m.client
		return m, tea.Batch(m.Spinner.Tick, func() tea.Msg {
			device, err := client.CreateDevice(context.Background(), name, deviceType)
			return deviceCreatedMsg{device: device, err: err}
		})
	}

	var cmd tea.Cmd
	m.NameInput, cmd = m.NameInput.Update(msg)
	return m, cmd
}

// updateActionMode handles keys while the per-device action menu is open
func (m DevicesModel) updateActionMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	actions := actionsForDevice(m.ActionTarget.Type)

	switch msg.String() {
	case "esc", "q":
		m.Mode = deviceModeList
		return m, nil

	case "up", "k":
		if m.ActionCursor > 0 {
			m.ActionCursor--
		}

	case "down", "j":
		if m.ActionCursor < len(actions)-1 {
			m.ActionCursor++
		}

	case "enter", " ":
		if m.ActionCursor < len(actions) && m.Panel.Begin() {
			action := actions[m.ActionCursor]
			target := m.ActionTarget
			client := m.client
			return m, tea.Batch(m.Spinner.Tick, func() tea.Msg {
				err := client.ControlDevice(context.Background(), target.ID, target.Type, action.Action, action.Status)
				return deviceControlledMsg{err: err}
			})
		}
	}

	return m, nil
}

// clampCursor keeps the list cursor inside the current item range
func (m *DevicesModel) clampCursor() {
	if n := len(m.Panel.Items()); m.Cursor >= n {
		m.Cursor = n - 1
	}
	if m.Cursor < 0 {
		m.Cursor = 0
	}
}

// View renders the devices screen
func (m DevicesModel) View() string {
	var content string
	var helpText string

	switch m.Mode {
	case deviceModeCreate:
		content = m.renderCreateForm()
		helpText = "tab/←→: device type • enter: create • esc: cancel"
	case deviceModeAction:
		content = m.renderActionMenu()
		helpText = "↑/↓: move • enter: perform action • esc: back"
	default:
		content = m.renderList()
		helpText = "↑/↓: move • enter: control • n: new • d: delete • r: refresh • esc: back"
	}

	return RenderApplicationContainer(content, helpText, m.Width, m.Height)
}

// renderList renders the device list with the outcome message
func (m DevicesModel) renderList() string {
	var b strings.Builder

	b.WriteString(RenderTitle("Devices"))
	b.WriteString("\n")

	if m.Panel.Busy() {
		b.WriteString("  ")
		b.WriteString(SpinnerStyle.Render(m.Spinner.View() + " Working..."))
		b.WriteString("\n\n")
	}

	items := m.Panel.Items()
	if len(items) == 0 && !m.Panel.Busy() {
		b.WriteString(RenderSubtitle("  No devices yet. Press 'n' to add one."))
		b.WriteString("\n")
	}

	for i, d := range items {
		status := d.Status
		if status == "" {
			status = "unknown"
		}
		line := fmt.Sprintf("%s (%s) - %s", d.Name, d.Type, status)
		b.WriteString(RenderMenuItem(line, i == m.Cursor))
		b.WriteString("\n")
	}

	m.writeOutcome(&b)
	return b.String()
}

// renderCreateForm renders the new-device form
func (m DevicesModel) renderCreateForm() string {
	var b strings.Builder

	b.WriteString(RenderTitle("New Device"))
	b.WriteString("\n")

	b.WriteString("  Name: ")
	b.WriteString(m.NameInput.View())
	b.WriteString("\n\n")

	b.WriteString("  Type: ")
	for i, t := range deviceTypes {
		if i == m.TypeCursor {
			b.WriteString(SelectedListItemStyle.Render("[" + t + "]"))
		} else {
			b.WriteString(ListItemStyle.Render(t))
		}
		b.WriteString(" ")
	}
	b.WriteString("\n")

	m.writeOutcome(&b)
	return b.String()
}

// renderActionMenu renders the control actions for the selected device
func (m DevicesModel) renderActionMenu() string {
	var b strings.Builder

	b.WriteString(RenderTitle("Control: " + m.ActionTarget.Name))
	b.WriteString("\n")

	for i, action := range actionsForDevice(m.ActionTarget.Type) {
		b.WriteString(RenderMenuItem(action.Label, i == m.ActionCursor))
		b.WriteString("\n")
	}

	if m.Panel.Busy() {
		b.WriteString("\n  ")
		b.WriteString(SpinnerStyle.Render(m.Spinner.View() + " Working..."))
		b.WriteString("\n")
	}

	m.writeOutcome(&b)
	return b.String()
}

// writeOutcome appends the panel's single outcome message, styled by kind
func (m DevicesModel) writeOutcome(b *strings.Builder) {
	message, failed := m.Panel.Message()
	if message == "" || m.Panel.Busy() {
		return
	}
	b.WriteString("\n  ")
	if failed {
		b.WriteString(RenderError(message))
	} else {
		b.WriteString(RenderSuccess(message))
	}
	b.WriteString("\n")
}
