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

// ruleFieldCount is the number of text inputs on the rule form: the rule
// name plus a kind/value pair for each of the three clauses.
const ruleFieldCount = 7

// Rule form field indexes
const (
	ruleFieldName = iota
	ruleFieldTriggerKind
	ruleFieldTriggerValue
	ruleFieldConditionKind
	ruleFieldConditionValue
	ruleFieldActionKind
	ruleFieldActionValue
)

// ruleFieldLabels maps form field indexes to display labels
var ruleFieldLabels = [ruleFieldCount]string{
	"Name",
	"Trigger type",
	"Trigger value",
	"Condition type",
	"Condition value",
	"Action type",
	"Action value",
}

// Messages for async rule operations
type rulesFetchedMsg struct {
	rules []api.AutomationRule
	err   error
}

type ruleSavedMsg struct {
	rule    api.AutomationRule
	updated bool
	err     error
}

type ruleDeletedMsg struct {
	id  string
	err error
}

// RulesModel represents the automation rules screen
type RulesModel struct {
	client *api.Client
	Panel  *panel.List[api.AutomationRule]

	// List state
	Cursor   int
	FormOpen bool

	// Form state
	Fields     [ruleFieldCount]textinput.Model
	FocusIndex int

	// UI state
	Width   int
	Height  int
	Spinner spinner.Model
}

// NewRulesModel creates a new automation rules screen model
func NewRulesModel(client *api.Client) RulesModel {
	m := RulesModel{
		client: client,
		Panel:  panel.NewList(func(r api.AutomationRule) string { return r.ID }),
	}

	for i := range m.Fields {
		input := textinput.New()
		input.Placeholder = strings.ToLower(ruleFieldLabels[i])
		input.CharLimit = 128
		input.Width = 30
		m.Fields[i] = input
	}

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = SpinnerStyle
	m.Spinner = s

	return m
}

// Init starts the initial rule fetch
func (m RulesModel) Init() tea.Cmd {
	if !m.Panel.Begin() {
		return nil
	}
	return tea.Batch(m.Spinner.Tick, m.fetchRules())
}

// fetchRules is a command that loads the rule list
func (m RulesModel) fetchRules() tea.Cmd {
	client := m.client
	return func() tea.Msg {
		rules, err := client.ListRules(context.Background())
		return rulesFetchedMsg{rules: rules, err: err}
	}
}

// Update handles messages and updates the model
func (m RulesModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.Panel.Busy() {
			return m, nil
		}
		if m.FormOpen {
			return m.updateFormMode(msg)
		}
		return m.updateListMode(msg)

	case rulesFetchedMsg:
		if msg.err != nil {
			m.Panel.FinishFailure(api.FailureMessage(msg.err))
			return m, authGate(msg.err)
		}
		m.Panel.FinishFetch(msg.rules, "Automation rules loaded")
		m.clampCursor()
		return m, nil

	case ruleSavedMsg:
		if msg.err != nil {
			m.Panel.FinishFailure(api.FailureMessage(msg.err))
			return m, authGate(msg.err)
		}
		if msg.updated {
			m.Panel.FinishUpdate(msg.rule, fmt.Sprintf("Rule %q updated", msg.rule.Name))
		} else {
			m.Panel.FinishCreate(msg.rule, fmt.Sprintf("Rule %q created", msg.rule.Name))
		}
		m.FormOpen = false
		m.blurAll()
		return m, nil

	case ruleDeletedMsg:
		if msg.err != nil {
			m.Panel.FinishFailure(api.FailureMessage(msg.err))
			return m, authGate(msg.err)
		}
		m.Panel.FinishDelete(msg.id, "Rule deleted")
		m.clampCursor()
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.Spinner, cmd = m.Spinner.Update(msg)
		return m, cmd
	}

	if m.FormOpen {
		return m.updateInputs(msg)
	}
	return m, nil
}

// updateListMode handles keys while browsing the rule list
func (m RulesModel) updateListMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
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
			return m, tea.Batch(m.Spinner.Tick, m.fetchRules())
		}

	case "n":
		m.Panel.StartNew()
		m.openForm()
		return m, textinput.Blink

	case "enter", "e":
		if m.Cursor < len(items) {
			m.Panel.Select(items[m.Cursor])
			m.openForm()
			return m, textinput.Blink
		}

	case "d":
		if m.Cursor < len(items) && m.Panel.Begin() {
			id := items[m.Cursor].ID
			client := m.client
			return m, tea.Batch(m.Spinner.Tick, func() tea.Msg {
				err := client.DeleteRule(context.Background(), id)
				return ruleDeletedMsg{id: id, err: err}
			})
		}
	}

	return m, nil
}

// openForm loads the panel draft into the form inputs and focuses the
// first field
func (m *RulesModel) openForm() {
	m.FormOpen = true
	m.FocusIndex = 0

	draft := m.Panel.Draft()
	if draft == nil {
		return
	}

	m.Fields[ruleFieldName].SetValue(draft.Name)
	m.Fields[ruleFieldTriggerKind].SetValue(draft.Trigger.Kind)
	m.Fields[ruleFieldTriggerValue].SetValue(draft.Trigger.Value)
	m.Fields[ruleFieldConditionKind].SetValue(draft.Condition.Kind)
	m.Fields[ruleFieldConditionValue].SetValue(draft.Condition.Value)
	m.Fields[ruleFieldActionKind].SetValue(draft.Action.Kind)
	m.Fields[ruleFieldActionValue].SetValue(draft.Action.Value)

	for i := range m.Fields {
		if i == 0 {
			m.Fields[i].Focus()
		} else {
			m.Fields[i].Blur()
		}
	}
}

// updateFormMode handles keys while the rule form is open
func (m RulesModel) updateFormMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		// Draft is discarded without confirmation
		m.FormOpen = false
		m.Panel.ClearDraft()
		m.blurAll()
		return m, nil

	case "tab", "down":
		return m.moveFocus(1), textinput.Blink

	case "shift+tab", "up":
		return m.moveFocus(-1), textinput.Blink

	case "enter":
		if m.FocusIndex < ruleFieldCount-1 {
			return m.moveFocus(1), textinput.Blink
		}
		return m.submitForm()
	}

	return m.updateInputs(msg)
}

// moveFocus shifts form focus by delta, wrapping at the ends
func (m RulesModel) moveFocus(delta int) RulesModel {
	m.FocusIndex = (m.FocusIndex + delta + ruleFieldCount) % ruleFieldCount
	for i := range m.Fields {
		if i == m.FocusIndex {
			m.Fields[i].Focus()
		} else {
			m.Fields[i].Blur()
		}
	}
	return m
}

// blurAll removes focus from every form input
func (m *RulesModel) blurAll() {
	for i := range m.Fields {
		m.Fields[i].Blur()
	}
}

// submitForm writes the form into the draft and dispatches create or
// update depending on how the draft was opened
func (m RulesModel) submitForm() (tea.Model, tea.Cmd) {
	name := strings.TrimSpace(m.Fields[ruleFieldName].Value())
	if name == "" {
		return m, nil
	}

	draft := m.Panel.Draft()
	if draft == nil {
		return m, nil
	}
	draft.Name = name
	draft.Trigger = api.Clause{
		Kind:  strings.TrimSpace(m.Fields[ruleFieldTriggerKind].Value()),
		Value: strings.TrimSpace(m.Fields[ruleFieldTriggerValue].Value()),
	}
	draft.Condition = api.Clause{
		Kind:  strings.TrimSpace(m.Fields[ruleFieldConditionKind].Value()),
		Value: strings.TrimSpace(m.Fields[ruleFieldConditionValue].Value()),
	}
	draft.Action = api.Clause{
		Kind:  strings.TrimSpace(m.Fields[ruleFieldActionKind].Value()),
		Value: strings.TrimSpace(m.Fields[ruleFieldActionValue].Value()),
	}

	if !m.Panel.Begin() {
		return m, nil
	}

	rule := *draft
	updated := m.Panel.Editing()
	client := m.client
	return m, tea.Batch(m.Spinner.Tick, func() tea.Msg {
		var saved api.AutomationRule
		var err error
		if updated {
			saved, err = client.UpdateRule(context.Background(), rule)
		} else {
			saved, err = client.CreateRule(context.Background(), rule)
		}
		return ruleSavedMsg{rule: saved, updated: updated, err: err}
	})
}

// updateInputs forwards messages to the focused form input
func (m RulesModel) updateInputs(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds [ruleFieldCount]tea.Cmd
	for i := range m.Fields {
		m.Fields[i], cmds[i] = m.Fields[i].Update(msg)
	}
	return m, tea.Batch(cmds[:]...)
}

// clampCursor keeps the list cursor inside the current item range
func (m *RulesModel) clampCursor() {
	if n := len(m.Panel.Items()); m.Cursor >= n {
		m.Cursor = n - 1
	}
	if m.Cursor < 0 {
		m.Cursor = 0
	}
}

// View renders the rules screen
func (m RulesModel) View() string {
	var content string
	var helpText string

	if m.FormOpen {
		content = m.renderForm()
		helpText = "tab: next field • enter: save (on last field) • esc: discard"
	} else {
		content = m.renderList()
		helpText = "↑/↓: move • enter/e: edit • n: new • d: delete • r: refresh • esc: back"
	}

	return RenderApplicationContainer(content, helpText, m.Width, m.Height)
}

// renderList renders the automation rule list
func (m RulesModel) renderList() string {
	var b strings.Builder

	b.WriteString(RenderTitle("Automation Rules"))
	b.WriteString("\n")

	if m.Panel.Busy() {
		b.WriteString("  ")
		b.WriteString(SpinnerStyle.Render(m.Spinner.View() + " Working..."))
		b.WriteString("\n\n")
	}

	items := m.Panel.Items()
	if len(items) == 0 && !m.Panel.Busy() {
		b.WriteString(RenderSubtitle("  No automation rules yet. Press 'n' to add one."))
		b.WriteString("\n")
	}

	for i, r := range items {
		line := fmt.Sprintf("%s: when %s then %s", r.Name, describeClause(r.Trigger), describeClause(r.Action))
		b.WriteString(RenderMenuItem(line, i == m.Cursor))
		b.WriteString("\n")
	}

	m.writeOutcome(&b)
	return b.String()
}

// renderForm renders the rule create/edit form
func (m RulesModel) renderForm() string {
	var b strings.Builder

	if m.Panel.Editing() {
		b.WriteString(RenderTitle("Edit Rule"))
	} else {
		b.WriteString(RenderTitle("New Rule"))
	}
	b.WriteString("\n")

	for i := range m.Fields {
		label := fmt.Sprintf("  %-16s", ruleFieldLabels[i]+":")
		if i == m.FocusIndex {
			b.WriteString(FocusedInputStyle.Render(label))
		} else {
			b.WriteString(BlurredInputStyle.Render(label))
		}
		b.WriteString(m.Fields[i].View())
		b.WriteString("\n")
	}

	m.writeOutcome(&b)
	return b.String()
}

// describeClause formats a clause for one-line list display
func describeClause(c api.Clause) string {
	switch {
	case c.Kind == "" && c.Value == "":
		return "(none)"
	case c.Value == "":
		return c.Kind
	case c.Kind == "":
		return c.Value
	default:
		return c.Kind + "=" + c.Value
	}
}

// writeOutcome appends the panel's single outcome message, styled by kind
func (m RulesModel) writeOutcome(b *strings.Builder) {
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
