// Package tui implements the terminal user interface for the homectl
// control panel.
//
// This package provides an interactive, full-screen TUI for signing in to
// the Smart Home Tech cloud API and controlling the home from the
// terminal. Built using the Bubble Tea framework, it follows the Elm
// architecture with immutable state updates and a clean Model-Update-View
// pattern.
//
// # Architecture
//
// The TUI is organized around a top-level coordinator (AppModel) that
// routes messages to the active screen:
//   - Login / Register: Credential entry, gated entry point to everything else
//   - Dashboard: Category menu for the signed-in user
//   - Devices: Device list with create, delete and per-type control actions
//   - Rules: Automation rule list with a full create/edit form
//   - Door / Camera / TV / Weather: Action panels that dispatch control
//     intents without maintaining a server-backed list
//
// All screens use a unified container pattern (RenderApplicationContainer)
// for consistent layout with header, content area and context-sensitive
// footer.
//
// # Framework Components
//
// The TUI leverages Bubble Tea framework components throughout:
//   - bubbles/spinner: In-flight request indicators
//   - bubbles/textinput: Credential, form and prompt entry
//   - lipgloss: Styling and layout
//
// # Usage Example
//
//	client := api.NewClient(baseURL, sess)
//	app := tui.NewAppModel(client, sess)
//	program := tea.NewProgram(app, tea.WithAltScreen())
//
//	if _, err := program.Run(); err != nil {
//	    log.Fatal(err)
//	}
//
// # Screen Flow
//
// A session without a stored token starts at the login screen; one with a
// token starts at the dashboard. Registration returns to login after a
// short delay, mirroring the hosted web client. Any screen whose request
// comes back with an authentication failure clears the stored token and
// drops the user back to login with a notice.
//
// # State Management
//
// List-backed screens (Devices, Rules) delegate their lifecycle to
// panel.List: one in-flight operation at a time, wholesale list
// replacement on fetch, targeted append/replace/remove on confirmed
// writes, and full state retention on failure. Action panels (Door,
// Camera, TV, Weather) keep only local display state; the door flips its
// displayed status when an action is dispatched and flips it back if the
// request fails.
//
// # Error Handling
//
// Every failed request surfaces exactly one user-facing message, chosen
// by the api package's failure classification: the server's own message
// when it rejected the request, a fixed connectivity message when no
// response arrived, and a generic message for everything else. Screens
// never show stack traces or wrapped error chains.
//
// # Thread Safety
//
// The Bubble Tea framework ensures thread safety through message passing.
// All model updates occur in a single goroutine; network calls run in
// commands and report back as messages.
package tui
