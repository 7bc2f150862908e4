// Package ui contains the Bubble Tea program behind the complaint desk.
// The Model owns one window: a header, the current screen, an optional
// complaint form drawn over it, the alert queue and a status line.
//
// Message flow:
//   - Bubble Tea invokes Model.Update with incoming messages.
//   - Key presses go to the first open alert, then to the complaint form.
//     An open alert swallows every key except the ones that dismiss it.
//   - Everything else is routed through a typed handler registry so each
//     tea.Msg is handled by a focused function. Messages the model does not
//     own are forwarded to the current screen.
//
// Navigation:
//   - Screens never replace themselves. They return NavigateMsg, LogoutMsg or
//     StatusRequestMsg commands and the model acts on them.
//   - Model.Present resolves a view id through internal/view, builds a fresh
//     screen and installs it. Views with secondary chrome open over the
//     current screen instead. A failed presentation keeps the current screen
//     and raises an alert.
//
// State ownership:
//   - The signed-in user lives in internal/session and is shared with every
//     screen.
//   - Cached complaints live in internal/state and are kept current by the
//     dispatcher, which applies backend.Watcher events.
//   - Writes to the complaint service run through internal/ui/command so they
//     execute off the event loop and are traced.
package ui
