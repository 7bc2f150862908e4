package ui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/atomicstack/reclamation-control/internal/complaint"
	"github.com/atomicstack/reclamation-control/internal/form"
	"github.com/atomicstack/reclamation-control/internal/view"
)

// NavigateMsg asks the window to present another view. An empty Title uses
// the view's default title.
type NavigateMsg struct {
	View  view.ID
	Title string
}

// AlertMsg raises a blocking alert.
type AlertMsg struct {
	Title string
	Body  string
}

// LogoutMsg clears the session and returns to the home view.
type LogoutMsg struct{}

// StatusRequestMsg asks for a complaint to move to another status.
type StatusRequestMsg struct {
	ID string
	To complaint.Status
}

type submitResultMsg struct {
	form   *form.Complaint
	result form.Result
}

type statusResultMsg struct {
	id      string
	to      complaint.Status
	updated complaint.Complaint
	err     error
}

// complaintsChangedMsg is delivered to the screen after the complaint cache
// changes.
type complaintsChangedMsg struct{}

func navigate(id view.ID, title string) tea.Cmd {
	return func() tea.Msg { return NavigateMsg{View: id, Title: title} }
}

func alert(title, body string) tea.Cmd {
	return func() tea.Msg { return AlertMsg{Title: title, Body: body} }
}

func logout() tea.Cmd {
	return func() tea.Msg { return LogoutMsg{} }
}

func requestStatus(id string, to complaint.Status) tea.Cmd {
	return func() tea.Msg { return StatusRequestMsg{ID: id, To: to} }
}
