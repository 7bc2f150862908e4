package ui

import (
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/atomicstack/reclamation-control/internal/complaint"
	"github.com/atomicstack/reclamation-control/internal/form"
	"github.com/atomicstack/reclamation-control/internal/logging/events"
	"github.com/atomicstack/reclamation-control/internal/view"
)

var errNoService = errors.New("no complaint service configured")

// complaintWindow hosts the complaint form as a secondary window.
type complaintWindow struct {
	form *form.Complaint
}

func newComplaintWindow(f *form.Complaint) *complaintWindow {
	return &complaintWindow{form: f}
}

func (w *complaintWindow) Init() tea.Cmd { return nil }

func (w *complaintWindow) Update(msg tea.Msg) tea.Cmd {
	cmd, _, _ := w.form.Update(msg)
	return cmd
}

func (w *complaintWindow) View() string { return w.form.View() }

func (m *Model) presentSecondary(id view.ID, title string, screen view.Screen) (Handle, error) {
	win, ok := screen.(*complaintWindow)
	if !ok {
		return m.presentFailed(id, fmt.Errorf("%w: %T", errNotSecondary, screen))
	}
	m.seq++
	m.form = win
	m.formHandle = Handle{View: id, Title: title, Seq: m.seq}
	m.submitting = false
	m.setWindowTitle(title)
	m.queue(win.Init())
	events.Nav.Present(string(id), title, m.seq)
	if user, ok := m.session.Current(); ok {
		events.Form.Open(user.ID)
	}
	return m.formHandle, nil
}

// handleComplaintForm routes a key press to the open form. Validation runs
// here; persistence is handed to the command bus.
func (m *Model) handleComplaintForm(key tea.KeyMsg) (bool, tea.Cmd) {
	if m.form == nil {
		return false, nil
	}
	f := m.form.form
	cmd, submit, cancel := f.Update(key)
	if cancel {
		if m.submitting {
			return true, cmd
		}
		f.Cancel()
		m.closeForm()
		return true, cmd
	}
	if !submit {
		return true, cmd
	}
	if m.submitting {
		return true, cmd
	}
	draft, err := f.Draft()
	if err != nil {
		res := form.InvalidResult(err)
		m.pushAlert(res.AlertTitle(), res.Err.Error())
		return true, cmd
	}
	m.submitting = true
	return true, tea.Batch(cmd, m.submitComplaint(f, draft))
}

func (m *Model) closeForm() {
	m.form = nil
	m.submitting = false
	m.formHandle = Handle{}
	m.setWindowTitle(m.current.Title)
}

func (m *Model) handleSubmitResultMsg(msg tea.Msg) tea.Cmd {
	res, ok := msg.(submitResultMsg)
	if !ok {
		return nil
	}
	if m.form == nil || m.form.form != res.form {
		return nil
	}
	m.submitting = false
	if !res.result.Submitted() {
		events.Action.Error(res.result.Err)
		m.pushAlert(res.result.AlertTitle(), res.result.Err.Error())
		return nil
	}
	res.form.Close()
	m.closeForm()
	m.complaints.Upsert(res.result.Complaint)
	if m.backend != nil {
		m.backend.Refresh()
	}
	info := fmt.Sprintf("Complaint %q submitted", res.result.Complaint.Title)
	events.Action.Success(info)
	m.setInfo(info)
	return m.forward(complaintsChangedMsg{})
}

func (m *Model) buildComplaintWindow() (view.Screen, error) {
	if _, err := m.session.Require(); err != nil {
		return nil, err
	}
	if m.service == nil {
		return nil, errNoService
	}
	f := form.NewComplaint(m.session, m.service, m.now)
	f.InitializeOptions(complaint.Categories())
	f.SetCursorMode(m.cursorMode)
	f.SetWidth(m.formWidth())
	return newComplaintWindow(f), nil
}
