package ui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/atomicstack/reclamation-control/internal/complaint"
	"github.com/atomicstack/reclamation-control/internal/form"
	"github.com/atomicstack/reclamation-control/internal/logging"
	"github.com/atomicstack/reclamation-control/internal/logging/events"
	"github.com/atomicstack/reclamation-control/internal/ui/command"
)

const statusFailedTitle = "Could not update complaint"

func (m *Model) submitComplaint(f *form.Complaint, draft complaint.Complaint) tea.Cmd {
	return m.bus.Execute(m.ctx, command.Request{
		ID:    "complaint:create",
		Label: draft.Title,
		Handler: func(ctx context.Context) tea.Msg {
			return submitResultMsg{form: f, result: f.Persist(ctx, draft)}
		},
	})
}

func (m *Model) handleStatusRequestMsg(msg tea.Msg) tea.Cmd {
	req, ok := msg.(StatusRequestMsg)
	if !ok {
		return nil
	}
	if _, err := m.session.Require(); err != nil {
		m.pushAlert(statusFailedTitle, err.Error())
		return nil
	}
	if m.service == nil {
		m.pushAlert(statusFailedTitle, errNoService.Error())
		return nil
	}
	if current, ok := m.complaints.Find(req.ID); ok && !current.Status.CanTransition(req.To) {
		err := complaint.TransitionError(current.Status, req.To)
		events.Complaint.StatusFailed(req.ID, string(req.To), err)
		m.pushAlert(statusFailedTitle, err.Error())
		return nil
	}
	svc := m.service
	return m.bus.Execute(m.ctx, command.Request{
		ID:    "complaint:status",
		Label: fmt.Sprintf("%s → %s", req.ID, req.To),
		Handler: func(ctx context.Context) tea.Msg {
			updated, err := svc.UpdateStatus(ctx, req.ID, req.To)
			return statusResultMsg{id: req.ID, to: req.To, updated: updated, err: err}
		},
	})
}

func (m *Model) handleStatusResultMsg(msg tea.Msg) tea.Cmd {
	res, ok := msg.(statusResultMsg)
	if !ok {
		return nil
	}
	if res.err != nil {
		logging.Error(fmt.Errorf("update complaint %s: %w", res.id, res.err))
		events.Complaint.StatusFailed(res.id, string(res.to), res.err)
		m.pushAlert(statusFailedTitle, res.err.Error())
		return nil
	}
	from := ""
	if previous, ok := m.complaints.Find(res.id); ok {
		from = string(previous.Status)
	}
	m.complaints.Upsert(res.updated)
	events.Complaint.StatusChange(res.id, from, string(res.updated.Status))
	if m.backend != nil {
		m.backend.Refresh()
	}
	m.setInfo(fmt.Sprintf("%q is now %s", res.updated.Title, res.updated.Status.Label()))
	return m.forward(complaintsChangedMsg{})
}
