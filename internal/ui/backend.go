package ui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/atomicstack/reclamation-control/internal/backend"
	"github.com/atomicstack/reclamation-control/internal/logging"
	"github.com/atomicstack/reclamation-control/internal/logging/events"
)

func waitForBackendEvent(w *backend.Watcher) tea.Cmd {
	return func() tea.Msg {
		evt, ok := <-w.Events()
		if !ok {
			return backendDoneMsg{}
		}
		return backendEventMsg{event: evt}
	}
}

type backendEventMsg struct {
	event backend.Event
}

type backendDoneMsg struct{}

func (m *Model) handleBackendEventMsg(msg tea.Msg) tea.Cmd {
	eventMsg, ok := msg.(backendEventMsg)
	if !ok {
		return nil
	}
	cmd := m.applyBackendEvent(eventMsg.event)
	if m.backend != nil {
		waitCmd := waitForBackendEvent(m.backend)
		if cmd != nil {
			return tea.Batch(cmd, waitCmd)
		}
		return waitCmd
	}
	return cmd
}

func (m *Model) handleBackendDoneMsg(msg tea.Msg) tea.Cmd {
	m.backend = nil
	return nil
}

func (m *Model) applyBackendEvent(evt backend.Event) tea.Cmd {
	if m.backendState == nil {
		m.backendState = make(map[backend.Kind]error)
	}
	previous := m.backendState[evt.Kind]
	m.backendState[evt.Kind] = evt.Err
	if evt.Err != nil {
		if previous == nil {
			logging.Error(fmt.Errorf("refresh %s: %w", evt.Kind, evt.Err))
		}
		m.errMsg = fmt.Sprintf("refresh %s failed: %v", evt.Kind, evt.Err)
		return nil
	}
	if previous != nil {
		m.errMsg = ""
	}

	before := len(m.complaints.Entries())
	res := m.dispatcher.Handle(evt)
	if !res.ComplaintsUpdated && !res.StatsUpdated {
		return nil
	}
	if res.ComplaintsUpdated {
		after := len(m.complaints.Entries())
		events.Complaint.Refresh(after)
		if m.verbose && after != before {
			m.setInfo(fmt.Sprintf("%d complaints (%+d)", after, after-before))
		}
	}
	return m.forward(complaintsChangedMsg{})
}
