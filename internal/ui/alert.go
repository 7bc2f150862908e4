package ui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/atomicstack/reclamation-control/internal/logging/events"
)

// Alert is a blocking message box. Alerts queue and are shown one at a time.
type Alert struct {
	Title string
	Body  string
}

func (m *Model) pushAlert(title, body string) {
	m.alerts = append(m.alerts, Alert{Title: title, Body: body})
	events.Nav.Alert(title)
}

func (m *Model) dismissAlert() {
	if len(m.alerts) == 0 {
		return
	}
	m.alerts = m.alerts[1:]
}

func (m *Model) handleAlertMsg(msg tea.Msg) tea.Cmd {
	a, ok := msg.(AlertMsg)
	if !ok {
		return nil
	}
	m.pushAlert(a.Title, a.Body)
	return nil
}

func (m *Model) renderAlert(a Alert) string {
	width := m.width - 8
	if width < 20 {
		width = 40
	}
	lines := []string{styles.AlertTitle.Render(a.Title), ""}
	if body := strings.TrimSpace(a.Body); body != "" {
		lines = append(lines, lipgloss.NewStyle().Width(width).Render(body), "")
	}
	lines = append(lines, styles.Footer.Render("enter ok"))
	box := styles.Alert.Render(strings.Join(lines, "\n"))
	if len(m.alerts) > 1 {
		box = lipgloss.JoinVertical(lipgloss.Left, box, styles.Info.Render(pluralAlerts(len(m.alerts)-1)))
	}
	return box
}

func pluralAlerts(n int) string {
	if n == 1 {
		return "1 more alert"
	}
	return fmt.Sprintf("%d more alerts", n)
}
