package ui

import (
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/atomicstack/reclamation-control/internal/logging"
	"github.com/atomicstack/reclamation-control/internal/logging/events"
	"github.com/atomicstack/reclamation-control/internal/session"
	"github.com/atomicstack/reclamation-control/internal/view"
)

// Handle identifies one presentation of a view in the window. Seq grows by
// one with every successful Present.
type Handle struct {
	View  view.ID
	Title string
	Seq   uint64
}

var (
	errNoScreen     = errors.New("builder returned no screen")
	errNotSecondary = errors.New("screen cannot open as a secondary window")
)

const navigationFailedTitle = "Navigation failed"

// Present replaces the window's screen with a freshly built instance of the
// view id. An empty title selects the view's default title. On failure the
// current screen is kept, the error is logged and an alert is raised.
func (m *Model) Present(id view.ID, title string) (Handle, error) {
	desc, err := m.registry.Resolve(id)
	if err != nil {
		return m.presentFailed(id, err)
	}
	screen, err := desc.Build()
	if err != nil {
		return m.presentFailed(id, err)
	}
	if screen == nil {
		return m.presentFailed(id, errNoScreen)
	}
	if title == "" {
		title = desc.Title
	}
	if desc.Chrome.Secondary {
		return m.presentSecondary(id, title, screen)
	}

	m.seq++
	m.current = Handle{View: id, Title: title, Seq: m.seq}
	m.screen = screen
	m.form = nil
	m.submitting = false
	m.applyChrome(desc.Chrome)
	m.forceClearInfo()
	m.errMsg = ""
	if sized, ok := screen.(sizedScreen); ok {
		sized.SetSize(m.contentSize())
	}
	m.setWindowTitle(title)
	m.queue(screen.Init())
	events.Nav.Present(string(id), title, m.seq)
	return m.current, nil
}

func (m *Model) presentFailed(id view.ID, err error) (Handle, error) {
	err = fmt.Errorf("present %s: %w", id, err)
	logging.Error(err)
	events.Nav.Failed(string(id), err)
	m.pushAlert(navigationFailedTitle, err.Error())
	return Handle{}, err
}

func (m *Model) setWindowTitle(title string) {
	if title == m.title {
		return
	}
	m.title = title
	m.queue(tea.SetWindowTitle(title))
}

func (m *Model) applyChrome(chrome view.Chrome) {
	m.chrome = chrome
	switch {
	case chrome.FullScreen && !m.alt:
		m.alt = true
		m.queue(tea.EnterAltScreen)
	case !chrome.FullScreen && m.alt:
		m.alt = false
		m.queue(tea.ExitAltScreen)
	}
}

func (m *Model) handleNavigateMsg(msg tea.Msg) tea.Cmd {
	nav, ok := msg.(NavigateMsg)
	if !ok {
		return nil
	}
	m.Present(nav.View, nav.Title)
	return nil
}

func (m *Model) handleLogoutMsg(msg tea.Msg) tea.Cmd {
	if user, ok := m.session.Current(); ok {
		events.Session.Logout(user.ID)
	}
	m.session.Clear()
	m.form = nil
	m.submitting = false
	m.Present(view.Home, "")
	return nil
}

// dashboardFor maps a role to its dashboard view.
func dashboardFor(role session.Role) view.ID {
	switch role {
	case session.RoleAdmin:
		return view.DashboardAdmin
	case session.RoleOrganisation:
		return view.DashboardOrganisation
	default:
		return view.DashboardUser
	}
}

// loginFor maps a role to its login view.
func loginFor(role session.Role) view.ID {
	switch role {
	case session.RoleAdmin:
		return view.LoginAdmin
	case session.RoleOrganisation:
		return view.LoginOrganisation
	default:
		return view.LoginUser
	}
}
