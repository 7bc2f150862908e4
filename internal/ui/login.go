package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/atomicstack/reclamation-control/internal/accounts"
	"github.com/atomicstack/reclamation-control/internal/logging/events"
	"github.com/atomicstack/reclamation-control/internal/session"
	"github.com/atomicstack/reclamation-control/internal/view"
)

const loginFailedTitle = "Sign in failed"

// loginScreen collects credentials for one role.
type loginScreen struct {
	role      session.Role
	directory *accounts.Directory
	session   *session.Context

	username textinput.Model
	password textinput.Model
	focus    int
}

func newLoginScreen(role session.Role, dir *accounts.Directory, sess *session.Context, mode cursor.Mode) *loginScreen {
	user := textinput.New()
	user.Prompt = ""
	user.Placeholder = "username"
	user.CharLimit = 64
	user.Cursor.SetMode(mode)

	pass := textinput.New()
	pass.Prompt = ""
	pass.Placeholder = "password"
	pass.CharLimit = 128
	pass.EchoMode = textinput.EchoPassword
	pass.EchoCharacter = '•'
	pass.Cursor.SetMode(mode)

	return &loginScreen{
		role:      role,
		directory: dir,
		session:   sess,
		username:  user,
		password:  pass,
	}
}

func (s *loginScreen) Init() tea.Cmd {
	return s.username.Focus()
}

func (s *loginScreen) Update(msg tea.Msg) tea.Cmd {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return s.updateFocused(msg)
	}
	switch key.String() {
	case "esc":
		return navigate(view.Roles, "")
	case "tab", "shift+tab", "up", "down":
		return s.setFocus(1 - s.focus)
	case "enter":
		if s.focus == 0 {
			return s.setFocus(1)
		}
		return s.submit()
	}
	return s.updateFocused(msg)
}

func (s *loginScreen) updateFocused(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	if s.focus == 0 {
		s.username, cmd = s.username.Update(msg)
	} else {
		s.password, cmd = s.password.Update(msg)
	}
	return cmd
}

func (s *loginScreen) setFocus(next int) tea.Cmd {
	s.focus = next
	if next == 0 {
		s.password.Blur()
		return s.username.Focus()
	}
	s.username.Blur()
	return s.password.Focus()
}

func (s *loginScreen) submit() tea.Cmd {
	name := strings.TrimSpace(s.username.Value())
	user, err := s.directory.Authenticate(s.role, name, s.password.Value())
	if err != nil {
		events.Session.LoginFailed(string(s.role), name, err)
		s.password.Reset()
		return alert(loginFailedTitle, err.Error())
	}
	s.session.Set(user)
	events.Session.Login(user.ID, string(user.Role))
	return navigate(dashboardFor(user.Role), "")
}

func (s *loginScreen) View() string {
	label := func(text string, focused bool) string {
		if focused {
			return styles.FieldFocused.Render("› " + text)
		}
		return styles.Field.Render("  " + text)
	}
	lines := []string{
		styles.Info.Render(fmt.Sprintf("Sign in with your %s account.", strings.ToLower(s.role.Label()))),
		"",
		label("Username", s.focus == 0),
		"  " + s.username.View(),
		"",
		label("Password", s.focus == 1),
		"  " + s.password.View(),
	}
	return strings.Join(lines, "\n")
}

func (s *loginScreen) Help() string {
	return "tab switch field  enter sign in  esc back"
}
