package ui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/atomicstack/reclamation-control/internal/session"
	"github.com/atomicstack/reclamation-control/internal/ui/state"
	"github.com/atomicstack/reclamation-control/internal/view"
)

// menuScreen is a single list of choices, used by the home and role
// selection views.
type menuScreen struct {
	intro  []string
	list   *state.List
	choose func(state.Item) tea.Cmd
	back   tea.Cmd
	width  int
	height int
}

func (s *menuScreen) Init() tea.Cmd { return nil }

func (s *menuScreen) SetSize(width, height int) {
	s.width = width
	s.height = height
}

func (s *menuScreen) Update(msg tea.Msg) tea.Cmd {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}
	if handleListKey(s.list, key, s.visibleRows()) {
		return nil
	}
	switch key.String() {
	case "k":
		s.list.MoveCursor(-1)
	case "j":
		s.list.MoveCursor(1)
	case "enter":
		if item, ok := s.list.Current(); ok && s.choose != nil {
			return s.choose(item)
		}
	case "esc", "q":
		return s.back
	default:
		if idx := digitIndex(key); idx >= 0 && idx < len(s.list.Items) {
			s.list.Cursor = idx
			return s.choose(s.list.Items[idx])
		}
	}
	return nil
}

func (s *menuScreen) visibleRows() int {
	if s.height <= 0 {
		return 0
	}
	rows := s.height - len(s.intro) - 1
	if rows < 1 {
		rows = 1
	}
	return rows
}

func (s *menuScreen) View() string {
	lines := make([]string, 0, len(s.intro)+len(s.list.Items)+1)
	for _, line := range s.intro {
		lines = append(lines, styles.Info.Render(line))
	}
	if len(s.intro) > 0 {
		lines = append(lines, "")
	}
	for _, line := range listLines(s.list, s.visibleRows(), s.width, "(nothing to choose)") {
		lines = append(lines, renderLine(line))
	}
	return strings.Join(lines, "\n")
}

func (s *menuScreen) Help() string {
	if s.back == nil {
		return "↑/↓ move  enter select"
	}
	return "↑/↓ move  enter select  esc back"
}

// digitIndex maps the keys 1..9 to list indices.
func digitIndex(key tea.KeyMsg) int {
	if key.Type != tea.KeyRunes || len(key.Runes) != 1 {
		return -1
	}
	r := key.Runes[0]
	if r < '1' || r > '9' {
		return -1
	}
	return int(r - '1')
}

func newHomeScreen() *menuScreen {
	items := []state.Item{
		{ID: "sign-in", Label: "Sign in"},
		{ID: "quit", Label: "Quit"},
	}
	return &menuScreen{
		intro: []string{
			"File and follow up transport complaints.",
			"Riders report delays, cancellations and other problems;",
			"operators and administrators track them to resolution.",
		},
		list: state.NewList("home", items),
		choose: func(item state.Item) tea.Cmd {
			if item.ID == "quit" {
				return tea.Quit
			}
			return navigate(view.Roles, "")
		},
		back: tea.Quit,
	}
}

func newRolesScreen() *menuScreen {
	roles := session.Roles()
	items := make([]state.Item, len(roles))
	for i, role := range roles {
		items[i] = state.Item{ID: string(role), Label: role.Label()}
	}
	return &menuScreen{
		intro: []string{"Sign in as:"},
		list:  state.NewList("roles", items),
		choose: func(item state.Item) tea.Cmd {
			return navigate(loginFor(session.Role(item.ID)), "")
		},
		back: navigate(view.Home, ""),
	}
}
