package ui

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/cursor"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/atomicstack/reclamation-control/internal/accounts"
	"github.com/atomicstack/reclamation-control/internal/complaint"
	"github.com/atomicstack/reclamation-control/internal/format/table"
	"github.com/atomicstack/reclamation-control/internal/logging/events"
	"github.com/atomicstack/reclamation-control/internal/session"
	"github.com/atomicstack/reclamation-control/internal/state"
	uistate "github.com/atomicstack/reclamation-control/internal/ui/state"
	"github.com/atomicstack/reclamation-control/internal/view"
)

const (
	tabComplaints = "complaints"
	tabAccounts   = "accounts"
	tabStatistics = "statistics"
	tabProfile    = "profile"
)

const createdLayout = "2006-01-02 15:04"

// errWrongRole is returned when a dashboard is opened for a user of another
// role.
var errWrongRole = errors.New("dashboard not available for this role")

func dashboardTabs(role session.Role) ([]uistate.Tab, string) {
	switch role {
	case session.RoleAdmin:
		return []uistate.Tab{
			{ID: tabComplaints, Label: "Complaints"},
			{ID: tabAccounts, Label: "Accounts"},
			{ID: tabStatistics, Label: "Statistics"},
		}, tabComplaints
	case session.RoleOrganisation:
		return []uistate.Tab{
			{ID: tabComplaints, Label: "Complaints"},
			{ID: tabStatistics, Label: "Statistics"},
		}, tabComplaints
	default:
		return []uistate.Tab{
			{ID: tabComplaints, Label: "My complaints"},
			{ID: tabProfile, Label: "Profile"},
		}, tabComplaints
	}
}

// dashboardScreen shows the tabs of one role's dashboard.
type dashboardScreen struct {
	id         view.ID
	user       session.User
	tabs       *uistate.Tabs
	complaints state.ComplaintStore
	directory  *accounts.Directory
	filter     filterInput

	complaintList *uistate.List
	accountList   *uistate.List

	width  int
	height int
}

func newDashboardScreen(id view.ID, role session.Role, sess *session.Context, store state.ComplaintStore, dir *accounts.Directory, mode cursor.Mode) (*dashboardScreen, error) {
	user, err := sess.Require()
	if err != nil {
		return nil, err
	}
	if user.Role != role {
		return nil, fmt.Errorf("%w: %s signed in as %s", errWrongRole, user.Username, user.Role.Label())
	}
	tabSet, def := dashboardTabs(role)
	tabs, err := uistate.NewTabs(tabSet, def)
	if err != nil {
		return nil, err
	}
	s := &dashboardScreen{
		id:            id,
		user:          user,
		tabs:          tabs,
		complaints:    store,
		directory:     dir,
		filter:        newFilterInput(mode),
		complaintList: uistate.NewList(string(id)+":"+tabComplaints, nil),
		accountList:   uistate.NewList(string(id)+":"+tabAccounts, nil),
	}
	s.refresh()
	return s, nil
}

func (s *dashboardScreen) Init() tea.Cmd { return nil }

func (s *dashboardScreen) SetSize(width, height int) {
	s.width = width
	s.height = height
}

func (s *dashboardScreen) staff() bool {
	return s.user.Role == session.RoleAdmin || s.user.Role == session.RoleOrganisation
}

// activeList is the list shown by the active tab, if it has one.
func (s *dashboardScreen) activeList() *uistate.List {
	switch s.tabs.Active() {
	case tabComplaints:
		return s.complaintList
	case tabAccounts:
		return s.accountList
	}
	return nil
}

func (s *dashboardScreen) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case complaintsChangedMsg:
		s.refresh()
		return nil
	case tea.KeyMsg:
		return s.handleKey(msg)
	}
	return s.filter.update(msg)
}

func (s *dashboardScreen) handleKey(key tea.KeyMsg) tea.Cmd {
	list := s.activeList()
	if key.String() == "ctrl+x" {
		return logout()
	}
	if s.filter.handleKey(list, key) {
		return nil
	}
	if handleListKey(list, key, s.listRows()) {
		return nil
	}
	switch key.String() {
	case "tab":
		s.tabs.Next()
		events.Tab.Select(string(s.id), s.tabs.Active())
		return nil
	case "shift+tab":
		s.tabs.Prev()
		events.Tab.Select(string(s.id), s.tabs.Active())
		return nil
	case "/":
		if list != nil {
			return s.filter.start(list)
		}
		return nil
	case "esc":
		if list != nil && list.Filter != "" {
			list.StopFilter()
			events.Filter.Cleared(list.ID)
		}
		return nil
	}
	if idx := digitIndex(key); idx >= 0 {
		if err := s.tabs.SelectIndex(idx); err == nil {
			events.Tab.Select(string(s.id), s.tabs.Active())
		}
		return nil
	}
	if s.tabs.Active() != tabComplaints {
		return nil
	}
	switch key.String() {
	case "n":
		if s.user.Role == session.RoleUser {
			return navigate(view.ComplaintForm, "")
		}
	case "p", "r", "j":
		if !s.staff() {
			return nil
		}
		item, ok := s.complaintList.Current()
		if !ok {
			return nil
		}
		return requestStatus(item.ID, statusKeys[key.String()])
	}
	return nil
}

var statusKeys = map[string]complaint.Status{
	"p": complaint.StatusInProgress,
	"r": complaint.StatusResolved,
	"j": complaint.StatusRejected,
}

// visibleComplaints are the complaints this user may see: all of them for
// staff, their own for riders.
func (s *dashboardScreen) visibleComplaints() []complaint.Complaint {
	if s.staff() {
		return s.complaints.Entries()
	}
	return s.complaints.ByAuthor(s.user.ID)
}

func (s *dashboardScreen) refresh() {
	entries := s.visibleComplaints()
	rows := make([][]string, len(entries))
	for i, c := range entries {
		row := []string{c.CreatedAt.Local().Format(createdLayout), c.Status.Label(), c.Category.Label(), c.Title}
		if s.staff() {
			row = append(row, c.Author.Username)
		}
		rows[i] = row
	}
	cols := []table.Column{{}, {}, {}, {Max: 40}, {Max: 16}}
	labels := table.FormatColumns(rows, cols)
	items := make([]uistate.Item, len(entries))
	for i, c := range entries {
		items[i] = uistate.Item{ID: c.ID, Label: labels[i]}
	}
	s.complaintList.UpdateItems(items)

	if s.user.Role == session.RoleAdmin && s.directory != nil {
		users := s.directory.Users()
		rows := make([][]string, len(users))
		for i, u := range users {
			rows[i] = []string{strconv.FormatInt(u.ID, 10), u.Username, u.Name(), u.Role.Label(), u.Organisation}
		}
		labels := table.Format(rows, []table.Alignment{table.AlignRight})
		items := make([]uistate.Item, len(users))
		for i, u := range users {
			items[i] = uistate.Item{ID: u.Username, Label: labels[i]}
		}
		s.accountList.UpdateItems(items)
	}
}

func (s *dashboardScreen) tabBar() string {
	tabs := s.tabs.All()
	parts := make([]string, len(tabs))
	for i, tab := range tabs {
		label := fmt.Sprintf("%d %s", i+1, tab.Label)
		if s.tabs.IsActive(tab.ID) {
			parts[i] = styles.TabActive.Render(label)
		} else {
			parts[i] = styles.Tab.Render(label)
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

// listRows is the number of list rows that fit beside the tab bar, the
// filter prompt and the detail block.
func (s *dashboardScreen) listRows() int {
	if s.height <= 0 {
		return 0
	}
	rows := s.height - 3
	if s.tabs.Active() == tabComplaints {
		rows -= detailRows
	}
	if rows < 1 {
		rows = 1
	}
	return rows
}

const detailRows = 5

func (s *dashboardScreen) View() string {
	lines := []string{s.tabBar(), ""}
	var body []string
	switch {
	case s.tabs.Visible(tabComplaints):
		body = s.viewComplaints()
	case s.tabs.Visible(tabAccounts):
		body = s.viewList(s.accountList, "(no accounts)")
	case s.tabs.Visible(tabStatistics):
		body = s.viewStatistics()
	case s.tabs.Visible(tabProfile):
		body = s.viewProfile()
	}
	lines = append(lines, body...)
	return strings.Join(lines, "\n")
}

func (s *dashboardScreen) viewList(l *uistate.List, empty string) []string {
	var lines []string
	if prompt := s.filter.prompt(l); prompt != "" {
		lines = append(lines, prompt)
	}
	for _, line := range listLines(l, s.listRows(), s.width, empty) {
		lines = append(lines, renderLine(line))
	}
	return lines
}

func (s *dashboardScreen) viewComplaints() []string {
	if !s.complaints.Loaded() && len(s.complaintList.Full) == 0 {
		return []string{styles.Loading.Render("Loading complaints…")}
	}
	empty := "(no complaints)"
	if s.user.Role == session.RoleUser {
		empty = "(no complaints yet, press n to file one)"
	}
	lines := s.viewList(s.complaintList, empty)
	if item, ok := s.complaintList.Current(); ok {
		if c, found := s.complaints.Find(item.ID); found {
			lines = append(lines, "", s.detail(c))
		}
	}
	return lines
}

func (s *dashboardScreen) detail(c complaint.Complaint) string {
	status := styles.Badge(string(c.Status)).Render(c.Status.Label())
	meta := fmt.Sprintf("%s · %s · filed %s by %s", status, c.Category.Label(), c.CreatedAt.Local().Format(createdLayout), c.Author.Username)
	desc := c.Description
	if s.width > 4 {
		desc = lipgloss.NewStyle().Width(s.width - 2).MaxHeight(detailRows - 2).Render(desc)
	}
	return strings.Join([]string{styles.Header.Render(c.Title), meta, styles.Item.Render(desc)}, "\n")
}

func (s *dashboardScreen) viewStatistics() []string {
	stats := s.complaints.Stats()
	lines := []string{styles.Header.Render(fmt.Sprintf("%d complaints", stats.Total)), ""}
	rows := make([][]string, 0, len(complaint.Statuses()))
	for _, st := range complaint.Statuses() {
		rows = append(rows, []string{st.Label(), strconv.Itoa(stats.ByStatus[st])})
	}
	lines = append(lines, styles.Field.Render("By status"))
	lines = append(lines, table.Format(rows, []table.Alignment{table.AlignLeft, table.AlignRight})...)
	rows = rows[:0]
	for _, cat := range complaint.Categories() {
		rows = append(rows, []string{cat.Label(), strconv.Itoa(stats.ByCategory[cat])})
	}
	lines = append(lines, "", styles.Field.Render("By category"))
	lines = append(lines, table.Format(rows, []table.Alignment{table.AlignLeft, table.AlignRight})...)
	return lines
}

func (s *dashboardScreen) viewProfile() []string {
	u := s.user
	rows := [][]string{
		{"Name", u.Name()},
		{"Username", u.Username},
		{"Role", u.Role.Label()},
	}
	if u.Organisation != "" {
		rows = append(rows, []string{"Organisation", u.Organisation})
	}
	counts := map[complaint.Status]int{}
	own := s.complaints.ByAuthor(u.ID)
	for _, c := range own {
		counts[c.Status]++
	}
	rows = append(rows, []string{"Complaints", strconv.Itoa(len(own))})
	for _, st := range complaint.Statuses() {
		if counts[st] > 0 {
			rows = append(rows, []string{"  " + st.Label(), strconv.Itoa(counts[st])})
		}
	}
	return table.Format(rows, nil)
}

func (s *dashboardScreen) Help() string {
	parts := []string{"tab/1-9 switch tab"}
	if s.activeList() != nil {
		parts = append(parts, "↑/↓ move", "/ filter")
	}
	if s.tabs.Active() == tabComplaints {
		if s.user.Role == session.RoleUser {
			parts = append(parts, "n new complaint")
		} else {
			parts = append(parts, "p in progress", "r resolve", "j reject")
		}
	}
	parts = append(parts, "ctrl+x sign out")
	return strings.Join(parts, "  ")
}
