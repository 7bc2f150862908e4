package ui

import (
	"context"
	"reflect"
	"time"

	"github.com/charmbracelet/bubbles/cursor"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/atomicstack/reclamation-control/internal/accounts"
	"github.com/atomicstack/reclamation-control/internal/backend"
	"github.com/atomicstack/reclamation-control/internal/complaint"
	"github.com/atomicstack/reclamation-control/internal/data/dispatcher"
	"github.com/atomicstack/reclamation-control/internal/form"
	"github.com/atomicstack/reclamation-control/internal/logging/events"
	"github.com/atomicstack/reclamation-control/internal/session"
	"github.com/atomicstack/reclamation-control/internal/state"
	"github.com/atomicstack/reclamation-control/internal/theme"
	"github.com/atomicstack/reclamation-control/internal/ui/command"
	"github.com/atomicstack/reclamation-control/internal/view"
)

var styles = theme.Default()

type msgHandler func(tea.Msg) tea.Cmd

// Config carries the collaborators and display settings of the window.
type Config struct {
	Session  *session.Context
	Service  complaint.Service
	Accounts *accounts.Directory
	Watcher  *backend.Watcher

	Width      int
	Height     int
	ShowFooter bool
	Verbose    bool
	Start      view.ID

	// CursorMode applies to every text input and the filter caret. Tests use
	// cursor.CursorStatic so no blink timers are scheduled.
	CursorMode cursor.Mode
	Now        func() time.Time
}

// Model implements the Bubble Tea model for the complaint desk window. It
// owns the current screen, the alert queue and the complaint form overlay.
type Model struct {
	ctx      context.Context
	session  *session.Context
	service  complaint.Service
	accounts *accounts.Directory
	now      func() time.Time

	registry *view.Registry
	screen   view.Screen
	current  Handle
	seq      uint64
	chrome   view.Chrome
	alt      bool
	title    string
	pending  []tea.Cmd

	alerts     []Alert
	form       *complaintWindow
	formHandle Handle
	submitting bool

	infoMsg     string
	infoExpire  time.Time
	errMsg      string
	width       int
	height      int
	fixedWidth  bool
	fixedHeight bool
	showFooter  bool
	verbose     bool
	cursorMode  cursor.Mode

	backend      *backend.Watcher
	backendState map[backend.Kind]error
	complaints   state.ComplaintStore
	dispatcher   *dispatcher.Dispatcher
	bus          *command.Bus

	handlers map[reflect.Type]msgHandler
}

// NewModel builds the window and presents the start view. When the start
// view cannot be presented the home view is used instead.
func NewModel(cfg Config) *Model {
	sess := cfg.Session
	if sess == nil {
		sess = session.New()
	}
	dir := cfg.Accounts
	if dir == nil {
		dir = accounts.Demo()
	}
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	complaints := state.NewComplaintStore()
	m := &Model{
		ctx:          context.Background(),
		session:      sess,
		service:      cfg.Service,
		accounts:     dir,
		now:          now,
		backend:      cfg.Watcher,
		backendState: map[backend.Kind]error{},
		complaints:   complaints,
		dispatcher:   dispatcher.New(complaints),
		bus:          command.New(),
		showFooter:   cfg.ShowFooter,
		verbose:      cfg.Verbose,
		cursorMode:   cfg.CursorMode,
	}
	if cfg.Width > 0 {
		m.width = cfg.Width
		m.fixedWidth = true
	}
	if cfg.Height > 0 {
		m.height = cfg.Height
		m.fixedHeight = true
	}
	m.registry = m.buildRegistry()
	m.registerHandlers()

	start := cfg.Start
	if start == "" {
		start = view.Home
	}
	if _, err := m.Present(start, ""); err != nil && start != view.Home {
		m.Present(view.Home, "")
	}
	return m
}

// Init is part of the tea.Model interface.
func (m *Model) Init() tea.Cmd {
	cmds := m.drainPending()
	if m.backend != nil {
		cmds = append(cmds, waitForBackendEvent(m.backend))
	}
	if len(cmds) == 0 {
		return nil
	}
	return tea.Batch(cmds...)
}

// Update responds to Bubble Tea messages.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	cmds := make([]tea.Cmd, 0, 4)
	if handled, cmd := m.handleOverlays(msg); handled {
		if cmd != nil {
			cmds = append(cmds, cmd)
		}
		return m, m.finishUpdate(cmds)
	}

	if handler := m.handlerFor(msg); handler != nil {
		if cmd := handler(msg); cmd != nil {
			cmds = append(cmds, cmd)
		}
		return m, m.finishUpdate(cmds)
	}

	if cmd := m.forward(msg); cmd != nil {
		cmds = append(cmds, cmd)
	}
	return m, m.finishUpdate(cmds)
}

// handleOverlays gives the alert and then the form first claim on key
// presses. An open alert swallows every key except the ones that dismiss it.
func (m *Model) handleOverlays(msg tea.Msg) (bool, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return false, nil
	}
	if key.Type == tea.KeyCtrlC {
		return false, nil
	}
	if len(m.alerts) > 0 {
		switch key.String() {
		case "enter", "esc", " ":
			m.dismissAlert()
		}
		return true, nil
	}
	if m.form != nil {
		return m.handleComplaintForm(key)
	}
	return false, nil
}

func (m *Model) registerHandlers() {
	m.handlers = map[reflect.Type]msgHandler{
		reflect.TypeOf(tea.KeyMsg{}):           m.handleKeyMsg,
		reflect.TypeOf(tea.WindowSizeMsg{}):    m.handleWindowSizeMsg,
		reflect.TypeOf(NavigateMsg{}):          m.handleNavigateMsg,
		reflect.TypeOf(AlertMsg{}):             m.handleAlertMsg,
		reflect.TypeOf(LogoutMsg{}):            m.handleLogoutMsg,
		reflect.TypeOf(StatusRequestMsg{}):     m.handleStatusRequestMsg,
		reflect.TypeOf(submitResultMsg{}):      m.handleSubmitResultMsg,
		reflect.TypeOf(statusResultMsg{}):      m.handleStatusResultMsg,
		reflect.TypeOf(backendEventMsg{}):      m.handleBackendEventMsg,
		reflect.TypeOf(backendDoneMsg{}):       m.handleBackendDoneMsg,
		reflect.TypeOf(complaintsChangedMsg{}): m.forward,
	}
}

func (m *Model) handlerFor(msg tea.Msg) msgHandler {
	if msg == nil || m.handlers == nil {
		return nil
	}
	t := reflect.TypeOf(msg)
	if handler, ok := m.handlers[t]; ok {
		return handler
	}
	if t.Kind() == reflect.Ptr {
		if handler, ok := m.handlers[t.Elem()]; ok {
			return handler
		}
	}
	return nil
}

func (m *Model) handleKeyMsg(msg tea.Msg) tea.Cmd {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}
	if key.Type == tea.KeyCtrlC {
		events.App.Stop("interrupt")
		return tea.Quit
	}
	m.errMsg = ""
	return m.forward(msg)
}

// forward hands a message the model does not own to the open form and the
// current screen.
func (m *Model) forward(msg tea.Msg) tea.Cmd {
	var cmds []tea.Cmd
	if m.form != nil {
		if _, isKey := msg.(tea.KeyMsg); !isKey {
			cmds = append(cmds, m.form.Update(msg))
		}
	}
	if m.screen != nil {
		cmds = append(cmds, m.screen.Update(msg))
	}
	return tea.Batch(cmds...)
}

func (m *Model) queue(cmd tea.Cmd) {
	if cmd != nil {
		m.pending = append(m.pending, cmd)
	}
}

func (m *Model) drainPending() []tea.Cmd {
	cmds := m.pending
	m.pending = nil
	return cmds
}

func (m *Model) finishUpdate(cmds []tea.Cmd) tea.Cmd {
	cmds = append(cmds, m.drainPending()...)
	if len(cmds) == 0 {
		return nil
	}
	return tea.Batch(cmds...)
}

// Current reports the view presented last.
func (m *Model) Current() Handle {
	return m.current
}

// Session exposes the session context shared with the screens.
func (m *Model) Session() *session.Context {
	return m.session
}

// Alerts returns the alerts waiting to be dismissed, oldest first.
func (m *Model) Alerts() []Alert {
	return append([]Alert(nil), m.alerts...)
}

// Form returns the open complaint form, if any.
func (m *Model) Form() *form.Complaint {
	if m.form == nil {
		return nil
	}
	return m.form.form
}

// Stop releases the watcher.
func (m *Model) Stop() {
	if m.backend != nil {
		m.backend.Stop()
	}
}
