// Package form implements the complaint submission form: input collection,
// validation, draft construction and hand-off to the complaint service.
package form

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/atomicstack/reclamation-control/internal/complaint"
	"github.com/atomicstack/reclamation-control/internal/logging/events"
	"github.com/atomicstack/reclamation-control/internal/session"
)

// Outcome classifies a submission attempt.
type Outcome int

const (
	OutcomeSubmitted Outcome = iota + 1
	OutcomeInvalid
	OutcomeFailed
)

func (o Outcome) String() string {
	switch o {
	case OutcomeSubmitted:
		return "submitted"
	case OutcomeInvalid:
		return "invalid"
	case OutcomeFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Result is the explicit outcome of a submission. Complaint is set only when
// Outcome is OutcomeSubmitted; Err is set otherwise.
type Result struct {
	Outcome   Outcome
	Complaint complaint.Complaint
	Err       error
}

// Submitted reports whether the complaint was stored.
func (r Result) Submitted() bool { return r.Outcome == OutcomeSubmitted }

// AlertTitle returns the heading used when surfacing a failed result.
func (r Result) AlertTitle() string {
	switch r.Outcome {
	case OutcomeInvalid:
		return "Missing information"
	case OutcomeFailed:
		return "Could not submit complaint"
	default:
		return ""
	}
}

type field int

const (
	fieldTitle field = iota
	fieldDescription
	fieldCategory
	fieldCount
)

// Complaint is the controller behind the "new complaint" window.
type Complaint struct {
	session *session.Context
	service complaint.Creator
	now     func() time.Time

	title       textinput.Model
	description textarea.Model
	options     []complaint.Category
	selected    int
	focus       field
	closed      bool
}

// NewComplaint builds an empty form. now defaults to time.Now.
func NewComplaint(sess *session.Context, svc complaint.Creator, now func() time.Time) *Complaint {
	if now == nil {
		now = time.Now
	}
	ti := textinput.New()
	ti.Placeholder = "Short summary"
	ti.CharLimit = 120
	ti.Prompt = ""
	ti.Focus()

	ta := textarea.New()
	ta.Placeholder = "What happened, where and when?"
	ta.CharLimit = 2000
	ta.ShowLineNumbers = false
	ta.SetHeight(4)
	ta.SetWidth(60)
	ta.Blur()

	return &Complaint{
		session:     sess,
		service:     svc,
		now:         now,
		title:       ti,
		description: ta,
		selected:    -1,
	}
}

// SetCursorMode applies mode to both text inputs.
func (f *Complaint) SetCursorMode(mode cursor.Mode) tea.Cmd {
	return tea.Batch(f.title.Cursor.SetMode(mode), f.description.Cursor.SetMode(mode))
}

// SetWidth sizes the text inputs to fit w columns.
func (f *Complaint) SetWidth(w int) {
	if w <= 0 {
		return
	}
	f.title.Width = w
	f.description.SetWidth(w)
}

// InitializeOptions fills the category choice in the order given, dropping
// duplicates and unknown values. Any previous selection is cleared.
func (f *Complaint) InitializeOptions(values []complaint.Category) {
	seen := make(map[complaint.Category]struct{}, len(values))
	options := make([]complaint.Category, 0, len(values))
	for _, v := range values {
		if !v.Valid() {
			continue
		}
		if _, dup := seen[v]; dup {
			continue
		}
		seen[v] = struct{}{}
		options = append(options, v)
	}
	f.options = options
	f.selected = -1
}

// Options returns the categories offered by the choice control.
func (f *Complaint) Options() []complaint.Category {
	return append([]complaint.Category(nil), f.options...)
}

func (f *Complaint) SetTitle(s string)       { f.title.SetValue(s) }
func (f *Complaint) SetDescription(s string) { f.description.SetValue(s) }
func (f *Complaint) Title() string           { return strings.TrimSpace(f.title.Value()) }
func (f *Complaint) Description() string     { return strings.TrimSpace(f.description.Value()) }

// SelectCategory picks one of the offered categories.
func (f *Complaint) SelectCategory(c complaint.Category) error {
	for i, opt := range f.options {
		if opt == c {
			f.selected = i
			return nil
		}
	}
	return fmt.Errorf("category %s is not offered", c)
}

// Category returns the selected category, if any.
func (f *Complaint) Category() (complaint.Category, bool) {
	if f.selected < 0 || f.selected >= len(f.options) {
		return "", false
	}
	return f.options[f.selected], true
}

// Draft validates the inputs and builds an unsaved complaint stamped with the
// session user, the pending status and the current time. Validation problems
// are returned as *complaint.ValidationError; an absent session as
// session.ErrNotAuthenticated.
func (f *Complaint) Draft() (complaint.Complaint, error) {
	category, _ := f.Category()
	if err := complaint.Validate(f.Title(), f.Description(), category); err != nil {
		return complaint.Complaint{}, err
	}
	user, err := f.session.Require()
	if err != nil {
		return complaint.Complaint{}, err
	}
	return complaint.Complaint{
		Title:       f.Title(),
		Description: f.Description(),
		Category:    category,
		Status:      complaint.StatusPending,
		CreatedAt:   f.now(),
		Author:      complaint.AuthorFrom(user),
	}, nil
}

// Persist hands a draft to the service. It does not touch form state, so it
// is safe to run from a tea.Cmd.
func (f *Complaint) Persist(ctx context.Context, draft complaint.Complaint) Result {
	stored, err := f.service.Create(ctx, draft)
	if err != nil {
		events.Form.Failed(err)
		return Result{Outcome: OutcomeFailed, Err: err}
	}
	events.Form.Submitted(stored.ID, string(stored.Category))
	return Result{Outcome: OutcomeSubmitted, Complaint: stored}
}

// Submit validates, persists and closes the form on success.
func (f *Complaint) Submit(ctx context.Context) Result {
	draft, err := f.Draft()
	if err != nil {
		return InvalidResult(err)
	}
	res := f.Persist(ctx, draft)
	if res.Submitted() {
		f.Close()
	}
	return res
}

// InvalidResult wraps a Draft error. An absent session is reported as a
// failure rather than a field problem.
func InvalidResult(err error) Result {
	events.Form.Invalid(err)
	if errors.Is(err, session.ErrNotAuthenticated) {
		return Result{Outcome: OutcomeFailed, Err: err}
	}
	return Result{Outcome: OutcomeInvalid, Err: err}
}

// Cancel discards all input and closes the form.
func (f *Complaint) Cancel() {
	f.title.Reset()
	f.description.Reset()
	f.selected = -1
	f.Close()
	events.Form.Cancel()
}

// Close marks the form window closed.
func (f *Complaint) Close() { f.closed = true }

// Closed reports whether the form window has been closed.
func (f *Complaint) Closed() bool { return f.closed }

// Update handles a key press. submit is true when the user asked to submit,
// cancel when they asked to discard the form.
func (f *Complaint) Update(msg tea.Msg) (cmd tea.Cmd, submit bool, cancel bool) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return f.updateFocused(msg), false, false
	}
	switch key.String() {
	case "esc":
		return nil, false, true
	case "ctrl+s":
		return nil, true, false
	case "tab":
		return f.setFocus((f.focus + 1) % fieldCount), false, false
	case "shift+tab":
		return f.setFocus((f.focus + fieldCount - 1) % fieldCount), false, false
	}
	if f.focus == fieldCategory {
		switch key.String() {
		case "left", "up", "h", "k":
			f.cycleCategory(-1)
		case "right", "down", "l", "j", " ":
			f.cycleCategory(1)
		case "enter":
			return nil, true, false
		}
		return nil, false, false
	}
	if f.focus == fieldTitle && key.String() == "enter" {
		return f.setFocus(fieldDescription), false, false
	}
	return f.updateFocused(msg), false, false
}

func (f *Complaint) updateFocused(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	switch f.focus {
	case fieldTitle:
		f.title, cmd = f.title.Update(msg)
	case fieldDescription:
		f.description, cmd = f.description.Update(msg)
	}
	return cmd
}

func (f *Complaint) setFocus(next field) tea.Cmd {
	f.focus = next
	f.title.Blur()
	f.description.Blur()
	switch next {
	case fieldTitle:
		return f.title.Focus()
	case fieldDescription:
		return f.description.Focus()
	}
	return nil
}

func (f *Complaint) cycleCategory(delta int) {
	n := len(f.options)
	if n == 0 {
		return
	}
	if f.selected < 0 {
		if delta > 0 {
			f.selected = 0
		} else {
			f.selected = n - 1
		}
		return
	}
	f.selected = (f.selected + delta + n) % n
}
