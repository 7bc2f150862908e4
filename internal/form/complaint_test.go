package form

import (
	"context"
	"errors"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/atomicstack/reclamation-control/internal/complaint"
	"github.com/atomicstack/reclamation-control/internal/session"
)

type recordingCreator struct {
	calls []complaint.Complaint
	err   error
}

func (r *recordingCreator) Create(_ context.Context, c complaint.Complaint) (complaint.Complaint, error) {
	r.calls = append(r.calls, c)
	if r.err != nil {
		return complaint.Complaint{}, r.err
	}
	c.ID = "c-1"
	return c, nil
}

var fixedNow = time.Date(2026, 10, 19, 7, 45, 0, 0, time.UTC)

func newTestForm(t *testing.T, user *session.User, svc complaint.Creator) *Complaint {
	t.Helper()
	sess := session.New()
	if user != nil {
		sess.Set(*user)
	}
	f := NewComplaint(sess, svc, func() time.Time { return fixedNow })
	f.InitializeOptions(complaint.Categories())
	return f
}

func TestInitializeOptionsKeepsOrderWithoutDuplicates(t *testing.T) {
	f := newTestForm(t, nil, &recordingCreator{})
	got := f.Options()
	want := complaint.Categories()
	if len(got) != len(want) {
		t.Fatalf("expected %d options, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("option %d: got %s want %s", i, got[i], want[i])
		}
	}

	f.InitializeOptions([]complaint.Category{complaint.CategorySafety, complaint.CategoryDelay, complaint.CategorySafety, "BOGUS"})
	got = f.Options()
	if len(got) != 2 || got[0] != complaint.CategorySafety || got[1] != complaint.CategoryDelay {
		t.Fatalf("unexpected options %v", got)
	}
	if _, ok := f.Category(); ok {
		t.Fatalf("expected selection cleared after reinitialising")
	}
}

func TestSubmitInvalidNeverCallsService(t *testing.T) {
	user := session.User{ID: 1, Role: session.RoleUser}
	cases := []struct {
		name        string
		title       string
		description string
		category    complaint.Category
		missing     complaint.Field
	}{
		{"empty title", "", "Bus 12 was 40 minutes late", complaint.CategoryDelay, complaint.FieldTitle},
		{"blank description", "Late bus", "   ", complaint.CategoryDelay, complaint.FieldDescription},
		{"no category", "Late bus", "Bus 12 was 40 minutes late", "", complaint.FieldCategory},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc := &recordingCreator{}
			f := newTestForm(t, &user, svc)
			f.SetTitle(tc.title)
			f.SetDescription(tc.description)
			if tc.category != "" {
				if err := f.SelectCategory(tc.category); err != nil {
					t.Fatalf("SelectCategory: %v", err)
				}
			}
			res := f.Submit(context.Background())
			if res.Outcome != OutcomeInvalid {
				t.Fatalf("expected invalid outcome, got %s", res.Outcome)
			}
			var verr *complaint.ValidationError
			if !errors.As(res.Err, &verr) || !verr.Has(tc.missing) {
				t.Fatalf("expected %s reported, got %v", tc.missing, res.Err)
			}
			if res.Complaint.Title != "" || res.Complaint.Status != "" {
				t.Fatalf("expected no draft, got %#v", res.Complaint)
			}
			if len(svc.calls) != 0 {
				t.Fatalf("expected no service call, got %d", len(svc.calls))
			}
			if f.Closed() {
				t.Fatalf("expected form to stay open")
			}
		})
	}
}

func TestSubmitScenarioLateBus(t *testing.T) {
	user := session.User{ID: 1, Username: "admin", Role: session.RoleAdmin}
	svc := &recordingCreator{}
	f := newTestForm(t, &user, svc)
	f.SetTitle("Late bus")
	f.SetDescription("Bus 12 was 40 minutes late")
	if err := f.SelectCategory(complaint.CategoryDelay); err != nil {
		t.Fatalf("SelectCategory: %v", err)
	}

	res := f.Submit(context.Background())
	if !res.Submitted() {
		t.Fatalf("expected submission, got %s (%v)", res.Outcome, res.Err)
	}
	if len(svc.calls) != 1 {
		t.Fatalf("expected exactly one service call, got %d", len(svc.calls))
	}
	d := svc.calls[0]
	if d.Title != "Late bus" || d.Description != "Bus 12 was 40 minutes late" || d.Category != complaint.CategoryDelay {
		t.Fatalf("unexpected draft %#v", d)
	}
	if d.Status != complaint.StatusPending {
		t.Fatalf("expected pending, got %s", d.Status)
	}
	if d.Author.ID != 1 || d.Author.Role != session.RoleAdmin {
		t.Fatalf("expected author from session, got %#v", d.Author)
	}
	if !d.CreatedAt.Equal(fixedNow) {
		t.Fatalf("expected creation time %v, got %v", fixedNow, d.CreatedAt)
	}
	if !f.Closed() {
		t.Fatalf("expected form closed after success")
	}
	if res.Complaint.ID != "c-1" {
		t.Fatalf("expected stored complaint returned, got %#v", res.Complaint)
	}
}

func TestSubmitServiceFailureKeepsFormOpen(t *testing.T) {
	user := session.User{ID: 3, Role: session.RoleUser}
	svc := &recordingCreator{err: errors.New("database is locked")}
	f := newTestForm(t, &user, svc)
	f.SetTitle("Dirty tram")
	f.SetDescription("Seats covered in litter")
	_ = f.SelectCategory(complaint.CategoryCleanliness)

	res := f.Submit(context.Background())
	if res.Outcome != OutcomeFailed || res.Err == nil || res.Err.Error() != "database is locked" {
		t.Fatalf("expected failure carrying the cause, got %#v", res)
	}
	if f.Closed() {
		t.Fatalf("expected form to stay open for retry")
	}
	if len(svc.calls) != 1 {
		t.Fatalf("expected one attempt, got %d", len(svc.calls))
	}

	svc.err = nil
	if res := f.Submit(context.Background()); !res.Submitted() {
		t.Fatalf("expected retry to succeed, got %#v", res)
	}
}

func TestSubmitWithoutSessionIsRejected(t *testing.T) {
	svc := &recordingCreator{}
	f := newTestForm(t, nil, svc)
	f.SetTitle("Late bus")
	f.SetDescription("Bus 12 was 40 minutes late")
	_ = f.SelectCategory(complaint.CategoryDelay)

	res := f.Submit(context.Background())
	if res.Outcome != OutcomeFailed || !errors.Is(res.Err, session.ErrNotAuthenticated) {
		t.Fatalf("expected ErrNotAuthenticated failure, got %#v", res)
	}
	if len(svc.calls) != 0 {
		t.Fatalf("expected no service call without a session")
	}
}

func TestCancelDiscardsInput(t *testing.T) {
	f := newTestForm(t, nil, &recordingCreator{})
	f.SetTitle("Late bus")
	_ = f.SelectCategory(complaint.CategoryDelay)
	f.Cancel()
	if f.Title() != "" {
		t.Fatalf("expected title cleared, got %q", f.Title())
	}
	if _, ok := f.Category(); ok {
		t.Fatalf("expected category cleared")
	}
	if !f.Closed() {
		t.Fatalf("expected form closed")
	}
}

func TestSelectCategoryRejectsUnofferedValue(t *testing.T) {
	f := newTestForm(t, nil, &recordingCreator{})
	f.InitializeOptions([]complaint.Category{complaint.CategoryDelay})
	if err := f.SelectCategory(complaint.CategorySafety); err == nil {
		t.Fatalf("expected error for category not offered")
	}
}

func TestUpdateKeyHandling(t *testing.T) {
	f := newTestForm(t, nil, &recordingCreator{})

	f.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("Late")})
	if f.Title() != "Late" {
		t.Fatalf("expected typed title, got %q", f.Title())
	}

	f.Update(tea.KeyMsg{Type: tea.KeyTab})
	f.Update(tea.KeyMsg{Type: tea.KeyTab})
	f.Update(tea.KeyMsg{Type: tea.KeyRight})
	if c, ok := f.Category(); !ok || c != complaint.CategoryDelay {
		t.Fatalf("expected first category selected, got %q", c)
	}
	f.Update(tea.KeyMsg{Type: tea.KeyLeft})
	if c, _ := f.Category(); c != complaint.CategoryOther {
		t.Fatalf("expected wrap to last category, got %q", c)
	}

	if _, submit, _ := f.Update(tea.KeyMsg{Type: tea.KeyEnter}); !submit {
		t.Fatalf("expected enter on category to submit")
	}
	if _, _, cancel := f.Update(tea.KeyMsg{Type: tea.KeyEsc}); !cancel {
		t.Fatalf("expected esc to cancel")
	}
	if _, submit, _ := f.Update(tea.KeyMsg{Type: tea.KeyCtrlS}); !submit {
		t.Fatalf("expected ctrl+s to submit")
	}
}

func TestResultAlertTitles(t *testing.T) {
	if (Result{Outcome: OutcomeInvalid}).AlertTitle() == "" || (Result{Outcome: OutcomeFailed}).AlertTitle() == "" {
		t.Fatalf("expected alert titles for failures")
	}
	if (Result{Outcome: OutcomeSubmitted}).AlertTitle() != "" {
		t.Fatalf("expected no alert title for success")
	}
}
