package ui

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/charmbracelet/bubbles/cursor"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/atomicstack/reclamation-control/internal/complaint"
	"github.com/atomicstack/reclamation-control/internal/logging"
	"github.com/atomicstack/reclamation-control/internal/session"
	"github.com/atomicstack/reclamation-control/internal/view"
)

var testNow = time.Date(2026, 10, 19, 8, 30, 0, 0, time.UTC)

// memoryService is an in-memory complaint.Service that records writes.
type memoryService struct {
	mu        sync.Mutex
	items     []complaint.Complaint
	creates   []complaint.Complaint
	updates   []string
	createErr error
	updateErr error
}

func (s *memoryService) Create(_ context.Context, c complaint.Complaint) (complaint.Complaint, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.creates = append(s.creates, c)
	if s.createErr != nil {
		return complaint.Complaint{}, s.createErr
	}
	c.ID = fmt.Sprintf("c-%d", len(s.items)+1)
	s.items = append(s.items, c)
	return c, nil
}

func (s *memoryService) Get(_ context.Context, id string) (complaint.Complaint, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, c := range s.items {
		if c.ID == id {
			return c, nil
		}
	}
	return complaint.Complaint{}, complaint.ErrNotFound
}

func (s *memoryService) List(_ context.Context, q complaint.Query) ([]complaint.Complaint, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []complaint.Complaint
	for _, c := range s.items {
		if q.AuthorID != 0 && c.Author.ID != q.AuthorID {
			continue
		}
		out = append(out, c)
	}
	return out, nil
}

func (s *memoryService) UpdateStatus(_ context.Context, id string, next complaint.Status) (complaint.Complaint, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.updates = append(s.updates, id+":"+string(next))
	if s.updateErr != nil {
		return complaint.Complaint{}, s.updateErr
	}
	for i, c := range s.items {
		if c.ID != id {
			continue
		}
		if !c.Status.CanTransition(next) {
			return complaint.Complaint{}, complaint.TransitionError(c.Status, next)
		}
		c.Status = next
		c.UpdatedAt = testNow
		s.items[i] = c
		return c, nil
	}
	return complaint.Complaint{}, complaint.ErrNotFound
}

func (s *memoryService) Stats(context.Context) (complaint.Stats, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	stats := complaint.Stats{ByStatus: map[complaint.Status]int{}, ByCategory: map[complaint.Category]int{}}
	for _, c := range s.items {
		stats.Total++
		stats.ByStatus[c.Status]++
		stats.ByCategory[c.Category]++
	}
	return stats, nil
}

var (
	adminUser = session.User{ID: 1, Username: "admin", Role: session.RoleAdmin}
	orgUser   = session.User{ID: 2, Username: "transit", Role: session.RoleOrganisation, Organisation: "City Transit"}
	riderUser = session.User{ID: 3, Username: "rider", Role: session.RoleUser}
)

func sampleComplaint(id string, status complaint.Status, author session.User) complaint.Complaint {
	return complaint.Complaint{
		ID:          id,
		Title:       "Complaint " + id,
		Description: "Details for " + id,
		Category:    complaint.CategoryDelay,
		Status:      status,
		CreatedAt:   testNow.Add(-time.Hour),
		UpdatedAt:   testNow.Add(-time.Hour),
		Author:      complaint.AuthorFrom(author),
	}
}

type modelOption func(*Config)

func withUser(u session.User) modelOption {
	return func(cfg *Config) {
		sess := session.New()
		sess.Set(u)
		cfg.Session = sess
	}
}

func withStart(id view.ID) modelOption {
	return func(cfg *Config) { cfg.Start = id }
}

func newTestModel(t *testing.T, svc complaint.Service, opts ...modelOption) *Model {
	t.Helper()
	logging.Configure(filepath.Join(t.TempDir(), "ui.log"))
	t.Cleanup(func() { logging.Configure("") })
	cfg := Config{
		Service:    svc,
		Width:      100,
		Height:     30,
		ShowFooter: true,
		CursorMode: cursor.CursorStatic,
		Now:        func() time.Time { return testNow },
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	return NewModel(cfg)
}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func assertView(t *testing.T, m *Model, id view.ID) {
	t.Helper()
	if got := m.Current().View; got != id {
		t.Fatalf("expected view %s, got %s", id, got)
	}
}

func assertNoAlerts(t *testing.T, m *Model) {
	t.Helper()
	if alerts := m.Alerts(); len(alerts) != 0 {
		t.Fatalf("expected no alerts, got %+v", alerts)
	}
}

func assertOneAlert(t *testing.T, m *Model, title string) Alert {
	t.Helper()
	alerts := m.Alerts()
	if len(alerts) != 1 {
		t.Fatalf("expected exactly one alert, got %+v", alerts)
	}
	if alerts[0].Title != title {
		t.Fatalf("expected alert %q, got %q", title, alerts[0].Title)
	}
	return alerts[0]
}

func assertContains(t *testing.T, haystack, needle string) {
	t.Helper()
	if !strings.Contains(haystack, needle) {
		t.Fatalf("expected %q in:\n%s", needle, haystack)
	}
}
