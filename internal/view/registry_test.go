package view

import (
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

type stubScreen struct{}

func (stubScreen) Init() tea.Cmd          { return nil }
func (stubScreen) Update(tea.Msg) tea.Cmd { return nil }
func (stubScreen) View() string           { return "stub" }

func stubBuilder() (Screen, error) { return stubScreen{}, nil }

func TestRegistryResolve(t *testing.T) {
	r := NewRegistry()
	r.MustRegister(Descriptor{ID: Home, Title: "Home", Build: stubBuilder})

	d, err := r.Resolve(Home)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if d.Title != "Home" {
		t.Fatalf("unexpected descriptor %#v", d)
	}
	if _, err := r.Resolve(Roles); !errors.Is(err, ErrUnknownView) {
		t.Fatalf("expected ErrUnknownView, got %v", err)
	}
}

func TestRegistryRejectsInvalidDescriptors(t *testing.T) {
	r := NewRegistry()
	if err := r.Register(Descriptor{ID: "", Build: stubBuilder}); err == nil {
		t.Fatalf("expected empty id to fail")
	}
	if err := r.Register(Descriptor{ID: Home}); err == nil {
		t.Fatalf("expected missing builder to fail")
	}
	r.MustRegister(Descriptor{ID: Home, Build: stubBuilder})
	if err := r.Register(Descriptor{ID: Home, Build: stubBuilder}); err == nil {
		t.Fatalf("expected duplicate to fail")
	}
}

func TestRegistryIDsSorted(t *testing.T) {
	r := NewRegistry()
	for _, id := range []ID{Roles, Home, DashboardUser} {
		r.MustRegister(Descriptor{ID: id, Build: stubBuilder})
	}
	got := r.IDs()
	want := []ID{DashboardUser, Home, Roles}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, got)
		}
	}
}

func TestKindAndParse(t *testing.T) {
	if LoginAdmin.Kind() != "login" || Home.Kind() != "home" {
		t.Fatalf("unexpected kinds")
	}
	id, err := Parse(" Dashboard:User ")
	if err != nil || id != DashboardUser {
		t.Fatalf("Parse: %v %v", id, err)
	}
	if _, err := Parse("settings"); !errors.Is(err, ErrUnknownView) {
		t.Fatalf("expected ErrUnknownView, got %v", err)
	}
}
