// Package view names the screens of the application and resolves those names
// to builders at navigation time.
package view

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

// ErrUnknownView indicates a navigation target that is not registered.
var ErrUnknownView = errors.New("unknown view")

// ID identifies a view. Role-specific views use "<kind>:<role>".
type ID string

const (
	Home                  ID = "home"
	Roles                 ID = "roles"
	LoginAdmin            ID = "login:admin"
	LoginOrganisation     ID = "login:organisation"
	LoginUser             ID = "login:user"
	DashboardAdmin        ID = "dashboard:admin"
	DashboardOrganisation ID = "dashboard:organisation"
	DashboardUser         ID = "dashboard:user"
	ComplaintForm         ID = "form:complaint"
)

// Kind returns the part of the id before the first colon.
func (id ID) Kind() string {
	s := string(id)
	if idx := strings.Index(s, ":"); idx >= 0 {
		return s[:idx]
	}
	return s
}

// Screen is the controller installed in the window for a view.
type Screen interface {
	Init() tea.Cmd
	Update(tea.Msg) tea.Cmd
	View() string
}

// Chrome carries window-level settings a view asks for. A Secondary view
// opens in its own window over the current screen instead of replacing it.
type Chrome struct {
	FullScreen   bool
	HideExitHint bool
	Secondary    bool
}

// Builder instantiates a screen. It may fail, for example when the data a
// screen needs cannot be loaded.
type Builder func() (Screen, error)

// Descriptor pairs a view id with its default title, chrome and builder.
type Descriptor struct {
	ID     ID
	Title  string
	Chrome Chrome
	Build  Builder
}

// Registry maps view ids to descriptors.
type Registry struct {
	views map[ID]Descriptor
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{views: make(map[ID]Descriptor)}
}

// Register adds a descriptor. Registering an id twice is an error.
func (r *Registry) Register(d Descriptor) error {
	if strings.TrimSpace(string(d.ID)) == "" {
		return errors.New("view id required")
	}
	if d.Build == nil {
		return fmt.Errorf("view %s has no builder", d.ID)
	}
	if _, exists := r.views[d.ID]; exists {
		return fmt.Errorf("view %s already registered", d.ID)
	}
	r.views[d.ID] = d
	return nil
}

// MustRegister is Register for static wiring.
func (r *Registry) MustRegister(d Descriptor) {
	if err := r.Register(d); err != nil {
		panic(err)
	}
}

// Resolve finds the descriptor for id.
func (r *Registry) Resolve(id ID) (Descriptor, error) {
	d, ok := r.views[id]
	if !ok {
		return Descriptor{}, fmt.Errorf("%w: %q", ErrUnknownView, id)
	}
	return d, nil
}

// Has reports whether id is registered.
func (r *Registry) Has(id ID) bool {
	_, ok := r.views[id]
	return ok
}

// IDs lists registered ids in sorted order.
func (r *Registry) IDs() []ID {
	out := make([]ID, 0, len(r.views))
	for id := range r.views {
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Known lists the ids the application registers, for configuration checks.
func Known() []ID {
	return []ID{
		Home, Roles,
		LoginAdmin, LoginOrganisation, LoginUser,
		DashboardAdmin, DashboardOrganisation, DashboardUser,
		ComplaintForm,
	}
}

// Parse validates a configured view id.
func Parse(s string) (ID, error) {
	candidate := ID(strings.ToLower(strings.TrimSpace(s)))
	for _, id := range Known() {
		if id == candidate {
			return id, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownView, s)
}
