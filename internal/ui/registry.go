package ui

import (
	"github.com/atomicstack/reclamation-control/internal/session"
	"github.com/atomicstack/reclamation-control/internal/view"
)

// buildRegistry registers every view the window can present. Builders run at
// navigation time so each presentation gets a fresh screen.
func (m *Model) buildRegistry() *view.Registry {
	r := view.NewRegistry()
	r.MustRegister(view.Descriptor{
		ID:    view.Home,
		Title: "Réclamations",
		Build: func() (view.Screen, error) { return newHomeScreen(), nil },
	})
	r.MustRegister(view.Descriptor{
		ID:    view.Roles,
		Title: "Choose a role",
		Build: func() (view.Screen, error) { return newRolesScreen(), nil },
	})
	for _, role := range session.Roles() {
		role := role
		r.MustRegister(view.Descriptor{
			ID:     loginFor(role),
			Title:  role.Label() + " sign in",
			Chrome: view.Chrome{HideExitHint: true},
			Build: func() (view.Screen, error) {
				return newLoginScreen(role, m.accounts, m.session, m.cursorMode), nil
			},
		})
		id := dashboardFor(role)
		r.MustRegister(view.Descriptor{
			ID:     id,
			Title:  role.Label() + " dashboard",
			Chrome: view.Chrome{FullScreen: true},
			Build: func() (view.Screen, error) {
				return newDashboardScreen(id, role, m.session, m.complaints, m.accounts, m.cursorMode)
			},
		})
	}
	r.MustRegister(view.Descriptor{
		ID:     view.ComplaintForm,
		Title:  "New complaint",
		Chrome: view.Chrome{Secondary: true},
		Build:  m.buildComplaintWindow,
	})
	return r
}
