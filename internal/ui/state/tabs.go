package state

import (
	"errors"
	"fmt"
)

// ErrUnknownTab indicates a tab id outside the tab set.
var ErrUnknownTab = errors.New("unknown tab")

// Tab is one selector of a tab set.
type Tab struct {
	ID    string
	Label string
}

// Tabs tracks which one of a fixed set of sub-views is shown. Exactly one tab
// is active at all times, and only the active tab is visible.
type Tabs struct {
	tabs   []Tab
	active int
}

// NewTabs builds a tab set with defaultID selected.
func NewTabs(tabs []Tab, defaultID string) (*Tabs, error) {
	if len(tabs) == 0 {
		return nil, errors.New("tab set needs at least one tab")
	}
	seen := make(map[string]struct{}, len(tabs))
	for _, tab := range tabs {
		if tab.ID == "" {
			return nil, errors.New("tab id required")
		}
		if _, dup := seen[tab.ID]; dup {
			return nil, fmt.Errorf("duplicate tab %q", tab.ID)
		}
		seen[tab.ID] = struct{}{}
	}
	t := &Tabs{tabs: append([]Tab(nil), tabs...)}
	if err := t.Select(defaultID); err != nil {
		return nil, err
	}
	return t, nil
}

// Select makes id the active tab. Unknown ids leave the state unchanged.
func (t *Tabs) Select(id string) error {
	for i, tab := range t.tabs {
		if tab.ID == id {
			t.active = i
			return nil
		}
	}
	return fmt.Errorf("%w: %q", ErrUnknownTab, id)
}

// SelectIndex activates the tab at position i (zero based).
func (t *Tabs) SelectIndex(i int) error {
	if i < 0 || i >= len(t.tabs) {
		return fmt.Errorf("%w: index %d", ErrUnknownTab, i)
	}
	t.active = i
	return nil
}

// Next activates the following tab, wrapping around.
func (t *Tabs) Next() {
	t.active = (t.active + 1) % len(t.tabs)
}

// Prev activates the preceding tab, wrapping around.
func (t *Tabs) Prev() {
	t.active = (t.active - 1 + len(t.tabs)) % len(t.tabs)
}

// Active returns the id of the active tab.
func (t *Tabs) Active() string {
	return t.tabs[t.active].ID
}

// IsActive reports whether id is the active selector.
func (t *Tabs) IsActive(id string) bool {
	return t.Active() == id
}

// Visible reports whether the sub-view for id is shown.
func (t *Tabs) Visible(id string) bool {
	return t.IsActive(id)
}

// All returns the tabs in display order.
func (t *Tabs) All() []Tab {
	return append([]Tab(nil), t.tabs...)
}
