// Package state holds pure UI state: scrollable, filterable lists and the
// tab set of a dashboard.
package state

// Item is a selectable row.
type Item struct {
	ID    string
	Label string
}

// CloneItems produces a shallow copy of the provided items.
func CloneItems(items []Item) []Item {
	dup := make([]Item, len(items))
	copy(dup, items)
	return dup
}

// List tracks the rows of a list view along with cursor, filter and viewport.
type List struct {
	ID             string
	Items          []Item
	Full           []Item
	Filter         string
	FilterCursor   int
	Filtering      bool
	Cursor         int
	LastCursor     int
	ViewportOffset int
}

// NewList constructs a List with the cursor on the first row.
func NewList(id string, items []Item) *List {
	l := &List{ID: id, LastCursor: -1}
	l.UpdateItems(items)
	l.Cursor = 0
	return l
}

// IndexOf returns the index of the row with the given id, or -1.
func (l *List) IndexOf(id string) int {
	if id == "" {
		return -1
	}
	for i, item := range l.Items {
		if item.ID == id {
			return i
		}
	}
	return -1
}

// Current returns the row under the cursor.
func (l *List) Current() (Item, bool) {
	if l.Cursor < 0 || l.Cursor >= len(l.Items) {
		return Item{}, false
	}
	return l.Items[l.Cursor], true
}

// UpdateItems replaces the rows, keeping the cursor on the same id when it
// is still present.
func (l *List) UpdateItems(items []Item) {
	selected := ""
	if item, ok := l.Current(); ok {
		selected = item.ID
	}
	prevOffset := l.ViewportOffset
	l.Full = CloneItems(items)
	l.applyFilter()
	if idx := l.IndexOf(selected); idx >= 0 {
		l.Cursor = idx
	}
	if len(l.Items) == 0 {
		l.ViewportOffset = 0
		return
	}
	if prevOffset < 0 || prevOffset > len(l.Items)-1 {
		l.ViewportOffset = 0
		return
	}
	l.ViewportOffset = prevOffset
}
