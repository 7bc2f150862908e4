package ui

import (
	"unicode"

	"github.com/charmbracelet/bubbles/cursor"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/atomicstack/reclamation-control/internal/logging/events"
	"github.com/atomicstack/reclamation-control/internal/ui/state"
)

// filterInput edits the filter of a list while the list is in filter mode
// and renders the filter prompt with a caret.
type filterInput struct {
	caret cursor.Model
}

func newFilterInput(mode cursor.Mode) filterInput {
	c := cursor.New()
	if styles.Cursor != nil {
		c.Style = styles.Cursor.Copy()
	}
	if styles.Filter != nil {
		c.TextStyle = styles.Filter.Copy()
	}
	c.SetMode(mode)
	c.SetChar(" ")
	return filterInput{caret: c}
}

func (f *filterInput) start(l *state.List) tea.Cmd {
	l.StartFilter()
	return f.caret.Focus()
}

func (f *filterInput) update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	f.caret, cmd = f.caret.Update(msg)
	return cmd
}

// handleKey applies a key press to the filter of l. It reports false for
// keys the list itself should handle.
func (f *filterInput) handleKey(l *state.List, msg tea.KeyMsg) bool {
	if l == nil || !l.Filtering {
		return false
	}
	switch msg.String() {
	case "esc":
		l.StopFilter()
		f.caret.Blur()
		events.Filter.Cleared(l.ID)
		return true
	case "enter":
		l.Filtering = false
		f.caret.Blur()
		return true
	case "ctrl+u":
		if l.Filter != "" {
			l.SetFilter("", 0)
			events.Filter.Cleared(l.ID)
		}
		return true
	case "ctrl+w":
		if l.DeleteFilterWordBackward() {
			events.Filter.WordBackspace(l.ID, l.Filter)
		}
		return true
	}
	switch msg.Type {
	case tea.KeyBackspace, tea.KeyCtrlH:
		if l.DeleteFilterRuneBackward() {
			events.Filter.Backspace(l.ID, l.Filter)
		}
		return true
	case tea.KeyLeft:
		if l.MoveFilterCursor(-1) {
			events.Filter.Cursor(l.ID, l.FilterCursor)
		}
		return true
	case tea.KeyRight:
		if l.MoveFilterCursor(1) {
			events.Filter.Cursor(l.ID, l.FilterCursor)
		}
		return true
	case tea.KeySpace:
		if l.InsertFilterText(" ") {
			events.Filter.Append(l.ID, l.Filter)
		}
		return true
	case tea.KeyRunes:
		if msg.Alt || len(msg.Runes) == 0 {
			return false
		}
		for _, r := range msg.Runes {
			if unicode.IsControl(r) {
				return false
			}
		}
		if l.InsertFilterText(string(msg.Runes)) {
			events.Filter.Append(l.ID, l.Filter)
		}
		return true
	}
	return false
}

// prompt renders the filter line of l. It is empty when the list is neither
// filtering nor filtered.
func (f *filterInput) prompt(l *state.List) string {
	if l == nil || (!l.Filtering && l.Filter == "") {
		return ""
	}
	prompt := styles.FilterPrompt.Render("/ ")
	runes := []rune(l.Filter)
	if !l.Filtering {
		return prompt + styles.Filter.Render(l.Filter)
	}
	if len(runes) == 0 {
		f.caret.TextStyle = styles.FilterPlaceholder.Copy()
		f.caret.SetChar("t")
		return prompt + f.caret.View() + styles.FilterPlaceholder.Render("ype to filter")
	}
	f.caret.TextStyle = styles.Filter.Copy()
	pos := l.FilterCursor
	if pos < 0 {
		pos = 0
	}
	if pos > len(runes) {
		pos = len(runes)
	}
	before := styles.Filter.Render(string(runes[:pos]))
	char := " "
	after := ""
	if pos < len(runes) {
		char = string(runes[pos])
		after = styles.Filter.Render(string(runes[pos+1:]))
	}
	f.caret.SetChar(char)
	return prompt + before + f.caret.View() + after
}

// handleListKey moves the cursor of l for navigation keys.
func handleListKey(l *state.List, msg tea.KeyMsg, page int) bool {
	if l == nil {
		return false
	}
	moved := false
	switch msg.String() {
	case "up", "ctrl+p":
		moved = l.MoveCursor(-1)
	case "down", "ctrl+n":
		moved = l.MoveCursor(1)
	case "home":
		moved = l.MoveCursorHome()
	case "end":
		moved = l.MoveCursorEnd()
	case "pgup":
		moved = l.MoveCursorPageUp(page)
	case "pgdown":
		moved = l.MoveCursorPageDown(page)
	default:
		return false
	}
	if moved {
		events.Tab.Cursor(l.ID, l.Cursor)
	}
	return true
}
