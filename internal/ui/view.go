package ui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"

	"github.com/atomicstack/reclamation-control/internal/ui/state"
)

const exitHint = "ctrl+c quit"

type styledLine struct {
	text          string
	style         *lipgloss.Style
	prefixStyle   *lipgloss.Style
	highlightFrom int
	raw           bool // text contains ANSI escapes; skip style wrapping, use ANSI-aware truncation
}

// sizedScreen is implemented by screens that lay out against the space left
// by the window chrome.
type sizedScreen interface {
	SetSize(width, height int)
}

// helpScreen is implemented by screens that contribute key help to the footer.
type helpScreen interface {
	Help() string
}

// View implements tea.Model.
func (m *Model) View() string {
	lines := make([]styledLine, 0, 24)
	lines = append(lines, styledLine{text: m.headerText(), style: styles.Header}, styledLine{})

	var body string
	switch {
	case len(m.alerts) > 0:
		body = m.renderAlert(m.alerts[0])
	case m.form != nil:
		body = styles.Overlay.Render(m.form.View())
	case m.screen != nil:
		body = m.screen.View()
	}
	for _, line := range strings.Split(body, "\n") {
		lines = append(lines, styledLine{text: line, raw: true})
	}

	if info := m.currentInfo(); info != "" {
		lines = append(lines, styledLine{}, styledLine{text: info, style: styles.Info})
	}
	if footer := m.footerText(); footer != "" {
		lines = append(lines, styledLine{}, styledLine{text: footer, style: styles.Footer})
	}
	lines = limitHeight(lines, m.height-1, m.width)
	lines = applyWidth(lines, m.width)

	var statusLine styledLine
	if m.errMsg != "" {
		statusLine = styledLine{text: fmt.Sprintf("Error: %s", m.errMsg), style: styles.Error}
	}
	lines = append(lines, applyWidth([]styledLine{statusLine}, m.width)...)
	return renderLines(lines)
}

func (m *Model) headerText() string {
	title := m.current.Title
	if m.form != nil && m.formHandle.Title != "" {
		title = title + " › " + m.formHandle.Title
	}
	if user, ok := m.session.Current(); ok {
		return fmt.Sprintf("%s  ·  %s (%s)", title, user.Name(), user.Role.Label())
	}
	return title
}

func (m *Model) footerText() string {
	parts := make([]string, 0, 2)
	if m.showFooter && m.form == nil && len(m.alerts) == 0 {
		if h, ok := m.screen.(helpScreen); ok {
			if help := h.Help(); help != "" {
				parts = append(parts, help)
			}
		}
	}
	if !m.chrome.HideExitHint {
		parts = append(parts, exitHint)
	}
	return strings.Join(parts, "  ")
}

// contentSize reports the space a screen can use below the header and above
// the footer and status line.
func (m *Model) contentSize() (int, int) {
	if m.height <= 0 {
		return m.width, 0
	}
	used := 3 // header, blank, status
	if m.footerText() != "" {
		used += 2
	}
	if m.currentInfo() != "" {
		used += 2
	}
	h := m.height - used
	if h < 1 {
		h = 1
	}
	return m.width, h
}

func (m *Model) formWidth() int {
	if m.width <= 0 {
		return 60
	}
	w := m.width - 6
	if w > 80 {
		w = 80
	}
	if w < 20 {
		w = 20
	}
	return w
}

func (m *Model) handleWindowSizeMsg(msg tea.Msg) tea.Cmd {
	resize, ok := msg.(tea.WindowSizeMsg)
	if !ok {
		return nil
	}
	if !m.fixedWidth {
		m.width = resize.Width
	}
	if !m.fixedHeight {
		m.height = resize.Height
	}
	m.resizeScreen()
	if m.form != nil {
		m.form.form.SetWidth(m.formWidth())
	}
	return nil
}

func (m *Model) resizeScreen() {
	if sized, ok := m.screen.(sizedScreen); ok {
		sized.SetSize(m.contentSize())
	}
}

func (m *Model) setInfo(message string) {
	m.infoMsg = message
	m.infoExpire = m.now().Add(5 * time.Second)
	m.resizeScreen()
}

func (m *Model) forceClearInfo() {
	m.infoMsg = ""
	m.infoExpire = time.Time{}
}

func (m *Model) currentInfo() string {
	if m.infoMsg != "" && !m.infoExpire.IsZero() && m.now().After(m.infoExpire) {
		m.infoMsg = ""
		m.infoExpire = time.Time{}
	}
	return m.infoMsg
}

// listLines renders the visible rows of l with the cursor row highlighted.
func listLines(l *state.List, maxVisible, width int, empty string) []styledLine {
	if len(l.Items) == 0 {
		msg := empty
		if l.Filter != "" {
			msg = fmt.Sprintf("No matches for %q", l.Filter)
		}
		return []styledLine{{text: msg, style: styles.Info}}
	}
	l.EnsureCursorVisible(maxVisible)
	rows, start := l.Visible(maxVisible)
	lines := make([]styledLine, 0, len(rows))
	for i, item := range rows {
		lines = append(lines, itemLine(item.Label, start+i == l.Cursor, width))
	}
	return lines
}

func itemLine(label string, selected bool, width int) styledLine {
	indicator := "▌"
	lineStyle := styles.Item
	indicatorStyle := styles.ItemIndicator
	if selected {
		indicatorStyle = styles.SelectedItemIndicator
		lineStyle = styles.SelectedItem
	}
	fullText := indicator + " " + label
	if width > 0 {
		if pad := width - lipgloss.Width(fullText); pad > 0 {
			fullText += strings.Repeat(" ", pad)
		}
	}
	return styledLine{
		text:          fullText,
		style:         lineStyle,
		prefixStyle:   indicatorStyle,
		highlightFrom: 1, // just the ▌ character
	}
}

func limitHeight(lines []styledLine, height, width int) []styledLine {
	if height <= 0 || len(lines) <= height {
		return lines
	}
	if height == 1 {
		return []styledLine{{text: truncateText("…", width)}}
	}
	trimmed := make([]styledLine, 0, height)
	trimmed = append(trimmed, lines[:height-1]...)
	trimmed = append(trimmed, styledLine{text: truncateText("…", width)})
	return trimmed
}

func applyWidth(lines []styledLine, width int) []styledLine {
	if width <= 0 {
		return lines
	}
	result := make([]styledLine, len(lines))
	for i, line := range lines {
		text := line.text
		if line.raw {
			if lipgloss.Width(text) > width {
				text = truncate.StringWithTail(text, uint(width), "…")
			}
		} else {
			text = truncateText(text, width)
		}
		line.text = text
		result[i] = line
	}
	return result
}

func renderLines(lines []styledLine) string {
	out := make([]string, len(lines))
	for i, line := range lines {
		out[i] = renderLine(line)
	}
	return strings.Join(out, "\n")
}

func renderLine(line styledLine) string {
	text := line.text
	if line.raw {
		return text
	}
	runes := []rune(text)
	if line.highlightFrom > 0 && line.highlightFrom < len(runes) {
		head := string(runes[:line.highlightFrom])
		tail := string(runes[line.highlightFrom:])
		if line.prefixStyle != nil {
			head = line.prefixStyle.Render(head)
		}
		if line.style != nil {
			tail = line.style.Render(tail)
		}
		return head + tail
	}
	if line.style != nil {
		return line.style.Render(text)
	}
	return text
}

func truncateText(text string, width int) string {
	if width <= 0 {
		return text
	}
	runes := []rune(text)
	if len(runes) <= width {
		return text
	}
	if width == 1 {
		return string(runes[:1])
	}
	return string(runes[:width-1]) + "…"
}
