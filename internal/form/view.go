package form

import (
	"strings"

	"github.com/atomicstack/reclamation-control/internal/theme"
)

var styles = theme.Default()

const help = "tab next field  ←/→ category  ctrl+s submit  esc cancel"

// View renders the form body.
func (f *Complaint) View() string {
	lines := []string{
		styles.Header.Render("New complaint"),
		"",
		f.label(fieldTitle, "Title"),
		f.title.View(),
		"",
		f.label(fieldDescription, "Description"),
		f.description.View(),
		"",
		f.label(fieldCategory, "Category"),
		f.categoryView(),
		"",
		styles.Footer.Render(help),
	}
	return strings.Join(lines, "\n")
}

func (f *Complaint) label(fd field, text string) string {
	if f.focus == fd {
		return styles.FieldFocused.Render("› " + text)
	}
	return styles.Field.Render("  " + text)
}

func (f *Complaint) categoryView() string {
	if len(f.options) == 0 {
		return styles.Info.Render("(no categories)")
	}
	parts := make([]string, len(f.options))
	for i, opt := range f.options {
		if i == f.selected {
			parts[i] = styles.SelectedItem.Render(" " + opt.Label() + " ")
		} else {
			parts[i] = styles.Item.Render(" " + opt.Label() + " ")
		}
	}
	choice := strings.Join(parts, "")
	if f.selected < 0 {
		choice = styles.Placeholder.Render("none selected ") + choice
	}
	return choice
}
