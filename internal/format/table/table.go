// Package table lays out rows of cells into aligned, width-capped columns.
package table

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
)

type Alignment int

const (
	AlignLeft Alignment = iota
	AlignRight
)

// Column configures one column. Max of zero means unbounded.
type Column struct {
	Align Alignment
	Max   int
}

const ellipsis = "…"

// Format returns the rows padded according to the widest entry in each column.
func Format(rows [][]string, alignments []Alignment) []string {
	cols := make([]Column, len(alignments))
	for i, a := range alignments {
		cols[i].Align = a
	}
	return FormatColumns(rows, cols)
}

// FormatColumns pads rows like Format and truncates cells wider than their
// column's Max.
func FormatColumns(rows [][]string, cols []Column) []string {
	if len(rows) == 0 {
		return nil
	}
	colCount := 0
	for _, row := range rows {
		if len(row) > colCount {
			colCount = len(row)
		}
	}
	cells := make([][]string, len(rows))
	widths := make([]int, colCount)
	for r, row := range rows {
		cells[r] = make([]string, colCount)
		for c, cell := range row {
			if c < len(cols) && cols[c].Max > 0 && cellWidth(cell) > cols[c].Max {
				cell = ansi.Truncate(cell, cols[c].Max, ellipsis)
			}
			cells[r][c] = cell
			if width := cellWidth(cell); width > widths[c] {
				widths[c] = width
			}
		}
	}
	out := make([]string, len(cells))
	for i, row := range cells {
		var b strings.Builder
		for c, cell := range row {
			if c > 0 {
				b.WriteString("  ")
			}
			width := widths[c] - cellWidth(cell)
			if c < len(cols) && cols[c].Align == AlignRight {
				writeSpaces(&b, width)
				b.WriteString(cell)
			} else {
				b.WriteString(cell)
				if c < len(row)-1 {
					writeSpaces(&b, width)
				}
			}
		}
		out[i] = b.String()
	}
	return out
}

// cellWidth counts terminal cells, ignoring escape sequences.
func cellWidth(text string) int {
	return ansi.StringWidth(text)
}

func writeSpaces(b *strings.Builder, count int) {
	if count <= 0 {
		return
	}
	b.WriteString(strings.Repeat(" ", count))
}
