package table

import (
	"reflect"
	"testing"
)

func TestFormatAlignsColumns(t *testing.T) {
	rows := [][]string{
		{"Late bus", "pending", "3"},
		{"Dirty tram", "resolved", "12"},
	}
	got := Format(rows, []Alignment{AlignLeft, AlignLeft, AlignRight})
	want := []string{
		"Late bus    pending    3",
		"Dirty tram  resolved  12",
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("unexpected layout:\n%q\nwant\n%q", got, want)
	}
}

func TestFormatColumnsTruncates(t *testing.T) {
	rows := [][]string{{"Bus 12 was 40 minutes late", "x"}}
	got := FormatColumns(rows, []Column{{Max: 8}, {}})
	if len(got) != 1 || got[0] != "Bus 12 …  x" {
		t.Fatalf("unexpected truncation %q", got)
	}
}

func TestFormatEmpty(t *testing.T) {
	if Format(nil, nil) != nil {
		t.Fatalf("expected nil for no rows")
	}
}

func TestFormatCountsRunesNotBytes(t *testing.T) {
	got := Format([][]string{{"réclamation", "a"}, {"x", "b"}}, nil)
	if got[1] != "x            b" {
		t.Fatalf("expected rune-aware padding, got %q", got[1])
	}
}
