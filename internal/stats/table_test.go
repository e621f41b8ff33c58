package stats

import "testing"

func TestFormatTableAlignsColumns(t *testing.T) {
	headers := []string{"Player", "Score", "Acc"}
	rows := [][]string{
		{"Ada", "1450", "97%"},
		{"Zoë", "80", "8%"},
	}
	rightAlign := map[int]bool{1: true, 2: true}

	lines := formatTable(headers, rows, rightAlign)
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d", len(lines))
	}
	if lines[0] != "Player Score Acc" {
		t.Fatalf("unexpected header line: %q", lines[0])
	}
	if lines[1] != "Ada     1450 97%" {
		t.Fatalf("unexpected row line: %q", lines[1])
	}
	if lines[2] != "Zoë       80  8%" {
		t.Fatalf("unexpected row line: %q", lines[2])
	}
}

func TestFormatTableWideRunes(t *testing.T) {
	lines := formatTable([]string{"", "Badge"}, [][]string{{"★", "Quick Start"}}, nil)
	if len(lines) != 2 || lines[1] != "★ Quick Start" {
		t.Fatalf("unexpected lines %q", lines)
	}
}
