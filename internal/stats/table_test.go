package stats

import "testing"

func TestFormatTableAlignsColumns(t *testing.T) {
	headers := []string{"Answer", "Rounds", "Status"}
	rows := [][]string{
		{"apple", "3", "solved"},
		{"-", "12", "aborted"},
	}
	rightAlign := map[int]bool{1: true}

	lines := formatTable(headers, rows, rightAlign)
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d", len(lines))
	}
	if lines[0] != "Answer Rounds Status" {
		t.Fatalf("unexpected header line: %q", lines[0])
	}
	if lines[1] != "apple       3 solved" {
		t.Fatalf("unexpected row line: %q", lines[1])
	}
	if lines[2] != "-          12 aborted" {
		t.Fatalf("unexpected row line: %q", lines[2])
	}
}

func TestPadCellWideRunes(t *testing.T) {
	if got := padCell("日本", 6, false); got != "日本  " {
		t.Fatalf("unexpected padding %q", got)
	}
	if got := padCell("abc", 2, true); got != "abc" {
		t.Fatalf("expected overflow to be kept, got %q", got)
	}
}
