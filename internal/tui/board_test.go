package tui

import (
	"strings"
	"testing"

	"github.com/mattn/go-runewidth"

	"github.com/verte-zerg/tuibonds/internal/game"
	"github.com/verte-zerg/tuibonds/internal/model"
)

func TestProblemLabelUsesSymbols(t *testing.T) {
	p := model.Problem{Operands: []int{12, 3, 2}, Op: model.Division, Result: 2}
	if got := problemLabel(p); got != "12 ÷ 3 ÷ 2" {
		t.Fatalf("unexpected label %q", got)
	}
}

func TestRenderTilePadsToWidth(t *testing.T) {
	a := renderTile(tile{label: "3 × 4"}, 12)
	b := renderTile(tile{label: "10"}, 12)
	if runewidth.StringWidth(stripANSI(a)) != runewidth.StringWidth(stripANSI(b)) {
		t.Fatalf("expected equal widths: %q vs %q", stripANSI(a), stripANSI(b))
	}
	if !strings.HasPrefix(stripANSI(renderTile(tile{label: "7", focused: true}, 8)), "› ") {
		t.Fatalf("expected focus marker")
	}
	if !strings.HasSuffix(stripANSI(renderTile(tile{label: "7", sparkle: true}, 8)), "✦") {
		t.Fatalf("expected sparkle marker")
	}
}

func TestBoardTilesMarksState(t *testing.T) {
	v := game.View{
		Problems: []model.Problem{
			{ID: "p1", Operands: []int{1, 2}, Op: model.Addition, Result: 3},
			{ID: "p2", Operands: []int{2, 2}, Op: model.Addition, Result: 4},
		},
		Answers:         []model.AnswerTile{{ID: "a1", Value: 3}, {ID: "a2", Value: 4}},
		Removing:        map[string]bool{"p1": true, "a1": true},
		SelectedProblem: "p2",
	}
	cols := boardTiles(v, [2]int{1, 0}, columnAnswers, &game.Point{X: columnAnswers, Y: 0})
	if cols[columnProblems][0].state != tileRemoving || cols[columnProblems][1].state != tileSelected {
		t.Fatalf("unexpected problem states %+v", cols[columnProblems])
	}
	if cols[columnProblems][1].focused {
		t.Fatalf("focus must follow the active column")
	}
	if !cols[columnAnswers][0].focused || !cols[columnAnswers][0].sparkle {
		t.Fatalf("expected focused sparkling answer %+v", cols[columnAnswers][0])
	}
}

func stripANSI(s string) string {
	var b strings.Builder
	inEscape := false
	for _, r := range s {
		switch {
		case r == '\x1b':
			inEscape = true
		case inEscape:
			if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') {
				inEscape = false
			}
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}
