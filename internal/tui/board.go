package tui

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/verte-zerg/tuibonds/internal/game"
	"github.com/verte-zerg/tuibonds/internal/model"
)

const (
	columnProblems = 0
	columnAnswers  = 1
)

type tileState int

const (
	tileIdle tileState = iota
	tileSelected
	tileRemoving
)

type tile struct {
	id      string
	label   string
	state   tileState
	focused bool
	sparkle bool
}

var (
	idleStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0"))
	selectedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A")).Bold(true)
	removingStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#52C41A")).Strikethrough(true)
	focusStyle    = lipgloss.NewStyle().Underline(true)
	titleStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	footerStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))

	// Boss mode cycles the board border through this palette.
	bossPalette = []lipgloss.Color{"#FF4D4F", "#C89A3A", "#9B59FF"}
	boardBorder = lipgloss.Color("#3A3A3A")
)

func problemLabel(p model.Problem) string {
	parts := make([]string, len(p.Operands))
	for i, v := range p.Operands {
		parts[i] = strconv.Itoa(v)
	}
	return strings.Join(parts, " "+p.Op.Symbol()+" ")
}

// boardTiles lays the snapshot out as two columns: problems then answers.
func boardTiles(v game.View, cursor [2]int, column int, sparkle *game.Point) [2][]tile {
	var cols [2][]tile
	for _, p := range v.Problems {
		cols[columnProblems] = append(cols[columnProblems], tile{
			id:    p.ID,
			label: problemLabel(p),
			state: tileStateFor(p.ID, v.SelectedProblem, v.Removing),
		})
	}
	for _, a := range v.Answers {
		cols[columnAnswers] = append(cols[columnAnswers], tile{
			id:    a.ID,
			label: strconv.Itoa(a.Value),
			state: tileStateFor(a.ID, v.SelectedAnswer, v.Removing),
		})
	}
	for c := range cols {
		if c == column && cursor[c] < len(cols[c]) {
			cols[c][cursor[c]].focused = true
		}
		if sparkle != nil && sparkle.X == c && sparkle.Y < len(cols[c]) {
			cols[c][sparkle.Y].sparkle = true
		}
	}
	return cols
}

func tileStateFor(id, selected string, removing map[string]bool) tileState {
	switch {
	case removing[id]:
		return tileRemoving
	case id == selected:
		return tileSelected
	default:
		return tileIdle
	}
}

func columnWidth(title string, tiles []tile) int {
	width := runewidth.StringWidth(title)
	for _, t := range tiles {
		width = max(width, runewidth.StringWidth(t.label)+4)
	}
	return width
}

// renderTile pads the label to width display cells before styling so
// columns line up with wide glyphs such as × and ÷.
func renderTile(t tile, width int) string {
	marker := "  "
	if t.focused {
		marker = "› "
	}
	suffix := "  "
	if t.sparkle {
		suffix = " ✦"
	}
	inner := max(width-runewidth.StringWidth(marker)-runewidth.StringWidth(suffix), 0)
	body := runewidth.FillRight(runewidth.Truncate(t.label, inner, ""), inner)

	style := idleStyle
	switch t.state {
	case tileSelected:
		style = selectedStyle
	case tileRemoving:
		style = removingStyle
	}
	if t.focused {
		style = style.Inherit(focusStyle)
	}
	return marker + style.Render(body) + suffix
}

func renderColumn(title string, tiles []tile) string {
	width := columnWidth(title, tiles)
	lines := make([]string, 0, len(tiles)+2)
	lines = append(lines, titleStyle.Render(runewidth.FillRight(title, width)), "")
	for _, t := range tiles {
		lines = append(lines, renderTile(t, width))
	}
	return strings.Join(lines, "\n")
}

func renderBoard(cols [2][]tile, boss game.BossView) string {
	board := lipgloss.JoinHorizontal(lipgloss.Top,
		renderColumn("Problems", cols[columnProblems]),
		"    ",
		renderColumn("Answers", cols[columnAnswers]),
	)
	border := boardBorder
	if boss.Active {
		border = bossPalette[boss.ColorIndex%len(bossPalette)]
	}
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(border).
		Padding(0, 2).
		Render(board)
}
