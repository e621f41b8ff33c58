package statsui

import (
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"
)

var tableMutedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#B8B8B8"))

// tableView wraps a bubbles table whose columns size to their content.
type tableView struct {
	table  table.Model
	width  int
	height int
}

func newTableView() *tableView {
	t := table.New(table.WithHeight(1))
	t.SetStyles(tableStyles())
	return &tableView{table: t}
}

func (tv *tableView) setData(headers []string, rows [][]string) {
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = lipgloss.Width(h)
	}
	out := make([]table.Row, 0, len(rows))
	for _, row := range rows {
		for i, cell := range row {
			if i < len(widths) {
				widths[i] = max(widths[i], lipgloss.Width(cell))
			}
		}
		out = append(out, table.Row(row))
	}
	cols := make([]table.Column, len(headers))
	for i, h := range headers {
		cols[i] = table.Column{Title: h, Width: widths[i]}
	}
	// Columns first: rows longer than the current column set would panic.
	tv.table.SetRows(nil)
	tv.table.SetColumns(cols)
	tv.table.SetRows(out)
}

// resize fits the table to the body. The header and its border take two lines.
func (tv *tableView) resize(width, height int) {
	if tv.width == width && tv.height == height {
		return
	}
	tv.width = width
	tv.height = height
	tv.table.SetWidth(width)
	tv.table.SetHeight(max(1, height-2))
}

func (tv *tableView) View() string {
	return tableMutedStyle.Render(tv.table.View())
}

func tableStyles() table.Styles {
	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		Border(lipgloss.NormalBorder(), false, false, true, false).
		BorderForeground(lipgloss.Color("#4A4A4A")).
		Foreground(lipgloss.Color("#C0C0C0")).
		Bold(true).
		Padding(0, 1).
		PaddingLeft(0)
	styles.Cell = styles.Cell.
		Padding(0, 1).
		PaddingLeft(0)
	styles.Selected = styles.Cell.
		Foreground(lipgloss.Color("#F0F0F0")).
		Bold(true)
	return styles
}
