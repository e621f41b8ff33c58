package statsui

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/tuibonds/internal/stats"
)

const plotHeight = 10

var (
	cardStyle = lipgloss.NewStyle().
			Padding(0, 1).
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#4A4A4A"))
	cardTitleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	cardValueStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")).Bold(true)
	sectionStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A")).Bold(true)
)

func renderOverview(r stats.Report, window, width int) string {
	if len(r.Games) == 0 {
		return "No games found."
	}
	trend := headerStyle.Render("Score trend: " + stats.Sparkline(stats.MovingAverage(stats.Scores(r.Games), window)))
	parts := []string{
		renderSummaryCards(r.Summary, width) + "\n" + trend,
		renderCurves(r, window, width),
		renderWeak(r.Weak),
		renderTop(r),
	}
	return strings.TrimRight(strings.Join(parts, "\n\n"), "\n")
}

func renderSummaryCards(s stats.Summary, width int) string {
	cards := []string{
		metricCard("Games", fmt.Sprintf("%d", s.Games)),
		metricCard("Best Score", fmt.Sprintf("%d", s.BestScore)),
		metricCard("Avg Score", fmt.Sprintf("%.0f", s.AvgScore)),
		metricCard("Avg Acc", fmt.Sprintf("%.1f%%", s.AvgAccuracy*100)),
		metricCard("Best Streak", fmt.Sprintf("%d", s.BestStreak)),
		metricCard("Boss Runs", fmt.Sprintf("%d", s.BossRuns)),
	}
	if width < 80 {
		return strings.Join(cards, "\n")
	}
	row1 := lipgloss.JoinHorizontal(lipgloss.Top, cards[0], cards[1], cards[2])
	row2 := lipgloss.JoinHorizontal(lipgloss.Top, cards[3], cards[4], cards[5])
	return lipgloss.JoinVertical(lipgloss.Left, row1, row2)
}

func metricCard(label, value string) string {
	content := fmt.Sprintf("%s\n%s", cardTitleStyle.Render(label), cardValueStyle.Render(value))
	return cardStyle.Render(content)
}

func renderCurves(r stats.Report, window, width int) string {
	var buf bytes.Buffer
	if err := stats.RenderCurves(&buf, r.Games, window, width, plotHeight, true); err != nil {
		return fmt.Sprintf("Failed to render curves: %v", err)
	}
	return strings.TrimRight(buf.String(), "\n")
}

func renderWeak(weak []stats.OperationStat) string {
	lines := []string{sectionStyle.Render("Operations by accuracy")}
	for _, w := range weak {
		ops := w.Operations
		if ops == "" {
			ops = "-"
		}
		lines = append(lines, fmt.Sprintf("  %-40s %5.1f%%  %d games  best %d", ops, w.Accuracy()*100, w.Games, w.BestScore))
	}
	return strings.Join(lines, "\n")
}

func renderTop(r stats.Report) string {
	lines := []string{sectionStyle.Render("Top games")}
	for i, g := range r.Top {
		player := g.Player
		if player == "" {
			player = "-"
		}
		lines = append(lines, fmt.Sprintf("  %d. %-12s %6d  level %d  %s", i+1, player, g.Score, g.Level, g.EndedAt.Local().Format("2006-01-02")))
	}
	return strings.Join(lines, "\n")
}
