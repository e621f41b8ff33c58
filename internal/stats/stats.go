// Package stats contains statistics calculations and reporting.
package stats

import (
	"fmt"
	"io"
	"math"
	"strings"
	"time"

	"github.com/verte-zerg/tuibonds/internal/model"
)

const sparkChars = " .:-=+*#%@"

// GameMetrics computes accuracy and points per minute for a game.
func GameMetrics(g model.GameRecord) (accuracy, perMinute float64) {
	if attempts := g.Solved + g.Wrong; attempts > 0 {
		accuracy = float64(g.Solved) / float64(attempts)
	}
	if g.DurationMs > 0 {
		perMinute = float64(g.Score) / (float64(g.DurationMs) / 60000.0)
	}
	return accuracy, perMinute
}

// Summary aggregates a set of games.
type Summary struct {
	Games        int
	TotalScore   int
	BestScore    int
	AvgScore     float64
	AvgAccuracy  float64
	Solved       int
	Wrong        int
	BestStreak   int
	FastSolves   int
	BossRuns     int
	HighestLevel int
	PlayTime     time.Duration
}

// Summarize folds games into a Summary.
func Summarize(games []model.GameRecord) Summary {
	var s Summary
	if len(games) == 0 {
		return s
	}
	var totalAcc float64
	for _, g := range games {
		acc, _ := GameMetrics(g)
		totalAcc += acc
		s.TotalScore += g.Score
		s.BestScore = max(s.BestScore, g.Score)
		s.Solved += g.Solved
		s.Wrong += g.Wrong
		s.BestStreak = max(s.BestStreak, g.MaxStreak)
		s.FastSolves += g.FastSolves
		s.BossRuns += g.BossRuns
		s.HighestLevel = max(s.HighestLevel, g.Level)
		s.PlayTime += time.Duration(g.DurationMs) * time.Millisecond
	}
	s.Games = len(games)
	s.AvgScore = float64(s.TotalScore) / float64(s.Games)
	s.AvgAccuracy = totalAcc / float64(s.Games)
	return s
}

// MovingAverage computes a rolling mean over the provided window size.
func MovingAverage(values []float64, window int) []float64 {
	if window <= 1 || len(values) == 0 {
		out := make([]float64, len(values))
		copy(out, values)
		return out
	}
	out := make([]float64, len(values))
	var sum float64
	for i := 0; i < len(values); i++ {
		sum += values[i]
		if i >= window {
			sum -= values[i-window]
		}
		den := float64(i + 1)
		if i >= window {
			den = float64(window)
		}
		out[i] = sum / den
	}
	return out
}

// Sparkline renders a single-line ASCII sparkline for the values.
func Sparkline(values []float64) string {
	if len(values) == 0 {
		return ""
	}
	lo, hi := bounds(values)
	if math.Abs(hi-lo) < 1e-9 {
		return strings.Repeat(string(sparkChars[len(sparkChars)/2]), len(values))
	}
	var b strings.Builder
	for _, v := range values {
		idx := int(math.Round((v - lo) / (hi - lo) * float64(len(sparkChars)-1)))
		idx = min(max(idx, 0), len(sparkChars)-1)
		b.WriteByte(sparkChars[idx])
	}
	return b.String()
}

// Scores returns the score of each game in order.
func Scores(games []model.GameRecord) []float64 {
	out := make([]float64, len(games))
	for i, g := range games {
		out[i] = float64(g.Score)
	}
	return out
}

// RenderSummary prints a summary block for games.
func RenderSummary(w io.Writer, games []model.GameRecord, window int) error {
	if len(games) == 0 {
		_, err := fmt.Fprintln(w, "No games found.")
		return err
	}
	s := Summarize(games)
	lines := []string{
		"Summary",
		fmt.Sprintf("Games: %d", s.Games),
		fmt.Sprintf("Best score: %d", s.BestScore),
		fmt.Sprintf("Avg score: %.1f", s.AvgScore),
		fmt.Sprintf("Avg accuracy: %.1f%%", s.AvgAccuracy*100),
		fmt.Sprintf("Solved: %d  Wrong: %d  Fast: %d", s.Solved, s.Wrong, s.FastSolves),
		fmt.Sprintf("Best streak: %d  Boss runs: %d  Highest level: %d", s.BestStreak, s.BossRuns, s.HighestLevel),
		fmt.Sprintf("Play time: %s", s.PlayTime.Round(time.Second)),
		fmt.Sprintf("Trend: %s", Sparkline(MovingAverage(Scores(games), window))),
		"",
	}
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

// RenderCurves plots score and accuracy, smoothed over window games.
func RenderCurves(w io.Writer, games []model.GameRecord, window, totalWidth, height int, useColor bool) error {
	if len(games) == 0 {
		return nil
	}
	accs := make([]float64, len(games))
	for i, g := range games {
		acc, _ := GameMetrics(g)
		accs[i] = acc * 100
	}
	width := 0
	if totalWidth > 0 {
		width = PlotWidthFor(totalWidth)
	}
	return PlotSeries(w, "Progress", []Series{
		{Name: "Score", Values: MovingAverage(Scores(games), window)},
		{Name: "Accuracy", Values: MovingAverage(accs, window)},
	}, width, height, useColor)
}

// RenderHistory prints the most recent games, newest first.
func RenderHistory(w io.Writer, games []model.GameRecord, limit int) error {
	if len(games) == 0 {
		_, err := fmt.Fprintln(w, "No games found.")
		return err
	}
	headers, rows := HistoryRows(games, limit)
	for _, line := range formatTable(headers, rows, map[int]bool{2: true, 3: true, 4: true, 5: true, 6: true}) {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

// HistoryRows builds history table cells, newest first.
func HistoryRows(games []model.GameRecord, limit int) ([]string, [][]string) {
	headers := []string{"Ended", "Player", "Score", "Solved", "Acc", "Streak", "Level", "Difficulty"}
	if limit <= 0 || limit > len(games) {
		limit = len(games)
	}
	rows := make([][]string, 0, limit)
	for i := len(games) - 1; i >= len(games)-limit; i-- {
		g := games[i]
		acc, _ := GameMetrics(g)
		player := g.Player
		if player == "" {
			player = "-"
		}
		rows = append(rows, []string{
			g.EndedAt.Local().Format("2006-01-02 15:04"),
			player,
			fmt.Sprintf("%d", g.Score),
			fmt.Sprintf("%d", g.Solved),
			fmt.Sprintf("%.0f%%", acc*100),
			fmt.Sprintf("%d", g.MaxStreak),
			fmt.Sprintf("%d", g.Level),
			difficultyLabel(g),
		})
	}
	return headers, rows
}

func difficultyLabel(g model.GameRecord) string {
	return fmt.Sprintf("%d-%d x%d %s", g.MinNumber, g.MaxNumber, g.OperandCount, g.Operations)
}

func bounds(values []float64) (float64, float64) {
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, v := range values {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	if math.IsInf(lo, 1) {
		return 0, 0
	}
	return lo, hi
}
