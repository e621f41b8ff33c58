package stats

import (
	"fmt"
	"io"
	"strings"

	"github.com/verte-zerg/tuibonds/internal/badge"
)

// BadgeRows builds catalog table cells with earned marks.
func BadgeRows(earned []badge.ID) ([]string, [][]string) {
	have := badge.NewSet(earned...)
	headers := []string{"", "Badge", "Description", "Requires"}
	catalog := badge.Catalog()
	rows := make([][]string, 0, len(catalog))
	for _, b := range catalog {
		mark := "·"
		if have.Has(b.ID) {
			mark = "★"
		}
		requires := make([]string, 0, len(b.DependsOn))
		for _, dep := range b.DependsOn {
			if d, ok := badge.Lookup(dep); ok {
				requires = append(requires, d.Name)
			}
		}
		rows = append(rows, []string{mark, b.Name, b.Description, strings.Join(requires, ", ")})
	}
	return headers, rows
}

// RenderBadges prints the badge catalog with earned marks.
func RenderBadges(w io.Writer, earned []badge.ID) error {
	headers, rows := BadgeRows(earned)
	if _, err := fmt.Fprintf(w, "Badges (%d/%d)\n", countEarned(earned), len(rows)); err != nil {
		return err
	}
	for _, line := range formatTable(headers, rows, nil) {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

func countEarned(earned []badge.ID) int {
	n := 0
	for _, id := range badge.NewSet(earned...).Ordered() {
		if _, ok := badge.Lookup(id); ok {
			n++
		}
	}
	return n
}
