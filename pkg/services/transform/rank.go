package transform

import (
	"sort"

	"github.com/de-tools/sales-reports/pkg/models/domain"
)

// SortDesc returns a copy of rows ordered by measure, highest first. Rows
// with equal measures keep their input order.
func SortDesc(rows []domain.Row, measure string) []domain.Row {
	out := make([]domain.Row, len(rows))
	copy(out, rows)
	sort.SliceStable(out, func(i, j int) bool {
		return NumberOrZero(out[i][measure]) > NumberOrZero(out[j][measure])
	})
	return out
}

// Rank sorts rows by measure, highest first, and stores the 1-based position
// in rankColumn. Ties get distinct consecutive ranks.
func Rank(rows []domain.Row, measure, rankColumn string) []domain.Row {
	sorted := SortDesc(rows, measure)
	for i, row := range sorted {
		ranked := row.Clone()
		ranked[rankColumn] = i + 1
		sorted[i] = ranked
	}
	return sorted
}
