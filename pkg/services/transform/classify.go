package transform

import (
	"strings"

	"github.com/de-tools/sales-reports/pkg/models/domain"
	"github.com/samber/lo"
)

// IntensityThreshold separates closed activations from rejected ones. A value
// equal to the threshold is closed.
const IntensityThreshold = 80

// Predicate decides whether a row is kept.
type Predicate func(row domain.Row) bool

// Filter keeps the rows matching every predicate.
func Filter(rows []domain.Row, preds ...Predicate) []domain.Row {
	return lo.Filter(rows, func(row domain.Row, _ int) bool {
		for _, p := range preds {
			if !p(row) {
				return false
			}
		}
		return true
	})
}

// ThresholdSplit partitions rows on the numeric value of col. Non-numeric and
// missing values count as 0.
func ThresholdSplit(rows []domain.Row, col string, threshold float64) (closed, rejected []domain.Row) {
	for _, row := range rows {
		if NumberOrZero(row[col]) >= threshold {
			closed = append(closed, row)
		} else {
			rejected = append(rejected, row)
		}
	}
	return closed, rejected
}

// Contains matches rows whose col contains substr, ignoring case.
func Contains(col, substr string) Predicate {
	needle := strings.ToUpper(substr)
	return func(row domain.Row) bool {
		if row.IsNull(col) {
			return false
		}
		return strings.Contains(strings.ToUpper(row.String(col)), needle)
	}
}

// HasPrefix matches rows whose trimmed col starts with one of prefixes.
func HasPrefix(col string, foldCase bool, prefixes ...string) Predicate {
	return func(row domain.Row) bool {
		return hasAnyPrefix(row.String(col), foldCase, prefixes)
	}
}

// ChannelPrefix matches rows whose channel label, derived from col, starts
// with one of prefixes, ignoring case.
func ChannelPrefix(col string, prefixes ...string) Predicate {
	return func(row domain.Row) bool {
		return hasAnyPrefix(ExtractChannel(row[col]).Label, true, prefixes)
	}
}

func hasAnyPrefix(s string, foldCase bool, prefixes []string) bool {
	if foldCase {
		s = strings.ToUpper(s)
	}
	for _, p := range prefixes {
		if foldCase {
			p = strings.ToUpper(p)
		}
		if strings.HasPrefix(s, p) {
			return true
		}
	}
	return false
}

// NotBlank matches rows whose col holds a non-empty value.
func NotBlank(col string) Predicate {
	return func(row domain.Row) bool {
		return row.String(col) != ""
	}
}

// NotNull matches rows where every col holds a value.
func NotNull(cols ...string) Predicate {
	return func(row domain.Row) bool {
		for _, c := range cols {
			if row.IsNull(c) {
				return false
			}
		}
		return true
	}
}
