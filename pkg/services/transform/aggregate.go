package transform

import (
	"strings"

	"github.com/de-tools/sales-reports/pkg/models/domain"
)

type Op int

const (
	// First keeps the first non-null value met for the group. When rows of a
	// group disagree, the earliest row in input order wins.
	First Op = iota
	Sum
	Mean
	Count
)

// Reduction describes how one output column of an aggregate is computed.
type Reduction struct {
	Column string
	Op     Op
	// As names the output column; Column is used when empty.
	As string
}

func (r Reduction) output() string {
	if r.As != "" {
		return r.As
	}
	return r.Column
}

const keySep = "\x1f"

// groupKey builds the composite key of row. ok is false when one of the key
// columns is null, such rows do not belong to any group.
func groupKey(row domain.Row, keys []string) (string, bool) {
	parts := make([]string, len(keys))
	for i, k := range keys {
		if row.IsNull(k) {
			return "", false
		}
		parts[i] = row.String(k)
	}
	return strings.Join(parts, keySep), true
}

// GroupBy partitions rows on keys. order lists the group keys as first seen.
func GroupBy(rows []domain.Row, keys ...string) (order []string, groups map[string][]domain.Row) {
	groups = make(map[string][]domain.Row)
	for _, row := range rows {
		k, ok := groupKey(row, keys)
		if !ok {
			continue
		}
		if _, seen := groups[k]; !seen {
			order = append(order, k)
		}
		groups[k] = append(groups[k], row)
	}
	return order, groups
}

// Aggregate returns one row per distinct value of keys, in first-seen order.
// Output rows hold the key columns and one column per reduction.
func Aggregate(rows []domain.Row, keys []string, reductions []Reduction) []domain.Row {
	order, groups := GroupBy(rows, keys...)

	out := make([]domain.Row, 0, len(order))
	for _, k := range order {
		members := groups[k]
		agg := make(domain.Row, len(keys)+len(reductions))
		for _, key := range keys {
			agg[key] = members[0][key]
		}
		for _, r := range reductions {
			agg[r.output()] = reduce(members, r)
		}
		out = append(out, agg)
	}
	return out
}

func reduce(members []domain.Row, r Reduction) any {
	switch r.Op {
	case First:
		for _, m := range members {
			if !m.IsNull(r.Column) {
				return m[r.Column]
			}
		}
		return nil
	case Sum:
		return SumColumn(members, r.Column)
	case Mean:
		var total float64
		var n int
		for _, m := range members {
			if f, ok := Number(m[r.Column]); ok {
				total += f
				n++
			}
		}
		if n == 0 {
			return 0.0
		}
		return total / float64(n)
	case Count:
		return len(members)
	}
	return nil
}

// SumColumn adds up col over rows, non-numeric values contribute 0.
func SumColumn(rows []domain.Row, col string) float64 {
	var total float64
	for _, row := range rows {
		total += NumberOrZero(row[col])
	}
	return total
}
