package transform

import (
	"sort"

	"github.com/de-tools/sales-reports/pkg/models/domain"
)

// HierarchySpec drives a nested aggregation such as DR > SADI > RAVT.
type HierarchySpec struct {
	// Keys are the grouping columns from the outermost level inwards.
	Keys []string
	// Measures are summed at every level.
	Measures []string
	// Total is the measure used to skip empty groups.
	Total string
}

// Level is one emitted node of a hierarchical aggregate.
type Level struct {
	Depth int
	Key   string
	Rows  int
	Sums  map[string]float64
}

// Sum is the total of col over the group, 0 for a column that is not summed.
func (l Level) Sum(col string) float64 {
	return l.Sums[col]
}

// Hierarchy walks rows level by level, visiting the distinct keys of each
// level in lexicographic order. A group with no rows or a zero Total is not
// emitted and its children are not visited.
func Hierarchy(rows []domain.Row, spec HierarchySpec) []Level {
	return fold(rows, spec, 0, nil)
}

func fold(rows []domain.Row, spec HierarchySpec, depth int, out []Level) []Level {
	if depth >= len(spec.Keys) {
		return out
	}

	order, groups := GroupBy(rows, spec.Keys[depth])
	sort.Strings(order)

	for _, key := range order {
		members := groups[key]
		sums := make(map[string]float64, len(spec.Measures)+1)
		for _, m := range spec.Measures {
			sums[m] = SumColumn(members, m)
		}
		if _, ok := sums[spec.Total]; !ok {
			sums[spec.Total] = SumColumn(members, spec.Total)
		}

		if len(members) == 0 || sums[spec.Total] == 0 {
			continue
		}

		out = append(out, Level{
			Depth: depth,
			Key:   key,
			Rows:  len(members),
			Sums:  sums,
		})
		out = fold(members, spec, depth+1, out)
	}
	return out
}
