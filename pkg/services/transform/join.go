package transform

import (
	"strings"

	"github.com/de-tools/sales-reports/pkg/models/domain"
	"github.com/samber/lo"
)

// InnerJoin pairs every left row with every right row sharing the same key
// value. Rows without a match on the other side, or with a null key, are
// dropped. Right-hand values win for columns present on both sides.
func InnerJoin(left, right []domain.Row, key string) []domain.Row {
	_, index := GroupBy(right, key)

	var out []domain.Row
	for _, l := range left {
		k, ok := groupKey(l, []string{key})
		if !ok {
			continue
		}
		for _, r := range index[k] {
			merged := l.Clone()
			for col, v := range r {
				merged[col] = v
			}
			out = append(out, merged)
		}
	}
	return out
}

// DedupFirst keeps the first row for each distinct combination of keys. Null
// values compare equal to each other.
func DedupFirst(rows []domain.Row, keys ...string) []domain.Row {
	return lo.UniqBy(rows, func(row domain.Row) string {
		parts := make([]string, len(keys))
		for i, k := range keys {
			if row.IsNull(k) {
				parts[i] = "\x00"
				continue
			}
			parts[i] = row.String(k)
		}
		return strings.Join(parts, keySep)
	})
}

// Project keeps only cols on each row.
func Project(rows []domain.Row, cols ...string) []domain.Row {
	return lo.Map(rows, func(row domain.Row, _ int) domain.Row {
		out := make(domain.Row, len(cols))
		for _, c := range cols {
			out[c] = row[c]
		}
		return out
	})
}
