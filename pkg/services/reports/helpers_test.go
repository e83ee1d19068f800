package reports

import (
	"context"
	"time"

	"github.com/de-tools/sales-reports/pkg/models/domain"
	"github.com/rs/zerolog"
)

var fixedNow = func() time.Time { return time.Date(2025, 3, 14, 9, 5, 0, 0, time.UTC) }

func testContext() context.Context {
	return zerolog.Nop().WithContext(context.Background())
}

func newTable(name string, rows ...domain.Row) *domain.Table {
	seen := map[string]bool{}
	t := &domain.Table{Name: name, Rows: rows}
	for _, r := range rows {
		for col := range r {
			if !seen[col] {
				seen[col] = true
				t.Columns = append(t.Columns, col)
			}
		}
	}
	return t
}

func findSheet(r *domain.Report, name string) *domain.Sheet {
	for i := range r.Sheets {
		if r.Sheets[i].Name == name {
			return &r.Sheets[i]
		}
	}
	return nil
}

// column returns the values of col in sheet order.
func column(s *domain.Sheet, col string) []any {
	idx := -1
	for i, c := range s.Columns {
		if c.Name == col {
			idx = i
		}
	}
	if idx < 0 {
		return nil
	}
	out := make([]any, 0, len(s.Rows))
	for _, r := range s.Rows {
		out = append(out, r.Values[idx])
	}
	return out
}
