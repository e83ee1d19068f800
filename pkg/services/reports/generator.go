package reports

import (
	"context"

	"github.com/de-tools/sales-reports/pkg/models/domain"
	"github.com/de-tools/sales-reports/pkg/store/sheets"
)

// InputSpec describes one input file a generator consumes.
type InputSpec struct {
	Name        string
	Description string
	Options     sheets.Options
}

// Inputs holds the decoded input tables keyed by InputSpec.Name.
type Inputs map[string]*domain.Table

// Generator turns input tables into a report. Implementations keep no state
// between runs.
type Generator interface {
	Name() string
	Title() string
	Description() string
	Inputs() []InputSpec
	Generate(ctx context.Context, in Inputs) (*domain.Report, error)
}

func cloneRows(rows []domain.Row) []domain.Row {
	out := make([]domain.Row, len(rows))
	for i, r := range rows {
		out[i] = r.Clone()
	}
	return out
}

func cloneTable(t *domain.Table) *domain.Table {
	return &domain.Table{
		Name:    t.Name,
		Columns: append([]string(nil), t.Columns...),
		Rows:    cloneRows(t.Rows),
	}
}

func requireColumns(report, input string, t *domain.Table, cols ...string) error {
	if missing := t.MissingColumns(cols...); len(missing) > 0 {
		return domain.NewMissingColumnsError(report, input, missing)
	}
	return nil
}

func requireInput(report string, in Inputs, name string) (*domain.Table, error) {
	t, ok := in[name]
	if !ok || t == nil {
		return nil, &domain.ValidationError{Report: report, Input: name, Reason: "input file not provided"}
	}
	return t, nil
}
