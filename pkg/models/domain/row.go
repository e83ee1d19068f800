package domain

import (
	"strings"

	"github.com/spf13/cast"
)

// Row is one record of a tabular input keyed by column name.
// Values are string, float64, int or nil (an empty cell).
type Row map[string]any

// String returns the value of col as a trimmed string, "" when absent or null.
func (r Row) String(col string) string {
	v, ok := r[col]
	if !ok || v == nil {
		return ""
	}
	return strings.TrimSpace(cast.ToString(v))
}

// IsNull reports whether col is absent or holds a null value.
func (r Row) IsNull(col string) bool {
	v, ok := r[col]
	return !ok || v == nil
}

func (r Row) Clone() Row {
	out := make(Row, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

// Table is a named-column dataset as produced by the input reader.
type Table struct {
	Name    string
	Columns []string
	Rows    []Row
}

func (t *Table) HasColumn(col string) bool {
	for _, c := range t.Columns {
		if c == col {
			return true
		}
	}
	return false
}

// MissingColumns returns the entries of required that are not table columns,
// in the order they were requested.
func (t *Table) MissingColumns(required ...string) []string {
	var missing []string
	for _, col := range required {
		if !t.HasColumn(col) {
			missing = append(missing, col)
		}
	}
	return missing
}

// RenameColumn renames from to to, unless from is absent or to already exists.
func (t *Table) RenameColumn(from, to string) bool {
	if !t.HasColumn(from) || t.HasColumn(to) {
		return false
	}
	for i, c := range t.Columns {
		if c == from {
			t.Columns[i] = to
		}
	}
	for _, row := range t.Rows {
		if v, ok := row[from]; ok {
			row[to] = v
			delete(row, from)
		}
	}
	return true
}

// EnsureColumn adds col with value def on every row when the table lacks it.
func (t *Table) EnsureColumn(col string, def any) {
	if t.HasColumn(col) {
		return
	}
	t.Columns = append(t.Columns, col)
	for _, row := range t.Rows {
		row[col] = def
	}
}
