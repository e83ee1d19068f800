package transform

import "github.com/de-tools/sales-reports/pkg/models/domain"

// Normalizer replaces known long-form values with their short code.
//
// A permissive normalizer (Strict false) passes unmapped values through
// unchanged. A strict one reports them as unknown so the caller can drop the
// row. Which mode applies is decided per report.
type Normalizer struct {
	Mapping map[string]string
	Strict  bool
}

// NewDirectorateNormalizer maps directorate long names to their codes.
func NewDirectorateNormalizer(strict bool) Normalizer {
	return Normalizer{Mapping: domain.DirectorateNames, Strict: strict}
}

// Normalize returns the short code for value. ok is false only for a strict
// normalizer and an unmapped value.
func (n Normalizer) Normalize(value string) (string, bool) {
	if code, found := n.Mapping[value]; found {
		return code, true
	}
	if n.Strict {
		return "", false
	}
	return value, true
}

// Apply writes the normalized value of from into to for every row. Rows a
// strict normalizer does not know are left out of the result.
func (n Normalizer) Apply(rows []domain.Row, from, to string) []domain.Row {
	out := make([]domain.Row, 0, len(rows))
	for _, row := range rows {
		code, ok := n.Normalize(row.String(from))
		if !ok {
			continue
		}
		row[to] = code
		out = append(out, row)
	}
	return out
}
