package transform

import (
	"math"
	"strings"

	"github.com/de-tools/sales-reports/pkg/models/domain"
	"github.com/spf13/cast"
)

// Number converts v to a float64. ok is false for null, empty and non-numeric
// values, in which case the returned number is 0.
func Number(v any) (float64, bool) {
	switch t := v.(type) {
	case nil:
		return 0, false
	case float64:
		return finite(t)
	case bool:
		return 0, false
	case string:
		s := strings.TrimSpace(t)
		if s == "" {
			return 0, false
		}
		f, err := cast.ToFloat64E(s)
		if err != nil {
			return 0, false
		}
		return finite(f)
	}
	f, err := cast.ToFloat64E(v)
	if err != nil {
		return 0, false
	}
	return finite(f)
}

// finite rejects NaN and the infinities, "nan" and "inf" cells included.
func finite(f float64) (float64, bool) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// NumberOrZero is Number without the ok flag.
func NumberOrZero(v any) float64 {
	f, _ := Number(v)
	return f
}

// CoerceNumbers replaces col on every row with its numeric value, using 0 for
// anything that is not a number. It returns how many rows were coerced.
func CoerceNumbers(rows []domain.Row, col string) int {
	coerced := 0
	for _, row := range rows {
		f, ok := Number(row[col])
		if !ok {
			coerced++
		}
		row[col] = f
	}
	return coerced
}

// Round2 rounds to two decimals.
func Round2(f float64) float64 {
	return math.Round(f*100) / 100
}
