package reports

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/de-tools/sales-reports/pkg/models/domain"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const preactivationCSV = "LOGIN_VENDEUR;intensite;ACCUEIL_VENDEUR;COMMENTAIRE\n" +
	"u1;85;BOUTIQUE CENTRE (RAVT01);PREACTIVATION OK\n" +
	"u2;;PVT NORD (RAVT02);preactivation\n"

func TestRun_CSVInput(t *testing.T) {
	var logs bytes.Buffer
	ctx := zerolog.New(&logs).WithContext(context.Background())

	report, err := Run(ctx, &Preactivation{now: fixedNow}, map[string]Source{
		InputSales: {Name: "ventes.csv", Reader: strings.NewReader(preactivationCSV)},
	})
	require.NoError(t, err)

	closed := findSheet(report, "LOGIN CLOTURES")
	require.NotNil(t, closed)
	assert.Equal(t, []any{"u1"}, column(closed, "LOGIN"))

	pending := findSheet(report, "PREACTIVATIONS")
	require.NotNil(t, pending)
	assert.Equal(t, []any{"u2"}, column(pending, "LOGIN"))

	out := logs.String()
	assert.Contains(t, out, `"run_id":`)
	assert.Contains(t, out, `"report":"preactivation"`)
	assert.Contains(t, out, `"code":"intensity_coerced"`)
	assert.Contains(t, out, `"LOGIN CLOTURES":1`)
}

func TestRun_InputErrors(t *testing.T) {
	tests := []struct {
		name    string
		sources map[string]Source
		reason  string
	}{
		{
			name:    "missing slot",
			sources: map[string]Source{},
			reason:  "input file not provided",
		},
		{
			name: "xlsb",
			sources: map[string]Source{
				InputSales: {Name: "ventes.xlsb", Reader: strings.NewReader("x")},
			},
			reason: "unsupported file format",
		},
		{
			name: "corrupt workbook",
			sources: map[string]Source{
				InputSales: {Name: "ventes.xlsx", Reader: strings.NewReader("not a zip")},
			},
			reason: "cannot read ventes.xlsx",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Run(testContext(), NewPreactivation(), tt.sources)

			var verr *domain.ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, InputSales, verr.Input)
			assert.Contains(t, verr.Reason, tt.reason)
		})
	}
}
