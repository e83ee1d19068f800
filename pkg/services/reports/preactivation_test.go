package reports

import (
	"testing"

	"github.com/de-tools/sales-reports/pkg/models/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestPreactivation() *Preactivation {
	return &Preactivation{now: fixedNow}
}

func TestPreactivation_SingleClosedRow(t *testing.T) {
	sales := newTable("sales", domain.Row{
		"LOGIN_VENDEUR":   "u1",
		"intensite":       "85",
		"ACCUEIL_VENDEUR": "BOUTIQUE CENTRE (RAVT01)",
		"COMMENTAIRE":     "PREACTIVATION OK",
	})

	report, err := newTestPreactivation().Generate(testContext(), Inputs{InputSales: sales})
	require.NoError(t, err)

	assert.Equal(t, "Reporting_Final_Preactivations.xlsx", report.FileName)
	require.Len(t, report.Sheets, 1)
	assert.Empty(t, report.Notices)

	sheet := report.Sheets[0]
	assert.Equal(t, "LOGIN CLOTURES", sheet.Name)
	assert.Equal(t, []string{
		"DR", "RAVT", "ACCUEIL", "PRENOM_VENDEUR", "NOM_VENDEUR",
		"LOGIN", "PREACTIVATIONS", "CRITERE_INTENSITE", "STATUT",
	}, sheet.ColumnNames())
	require.Len(t, sheet.Rows, 1)
	assert.Equal(t, []any{"", "RAVT01", "BOUTIQUE CENTRE", "", "", "u1", 1, 85.0, "clôturé"}, sheet.Rows[0].Values)

	require.NotNil(t, report.Preview)
	assert.Len(t, report.Preview.Rows, 1)
}

func TestPreactivation_SplitsAndGroups(t *testing.T) {
	sales := newTable("sales",
		domain.Row{"LOGIN_VENDEUR": "u1", "intensite": 90.0, "ACCUEIL_VENDEUR": "PVT LOUGA (R1)", "preactivateur": "preactivation", "AGENCE_VENDEUR": "DV-DRVN_DIRECTION REGIONALE DES VENTES NORD", "PRENOM_VENDEUR": "Awa"},
		domain.Row{"LOGIN_VENDEUR": "u1", "intensite": 70.0, "ACCUEIL_VENDEUR": "PVT LOUGA (R1)", "preactivateur": "PREACTIVATION", "AGENCE_VENDEUR": "DV-DRVN_DIRECTION REGIONALE DES VENTES NORD", "PRENOM_VENDEUR": "Awa"},
		domain.Row{"LOGIN_VENDEUR": "u1", "intensite": 80.0, "ACCUEIL_VENDEUR": "PVT LOUGA (R1)", "preactivateur": "PREACTIVATION", "AGENCE_VENDEUR": "DV-DRVN_DIRECTION REGIONALE DES VENTES NORD", "PRENOM_VENDEUR": nil},
		domain.Row{"LOGIN_VENDEUR": "u2", "intensite": 95.0, "ACCUEIL_VENDEUR": "BOUTIQUE THIES", "preactivateur": "PREACTIVATION", "AGENCE_VENDEUR": "AGENCE INCONNUE"},
		domain.Row{"LOGIN_VENDEUR": "u3", "intensite": 99.0, "ACCUEIL_VENDEUR": "KIOSQUE (R2)", "preactivateur": "PREACTIVATION"},
		domain.Row{"LOGIN_VENDEUR": "u4", "intensite": 99.0, "ACCUEIL_VENDEUR": "PVT X (R3)", "preactivateur": "ACTIVATION"},
		domain.Row{"LOGIN_VENDEUR": "u5", "intensite": "n/a", "ACCUEIL_VENDEUR": "PVT Y (R4)", "preactivateur": "PREACTIVATION"},
	)

	report, err := newTestPreactivation().Generate(testContext(), Inputs{InputSales: sales})
	require.NoError(t, err)
	require.Len(t, report.Sheets, 2)

	closed := findSheet(report, "LOGIN CLOTURES")
	require.NotNil(t, closed)
	assert.Equal(t, []any{"u2", "u1"}, column(closed, "LOGIN"))
	assert.Equal(t, []any{1, 2}, column(closed, "PREACTIVATIONS"))
	assert.Equal(t, []any{95.0, 85.0}, column(closed, "CRITERE_INTENSITE"))
	assert.Equal(t, []any{"AGENCE INCONNUE", "DRN"}, column(closed, "DR"))
	assert.Equal(t, []any{"", "R1"}, column(closed, "RAVT"))
	assert.Equal(t, []any{"", "Awa"}, column(closed, "PRENOM_VENDEUR"))

	pending := findSheet(report, "PREACTIVATIONS")
	require.NotNil(t, pending)
	assert.Equal(t, []any{"u1", "u5"}, column(pending, "LOGIN"))
	assert.Equal(t, []any{"PREACTIVATION", "PREACTIVATION"}, column(pending, "PREACTIVATION"))
	assert.Equal(t, []any{70.0, 0.0}, column(pending, "CRITERE_INTENSITE"))

	codes := map[string]int{}
	for _, n := range report.Notices {
		codes[n.Code] += n.Count
	}
	assert.Equal(t, 1, codes["intensity_coerced"])
	assert.Equal(t, 1, codes["missing_ravt"])
}

func TestPreactivation_NaNIntensityCountsAsZero(t *testing.T) {
	sales := newTable("sales",
		domain.Row{"LOGIN_VENDEUR": "u1", "intensite": "nan", "ACCUEIL_VENDEUR": "PVT A (R1)"},
		domain.Row{"LOGIN_VENDEUR": "u1", "intensite": "50", "ACCUEIL_VENDEUR": "PVT A (R1)"},
	)

	report, err := newTestPreactivation().Generate(testContext(), Inputs{InputSales: sales})
	require.NoError(t, err)
	require.Len(t, report.Sheets, 1)

	pending := findSheet(report, "PREACTIVATIONS")
	require.NotNil(t, pending)
	assert.Equal(t, []any{2}, column(pending, "PREACTIVATIONS"))
	assert.Equal(t, []any{25.0}, column(pending, "CRITERE_INTENSITE"))

	require.Len(t, report.Notices, 1)
	assert.Equal(t, "intensity_coerced", report.Notices[0].Code)
	assert.Equal(t, 1, report.Notices[0].Count)
}

func TestPreactivation_PreviewOrderedByCount(t *testing.T) {
	var rows []domain.Row
	add := func(login string, n int) {
		for i := 0; i < n; i++ {
			rows = append(rows, domain.Row{"LOGIN_VENDEUR": login, "intensite": 100.0, "ACCUEIL_VENDEUR": "PVT A (R)"})
		}
	}
	add("low", 1)
	add("high", 3)
	add("mid", 2)

	report, err := newTestPreactivation().Generate(testContext(), Inputs{InputSales: newTable("sales", rows...)})
	require.NoError(t, err)

	require.NotNil(t, report.Preview)
	assert.Equal(t, []any{"high", "mid", "low"}, column(report.Preview, "LOGIN"))
}

func TestPreactivation_Validation(t *testing.T) {
	tests := []struct {
		name    string
		in      Inputs
		missing []string
	}{
		{
			name: "no input",
			in:   Inputs{},
		},
		{
			name:    "missing columns",
			in:      Inputs{InputSales: newTable("sales", domain.Row{"LOGIN_VENDEUR": "u1"})},
			missing: []string{"intensite", "ACCUEIL_VENDEUR"},
		},
		{
			name: "nothing left after filters",
			in: Inputs{InputSales: newTable("sales", domain.Row{
				"LOGIN_VENDEUR": "u1", "intensite": 90.0, "ACCUEIL_VENDEUR": "KIOSQUE (R1)",
			})},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := newTestPreactivation().Generate(testContext(), tt.in)

			var verr *domain.ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, PreactivationReport, verr.Report)
			assert.Equal(t, tt.missing, verr.Missing)
		})
	}
}
