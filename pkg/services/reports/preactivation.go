package reports

import (
	"context"
	"fmt"
	"time"

	"github.com/de-tools/sales-reports/pkg/models/domain"
	"github.com/de-tools/sales-reports/pkg/services/transform"
	"github.com/de-tools/sales-reports/pkg/store/sheets"
	"github.com/rs/zerolog"
)

const (
	PreactivationReport = "preactivation"

	InputSales = "sales"

	colLoginVendeur   = "LOGIN_VENDEUR"
	colIntensite      = "intensite"
	colAccueilVendeur = "ACCUEIL_VENDEUR"
	colAgenceVendeur  = "AGENCE_VENDEUR"
	colPreactivateur  = "preactivateur"
	colCommentaire    = "COMMENTAIRE"
	colPrenom         = "PRENOM_VENDEUR"
	colNom            = "NOM_VENDEUR"
	colDR             = "DR"
	colRAVT           = "RAVT"
	colAccueil        = "ACCUEIL"
	colLogin          = "LOGIN"
	colPreactivations = "PREACTIVATIONS"
	colCritere        = "CRITERE_INTENSITE"
	colStatut         = "STATUT"
	colPreactivation  = "PREACTIVATION"

	statusClosed      = "clôturé"
	statusPending     = "PREACTIVATION"
	sheetClosed       = "LOGIN CLOTURES"
	sheetPending      = "PREACTIVATIONS"
	preactivationFile = "Reporting_Final_Preactivations.xlsx"
	previewSize       = 10
)

var channelPrefixes = []string{"BOUTIQUE", "PVT"}

// Preactivation splits preactivated sales into closed and rejected logins.
type Preactivation struct {
	now func() time.Time
}

func NewPreactivation() *Preactivation {
	return &Preactivation{now: time.Now}
}

func (p *Preactivation) Name() string  { return PreactivationReport }
func (p *Preactivation) Title() string { return "Reporting Préactivations" }

func (p *Preactivation) Description() string {
	return "Tri sélectif des préactivations : clôtures avec statut / rejets"
}

func (p *Preactivation) Inputs() []InputSpec {
	return []InputSpec{{
		Name:        InputSales,
		Description: "Fichier de ventes global (détail en 2e feuille)",
		Options: sheets.Options{
			Sheets:     []int{1, 0},
			Delimiters: []rune{';', ',', '|'},
		},
	}}
}

func (p *Preactivation) Generate(ctx context.Context, in Inputs) (*domain.Report, error) {
	logger := zerolog.Ctx(ctx)

	table, err := requireInput(p.Name(), in, InputSales)
	if err != nil {
		return nil, err
	}
	if err := requireColumns(p.Name(), InputSales, table, colLoginVendeur, colIntensite, colAccueilVendeur); err != nil {
		return nil, err
	}

	var notices []domain.Notice
	rows := cloneRows(table.Rows)

	statusCol := colCommentaire
	if table.HasColumn(colPreactivateur) {
		statusCol = colPreactivateur
	}
	if table.HasColumn(statusCol) {
		rows = transform.Filter(rows, transform.Contains(statusCol, "PREACTIVATION"))
	}
	logger.Debug().Str("column", statusCol).Int("rows", len(rows)).Msg("preactivation rows selected")

	if coerced := transform.CoerceNumbers(rows, colIntensite); coerced > 0 {
		notices = append(notices, domain.Notice{
			Level:   domain.NoticeWarning,
			Code:    "intensity_coerced",
			Message: "intensité non numérique ou vide remplacée par 0",
			Count:   coerced,
		})
	}

	closed, rejected := transform.ThresholdSplit(rows, colIntensite, transform.IntensityThreshold)
	channel := transform.ChannelPrefix(colAccueilVendeur, channelPrefixes...)
	closed = transform.Filter(closed, channel)
	rejected = transform.Filter(rejected, channel)

	drSource := ""
	switch {
	case table.HasColumn(colDR):
		drSource = colDR
	case table.HasColumn(colAgenceVendeur):
		drSource = colAgenceVendeur
	}

	closedRows, missing := p.summarize(closed, drSource)
	if missing > 0 {
		notices = append(notices, missingSubUnitNotice(sheetClosed, missing))
	}
	rejectedRows, missing := p.summarize(rejected, drSource)
	if missing > 0 {
		notices = append(notices, missingSubUnitNotice(sheetPending, missing))
	}

	if len(closedRows) == 0 && len(rejectedRows) == 0 {
		return nil, &domain.ValidationError{
			Report: p.Name(),
			Input:  InputSales,
			Reason: "aucune préactivation BOUTIQUE ou PVT trouvée",
		}
	}

	report := &domain.Report{
		Name:        p.Name(),
		Title:       p.Title(),
		FileName:    preactivationFile,
		GeneratedAt: p.now(),
		Notices:     notices,
	}

	if len(closedRows) > 0 {
		sheet := preactivationSheet(sheetClosed, domain.Column{Name: colStatut, Width: 12, Kind: domain.KindStatus})
		for _, r := range closedRows {
			r[colStatut] = statusClosed
			sheet.AppendRow(r, domain.StylePlain)
		}
		report.Sheets = append(report.Sheets, sheet)
		report.Preview = closedPreview(closedRows)
	}

	if len(rejectedRows) > 0 {
		sheet := preactivationSheet(sheetPending, domain.Column{Name: colPreactivation, Width: 18, Kind: domain.KindNotice})
		for _, r := range rejectedRows {
			r[colPreactivation] = statusPending
			sheet.AppendRow(r, domain.StylePlain)
		}
		report.Sheets = append(report.Sheets, sheet)
	}

	logger.Info().
		Int("closed_logins", len(closedRows)).
		Int("rejected_logins", len(rejectedRows)).
		Msg("preactivation analysis done")

	return report, nil
}

// summarize groups one bucket by seller login. It returns the rows sorted by
// mean intensity and the number of rows without a RAVT code.
func (p *Preactivation) summarize(rows []domain.Row, drSource string) ([]domain.Row, int) {
	if len(rows) == 0 {
		return nil, 0
	}

	normalizer := transform.NewDirectorateNormalizer(false)
	missing := 0
	for _, row := range rows {
		ch := transform.ExtractChannel(row[colAccueilVendeur])
		if ch.SubUnit == "" {
			missing++
		}
		row[colRAVT] = ch.SubUnit
		row[colAccueil] = ch.Label

		dr := ""
		if drSource != "" {
			dr, _ = normalizer.Normalize(row.String(drSource))
		}
		row[colDR] = dr

		for _, col := range []string{colPrenom, colNom} {
			if _, ok := row[col]; !ok {
				row[col] = ""
			}
		}
	}

	grouped := transform.Aggregate(rows, []string{colLoginVendeur}, []transform.Reduction{
		{Column: colDR, Op: transform.First},
		{Column: colRAVT, Op: transform.First},
		{Column: colAccueil, Op: transform.First},
		{Column: colPrenom, Op: transform.First},
		{Column: colNom, Op: transform.First},
		{Column: colLoginVendeur, Op: transform.Count, As: colPreactivations},
		{Column: colIntensite, Op: transform.Mean, As: colCritere},
	})
	for _, g := range grouped {
		g[colLogin] = g[colLoginVendeur]
		delete(g, colLoginVendeur)
	}

	return transform.SortDesc(grouped, colCritere), missing
}

func preactivationSheet(name string, status domain.Column) domain.Sheet {
	return domain.Sheet{
		Name:       name,
		HeaderFill: "#4472C4",
		HeaderFont: "#FFFFFF",
		Columns: []domain.Column{
			{Name: colDR, Width: 10},
			{Name: colRAVT, Width: 15},
			{Name: colAccueil, Width: 30},
			{Name: colPrenom, Width: 20},
			{Name: colNom, Width: 20},
			{Name: colLogin, Width: 20},
			{Name: colPreactivations, Width: 15, Kind: domain.KindNumber},
			{Name: colCritere, Width: 18, Kind: domain.KindNumber},
			status,
		},
	}
}

func closedPreview(rows []domain.Row) *domain.Sheet {
	top := transform.SortDesc(rows, colPreactivations)
	if len(top) > previewSize {
		top = top[:previewSize]
	}
	preview := &domain.Sheet{
		Name: fmt.Sprintf("Top %d par préactivations", previewSize),
		Columns: []domain.Column{
			{Name: colLogin},
			{Name: colAccueil},
			{Name: colPreactivations, Kind: domain.KindNumber},
			{Name: colDR},
		},
	}
	for _, r := range top {
		preview.AppendRow(r, domain.StylePlain)
	}
	return preview
}

func missingSubUnitNotice(sheet string, count int) domain.Notice {
	return domain.Notice{
		Level:   domain.NoticeWarning,
		Code:    "missing_ravt",
		Message: fmt.Sprintf("%s : lignes sans RAVT (pas de parenthèses)", sheet),
		Count:   count,
	}
}
