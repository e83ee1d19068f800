package reports

import (
	"context"
	"sort"
	"time"

	"github.com/de-tools/sales-reports/pkg/models/domain"
	"github.com/de-tools/sales-reports/pkg/services/transform"
	"github.com/de-tools/sales-reports/pkg/store/sheets"
	"github.com/rs/zerolog"
)

const (
	NFCReport = "nfc"

	InputReferential = "referential"
	InputWeekly      = "weekly"

	colSADI        = "SADI"
	colAgence      = "AGENCE"
	colOpNFC       = "OPERATION NFC"
	colOpManual    = "OPERATION MANUELLE"
	colOpTotal     = "TOTAL OPERATION"
	headerOpNFC    = "OP NFC"
	headerOpManual = "OP MANUELLE"
	headerTotal    = "TOTAL"
	headerTaux     = "Taux"

	sheetSynthesis = "SYNTHESE DR"
	sheetSADI      = "REPORTING DR-SADI-RAVT"
	sheetPVT       = "REPORTING DR-RAVT-PVT"
	nfcFile        = "Reporting_NFC_Orange_Final.xlsx"
)

var nfcMeasures = []string{colOpNFC, colOpManual, colOpTotal}

// NFC reports the share of NFC operations per directorate, with drill-downs
// by SADI and RAVT and by RAVT and PVT sales point.
type NFC struct {
	now func() time.Time
}

func NewNFC() *NFC {
	return &NFC{now: time.Now}
}

func (n *NFC) Name() string  { return NFCReport }
func (n *NFC) Title() string { return "Reporting NFC Orange" }

func (n *NFC) Description() string {
	return "Taux d'opérations NFC par DR, SADI, RAVT et PVT"
}

func (n *NFC) Inputs() []InputSpec {
	return []InputSpec{
		{
			Name:        InputReferential,
			Description: "Référentiel LOGIN / SADI / RAVT",
			Options:     sheets.Options{Sheets: []int{0}, Delimiters: []rune{',', ';'}},
		},
		{
			Name:        InputWeekly,
			Description: "Extraction hebdomadaire des opérations",
			Options:     sheets.Options{Sheets: []int{0}, Delimiters: []rune{';', ',', '|'}},
		},
	}
}

func (n *NFC) Generate(ctx context.Context, in Inputs) (*domain.Report, error) {
	logger := zerolog.Ctx(ctx)

	ref, err := requireInput(n.Name(), in, InputReferential)
	if err != nil {
		return nil, err
	}
	weekly, err := requireInput(n.Name(), in, InputWeekly)
	if err != nil {
		return nil, err
	}
	if err := requireColumns(n.Name(), InputReferential, ref, colLogin, colSADI, colRAVT); err != nil {
		return nil, err
	}
	if err := requireColumns(n.Name(), InputWeekly, weekly,
		colLogin, colAgence, colOpNFC, colOpManual, colOpTotal, colAccueil); err != nil {
		return nil, err
	}

	refRows := transform.DedupFirst(transform.Project(ref.Rows, colLogin, colSADI, colRAVT), colLogin)

	rows := transform.NewDirectorateNormalizer(true).Apply(cloneRows(weekly.Rows), colAgence, colDR)
	if len(rows) == 0 {
		return nil, &domain.ValidationError{
			Report: n.Name(),
			Input:  InputWeekly,
			Reason: "aucune ligne AGENCE ne correspond aux 7 DR",
		}
	}

	rows = transform.InnerJoin(rows, refRows, colLogin)
	rows = transform.Filter(rows, transform.NotBlank(colSADI), transform.NotBlank(colRAVT))
	rows = transform.DedupFirst(rows, colLogin, colSADI, colRAVT, colDR)
	rows = transform.Filter(rows, transform.NotNull(nfcMeasures...))
	if len(rows) == 0 {
		return nil, &domain.ValidationError{
			Report: n.Name(),
			Reason: "aucun LOGIN commun entre le référentiel et l'extraction",
		}
	}

	var notices []domain.Notice
	coerced := 0
	for _, col := range nfcMeasures {
		coerced += transform.CoerceNumbers(rows, col)
	}
	if coerced > 0 {
		notices = append(notices, domain.Notice{
			Level:   domain.NoticeWarning,
			Code:    "operations_coerced",
			Message: "valeurs d'opérations non numériques remplacées par 0",
			Count:   coerced,
		})
	}
	logger.Debug().Int("rows", len(rows)).Int("referential", len(refRows)).Msg("nfc rows joined")

	synthesis := n.synthesis(rows)
	sadi := n.drillDown(sheetSADI, rows, colDR, colSADI, colRAVT)
	pvt := n.drillDown(sheetPVT,
		transform.Filter(rows, transform.HasPrefix(colAccueil, false, "PVT")),
		colDR, colRAVT, colAccueil)

	preview := synthesis
	preview.Name = "Synthèse par DR"

	logger.Info().
		Int("directorates", len(synthesis.Rows)).
		Int("sadi_lines", len(sadi.Rows)).
		Int("pvt_lines", len(pvt.Rows)).
		Msg("nfc reporting done")

	return &domain.Report{
		Name:        n.Name(),
		Title:       n.Title(),
		FileName:    nfcFile,
		GeneratedAt: n.now(),
		Sheets:      []domain.Sheet{synthesis, sadi, pvt},
		Notices:     notices,
		Preview:     &preview,
	}, nil
}

func (n *NFC) synthesis(rows []domain.Row) domain.Sheet {
	reductions := make([]transform.Reduction, 0, len(nfcMeasures))
	for _, m := range nfcMeasures {
		reductions = append(reductions, transform.Reduction{Column: m, Op: transform.Sum})
	}
	grouped := transform.Aggregate(rows, []string{colDR}, reductions)
	sort.SliceStable(grouped, func(i, j int) bool {
		return grouped[i].String(colDR) < grouped[j].String(colDR)
	})

	sheet := nfcSheet(sheetSynthesis, 18)
	for _, g := range grouped {
		sheet.AppendRow(nfcLine(g.String(colDR),
			transform.NumberOrZero(g[colOpNFC]),
			transform.NumberOrZero(g[colOpManual]),
			transform.NumberOrZero(g[colOpTotal])), domain.StylePlain)
	}
	return sheet
}

func (n *NFC) drillDown(name string, rows []domain.Row, keys ...string) domain.Sheet {
	levels := transform.Hierarchy(rows, transform.HierarchySpec{
		Keys:     keys,
		Measures: nfcMeasures,
		Total:    colOpTotal,
	})

	sheet := nfcSheet(name, 15)
	sheet.Columns[0].Width = 45
	for _, l := range levels {
		sheet.AppendRow(nfcLine(l.Key, l.Sum(colOpNFC), l.Sum(colOpManual), l.Sum(colOpTotal)), depthStyle(l.Depth))
	}
	return sheet
}

// Taux returns the NFC share of total operations in percent, rounded to two
// decimals. It is 0 when total is not positive.
func Taux(nfc, total float64) float64 {
	if total <= 0 {
		return 0
	}
	return transform.Round2(nfc / total * 100)
}

func nfcLine(label string, nfc, manual, total float64) domain.Row {
	return domain.Row{
		colDR:          label,
		headerOpNFC:    nfc,
		headerOpManual: manual,
		headerTotal:    total,
		headerTaux:     Taux(nfc, total),
	}
}

func nfcSheet(name string, width float64) domain.Sheet {
	return domain.Sheet{
		Name:       name,
		HeaderFill: "#FF6600",
		HeaderFont: "#FFFFFF",
		Columns: []domain.Column{
			{Name: colDR, Width: width},
			{Name: headerOpNFC, Width: width, Kind: domain.KindNumber},
			{Name: headerOpManual, Width: width, Kind: domain.KindNumber},
			{Name: headerTotal, Width: width, Kind: domain.KindNumber},
			{Name: headerTaux, Width: width, Kind: domain.KindRate},
		},
	}
}

func depthStyle(depth int) domain.StyleClass {
	switch depth {
	case 0:
		return domain.StyleDirectorate
	case 1:
		return domain.StyleSub
	default:
		return domain.StyleLeaf
	}
}
