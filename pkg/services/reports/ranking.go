package reports

import (
	"context"
	"strings"
	"time"

	"github.com/de-tools/sales-reports/pkg/models/domain"
	"github.com/de-tools/sales-reports/pkg/services/transform"
	"github.com/de-tools/sales-reports/pkg/store/sheets"
	"github.com/rs/zerolog"
)

const (
	RankingReport = "ranking"

	colPVT       = "PVT"
	colMSISDN    = "MSISDN"
	colTelephone = "TELEPHONE"
	colEtat      = "ETAT_IDENTIFICATION"
	colVentes    = "VENTES_TOTALES"
	colRang      = "RANG"

	identifiedPhoto = "Identifie Photo"
	rankingSheet    = "Classement PVT"
	rankingPrefix   = "Classement_PVT"
	totalLabel      = "TOTAL"
)

// Ranking ranks the PVT sales points of the seven directorates by number of
// sales.
type Ranking struct {
	now func() time.Time
}

func NewRanking() *Ranking {
	return &Ranking{now: time.Now}
}

func (r *Ranking) Name() string  { return RankingReport }
func (r *Ranking) Title() string { return "Classement PVT - 7 DR" }

func (r *Ranking) Description() string {
	return "Classement des points de vente PVT par ventes totales"
}

func (r *Ranking) Inputs() []InputSpec {
	return []InputSpec{{
		Name:        InputSales,
		Description: "Fichier des ventes (MSISDN, ACCUEIL_VENDEUR, AGENCE_VENDEUR, LOGIN_VENDEUR)",
		Options: sheets.Options{
			Sheets:     []int{0},
			Delimiters: []rune{'|', ';', ','},
		},
	}}
}

func (r *Ranking) Generate(ctx context.Context, in Inputs) (*domain.Report, error) {
	logger := zerolog.Ctx(ctx)

	src, err := requireInput(r.Name(), in, InputSales)
	if err != nil {
		return nil, err
	}
	table := cloneTable(src)
	table.RenameColumn(colAccueilVendeur, colPVT)
	table.RenameColumn(colAgenceVendeur, colDR)
	table.RenameColumn(colLoginVendeur, colLogin)
	table.EnsureColumn(colPrenom, "")
	table.EnsureColumn(colNom, "")

	if err := requireColumns(r.Name(), InputSales, table, colPVT, colDR, colLogin, colMSISDN); err != nil {
		return nil, err
	}

	var notices []domain.Notice
	total := len(table.Rows)
	rows := transform.NewDirectorateNormalizer(true).Apply(table.Rows, colDR, colDR)
	if len(rows) == 0 {
		return nil, &domain.ValidationError{
			Report: r.Name(),
			Input:  InputSales,
			Reason: "aucune donnée trouvée pour les 7 DR spécifiées",
		}
	}
	if excluded := total - len(rows); excluded > 0 {
		notices = append(notices, domain.Notice{
			Level:   domain.NoticeInfo,
			Code:    "directorate_excluded",
			Message: "lignes hors des 7 DR exclues",
			Count:   excluded,
		})
	}

	withEtat := table.HasColumn(colEtat)
	if withEtat {
		rows = transform.Filter(rows, transform.Contains(colEtat, identifiedPhoto))
	}
	rows = transform.Filter(rows, transform.HasPrefix(colPVT, true, "PVT"))
	if len(rows) == 0 {
		return nil, &domain.ValidationError{
			Report: r.Name(),
			Input:  InputSales,
			Reason: "aucun PVT ne commence par 'PVT' dans les données filtrées",
		}
	}
	logger.Debug().Int("rows", len(rows)).Msg("ranking rows selected")

	keys := []string{colDR, colPVT, colLogin, colPrenom, colNom, colTelephone}
	if withEtat {
		keys = append(keys, colEtat)
	}

	// Every sale counts, a blank login or name is a group of its own.
	phones := firstPhones(rows)
	for _, row := range rows {
		row[colTelephone] = phones[row.String(colPVT)]
		for _, col := range keys {
			if row.IsNull(col) {
				row[col] = ""
			}
		}
	}
	grouped := transform.Aggregate(rows, keys, []transform.Reduction{
		{Column: colLogin, Op: transform.Count, As: colVentes},
	})
	ranked := transform.Rank(grouped, colVentes, colRang)

	sheet := rankingSheetLayout(withEtat)
	for _, row := range ranked {
		sheet.AppendRow(row, domain.StylePlain)
	}
	sheet.AppendRow(domain.Row{
		colPVT:    totalLabel,
		colVentes: int(transform.SumColumn(ranked, colVentes)),
	}, domain.StyleTotal)

	generated := r.now()
	preview := rankingSheetLayout(withEtat)
	preview.Name = "Top " + rankingSheet
	for i, row := range ranked {
		if i == previewSize {
			break
		}
		preview.AppendRow(row, domain.StylePlain)
	}

	logger.Info().Int("sales_points", len(ranked)).Msg("ranking done")

	return &domain.Report{
		Name:        r.Name(),
		Title:       r.Title(),
		FileName:    rankingPrefix + generated.Format("20060102_1504") + ".xlsx",
		GeneratedAt: generated,
		Sheets:      []domain.Sheet{sheet},
		Notices:     notices,
		Preview:     &preview,
	}, nil
}

// firstPhones maps every PVT to the first non-empty MSISDN seen for it.
func firstPhones(rows []domain.Row) map[string]string {
	phones := make(map[string]string)
	for _, row := range rows {
		pvt := row.String(colPVT)
		if _, ok := phones[pvt]; ok {
			continue
		}
		if msisdn := cleanMSISDN(row.String(colMSISDN)); msisdn != "" {
			phones[pvt] = msisdn
		}
	}
	return phones
}

func cleanMSISDN(s string) string {
	return strings.TrimSuffix(strings.TrimSpace(s), ".0")
}

func rankingSheetLayout(withEtat bool) domain.Sheet {
	cols := []domain.Column{
		{Name: colRang, Width: 8, Kind: domain.KindNumber},
		{Name: colPVT, Width: 30},
		{Name: colLogin, Width: 15},
		{Name: colPrenom, Width: 15},
		{Name: colNom, Width: 15},
		{Name: colDR, Width: 10},
		{Name: colTelephone, Width: 15},
	}
	if withEtat {
		cols = append(cols, domain.Column{Name: colEtat, Width: 18})
	}
	cols = append(cols, domain.Column{Name: colVentes, Width: 12, Kind: domain.KindNumber})

	return domain.Sheet{
		Name:         rankingSheet,
		Columns:      cols,
		HeaderFill:   "#D9D9D9",
		FreezeHeader: true,
	}
}
