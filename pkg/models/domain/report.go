package domain

import "time"

// Report is the complete output of one report run, handed to a renderer.
type Report struct {
	Name        string
	Title       string
	FileName    string
	GeneratedAt time.Time
	Sheets      []Sheet
	Notices     []Notice
	Preview     *Sheet
}

// Sheet is one named tab of the output workbook.
type Sheet struct {
	Name         string
	Columns      []Column
	Rows         []SheetRow
	HeaderFill   string
	HeaderFont   string
	FreezeHeader bool
}

type ColumnKind int

const (
	KindText ColumnKind = iota
	KindNumber
	KindRate
	// KindStatus marks a column whose cells are highlighted as a closed status.
	KindStatus
	// KindNotice marks a column whose cells are highlighted as pending.
	KindNotice
)

type Column struct {
	Name  string
	Width float64
	Kind  ColumnKind
}

// StyleClass tags a row with the cosmetic class the renderer should apply.
type StyleClass int

const (
	StylePlain StyleClass = iota
	StyleDirectorate
	StyleSub
	StyleLeaf
	StyleTotal
)

func (s StyleClass) String() string {
	switch s {
	case StyleDirectorate:
		return "directorate"
	case StyleSub:
		return "sub"
	case StyleLeaf:
		return "leaf"
	case StyleTotal:
		return "total"
	default:
		return "plain"
	}
}

type SheetRow struct {
	Values []any
	Style  StyleClass
}

// ColumnNames returns the header labels of the sheet.
func (s *Sheet) ColumnNames() []string {
	names := make([]string, 0, len(s.Columns))
	for _, c := range s.Columns {
		names = append(names, c.Name)
	}
	return names
}

// AppendRow adds a row built from src following the sheet column order.
func (s *Sheet) AppendRow(src Row, style StyleClass) {
	values := make([]any, len(s.Columns))
	for i, c := range s.Columns {
		values[i] = src[c.Name]
	}
	s.Rows = append(s.Rows, SheetRow{Values: values, Style: style})
}
