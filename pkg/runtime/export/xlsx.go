package export

import (
	"fmt"
	"io"
	"strings"

	"github.com/de-tools/sales-reports/pkg/models/domain"
	"github.com/xuri/excelize/v2"
)

const (
	ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

	directorateFill = "D9E1F2"
	subFill         = "F2F2F2"
	totalFill       = "FFE5CC"
	statusFont      = "FF0000"
	noticeFont      = "FF6600"
	defaultWidth    = 15
	rateNumFmt      = 2 // 0.00
)

// XLSXRenderer writes a report as an xlsx workbook, one worksheet per sheet.
type XLSXRenderer struct {
	writer io.Writer
}

func NewXLSXRenderer(writer io.Writer) *XLSXRenderer {
	return &XLSXRenderer{writer: writer}
}

func (x *XLSXRenderer) Handle(report *domain.Report) error {
	f, err := Workbook(report)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := f.Write(x.writer); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

type cellStyle struct {
	class   domain.StyleClass
	kind    domain.ColumnKind
	indent  int
	header  bool
	fill    string
	fontHex string
}

type styler struct {
	f     *excelize.File
	cache map[cellStyle]int
}

func (s *styler) id(cs cellStyle) (int, error) {
	if id, ok := s.cache[cs]; ok {
		return id, nil
	}
	id, err := s.f.NewStyle(buildStyle(cs))
	if err != nil {
		return 0, err
	}
	s.cache[cs] = id
	return id, nil
}

func buildStyle(cs cellStyle) *excelize.Style {
	style := &excelize.Style{
		Border: []excelize.Border{
			{Type: "left", Color: "000000", Style: 1},
			{Type: "top", Color: "000000", Style: 1},
			{Type: "right", Color: "000000", Style: 1},
			{Type: "bottom", Color: "000000", Style: 1},
		},
		Font: &excelize.Font{},
	}

	if cs.header {
		style.Font.Bold = true
		style.Font.Color = cs.fontHex
		style.Alignment = &excelize.Alignment{Horizontal: "center", Vertical: "center", WrapText: true}
		if cs.fill != "" {
			style.Fill = solidFill(cs.fill)
		}
		return style
	}

	switch cs.class {
	case domain.StyleDirectorate:
		style.Font.Bold = true
		style.Fill = solidFill(directorateFill)
	case domain.StyleSub:
		style.Font.Bold = true
		style.Fill = solidFill(subFill)
	case domain.StyleTotal:
		style.Font.Bold = true
		style.Fill = solidFill(totalFill)
	}

	switch cs.kind {
	case domain.KindStatus:
		style.Font.Bold = true
		style.Font.Color = statusFont
	case domain.KindNotice:
		style.Font.Bold = true
		style.Font.Color = noticeFont
	case domain.KindRate:
		style.NumFmt = rateNumFmt
	}

	if cs.kind != domain.KindText || cs.indent > 0 {
		style.Alignment = &excelize.Alignment{Indent: cs.indent}
		if cs.kind != domain.KindText {
			style.Alignment.Horizontal = "center"
		}
	}
	return style
}

func solidFill(hex string) excelize.Fill {
	return excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{strings.TrimPrefix(hex, "#")}}
}

func indentFor(class domain.StyleClass) int {
	switch class {
	case domain.StyleSub:
		return 1
	case domain.StyleLeaf:
		return 2
	default:
		return 0
	}
}

// Workbook builds the excelize file for report. The caller closes it.
func Workbook(report *domain.Report) (*excelize.File, error) {
	if len(report.Sheets) == 0 {
		return nil, fmt.Errorf("report %s has no sheets", report.Name)
	}

	f := excelize.NewFile()
	st := &styler{f: f, cache: make(map[cellStyle]int)}
	defaultSheet := f.GetSheetName(0)

	for i, sheet := range report.Sheets {
		if i == 0 {
			if err := f.SetSheetName(defaultSheet, sheet.Name); err != nil {
				f.Close()
				return nil, fmt.Errorf("failed to name sheet %s: %w", sheet.Name, err)
			}
		} else if _, err := f.NewSheet(sheet.Name); err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to create sheet %s: %w", sheet.Name, err)
		}

		if err := writeSheet(f, st, sheet); err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to write sheet %s: %w", sheet.Name, err)
		}
	}
	f.SetActiveSheet(0)
	return f, nil
}

func writeSheet(f *excelize.File, st *styler, sheet domain.Sheet) error {
	name := sheet.Name
	if len(sheet.Columns) == 0 {
		return nil
	}

	header := make([]any, len(sheet.Columns))
	for i, c := range sheet.Columns {
		header[i] = c.Name
	}
	if err := f.SetSheetRow(name, "A1", &header); err != nil {
		return err
	}
	headerID, err := st.id(cellStyle{header: true, fill: strings.TrimPrefix(sheet.HeaderFill, "#"), fontHex: strings.TrimPrefix(sheet.HeaderFont, "#")})
	if err != nil {
		return err
	}
	last, err := excelize.CoordinatesToCellName(len(sheet.Columns), 1)
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(name, "A1", last, headerID); err != nil {
		return err
	}

	for r, row := range sheet.Rows {
		rowNum := r + 2
		values := make([]any, len(row.Values))
		copy(values, row.Values)
		start, _ := excelize.CoordinatesToCellName(1, rowNum)
		if err := f.SetSheetRow(name, start, &values); err != nil {
			return err
		}

		for c, col := range sheet.Columns {
			cs := cellStyle{class: row.Style, kind: col.Kind}
			if c == 0 {
				cs.indent = indentFor(row.Style)
			}
			id, err := st.id(cs)
			if err != nil {
				return err
			}
			cell, _ := excelize.CoordinatesToCellName(c+1, rowNum)
			if err := f.SetCellStyle(name, cell, cell, id); err != nil {
				return err
			}
		}
	}

	for i, c := range sheet.Columns {
		colName, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return err
		}
		width := c.Width
		if width <= 0 {
			width = defaultWidth
		}
		if err := f.SetColWidth(name, colName, colName, width); err != nil {
			return err
		}
	}

	if sheet.FreezeHeader {
		return f.SetPanes(name, &excelize.Panes{
			Freeze:      true,
			YSplit:      1,
			TopLeftCell: "A2",
			ActivePane:  "bottomLeft",
		})
	}
	return nil
}
