package sheets

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/de-tools/sales-reports/pkg/models/domain"
	"github.com/xuri/excelize/v2"
)

type Format string

const (
	FormatXLSX Format = "xlsx"
	FormatCSV  Format = "csv"
)

// ErrUnsupportedFormat is returned for files the reader cannot decode.
var ErrUnsupportedFormat = errors.New("unsupported file format")

// Options tune how one input is read.
type Options struct {
	// Sheets lists workbook sheet indexes to try in order. The first sheet is
	// used when empty or when none of them exists.
	Sheets []int
	// Delimiters lists the candidate CSV separators, in order of preference.
	Delimiters []rune
}

func DefaultOptions() Options {
	return Options{
		Sheets:     []int{0},
		Delimiters: []rune{','},
	}
}

// DetectFormat infers the format from a file name extension.
func DetectFormat(name string) (Format, error) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".xlsx", ".xlsm":
		return FormatXLSX, nil
	case ".csv", ".txt":
		return FormatCSV, nil
	default:
		return "", fmt.Errorf("%w: %q (expected .xlsx or .csv)", ErrUnsupportedFormat, filepath.Ext(name))
	}
}

// Read decodes the content of the file called name into a table.
func Read(name string, r io.Reader, opts Options) (*domain.Table, error) {
	format, err := DetectFormat(name)
	if err != nil {
		return nil, err
	}

	var records [][]string
	switch format {
	case FormatXLSX:
		records, err = readWorkbook(r, opts.Sheets)
	case FormatCSV:
		records, err = readCSV(r, opts.Delimiters)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", name, err)
	}

	table := toTable(records)
	table.Name = name
	return table, nil
}

func readWorkbook(r io.Reader, sheets []int) ([][]string, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	names := f.GetSheetList()
	if len(names) == 0 {
		return nil, fmt.Errorf("workbook has no sheets")
	}

	sheet := names[0]
	for _, idx := range sheets {
		if idx >= 0 && idx < len(names) {
			sheet = names[idx]
			break
		}
	}

	return f.GetRows(sheet, excelize.Options{RawCellValue: true})
}

func readCSV(r io.Reader, delimiters []rune) ([][]string, error) {
	br := bufio.NewReader(r)
	head, err := br.Peek(4096)
	if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, bufio.ErrBufferFull) {
		return nil, err
	}

	cr := csv.NewReader(br)
	cr.Comma = sniffDelimiter(head, delimiters)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	return cr.ReadAll()
}

// sniffDelimiter picks the first candidate present in the header line.
func sniffDelimiter(head []byte, candidates []rune) rune {
	if len(candidates) == 0 {
		return ','
	}
	line := head
	if i := bytes.IndexByte(head, '\n'); i >= 0 {
		line = head[:i]
	}
	for _, d := range candidates {
		if bytes.ContainsRune(line, d) {
			return d
		}
	}
	return candidates[0]
}

func toTable(records [][]string) *domain.Table {
	table := &domain.Table{}
	if len(records) == 0 {
		return table
	}

	header := records[0]
	table.Columns = make([]string, len(header))
	for i, h := range header {
		table.Columns[i] = strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
	}

	for _, rec := range records[1:] {
		if isBlank(rec) {
			continue
		}
		row := make(domain.Row, len(table.Columns))
		for i, col := range table.Columns {
			if col == "" {
				continue
			}
			var v any
			if i < len(rec) {
				if s := strings.TrimSpace(rec[i]); s != "" {
					v = s
				}
			}
			row[col] = v
		}
		table.Rows = append(table.Rows, row)
	}
	return table
}

func isBlank(rec []string) bool {
	for _, v := range rec {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
