package export

import (
	"fmt"
	"io"
	"os"
	"strings"
	"text/template"

	"github.com/de-tools/sales-reports/pkg/models/domain"
	"github.com/spf13/cast"
)

type TableConfig struct {
	CellWidth int
	MaxRows   int
}

func DefaultTableConfig() TableConfig {
	return TableConfig{
		CellWidth: 18,
		MaxRows:   10,
	}
}

// Summary is what the reporter prints after a run.
type Summary struct {
	*domain.Report
	Output string
}

// Reporter prints a run summary: sheets, notices and the preview table.
type Reporter struct {
	writer io.Writer
	config TableConfig
}

func NewReporter(writer io.Writer) *Reporter {
	if writer == nil {
		writer = os.Stdout
	}
	return &Reporter{
		writer: writer,
		config: DefaultTableConfig(),
	}
}

const summaryTemplate = `
{{.Title}}
Generated: {{.GeneratedAt.Format "2006-01-02 15:04"}}
{{- if .Output}}
Output: {{.Output}}
{{- end}}

{{range .Sheets}}  - {{printf "%-28s" .Name}} {{len .Rows}} rows
{{end}}
{{- if .Notices}}
Notices:
{{range .Notices}}  {{.}}
{{end}}
{{- end}}
{{- with .Preview}}
=== {{.Name}} ===
{{separator .}}
{{header .}}
{{separator .}}
{{range rows .}}{{.}}
{{end}}{{separator .}}
{{end}}`

func (c *Reporter) Handle(summary Summary) error {
	funcMap := template.FuncMap{
		"separator": func(s *domain.Sheet) string {
			parts := make([]string, len(s.Columns))
			for i := range parts {
				parts[i] = strings.Repeat("-", c.config.CellWidth+2)
			}
			return "+" + strings.Join(parts, "+") + "+"
		},
		"header": func(s *domain.Sheet) string {
			return c.formatRow(toAny(s.ColumnNames()))
		},
		"rows": func(s *domain.Sheet) []string {
			var out []string
			for i, r := range s.Rows {
				if i == c.config.MaxRows {
					break
				}
				out = append(out, c.formatRow(r.Values))
			}
			return out
		},
	}

	t, err := template.New("summary").Funcs(funcMap).Parse(summaryTemplate)
	if err != nil {
		return fmt.Errorf("failed to parse template: %w", err)
	}
	return t.Execute(c.writer, summary)
}

func (c *Reporter) formatRow(values []any) string {
	var b strings.Builder
	b.WriteString("|")
	for _, v := range values {
		fmt.Fprintf(&b, " %-*s |", c.config.CellWidth, truncate(formatValue(v), c.config.CellWidth))
	}
	return b.String()
}

func formatValue(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case float64:
		if t == float64(int64(t)) {
			return cast.ToString(int64(t))
		}
		return fmt.Sprintf("%.2f", t)
	default:
		return cast.ToString(v)
	}
}

func truncate(s string, width int) string {
	r := []rune(s)
	if len(r) <= width {
		return s
	}
	return string(r[:width-1]) + "…"
}

func toAny(ss []string) []any {
	out := make([]any, len(ss))
	for i, s := range ss {
		out[i] = s
	}
	return out
}
