package reports

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/de-tools/sales-reports/pkg/models/domain"
	"github.com/de-tools/sales-reports/pkg/store/sheets"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Source is an input file as handed over by the CLI or an upload.
type Source struct {
	Name   string
	Reader io.Reader
}

// ReadInputs decodes one Source per input the generator declares.
func ReadInputs(gen Generator, sources map[string]Source) (Inputs, error) {
	in := make(Inputs, len(sources))
	for _, spec := range gen.Inputs() {
		src, ok := sources[spec.Name]
		if !ok || src.Reader == nil {
			return nil, &domain.ValidationError{
				Report: gen.Name(),
				Input:  spec.Name,
				Reason: "input file not provided",
			}
		}

		table, err := sheets.Read(src.Name, src.Reader, spec.Options)
		if err != nil {
			reason := fmt.Sprintf("cannot read %s: %v", src.Name, err)
			if errors.Is(err, sheets.ErrUnsupportedFormat) {
				reason = err.Error()
			}
			return nil, &domain.ValidationError{Report: gen.Name(), Input: spec.Name, Reason: reason}
		}
		in[spec.Name] = table
	}
	return in, nil
}

// Run reads the sources and generates the report. The context logger is
// tagged with a run id and every notice of the report is logged.
func Run(ctx context.Context, gen Generator, sources map[string]Source) (*domain.Report, error) {
	logger := zerolog.Ctx(ctx).With().
		Str("run_id", uuid.NewString()).
		Str("report", gen.Name()).
		Logger()
	ctx = logger.WithContext(ctx)

	in, err := ReadInputs(gen, sources)
	if err != nil {
		logger.Error().Err(err).Msg("failed to read inputs")
		return nil, err
	}
	for name, t := range in {
		logger.Debug().Str("input", name).Int("rows", len(t.Rows)).Msg("input loaded")
	}

	report, err := gen.Generate(ctx, in)
	if err != nil {
		logger.Error().Err(err).Msg("report generation failed")
		return nil, err
	}

	for _, n := range report.Notices {
		ev := logger.Info()
		if n.Level == domain.NoticeWarning {
			ev = logger.Warn()
		}
		ev.Str("code", n.Code).Int("count", n.Count).Msg(n.Message)
	}
	sheetRows := zerolog.Dict()
	for _, s := range report.Sheets {
		sheetRows.Int(s.Name, len(s.Rows))
	}
	logger.Info().Dict("sheets", sheetRows).Msg("report generated")
	return report, nil
}
