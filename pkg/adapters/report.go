package adapters

import (
	"github.com/de-tools/sales-reports/pkg/models/api"
	"github.com/de-tools/sales-reports/pkg/models/domain"
	"github.com/de-tools/sales-reports/pkg/services/reports"
	"github.com/samber/lo"
)

func MapNoticeLevelDomainToApi(l domain.NoticeLevel) api.NoticeLevel {
	switch l {
	case domain.NoticeWarning:
		return api.NoticeWarning
	default:
		return api.NoticeInfo
	}
}

func MapNoticeDomainToApi(n domain.Notice) api.Notice {
	return api.Notice{
		Level:   MapNoticeLevelDomainToApi(n.Level),
		Code:    n.Code,
		Message: n.Message,
		Count:   n.Count,
	}
}

func MapGeneratorToApi(g reports.Generator) api.ReportInfo {
	return api.ReportInfo{
		Name:        g.Name(),
		Title:       g.Title(),
		Description: g.Description(),
		Inputs: lo.Map(g.Inputs(), func(in reports.InputSpec, _ int) api.Input {
			return api.Input{Name: in.Name, Description: in.Description}
		}),
	}
}

func MapPreviewDomainToApi(s *domain.Sheet) *api.Preview {
	if s == nil {
		return nil
	}
	p := &api.Preview{
		Name:    s.Name,
		Columns: s.ColumnNames(),
		Rows:    make([]api.PreviewRow, 0, len(s.Rows)),
	}
	for _, r := range s.Rows {
		p.Rows = append(p.Rows, api.PreviewRow{Style: r.Style.String(), Values: r.Values})
	}
	return p
}

func MapReportDomainToApi(r *domain.Report) api.ReportSummary {
	return api.ReportSummary{
		Name:        r.Name,
		Title:       r.Title,
		FileName:    r.FileName,
		GeneratedAt: r.GeneratedAt,
		Sheets: lo.Map(r.Sheets, func(s domain.Sheet, _ int) api.SheetSummary {
			return api.SheetSummary{Name: s.Name, Rows: len(s.Rows)}
		}),
		Notices: lo.Map(r.Notices, func(n domain.Notice, _ int) api.Notice {
			return MapNoticeDomainToApi(n)
		}),
		Preview: MapPreviewDomainToApi(r.Preview),
	}
}
