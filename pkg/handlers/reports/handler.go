package reports

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/de-tools/sales-reports/pkg/adapters"
	"github.com/de-tools/sales-reports/pkg/models/api"
	"github.com/de-tools/sales-reports/pkg/models/domain"
	"github.com/de-tools/sales-reports/pkg/runtime/export"
	reportsvc "github.com/de-tools/sales-reports/pkg/services/reports"
	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

const (
	defaultMaxUploadBytes = 32 << 20
	multipartMemory       = 8 << 20

	// NoticesHeader carries the number of notices of a downloaded report.
	NoticesHeader = "X-Report-Notices"
)

type Handler struct {
	registry       reportsvc.Registry
	maxUploadBytes int64
}

func NewHandler(registry reportsvc.Registry, maxUploadBytes int64) *Handler {
	if maxUploadBytes <= 0 {
		maxUploadBytes = defaultMaxUploadBytes
	}
	return &Handler{
		registry:       registry,
		maxUploadBytes: maxUploadBytes,
	}
}

func (h *Handler) ListReports(w http.ResponseWriter, r *http.Request) {
	logger := zerolog.Ctx(r.Context())

	response := make([]api.ReportInfo, 0)
	for _, name := range h.registry.List() {
		gen, err := h.registry.Create(name)
		if err != nil {
			h.writeError(w, r, err)
			return
		}
		response = append(response, adapters.MapGeneratorToApi(gen))
	}

	if err := writeJSON(w, http.StatusOK, response); err != nil {
		logger.Error().Err(err).Msg("failed to encode reports")
	}
}

func (h *Handler) PreviewReport(w http.ResponseWriter, r *http.Request) {
	logger := zerolog.Ctx(r.Context())

	report, ok := h.generate(w, r)
	if !ok {
		return
	}

	if err := writeJSON(w, http.StatusOK, adapters.MapReportDomainToApi(report)); err != nil {
		logger.Error().Err(err).Str("report", report.Name).Msg("failed to encode report preview")
	}
}

func (h *Handler) DownloadReport(w http.ResponseWriter, r *http.Request) {
	logger := zerolog.Ctx(r.Context())

	report, ok := h.generate(w, r)
	if !ok {
		return
	}

	var buf bytes.Buffer
	if err := export.NewXLSXRenderer(&buf).Handle(report); err != nil {
		h.writeError(w, r, fmt.Errorf("failed to render %s: %w", report.Name, err))
		return
	}

	w.Header().Set("Content-Type", export.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", report.FileName))
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.Header().Set(NoticesHeader, strconv.Itoa(len(report.Notices)))
	w.WriteHeader(http.StatusOK)
	if _, err := buf.WriteTo(w); err != nil {
		logger.Error().Err(err).Str("report", report.Name).Msg("failed to send workbook")
	}
}

// generate runs the report named in the URL on the uploaded files. It writes
// the error response itself and returns false when the run fails.
func (h *Handler) generate(w http.ResponseWriter, r *http.Request) (*domain.Report, bool) {
	name := chi.URLParam(r, "report")

	gen, err := h.registry.Create(name)
	if err != nil {
		h.writeError(w, r, err)
		return nil, false
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadBytes)
	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) || r.ContentLength > h.maxUploadBytes {
			writeMessage(w, r, http.StatusRequestEntityTooLarge, api.Error{
				Error: fmt.Sprintf("upload exceeds %d bytes", h.maxUploadBytes),
			})
			return nil, false
		}
		writeMessage(w, r, http.StatusBadRequest, api.Error{Error: "malformed multipart upload"})
		return nil, false
	}
	defer func() { _ = r.MultipartForm.RemoveAll() }()

	sources := make(map[string]reportsvc.Source)
	for _, in := range gen.Inputs() {
		headers := r.MultipartForm.File[in.Name]
		if len(headers) == 0 {
			writeMessage(w, r, http.StatusBadRequest, api.Error{
				Error: fmt.Sprintf("missing file field %q", in.Name),
			})
			return nil, false
		}
		f, err := headers[0].Open()
		if err != nil {
			writeMessage(w, r, http.StatusBadRequest, api.Error{Error: "unreadable upload " + in.Name})
			return nil, false
		}
		defer func(f multipart.File) { _ = f.Close() }(f)
		sources[in.Name] = reportsvc.Source{Name: headers[0].Filename, Reader: f}
	}

	report, err := reportsvc.Run(r.Context(), gen, sources)
	if err != nil {
		h.writeError(w, r, err)
		return nil, false
	}
	return report, true
}

func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	var verr *domain.ValidationError
	switch {
	case errors.Is(err, reportsvc.ErrUnknownReport):
		writeMessage(w, r, http.StatusNotFound, api.Error{Error: err.Error()})
	case errors.As(err, &verr):
		writeMessage(w, r, http.StatusUnprocessableEntity, api.Error{Error: verr.Error(), Missing: verr.Missing})
	default:
		zerolog.Ctx(r.Context()).Error().Err(err).Msg("request failed")
		writeMessage(w, r, http.StatusInternalServerError, api.Error{Error: "internal error"})
	}
}

func writeMessage(w http.ResponseWriter, r *http.Request, status int, body api.Error) {
	if err := writeJSON(w, status, body); err != nil {
		zerolog.Ctx(r.Context()).Error().Err(err).Msg("failed to encode error")
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	return json.NewEncoder(w).Encode(v)
}
