package server

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/de-tools/sales-reports/pkg/models/api"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func unmarshalResponse[T any]() func([]byte) (interface{}, error) {
	return func(data []byte) (interface{}, error) {
		var v T
		err := json.Unmarshal(data, &v)
		return v, err
	}
}

func TestWebAPI_Endpoints(t *testing.T) {
	logs := &syncBuffer{}
	logger := zerolog.New(logs)

	router := ConfigureRouter(logger, Config{ShutdownTimeout: time.Second})
	testServer := httptest.NewServer(router)
	defer testServer.Close()

	rankingUpload := func() (io.Reader, string) {
		var buf bytes.Buffer
		mw := multipart.NewWriter(&buf)
		fw, _ := mw.CreateFormFile("sales", "ventes.csv")
		_, _ = io.WriteString(fw, "ACCUEIL_VENDEUR|AGENCE_VENDEUR|LOGIN_VENDEUR|MSISDN\n"+
			"PVT LOUGA|DV-DRVN_DIRECTION REGIONALE DES VENTES NORD|l1|771234567\n")
		_ = mw.Close()
		return &buf, mw.FormDataContentType()
	}

	tests := []struct {
		name           string
		method         string
		path           string
		body           func() (io.Reader, string)
		expectedStatus int
		check          func(t *testing.T, data []byte)
	}{
		{
			name:           "ListReports",
			method:         http.MethodGet,
			path:           "/api/v1/reports",
			expectedStatus: http.StatusOK,
			check: func(t *testing.T, data []byte) {
				got, err := unmarshalResponse[[]api.ReportInfo]()(data)
				require.NoError(t, err)
				assert.Len(t, got, 3)
			},
		},
		{
			name:           "PreviewRanking",
			method:         http.MethodPost,
			path:           "/api/v1/reports/ranking/preview",
			body:           rankingUpload,
			expectedStatus: http.StatusOK,
			check: func(t *testing.T, data []byte) {
				got, err := unmarshalResponse[api.ReportSummary]()(data)
				require.NoError(t, err)
				summary := got.(api.ReportSummary)
				assert.Equal(t, "ranking", summary.Name)
				assert.Equal(t, []api.SheetSummary{{Name: "Classement PVT", Rows: 2}}, summary.Sheets)
			},
		},
		{
			name:           "UnknownReport",
			method:         http.MethodPost,
			path:           "/api/v1/reports/unknown",
			body:           rankingUpload,
			expectedStatus: http.StatusNotFound,
		},
		{
			name:           "UnknownRoute",
			method:         http.MethodGet,
			path:           "/api/v1/workspaces",
			expectedStatus: http.StatusNotFound,
		},
		{
			name:           "WrongMethod",
			method:         http.MethodGet,
			path:           "/api/v1/reports/nfc",
			expectedStatus: http.StatusMethodNotAllowed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var body io.Reader
			contentType := ""
			if tt.body != nil {
				body, contentType = tt.body()
			}
			req, err := http.NewRequest(tt.method, testServer.URL+tt.path, body)
			require.NoError(t, err)
			if contentType != "" {
				req.Header.Set("Content-Type", contentType)
			}

			resp, err := http.DefaultClient.Do(req)
			require.NoError(t, err)
			defer resp.Body.Close()

			assert.Equal(t, tt.expectedStatus, resp.StatusCode)
			data, err := io.ReadAll(resp.Body)
			require.NoError(t, err)
			if tt.check != nil {
				tt.check(t, data)
			}
		})
	}

	assert.Contains(t, logs.String(), `"path":"/api/v1/reports/ranking/preview"`)
	assert.Contains(t, logs.String(), `"run_id":`)
}

func TestWebAPI_StartStopsOnContextCancel(t *testing.T) {
	webAPI := NewWebAPI(zerolog.Nop(), Config{Addr: "127.0.0.1:0", ShutdownTimeout: time.Second})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- webAPI.Start(ctx) }()

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
}
