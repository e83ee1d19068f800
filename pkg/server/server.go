package server

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	handlers "github.com/de-tools/sales-reports/pkg/handlers/reports"
	reportsmiddleware "github.com/de-tools/sales-reports/pkg/server/middleware"
	"github.com/de-tools/sales-reports/pkg/services/reports"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
)

const defaultShutdownTimeout = 10 * time.Second

type WebAPI struct {
	router          *chi.Mux
	logger          *zerolog.Logger
	server          *http.Server
	shutdownTimeout time.Duration
}

type Dependencies struct {
	Registry reports.Registry
}

type Config struct {
	Addr            string
	ShutdownTimeout time.Duration
	MaxUploadBytes  int64
	Dependencies    Dependencies
}

// ConfigureRouter mounts the report endpoints under /api/v1.
func ConfigureRouter(logger zerolog.Logger, config Config) *chi.Mux {
	registry := config.Dependencies.Registry
	if registry == nil {
		registry = reports.DefaultRegistry()
	}
	reportsHandler := handlers.NewHandler(registry, config.MaxUploadBytes)

	router := chi.NewRouter()

	router.Use(middleware.RequestID)
	router.Use(reportsmiddleware.Logger(&logger))
	router.Use(middleware.Recoverer)

	router.Route("/api/v1", func(r chi.Router) {
		r.Get("/reports", reportsHandler.ListReports)
		r.Post("/reports/{report}", reportsHandler.DownloadReport)
		r.Post("/reports/{report}/preview", reportsHandler.PreviewReport)
	})

	return router
}

func NewWebAPI(logger zerolog.Logger, config Config) *WebAPI {
	router := ConfigureRouter(logger, config)

	timeout := config.ShutdownTimeout
	if timeout <= 0 {
		timeout = defaultShutdownTimeout
	}

	return &WebAPI{
		router: router,
		logger: &logger,
		server: &http.Server{
			Addr:              config.Addr,
			Handler:           router,
			ReadHeaderTimeout: 10 * time.Second,
		},
		shutdownTimeout: timeout,
	}
}

func (w *WebAPI) Handler() http.Handler {
	return w.router
}

// Start serves until the listener fails, ctx is done or the process receives
// SIGINT/SIGTERM, then drains in-flight requests.
func (w *WebAPI) Start(ctx context.Context) error {
	serverErrors := make(chan error, 1)
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(shutdown)

	go func() {
		w.logger.Info().Str("addr", w.server.Addr).Msg("starting server")
		serverErrors <- w.server.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-shutdown:
	case <-ctx.Done():
	}

	w.logger.Info().Msg("shutdown initiated")

	// Give outstanding requests a deadline for completion.
	shutdownCtx, cancel := context.WithTimeout(context.Background(), w.shutdownTimeout)
	defer cancel()

	err := w.server.Shutdown(shutdownCtx)
	if err != nil {
		w.logger.Error().Err(err).Msg("graceful shutdown failed")
		err = w.server.Close()
	}
	return err
}
