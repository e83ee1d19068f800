package main

import (
	"fmt"
	"os"

	"github.com/de-tools/sales-reports/pkg/server"
	"github.com/de-tools/sales-reports/pkg/services/config"
	"github.com/de-tools/sales-reports/pkg/services/reports"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var cfgPath string

func main() {
	var rootCmd = &cobra.Command{
		Use:          "web",
		Short:        "Start the web server for the sales reports",
		SilenceUsage: true,
		RunE:         runServer,
	}

	rootCmd.Flags().StringVarP(&cfgPath, "config", "c", "",
		"Path to a YAML configuration file (defaults and SALES_REPORTS_* variables apply without it)")

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func runServer(cmd *cobra.Command, _ []string) error {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		fmt.Printf("Error loading .env file: %v\n", err)
	}

	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		return err
	}

	logger, err := config.NewLogger(cfg.Log, os.Stdout)
	if err != nil {
		return err
	}
	ctx := logger.WithContext(cmd.Context())

	registry := reports.DefaultRegistry()
	logger.Info().Strs("reports", registry.List()).Msg("report generators registered")

	webAPI := server.NewWebAPI(logger, server.Config{
		Addr:            cfg.Server.Addr(),
		ShutdownTimeout: cfg.Server.ShutdownTimeout,
		MaxUploadBytes:  cfg.Server.MaxUploadBytes(),
		Dependencies: server.Dependencies{
			Registry: registry,
		},
	})

	zerolog.Ctx(ctx).Info().
		Str("addr", cfg.Server.Addr()).
		Int64("max_upload_bytes", cfg.Server.MaxUploadBytes()).
		Msg("configuration loaded")

	return webAPI.Start(ctx)
}
