package main

import (
	"context"
	"fmt"
	"os"

	"github.com/de-tools/sales-reports/pkg/runtime/terminal"
	"github.com/de-tools/sales-reports/pkg/services/config"
	"github.com/de-tools/sales-reports/pkg/services/reports"
)

func main() {
	cfg, err := config.LoadConfig(os.Getenv("SALES_REPORTS_CONFIG"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	logger, err := config.NewLogger(cfg.Log, os.Stderr)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	cli := terminal.NewCLI(terminal.Options{
		Registry:  reports.DefaultRegistry(),
		Output:    os.Stdout,
		OutputDir: cfg.Output.Dir,
	})

	if err := cli.Execute(logger.WithContext(context.Background())); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
