package commands

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/de-tools/sales-reports/pkg/models/domain"
	xlsx "github.com/de-tools/sales-reports/pkg/runtime/export"
	"github.com/de-tools/sales-reports/pkg/runtime/terminal/export"
	"github.com/de-tools/sales-reports/pkg/services/config"
	"github.com/de-tools/sales-reports/pkg/services/reports"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

type RunCmd struct {
	inputs       []string
	output       string
	outputDir    string
	profile      string
	profilesPath string
	registry     reports.Registry
	reporter     *export.Reporter
}

func NewRunCmd(registry reports.Registry, reporter *export.Reporter, defaultOutputDir string) *cobra.Command {
	rc := &RunCmd{registry: registry, reporter: reporter}
	cmd := &cobra.Command{
		Use:   "run [report]",
		Short: "Generate a report workbook from input files",
		Example: `  sales-reports run nfc --input referential=ref.csv --input weekly=weekly.xlsx
  sales-reports run --profile nfc-weekly`,
		Args: cobra.MaximumNArgs(1),
		RunE: rc.run,
	}

	cmd.Flags().StringArrayVarP(&rc.inputs, "input", "i", nil, "Input file as slot=path, repeatable")
	cmd.Flags().StringVarP(&rc.output, "output", "o", "", "Path of the workbook to write")
	cmd.Flags().StringVar(&rc.outputDir, "output-dir", defaultOutputDir, "Directory for the workbook when --output is not set")
	cmd.Flags().StringVar(&rc.profile, "profile", "", "Run profile name")
	cmd.Flags().StringVar(&rc.profilesPath, "profiles", config.DefaultProfilesPath(), "Path to the run profiles file")

	cmd.MarkFlagsMutuallyExclusive("output", "output-dir")

	return cmd
}

type runPlan struct {
	report string
	inputs map[string]string
	output string
}

func (rc *RunCmd) plan(cmd *cobra.Command, args []string) (*runPlan, error) {
	p := &runPlan{inputs: make(map[string]string)}

	if rc.profile != "" {
		profiles, err := config.NewProfiles(rc.profilesPath)
		if err != nil {
			return nil, err
		}
		prof, err := profiles.GetProfile(cmd.Context(), rc.profile)
		if err != nil {
			return nil, err
		}
		p.report = prof.Report
		p.output = prof.Output
		for slot, path := range prof.Inputs {
			p.inputs[slot] = path
		}
	}

	if len(args) == 1 {
		if p.report != "" && p.report != args[0] {
			return nil, fmt.Errorf("profile %s runs report %s, not %s", rc.profile, p.report, args[0])
		}
		p.report = args[0]
	}
	if p.report == "" {
		return nil, errors.New("a report name or --profile is required")
	}

	inputs, err := ParseInputs(rc.inputs)
	if err != nil {
		return nil, err
	}
	for slot, path := range inputs {
		p.inputs[slot] = path
	}

	if cmd.Flags().Changed("output") || p.output == "" {
		p.output = rc.output
	}
	return p, nil
}

// ParseInputs turns slot=path pairs into a map.
func ParseInputs(pairs []string) (map[string]string, error) {
	out := make(map[string]string, len(pairs))
	for _, pair := range pairs {
		slot, path, ok := strings.Cut(pair, "=")
		slot, path = strings.TrimSpace(slot), strings.TrimSpace(path)
		if !ok || slot == "" || path == "" {
			return nil, fmt.Errorf("invalid --input %q, expected slot=path", pair)
		}
		out[slot] = path
	}
	return out, nil
}

func (rc *RunCmd) run(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	logger := zerolog.Ctx(ctx)

	plan, err := rc.plan(cmd, args)
	if err != nil {
		return err
	}

	gen, err := rc.registry.Create(plan.report)
	if err != nil {
		return fmt.Errorf("%w (available: %s)", err, strings.Join(rc.registry.List(), ", "))
	}

	sources := make(map[string]reports.Source, len(plan.inputs))
	for slot, path := range plan.inputs {
		f, err := os.Open(path)
		if err != nil {
			return fmt.Errorf("failed to open input %s: %w", slot, err)
		}
		defer f.Close()
		sources[slot] = reports.Source{Name: filepath.Base(path), Reader: f}
	}

	report, err := reports.Run(ctx, gen, sources)
	if err != nil {
		var verr *domain.ValidationError
		if errors.As(err, &verr) {
			return fmt.Errorf("invalid input: %w", verr)
		}
		return fmt.Errorf("failed to generate %s: %w", plan.report, err)
	}

	output := plan.output
	if output == "" {
		output = filepath.Join(rc.outputDir, report.FileName)
	}
	err = WriteAtomic(output, func(w io.Writer) error {
		return xlsx.NewXLSXRenderer(w).Handle(report)
	})
	if err != nil {
		return err
	}
	logger.Info().Str("output", output).Msg("workbook written")

	return rc.reporter.Handle(export.Summary{Report: report, Output: output})
}
