package terminal

import (
	"context"
	"io"
	"os"

	"github.com/de-tools/sales-reports/pkg/runtime/terminal/commands"
	"github.com/de-tools/sales-reports/pkg/runtime/terminal/export"
	"github.com/de-tools/sales-reports/pkg/services/reports"
	"github.com/spf13/cobra"
)

// CLI represents the command-line interface
type CLI struct {
	registry  reports.Registry
	reporter  *export.Reporter
	outputDir string
	rootCmd   *cobra.Command
}

// Options contain configuration for the CLI
type Options struct {
	Registry  reports.Registry
	Output    io.Writer
	OutputDir string
}

// NewCLI creates a new CLI instance
func NewCLI(opts Options) *CLI {
	if opts.Output == nil {
		opts.Output = os.Stdout
	}
	if opts.Registry == nil {
		opts.Registry = reports.DefaultRegistry()
	}
	if opts.OutputDir == "" {
		opts.OutputDir = "."
	}

	cli := &CLI{
		registry:  opts.Registry,
		reporter:  export.NewReporter(opts.Output),
		outputDir: opts.OutputDir,
	}

	cli.rootCmd = cli.newRootCmd()
	cli.rootCmd.SetOut(opts.Output)
	return cli
}

func (cli *CLI) Execute(ctx context.Context, args ...string) error {
	if args != nil {
		cli.rootCmd.SetArgs(args)
	}
	return cli.rootCmd.ExecuteContext(ctx)
}

func (cli *CLI) newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "sales-reports",
		Short:         "Sales reporting toolkit",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.AddCommand(commands.NewListCmd(cli.registry))
	cmd.AddCommand(commands.NewRunCmd(cli.registry, cli.reporter, cli.outputDir))
	cmd.AddCommand(commands.NewProfilesCmd())

	return cmd
}
