package commands

import (
	"fmt"
	"text/tabwriter"

	"github.com/de-tools/sales-reports/pkg/services/reports"
	"github.com/spf13/cobra"
)

type ListCmd struct {
	registry reports.Registry
}

func NewListCmd(registry reports.Registry) *cobra.Command {
	lc := &ListCmd{registry: registry}
	return &cobra.Command{
		Use:   "list",
		Short: "List the available reports and their input slots",
		Args:  cobra.NoArgs,
		RunE:  lc.run,
	}
}

func (lc *ListCmd) run(cmd *cobra.Command, _ []string) error {
	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "REPORT\tTITLE\tINPUTS")
	for _, name := range lc.registry.List() {
		gen, err := lc.registry.Create(name)
		if err != nil {
			return err
		}
		for i, in := range gen.Inputs() {
			if i == 0 {
				fmt.Fprintf(tw, "%s\t%s\t%s: %s\n", name, gen.Title(), in.Name, in.Description)
				continue
			}
			fmt.Fprintf(tw, "\t\t%s: %s\n", in.Name, in.Description)
		}
	}
	return tw.Flush()
}
