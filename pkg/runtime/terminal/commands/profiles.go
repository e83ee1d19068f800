package commands

import (
	"fmt"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/de-tools/sales-reports/pkg/services/config"
	"github.com/spf13/cobra"
)

type ProfilesCmd struct {
	profilesPath string
}

func NewProfilesCmd() *cobra.Command {
	pc := &ProfilesCmd{}
	cmd := &cobra.Command{
		Use:   "profiles",
		Short: "List the run profiles and the report each one runs",
		Args:  cobra.NoArgs,
		RunE:  pc.run,
	}
	cmd.Flags().StringVar(&pc.profilesPath, "profiles", config.DefaultProfilesPath(), "Path to the run profiles file")
	return cmd
}

func (pc *ProfilesCmd) run(cmd *cobra.Command, _ []string) error {
	profiles, err := config.NewProfiles(pc.profilesPath)
	if err != nil {
		return err
	}
	names, err := profiles.GetProfiles(cmd.Context())
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "PROFILE\tREPORT\tINPUTS\tOUTPUT")
	for _, name := range names {
		prof, err := profiles.GetProfile(cmd.Context(), name)
		if err != nil {
			return err
		}
		slots := make([]string, 0, len(prof.Inputs))
		for slot := range prof.Inputs {
			slots = append(slots, slot)
		}
		sort.Strings(slots)
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", prof.Name, prof.Report, strings.Join(slots, ","), prof.Output)
	}
	return tw.Flush()
}
