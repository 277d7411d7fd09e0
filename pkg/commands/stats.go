package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/timebox/pkg/commands/options"
	"tableflip.dev/timebox/pkg/runner/stats"
)

func addStats(topLevel *cobra.Command) {
	do := &options.DayOptions{}

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Total tasks and planned minutes per tag",
		Example: `
timebox stats
timebox stats --date 2024-3-1 --json
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withPlanner(cmd, do, openOptions{lenient: true}, func(pl *planner) error {
				s := stats.Stats{Service: pl.svc, JSON: output.JSON, Out: cmd.OutOrStdout()}
				return s.Do(cmd.Context())
			})
		},
	}

	options.AddDayArgs(cmd, do)
	options.AddOutputArg(cmd, output)
	topLevel.AddCommand(cmd)
}
