package commands

import (
	"github.com/spf13/cobra"

	base "github.com/n3wscott/cli-base/pkg/commands/options"

	"tableflip.dev/timebox/pkg/commands/options"
	"tableflip.dev/timebox/pkg/runner/report"
	"tableflip.dev/timebox/pkg/timeutil"
)

func addReport(topLevel *cobra.Command) {
	var (
		last     string
		calendar bool
	)

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Display recently completed tasks grouped by day",
		Long: base.Wrap80(`Report lists the tasks completed within the time window, day by
day, with totals per tag.`) + `

Examples:
  timebox report
  timebox report --last 3d
  timebox report --last 1w2d --calendar`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withPlanner(cmd, &options.DayOptions{}, openOptions{lenient: true}, func(pl *planner) error {
				r := report.Report{
					Service:  pl.svc,
					Last:     last,
					Calendar: calendar,
					JSON:     output.JSON,
					Out:      cmd.OutOrStdout(),
				}
				return r.Do(cmd.Context())
			})
		},
	}

	cmd.Flags().StringVar(&last, "last", timeutil.DefaultWindow, "time window to include (for example 3d, 1w)")
	cmd.Flags().BoolVar(&calendar, "calendar", false, "Also print a month calendar marking days with completed tasks.")
	options.AddOutputArg(cmd, output)
	topLevel.AddCommand(cmd)
}
