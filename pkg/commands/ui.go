package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/timebox/pkg/commands/options"
	teaui "tableflip.dev/timebox/pkg/runner/tea"
)

func addUI(topLevel *cobra.Command) {
	do := &options.DayOptions{}

	cmd := &cobra.Command{
		Use:   "ui",
		Short: "open the text-based user interface",
		Example: `
timebox ui
timebox ui --date tomorrow
`,
		ValidArgs: []string{},
		RunE: func(cmd *cobra.Command, args []string) error {
			clock := teaui.NewClock()
			return withPlanner(cmd, do, openOptions{clock: clock, lenient: true}, func(pl *planner) error {
				r := teaui.Runner{
					Service: pl.svc,
					Clock:   clock,
					Lang:    pl.lang,
					Log:     pl.log.Named("ui"),
				}
				return r.Do(cmd.Context())
			})
		},
	}

	options.AddDayArgs(cmd, do)
	topLevel.AddCommand(cmd)
}
