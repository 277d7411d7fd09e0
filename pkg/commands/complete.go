package commands

import (
	"errors"

	"github.com/spf13/cobra"

	"tableflip.dev/timebox/pkg/commands/options"
	"tableflip.dev/timebox/pkg/runner/complete"
)

func addComplete(topLevel *cobra.Command) {
	do := &options.DayOptions{}
	io := &options.IDOptions{}

	cmd := &cobra.Command{
		Use:     "complete",
		Aliases: []string{"completed", "done"},
		Short:   "Mark a task completed",
		Example: `
timebox complete <task id>
`,
		Args: func(_ *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("requires a task id")
			}
			io.ID = args[0]
			return nil
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withPlanner(cmd, do, openOptions{}, func(pl *planner) error {
				s := complete.Complete{
					ID:      io.ID,
					Service: pl.svc,
					Lang:    pl.lang,
					JSON:    output.JSON,
					Out:     cmd.OutOrStdout(),
				}
				return s.Do(cmd.Context())
			})
		},
	}

	options.AddDayArgs(cmd, do)
	options.AddOutputArg(cmd, output)
	topLevel.AddCommand(cmd)
}
