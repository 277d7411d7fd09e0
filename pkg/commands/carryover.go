package commands

import (
	"time"

	"github.com/spf13/cobra"

	base "github.com/n3wscott/cli-base/pkg/commands/options"

	"tableflip.dev/timebox/pkg/commands/options"
	"tableflip.dev/timebox/pkg/prompt"
	"tableflip.dev/timebox/pkg/runner/carryover"
)

func addCarryover(topLevel *cobra.Command) {
	do := &options.DayOptions{}
	from := &options.DayOptions{}
	io := &options.InteractiveOptions{}

	cmd := &cobra.Command{
		Use:     "carryover [task id...]",
		Aliases: []string{"migrate"},
		Short:   "Copy unfinished tasks from an earlier day",
		Long: base.Wrap80(`Copies the unfinished tasks of another day into the notes of the
selected day. The copies get new ids and keep their tags and durations; the
source day is left untouched. Without task ids every unfinished task is
copied.`),
		Example: `
timebox carryover
timebox carryover --from 2024-3-1 -i
timebox carryover <task id> <task id>
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withPlanner(cmd, do, openOptions{}, func(pl *planner) error {
				if from.DateString == "" {
					from.DateString = "yesterday"
				}
				key, err := from.Key(time.Now())
				if err != nil {
					return err
				}
				c := carryover.Carryover{
					Service: pl.svc,
					From:    key,
					IDs:     args,
					JSON:    output.JSON,
					Out:     cmd.OutOrStdout(),
				}
				if io.Interactive {
					c.Confirmer = &prompt.Prompter{}
				}
				return c.Do(cmd.Context())
			})
		},
	}

	options.AddDayArgs(cmd, do)
	cmd.Flags().StringVar(&from.DateString, "from", "", "Day to copy from. Defaults to yesterday.")
	options.InteractiveArgs(cmd, io)
	options.AddOutputArg(cmd, output)
	topLevel.AddCommand(cmd)
}
