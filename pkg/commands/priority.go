package commands

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"tableflip.dev/timebox/pkg/commands/options"
	"tableflip.dev/timebox/pkg/runner/priority"
)

func addPriority(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:     "priority",
		Aliases: []string{"prio"},
		Short:   "Work with the day's top priorities",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	addPrioritySet(cmd)
	topLevel.AddCommand(cmd)
}

func addPrioritySet(topLevel *cobra.Command) {
	do := &options.DayOptions{}
	var (
		n    int
		text string
	)

	cmd := &cobra.Command{
		Use:   "set",
		Short: "Set one of the three priorities",
		Example: `
timebox priority set 1 ship the release
timebox priority set 2 ""
`,
		Args: func(_ *cobra.Command, args []string) error {
			if len(args) < 1 {
				return errors.New("requires a priority number")
			}
			i, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("priority number %q: %w", args[0], err)
			}
			n, text = i, strings.Join(args[1:], " ")
			return nil
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withPlanner(cmd, do, openOptions{}, func(pl *planner) error {
				p := priority.Set{
					Service: pl.svc,
					Lang:    pl.lang,
					N:       n,
					Text:    text,
					JSON:    output.JSON,
					Out:     cmd.OutOrStdout(),
				}
				return p.Do(cmd.Context())
			})
		},
	}

	options.AddDayArgs(cmd, do)
	options.AddOutputArg(cmd, output)
	topLevel.AddCommand(cmd)
}
