package commands

import (
	"errors"

	"github.com/spf13/cobra"

	"tableflip.dev/timebox/pkg/commands/options"
	"tableflip.dev/timebox/pkg/runner/schedule"
)

func addSchedule(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:     "schedule",
		Aliases: []string{"slot"},
		Short:   "Place tasks in the day's half-hour slots",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	addScheduleDrop(cmd)
	addScheduleMove(cmd)
	addScheduleUnschedule(cmd)

	topLevel.AddCommand(cmd)
}

func addScheduleDrop(topLevel *cobra.Command) {
	do := &options.DayOptions{}
	var id, at string

	cmd := &cobra.Command{
		Use:   "drop",
		Short: "Put a task into a slot",
		Example: `
timebox schedule drop <task id> 09:30
`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 2 {
				return errors.New("requires a task id and a slot time")
			}
			id, at = args[0], args[1]
			return nil
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withPlanner(cmd, do, openOptions{}, func(pl *planner) error {
				s := schedule.Drop{Service: pl.svc, ID: id, At: at, JSON: output.JSON, Out: cmd.OutOrStdout()}
				return s.Do(cmd.Context())
			})
		},
	}

	options.AddDayArgs(cmd, do)
	options.AddOutputArg(cmd, output)
	topLevel.AddCommand(cmd)
}

func addScheduleMove(topLevel *cobra.Command) {
	do := &options.DayOptions{}
	var id, from, to string

	cmd := &cobra.Command{
		Use:   "move",
		Short: "Move a scheduled task to another slot",
		Example: `
timebox schedule move <task id> 09:30 14:00
`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 3 {
				return errors.New("requires a task id, the current slot and the new slot")
			}
			id, from, to = args[0], args[1], args[2]
			return nil
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withPlanner(cmd, do, openOptions{}, func(pl *planner) error {
				s := schedule.Move{Service: pl.svc, ID: id, From: from, To: to, JSON: output.JSON, Out: cmd.OutOrStdout()}
				return s.Do(cmd.Context())
			})
		},
	}

	options.AddDayArgs(cmd, do)
	options.AddOutputArg(cmd, output)
	topLevel.AddCommand(cmd)
}

func addScheduleUnschedule(topLevel *cobra.Command) {
	do := &options.DayOptions{}
	io := &options.IDOptions{}

	cmd := &cobra.Command{
		Use:   "unschedule",
		Short: "Return a scheduled task to the notes",
		Example: `
timebox schedule unschedule <task id>
`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("requires a task id")
			}
			io.ID = args[0]
			return nil
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withPlanner(cmd, do, openOptions{}, func(pl *planner) error {
				s := schedule.Unschedule{Service: pl.svc, ID: io.ID, JSON: output.JSON, Out: cmd.OutOrStdout()}
				return s.Do(cmd.Context())
			})
		},
	}

	options.AddDayArgs(cmd, do)
	options.AddOutputArg(cmd, output)
	topLevel.AddCommand(cmd)
}
