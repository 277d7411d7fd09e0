package commands

import (
	"errors"
	"strings"

	"github.com/spf13/cobra"

	base "github.com/n3wscott/cli-base/pkg/commands/options"

	"tableflip.dev/timebox/pkg/commands/options"
	"tableflip.dev/timebox/pkg/runner/note"
)

func addNote(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:     "note",
		Aliases: []string{"notes"},
		Short:   "Work with the day's unscheduled notes",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	addNoteAdd(cmd)
	addNoteRemove(cmd)
	addNoteTag(cmd)
	addNoteEdit(cmd)

	topLevel.AddCommand(cmd)
}

func addNoteAdd(topLevel *cobra.Command) {
	do := &options.DayOptions{}
	to := &options.TagOptions{}
	var content, duration string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a note",
		Example: `
timebox note add write the quarterly summary
timebox note add --tag work --duration 1h30m review pull requests
`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) < 1 {
				return errors.New("requires a note")
			}
			content = strings.Join(args, " ")
			return nil
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withPlanner(cmd, do, openOptions{}, func(pl *planner) error {
				n := note.Add{
					Service:  pl.svc,
					Content:  content,
					Tags:     to.Tags,
					Duration: duration,
					JSON:     output.JSON,
					Out:      cmd.OutOrStdout(),
				}
				return n.Do(cmd.Context())
			})
		},
	}

	options.AddDayArgs(cmd, do)
	options.AddTagArgs(cmd, to, "Tag the note, by catalog id or name. Repeatable.")
	registerTagCompletion(cmd)
	cmd.Flags().StringVar(&duration, "duration", "", `Estimated time, example: --duration=45m or --duration=1h30m.`)
	options.AddOutputArg(cmd, output)
	topLevel.AddCommand(cmd)
}

func addNoteRemove(topLevel *cobra.Command) {
	do := &options.DayOptions{}
	io := &options.IDOptions{}

	cmd := &cobra.Command{
		Use:     "rm",
		Aliases: []string{"remove", "delete"},
		Short:   "Delete an unscheduled note",
		Example: `
timebox note rm <task id>
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
				n := note.Remove{Service: pl.svc, ID: io.ID, JSON: output.JSON, Out: cmd.OutOrStdout()}
				return n.Do(cmd.Context())
			})
		},
	}

	options.AddDayArgs(cmd, do)
	options.AddOutputArg(cmd, output)
	topLevel.AddCommand(cmd)
}

func addNoteTag(topLevel *cobra.Command) {
	do := &options.DayOptions{}
	io := &options.IDOptions{}
	var tags []string

	cmd := &cobra.Command{
		Use:   "tag",
		Short: "Toggle tags on a task",
		Long: base.Wrap80(`Each named tag is added to the task, or removed if the task
already carries it. Works on notes and scheduled tasks.`),
		Example: `
timebox note tag <task id> work
timebox note tag <task id> 1 3
`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) < 2 {
				return errors.New("requires a task id and at least one tag")
			}
			io.ID, tags = args[0], args[1:]
			return nil
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withPlanner(cmd, do, openOptions{}, func(pl *planner) error {
				n := note.Tag{Service: pl.svc, ID: io.ID, Tags: tags, JSON: output.JSON, Out: cmd.OutOrStdout()}
				return n.Do(cmd.Context())
			})
		},
	}

	options.AddDayArgs(cmd, do)
	options.AddOutputArg(cmd, output)
	topLevel.AddCommand(cmd)
}

func addNoteEdit(topLevel *cobra.Command) {
	do := &options.DayOptions{}
	io := &options.IDOptions{}
	var content, duration string

	cmd := &cobra.Command{
		Use:   "edit",
		Short: "Change a task's text or duration",
		Example: `
timebox note edit <task id> --text "call the bank"
timebox note edit <task id> --duration 1h
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
				n := note.Edit{
					Service:  pl.svc,
					ID:       io.ID,
					Content:  content,
					Duration: duration,
					JSON:     output.JSON,
					Out:      cmd.OutOrStdout(),
				}
				return n.Do(cmd.Context())
			})
		},
	}

	options.AddDayArgs(cmd, do)
	cmd.Flags().StringVar(&content, "text", "", "New text for the task.")
	cmd.Flags().StringVar(&duration, "duration", "", "New estimated time, example: --duration=45m.")
	options.AddOutputArg(cmd, output)
	topLevel.AddCommand(cmd)
}
