package commands

import (
	"github.com/spf13/cobra"

	base "github.com/n3wscott/cli-base/pkg/commands/options"

	"tableflip.dev/timebox/pkg/commands/options"
)

var (
	output = &options.OutputOptions{}
)

func New() *cobra.Command {

	cmd := &cobra.Command{
		Use:   "timebox",
		Short: base.Wrap80("Plan the day in half-hour boxes and focus on one thing at a time."),
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	AddCommands(cmd)
	return cmd
}

func AddCommands(topLevel *cobra.Command) {
	addUI(topLevel)
	addShell(topLevel)
	addNote(topLevel)
	addSchedule(topLevel)
	addComplete(topLevel)
	addPriority(topLevel)
	addShow(topLevel)
	addStats(topLevel)
	addReport(topLevel)
	addCarryover(topLevel)
	addFocus(topLevel)
	addTags(topLevel)
	addMCP(topLevel)
	addVersion(topLevel)
	addCompletions(topLevel)
}
