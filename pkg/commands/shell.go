package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/timebox/pkg/commands/options"
	"tableflip.dev/timebox/pkg/prompt"
	"tableflip.dev/timebox/pkg/runner/shell"
)

func addShell(topLevel *cobra.Command) {
	do := &options.DayOptions{}

	cmd := &cobra.Command{
		Use:     "shell",
		Aliases: []string{"repl"},
		Short:   "Plan the day line by line",
		Long: `Opens a prompt for editing the day with short commands. Changes are
kept in memory until you type "save"; quitting or switching days with
unsaved changes asks first. Type "help" for the command list.`,
		Example: `
timebox shell
timebox shell --date tomorrow
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withPlanner(cmd, do, openOptions{lenient: true}, func(pl *planner) error {
				p := &prompt.Prompter{}
				s := shell.Shell{
					Service:   pl.svc,
					Lang:      pl.lang,
					Input:     p,
					Confirmer: p,
					Out:       cmd.OutOrStdout(),
				}
				return s.Do(cmd.Context())
			})
		},
	}

	options.AddDayArgs(cmd, do)
	topLevel.AddCommand(cmd)
}
