package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/timebox/pkg/commands/options"
	"tableflip.dev/timebox/pkg/runner/show"
)

func addShow(topLevel *cobra.Command) {
	do := &options.DayOptions{}
	io := &options.IDOptions{}
	to := &options.TagOptions{}
	var markdown, all bool

	cmd := &cobra.Command{
		Use:     "show",
		Aliases: []string{"get", "day"},
		Short:   "Print the day",
		Example: `
timebox show
timebox show --date yesterday --tag work
timebox show --markdown
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withPlanner(cmd, do, openOptions{lenient: true}, func(pl *planner) error {
				s := show.Show{
					Service:  pl.svc,
					Lang:     pl.lang,
					Tags:     to.Tags,
					Markdown: markdown,
					ShowID:   io.ShowID,
					AllSlots: all,
					JSON:     output.JSON,
					Out:      cmd.OutOrStdout(),
				}
				return s.Do(cmd.Context())
			})
		},
	}

	options.AddDayArgs(cmd, do)
	options.AddShowIDArgs(cmd, io)
	options.AddTagArgs(cmd, to, "Only show tasks carrying one of these tags. Repeatable.")
	registerTagCompletion(cmd)
	cmd.Flags().BoolVar(&markdown, "markdown", false, "Render the day as Markdown.")
	cmd.Flags().BoolVarP(&all, "all", "a", false, "Print empty slots too.")
	options.AddOutputArg(cmd, output)
	topLevel.AddCommand(cmd)
}
