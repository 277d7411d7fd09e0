package commands

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	base "github.com/n3wscott/cli-base/pkg/commands/options"

	"tableflip.dev/timebox/pkg/commands/options"
	"tableflip.dev/timebox/pkg/prompt"
	"tableflip.dev/timebox/pkg/runner/focus"
	"tableflip.dev/timebox/pkg/timer"
)

func addFocus(topLevel *cobra.Command) {
	do := &options.DayOptions{}
	io := &options.IDOptions{}

	cmd := &cobra.Command{
		Use:   "focus [task id]",
		Short: "Run a 25 minute focus timer on a task",
		Long: base.Wrap80(`Counts down 25 minutes for the task and marks it completed when the
time is up. Ctrl-C stops the timer and leaves the task open. Without a task
id you pick one of the day's open tasks.`),
		Example: `
timebox focus <task id>
timebox focus
`,
		Args: func(_ *cobra.Command, args []string) error {
			if len(args) > 0 {
				io.ID = args[0]
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			cmd.SetContext(ctx)

			ticker := timer.NewTicker()
			defer ticker.Stop()
			return withPlanner(cmd, do, openOptions{clock: ticker}, func(pl *planner) error {
				f := focus.Focus{
					Service: pl.svc,
					Ticks:   ticker.C,
					ID:      io.ID,
					Out:     cmd.OutOrStdout(),
				}
				if isatty.IsTerminal(os.Stdin.Fd()) {
					f.Picker = &prompt.Prompter{}
				}
				return f.Do(ctx)
			})
		},
	}

	options.AddDayArgs(cmd, do)
	topLevel.AddCommand(cmd)
}
