package commands

import (
	"os"
	"strings"

	"github.com/spf13/cobra"

	"tableflip.dev/timebox/pkg/tag"
)

func addCompletions(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "completion",
		Short: "Generates bash completion scripts",
		Long: `To load completion run

. <(timebox completion)

To configure your bash shell to load completions for each session add to your bashrc

# ~/.bashrc or ~/.profile
. <(timebox completion)
`,
		Run: func(cmd *cobra.Command, args []string) {
			_ = topLevel.GenBashCompletion(os.Stdout)
		},
	}

	topLevel.AddCommand(cmd)
}

func registerTagCompletion(cmd *cobra.Command) {
	_ = cmd.RegisterFlagCompletionFunc("tag", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return tagCompletions(toComplete), cobra.ShellCompDirectiveNoFileComp
	})
}

func tagCompletions(toComplete string) []string {
	var out []string
	for _, t := range tag.Default().All() {
		for _, s := range []string{t.ID, t.Name} {
			if strings.HasPrefix(strings.ToLower(s), strings.ToLower(toComplete)) {
				out = append(out, s)
			}
		}
	}
	return out
}
