package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/timebox/pkg/commands/options"
	"tableflip.dev/timebox/pkg/runner/tags"
	"tableflip.dev/timebox/pkg/tag"
)

func addTags(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "tags",
		Short: "List the tag catalog",
		Example: `
timebox tags
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			k := tags.Tags{Registry: tag.Default(), JSON: output.JSON, Out: cmd.OutOrStdout()}
			return output.HandleError(k.Do(cmd.Context()))
		},
	}

	options.AddOutputArg(cmd, output)
	topLevel.AddCommand(cmd)
}
