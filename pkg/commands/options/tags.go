package options

import (
	"github.com/spf13/cobra"
)

// TagOptions
type TagOptions struct {
	Tags []string
}

func AddTagArgs(cmd *cobra.Command, o *TagOptions, usage string) {
	cmd.Flags().StringSliceVarP(&o.Tags, "tag", "t", nil, usage)
}
