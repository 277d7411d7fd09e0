package options

import (
	"encoding/json"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

// OutputOptions
type OutputOptions struct {
	JSON bool
}

func AddOutputArg(cmd *cobra.Command, po *OutputOptions) {
	cmd.Flags().BoolVar(&po.JSON, "json", false,
		"Output as JSON.")
}

// HandleError prints err as {"error": ...} in JSON mode and swallows it, so
// scripts always get a JSON document on stdout.
func (o *OutputOptions) HandleError(err error) error {
	if o.JSON && err != nil {
		b, merr := json.Marshal(map[string]string{"error": err.Error()})
		if merr != nil {
			return merr
		}
		_, _ = fmt.Fprintln(color.Output, string(b))
		return nil
	}
	return err
}
