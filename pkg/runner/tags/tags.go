// Package tags provides the runner that lists the tag catalog.
package tags

import (
	"context"
	"errors"
	"io"

	"tableflip.dev/timebox/pkg/printers"
	"tableflip.dev/timebox/pkg/tag"
)

// Tags prints the catalog with color chips.
type Tags struct {
	Registry *tag.Registry
	JSON     bool
	Out      io.Writer
}

// Do renders the catalog.
func (k *Tags) Do(_ context.Context) error {
	if k.Registry == nil {
		return errors.New("can not list tags, no catalog")
	}
	if k.JSON {
		return printers.JSON(k.Out, k.Registry.All())
	}
	pp := printers.PrettyPrint{Out: k.Out}
	pp.NewLine()
	pp.Tags(k.Registry.All()...)
	pp.NewLine()
	return nil
}
