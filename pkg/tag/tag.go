// Package tag defines the fixed catalog of tags used to classify tasks.
package tag

import (
	"errors"
	"fmt"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// Tag is an immutable classification label. Identity is the ID.
type Tag struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color"`
}

// ErrUnknownTag is returned when a tag lookup misses the catalog.
var ErrUnknownTag = errors.New("tag: unknown tag")

// New validates the color and returns a tag with the color normalized to
// lowercase #rrggbb.
func New(id, name, color string) (Tag, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Tag{}, errors.New("tag: id required")
	}
	c, err := colorful.Hex(expandHex(strings.TrimSpace(color)))
	if err != nil {
		return Tag{}, fmt.Errorf("tag: invalid color %q: %w", color, err)
	}
	return Tag{ID: id, Name: strings.TrimSpace(name), Color: c.Hex()}, nil
}

// MustNew is New that panics on error. Intended for the built-in catalog.
func MustNew(id, name, color string) Tag {
	t, err := New(id, name, color)
	if err != nil {
		panic(err)
	}
	return t
}

// RGB returns the tag color as 8-bit channels.
func (t Tag) RGB() (r, g, b uint8) {
	c, err := colorful.Hex(t.Color)
	if err != nil {
		return 0, 0, 0
	}
	return c.RGB255()
}

func (t Tag) String() string {
	return t.Name
}

// expandHex turns the short #rgb form into #rrggbb.
func expandHex(s string) string {
	if len(s) == 4 && s[0] == '#' {
		return string([]byte{'#', s[1], s[1], s[2], s[2], s[3], s[3]})
	}
	return s
}
