package tag

import "strings"

// Registry is an ordered, read-only catalog of tags.
type Registry struct {
	tags []Tag
	byID map[string]int
}

// NewRegistry builds a registry. Later duplicates of an ID are ignored.
func NewRegistry(tags ...Tag) *Registry {
	r := &Registry{byID: make(map[string]int, len(tags))}
	for _, t := range tags {
		if _, ok := r.byID[t.ID]; ok {
			continue
		}
		r.byID[t.ID] = len(r.tags)
		r.tags = append(r.tags, t)
	}
	return r
}

// Default returns the built-in catalog.
func Default() *Registry {
	return NewRegistry(
		MustNew("1", "Work", "#ff0000"),
		MustNew("2", "Personal", "#00ff00"),
		MustNew("3", "Study", "#0000ff"),
		MustNew("4", "Health", "#ff00ff"),
	)
}

// All returns the tags in catalog order.
func (r *Registry) All() []Tag {
	out := make([]Tag, len(r.tags))
	copy(out, r.tags)
	return out
}

// Get looks a tag up by id.
func (r *Registry) Get(id string) (Tag, bool) {
	i, ok := r.byID[id]
	if !ok {
		return Tag{}, false
	}
	return r.tags[i], true
}

// Resolve accepts either an id or a case-insensitive name.
func (r *Registry) Resolve(idOrName string) (Tag, error) {
	key := strings.TrimSpace(idOrName)
	if t, ok := r.Get(key); ok {
		return t, nil
	}
	for _, t := range r.tags {
		if strings.EqualFold(t.Name, key) {
			return t, nil
		}
	}
	return Tag{}, ErrUnknownTag
}

// Len reports the number of tags in the catalog.
func (r *Registry) Len() int {
	return len(r.tags)
}
