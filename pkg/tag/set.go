package tag

// Set is an ordered set of tags keyed by ID. The zero value is empty.
type Set []Tag

// Has reports whether the set contains a tag with id.
func (s Set) Has(id string) bool {
	for _, t := range s {
		if t.ID == id {
			return true
		}
	}
	return false
}

// Toggle returns a new set with t removed when present, appended otherwise.
func (s Set) Toggle(t Tag) Set {
	if s.Has(t.ID) {
		out := make(Set, 0, len(s)-1)
		for _, x := range s {
			if x.ID != t.ID {
				out = append(out, x)
			}
		}
		return out
	}
	out := make(Set, 0, len(s)+1)
	out = append(out, s...)
	return append(out, t)
}

// Intersects reports whether any tag of s is in other.
func (s Set) Intersects(other Set) bool {
	for _, t := range s {
		if other.Has(t.ID) {
			return true
		}
	}
	return false
}

// IDs returns the tag ids in set order.
func (s Set) IDs() []string {
	ids := make([]string, len(s))
	for i, t := range s {
		ids[i] = t.ID
	}
	return ids
}

// Clone returns an independent copy.
func (s Set) Clone() Set {
	if s == nil {
		return nil
	}
	out := make(Set, len(s))
	copy(out, s)
	return out
}
