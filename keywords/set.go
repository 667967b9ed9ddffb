package keywords

import (
	"maps"
	"slices"
)

// Set is an unordered collection of normalized keywords.
type Set map[string]struct{}

func NewSet(words ...string) Set {
	s := make(Set, len(words))
	for _, w := range words {
		s[w] = struct{}{}
	}

	return s
}

func (s Set) Contains(w string) bool {
	_, ok := s[w]
	return ok
}

func (s Set) Len() int {
	return len(s)
}

func (s Set) Intersect(other Set) Set {
	res := make(Set)
	for w := range s {
		if other.Contains(w) {
			res[w] = struct{}{}
		}
	}

	return res
}

func (s Set) Difference(other Set) Set {
	res := make(Set)
	for w := range s {
		if !other.Contains(w) {
			res[w] = struct{}{}
		}
	}

	return res
}

// Sorted returns the members in lexical order, nil when the set is empty.
func (s Set) Sorted() []string {
	return slices.Sorted(maps.Keys(s))
}
