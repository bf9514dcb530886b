package listview

import (
	"slices"
)

// Selection is a set of selected record ids. It is not safe for concurrent
// use on its own; View guards the selection it holds.
type Selection struct {
	ids map[string]struct{}
}

// NewSelection returns an empty selection
func NewSelection() *Selection {
	return &Selection{ids: make(map[string]struct{})}
}

// ToggleOne flips the membership of id
func (s *Selection) ToggleOne(id string) {
	if _, ok := s.ids[id]; ok {
		delete(s.ids, id)
		return
	}
	s.ids[id] = struct{}{}
}

// ToggleAll empties the selection when it already equals all, otherwise
// selects exactly all.
func (s *Selection) ToggleAll(all []string) {
	if s.equals(all) {
		s.Clear()
		return
	}
	s.ids = make(map[string]struct{}, len(all))
	for _, id := range all {
		s.ids[id] = struct{}{}
	}
}

// Clear deselects everything
func (s *Selection) Clear() {
	s.ids = make(map[string]struct{})
}

// Has reports whether id is selected
func (s *Selection) Has(id string) bool {
	_, ok := s.ids[id]
	return ok
}

// Len returns the number of selected ids
func (s *Selection) Len() int {
	return len(s.ids)
}

// IDs returns the selected ids in sorted order
func (s *Selection) IDs() []string {
	out := make([]string, 0, len(s.ids))
	for id := range s.ids {
		out = append(out, id)
	}
	slices.Sort(out)
	return out
}

// Retain drops ids that are not in valid
func (s *Selection) Retain(valid []string) {
	keep := make(map[string]struct{}, len(valid))
	for _, id := range valid {
		keep[id] = struct{}{}
	}
	for id := range s.ids {
		if _, ok := keep[id]; !ok {
			delete(s.ids, id)
		}
	}
}

func (s *Selection) equals(all []string) bool {
	seen := make(map[string]struct{}, len(all))
	for _, id := range all {
		if _, ok := s.ids[id]; !ok {
			return false
		}
		seen[id] = struct{}{}
	}
	return len(seen) == len(s.ids)
}
