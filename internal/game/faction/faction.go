// Package faction tracks the named groups a character belongs to.
package faction

import (
	"errors"
	"sort"
)

// Set is a collection of faction IDs. The zero value is an empty, usable Set.
//
// Invariant: every member is a non-empty string; duplicates are impossible.
type Set struct {
	members map[string]struct{}
}

// Join adds id to the set. Joining a faction twice is a no-op.
//
// Precondition: id must be non-empty.
// Postcondition: Has(id) is true, or a non-nil error is returned for an empty id.
func (s *Set) Join(id string) error {
	if id == "" {
		return errors.New("faction id must not be empty")
	}
	if s.members == nil {
		s.members = make(map[string]struct{})
	}
	s.members[id] = struct{}{}
	return nil
}

// Leave removes id from the set. Leaving a faction that was never joined is a no-op.
//
// Postcondition: Has(id) is false.
func (s *Set) Leave(id string) {
	delete(s.members, id)
}

// Has reports whether id is a member.
func (s *Set) Has(id string) bool {
	_, ok := s.members[id]
	return ok
}

// Len returns the number of factions in the set.
func (s *Set) Len() int { return len(s.members) }

// Shares reports whether s and other have at least one faction in common.
// Neither set is modified.
//
// Postcondition: Returns false if either set is empty.
func (s *Set) Shares(other *Set) bool {
	if other == nil {
		return false
	}
	small, large := s, other
	if large.Len() < small.Len() {
		small, large = large, small
	}
	for id := range small.members {
		if large.Has(id) {
			return true
		}
	}
	return false
}

// Members returns the faction IDs in lexicographic order.
//
// Postcondition: The returned slice is a fresh copy; mutating it does not affect s.
func (s *Set) Members() []string {
	out := make([]string, 0, len(s.members))
	for id := range s.members {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}
