package nfa

import (
	"fmt"
	"math"
	"sort"
)

// StateID identifies a state within one automaton's arena.
// IDs are only meaningful relative to the automaton that issued them.
type StateID uint32

// InvalidState represents an invalid/uninitialized state ID
const InvalidState StateID = math.MaxUint32

// Epsilon labels transitions that consume no input.
// It lies outside every alphabet.
const Epsilon rune = -1

// State is an automaton node. Two states are the same state only if they
// have the same ID in the same arena; the flags play no part in identity.
type State struct {
	id    StateID
	final bool
	err   bool
}

// ID returns the state's identifier
func (s State) ID() StateID {
	return s.id
}

// IsFinal reports whether the state is accepting.
func (s State) IsFinal() bool {
	return s.final
}

// IsError reports whether the state is an error state.
func (s State) IsError() bool {
	return s.err
}

// String returns a human-readable representation of the state
func (s State) String() string {
	return fmt.Sprintf("State{id: %d, final: %t, error: %t}", s.id, s.final, s.err)
}

// toStateID converts an arena length to a StateID.
// Panics if n does not fit; an arena that large is a programming error.
func toStateID(n int) StateID {
	if n < 0 || uint64(n) >= uint64(InvalidState) {
		panic("integer overflow: arena index out of StateID range")
	}
	return StateID(n)
}

// StateSet is a sorted, duplicate-free set of state IDs.
// Two StateSets are the same set exactly when Equal reports true, regardless
// of the order in which members were discovered.
type StateSet []StateID

// NewStateSet builds a canonical set from ids in any order.
func NewStateSet(ids ...StateID) StateSet {
	if len(ids) == 0 {
		return StateSet{}
	}
	out := make(StateSet, len(ids))
	copy(out, ids)
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	w := 1
	for r := 1; r < len(out); r++ {
		if out[r] != out[w-1] {
			out[w] = out[r]
			w++
		}
	}
	return out[:w]
}

// Contains reports whether id is a member.
func (s StateSet) Contains(id StateID) bool {
	i := sort.Search(len(s), func(i int) bool { return s[i] >= id })
	return i < len(s) && s[i] == id
}

// Equal reports whether s and o have the same members.
func (s StateSet) Equal(o StateSet) bool {
	if len(s) != len(o) {
		return false
	}
	for i := range s {
		if s[i] != o[i] {
			return false
		}
	}
	return true
}

// Union returns the members of s or o.
func (s StateSet) Union(o StateSet) StateSet {
	out := make(StateSet, 0, len(s)+len(o))
	i, j := 0, 0
	for i < len(s) && j < len(o) {
		switch {
		case s[i] < o[j]:
			out = append(out, s[i])
			i++
		case s[i] > o[j]:
			out = append(out, o[j])
			j++
		default:
			out = append(out, s[i])
			i++
			j++
		}
	}
	out = append(out, s[i:]...)
	return append(out, o[j:]...)
}

// Intersect returns the members of both s and o.
func (s StateSet) Intersect(o StateSet) StateSet {
	out := StateSet{}
	i, j := 0, 0
	for i < len(s) && j < len(o) {
		switch {
		case s[i] < o[j]:
			i++
		case s[i] > o[j]:
			j++
		default:
			out = append(out, s[i])
			i++
			j++
		}
	}
	return out
}
