// Package sparse provides a sparse set of automaton state indices.
//
// Closure and reachability walks over an automaton arena visit each state at
// most once. A sparse set gives O(1) membership tests and O(1) clearing, so a
// single set can be reused as scratch space across every walk of a
// construction.
package sparse

import "sort"

// SparseSet is a set of uint32 values drawn from [0, capacity).
// The dense array keeps values in insertion order; the sparse array maps a
// value to its slot in dense.
type SparseSet struct {
	sparse []uint32
	dense  []uint32
}

// NewSparseSet creates a set able to hold values in [0, capacity).
func NewSparseSet(capacity int) *SparseSet {
	return &SparseSet{
		sparse: make([]uint32, capacity),
		dense:  make([]uint32, 0, capacity),
	}
}

// Grow extends the capacity to at least capacity, keeping current members.
func (s *SparseSet) Grow(capacity int) {
	if capacity <= len(s.sparse) {
		return
	}
	sparse := make([]uint32, capacity)
	copy(sparse, s.sparse)
	s.sparse = sparse
}

// Insert adds value to the set and reports whether it was absent.
// Panics if value is outside the capacity.
func (s *SparseSet) Insert(value uint32) bool {
	if s.Contains(value) {
		return false
	}
	s.sparse[value] = uint32(len(s.dense))
	s.dense = append(s.dense, value)
	return true
}

// Contains reports whether value is in the set.
func (s *SparseSet) Contains(value uint32) bool {
	if int(value) >= len(s.sparse) {
		return false
	}
	idx := s.sparse[value]
	return int(idx) < len(s.dense) && s.dense[idx] == value
}

// Clear empties the set in O(1).
func (s *SparseSet) Clear() {
	s.dense = s.dense[:0]
}

// Len returns the number of members.
func (s *SparseSet) Len() int {
	return len(s.dense)
}

// Sorted returns a fresh ascending copy of the members.
func (s *SparseSet) Sorted() []uint32 {
	out := make([]uint32, len(s.dense))
	copy(out, s.dense)
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
