package online

import (
	"sort"

	"github.com/coregx/kleene/dfa"
)

// Span is a half-open range [Start, End) of buffer offsets. Empty matches
// have Start == End.
type Span struct {
	Start int
	End   int
}

// Tracker is the per-pattern match ledger of a Matcher.
//
// Patterns are identified by their index in the list the Matcher was built
// from. Candidate starts, match ends and empty matches are observed on the
// composite automaton and refer to the dead-end augmented patterns; the
// matches ledger holds the confirmed matches of the caller's patterns.
//
// Match ends are inclusive offsets of the last rune consumed. Because error
// states of the augmented patterns are tied back to the composite start, an
// end can also coincide with an empty match; only the matches ledger is
// authoritative.
type Tracker struct {
	starts  map[int][]int
	ends    map[int][]int
	empties map[int][]int
	matches map[int][]Span
}

// NewTracker returns an empty ledger.
func NewTracker() *Tracker {
	t := &Tracker{}
	t.Reset()
	return t
}

// Reset forgets everything recorded so far.
func (t *Tracker) Reset() {
	t.starts = make(map[int][]int)
	t.ends = make(map[int][]int)
	t.empties = make(map[int][]int)
	t.matches = make(map[int][]Span)
}

// AddCandidateStart records that a match of pattern may begin at offset.
func (t *Tracker) AddCandidateStart(pattern, offset int) {
	t.starts[pattern] = append(t.starts[pattern], offset)
}

// AddMatchEnd records that a match of pattern ends at offset, inclusive.
func (t *Tracker) AddMatchEnd(pattern, offset int) {
	t.ends[pattern] = append(t.ends[pattern], offset)
}

// AddEmptyMatch records an empty match of pattern at offset.
func (t *Tracker) AddEmptyMatch(pattern, offset int) {
	t.empties[pattern] = append(t.empties[pattern], offset)
}

// AddMatch records a confirmed match of pattern.
func (t *Tracker) AddMatch(pattern int, s Span) {
	t.matches[pattern] = append(t.matches[pattern], s)
}

// Record files a composite automaton event in the matching ledger.
func (t *Tracker) Record(ev dfa.Event) {
	switch ev.Kind {
	case dfa.CandidateStart:
		t.AddCandidateStart(ev.Pattern, ev.Offset)
	case dfa.MatchEnd:
		t.AddMatchEnd(ev.Pattern, ev.Offset)
	case dfa.EmptyMatch:
		t.AddEmptyMatch(ev.Pattern, ev.Offset)
	}
}

// StartPositions returns the candidate start offsets of pattern in the
// order they were observed.
func (t *Tracker) StartPositions(pattern int) []int {
	return t.starts[pattern]
}

// EndPositions returns the match end offsets of pattern.
func (t *Tracker) EndPositions(pattern int) []int {
	return t.ends[pattern]
}

// EmptyMatchPositions returns the empty match offsets of pattern.
func (t *Tracker) EmptyMatchPositions(pattern int) []int {
	return t.empties[pattern]
}

// MatchesFor returns the confirmed matches of pattern.
func (t *Tracker) MatchesFor(pattern int) []Span {
	return t.matches[pattern]
}

// Patterns returns, in ascending order, the indices of patterns that have at
// least one confirmed match.
func (t *Tracker) Patterns() []int {
	out := make([]int, 0, len(t.matches))
	for p, ms := range t.matches {
		if len(ms) > 0 {
			out = append(out, p)
		}
	}
	sort.Ints(out)
	return out
}

// InvertCandidateStarts maps each candidate start offset to the patterns
// that may begin there, in ascending pattern order.
func (t *Tracker) InvertCandidateStarts() map[int][]int {
	return t.InvertCandidateStartsSince(nil)
}

// InvertCandidateStartsSince is InvertCandidateStarts restricted to the
// starts recorded after a watermark: the first marks[p] start positions of
// pattern p are skipped. Patterns beyond len(marks) are not skipped.
func (t *Tracker) InvertCandidateStartsSince(marks []int) map[int][]int {
	patterns := make([]int, 0, len(t.starts))
	for p := range t.starts {
		patterns = append(patterns, p)
	}
	sort.Ints(patterns)

	out := make(map[int][]int)
	for _, p := range patterns {
		starts := t.starts[p]
		if p < len(marks) {
			starts = starts[marks[p]:]
		}
		for _, off := range starts {
			out[off] = append(out[off], p)
		}
	}
	return out
}
