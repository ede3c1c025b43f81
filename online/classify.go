package online

import (
	"sort"

	"github.com/coregx/kleene/dfa"
	"github.com/coregx/kleene/nfa"
)

// owners maps composite NFA states back to the pattern they were copied
// from. offsets[i] is the first composite ID of pattern i.
type owners struct {
	start   nfa.StateID
	offsets []nfa.StateID
}

// of returns the owner of s, or -1 for the composite start state.
func (o owners) of(s nfa.StateID) int {
	if s == o.start {
		return -1
	}
	return sort.Search(len(o.offsets), func(i int) bool { return o.offsets[i] > s }) - 1
}

// ofSet returns the distinct owners of the states in set in ascending order.
// The composite start state has no owner and is skipped.
func (o owners) ofSet(set nfa.StateSet) []int {
	var out []int
	for _, s := range set {
		p := o.of(s)
		if p < 0 {
			continue
		}
		if n := len(out); n == 0 || out[n-1] != p {
			out = append(out, p)
		}
	}
	return out
}

// mergeInts returns the sorted union of two sorted, duplicate-free slices.
func mergeInts(a, b []int) []int {
	out := make([]int, 0, len(a)+len(b))
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		switch {
		case a[i] < b[j]:
			out = append(out, a[i])
			i++
		case a[i] > b[j]:
			out = append(out, b[j])
			j++
		default:
			out = append(out, a[i])
			i++
			j++
		}
	}
	out = append(out, a[i:]...)
	return append(out, b[j:]...)
}

func dfaStatesOf(d *dfa.DFA, set nfa.StateSet) map[dfa.StateID]struct{} {
	out := make(map[dfa.StateID]struct{})
	for _, s := range set {
		for _, ds := range d.DFAStatesFor(s) {
			out[ds] = struct{}{}
		}
	}
	return out
}

// classify computes the tags of the composite DFA d built from the
// composite NFA c.
//
// Three groups of composite NFA states matter:
//   - first-character states, reached by one non-epsilon, non-error step
//     from the closure of the composite start;
//   - final states of the augmented patterns;
//   - start-and-final states, final states inside that closure, which
//     belong to patterns accepting the empty string.
//
// Every DFA state that stands for a first-character or final state gets
// tags. Entering it records, in order, empty matches, candidate starts and
// match ends for the patterns owning the relevant members.
func classify(c *nfa.NFA, d *dfa.DFA, own owners) map[dfa.StateID][]dfa.Tag {
	closure := c.EpsilonClosure(c.Start())

	var firstChar, startFinal []nfa.StateID
	for _, t := range c.TransitionsFrom(closure...) {
		if t.IsEpsilon() || c.State(t.To).IsError() {
			continue
		}
		firstChar = append(firstChar, t.To)
	}
	for _, s := range closure {
		if c.State(s).IsFinal() {
			startFinal = append(startFinal, s)
		}
	}
	first := nfa.NewStateSet(firstChar...)
	finals := c.FinalStates()
	empty := nfa.NewStateSet(startFinal...)

	firstDFA := dfaStatesOf(d, first)
	finalDFA := dfaStatesOf(d, finals)
	emptyDFA := dfaStatesOf(d, empty)

	targets := make([]dfa.StateID, 0, len(firstDFA)+len(finalDFA))
	for ds := range firstDFA {
		targets = append(targets, ds)
	}
	for ds := range finalDFA {
		if _, dup := firstDFA[ds]; !dup {
			targets = append(targets, ds)
		}
	}
	sort.Slice(targets, func(i, j int) bool { return targets[i] < targets[j] })

	tags := make(map[dfa.StateID][]dfa.Tag, len(targets))
	for _, ds := range targets {
		members := d.NFAStates(ds)
		_, isFirst := firstDFA[ds]
		_, isFinal := finalDFA[ds]
		_, isEmpty := emptyDFA[ds]

		emptyOwners := own.ofSet(members.Intersect(empty))
		var out []dfa.Tag
		if isEmpty {
			for _, p := range emptyOwners {
				out = append(out, dfa.Tag{Kind: dfa.EmptyMatch, Pattern: p})
			}
		}
		if isEmpty || isFirst {
			for _, p := range mergeInts(own.ofSet(members.Intersect(first)), emptyOwners) {
				out = append(out, dfa.Tag{Kind: dfa.CandidateStart, Pattern: p})
			}
		}
		if isFinal {
			for _, p := range own.ofSet(members.Intersect(finals)) {
				out = append(out, dfa.Tag{Kind: dfa.MatchEnd, Pattern: p})
			}
		}
		if len(out) > 0 {
			tags[ds] = out
		}
	}
	return tags
}
