package dfa

import (
	"fmt"
	"hash/fnv"

	"github.com/coregx/kleene/nfa"
)

// StateKey is a hash of an NFA state set, used to bucket candidate sets
// during subset construction. Equal sets always have equal keys; sets in the
// same bucket are still compared member by member.
type StateKey uint64

// ComputeStateKey hashes a canonical (sorted) NFA state set with FNV-1a.
func ComputeStateKey(set nfa.StateSet) StateKey {
	if len(set) == 0 {
		return StateKey(0)
	}
	h := fnv.New64a()
	for _, sid := range set {
		// hash.Hash.Write never returns an error per documentation
		_, _ = h.Write([]byte{
			byte(sid),
			byte(sid >> 8),
			byte(sid >> 16),
			byte(sid >> 24),
		})
	}
	return StateKey(h.Sum64())
}

// builder interns NFA state sets as DFA states.
type builder struct {
	n       *nfa.NFA
	d       *DFA
	buckets map[StateKey][]StateID
	limit   int
}

// intern returns the DFA state standing for set, creating it if needed.
func (b *builder) intern(set nfa.StateSet) (StateID, bool, error) {
	key := ComputeStateKey(set)
	for _, id := range b.buckets[key] {
		if b.d.g.nfaSets[id].Equal(set) {
			return id, false, nil
		}
	}
	if b.limit > 0 && len(b.d.g.states) >= b.limit {
		return InvalidState, false, &DFAError{
			Kind:    StateLimitExceeded,
			Message: fmt.Sprintf("subset construction of %s exceeded %d states", b.n, b.limit),
			Cause:   ErrStateLimitExceeded,
		}
	}

	var final, isErr bool
	for _, s := range set {
		st := b.n.State(s)
		final = final || st.IsFinal()
		isErr = isErr || st.IsError()
	}
	id := toStateID(len(b.d.g.states))
	b.d.g.states = append(b.d.g.states, State{id: id, final: final, err: isErr})
	b.d.g.trans = append(b.d.g.trans, make(map[rune]StateID, len(b.d.g.alphabet)))
	b.d.g.nfaSets = append(b.d.g.nfaSets, set)
	b.buckets[key] = append(b.buckets[key], id)
	return id, true, nil
}

// Build converts n into an equivalent DFA by subset construction.
//
// Each DFA state stands for one distinct NFA state set reachable from the
// epsilon closure of n's start state; the empty set becomes an ordinary
// non-final state. Every reachable DFA state has a transition for every
// token of n's alphabet. A DFA state is final if any member is final and an
// error state if any member is an error state.
//
// n is not modified. It is recorded as the DFA's origin.
func Build(n *nfa.NFA, cfg Config) (*DFA, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	alphabet := append(nfa.Alphabet(nil), n.Alphabet()...)
	d := &DFA{
		g: &graph{
			alphabet: alphabet,
			nfaSets:  make([]nfa.StateSet, 0, 8),
			origin:   n,
		},
		pattern: n.Pattern(),
	}
	b := &builder{
		n:       n,
		d:       d,
		buckets: make(map[StateKey][]StateID),
		limit:   cfg.MaxStates,
	}

	start, _, err := b.intern(n.EpsilonClosure(n.Start()))
	if err != nil {
		return nil, err
	}
	d.start = start
	d.current = start

	queue := []StateID{start}
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		set := d.g.nfaSets[id]
		for _, tok := range alphabet {
			next, isNew, err := b.intern(n.NextStates(set, tok))
			if err != nil {
				return nil, err
			}
			if isNew {
				queue = append(queue, next)
			}
			d.g.trans[id][tok] = next
		}
	}

	d.g.nfaIndex = make(map[nfa.StateID][]StateID)
	for id, set := range d.g.nfaSets {
		for _, s := range set {
			d.g.nfaIndex[s] = append(d.g.nfaIndex[s], StateID(id))
		}
	}
	d.g.live = coReachable(d.g)
	return d, nil
}

// FromNFA is Build without a state limit.
func FromNFA(n *nfa.NFA) *DFA {
	d, err := Build(n, Config{})
	if err != nil {
		// Unbounded construction cannot fail.
		panic(err)
	}
	return d
}

// NFAStates returns the NFA state set a DFA state stands for, or nil if the
// DFA was not built from an NFA.
func (d *DFA) NFAStates(id StateID) nfa.StateSet {
	if d.g.nfaSets == nil || int(id) >= len(d.g.nfaSets) {
		return nil
	}
	return d.g.nfaSets[id]
}

// DFAStatesFor returns, in ascending order, the DFA states whose NFA state
// set contains the NFA state id.
func (d *DFA) DFAStatesFor(id nfa.StateID) []StateID {
	return d.g.nfaIndex[id]
}

// Origin returns the NFA the DFA was built from, or nil.
func (d *DFA) Origin() *nfa.NFA {
	return d.g.origin
}
