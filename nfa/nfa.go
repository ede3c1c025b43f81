package nfa

import (
	"fmt"
	"sort"
	"strings"

	"github.com/coregx/kleene/internal/sparse"
)

// Transition is a labelled edge between two states of the same automaton.
type Transition struct {
	Token rune
	From  StateID
	To    StateID
}

// IsEpsilon reports whether the transition consumes no input.
func (t Transition) IsEpsilon() bool {
	return t.Token == Epsilon
}

// String returns a human-readable representation of the transition
func (t Transition) String() string {
	if t.IsEpsilon() {
		return fmt.Sprintf("%d -> epsilon -> %d", t.From, t.To)
	}
	return fmt.Sprintf("%d -> %q -> %d", t.From, t.Token, t.To)
}

// NFA is a nondeterministic finite automaton.
//
// States live in an arena indexed by StateID. For each state the automaton
// keeps a token -> destination-set map; adding the same transition twice is a
// no-op.
//
// An NFA also carries a current state set so it can be driven token by
// token (Reset, HandleToken, Accept), and a scratch set reused by closure
// and reachability walks. Both make an NFA unsafe for concurrent use, even
// for read-only queries such as EpsilonClosure; Clone it per goroutine.
type NFA struct {
	states   []State
	removed  []bool
	out      []map[rune][]StateID
	start    StateID
	alphabet Alphabet
	current  StateSet
	pattern  string

	walk *sparse.SparseSet
}

// New creates an NFA with a single non-final start state over alphabet.
func New(alphabet Alphabet) *NFA {
	n := newEmpty(alphabet)
	n.start = n.AddState(false)
	n.Reset()
	return n
}

func newEmpty(alphabet Alphabet) *NFA {
	return &NFA{
		states:   make([]State, 0, 8),
		removed:  make([]bool, 0, 8),
		out:      make([]map[rune][]StateID, 0, 8),
		start:    InvalidState,
		alphabet: NewAlphabet(alphabet...),
	}
}

// AddState appends a fresh state to the arena and returns its ID.
func (n *NFA) AddState(final bool) StateID {
	id := toStateID(len(n.states))
	n.states = append(n.states, State{id: id, final: final})
	n.removed = append(n.removed, false)
	n.out = append(n.out, nil)
	return id
}

// addErrorState appends a non-final error state.
func (n *NFA) addErrorState() StateID {
	id := n.AddState(false)
	n.states[id].err = true
	return id
}

// AddTransition adds an edge labelled token from -> to. The token joins the
// alphabet unless it is Epsilon.
// Panics if either state is not a live member of the arena.
func (n *NFA) AddTransition(token rune, from, to StateID) Transition {
	n.mustLive(from)
	n.mustLive(to)
	n.alphabet = n.alphabet.With(token)

	m := n.out[from]
	if m == nil {
		m = make(map[rune][]StateID, 2)
		n.out[from] = m
	}
	dests := m[token]
	for _, d := range dests {
		if d == to {
			return Transition{Token: token, From: from, To: to}
		}
	}
	m[token] = append(dests, to)
	return Transition{Token: token, From: from, To: to}
}

func (n *NFA) mustLive(id StateID) {
	if !n.isLive(id) {
		panic(&BuildError{Message: "state is not a member of this NFA", StateID: id, Err: ErrUnknownState})
	}
}

func (n *NFA) isLive(id StateID) bool {
	return int(id) < len(n.states) && !n.removed[id]
}

// RemoveState drops a state from the automaton. The state must not be the
// source or target of any transition, and must not be the start state.
func (n *NFA) RemoveState(id StateID) error {
	if !n.isLive(id) {
		return &BuildError{Message: "cannot remove unknown state", StateID: id, Err: ErrUnknownState}
	}
	if id == n.start || n.hasIncident(id) {
		return &BuildError{
			Message: "unable to remove state: at least one transition leads to or from the state",
			StateID: id,
			Err:     ErrIncidentTransitions,
		}
	}
	if int(id) == len(n.states)-1 {
		n.states = n.states[:id]
		n.removed = n.removed[:id]
		n.out = n.out[:id]
		return nil
	}
	n.removed[id] = true
	n.out[id] = nil
	return nil
}

func (n *NFA) hasIncident(id StateID) bool {
	if len(n.out[id]) > 0 {
		return true
	}
	for _, m := range n.out {
		for _, dests := range m {
			for _, d := range dests {
				if d == id {
					return true
				}
			}
		}
	}
	return false
}

// Start returns the start state's ID.
func (n *NFA) Start() StateID {
	return n.start
}

// State returns the state with the given ID.
func (n *NFA) State(id StateID) State {
	n.mustLive(id)
	return n.states[id]
}

// SetFinal sets the accepting flag of a state.
func (n *NFA) SetFinal(id StateID, final bool) {
	n.mustLive(id)
	n.states[id].final = final
}

// States returns all live states in ID order.
func (n *NFA) States() []State {
	out := make([]State, 0, len(n.states))
	for i, s := range n.states {
		if !n.removed[i] {
			out = append(out, s)
		}
	}
	return out
}

// NumStates returns the arena size. IDs range over [0, NumStates()).
func (n *NFA) NumStates() int {
	return len(n.states)
}

// Alphabet returns the automaton's input symbols.
func (n *NFA) Alphabet() Alphabet {
	return n.alphabet
}

// ExtendAlphabet adds symbols to the alphabet without adding transitions.
func (n *NFA) ExtendAlphabet(a Alphabet) *NFA {
	n.alphabet = n.alphabet.Union(a)
	return n
}

// FinalStates returns the IDs of all live accepting states.
func (n *NFA) FinalStates() StateSet {
	return n.selectStates(func(s State) bool { return s.final })
}

// ErrorStates returns the IDs of all live error states.
func (n *NFA) ErrorStates() StateSet {
	return n.selectStates(func(s State) bool { return s.err })
}

func (n *NFA) selectStates(keep func(State) bool) StateSet {
	out := StateSet{}
	for i, s := range n.states {
		if !n.removed[i] && keep(s) {
			out = append(out, s.id)
		}
	}
	return out
}

// TransitionsFrom returns the outbound transitions of the given states,
// ordered by source, token, then insertion.
func (n *NFA) TransitionsFrom(ids ...StateID) []Transition {
	set := NewStateSet(ids...)
	var out []Transition
	for _, id := range set {
		m := n.out[id]
		tokens := make([]rune, 0, len(m))
		for tok := range m {
			tokens = append(tokens, tok)
		}
		sort.Slice(tokens, func(i, j int) bool { return tokens[i] < tokens[j] })
		for _, tok := range tokens {
			for _, to := range m[tok] {
				out = append(out, Transition{Token: tok, From: id, To: to})
			}
		}
	}
	return out
}

// AllTransitions returns every transition in the automaton.
func (n *NFA) AllTransitions() []Transition {
	ids := make([]StateID, 0, len(n.states))
	for i := range n.states {
		if !n.removed[i] {
			ids = append(ids, StateID(i))
		}
	}
	return n.TransitionsFrom(ids...)
}

// outboundTokens returns the set of tokens labelling id's outbound edges.
func (n *NFA) outboundTokens(id StateID) map[rune]struct{} {
	present := make(map[rune]struct{}, len(n.out[id]))
	for tok := range n.out[id] {
		present[tok] = struct{}{}
	}
	return present
}

// EpsilonClosure returns every state reachable from ids through epsilon
// transitions alone, including ids themselves.
func (n *NFA) EpsilonClosure(ids ...StateID) StateSet {
	seen := n.scratch()
	stack := make([]StateID, 0, len(ids))
	for _, id := range ids {
		if seen.Insert(uint32(id)) {
			stack = append(stack, id)
		}
	}
	for len(stack) > 0 {
		id := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, to := range n.out[id][Epsilon] {
			if seen.Insert(uint32(to)) {
				stack = append(stack, to)
			}
		}
	}
	return fromSparse(seen)
}

// NextStates returns the epsilon closure of the states reached from the
// epsilon closure of set by one transition on token. The result is empty
// when no such transition exists.
func (n *NFA) NextStates(set StateSet, token rune) StateSet {
	var dests []StateID
	for _, id := range n.EpsilonClosure(set...) {
		dests = append(dests, n.out[id][token]...)
	}
	if len(dests) == 0 {
		return StateSet{}
	}
	return n.EpsilonClosure(dests...)
}

// ReachableStates returns every state reachable from id through any path.
func (n *NFA) ReachableStates(id StateID) StateSet {
	seen := n.scratch()
	seen.Insert(uint32(id))
	stack := []StateID{id}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, dests := range n.out[cur] {
			for _, to := range dests {
				if seen.Insert(uint32(to)) {
					stack = append(stack, to)
				}
			}
		}
	}
	return fromSparse(seen)
}

// scratch returns the walk set, emptied and sized to the arena.
func (n *NFA) scratch() *sparse.SparseSet {
	if n.walk == nil {
		n.walk = sparse.NewSparseSet(len(n.states))
		return n.walk
	}
	n.walk.Grow(len(n.states))
	n.walk.Clear()
	return n.walk
}

func fromSparse(s *sparse.SparseSet) StateSet {
	sorted := s.Sorted()
	out := make(StateSet, len(sorted))
	for i, v := range sorted {
		out[i] = StateID(v)
	}
	return out
}

// Clone returns an isomorphic copy that shares no mutable state with n.
// The copy's cursor is reset.
func (n *NFA) Clone() *NFA {
	c := &NFA{
		states:   append([]State(nil), n.states...),
		removed:  append([]bool(nil), n.removed...),
		out:      make([]map[rune][]StateID, len(n.out)),
		start:    n.start,
		alphabet: append(Alphabet(nil), n.alphabet...),
		pattern:  n.pattern,
	}
	for i, m := range n.out {
		if m == nil {
			continue
		}
		cm := make(map[rune][]StateID, len(m))
		for tok, dests := range m {
			cm[tok] = append([]StateID(nil), dests...)
		}
		c.out[i] = cm
	}
	c.Reset()
	return c
}

// absorb copies m's arena and transitions into n and returns the offset
// added to every copied ID. m is not modified. The alphabets are merged.
func (n *NFA) absorb(m *NFA) StateID {
	off := toStateID(len(n.states))
	for i, s := range m.states {
		s.id += off
		n.states = append(n.states, s)
		n.removed = append(n.removed, m.removed[i])
		n.out = append(n.out, nil)
	}
	for i, om := range m.out {
		if om == nil {
			continue
		}
		nm := make(map[rune][]StateID, len(om))
		for tok, dests := range om {
			shifted := make([]StateID, len(dests))
			for j, d := range dests {
				shifted[j] = d + off
			}
			nm[tok] = shifted
		}
		n.out[StateID(i)+off] = nm
	}
	n.alphabet = n.alphabet.Union(m.alphabet)
	return off
}

// Pattern returns the display label accumulated by the combinators.
func (n *NFA) Pattern() string {
	return n.pattern
}

// SetPattern replaces the display label and returns n.
func (n *NFA) SetPattern(p string) *NFA {
	n.pattern = p
	return n
}

// String returns the display label, or "<<empty>>" if none was set.
func (n *NFA) String() string {
	if n.pattern == "" {
		return "<<empty>>"
	}
	return n.pattern
}

// Dump returns a verbose listing of states and transitions.
func (n *NFA) Dump() string {
	var b strings.Builder
	for _, s := range n.States() {
		b.WriteString(s.String())
		b.WriteByte('\n')
	}
	for _, t := range n.AllTransitions() {
		b.WriteString(t.String())
		b.WriteByte('\n')
	}
	return b.String()
}
