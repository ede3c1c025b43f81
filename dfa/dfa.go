// Package dfa provides deterministic finite automata over rune alphabets,
// built from NFAs by subset construction.
//
// A DFA can be driven token by token. Transitions and destination states may
// carry tags; stepping over a tagged transition queues an Event that the
// caller drains afterwards. Events replace per-transition callbacks so the
// automaton never calls back into the code driving it.
package dfa

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/coregx/kleene/internal/sparse"
	"github.com/coregx/kleene/nfa"
)

// StateID identifies a state within one DFA's graph.
type StateID uint32

// InvalidState represents an invalid/uninitialized state ID
const InvalidState StateID = math.MaxUint32

// State is a DFA node.
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

// IsError reports whether the state represents an NFA error state.
func (s State) IsError() bool {
	return s.err
}

// String returns a human-readable representation of the state
func (s State) String() string {
	return fmt.Sprintf("State{id: %d, final: %t, error: %t}", s.id, s.final, s.err)
}

// Transition is a labelled DFA edge. It is comparable and serves as the key
// for transition tags.
type Transition struct {
	Token rune
	From  StateID
	To    StateID
}

// String returns a human-readable representation of the transition
func (t Transition) String() string {
	return fmt.Sprintf("%d -> %q -> %d", t.From, t.Token, t.To)
}

// graph is the part of a DFA shared between shallow clones.
type graph struct {
	states   []State
	trans    []map[rune]StateID
	alphabet nfa.Alphabet

	// live[s] reports whether a final state is reachable from s. Nil until
	// computed; structural edits reset it.
	live []bool

	// Populated by Build only.
	nfaSets  []nfa.StateSet
	nfaIndex map[nfa.StateID][]StateID
	origin   *nfa.NFA
}

// DFA is a deterministic finite automaton with a cursor.
//
// The cursor, tags and pending events belong to one DFA value; the graph of
// states and transitions may be shared with shallow clones. A DFA is not
// safe for concurrent use.
type DFA struct {
	g       *graph
	start   StateID
	current StateID
	pattern string

	onTransition map[Transition][]Tag
	onArrive     map[StateID][]Tag
	events       []Event
}

// New creates a DFA with a single non-final start state over alphabet.
func New(alphabet nfa.Alphabet) *DFA {
	d := &DFA{
		g: &graph{
			alphabet: nfa.NewAlphabet(alphabet...),
		},
	}
	d.start = d.AddState(false)
	d.current = d.start
	return d
}

// AddState appends a fresh state and returns its ID.
func (d *DFA) AddState(final bool) StateID {
	id := toStateID(len(d.g.states))
	d.g.states = append(d.g.states, State{id: id, final: final})
	d.g.trans = append(d.g.trans, make(map[rune]StateID))
	d.g.live = nil
	return id
}

// SetFinal marks a state as accepting or not.
func (d *DFA) SetFinal(id StateID, final bool) {
	d.mustExist(id)
	d.g.states[id].final = final
	d.g.live = nil
}

// AddTransition sets the transition from `from` on token to `to`, replacing
// any previous one, and adds token to the alphabet. It panics on unknown
// states and on Epsilon.
func (d *DFA) AddTransition(token rune, from, to StateID) Transition {
	if token == nfa.Epsilon {
		panic("dfa: epsilon transitions are not allowed")
	}
	d.mustExist(from)
	d.mustExist(to)
	if !d.g.alphabet.Contains(token) {
		d.g.alphabet = d.g.alphabet.With(token)
	}
	d.g.trans[from][token] = to
	d.g.live = nil
	return Transition{Token: token, From: from, To: to}
}

func (d *DFA) mustExist(id StateID) {
	if int(id) >= len(d.g.states) {
		panic(fmt.Sprintf("dfa: unknown state %d", id))
	}
}

// Start returns the start state ID.
func (d *DFA) Start() StateID {
	return d.start
}

// Current returns the cursor's state ID.
func (d *DFA) Current() StateID {
	return d.current
}

// State returns the state with the given ID.
func (d *DFA) State(id StateID) State {
	d.mustExist(id)
	return d.g.states[id]
}

// States returns every state in ID order.
func (d *DFA) States() []State {
	return append([]State(nil), d.g.states...)
}

// NumStates returns the number of states.
func (d *DFA) NumStates() int {
	return len(d.g.states)
}

// Alphabet returns the tokens the DFA has transitions for.
func (d *DFA) Alphabet() nfa.Alphabet {
	return d.g.alphabet
}

// FinalStates returns the IDs of accepting states.
func (d *DFA) FinalStates() []StateID {
	return d.selectStates(State.IsFinal)
}

// ErrorStates returns the IDs of error states.
func (d *DFA) ErrorStates() []StateID {
	return d.selectStates(State.IsError)
}

func (d *DFA) selectStates(keep func(State) bool) []StateID {
	var out []StateID
	for _, s := range d.g.states {
		if keep(s) {
			out = append(out, s.id)
		}
	}
	return out
}

// Next looks up the transition from `from` on token without moving the
// cursor or queueing events.
func (d *DFA) Next(from StateID, token rune) (StateID, bool) {
	to, ok := d.g.trans[from][token]
	return to, ok
}

// TransitionsFrom returns the outbound transitions of id ordered by token.
func (d *DFA) TransitionsFrom(id StateID) []Transition {
	d.mustExist(id)
	m := d.g.trans[id]
	out := make([]Transition, 0, len(m))
	for tok, to := range m {
		out = append(out, Transition{Token: tok, From: id, To: to})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Token < out[j].Token })
	return out
}

// AllTransitions returns every transition ordered by source, then token.
func (d *DFA) AllTransitions() []Transition {
	var out []Transition
	for i := range d.g.states {
		out = append(out, d.TransitionsFrom(StateID(i))...)
	}
	return out
}

// ReachableStates returns every state reachable from id, including id,
// in ascending order.
func (d *DFA) ReachableStates(id StateID) []StateID {
	d.mustExist(id)
	seen := sparse.NewSparseSet(len(d.g.states))
	seen.Insert(uint32(id))
	stack := []StateID{id}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, to := range d.g.trans[cur] {
			if seen.Insert(uint32(to)) {
				stack = append(stack, to)
			}
		}
	}
	sorted := seen.Sorted()
	out := make([]StateID, len(sorted))
	for i, v := range sorted {
		out[i] = StateID(v)
	}
	return out
}

// coReachable marks every state from which some final state is reachable,
// walking the transitions backwards from the final states.
func coReachable(g *graph) []bool {
	rev := make([][]StateID, len(g.states))
	for from, m := range g.trans {
		for _, to := range m {
			rev[to] = append(rev[to], StateID(from))
		}
	}
	seen := sparse.NewSparseSet(len(g.states))
	var stack []StateID
	for _, s := range g.states {
		if s.final {
			seen.Insert(uint32(s.id))
			stack = append(stack, s.id)
		}
	}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, from := range rev[cur] {
			if seen.Insert(uint32(from)) {
				stack = append(stack, from)
			}
		}
	}
	live := make([]bool, len(g.states))
	for i := range live {
		live[i] = seen.Contains(uint32(i))
	}
	return live
}

// Reset moves the cursor back to the start state. Tags and pending events
// are left untouched.
func (d *DFA) Reset() {
	d.current = d.start
}

// Step consumes one token at the given input offset. It queues the events
// tagged on the taken transition, then those tagged on its destination
// state, and returns the new current state.
//
// When the current state has no transition on token, Step returns an error
// wrapping ErrUndefinedTransition and the cursor does not move.
func (d *DFA) Step(token rune, offset int) (StateID, error) {
	from := d.current
	to, ok := d.g.trans[from][token]
	if !ok {
		return from, &DFAError{
			Kind:    UndefinedTransition,
			Message: fmt.Sprintf("no DFA transition from state %d on %q at offset %d", from, token, offset),
			Cause:   ErrUndefinedTransition,
		}
	}
	if len(d.onTransition) > 0 || len(d.onArrive) > 0 {
		t := Transition{Token: token, From: from, To: to}
		d.fire(d.onTransition[t], t, offset)
		d.fire(d.onArrive[to], t, offset)
	}
	d.current = to
	return to, nil
}

// HandleToken is Step without the resulting state.
func (d *DFA) HandleToken(token rune, offset int) error {
	_, err := d.Step(token, offset)
	return err
}

// Accept reports whether the current state is final.
func (d *DFA) Accept() bool {
	return d.g.states[d.current].final
}

// InError reports whether the current state is an error state.
func (d *DFA) InError() bool {
	return d.g.states[d.current].err
}

// IsDead reports whether the current state stands for the empty NFA state
// set. It is always false for DFAs that were not built from an NFA. A state
// that is not dead may still be unable to accept; see CanMatch.
func (d *DFA) IsDead() bool {
	return int(d.current) < len(d.g.nfaSets) && len(d.g.nfaSets[d.current]) == 0
}

// CanMatch reports whether some input, possibly empty, leads from the
// current state to a final state. Unlike InError it does not depend on the
// error flags, which a state inherits from any one of its NFA members.
func (d *DFA) CanMatch() bool {
	if d.g.live == nil {
		d.g.live = coReachable(d.g)
	}
	return d.g.live[d.current]
}

// Clone returns a deep copy sharing no mutable structure with d. Tags and
// pending events are not copied and the cursor is reset. The origin NFA is
// shared.
func (d *DFA) Clone() *DFA {
	g := &graph{
		states:   append([]State(nil), d.g.states...),
		trans:    make([]map[rune]StateID, len(d.g.trans)),
		alphabet: append(nfa.Alphabet(nil), d.g.alphabet...),
		origin:   d.g.origin,
	}
	for i, m := range d.g.trans {
		cm := make(map[rune]StateID, len(m))
		for tok, to := range m {
			cm[tok] = to
		}
		g.trans[i] = cm
	}
	if d.g.nfaSets != nil {
		g.nfaSets = append([]nfa.StateSet(nil), d.g.nfaSets...)
		g.nfaIndex = make(map[nfa.StateID][]StateID, len(d.g.nfaIndex))
		for k, v := range d.g.nfaIndex {
			g.nfaIndex[k] = append([]StateID(nil), v...)
		}
	}
	return &DFA{g: g, start: d.start, current: d.start, pattern: d.pattern}
}

// ShallowClone returns a DFA that shares d's states and transitions but has
// its own cursor, tags and event queue. The cursor starts at the start
// state. Structural edits (AddState, AddTransition, SetFinal) through either
// value are visible through both.
func (d *DFA) ShallowClone() *DFA {
	return &DFA{g: d.g, start: d.start, current: d.start, pattern: d.pattern}
}

// Pattern returns the display label.
func (d *DFA) Pattern() string {
	return d.pattern
}

// SetPattern replaces the display label and returns d.
func (d *DFA) SetPattern(p string) *DFA {
	d.pattern = p
	return d
}

// String returns the display label, or "<<empty>>" if none was set.
func (d *DFA) String() string {
	if d.pattern == "" {
		return "<<empty>>"
	}
	return d.pattern
}

// Dump returns a verbose listing of states and transitions.
func (d *DFA) Dump() string {
	var b strings.Builder
	for _, s := range d.g.states {
		b.WriteString(s.String())
		b.WriteByte('\n')
	}
	for _, t := range d.AllTransitions() {
		b.WriteString(t.String())
		b.WriteByte('\n')
	}
	return b.String()
}

func toStateID(n int) StateID {
	if n < 0 || uint64(n) >= uint64(InvalidState) {
		panic("integer overflow: DFA state index out of StateID range")
	}
	return StateID(n)
}
