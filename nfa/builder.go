package nfa

import (
	"fmt"
	"strings"
)

// The combinators below follow the machine constructions of the Ragel user
// guide, section 2.5. Each returns a new automaton; operands are copied into
// the result and never modified.

type buildConfig struct {
	alphabet Alphabet
}

// Option functions alter how primitive automata are built.
type Option = func(*buildConfig)

// WithAlphabet sets the alphabet of a primitive automaton. The default is
// DefaultAlphabet.
func WithAlphabet(a Alphabet) Option {
	return func(c *buildConfig) {
		c.alphabet = a
	}
}

func resolve(opts []Option) buildConfig {
	cfg := buildConfig{alphabet: DefaultAlphabet}
	for _, o := range opts {
		if o == nil {
			continue
		}
		o(&cfg)
	}
	return cfg
}

// finish resets the cursor of a freshly assembled automaton.
func finish(n *NFA, pattern string) *NFA {
	n.pattern = pattern
	n.Reset()
	return n
}

// Literal matches exactly s: a chain of len(s)+1 states with one transition
// per rune, the last state final.
func Literal(s string, opts ...Option) *NFA {
	n := New(resolve(opts).alphabet)
	cur := n.start
	for _, r := range s {
		next := n.AddState(false)
		n.AddTransition(r, cur, next)
		cur = next
	}
	n.states[cur].final = true
	return finish(n, s)
}

// Any matches a single rune from tokens: a start state with one transition
// per token into a single final state.
func Any(tokens []rune, opts ...Option) *NFA {
	n := New(resolve(opts).alphabet)
	final := n.AddState(true)
	for _, r := range tokens {
		n.AddTransition(r, n.start, final)
	}
	return finish(n, "["+string(tokens)+"]")
}

// Dot matches any single rune of the alphabet.
func Dot(opts ...Option) *NFA {
	a := resolve(opts).alphabet
	return Any(a, WithAlphabet(a)).SetPattern(".")
}

// Range matches a single rune in [lo, hi]. An inverted range matches
// nothing.
func Range(lo, hi rune, opts ...Option) *NFA {
	var tokens []rune
	if lo <= hi {
		tokens = make([]rune, 0, int(hi)-int(lo)+1)
		// Stop on hi before incrementing: hi may be the largest rune value.
		for r := lo; ; r++ {
			tokens = append(tokens, r)
			if r == hi {
				break
			}
		}
	}
	return Any(tokens, opts...).SetPattern(fmt.Sprintf("[%c-%c]", lo, hi))
}

// Empty matches only the empty string: a single final start state.
func Empty(opts ...Option) *NFA {
	n := New(resolve(opts).alphabet)
	n.states[n.start].final = true
	return finish(n, "")
}

// Append returns a machine matching a followed by b. Epsilon transitions
// join every final state of a to the start of b, and the final states of the
// result are the union of both machines' final states.
func Append(a, b *NFA) *NFA {
	out := a.Clone()
	out.AppendInPlace(b)
	return out
}

// AppendInPlace is the destructive form of Append: it modifies n and leaves
// b untouched.
func (n *NFA) AppendInPlace(b *NFA) *NFA {
	n.appendMachine(b)
	n.Reset()
	return n
}

func (n *NFA) appendMachine(b *NFA) StateID {
	finals := n.FinalStates()
	off := n.absorb(b)
	for _, f := range finals {
		n.AddTransition(Epsilon, f, b.start+off)
	}
	return off
}

// Seq returns the concatenation of the machines, left to right.
// Panics if no machines are given.
func Seq(machines ...*NFA) *NFA {
	if len(machines) == 0 {
		panic("nfa.Seq: no machines")
	}
	out := machines[0].Clone()
	for _, m := range machines[1:] {
		out = seq2(out, m)
	}
	return out
}

// seq2 appends b onto a, then strips the final flag from every state that is
// not one of b's final states. Unlike Append, only b's finals survive.
func seq2(a, b *NFA) *NFA {
	out := a.Clone()
	off := out.appendMachine(b)
	for i := range out.states {
		id := StateID(i)
		out.states[i].final = id >= off && b.states[id-off].final
	}
	return finish(out, a.pattern+b.pattern)
}

// Union returns a machine matching any string matched by one of the
// machines. Panics if no machines are given.
func Union(machines ...*NFA) *NFA {
	u, _ := UnionOf(machines)
	return u
}

// UnionOf builds the union of machines: a new start state with epsilon
// transitions to each machine's start. offsets[i] is added to the IDs of
// machines[i]'s states inside the union. Panics if machines is empty.
func UnionOf(machines []*NFA) (u *NFA, offsets []StateID) {
	if len(machines) == 0 {
		panic("nfa.Union: no machines")
	}
	u = newEmpty(nil)
	u.start = u.AddState(false)
	offsets = make([]StateID, len(machines))
	labels := make([]string, len(machines))
	for i, m := range machines {
		off := u.absorb(m)
		u.AddTransition(Epsilon, u.start, m.start+off)
		offsets[i] = off
		labels[i] = m.pattern
	}
	return finish(u, strings.Join(labels, "|")), offsets
}

// Kleene returns a machine matching zero or more repetitions of m.
// A new start state and a separate new final state are added; the new start
// has epsilon transitions to the new final and to m's start, and each of m's
// final states gets an epsilon transition back to the new start and loses
// its final flag.
func Kleene(m *NFA) *NFA {
	n := newEmpty(m.alphabet)
	n.start = n.AddState(false)
	final := n.AddState(true)
	off := n.absorb(m)
	n.AddTransition(Epsilon, n.start, final)
	n.AddTransition(Epsilon, n.start, m.start+off)
	for _, f := range m.FinalStates() {
		n.AddTransition(Epsilon, f+off, n.start)
		n.states[f+off].final = false
	}
	return finish(n, m.pattern+"*")
}

// Plus returns a machine matching one or more repetitions of m.
func Plus(m *NFA) *NFA {
	return Seq(m, Kleene(m)).SetPattern(m.pattern + "+")
}

// Optional returns a machine matching m or the empty string.
func Optional(m *NFA) *NFA {
	return Union(m, Empty(WithAlphabet(m.alphabet))).SetPattern(m.pattern + "?")
}
