// Package kleene builds finite automata from combinators and runs them over
// text, including many patterns at once over a stream.
//
// Automata are assembled from primitives and combinators that never modify
// their operands:
//
//	// /ab*c/
//	re := kleene.Seq(kleene.Literal("a"), kleene.Kleene(kleene.Literal("b")), kleene.Literal("c"))
//	fmt.Println(re.Match("abbc") != nil) // true
//
// Subset construction turns an NFA into an equivalent DFA:
//
//	d, err := kleene.ToDFA(re)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	matches, err := d.Matches("xxabcxxac")
//
// The online matcher reports every match of every pattern, overlapping and
// empty ones included, as text arrives in chunks:
//
//	m, err := kleene.NewOnline(aStar, ab)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	delta, err := m.Ingest("ab")
//	delta, err = m.Ingest("aa")
//	all := m.Matches()
//
// Patterns are built over kleene.DefaultAlphabet unless an alphabet is
// given with nfa.WithAlphabet. The online matcher rejects chunks containing
// runes outside the union of its patterns' alphabets.
//
// The building blocks live in subpackages:
//   - nfa: NFAs, combinators, error augmentation, MatchRef
//   - dfa: DFAs, subset construction, tagged events
//   - online: the streaming multi-pattern matcher and its match tracker
//   - window: a windowed rescanning matcher over any regex engine
package kleene

import (
	"github.com/coregx/kleene/dfa"
	"github.com/coregx/kleene/nfa"
	"github.com/coregx/kleene/online"
)

// DefaultAlphabet is the alphabet primitives are built over by default:
// printable ASCII plus newline and tab.
var DefaultAlphabet = nfa.DefaultAlphabet

// Literal matches exactly s.
func Literal(s string, opts ...nfa.Option) *nfa.NFA {
	return nfa.Literal(s, opts...)
}

// Any matches one rune from tokens.
func Any(tokens []rune, opts ...nfa.Option) *nfa.NFA {
	return nfa.Any(tokens, opts...)
}

// Dot matches any one rune of the alphabet.
func Dot(opts ...nfa.Option) *nfa.NFA {
	return nfa.Dot(opts...)
}

// Range matches one rune in [lo, hi].
func Range(lo, hi rune, opts ...nfa.Option) *nfa.NFA {
	return nfa.Range(lo, hi, opts...)
}

// Seq matches the machines one after another.
func Seq(machines ...*nfa.NFA) *nfa.NFA {
	return nfa.Seq(machines...)
}

// Union matches any one of the machines.
func Union(machines ...*nfa.NFA) *nfa.NFA {
	return nfa.Union(machines...)
}

// Kleene matches zero or more repetitions of m.
func Kleene(m *nfa.NFA) *nfa.NFA {
	return nfa.Kleene(m)
}

// Plus matches one or more repetitions of m.
func Plus(m *nfa.NFA) *nfa.NFA {
	return nfa.Plus(m)
}

// Optional matches m or the empty string.
func Optional(m *nfa.NFA) *nfa.NFA {
	return nfa.Optional(m)
}

// ToDFA converts n to an equivalent DFA using dfa.DefaultConfig.
func ToDFA(n *nfa.NFA) (*dfa.DFA, error) {
	return dfa.Build(n, dfa.DefaultConfig())
}

// ToDFAWithConfig converts n to an equivalent DFA.
func ToDFAWithConfig(n *nfa.NFA, cfg dfa.Config) (*dfa.DFA, error) {
	return dfa.Build(n, cfg)
}

// NewOnline builds a streaming matcher over patterns with the default
// configuration.
func NewOnline(patterns ...*nfa.NFA) (*online.Matcher, error) {
	return online.New(patterns)
}

// NewOnlineWithConfig builds a streaming matcher over patterns.
func NewOnlineWithConfig(cfg online.Config, patterns ...*nfa.NFA) (*online.Matcher, error) {
	return online.NewWithConfig(patterns, cfg)
}

// MatchAll runs a fresh streaming matcher over input as a single chunk and
// returns every match keyed by pattern.
func MatchAll(input string, patterns ...*nfa.NFA) (map[*nfa.NFA][]nfa.MatchRef, error) {
	m, err := online.Match(patterns, input)
	if err != nil {
		return nil, err
	}
	return m.Matches(), nil
}
