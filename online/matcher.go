// Package online implements a streaming multi-pattern matcher.
//
// A Matcher is built from a list of NFAs. Text arrives in chunks through
// Ingest; every match of every pattern, including overlapping and empty
// matches, is reported exactly once without rescanning earlier chunks.
//
// Internally the patterns are augmented with dead-end error states over a
// shared alphabet and merged into one composite DFA in which every state
// also leads back to the start. Stepping the composite DFA tells the matcher
// at which offsets a pattern may begin; from each such offset a clone of the
// pattern's own DFA confirms or rejects the candidate.
package online

import (
	"fmt"

	u "github.com/araddon/gou"

	"github.com/coregx/kleene/dfa"
	"github.com/coregx/kleene/nfa"
)

// pattern groups the automata derived from one caller pattern.
type pattern struct {
	original  *nfa.NFA
	augmented *nfa.NFA
	dfa       *dfa.DFA
}

// candidate is an in-flight match of one pattern pinned to a start offset.
type candidate struct {
	d       *dfa.DFA
	pattern int
	start   int
}

// Matcher matches many patterns over a stream of chunks.
//
// A Matcher is not safe for concurrent use. Matchers built from the same
// patterns are independent of each other.
type Matcher struct {
	cfg       Config
	patterns  []pattern
	index     map[*nfa.NFA]int
	alphabet  nfa.Alphabet
	composite *nfa.NFA
	base      *dfa.DFA
	tags      map[dfa.StateID][]dfa.Tag

	active     *dfa.DFA
	candidates []candidate
	tracker    *Tracker
	buffer     []rune

	// Ledger prefixes already turned into matches or candidates.
	emptySeen []int
	startSeen []int
}

// New builds a Matcher with the default configuration.
func New(patterns []*nfa.NFA) (*Matcher, error) {
	return NewWithConfig(patterns, DefaultConfig())
}

// NewWithConfig builds a Matcher. The patterns are not modified; results
// are reported against them.
//
// Construction determinizes the composite automaton once, which costs time
// and memory exponential in the worst case. Config.MaxDFAStates bounds it.
func NewWithConfig(patterns []*nfa.NFA, cfg Config) (*Matcher, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if len(patterns) == 0 {
		return nil, ErrNoPatterns
	}

	m := &Matcher{
		cfg:      cfg,
		patterns: make([]pattern, len(patterns)),
		index:    make(map[*nfa.NFA]int, len(patterns)),
	}
	for i, p := range patterns {
		if _, dup := m.index[p]; dup {
			return nil, fmt.Errorf("%w: pattern %d (%s)", ErrDuplicatePattern, i, p)
		}
		m.index[p] = i
		m.alphabet = m.alphabet.Union(p.Alphabet())
	}

	dcfg := cfg.dfaConfig()
	augmented := make([]*nfa.NFA, len(patterns))
	for i, p := range patterns {
		augmented[i] = nfa.WithErrDeadEnd(p, m.alphabet)
		d, err := dfa.Build(p.Clone().ExtendAlphabet(m.alphabet), dcfg)
		if err != nil {
			return nil, fmt.Errorf("online: pattern %d (%s): %w", i, p, err)
		}
		m.patterns[i] = pattern{original: p, augmented: augmented[i], dfa: d}
	}

	composite, offsets := nfa.UnionOf(augmented)
	for _, s := range composite.States() {
		if s.ID() != composite.Start() {
			composite.AddTransition(nfa.Epsilon, s.ID(), composite.Start())
		}
	}
	m.composite = composite

	base, err := dfa.Build(composite, dcfg)
	if err != nil {
		return nil, fmt.Errorf("online: composite automaton: %w", err)
	}
	m.base = base
	m.tags = classify(composite, base, owners{start: composite.Start(), offsets: offsets})

	if cfg.Debug {
		u.Debugf("online: %d patterns, alphabet of %d runes, composite NFA %d states, DFA %d states, %d tagged",
			len(patterns), len(m.alphabet), composite.NumStates(), base.NumStates(), len(m.tags))
	}

	m.Reset()
	return m, nil
}

// Reset discards the buffer, every in-flight candidate and every recorded
// match, returning the matcher to its freshly built state.
func (m *Matcher) Reset() {
	m.active = m.base.ShallowClone()
	for ds, tags := range m.tags {
		m.active.OnTransitionTo(ds, tags...)
	}
	m.candidates = nil
	m.buffer = nil
	m.tracker = NewTracker()
	m.emptySeen = make([]int, len(m.patterns))
	m.startSeen = make([]int, len(m.patterns))
}

// Ingest consumes the next chunk of the stream and returns the matches it
// produced, keyed by pattern. Patterns without new matches are absent.
//
// Every rune of chunk must belong to the union of the patterns' alphabets.
// Otherwise Ingest returns an error matching dfa.ErrUndefinedTransition and
// the matcher is left exactly as it was.
func (m *Matcher) Ingest(chunk string) (map[*nfa.NFA][]nfa.MatchRef, error) {
	runes := []rune(chunk)
	base := len(m.buffer)
	for i, r := range runes {
		if !m.alphabet.Contains(r) {
			return nil, &dfa.DFAError{
				Kind:    dfa.UndefinedTransition,
				Message: fmt.Sprintf("online: rune %q at offset %d is outside the pattern alphabet", r, base+i),
				Cause:   dfa.ErrUndefinedTransition,
			}
		}
	}
	if len(runes) == 0 {
		return map[*nfa.NFA][]nfa.MatchRef{}, nil
	}
	if m.cfg.Debug {
		u.Debugf("online: ingest %d runes at offset %d, %d candidates live", len(runes), base, len(m.candidates))
	}

	for i, r := range runes {
		if err := m.active.HandleToken(r, base+i); err != nil {
			return nil, err
		}
	}
	for _, ev := range m.active.DrainEvents() {
		m.tracker.Record(ev)
	}
	m.buffer = append(m.buffer, runes...)

	before := make([]int, len(m.patterns))
	for p := range m.patterns {
		before[p] = len(m.tracker.MatchesFor(p))
	}

	for p := range m.patterns {
		empties := m.tracker.EmptyMatchPositions(p)
		for _, off := range empties[m.emptySeen[p]:] {
			if off >= base {
				m.tracker.AddMatch(p, Span{Start: off, End: off})
			}
		}
		m.emptySeen[p] = len(empties)
	}

	spawn := m.tracker.InvertCandidateStartsSince(m.startSeen)
	for p := range m.patterns {
		m.startSeen[p] = len(m.tracker.StartPositions(p))
	}
	for i, r := range runes {
		at := base + i
		if err := m.stepCandidates(r, at); err != nil {
			return nil, err
		}
		for _, p := range spawn[at] {
			if err := m.spawn(p, r, at); err != nil {
				return nil, err
			}
		}
	}

	delta := make(map[*nfa.NFA][]nfa.MatchRef)
	for p := range m.patterns {
		spans := m.tracker.MatchesFor(p)[before[p]:]
		if len(spans) > 0 {
			delta[m.patterns[p].original] = m.refs(spans)
		}
	}
	return delta, nil
}

// stepCandidates advances every live candidate over r, records the ones
// that accept and drops the ones from which no final state is reachable.
func (m *Matcher) stepCandidates(r rune, at int) error {
	live := m.candidates[:0]
	for _, c := range m.candidates {
		if err := c.d.HandleToken(r, at); err != nil {
			return err
		}
		if c.d.Accept() {
			m.tracker.AddMatch(c.pattern, Span{Start: c.start, End: at + 1})
		}
		if !c.d.CanMatch() {
			if m.cfg.Debug {
				u.Debugf("online: prune candidate pattern=%d start=%d at %d", c.pattern, c.start, at)
			}
			continue
		}
		live = append(live, c)
	}
	for i := len(live); i < len(m.candidates); i++ {
		m.candidates[i] = candidate{}
	}
	m.candidates = live
	return nil
}

// spawn starts a candidate for pattern p at offset at and steps it over r.
func (m *Matcher) spawn(p int, r rune, at int) error {
	d := m.patterns[p].dfa.ShallowClone()
	if err := d.HandleToken(r, at); err != nil {
		return err
	}
	if d.Accept() {
		m.tracker.AddMatch(p, Span{Start: at, End: at + 1})
	}
	if !d.CanMatch() {
		return nil
	}
	if m.cfg.Debug {
		u.Debugf("online: spawn candidate pattern=%d start=%d", p, at)
	}
	m.candidates = append(m.candidates, candidate{d: d, pattern: p, start: at})
	return nil
}

func (m *Matcher) refs(spans []Span) []nfa.MatchRef {
	out := make([]nfa.MatchRef, len(spans))
	for i, s := range spans {
		out[i] = nfa.NewMatchRef(m.buffer, s.Start, s.End)
	}
	return out
}

// Matches returns every match recorded since the last Reset, keyed by
// pattern, in the order they were found. Patterns without matches are
// absent. The refs view the text consumed so far.
func (m *Matcher) Matches() map[*nfa.NFA][]nfa.MatchRef {
	out := make(map[*nfa.NFA][]nfa.MatchRef)
	for _, p := range m.tracker.Patterns() {
		out[m.patterns[p].original] = m.refs(m.tracker.MatchesFor(p))
	}
	return out
}

// MatchesFor returns the matches of one pattern, or nil if pattern is not
// one of the matcher's patterns.
func (m *Matcher) MatchesFor(pattern *nfa.NFA) []nfa.MatchRef {
	p, ok := m.index[pattern]
	if !ok {
		return nil
	}
	spans := m.tracker.MatchesFor(p)
	if len(spans) == 0 {
		return nil
	}
	return m.refs(spans)
}

// Tracker exposes the match ledger. Its pattern indices are positions in
// the list passed to New.
func (m *Matcher) Tracker() *Tracker {
	return m.tracker
}

// Augmented returns a copy of pattern i after dead-end error augmentation
// over the shared alphabet.
func (m *Matcher) Augmented(i int) *nfa.NFA {
	return m.patterns[i].augmented.Clone()
}

// Patterns returns the patterns in index order.
func (m *Matcher) Patterns() []*nfa.NFA {
	out := make([]*nfa.NFA, len(m.patterns))
	for i, p := range m.patterns {
		out[i] = p.original
	}
	return out
}

// Alphabet returns the union of the patterns' alphabets.
func (m *Matcher) Alphabet() nfa.Alphabet {
	return m.alphabet
}

// Composite returns the composite DFA the matcher steps.
func (m *Matcher) Composite() *dfa.DFA {
	return m.base
}

// Buffer returns the text consumed since the last Reset.
func (m *Matcher) Buffer() string {
	return string(m.buffer)
}
