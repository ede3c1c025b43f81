package nfa

import "fmt"

// MatchRef is a view of a matched span of some input. It does not copy the
// input: Source shares its backing array with the text that was scanned.
//
// The span is half-open, [Start, End). Non-empty matches end one past the
// last consumed rune, so Last reports the inclusive end. Empty matches have
// Start == End.
type MatchRef struct {
	Source []rune
	Start  int
	End    int
}

// NewMatchRef creates a view of source[start:end].
func NewMatchRef(source []rune, start, end int) MatchRef {
	return MatchRef{Source: source, Start: start, End: end}
}

// Text returns the matched text.
func (m MatchRef) Text() string {
	return string(m.Source[m.Start:m.End])
}

// Len returns the number of runes matched.
func (m MatchRef) Len() int {
	return m.End - m.Start
}

// IsEmpty reports whether the match is zero-length.
func (m MatchRef) IsEmpty() bool {
	return m.Start == m.End
}

// Last returns the offset of the last matched rune, or Start-1 for an empty
// match.
func (m MatchRef) Last() int {
	return m.End - 1
}

// Equal reports whether both views cover the same span of equal text.
func (m MatchRef) Equal(o MatchRef) bool {
	return m.Start == o.Start && m.End == o.End && string(m.Source) == string(o.Source)
}

// Span renders the span the way ranges are written in match listings:
// "s..e" (inclusive) for non-empty matches and "s...s" for empty ones.
func (m MatchRef) Span() string {
	if m.IsEmpty() {
		return fmt.Sprintf("%d...%d", m.Start, m.End)
	}
	return fmt.Sprintf("%d..%d", m.Start, m.Last())
}

// String returns the matched text.
func (m MatchRef) String() string {
	return m.Text()
}

// Reset sets the cursor to the epsilon closure of the start state.
func (n *NFA) Reset() {
	n.current = n.EpsilonClosure(n.start)
}

// CurrentStates returns the cursor's active state set.
func (n *NFA) CurrentStates() StateSet {
	return n.current
}

// HandleToken advances the cursor by one input token.
func (n *NFA) HandleToken(token rune) {
	n.current = n.NextStates(n.current, token)
}

// Accept reports whether any active state is final.
func (n *NFA) Accept() bool {
	for _, id := range n.current {
		if n.states[id].final {
			return true
		}
	}
	return false
}

// Match reports whether the automaton accepts the whole input, returning a
// match covering it, or nil.
func (n *NFA) Match(input string) *MatchRef {
	src := []rune(input)
	n.Reset()
	for _, r := range src {
		n.HandleToken(r)
	}
	if !n.Accept() {
		return nil
	}
	m := NewMatchRef(src, 0, len(src))
	return &m
}

// MatchesAtOffset returns every non-empty match that begins at offset, in
// order of increasing length.
func (n *NFA) MatchesAtOffset(input string, offset int) []MatchRef {
	return n.matchesAtOffset([]rune(input), offset)
}

func (n *NFA) matchesAtOffset(src []rune, offset int) []MatchRef {
	n.Reset()
	var out []MatchRef
	for i := offset; i < len(src); i++ {
		n.HandleToken(src[i])
		if n.Accept() {
			out = append(out, NewMatchRef(src, offset, i+1))
		}
	}
	return out
}

// Matches returns every non-empty match anywhere in the input, ordered by
// start offset and then by length. It rescans from every offset, so it costs
// O(n^2) steps in the worst case.
func (n *NFA) Matches(input string) []MatchRef {
	src := []rune(input)
	var out []MatchRef
	for offset := range src {
		out = append(out, n.matchesAtOffset(src, offset)...)
	}
	return out
}
