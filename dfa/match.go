package dfa

import "github.com/coregx/kleene/nfa"

// Match reports whether the DFA accepts the whole input, returning a match
// covering it, or nil. Tokens outside the alphabet yield an error.
func (d *DFA) Match(input string) (*nfa.MatchRef, error) {
	src := []rune(input)
	d.Reset()
	for i, r := range src {
		if err := d.HandleToken(r, i); err != nil {
			return nil, err
		}
	}
	if !d.Accept() {
		return nil, nil
	}
	m := nfa.NewMatchRef(src, 0, len(src))
	return &m, nil
}

// MatchesAtOffset returns every non-empty match that begins at offset, in
// order of increasing length.
func (d *DFA) MatchesAtOffset(input string, offset int) ([]nfa.MatchRef, error) {
	return d.matchesAtOffset([]rune(input), offset)
}

func (d *DFA) matchesAtOffset(src []rune, offset int) ([]nfa.MatchRef, error) {
	d.Reset()
	var out []nfa.MatchRef
	for i := offset; i < len(src); i++ {
		if err := d.HandleToken(src[i], i); err != nil {
			return out, err
		}
		if d.Accept() {
			out = append(out, nfa.NewMatchRef(src, offset, i+1))
		}
	}
	return out, nil
}

// Matches returns every non-empty match anywhere in the input, ordered by
// start offset and then by length.
func (d *DFA) Matches(input string) ([]nfa.MatchRef, error) {
	src := []rune(input)
	var out []nfa.MatchRef
	for offset := range src {
		ms, err := d.matchesAtOffset(src, offset)
		out = append(out, ms...)
		if err != nil {
			return out, err
		}
	}
	return out, nil
}
