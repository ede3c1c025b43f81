package nfa

import (
	"sort"
	"strings"
)

// Alphabet is a sorted, duplicate-free set of input symbols.
// Epsilon is never a member.
type Alphabet []rune

// DefaultAlphabet is the printable ASCII range plus newline and tab.
var DefaultAlphabet = func() Alphabet {
	runes := []rune{'\n', '\t'}
	for r := ' '; r <= '~'; r++ {
		runes = append(runes, r)
	}
	return NewAlphabet(runes...)
}()

// NewAlphabet builds an alphabet from runes in any order, dropping
// duplicates and Epsilon.
func NewAlphabet(runes ...rune) Alphabet {
	out := make(Alphabet, 0, len(runes))
	for _, r := range runes {
		if r != Epsilon {
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	w := 0
	for r := 0; r < len(out); r++ {
		if w == 0 || out[r] != out[w-1] {
			out[w] = out[r]
			w++
		}
	}
	return out[:w]
}

// AlphabetOf returns the alphabet of the distinct runes in s.
func AlphabetOf(s string) Alphabet {
	return NewAlphabet([]rune(s)...)
}

// Contains reports whether r is a member.
func (a Alphabet) Contains(r rune) bool {
	i := sort.Search(len(a), func(i int) bool { return a[i] >= r })
	return i < len(a) && a[i] == r
}

// Union returns the symbols of a or b.
func (a Alphabet) Union(b Alphabet) Alphabet {
	out := make(Alphabet, 0, len(a)+len(b))
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

// With returns a copy of a that also contains r.
func (a Alphabet) With(r rune) Alphabet {
	if r == Epsilon || a.Contains(r) {
		return a
	}
	return a.Union(Alphabet{r})
}

// Missing returns the symbols of a that are not in present.
func (a Alphabet) Missing(present map[rune]struct{}) []rune {
	var out []rune
	for _, r := range a {
		if _, ok := present[r]; !ok {
			out = append(out, r)
		}
	}
	return out
}

// String renders the alphabet as a bracketed character class.
func (a Alphabet) String() string {
	var b strings.Builder
	b.WriteByte('[')
	for _, r := range a {
		b.WriteRune(r)
	}
	b.WriteByte(']')
	return b.String()
}
