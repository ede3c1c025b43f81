package window

import (
	"errors"
	"strings"

	"github.com/coregx/ahocorasick"
)

// ErrEmptyLiteral indicates an empty string in a literal set.
var ErrEmptyLiteral = errors.New("window: empty literal")

// LiteralSet is a Regex matching any of a fixed set of literals, searched
// with a single Aho-Corasick automaton.
type LiteralSet struct {
	literals []string
	auto     *ahocorasick.Automaton
}

// NewLiteralSet builds a LiteralSet. At least one literal is required and
// none may be empty.
func NewLiteralSet(literals ...string) (*LiteralSet, error) {
	if len(literals) == 0 {
		return nil, ErrNoPatterns
	}
	builder := ahocorasick.NewBuilder()
	for _, lit := range literals {
		if lit == "" {
			return nil, ErrEmptyLiteral
		}
		builder.AddPattern([]byte(lit))
	}
	auto, err := builder.Build()
	if err != nil {
		return nil, err
	}
	return &LiteralSet{literals: append([]string(nil), literals...), auto: auto}, nil
}

// FindAllStringIndex returns successive non-overlapping literal
// occurrences in s, at most n of them when n >= 0.
func (l *LiteralSet) FindAllStringIndex(s string, n int) [][]int {
	haystack := []byte(s)
	var out [][]int
	at := 0
	for at < len(haystack) && (n < 0 || len(out) < n) {
		m := l.auto.Find(haystack, at)
		if m == nil {
			break
		}
		out = append(out, []int{m.Start, m.End})
		at = m.End
	}
	return out
}

// IsMatch reports whether s contains any of the literals.
func (l *LiteralSet) IsMatch(s string) bool {
	return l.auto.IsMatch([]byte(s))
}

// String renders the set as an alternation.
func (l *LiteralSet) String() string {
	return strings.Join(l.literals, "|")
}
