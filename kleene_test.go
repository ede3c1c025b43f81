package kleene

import (
	"errors"
	"testing"

	"github.com/coregx/kleene/dfa"
	"github.com/coregx/kleene/online"
)

func TestToDFA(t *testing.T) {
	re := Plus(Union(Literal("ab"), Range('0', '9')))
	d, err := ToDFA(re)
	if err != nil {
		t.Fatal(err)
	}
	for _, s := range []string{"ab", "7", "ab3ab", "", "a", "abx"} {
		m, err := d.Match(s)
		if err != nil {
			t.Fatalf("Match(%q): %v", s, err)
		}
		if want := re.Match(s) != nil; (m != nil) != want {
			t.Errorf("Match(%q) = %v, want %v", s, m != nil, want)
		}
	}

	if _, err := ToDFAWithConfig(re, dfa.Config{MaxStates: 1}); !errors.Is(err, dfa.ErrStateLimitExceeded) {
		t.Errorf("ToDFAWithConfig error = %v, want ErrStateLimitExceeded", err)
	}
}

func TestNewOnline(t *testing.T) {
	digit := Any([]rune("0123456789"))
	dot := Dot()

	if _, err := NewOnline(); !errors.Is(err, online.ErrNoPatterns) {
		t.Errorf("NewOnline() = %v, want ErrNoPatterns", err)
	}
	m, err := NewOnlineWithConfig(online.DefaultConfig(), digit, dot)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := m.Ingest("a1"); err != nil {
		t.Fatal(err)
	}
	if got := len(m.MatchesFor(digit)); got != 1 {
		t.Errorf("digit matches = %d, want 1", got)
	}
	if got := len(m.MatchesFor(dot)); got != 2 {
		t.Errorf("dot matches = %d, want 2", got)
	}
}

func TestMatchAll(t *testing.T) {
	ab := Literal("ab")
	all, err := MatchAll("abcab", ab)
	if err != nil {
		t.Fatal(err)
	}
	if len(all[ab]) != 2 || all[ab][1].Span() != "3..4" {
		t.Errorf("MatchAll = %v", all)
	}

	if _, err := MatchAll("é", ab); !errors.Is(err, dfa.ErrUndefinedTransition) {
		t.Errorf("MatchAll with unknown rune = %v, want ErrUndefinedTransition", err)
	}
	if !DefaultAlphabet.Contains('~') || DefaultAlphabet.Contains('é') {
		t.Error("DefaultAlphabet contents")
	}
}
