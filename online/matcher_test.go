package online

import (
	"errors"
	"testing"

	u "github.com/araddon/gou"
	"github.com/google/go-cmp/cmp"

	"github.com/coregx/kleene/dfa"
	"github.com/coregx/kleene/nfa"
)

func init() {
	u.SetupLogging("debug")
	u.SetColorOutput()
}

var abz = nfa.WithAlphabet(nfa.NewAlphabet('a', 'b', 'z'))

func spans(refs []nfa.MatchRef) []string {
	out := make([]string, len(refs))
	for i, r := range refs {
		out[i] = r.Span()
	}
	return out
}

func mustIngest(t *testing.T, m *Matcher, chunk string) map[*nfa.NFA][]nfa.MatchRef {
	t.Helper()
	delta, err := m.Ingest(chunk)
	if err != nil {
		t.Fatalf("Ingest(%q) error: %v", chunk, err)
	}
	return delta
}

func TestIngest_StreamingTrace(t *testing.T) {
	aStar := nfa.Kleene(nfa.Literal("a", abz))
	m, err := New([]*nfa.NFA{aStar})
	if err != nil {
		t.Fatal(err)
	}

	mustIngest(t, m, "ab")
	want := []string{"0...0", "1...1", "0..0"}
	if diff := cmp.Diff(want, spans(m.MatchesFor(aStar))); diff != "" {
		t.Errorf("after \"ab\" (-want +got):\n%s", diff)
	}

	mustIngest(t, m, "aa")
	want = append(want, "2...2", "3...3", "2..2", "2..3", "3..3")
	if diff := cmp.Diff(want, spans(m.MatchesFor(aStar))); diff != "" {
		t.Errorf("after \"aa\" (-want +got):\n%s", diff)
	}

	got := m.Matches()[aStar]
	if got[6].Text() != "aa" || got[3].Text() != "" {
		t.Errorf("texts = %q, %q", got[6].Text(), got[3].Text())
	}
	if m.Buffer() != "abaa" {
		t.Errorf("Buffer() = %q", m.Buffer())
	}
}

func TestIngest_AfterReset(t *testing.T) {
	aStar := nfa.Kleene(nfa.Literal("a", abz))
	m, err := New([]*nfa.NFA{aStar})
	if err != nil {
		t.Fatal(err)
	}
	mustIngest(t, m, "zzaa")
	m.Reset()
	if len(m.Matches()) != 0 || m.Buffer() != "" {
		t.Fatalf("Reset left matches %v, buffer %q", m.Matches(), m.Buffer())
	}

	steps := []struct {
		chunk string
		want  []string
	}{
		{"b", []string{"0...0"}},
		{"", []string{"0...0"}},
		{"a", []string{"0...0", "1...1", "1..1"}},
		{"aa", []string{"0...0", "1...1", "1..1", "2...2", "3...3", "1..2", "2..2", "1..3", "2..3", "3..3"}},
	}
	for _, st := range steps {
		mustIngest(t, m, st.chunk)
		if diff := cmp.Diff(st.want, spans(m.MatchesFor(aStar))); diff != "" {
			t.Errorf("after %q (-want +got):\n%s", st.chunk, diff)
		}
	}
}

func TestIngest_Delta(t *testing.T) {
	ab := nfa.Literal("ab", abz)
	z := nfa.Literal("z", abz)
	m, err := New([]*nfa.NFA{ab, z})
	if err != nil {
		t.Fatal(err)
	}

	delta := mustIngest(t, m, "za")
	want := map[string][]string{"z": {"0..0"}}
	if diff := cmp.Diff(want, byLabel(delta)); diff != "" {
		t.Errorf("first delta (-want +got):\n%s", diff)
	}

	delta = mustIngest(t, m, "bzab")
	want = map[string][]string{"ab": {"1..2", "4..5"}, "z": {"3..3"}}
	if diff := cmp.Diff(want, byLabel(delta)); diff != "" {
		t.Errorf("second delta (-want +got):\n%s", diff)
	}

	if diff := cmp.Diff([]string{"0..0", "3..3"}, spans(m.MatchesFor(z))); diff != "" {
		t.Errorf("MatchesFor(z) (-want +got):\n%s", diff)
	}
	if len(mustIngest(t, m, "")) != 0 {
		t.Error("empty chunk produced matches")
	}
}

func byLabel(delta map[*nfa.NFA][]nfa.MatchRef) map[string][]string {
	out := make(map[string][]string, len(delta))
	for p, refs := range delta {
		out[p.String()] = spans(refs)
	}
	return out
}

func TestIngest_EmptyChunk(t *testing.T) {
	aStar := nfa.Kleene(nfa.Literal("a", abz))
	m, err := New([]*nfa.NFA{aStar})
	if err != nil {
		t.Fatal(err)
	}
	mustIngest(t, m, "ab")
	before := spans(m.MatchesFor(aStar))

	for i := 0; i < 3; i++ {
		mustIngest(t, m, "")
	}
	if diff := cmp.Diff(before, spans(m.MatchesFor(aStar))); diff != "" {
		t.Errorf("empty chunks changed matches (-before +after):\n%s", diff)
	}
}

func TestIngest_UnknownRune(t *testing.T) {
	aStar := nfa.Kleene(nfa.Literal("a", abz))
	m, err := New([]*nfa.NFA{aStar})
	if err != nil {
		t.Fatal(err)
	}
	mustIngest(t, m, "a")
	before := spans(m.MatchesFor(aStar))

	_, err = m.Ingest("aaXa")
	if !errors.Is(err, dfa.ErrUndefinedTransition) {
		t.Fatalf("Ingest error = %v, want dfa.ErrUndefinedTransition", err)
	}
	if m.Buffer() != "a" {
		t.Errorf("Buffer() = %q after rejected chunk", m.Buffer())
	}
	if diff := cmp.Diff(before, spans(m.MatchesFor(aStar))); diff != "" {
		t.Errorf("rejected chunk changed matches (-before +after):\n%s", diff)
	}

	// The matcher carries on as if the chunk never arrived.
	mustIngest(t, m, "a")
	want := []string{"0...0", "0..0", "1...1", "0..1", "1..1"}
	if diff := cmp.Diff(want, spans(m.MatchesFor(aStar))); diff != "" {
		t.Errorf("after recovery (-want +got):\n%s", diff)
	}
}

func TestNew_Errors(t *testing.T) {
	a := nfa.Literal("a", abz)

	if _, err := New(nil); !errors.Is(err, ErrNoPatterns) {
		t.Errorf("New(nil) = %v, want ErrNoPatterns", err)
	}
	if _, err := New([]*nfa.NFA{a, a}); !errors.Is(err, ErrDuplicatePattern) {
		t.Errorf("duplicate patterns = %v, want ErrDuplicatePattern", err)
	}
	if _, err := NewWithConfig([]*nfa.NFA{a}, Config{MaxDFAStates: -1}); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("invalid config = %v, want ErrInvalidConfig", err)
	}
	if _, err := NewWithConfig([]*nfa.NFA{nfa.Literal("abzab", abz)}, Config{MaxDFAStates: 2}); !errors.Is(err, dfa.ErrStateLimitExceeded) {
		t.Errorf("state limit = %v, want dfa.ErrStateLimitExceeded", err)
	}
}

func TestMatcher_Accessors(t *testing.T) {
	aStar := nfa.Kleene(nfa.Literal("a", abz))
	zz := nfa.Literal("zz", nfa.WithAlphabet(nfa.NewAlphabet('z', 'q')))
	m, err := NewWithConfig([]*nfa.NFA{aStar, zz}, Config{Debug: true})
	if err != nil {
		t.Fatal(err)
	}

	if got := m.Alphabet().String(); got != "[abqz]" {
		t.Errorf("Alphabet() = %s", got)
	}
	if ps := m.Patterns(); len(ps) != 2 || ps[0] != aStar || ps[1] != zz {
		t.Errorf("Patterns() = %v", ps)
	}

	aug := m.Augmented(0)
	if aug == aStar || aug.String() != "/a*/DE" || len(aug.ErrorStates()) != 1 {
		t.Errorf("Augmented(0) = %s with %d error states", aug, len(aug.ErrorStates()))
	}
	if len(aStar.ErrorStates()) != 0 {
		t.Error("construction modified the caller's pattern")
	}
	if m.Composite().NumStates() == 0 {
		t.Error("empty composite DFA")
	}

	mustIngest(t, m, "qzzz")
	if diff := cmp.Diff([]string{"1..2", "2..3"}, spans(m.MatchesFor(zz))); diff != "" {
		t.Errorf("MatchesFor(zz) (-want +got):\n%s", diff)
	}
	if m.MatchesFor(nfa.Literal("zz", abz)) != nil {
		t.Error("MatchesFor on a foreign pattern")
	}
	if got := m.Tracker().StartPositions(1); !cmp.Equal(got, []int{1, 2, 3}) {
		t.Errorf("StartPositions(zz) = %v", got)
	}
}
