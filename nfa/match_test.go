package nfa

import "testing"

func abbcPattern() *NFA {
	return Seq(Literal("ab"), Optional(Literal("b")), Literal("c"))
}

func TestMatches_Scenario(t *testing.T) {
	n := abbcPattern()
	got := n.Matches("abcdefg,abcdefg,abbcdefg,abbbcdefg")

	want := []struct {
		start, last int
		text        string
	}{
		{0, 2, "abc"},
		{8, 10, "abc"},
		{16, 19, "abbc"},
	}
	if len(got) != len(want) {
		t.Fatalf("Matches() returned %d matches %v, want %d", len(got), got, len(want))
	}
	for i, w := range want {
		if got[i].Start != w.start || got[i].Last() != w.last || got[i].Text() != w.text {
			t.Errorf("match %d = [%d,%d] %q, want [%d,%d] %q",
				i, got[i].Start, got[i].Last(), got[i].Text(), w.start, w.last, w.text)
		}
	}
}

func TestMatch_WholeInput(t *testing.T) {
	n := abbcPattern()

	m := n.Match("abbc")
	if m == nil {
		t.Fatal("Match(abbc) = nil")
	}
	if m.Start != 0 || m.End != 4 || m.Text() != "abbc" {
		t.Errorf("Match(abbc) = %+v", *m)
	}
	if n.Match("abbcx") != nil {
		t.Error("Match must cover the whole input")
	}
	if n.Match("") != nil {
		t.Error("Match(\"\") on a non-nullable pattern")
	}
}

func TestMatchesAtOffset(t *testing.T) {
	n := Plus(Literal("a"))
	got := n.MatchesAtOffset("baaab", 1)

	want := []string{"1..1", "1..2", "1..3"}
	if len(got) != len(want) {
		t.Fatalf("MatchesAtOffset = %v, want spans %v", got, want)
	}
	for i := range want {
		if got[i].Span() != want[i] {
			t.Errorf("match %d span = %s, want %s", i, got[i].Span(), want[i])
		}
	}

	if got := n.MatchesAtOffset("baaab", 0); len(got) != 0 {
		t.Errorf("MatchesAtOffset(0) = %v, want none", got)
	}
}

func TestMatches_SkipsEmpty(t *testing.T) {
	n := Kleene(Literal("a"))
	for _, m := range n.Matches("bab") {
		if m.IsEmpty() {
			t.Errorf("Matches returned empty match %s", m.Span())
		}
	}
}

func TestCursor(t *testing.T) {
	n := Literal("ab")
	n.Reset()
	if n.Accept() {
		t.Fatal("accepting before any token")
	}
	n.HandleToken('a')
	n.HandleToken('b')
	if !n.Accept() {
		t.Fatal("not accepting after ab")
	}
	n.HandleToken('b')
	if len(n.CurrentStates()) != 0 {
		t.Errorf("CurrentStates() = %v, want empty", n.CurrentStates())
	}
	n.Reset()
	if !n.CurrentStates().Equal(NewStateSet(n.Start())) {
		t.Errorf("Reset() cursor = %v", n.CurrentStates())
	}
}

func TestMatchRef(t *testing.T) {
	src := []rune("hello world")

	m := NewMatchRef(src, 6, 11)
	if m.Text() != "world" || m.String() != "world" {
		t.Errorf("Text() = %q", m.Text())
	}
	if m.Len() != 5 || m.Last() != 10 || m.IsEmpty() {
		t.Errorf("Len/Last/IsEmpty = %d/%d/%v", m.Len(), m.Last(), m.IsEmpty())
	}
	if m.Span() != "6..10" {
		t.Errorf("Span() = %s", m.Span())
	}

	e := NewMatchRef(src, 3, 3)
	if !e.IsEmpty() || e.Text() != "" || e.Span() != "3...3" {
		t.Errorf("empty ref: IsEmpty=%v Text=%q Span=%s", e.IsEmpty(), e.Text(), e.Span())
	}

	if !m.Equal(NewMatchRef([]rune("hello world"), 6, 11)) {
		t.Error("refs over equal text and span should be equal")
	}
	if m.Equal(NewMatchRef([]rune("hello there"), 6, 11)) {
		t.Error("refs over different sources should differ")
	}
	if m.Equal(e) {
		t.Error("refs with different spans should differ")
	}
}
