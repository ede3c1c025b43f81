package kleene_test

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/coregx/kleene"
	"github.com/coregx/kleene/nfa"
	"github.com/coregx/kleene/window"
)

// ExampleSeq demonstrates building /abb?c/ and scanning for it.
func ExampleSeq() {
	re := kleene.Seq(kleene.Literal("ab"), kleene.Optional(kleene.Literal("b")), kleene.Literal("c"))
	for _, m := range re.Matches("abcdefg,abcdefg,abbcdefg,abbbcdefg") {
		fmt.Println(m.Span(), m.Text())
	}
	// Output:
	// 0..2 abc
	// 8..10 abc
	// 16..19 abbc
}

// ExampleToDFA demonstrates subset construction.
func ExampleToDFA() {
	re := kleene.Seq(kleene.Literal("a"), kleene.Kleene(kleene.Literal("b")), kleene.Literal("c"))
	d, err := kleene.ToDFA(re)
	if err != nil {
		panic(err)
	}
	for _, s := range []string{"ac", "abbbc", "ab"} {
		m, err := d.Match(s)
		if err != nil {
			panic(err)
		}
		fmt.Println(s, m != nil)
	}
	// Output:
	// ac true
	// abbbc true
	// ab false
}

// ExampleNewOnline demonstrates streaming matching of a pattern that also
// matches the empty string.
func ExampleNewOnline() {
	aStar := kleene.Kleene(kleene.Literal("a", nfa.WithAlphabet(nfa.AlphabetOf("abz"))))
	m, err := kleene.NewOnline(aStar)
	if err != nil {
		panic(err)
	}
	for _, chunk := range []string{"ab", "aa"} {
		delta, err := m.Ingest(chunk)
		if err != nil {
			panic(err)
		}
		var spans []string
		for _, ref := range delta[aStar] {
			spans = append(spans, ref.Span())
		}
		fmt.Println(strings.Join(spans, " "))
	}
	// Output:
	// 0...0 1...1 0..0
	// 2...2 3...3 2..2 2..3 3..3
}

// ExampleMatchAll demonstrates matching several patterns in one pass.
func ExampleMatchAll() {
	aDot := kleene.Seq(kleene.Literal("a"), kleene.Dot())
	dotB := kleene.Seq(kleene.Dot(), kleene.Literal("b"))
	all, err := kleene.MatchAll("abzbazaaab", aDot, dotB)
	if err != nil {
		panic(err)
	}
	for _, p := range []*nfa.NFA{aDot, dotB} {
		fmt.Print(p, ":")
		for _, ref := range all[p] {
			fmt.Print(" ", ref.Text())
		}
		fmt.Println()
	}
	// Output:
	// a.: ab az aa aa ab
	// .b: ab zb ab
}

// Example_window demonstrates the windowed matcher over a stdlib regexp.
func Example_window() {
	re := regexp.MustCompile(`ab+`)
	m, err := window.New([]window.Regex{re}, 8)
	if err != nil {
		panic(err)
	}
	for _, chunk := range []string{"xab", "b", "zzab"} {
		for _, match := range m.Ingest(chunk) {
			fmt.Println(match.Start, match.End, match.Text)
		}
	}
	// Output:
	// 1 3 ab
	// 1 4 abb
	// 6 8 ab
}
