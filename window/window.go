// Package window implements a fixed-window streaming matcher on top of any
// off-the-shelf regex engine.
//
// Unlike package online it builds no automata of its own. Every Ingest
// appends the chunk to a trailing buffer, rescans the whole buffer with
// every pattern and reports the matches it has not reported before. The
// buffer is then cut back to the window size, so matches longer than the
// window, or starting before it, are never found.
package window

import (
	"errors"
	"fmt"
	"unicode/utf8"

	u "github.com/araddon/gou"
)

var (
	// ErrInvalidWindow indicates a negative window size.
	ErrInvalidWindow = errors.New("window: window size must not be negative")

	// ErrNoPatterns indicates a matcher was requested for an empty pattern
	// list.
	ErrNoPatterns = errors.New("window: no patterns")
)

// DefaultWindowSize is the window size, in bytes, New uses when passed 0.
const DefaultWindowSize = 100

// Regex is the subset of *regexp.Regexp the matcher needs.
type Regex interface {
	// FindAllStringIndex returns successive non-overlapping matches as
	// [start, end) byte offset pairs; n < 0 means all matches.
	FindAllStringIndex(s string, n int) [][]int
	String() string
}

// Match is a match of one pattern. Offsets are absolute byte offsets into
// the stream, counted from the last Reset.
type Match struct {
	Pattern Regex
	Start   int
	End     int
	Text    string
}

// String returns a human-readable representation of the match
func (m Match) String() string {
	return fmt.Sprintf("%s[%d:%d]=%q", m.Pattern, m.Start, m.End, m.Text)
}

type span struct {
	start, end int
}

// Option configures a Matcher.
type Option func(*Matcher)

// WithDebug enables gou debug tracing of scans and evictions.
func WithDebug() Option {
	return func(m *Matcher) {
		m.debug = true
	}
}

// Matcher rescans a bounded trailing window of the stream on every chunk.
// It is not safe for concurrent use.
type Matcher struct {
	patterns []Regex
	window   int
	debug    bool

	buffer  string
	offset  int // stream offset of buffer[0]
	seen    []map[span]struct{}
	matches [][]Match
}

// New creates a Matcher over patterns that keeps at most windowSize bytes
// of trailing text. A windowSize of 0 selects DefaultWindowSize.
func New(patterns []Regex, windowSize int, opts ...Option) (*Matcher, error) {
	if windowSize < 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidWindow, windowSize)
	}
	if windowSize == 0 {
		windowSize = DefaultWindowSize
	}
	if len(patterns) == 0 {
		return nil, ErrNoPatterns
	}
	m := &Matcher{
		patterns: append([]Regex(nil), patterns...),
		window:   windowSize,
	}
	for _, o := range opts {
		o(m)
	}
	m.Reset()
	return m, nil
}

// Reset drops the buffer and every recorded match.
func (m *Matcher) Reset() {
	m.buffer = ""
	m.offset = 0
	m.seen = make([]map[span]struct{}, len(m.patterns))
	m.matches = make([][]Match, len(m.patterns))
	for i := range m.patterns {
		m.seen[i] = make(map[span]struct{})
	}
}

// Ingest appends chunk to the window and returns the matches not reported
// by earlier calls, grouped by pattern in pattern order and by position
// within a pattern. A match is identified by its absolute span, so the same
// text matched again at another offset is a new match.
func (m *Matcher) Ingest(chunk string) []Match {
	m.buffer += chunk

	var fresh []Match
	for i, re := range m.patterns {
		for _, loc := range re.FindAllStringIndex(m.buffer, -1) {
			s := span{start: m.offset + loc[0], end: m.offset + loc[1]}
			if _, dup := m.seen[i][s]; dup {
				continue
			}
			m.seen[i][s] = struct{}{}
			match := Match{Pattern: re, Start: s.start, End: s.end, Text: m.buffer[loc[0]:loc[1]]}
			m.matches[i] = append(m.matches[i], match)
			fresh = append(fresh, match)
		}
	}
	if m.debug {
		u.Debugf("window: ingested %d bytes at %d, %d new matches", len(chunk), m.offset+len(m.buffer)-len(chunk), len(fresh))
	}

	m.shrink()
	return fresh
}

// shrink cuts the buffer back to the window, keeping whole runes, and
// forgets spans that start before the new window since no rescan can
// produce them again.
func (m *Matcher) shrink() {
	if len(m.buffer) <= m.window {
		return
	}
	cut := len(m.buffer) - m.window
	for cut < len(m.buffer) && !utf8.RuneStart(m.buffer[cut]) {
		cut++
	}
	m.buffer = m.buffer[cut:]
	m.offset += cut

	evicted := 0
	for i := range m.seen {
		for s := range m.seen[i] {
			if s.start < m.offset {
				delete(m.seen[i], s)
				evicted++
			}
		}
	}
	if m.debug && evicted > 0 {
		u.Debugf("window: window now starts at %d, evicted %d spans", m.offset, evicted)
	}
}

// Matches returns every match reported since the last Reset, keyed by
// pattern.
func (m *Matcher) Matches() map[Regex][]Match {
	out := make(map[Regex][]Match, len(m.patterns))
	for i, re := range m.patterns {
		if len(m.matches[i]) > 0 {
			out[re] = m.matches[i]
		}
	}
	return out
}

// MatchesFor returns the matches reported for re, or nil if re is not one
// of the matcher's patterns.
func (m *Matcher) MatchesFor(re Regex) []Match {
	for i, p := range m.patterns {
		if p == re {
			return m.matches[i]
		}
	}
	return nil
}

// Buffer returns the text currently inside the window.
func (m *Matcher) Buffer() string {
	return m.buffer
}

// Offset returns the stream offset of the first byte of Buffer.
func (m *Matcher) Offset() int {
	return m.offset
}
