package online

import "github.com/coregx/kleene/nfa"

// Match runs a fresh matcher over input as a single chunk and returns it.
// Use Matches for the results and Tracker for the candidate start and match
// end ledgers.
func Match(patterns []*nfa.NFA, input string) (*Matcher, error) {
	m, err := New(patterns)
	if err != nil {
		return nil, err
	}
	if _, err := m.Ingest(input); err != nil {
		return nil, err
	}
	return m, nil
}
