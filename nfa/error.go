// Package nfa provides nondeterministic finite automata over rune alphabets
// and the combinators used to build them.
//
// An NFA owns an arena of states addressed by StateID. Transitions are
// labelled either with a rune from the automaton's alphabet or with Epsilon.
// Combinators (Literal, Seq, Union, Kleene, ...) never mutate their operands:
// every operand is cloned into the result's arena first.
package nfa

import (
	"errors"
	"fmt"
)

// Common NFA errors
var (
	// ErrIncidentTransitions indicates an attempt to remove a state that is
	// still the source or target of a transition.
	ErrIncidentTransitions = errors.New("state has incident transitions")

	// ErrUnknownState indicates a StateID outside the automaton's arena.
	ErrUnknownState = errors.New("unknown NFA state")
)

// BuildError represents an error while assembling or editing an NFA.
type BuildError struct {
	Message string
	StateID StateID
	Err     error
}

// Error implements the error interface
func (e *BuildError) Error() string {
	if e.StateID != InvalidState {
		return fmt.Sprintf("NFA build error at state %d: %s", e.StateID, e.Message)
	}
	return fmt.Sprintf("NFA build error: %s", e.Message)
}

// Unwrap returns the underlying error
func (e *BuildError) Unwrap() error {
	return e.Err
}
