package nfa

import "fmt"

// WithErr returns a copy of n augmented with an error sink; see AugmentErr.
// A nil alphabet means n's own alphabet.
func WithErr(n *NFA, alphabet Alphabet) *NFA {
	return n.Clone().AugmentErr(alphabet)
}

// WithErrDeadEnd returns a copy of n augmented with a dead-end error state;
// see AugmentErrDeadEnd. A nil alphabet means n's own alphabet.
func WithErrDeadEnd(n *NFA, alphabet Alphabet) *NFA {
	return n.Clone().AugmentErrDeadEnd(alphabet)
}

// AugmentErr adds an error state and, for every state and every symbol of
// alphabet without an outbound transition, a transition into it. The error
// state loops to itself on every symbol. Automata that already have an error
// state are returned unchanged.
func (n *NFA) AugmentErr(alphabet Alphabet) *NFA {
	return n.augment(alphabet, false, "/%s/E")
}

// AugmentErrDeadEnd is like AugmentErr, but the error state is a dead end
// with no outbound transitions, and states whose only outbound transitions
// are epsilon transitions are left alone.
//
// If the automaton is already total the error state would be unreachable;
// it is removed again so augmentation never leaves dead weight behind.
func (n *NFA) AugmentErrDeadEnd(alphabet Alphabet) *NFA {
	return n.augment(alphabet, true, "/%s/DE")
}

func (n *NFA) augment(alphabet Alphabet, deadEnd bool, label string) *NFA {
	if len(n.ErrorStates()) > 0 {
		return n
	}
	if alphabet == nil {
		alphabet = n.alphabet
	}

	errState := n.addErrorState()
	for _, s := range n.States() {
		if deadEnd && s.err {
			continue
		}
		present := n.outboundTokens(s.id)
		if deadEnd && onlyEpsilon(present) {
			continue
		}
		for _, tok := range alphabet.Missing(present) {
			n.AddTransition(tok, s.id, errState)
		}
	}

	if !n.hasIncident(errState) {
		// Cannot fail: the state has no incident transitions.
		_ = n.RemoveState(errState)
	}
	n.pattern = fmt.Sprintf(label, n.String())
	n.Reset()
	return n
}

func onlyEpsilon(tokens map[rune]struct{}) bool {
	if len(tokens) != 1 {
		return false
	}
	_, ok := tokens[Epsilon]
	return ok
}
