package automaton

import "errors"

var (
	// ErrInvalidAutomaton reports a malformed automaton record: a start or
	// final state outside the state set, a transition touching an unknown
	// state, an illegal symbol, or (for DFAs) two targets for one move.
	ErrInvalidAutomaton = errors.New("invalid automaton")

	// ErrEmptyInput reports an automaton record without states.
	ErrEmptyInput = errors.New("automaton has no states")
)
