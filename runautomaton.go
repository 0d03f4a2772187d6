package automaton

// RunAutomaton is a DFA indexed for repeated matching.
type RunAutomaton struct {
	table   *dfaTable
	symbols map[Symbol]int
}

// NewRunAutomaton validates d and indexes it for Step and Run.
func NewRunAutomaton(d DFA) (*RunAutomaton, error) {
	t, err := compileDFA(d)
	if err != nil {
		return nil, err
	}
	symbols := make(map[Symbol]int, len(t.alphabet))
	for i, symbol := range t.alphabet {
		symbols[symbol] = i
	}
	return &RunAutomaton{table: t, symbols: symbols}, nil
}

// Initial returns the start state.
func (r *RunAutomaton) Initial() int {
	return r.table.start
}

// Step returns the state reached from state on symbol, or -1 if there is no
// such move.
func (r *RunAutomaton) Step(state int, symbol Symbol) int {
	a, ok := r.symbols[symbol]
	if !ok || state < 0 || state >= len(r.table.delta) {
		return noMove
	}
	return r.table.delta[state][a]
}

// IsAccept reports whether state is final.
func (r *RunAutomaton) IsAccept(state int) bool {
	return state >= 0 && r.table.finals.Test(uint(state))
}

// State returns the DFA state behind an index returned by Initial or Step.
func (r *RunAutomaton) State(state int) State {
	return r.table.states[state]
}

// Run returns true if word is accepted.
func (r *RunAutomaton) Run(word []Symbol) bool {
	p := r.table.start
	for _, symbol := range word {
		p = r.Step(p, symbol)
		if p == noMove {
			return false
		}
	}
	return r.IsAccept(p)
}
