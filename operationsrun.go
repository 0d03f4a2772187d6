package automaton

// Symbols splits s into one symbol per rune.
func Symbols(s string) []Symbol {
	symbols := make([]Symbol, 0, len(s))
	for _, r := range s {
		symbols = append(symbols, Symbol(string(r)))
	}
	return symbols
}

// Run returns true if d accepts the runes of s. A malformed d accepts
// nothing.
func Run(d DFA, s string) bool {
	return d.Accepts(Symbols(s))
}

// Accepts returns true if d accepts word. A malformed d accepts nothing.
func (d DFA) Accepts(word []Symbol) bool {
	r, err := NewRunAutomaton(d)
	if err != nil {
		return false
	}
	return r.Run(word)
}

// Step returns the target of the move from s on symbol.
func (d DFA) Step(s State, symbol Symbol) (State, bool) {
	if s == nil {
		return nil, false
	}
	for _, t := range d.Transitions {
		if t.Symbol == symbol && s.Equals(t.From) {
			return t.To, true
		}
	}
	return nil, false
}

// Accepts returns true if n accepts word, following Epsilon moves. A
// malformed n accepts nothing.
func (n NFA) Accepts(word []Symbol) bool {
	t, err := compileNFA(n)
	if err != nil {
		return false
	}

	current := t.closure(t.newSet().Set(uint(t.start)))
	for _, symbol := range word {
		if symbol == Epsilon {
			return false
		}
		current = t.closure(t.move(current, symbol))
		if current.None() {
			return false
		}
	}
	return current.IntersectionCardinality(t.finals) > 0
}
