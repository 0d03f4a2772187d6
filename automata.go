package automaton

import "fmt"

// Automata builds small NFA records. States are named q0, q1, ... in the
// order they are created.
type Automata struct {
}

func stateName(i int) Name {
	return Name(fmt.Sprintf("q%d", i))
}

// MakeEmpty
// Returns an automaton with the empty language.
func (*Automata) MakeEmpty() NFA {
	return NFA{
		States: []Name{stateName(0)},
		Start:  stateName(0),
	}
}

// MakeEmptyString
// Returns an automaton that accepts only the empty string.
func (*Automata) MakeEmptyString() NFA {
	return NFA{
		States: []Name{stateName(0)},
		Start:  stateName(0),
		Finals: []Name{stateName(0)},
	}
}

// MakeString
// Returns an automaton that accepts exactly the runes of s.
func (*Automata) MakeString(s string) NFA {
	symbols := Symbols(s)
	a := NFA{
		States: []Name{stateName(0)},
		Start:  stateName(0),
	}
	for i, symbol := range symbols {
		a.States = append(a.States, stateName(i+1))
		a.Transitions = append(a.Transitions, Transition{From: stateName(i), Symbol: symbol, To: stateName(i + 1)})
	}
	a.Finals = []Name{stateName(len(symbols))}
	return a
}

// MakeAnyString
// Returns an automaton that accepts every string over alphabet.
func (*Automata) MakeAnyString(alphabet ...Symbol) NFA {
	a := NFA{
		States: []Name{stateName(0)},
		Start:  stateName(0),
		Finals: []Name{stateName(0)},
	}
	for _, symbol := range alphabet {
		a.Transitions = append(a.Transitions, Transition{From: stateName(0), Symbol: symbol, To: stateName(0)})
	}
	return a
}

// prefixed copies a with every state name prefixed, so several automata can
// be combined without clashes.
func prefixed(a NFA, prefix string) NFA {
	rename := func(n Name) Name { return Name(prefix) + n }

	b := NFA{
		States:      make([]Name, len(a.States)),
		Start:       rename(a.Start),
		Finals:      make([]Name, len(a.Finals)),
		Transitions: make([]Transition, len(a.Transitions)),
	}
	for i, n := range a.States {
		b.States[i] = rename(n)
	}
	for i, n := range a.Finals {
		b.Finals[i] = rename(n)
	}
	for i, t := range a.Transitions {
		b.Transitions[i] = Transition{From: rename(t.From), Symbol: t.Symbol, To: rename(t.To)}
	}
	return b
}

// Union returns an automaton accepting any string accepted by one of
// automata. A fresh start state s reaches each operand by an Epsilon move;
// operand states are renamed "<i>." + name.
func Union(automata ...NFA) NFA {
	start := Name("s")
	u := NFA{
		States: []Name{start},
		Start:  start,
	}
	for i, a := range automata {
		b := prefixed(a, fmt.Sprintf("%d.", i))
		u.States = append(u.States, b.States...)
		u.Finals = append(u.Finals, b.Finals...)
		u.Transitions = append(u.Transitions, b.Transitions...)
		u.Transitions = append(u.Transitions, Transition{From: start, Symbol: Epsilon, To: b.Start})
	}
	return u
}

// Concatenate returns an automaton accepting a string of first followed
// by a string of second. The finals of first reach the start of second by
// Epsilon moves; states are renamed "0." and "1." + name.
func Concatenate(first, second NFA) NFA {
	a := prefixed(first, "0.")
	b := prefixed(second, "1.")

	c := NFA{
		States:      append(a.States, b.States...),
		Start:       a.Start,
		Finals:      b.Finals,
		Transitions: append(a.Transitions, b.Transitions...),
	}
	for _, final := range a.Finals {
		c.Transitions = append(c.Transitions, Transition{From: final, Symbol: Epsilon, To: b.Start})
	}
	return c
}
