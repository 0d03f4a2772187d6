package automaton

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/bits-and-blooms/bitset"
	"github.com/hashicorp/go-multierror"
)

// Symbol is an input symbol. The empty string is not a symbol.
type Symbol string

// Epsilon labels a move that consumes no input. It never appears in an
// alphabet.
const Epsilon Symbol = "ε"

// noMove marks a (state, symbol) pair without a transition.
const noMove = -1

// Transition is one NFA edge. Several edges may share From and Symbol.
type Transition struct {
	From   Name
	Symbol Symbol
	To     Name
}

// NFA is a nondeterministic automaton record, possibly with Epsilon moves.
// Records are treated as immutable by every operation in this package.
type NFA struct {
	States      []Name
	Start       Name
	Finals      []Name
	Transitions []Transition
}

// DFATransition is one DFA edge.
type DFATransition struct {
	From   State
	Symbol Symbol
	To     State
}

// DFA is a deterministic automaton record: at most one target per state and
// symbol, and a missing edge rejects. The records returned by this package
// list States sorted by Label and Transitions sorted by source label, then
// symbol.
type DFA struct {
	States      []State
	Start       State
	Finals      []State
	Transitions []DFATransition
}

// nfaTable is the indexed form of an NFA.
type nfaTable struct {
	names    []Name
	index    map[Name]int
	start    int
	finals   *bitset.BitSet
	moves    []map[Symbol]*bitset.BitSet
	alphabet []Symbol
}

// compileNFA validates nfa and indexes it. Every problem found is reported.
func compileNFA(nfa NFA) (*nfaTable, error) {
	if len(nfa.States) == 0 {
		return nil, fmt.Errorf("%w: nfa state set is empty", ErrEmptyInput)
	}

	var result *multierror.Error
	names := slices.Clone(nfa.States)
	slices.Sort(names)
	names = slices.Compact(names)
	index := make(map[Name]int, len(names))
	for i, name := range names {
		if name == "" {
			result = multierror.Append(result, fmt.Errorf("%w: empty state name", ErrInvalidAutomaton))
		}
		index[name] = i
	}

	t := &nfaTable{
		names:    names,
		index:    index,
		finals:   bitset.New(uint(len(names))),
		moves:    make([]map[Symbol]*bitset.BitSet, len(names)),
		alphabet: Alphabet(nfa.Transitions),
	}

	start, ok := index[nfa.Start]
	if !ok {
		result = multierror.Append(result, fmt.Errorf("%w: start state %q is not in the state set", ErrInvalidAutomaton, nfa.Start))
	}
	t.start = start

	for _, final := range nfa.Finals {
		i, ok := index[final]
		if !ok {
			result = multierror.Append(result, fmt.Errorf("%w: final state %q is not in the state set", ErrInvalidAutomaton, final))
			continue
		}
		t.finals.Set(uint(i))
	}

	for _, tr := range nfa.Transitions {
		from, fromOK := index[tr.From]
		to, toOK := index[tr.To]
		if !fromOK {
			result = multierror.Append(result, fmt.Errorf("%w: transition source %q is not in the state set", ErrInvalidAutomaton, tr.From))
		}
		if !toOK {
			result = multierror.Append(result, fmt.Errorf("%w: transition target %q is not in the state set", ErrInvalidAutomaton, tr.To))
		}
		if tr.Symbol == "" {
			result = multierror.Append(result, fmt.Errorf("%w: transition %q -> %q has an empty symbol", ErrInvalidAutomaton, tr.From, tr.To))
			continue
		}
		if !fromOK || !toOK {
			continue
		}
		t.addMove(from, tr.Symbol, to)
	}

	if err := result.ErrorOrNil(); err != nil {
		return nil, err
	}
	return t, nil
}

// ValidateNFA returns nil if nfa is well formed. Otherwise the error lists
// every problem found and matches ErrInvalidAutomaton or ErrEmptyInput.
func ValidateNFA(nfa NFA) error {
	_, err := compileNFA(nfa)
	return err
}

func (t *nfaTable) addMove(from int, symbol Symbol, to int) {
	if t.moves[from] == nil {
		t.moves[from] = make(map[Symbol]*bitset.BitSet)
	}
	targets, ok := t.moves[from][symbol]
	if !ok {
		targets = bitset.New(uint(len(t.names)))
		t.moves[from][symbol] = targets
	}
	targets.Set(uint(to))
}

func (t *nfaTable) newSet() *bitset.BitSet {
	return bitset.New(uint(len(t.names)))
}

// stateSet turns a set of NFA indices into a composite DFA state.
func (t *nfaTable) stateSet(set *FrozenIntSet) *StateSet {
	states := make([]State, 0, set.Size())
	for _, i := range set.GetArray() {
		states = append(states, t.names[i])
	}
	return NewStateSet(states...)
}

// dfaTable is the indexed form of a DFA. delta[s][a] is the target of state s
// on alphabet[a], or noMove.
type dfaTable struct {
	states   []State
	index    *HashMap[State, int]
	start    int
	finals   *bitset.BitSet
	alphabet []Symbol
	delta    [][]int
}

// compileDFA validates dfa and indexes it. Every problem found is reported.
func compileDFA(dfa DFA) (*dfaTable, error) {
	if len(dfa.States) == 0 {
		return nil, fmt.Errorf("%w: dfa state set is empty", ErrEmptyInput)
	}

	var result *multierror.Error
	t := &dfaTable{
		states:   make([]State, 0, len(dfa.States)),
		index:    NewHashMap[State, int](WithCapacity(len(dfa.States))),
		alphabet: DFAAlphabet(dfa.Transitions),
	}
	for _, state := range dfa.States {
		if isNil(state) {
			result = multierror.Append(result, fmt.Errorf("%w: nil state", ErrInvalidAutomaton))
			continue
		}
		if name, ok := state.(Name); ok && name == "" {
			result = multierror.Append(result, fmt.Errorf("%w: empty state name", ErrInvalidAutomaton))
		}
		if _, ok := t.index.Get(state); ok {
			continue
		}
		t.index.Set(state, len(t.states))
		t.states = append(t.states, state)
	}
	t.finals = bitset.New(uint(len(t.states)))

	symbols := make(map[Symbol]int, len(t.alphabet))
	for i, symbol := range t.alphabet {
		symbols[symbol] = i
	}
	t.delta = make([][]int, len(t.states))
	for s := range t.delta {
		t.delta[s] = newRow(len(t.alphabet))
	}

	start, ok := t.lookup(dfa.Start)
	if !ok {
		result = multierror.Append(result, fmt.Errorf("%w: start state %s is not in the state set", ErrInvalidAutomaton, quote(dfa.Start)))
	}
	t.start = start

	for _, final := range dfa.Finals {
		i, ok := t.lookup(final)
		if !ok {
			result = multierror.Append(result, fmt.Errorf("%w: final state %s is not in the state set", ErrInvalidAutomaton, quote(final)))
			continue
		}
		t.finals.Set(uint(i))
	}

	for _, tr := range dfa.Transitions {
		from, fromOK := t.lookup(tr.From)
		to, toOK := t.lookup(tr.To)
		if !fromOK {
			result = multierror.Append(result, fmt.Errorf("%w: transition source %s is not in the state set", ErrInvalidAutomaton, quote(tr.From)))
		}
		if !toOK {
			result = multierror.Append(result, fmt.Errorf("%w: transition target %s is not in the state set", ErrInvalidAutomaton, quote(tr.To)))
		}
		switch tr.Symbol {
		case "":
			result = multierror.Append(result, fmt.Errorf("%w: transition from %s has an empty symbol", ErrInvalidAutomaton, quote(tr.From)))
			continue
		case Epsilon:
			result = multierror.Append(result, fmt.Errorf("%w: transition from %s is an epsilon move", ErrInvalidAutomaton, quote(tr.From)))
			continue
		}
		if !fromOK || !toOK {
			continue
		}

		a := symbols[tr.Symbol]
		switch current := t.delta[from][a]; {
		case current == noMove:
			t.delta[from][a] = to
		case current != to:
			result = multierror.Append(result, fmt.Errorf("%w: state %s has two targets on %q", ErrInvalidAutomaton, quote(tr.From), tr.Symbol))
		}
	}

	if err := result.ErrorOrNil(); err != nil {
		return nil, err
	}
	return t, nil
}

// ValidateDFA is ValidateNFA for DFA records.
func ValidateDFA(dfa DFA) error {
	_, err := compileDFA(dfa)
	return err
}

func (t *dfaTable) lookup(state State) (int, bool) {
	if isNil(state) {
		return noMove, false
	}
	return t.index.Get(state)
}

func newRow(size int) []int {
	row := make([]int, size)
	for i := range row {
		row[i] = noMove
	}
	return row
}

func quote(state State) string {
	if isNil(state) {
		return "<nil>"
	}
	return fmt.Sprintf("%q", Label(state))
}

// record converts t into a DFA record with a stable ordering.
func (t *dfaTable) record() DFA {
	labels := make([]string, len(t.states))
	for i, state := range t.states {
		labels[i] = Label(state)
	}
	order := make([]int, len(t.states))
	for i := range order {
		order[i] = i
	}
	slices.SortFunc(order, func(a, b int) int {
		return cmp.Compare(labels[a], labels[b])
	})

	d := DFA{
		States: make([]State, 0, len(t.states)),
		Start:  t.states[t.start],
		Finals: make([]State, 0, t.finals.Count()),
	}
	for _, s := range order {
		d.States = append(d.States, t.states[s])
		if t.finals.Test(uint(s)) {
			d.Finals = append(d.Finals, t.states[s])
		}
		for a, dest := range t.delta[s] {
			if dest == noMove {
				continue
			}
			d.Transitions = append(d.Transitions, DFATransition{
				From:   t.states[s],
				Symbol: t.alphabet[a],
				To:     t.states[dest],
			})
		}
	}
	return d
}
