package automaton

import (
	"slices"

	"github.com/bits-and-blooms/bitset"
)

// Alphabet returns the distinct symbols labelling transitions, sorted,
// without Epsilon.
func Alphabet(transitions []Transition) []Symbol {
	return collectSymbols(transitions, func(t Transition) Symbol { return t.Symbol })
}

// DFAAlphabet is Alphabet for DFA transitions.
func DFAAlphabet(transitions []DFATransition) []Symbol {
	return collectSymbols(transitions, func(t DFATransition) Symbol { return t.Symbol })
}

func collectSymbols[T any](transitions []T, symbolOf func(T) Symbol) []Symbol {
	symbols := make([]Symbol, 0)
	for _, t := range transitions {
		if symbol := symbolOf(t); symbol != Epsilon && symbol != "" {
			symbols = append(symbols, symbol)
		}
	}
	slices.Sort(symbols)
	return slices.Compact(symbols)
}

// EpsilonClosure returns the states reachable from states using only
// Epsilon moves of transitions, including states themselves. The closure of
// no states is the empty set.
func EpsilonClosure(states []Name, transitions []Transition) *StateSet {
	names := slices.Clone(states)
	for _, t := range transitions {
		names = append(names, t.From, t.To)
	}
	slices.Sort(names)
	names = slices.Compact(names)

	t := &nfaTable{
		names: names,
		index: make(map[Name]int, len(names)),
		moves: make([]map[Symbol]*bitset.BitSet, len(names)),
	}
	for i, name := range names {
		t.index[name] = i
	}
	for _, tr := range transitions {
		if tr.Symbol == Epsilon {
			t.addMove(t.index[tr.From], Epsilon, t.index[tr.To])
		}
	}

	seed := t.newSet()
	for _, state := range states {
		seed.Set(uint(t.index[state]))
	}
	return t.stateSet(NewFrozenIntSet(t.closure(seed)))
}

// closure expands seed breadth-first along Epsilon moves. Each state is
// queued at most once.
func (t *nfaTable) closure(seed *bitset.BitSet) *bitset.BitSet {
	closure := seed.Clone()
	workList := make([]uint, 0, seed.Count())
	for i, ok := seed.NextSet(0); ok; i, ok = seed.NextSet(i + 1) {
		workList = append(workList, i)
	}

	for len(workList) > 0 {
		state := workList[0]
		workList = workList[1:]

		targets, ok := t.moves[state][Epsilon]
		if !ok {
			continue
		}
		for next, ok := targets.NextSet(0); ok; next, ok = targets.NextSet(next + 1) {
			if !closure.Test(next) {
				closure.Set(next)
				workList = append(workList, next)
			}
		}
	}
	return closure
}

// move returns the union of the symbol targets of every state in from.
func (t *nfaTable) move(from *bitset.BitSet, symbol Symbol) *bitset.BitSet {
	next := t.newSet()
	for i, ok := from.NextSet(0); ok; i, ok = from.NextSet(i + 1) {
		if targets, ok := t.moves[i][symbol]; ok {
			next.InPlaceUnion(targets)
		}
	}
	return next
}

// ConvertNFAToDFA returns a DFA accepting the same language as nfa. Each DFA
// state is the *StateSet of NFA states it stands for, already closed under
// Epsilon moves. Only subsets reachable from the start are built.
//
// Returns ErrEmptyInput if nfa has no states and ErrInvalidAutomaton if it
// is malformed.
func ConvertNFAToDFA(nfa NFA) (DFA, error) {
	t, err := compileNFA(nfa)
	if err != nil {
		return DFA{}, err
	}
	return t.determinize().record(), nil
}

// determinize runs the subset construction.
func (t *nfaTable) determinize() *dfaTable {
	initial := NewFrozenIntSet(t.closure(t.newSet().Set(uint(t.start))))

	// Discovered sets are numbered in order; the FIFO work list then pops
	// them in that same order.
	sets := []*FrozenIntSet{initial}
	newState := NewHashMap[*FrozenIntSet, int](WithCapacity(len(t.names)))
	newState.Set(initial, 0)
	workList := []int{0}

	finals := bitset.New(1)
	delta := make([][]int, 0, len(t.names))

	for len(workList) > 0 {
		state := workList[0]
		workList = workList[1:]
		current := sets[state]

		if current.values.IntersectionCardinality(t.finals) > 0 {
			finals.Set(uint(state))
		}

		row := newRow(len(t.alphabet))
		for a, symbol := range t.alphabet {
			next := t.move(current.values, symbol)
			if next.None() {
				continue
			}
			target := NewFrozenIntSet(t.closure(next))
			dest, ok := newState.Get(target)
			if !ok {
				dest = len(sets)
				sets = append(sets, target)
				newState.Set(target, dest)
				workList = append(workList, dest)
			}
			row[a] = dest
		}
		delta = grow(delta, state+1)
		delta[state] = row
	}

	d := &dfaTable{
		states:   make([]State, len(sets)),
		index:    NewHashMap[State, int](WithCapacity(len(sets))),
		start:    0,
		finals:   finals,
		alphabet: t.alphabet,
		delta:    delta,
	}
	for set, i := range newState.All() {
		d.states[i] = t.stateSet(set)
		d.index.Set(d.states[i], i)
	}
	return d
}

// reachable returns the states reachable from the start state.
func (t *dfaTable) reachable() *bitset.BitSet {
	seen := bitset.New(uint(len(t.states)))
	workList := []int{t.start}
	seen.Set(uint(t.start))

	for len(workList) > 0 {
		state := workList[0]
		workList = workList[1:]
		for _, dest := range t.delta[state] {
			if dest != noMove && !seen.Test(uint(dest)) {
				seen.Set(uint(dest))
				workList = append(workList, dest)
			}
		}
	}
	return seen
}

// live returns the states from which some final state can be reached.
func (t *dfaTable) live() *bitset.BitSet {
	reverse := make([][]int, len(t.states))
	for s, row := range t.delta {
		for _, dest := range row {
			if dest != noMove {
				reverse[dest] = append(reverse[dest], s)
			}
		}
	}

	live := t.finals.Clone()
	workList := make([]int, 0, live.Count())
	for i, ok := live.NextSet(0); ok; i, ok = live.NextSet(i + 1) {
		workList = append(workList, int(i))
	}
	for len(workList) > 0 {
		state := workList[0]
		workList = workList[1:]
		for _, src := range reverse[state] {
			if !live.Test(uint(src)) {
				live.Set(uint(src))
				workList = append(workList, src)
			}
		}
	}
	return live
}

// restrict returns the sub-automaton on the states in keep, which must
// contain the start state. Edges into dropped states are removed.
func (t *dfaTable) restrict(keep *bitset.BitSet) *dfaTable {
	if keep.Count() == uint(len(t.states)) {
		return t
	}

	mp := make([]int, len(t.states))
	r := &dfaTable{
		index:    NewHashMap[State, int](WithCapacity(int(keep.Count()))),
		finals:   bitset.New(keep.Count()),
		alphabet: t.alphabet,
	}
	for s := range t.states {
		mp[s] = noMove
		if !keep.Test(uint(s)) {
			continue
		}
		mp[s] = len(r.states)
		r.index.Set(t.states[s], mp[s])
		r.states = append(r.states, t.states[s])
		if t.finals.Test(uint(s)) {
			r.finals.Set(uint(mp[s]))
		}
	}
	r.start = mp[t.start]

	r.delta = make([][]int, len(r.states))
	for s := range t.states {
		if mp[s] == noMove {
			continue
		}
		row := newRow(len(t.alphabet))
		for a, dest := range t.delta[s] {
			if dest != noMove {
				row[a] = mp[dest]
			}
		}
		r.delta[mp[s]] = row
	}
	return r
}

// IsEmptyAutomaton reports whether d accepts no string at all.
func IsEmptyAutomaton(d DFA) (bool, error) {
	t, err := compileDFA(d)
	if err != nil {
		return false, err
	}
	if t.finals.Test(uint(t.start)) {
		return false, nil
	}
	return t.reachable().IntersectionCardinality(t.finals) == 0, nil
}
