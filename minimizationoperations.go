package automaton

import (
	"slices"

	"github.com/bits-and-blooms/bitset"
)

type minimizeOptions struct {
	removeDeadStates bool
}

type MinimizeOption func(*minimizeOptions)

// WithDeadStateRemoval also drops states from which no final state can be
// reached, producing the minimal partial DFA. The start state is always
// kept.
func WithDeadStateRemoval() MinimizeOption {
	return func(o *minimizeOptions) {
		o.removeDeadStates = true
	}
}

// MinimizeDFA returns the minimal DFA accepting the same language as dfa,
// using Moore's partition refinement on the states reachable from the
// start. Each resulting state is the *StateSet of the equivalent input
// states it merges.
//
// Returns ErrEmptyInput if dfa has no states and ErrInvalidAutomaton if it
// is malformed.
func MinimizeDFA(dfa DFA, opts ...MinimizeOption) (DFA, error) {
	options := &minimizeOptions{}
	for _, opt := range opts {
		opt(options)
	}

	t, err := compileDFA(dfa)
	if err != nil {
		return DFA{}, err
	}

	keep := t.reachable()
	if options.removeDeadStates {
		keep.InPlaceIntersection(t.live())
		keep.Set(uint(t.start))
	}
	return t.restrict(keep).minimize().record(), nil
}

// minimize merges equivalent states. Every state must be reachable.
//
// States from which no final state can be reached all accept the empty
// language, so they start in one block and a move into any of them is
// treated like a missing move.
func (t *dfaTable) minimize() *dfaTable {
	live := t.live()
	block, numBlocks := t.initialPartition(live)

	// Each round either stops or splits some block, so there are at most
	// len(t.states) rounds. Signatures include the current block, so the
	// next partition always refines the current one; an unchanged block
	// count therefore means an unchanged partition.
	for {
		next := make([]int, len(t.states))
		blocks := NewHashMap[*signature, int](WithCapacity(numBlocks * 2))
		for s, row := range t.delta {
			values := make([]int, 0, len(row)+1)
			values = append(values, block[s])
			for _, dest := range row {
				if dest == noMove || !live.Test(uint(dest)) {
					values = append(values, noMove)
				} else {
					values = append(values, block[dest])
				}
			}

			key := newSignature(values)
			id, ok := blocks.Get(key)
			if !ok {
				id = blocks.Size()
				blocks.Set(key, id)
			}
			next[s] = id
		}

		if blocks.Size() == numBlocks {
			break
		}
		block, numBlocks = next, blocks.Size()
	}

	return t.quotient(block, numBlocks)
}

type stateKind int

const (
	finalState stateKind = iota
	liveState
	deadState
)

// initialPartition separates final states, live non-final states and
// states that cannot reach a final state. An empty kind yields no block.
func (t *dfaTable) initialPartition(live *bitset.BitSet) ([]int, int) {
	block := make([]int, len(t.states))
	ids := map[stateKind]int{}
	for s := range t.states {
		kind := deadState
		switch {
		case t.finals.Test(uint(s)):
			kind = finalState
		case live.Test(uint(s)):
			kind = liveState
		}
		id, ok := ids[kind]
		if !ok {
			id = len(ids)
			ids[kind] = id
		}
		block[s] = id
	}
	return block, len(ids)
}

// quotient builds the automaton whose states are the blocks of partition.
func (t *dfaTable) quotient(block []int, numBlocks int) *dfaTable {
	members := make([][]State, numBlocks)
	representative := make([]int, numBlocks)
	for s := len(t.states) - 1; s >= 0; s-- {
		members[block[s]] = append(members[block[s]], t.states[s])
		representative[block[s]] = s
	}

	q := &dfaTable{
		states:   make([]State, numBlocks),
		index:    NewHashMap[State, int](WithCapacity(numBlocks)),
		start:    block[t.start],
		finals:   bitset.New(uint(numBlocks)),
		alphabet: t.alphabet,
		delta:    make([][]int, numBlocks),
	}
	for b := range numBlocks {
		slices.Reverse(members[b])
		q.states[b] = NewStateSet(members[b]...)
		q.index.Set(q.states[b], b)

		// Finals and non-finals never share a block.
		rep := representative[b]
		if t.finals.Test(uint(rep)) {
			q.finals.Set(uint(b))
		}
		row := newRow(len(t.alphabet))
		for a, dest := range t.delta[rep] {
			if dest != noMove {
				row[a] = block[dest]
			}
		}
		q.delta[b] = row
	}
	return q
}

// signature is the behaviour of a state in one refinement round: its block
// followed by the block reached on each alphabet symbol.
type signature struct {
	values   []int
	hashCode uint64
}

func newSignature(values []int) *signature {
	hashCode := uint64(len(values))
	for _, v := range values {
		hashCode = mixPhi(hashCode, uint64(v))
	}
	return &signature{values: values, hashCode: hashCode}
}

func (s *signature) Hash() uint64 {
	return s.hashCode
}

func (s *signature) Equals(other Hashable) bool {
	o, ok := other.(*signature)
	return ok && slices.Equal(s.values, o.values)
}
