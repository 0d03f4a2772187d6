package automaton

import "github.com/bits-and-blooms/bitset"

var _ Hashable = &FrozenIntSet{}

// FrozenIntSet is an immutable set of NFA state indices. Subset
// construction keys its discovered states by it.
type FrozenIntSet struct {
	values   *bitset.BitSet
	hashCode uint64
}

// NewFrozenIntSet freezes values. The caller must not modify values
// afterwards.
func NewFrozenIntSet(values *bitset.BitSet) *FrozenIntSet {
	hashCode := uint64(values.Count())
	for i, ok := values.NextSet(0); ok; i, ok = values.NextSet(i + 1) {
		hashCode += mix(int(i))
	}
	return &FrozenIntSet{values: values, hashCode: hashCode}
}

func (f *FrozenIntSet) Hash() uint64 {
	return f.hashCode
}

// Equals compares set content; the bitset lengths may differ.
func (f *FrozenIntSet) Equals(other Hashable) bool {
	o, ok := other.(*FrozenIntSet)
	if !ok {
		return false
	}
	if f == nil || o == nil {
		return f == o
	}
	return f.hashCode == o.hashCode && f.values.SymmetricDifferenceCardinality(o.values) == 0
}

// GetArray returns the members in ascending order.
func (f *FrozenIntSet) GetArray() []int {
	values := make([]int, 0, f.values.Count())
	for i, ok := f.values.NextSet(0); ok; i, ok = f.values.NextSet(i + 1) {
		values = append(values, int(i))
	}
	return values
}

func (f *FrozenIntSet) Size() int {
	return int(f.values.Count())
}
