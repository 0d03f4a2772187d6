package automaton

import (
	"slices"
	"strings"
	"sync"

	"github.com/cespare/xxhash/v2"
)

// State is a DFA state. Plain identifiers are Names; the states built by
// subset construction and minimization are *StateSet values, compared by
// the set of states they summarize rather than by how they were found.
type State interface {
	Hashable

	// canonical returns the label described on Label.
	canonical() string
}

var (
	_ State = Name("")
	_ State = &StateSet{}
)

// Name is a plain state identifier.
type Name string

func (n Name) Hash() uint64 {
	return xxhash.Sum64String(string(n))
}

func (n Name) Equals(other Hashable) bool {
	o, ok := other.(Name)
	return ok && o == n
}

func (n Name) String() string {
	return string(n)
}

func (n Name) canonical() string {
	if n == "" {
		return emptyNameLabel
	}
	return labelEscaper.Replace(string(n))
}

// StateSet is an immutable, order-independent set of states. A StateSet
// may contain other StateSets, which is how minimization of a converted
// DFA yields sets of sets.
type StateSet struct {
	members  []State
	lookup   *HashMap[State, struct{}]
	hashCode uint64

	labelOnce sync.Once
	label     string
}

// NewStateSet freezes the given states into a set. Duplicates (by Equals)
// collapse; nil states, including nil *StateSet values, are ignored.
func NewStateSet(states ...State) *StateSet {
	s := &StateSet{
		members: make([]State, 0, len(states)),
		lookup:  NewHashMap[State, struct{}](WithCapacity(len(states))),
	}
	for _, state := range states {
		if isNil(state) {
			continue
		}
		if _, ok := s.lookup.Get(state); ok {
			continue
		}
		s.lookup.Set(state, struct{}{})
		s.members = append(s.members, state)
	}

	// Same members always give the same hashCode, whatever the order.
	s.hashCode = uint64(len(s.members))
	for _, state := range s.members {
		s.hashCode += mix64(state.Hash())
	}
	return s
}

// NewNameSet is NewStateSet for plain identifiers.
func NewNameSet(names ...Name) *StateSet {
	states := make([]State, len(names))
	for i, name := range names {
		states[i] = name
	}
	return NewStateSet(states...)
}

func (s *StateSet) Hash() uint64 {
	if s == nil {
		return 0
	}
	return s.hashCode
}

// isNil reports whether state is nil or a nil *StateSet.
func isNil(state State) bool {
	if state == nil {
		return true
	}
	set, ok := state.(*StateSet)
	return ok && set == nil
}

func (s *StateSet) Equals(other Hashable) bool {
	o, ok := other.(*StateSet)
	if !ok {
		return false
	}
	if s == o {
		return true
	}
	if s == nil || o == nil {
		return false
	}
	if s.hashCode != o.hashCode || len(s.members) != len(o.members) {
		return false
	}
	for _, state := range o.members {
		if !s.Contains(state) {
			return false
		}
	}
	return true
}

// Contains reports whether state is a member of s.
func (s *StateSet) Contains(state State) bool {
	if s == nil || isNil(state) {
		return false
	}
	_, ok := s.lookup.Get(state)
	return ok
}

func (s *StateSet) Size() int {
	if s == nil {
		return 0
	}
	return len(s.members)
}

// Members returns the members ordered by their canonical label.
func (s *StateSet) Members() []State {
	if s == nil {
		return nil
	}
	members := slices.Clone(s.members)
	slices.SortFunc(members, func(a, b State) int {
		return strings.Compare(a.canonical(), b.canonical())
	})
	return members
}

func (s *StateSet) String() string {
	return Label(s)
}

func (s *StateSet) canonical() string {
	if s == nil {
		return emptySetLabel
	}
	s.labelOnce.Do(func() {
		labels := make([]string, len(s.members))
		for i, state := range s.members {
			labels[i] = state.canonical()
		}
		slices.Sort(labels)
		s.label = "{" + strings.Join(labels, ",") + "}"
	})
	return s.label
}
