package automaton

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStateSetEquals(t *testing.T) {
	tests := []struct {
		name     string
		a        *StateSet
		other    Hashable
		expected bool
	}{
		{"same members, different order", NewNameSet("q0", "q1", "q2"), NewNameSet("q2", "q0", "q1"), true},
		{"duplicates collapse", NewNameSet("q0", "q0", "q1"), NewNameSet("q1", "q0"), true},
		{"subset", NewNameSet("q0", "q1"), NewNameSet("q0", "q1", "q2"), false},
		{"same size, different members", NewNameSet("q0", "q1"), NewNameSet("q0", "q2"), false},
		{"both empty", NewStateSet(), NewNameSet(), true},
		{"singleton is not its member", NewNameSet("q0"), Name("q0"), false},
		{"nested", NewStateSet(NewNameSet("a", "b"), NewNameSet("c")), NewStateSet(NewNameSet("c"), NewNameSet("b", "a")), true},
		{"nested differs", NewStateSet(NewNameSet("a", "b"), NewNameSet("c")), NewStateSet(NewNameSet("a"), NewNameSet("b", "c")), false},
		{"nil other", NewNameSet("q0"), (*StateSet)(nil), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.a.Equals(tt.other))
			if tt.expected {
				assert.Equal(t, tt.a.Hash(), tt.other.Hash())
			}
		})
	}
}

func TestStateSetMembers(t *testing.T) {
	s := NewNameSet("q2", "q10", "q1")
	assert.Equal(t, 3, s.Size())
	assert.True(t, s.Contains(Name("q10")))
	assert.False(t, s.Contains(Name("q3")))
	assert.False(t, s.Contains(nil))
	assert.Equal(t, []State{Name("q1"), Name("q10"), Name("q2")}, s.Members())

	var empty *StateSet
	assert.Equal(t, 0, empty.Size())
	assert.Nil(t, empty.Members())
}

func TestLabel(t *testing.T) {
	tests := []struct {
		name  string
		state State
		want  string
	}{
		{"plain name", Name("q0"), "q0"},
		{"empty set", NewStateSet(), "{}"},
		{"sorted members", NewNameSet("q2", "q0", "q1"), "{q0,q1,q2}"},
		{"nested", NewStateSet(NewNameSet("q2"), NewNameSet("q1", "q0")), "{{q0,q1},{q2}}"},
		{"nested empty", NewStateSet(NewStateSet()), "{{}}"},
		{"reserved characters", Name(`a,{b}\`), `a\,\{b\}\\`},
		{"empty name", NewNameSet(""), `{\_}`},
		{"nil", nil, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Label(tt.state))
		})
	}
}

func TestLabelInjective(t *testing.T) {
	pairs := []struct {
		name string
		a, b State
	}{
		{"comma in name", NewNameSet("a,b"), NewNameSet("a", "b")},
		{"braces in name", NewNameSet("{}"), NewStateSet(NewStateSet())},
		{"empty name vs empty set", NewNameSet(""), NewStateSet()},
		{"escape sequence as name", NewNameSet(`\_`), NewNameSet("")},
		{"label of a set as name", Name("{q0,q1}"), NewNameSet("q0", "q1")},
		{"flat vs nested", NewNameSet("q0", "q1"), NewStateSet(NewNameSet("q0", "q1"))},
		{"grouping", NewStateSet(NewNameSet("a", "b"), NewNameSet("c")), NewStateSet(NewNameSet("a"), NewNameSet("b", "c"))},
	}

	for _, tt := range pairs {
		t.Run(tt.name, func(t *testing.T) {
			assert.False(t, tt.a.Equals(tt.b))
			assert.NotEqual(t, Label(tt.a), Label(tt.b))
		})
	}
}

func TestLabelOrderIndependent(t *testing.T) {
	names := []Name{"q0", "q1", "q2", "q3", "x", "y,z", "{w}"}
	want := Label(NewNameSet(names...))

	r := rand.New(rand.NewPCG(7, 11))
	for i := 0; i < 20; i++ {
		shuffled := append([]Name{}, names...)
		r.Shuffle(len(shuffled), func(i, j int) { shuffled[i], shuffled[j] = shuffled[j], shuffled[i] })
		assert.Equal(t, want, Label(NewNameSet(shuffled...)))
	}
}
