package automaton

import (
	"errors"
	"fmt"
	"testing"

	"github.com/hashicorp/go-multierror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var defaultAutomata = &Automata{}

// containsBB accepts the strings over {a,b} that contain "bb".
func containsBB() NFA {
	return NFA{
		States: []Name{"q0", "q1", "q2"},
		Start:  "q0",
		Finals: []Name{"q2"},
		Transitions: []Transition{
			{From: "q0", Symbol: "a", To: "q0"},
			{From: "q0", Symbol: "b", To: "q0"},
			{From: "q0", Symbol: "b", To: "q1"},
			{From: "q1", Symbol: "b", To: "q2"},
			{From: "q2", Symbol: "a", To: "q2"},
			{From: "q2", Symbol: "b", To: "q2"},
		},
	}
}

// epsilonChain is an epsilon chain s0 -> s1 -> s2 with b self-loops.
func epsilonChain() NFA {
	return NFA{
		States: []Name{"s0", "s1", "s2"},
		Start:  "s0",
		Finals: []Name{"s2"},
		Transitions: []Transition{
			{From: "s0", Symbol: Epsilon, To: "s1"},
			{From: "s1", Symbol: Epsilon, To: "s2"},
			{From: "s0", Symbol: "b", To: "s0"},
			{From: "s1", Symbol: "b", To: "s1"},
			{From: "s2", Symbol: "b", To: "s2"},
		},
	}
}

// words returns every word over alphabet of length at most maxLen,
// including the empty word.
func words(alphabet []Symbol, maxLen int) [][]Symbol {
	all := [][]Symbol{{}}
	frontier := [][]Symbol{{}}
	for n := 0; n < maxLen; n++ {
		next := make([][]Symbol, 0, len(frontier)*len(alphabet))
		for _, w := range frontier {
			for _, symbol := range alphabet {
				word := append(append([]Symbol{}, w...), symbol)
				next = append(next, word)
			}
		}
		all = append(all, next...)
		frontier = next
	}
	return all
}

func assertSameLanguage(t *testing.T, alphabet []Symbol, maxLen int, want, got func([]Symbol) bool) {
	t.Helper()
	for _, w := range words(alphabet, maxLen) {
		assert.Equalf(t, want(w), got(w), "word %q", w)
	}
}

// assertDeterministic checks that no state has two moves on one symbol.
func assertDeterministic(t *testing.T, d DFA) {
	t.Helper()
	seen := make(map[string]bool)
	for _, tr := range d.Transitions {
		key := Label(tr.From) + "\x00" + string(tr.Symbol)
		assert.Falsef(t, seen[key], "state %s has two moves on %q", Label(tr.From), tr.Symbol)
		seen[key] = true
	}
}

// isomorphic reports whether a and b are equal up to a renaming of states.
func isomorphic(t *testing.T, a, b DFA) bool {
	t.Helper()
	ra, err := NewRunAutomaton(a)
	require.NoError(t, err)
	rb, err := NewRunAutomaton(b)
	require.NoError(t, err)

	if len(ra.table.states) != len(rb.table.states) {
		return false
	}
	if fmt.Sprint(ra.table.alphabet) != fmt.Sprint(rb.table.alphabet) {
		return false
	}

	mapping := map[int]int{ra.Initial(): rb.Initial()}
	workList := []int{ra.Initial()}
	for len(workList) > 0 {
		p := workList[0]
		workList = workList[1:]
		q := mapping[p]
		if ra.IsAccept(p) != rb.IsAccept(q) {
			return false
		}
		for _, symbol := range ra.table.alphabet {
			np, nq := ra.Step(p, symbol), rb.Step(q, symbol)
			if (np == noMove) != (nq == noMove) {
				return false
			}
			if np == noMove {
				continue
			}
			if mapped, ok := mapping[np]; ok {
				if mapped != nq {
					return false
				}
				continue
			}
			mapping[np] = nq
			workList = append(workList, np)
		}
	}
	return len(mapping) == len(ra.table.states)
}

// describe renders d through labels so records can be compared by value.
func describe(d DFA) []string {
	lines := []string{"start " + Label(d.Start)}
	for _, s := range d.States {
		lines = append(lines, "state "+Label(s))
	}
	for _, s := range d.Finals {
		lines = append(lines, "final "+Label(s))
	}
	for _, tr := range d.Transitions {
		lines = append(lines, fmt.Sprintf("%s -%s-> %s", Label(tr.From), tr.Symbol, Label(tr.To)))
	}
	return lines
}

func TestCompileNFA(t *testing.T) {
	t.Run("empty state set", func(t *testing.T) {
		_, err := compileNFA(NFA{Start: "q0"})
		assert.ErrorIs(t, err, ErrEmptyInput)
	})

	t.Run("start not in states", func(t *testing.T) {
		_, err := compileNFA(NFA{States: []Name{"q0"}, Start: "q9"})
		assert.ErrorIs(t, err, ErrInvalidAutomaton)
		assert.Contains(t, err.Error(), `"q9"`)
	})

	t.Run("final not in states", func(t *testing.T) {
		_, err := compileNFA(NFA{States: []Name{"q0"}, Start: "q0", Finals: []Name{"qf"}})
		assert.ErrorIs(t, err, ErrInvalidAutomaton)
	})

	t.Run("transition endpoints", func(t *testing.T) {
		_, err := compileNFA(NFA{
			States:      []Name{"q0"},
			Start:       "q0",
			Transitions: []Transition{{From: "x", Symbol: "a", To: "y"}},
		})
		require.ErrorIs(t, err, ErrInvalidAutomaton)

		var merr *multierror.Error
		require.True(t, errors.As(err, &merr))
		assert.Len(t, merr.Errors, 2)
	})

	t.Run("empty symbol", func(t *testing.T) {
		_, err := compileNFA(NFA{
			States:      []Name{"q0"},
			Start:       "q0",
			Transitions: []Transition{{From: "q0", To: "q0"}},
		})
		assert.ErrorIs(t, err, ErrInvalidAutomaton)
	})

	t.Run("duplicate states collapse", func(t *testing.T) {
		table, err := compileNFA(NFA{
			States: []Name{"q1", "q0", "q1"},
			Start:  "q0",
			Finals: []Name{"q1"},
			Transitions: []Transition{
				{From: "q0", Symbol: "a", To: "q1"},
				{From: "q0", Symbol: "a", To: "q0"},
				{From: "q0", Symbol: Epsilon, To: "q1"},
			},
		})
		require.NoError(t, err)
		assert.Equal(t, []Name{"q0", "q1"}, table.names)
		assert.Equal(t, []Symbol{"a"}, table.alphabet)
		assert.Equal(t, uint(2), table.moves[0]["a"].Count())
	})
}

func TestCompileDFA(t *testing.T) {
	valid := DFA{
		States: []State{Name("p"), Name("q")},
		Start:  Name("p"),
		Finals: []State{Name("q")},
		Transitions: []DFATransition{
			{From: Name("p"), Symbol: "a", To: Name("q")},
			{From: Name("q"), Symbol: "a", To: Name("q")},
		},
	}

	t.Run("valid", func(t *testing.T) {
		table, err := compileDFA(valid)
		require.NoError(t, err)
		assert.Equal(t, 0, table.start)
		assert.Equal(t, [][]int{{1}, {1}}, table.delta)
	})

	t.Run("empty state set", func(t *testing.T) {
		_, err := compileDFA(DFA{})
		assert.ErrorIs(t, err, ErrEmptyInput)
	})

	tests := []struct {
		name   string
		mutate func(d *DFA)
	}{
		{"nil start", func(d *DFA) { d.Start = nil }},
		{"unknown start", func(d *DFA) { d.Start = Name("z") }},
		{"unknown final", func(d *DFA) { d.Finals = []State{Name("z")} }},
		{"unknown target", func(d *DFA) {
			d.Transitions = append(d.Transitions, DFATransition{From: Name("p"), Symbol: "b", To: Name("z")})
		}},
		{"two targets", func(d *DFA) {
			d.Transitions = append(d.Transitions, DFATransition{From: Name("p"), Symbol: "a", To: Name("p")})
		}},
		{"epsilon move", func(d *DFA) {
			d.Transitions = append(d.Transitions, DFATransition{From: Name("p"), Symbol: Epsilon, To: Name("q")})
		}},
		{"empty name", func(d *DFA) { d.States = append(d.States, Name("")) }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := valid
			d.States = append([]State{}, valid.States...)
			d.Finals = append([]State{}, valid.Finals...)
			d.Transitions = append([]DFATransition{}, valid.Transitions...)
			tt.mutate(&d)

			_, err := compileDFA(d)
			assert.ErrorIs(t, err, ErrInvalidAutomaton)
		})
	}

	t.Run("repeated identical transition", func(t *testing.T) {
		d := valid
		d.Transitions = append(append([]DFATransition{}, valid.Transitions...), valid.Transitions[0])
		_, err := compileDFA(d)
		assert.NoError(t, err)
	})

	t.Run("composite states", func(t *testing.T) {
		a, b := NewNameSet("q0", "q1"), NewNameSet("q2")
		table, err := compileDFA(DFA{
			States:      []State{a, b},
			Start:       NewNameSet("q1", "q0"),
			Transitions: []DFATransition{{From: NewNameSet("q1", "q0"), Symbol: "x", To: NewNameSet("q2")}},
		})
		require.NoError(t, err)
		assert.Equal(t, 0, table.start)
		assert.Equal(t, [][]int{{1}, {noMove}}, table.delta)
	})
}

func TestValidate(t *testing.T) {
	assert.NoError(t, ValidateNFA(containsBB()))
	assert.ErrorIs(t, ValidateNFA(NFA{}), ErrEmptyInput)

	bad := containsBB()
	bad.Finals = append(bad.Finals, "nowhere")
	assert.ErrorIs(t, ValidateNFA(bad), ErrInvalidAutomaton)

	dfa, err := ConvertNFAToDFA(containsBB())
	require.NoError(t, err)
	assert.NoError(t, ValidateDFA(dfa))
	assert.ErrorIs(t, ValidateDFA(DFA{}), ErrEmptyInput)

	t.Run("nil state sets", func(t *testing.T) {
		var missing *StateSet
		withNil := DFA{
			States: []State{Name("a"), missing},
			Start:  Name("a"),
		}
		assert.ErrorIs(t, ValidateDFA(withNil), ErrInvalidAutomaton)
		_, err := MinimizeDFA(withNil)
		assert.ErrorIs(t, err, ErrInvalidAutomaton)

		nilStart := DFA{States: []State{Name("a")}, Start: missing}
		assert.ErrorIs(t, ValidateDFA(nilStart), ErrInvalidAutomaton)

		nilTarget := DFA{
			States:      []State{Name("a")},
			Start:       Name("a"),
			Transitions: []DFATransition{{From: Name("a"), Symbol: "x", To: missing}},
		}
		assert.ErrorIs(t, ValidateDFA(nilTarget), ErrInvalidAutomaton)

		assert.Equal(t, 1, NewStateSet(Name("a"), missing).Size())
		assert.False(t, NewNameSet("a").Contains(missing))
	})
}
