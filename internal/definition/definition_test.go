package definition

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	automaton "github.com/Hakley10/convert-and-minimize"
)

const containsBB = `
name: contains bb
states: [q0, q1, q2]
start: q0
finals: [q2]
transitions:
  - {from: q0, symbol: a, to: q0}
  - {from: q0, symbol: b, to: q0}
  - {from: q0, symbol: b, to: q1}
  - {from: q1, symbol: b, to: q2}
  - {from: q2, symbol: a, to: q2}
  - {from: q2, symbol: b, to: q2}
`

func TestParse(t *testing.T) {
	def, err := Parse([]byte(containsBB))
	require.NoError(t, err)

	assert.Equal(t, "contains bb", def.Name)
	assert.Equal(t, []automaton.Name{"q0", "q1", "q2"}, def.NFA.States)
	assert.Equal(t, automaton.Name("q0"), def.NFA.Start)
	assert.Equal(t, []automaton.Name{"q2"}, def.NFA.Finals)
	require.Len(t, def.NFA.Transitions, 6)
	assert.Equal(t, automaton.Transition{From: "q0", Symbol: "b", To: "q1"}, def.NFA.Transitions[2])
	assert.True(t, def.NFA.Accepts(automaton.Symbols("abba")))
}

func TestParse_Epsilon(t *testing.T) {
	for _, alias := range []string{"eps", "epsilon", "ε"} {
		t.Run(alias, func(t *testing.T) {
			src := `
name: chain
states: [s0, s1]
start: s0
finals: [s1]
transitions:
  - {from: s0, symbol: ` + alias + `, to: s1}
`
			def, err := Parse([]byte(src))
			require.NoError(t, err)
			assert.Equal(t, automaton.Epsilon, def.NFA.Transitions[0].Symbol)
			assert.True(t, def.NFA.Accepts(nil))
		})
	}
}

func TestParse_Invalid(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"not yaml", "name: [unclosed"},
		{"missing name", "states: [q0]\nstart: q0\n"},
		{"no states", "name: x\nstates: []\nstart: q0\n"},
		{"missing start", "name: x\nstates: [q0]\n"},
		{"empty symbol", "name: x\nstates: [q0]\nstart: q0\ntransitions:\n  - {from: q0, to: q0}\n"},
		{"unknown start", "name: x\nstates: [q0]\nstart: q9\n"},
		{"unknown target", "name: x\nstates: [q0]\nstart: q0\ntransitions:\n  - {from: q0, symbol: a, to: q7}\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.src))
			assert.ErrorIs(t, err, ErrInvalidDefinition)
		})
	}

	t.Run("structural errors keep their cause", func(t *testing.T) {
		_, err := Parse([]byte("name: x\nstates: [q0]\nstart: q9\n"))
		assert.ErrorIs(t, err, automaton.ErrInvalidAutomaton)
	})
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bb.yaml")
	require.NoError(t, os.WriteFile(path, []byte(containsBB), 0o644))

	def, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "contains bb", def.Name)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
