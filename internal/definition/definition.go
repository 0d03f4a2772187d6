// Package definition reads NFA descriptions from YAML files.
//
//	name: contains bb
//	states: [q0, q1, q2]
//	start: q0
//	finals: [q2]
//	transitions:
//	  - {from: q0, symbol: a, to: q0}
//	  - {from: q0, symbol: eps, to: q1}
//
// The symbols eps, epsilon and ε denote an epsilon move.
package definition

import (
	"errors"
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	automaton "github.com/Hakley10/convert-and-minimize"
)

// ErrInvalidDefinition wraps every decoding and validation failure.
var ErrInvalidDefinition = errors.New("invalid definition")

var epsilonAliases = map[string]bool{
	"eps":                     true,
	"epsilon":                 true,
	string(automaton.Epsilon): true,
}

// Definition is a named NFA.
type Definition struct {
	Name string
	NFA  automaton.NFA
}

type yamlNFA struct {
	Name        string           `yaml:"name" validate:"required"`
	States      []string         `yaml:"states" validate:"required,min=1,dive,required"`
	Start       string           `yaml:"start" validate:"required"`
	Finals      []string         `yaml:"finals" validate:"dive,required"`
	Transitions []yamlTransition `yaml:"transitions" validate:"dive"`
}

type yamlTransition struct {
	From   string `yaml:"from" validate:"required"`
	Symbol string `yaml:"symbol" validate:"required"`
	To     string `yaml:"to" validate:"required"`
}

var validate = validator.New()

// Load reads and parses the definition file at path.
func Load(path string) (Definition, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return Definition{}, fmt.Errorf("failed to read definition %s: %w", path, err)
	}
	def, err := Parse(b)
	if err != nil {
		return Definition{}, fmt.Errorf("%s: %w", path, err)
	}
	return def, nil
}

// Parse decodes a YAML definition and checks that it describes a well-formed
// NFA.
func Parse(b []byte) (Definition, error) {
	var y yamlNFA
	if err := yaml.Unmarshal(b, &y); err != nil {
		return Definition{}, fmt.Errorf("%w: %w", ErrInvalidDefinition, err)
	}
	if err := validate.Struct(y); err != nil {
		return Definition{}, fmt.Errorf("%w: %w", ErrInvalidDefinition, err)
	}

	def := toDefinition(y)
	if err := automaton.ValidateNFA(def.NFA); err != nil {
		return Definition{}, fmt.Errorf("%w: %w", ErrInvalidDefinition, err)
	}
	return def, nil
}

func toDefinition(y yamlNFA) Definition {
	nfa := automaton.NFA{
		States:      make([]automaton.Name, len(y.States)),
		Start:       automaton.Name(y.Start),
		Finals:      make([]automaton.Name, len(y.Finals)),
		Transitions: make([]automaton.Transition, len(y.Transitions)),
	}
	for i, s := range y.States {
		nfa.States[i] = automaton.Name(s)
	}
	for i, s := range y.Finals {
		nfa.Finals[i] = automaton.Name(s)
	}
	for i, t := range y.Transitions {
		symbol := automaton.Symbol(t.Symbol)
		if epsilonAliases[t.Symbol] {
			symbol = automaton.Epsilon
		}
		nfa.Transitions[i] = automaton.Transition{
			From:   automaton.Name(t.From),
			Symbol: symbol,
			To:     automaton.Name(t.To),
		}
	}
	return Definition{Name: y.Name, NFA: nfa}
}
