package render

import (
	"fmt"
	"slices"
	"strings"

	automaton "github.com/Hakley10/convert-and-minimize"
)

var dotEscaper = strings.NewReplacer(`\`, `\\`, `"`, `\"`)

func dotQuote(s string) string {
	return `"` + dotEscaper.Replace(s) + `"`
}

// DOT returns a Graphviz description of dfa. Nodes are named by their
// canonical labels; final states are drawn as double circles and an
// invisible point marks the start.
func DOT(name string, dfa automaton.DFA) string {
	finals := make(map[string]bool, len(dfa.Finals))
	for _, f := range dfa.Finals {
		finals[automaton.Label(f)] = true
	}

	labels := make([]string, 0, len(dfa.States))
	for _, s := range dfa.States {
		labels = append(labels, automaton.Label(s))
	}
	slices.Sort(labels)

	var sb strings.Builder
	fmt.Fprintf(&sb, "digraph %s {\n", dotQuote(name))
	sb.WriteString("  rankdir=LR;\n")
	sb.WriteString("  node [shape=circle];\n")
	sb.WriteString("\n")

	sb.WriteString("  __start [shape=point, style=invis];\n")
	fmt.Fprintf(&sb, "  __start -> %s;\n", dotQuote(automaton.Label(dfa.Start)))
	sb.WriteString("\n")

	for _, label := range labels {
		if finals[label] {
			fmt.Fprintf(&sb, "  %s [shape=doublecircle];\n", dotQuote(label))
		} else {
			fmt.Fprintf(&sb, "  %s;\n", dotQuote(label))
		}
	}
	sb.WriteString("\n")

	for _, e := range sortedTransitions(dfa.Transitions) {
		fmt.Fprintf(&sb, "  %s -> %s [label=%s];\n", dotQuote(e.from), dotQuote(e.to), dotQuote(e.symbol))
	}

	sb.WriteString("}\n")
	return sb.String()
}
