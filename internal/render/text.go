// Package render displays DFA records as styled text and as Graphviz
// diagrams. Rendering never changes the record.
package render

import (
	"cmp"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/charmbracelet/lipgloss"

	automaton "github.com/Hakley10/convert-and-minimize"
)

type styles struct {
	title lipgloss.Style
	key   lipgloss.Style
	state lipgloss.Style
	final lipgloss.Style
	arrow lipgloss.Style
}

// newStyles binds the styles to w, so colours are dropped when w is not a
// terminal.
func newStyles(w io.Writer) styles {
	r := lipgloss.NewRenderer(w)
	return styles{
		title: r.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#333333", Dark: "#FFFFFF"}).
			Bold(true),
		key: r.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#666666", Dark: "#888888"}),
		state: r.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#0066CC", Dark: "#5599FF"}),
		final: r.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#008000", Dark: "#55FF55"}).
			Bold(true),
		arrow: r.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#666666", Dark: "#888888"}),
	}
}

// Text writes a human-readable listing of dfa to w: start state, final
// states, all states and the transitions sorted by source label then
// symbol.
func Text(w io.Writer, title string, dfa automaton.DFA) error {
	st := newStyles(w)

	finals := make(map[string]bool, len(dfa.Finals))
	finalLabels := make([]string, 0, len(dfa.Finals))
	for _, f := range dfa.Finals {
		label := automaton.Label(f)
		finals[label] = true
		finalLabels = append(finalLabels, label)
	}
	slices.Sort(finalLabels)

	stateLabels := make([]string, 0, len(dfa.States))
	for _, s := range dfa.States {
		stateLabels = append(stateLabels, automaton.Label(s))
	}
	slices.Sort(stateLabels)

	styleState := func(label string) string {
		if finals[label] {
			return st.final.Render(label)
		}
		return st.state.Render(label)
	}

	var b strings.Builder
	b.WriteString(st.title.Render(title))
	b.WriteString("\n")
	fmt.Fprintf(&b, "  %s %s\n", st.key.Render("start: "), styleState(automaton.Label(dfa.Start)))
	fmt.Fprintf(&b, "  %s %s\n", st.key.Render("finals:"), joinStyled(finalLabels, styleState))
	fmt.Fprintf(&b, "  %s %s\n", st.key.Render("states:"), joinStyled(stateLabels, styleState))
	fmt.Fprintf(&b, "  %s\n", st.key.Render("transitions:"))

	for _, t := range sortedTransitions(dfa.Transitions) {
		fmt.Fprintf(&b, "    %s %s %s %s %s\n",
			styleState(t.from), st.arrow.Render("--"), t.symbol, st.arrow.Render("-->"), styleState(t.to))
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func joinStyled(labels []string, style func(string) string) string {
	if len(labels) == 0 {
		return "(none)"
	}
	styled := make([]string, len(labels))
	for i, label := range labels {
		styled[i] = style(label)
	}
	return strings.Join(styled, ", ")
}

type edge struct {
	from, symbol, to string
}

func sortedTransitions(transitions []automaton.DFATransition) []edge {
	edges := make([]edge, len(transitions))
	for i, t := range transitions {
		edges[i] = edge{from: automaton.Label(t.From), symbol: string(t.Symbol), to: automaton.Label(t.To)}
	}
	slices.SortFunc(edges, func(a, b edge) int {
		return cmp.Or(strings.Compare(a.from, b.from), strings.Compare(a.symbol, b.symbol))
	})
	return edges
}
