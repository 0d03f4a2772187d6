package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	automaton "github.com/Hakley10/convert-and-minimize"
	"github.com/Hakley10/convert-and-minimize/internal/render"
)

// demoNFA accepts the strings over {a,b} that contain "bb".
func demoNFA() automaton.NFA {
	return automaton.NFA{
		States: []automaton.Name{"q0", "q1", "q2"},
		Start:  "q0",
		Finals: []automaton.Name{"q2"},
		Transitions: []automaton.Transition{
			{From: "q0", Symbol: "a", To: "q0"},
			{From: "q0", Symbol: "b", To: "q0"},
			{From: "q0", Symbol: "b", To: "q1"},
			{From: "q1", Symbol: "b", To: "q2"},
			{From: "q2", Symbol: "a", To: "q2"},
			{From: "q2", Symbol: "b", To: "q2"},
		},
	}
}

func newDemoCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Convert and minimize a built-in NFA without touching the database",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()

			dfa, err := automaton.ConvertNFAToDFA(demoNFA())
			if err != nil {
				return err
			}
			if err := render.Text(out, "DFA for strings containing bb", dfa); err != nil {
				return err
			}
			fmt.Fprintln(out)

			minimal, err := automaton.MinimizeDFA(dfa)
			if err != nil {
				return err
			}
			if err := render.Text(out, "Minimal DFA", minimal); err != nil {
				return err
			}
			fmt.Fprintln(out)

			for _, word := range []string{"bb", "abba", "abab"} {
				fmt.Fprintf(out, "%-6s %v\n", word, automaton.Run(minimal, word))
			}
			return nil
		},
	}

	return cmd
}
