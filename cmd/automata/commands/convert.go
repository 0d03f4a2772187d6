package commands

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	automaton "github.com/Hakley10/convert-and-minimize"
	"github.com/Hakley10/convert-and-minimize/internal/render"
)

func newConvertCommand() *cobra.Command {
	var (
		minimize bool
		saveAs   string
		dotPath  string
	)

	cmd := &cobra.Command{
		Use:   "convert <nfa-id>",
		Short: "Convert a stored NFA to a DFA",
		Long: `Convert a stored NFA to an equivalent DFA by subset construction.

Each DFA state is the set of NFA states it stands for. With --minimize the
DFA is also reduced to its minimal form.`,
		Example: `  # Convert, minimize and save the result
  automata convert 1 --minimize --save "contains bb"

  # Also draw it
  automata convert 1 --dot contains-bb.png`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			st, err := openStore(ctx)
			if err != nil {
				return err
			}
			defer st.Close()

			nfa, err := st.GetNFA(ctx, id)
			if err != nil {
				return err
			}

			dfa, err := automaton.ConvertNFAToDFA(nfa)
			if err != nil {
				return fmt.Errorf("failed to convert NFA %d: %w", id, err)
			}
			log.Info().
				Int64("nfa", id).
				Int("nfa_states", len(nfa.States)).
				Int("dfa_states", len(dfa.States)).
				Msg("Converted NFA")

			title := fmt.Sprintf("DFA from NFA %d", id)
			if minimize {
				dfa, err = automaton.MinimizeDFA(dfa)
				if err != nil {
					return fmt.Errorf("failed to minimize: %w", err)
				}
				log.Info().Int("dfa_states", len(dfa.States)).Msg("Minimized DFA")
				title = fmt.Sprintf("Minimal DFA from NFA %d", id)
			}

			if err := render.Text(cmd.OutOrStdout(), title, dfa); err != nil {
				return err
			}

			if dotPath != "" {
				written, err := writeDiagram(ctx, dotPath, title, dfa)
				if err != nil {
					return err
				}
				log.Info().Str("path", written).Msg("Wrote diagram")
			}

			if saveAs != "" {
				dfaID, err := st.SaveDFA(ctx, saveAs, dfa, &id)
				if err != nil {
					return err
				}
				log.Info().Int64("id", dfaID).Str("name", saveAs).Msg("Saved DFA")
				fmt.Fprintf(cmd.OutOrStdout(), "saved DFA %d\n", dfaID)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&minimize, "minimize", false, "minimize the converted DFA")
	cmd.Flags().StringVar(&saveAs, "save", "", "save the result under this name")
	cmd.Flags().StringVar(&dotPath, "dot", "", "draw the result to this file (.dot writes the DOT source)")

	return cmd
}
