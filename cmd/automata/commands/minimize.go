package commands

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	automaton "github.com/Hakley10/convert-and-minimize"
	"github.com/Hakley10/convert-and-minimize/internal/render"
)

func newMinimizeCommand() *cobra.Command {
	var (
		trim    bool
		saveAs  string
		dotPath string
	)

	cmd := &cobra.Command{
		Use:   "minimize <dfa-id>",
		Short: "Minimize a stored DFA",
		Long: `Minimize a stored DFA by partition refinement.

Stored states are reloaded by their labels and treated as plain names, so
the blocks of the result are sets of those labels.`,
		Example: `  # Minimize DFA 2 and drop its trap state
  automata minimize 2 --trim --save "contains bb (min)"`,
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

			dfa, err := st.GetDFA(ctx, id)
			if err != nil {
				return err
			}

			var opts []automaton.MinimizeOption
			if trim {
				opts = append(opts, automaton.WithDeadStateRemoval())
			}
			minimal, err := automaton.MinimizeDFA(dfa, opts...)
			if err != nil {
				return fmt.Errorf("failed to minimize DFA %d: %w", id, err)
			}
			log.Info().
				Int64("dfa", id).
				Int("states_before", len(dfa.States)).
				Int("states_after", len(minimal.States)).
				Msg("Minimized DFA")

			title := fmt.Sprintf("Minimal DFA of DFA %d", id)
			if err := render.Text(cmd.OutOrStdout(), title, minimal); err != nil {
				return err
			}

			if dotPath != "" {
				written, err := writeDiagram(ctx, dotPath, title, minimal)
				if err != nil {
					return err
				}
				log.Info().Str("path", written).Msg("Wrote diagram")
			}

			if saveAs != "" {
				newID, err := st.SaveDFA(ctx, saveAs, minimal, nil)
				if err != nil {
					return err
				}
				log.Info().Int64("id", newID).Str("name", saveAs).Msg("Saved DFA")
				fmt.Fprintf(cmd.OutOrStdout(), "saved DFA %d\n", newID)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&trim, "trim", false, "also remove states that cannot reach a final state")
	cmd.Flags().StringVar(&saveAs, "save", "", "save the result under this name")
	cmd.Flags().StringVar(&dotPath, "dot", "", "draw the result to this file (.dot writes the DOT source)")

	return cmd
}
