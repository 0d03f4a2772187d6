package commands

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/Hakley10/convert-and-minimize/internal/render"
)

func newShowCommand() *cobra.Command {
	var dotPath string

	cmd := &cobra.Command{
		Use:   "show <dfa-id>",
		Short: "Print a stored DFA",
		Args:  cobra.ExactArgs(1),
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

			title := fmt.Sprintf("DFA %d", id)
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
			return nil
		},
	}

	cmd.Flags().StringVar(&dotPath, "dot", "", "draw the DFA to this file (.dot writes the DOT source)")

	return cmd
}
