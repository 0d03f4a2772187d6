package commands

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/Hakley10/convert-and-minimize/internal/definition"
)

func newImportCommand() *cobra.Command {
	var name string

	cmd := &cobra.Command{
		Use:   "import <file.yaml>",
		Short: "Store an NFA read from a YAML definition",
		Example: `  # Import an NFA and print its id
  automata import contains-bb.yaml`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			def, err := definition.Load(args[0])
			if err != nil {
				return err
			}
			if name != "" {
				def.Name = name
			}

			st, err := openStore(cmd.Context())
			if err != nil {
				return err
			}
			defer st.Close()

			id, err := st.SaveNFA(cmd.Context(), def.Name, def.NFA)
			if err != nil {
				return err
			}

			log.Info().
				Int64("id", id).
				Str("name", def.Name).
				Int("states", len(def.NFA.States)).
				Msg("Imported NFA")
			fmt.Fprintln(cmd.OutOrStdout(), id)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "store under this name instead of the one in the file")

	return cmd
}
