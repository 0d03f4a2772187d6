package commands

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/Hakley10/convert-and-minimize/internal/store"
)

func newListCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:       "list [nfa|dfa]",
		Short:     "List stored automata",
		Args:      cobra.MatchAll(cobra.MaximumNArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{"nfa", "dfa"},
		RunE: func(cmd *cobra.Command, args []string) error {
			kind := ""
			if len(args) > 0 {
				kind = args[0]
			}

			st, err := openStore(cmd.Context())
			if err != nil {
				return err
			}
			defer st.Close()

			out := cmd.OutOrStdout()
			if kind != "dfa" {
				nfas, err := st.ListNFAs(cmd.Context())
				if err != nil {
					return err
				}
				printSummaries(out, "NFAs", nfas)
			}
			if kind != "nfa" {
				dfas, err := st.ListDFAs(cmd.Context())
				if err != nil {
					return err
				}
				printSummaries(out, "DFAs", dfas)
			}
			return nil
		},
	}

	return cmd
}

func printSummaries(w io.Writer, title string, summaries []store.Summary) {
	fmt.Fprintf(w, "%s:\n", title)
	if len(summaries) == 0 {
		fmt.Fprintln(w, "  (none)")
		return
	}
	for _, s := range summaries {
		if s.SourceNFA != nil {
			fmt.Fprintf(w, "  %d\t%s\t(from NFA %d)\n", s.ID, s.Name, *s.SourceNFA)
			continue
		}
		fmt.Fprintf(w, "  %d\t%s\n", s.ID, s.Name)
	}
}
