package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/retro-arcade/internal/registry"
)

var flagLong bool

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the games in the cabinet",
	Long: `Print the id and title of every registered game. The id is what
'arcade play' and 'arcade scores' take.

With --long the first instruction line of each game is shown too.`,
	Args: cobra.NoArgs,
	RunE: runList,
}

func init() {
	listCmd.Flags().BoolVarP(&flagLong, "long", "l", false, "Show a one-line summary of each game")
}

func runList(cmd *cobra.Command, _ []string) error {
	out := cmd.OutOrStdout()
	games := registry.List()
	if len(games) == 0 {
		fmt.Fprintln(out, "The cabinet is empty.")
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	if flagLong {
		fmt.Fprintln(w, "  ID\tTITLE\tSUMMARY")
	} else {
		fmt.Fprintln(w, "  ID\tTITLE")
	}
	for _, g := range games {
		if flagLong {
			fmt.Fprintf(w, "  %s\t%s\t%s\n", g.ID, g.Title, summary(g))
			continue
		}
		fmt.Fprintf(w, "  %s\t%s\n", g.ID, g.Title)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	fmt.Fprintf(out, "\n%d games. Start one with 'arcade play <id>'.\n", len(games))
	return nil
}

func summary(g registry.GameInfo) string {
	if len(g.Instructions) == 0 {
		return "-"
	}
	return g.Instructions[0]
}
