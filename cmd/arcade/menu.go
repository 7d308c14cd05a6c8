package main

import (
	"github.com/spf13/cobra"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Open the cabinet menu (the default command)",
	Long: `Open the game picker. Finished games come back here, so one session
can run through the whole cabinet.

  up/down, j/k   move
  enter, space   pick a game
  tab, t         high scores
  q              quit

Running 'arcade' with no command does the same.

Examples:
  arcade menu --mono
  arcade menu --scores file --scores-dir ./scores`,
	Args: cobra.NoArgs,
	RunE: runMenu,
}

func runMenu(_ *cobra.Command, _ []string) error {
	return runShell("")
}
