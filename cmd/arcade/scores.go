package main

import (
	"errors"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/retro-arcade/internal/platform/tui"
	"github.com/vovakirdan/retro-arcade/internal/registry"
	"github.com/vovakirdan/retro-arcade/internal/scores"
	"github.com/vovakirdan/retro-arcade/internal/storage"
)

var (
	flagClear  bool
	flagRecent int
)

var scoresCmd = &cobra.Command{
	Use:   "scores [game]",
	Short: "Show high scores for a game",
	Long: `Display the top 10 high scores for the specified game, or the best
score of every game when no game is given. With the sqlite backend the
play statistics are shown as well.

Examples:
  arcade scores
  arcade scores snake
  arcade scores tetris --recent 5
  arcade scores pong --clear`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete the high scores and play history of the game")
	scoresCmd.Flags().IntVar(&flagRecent, "recent", 0, "Also list this many recent plays")
}

func runScores(cmd *cobra.Command, args []string) error {
	logger, closeLog, err := newLogger(appCfg, false)
	if err != nil {
		return err
	}
	defer closeLog()

	deps, closeDeps, err := openDeps(appCfg, logger)
	if err != nil {
		return fmt.Errorf("cannot open scores: %w", err)
	}
	defer closeDeps()

	if len(args) == 0 {
		if flagClear {
			return errors.New("--clear needs a game")
		}
		return printSummary(deps)
	}

	gameID := args[0]
	info, ok := registry.Info(gameID)
	if !ok {
		return fmt.Errorf("unknown game %q (run 'arcade list' to see available games)", gameID)
	}

	if flagClear {
		deps.Scores.Clear(gameID)
		if st, ok := deps.History.(*storage.Store); ok {
			if err := st.ClearPlays(gameID); err != nil {
				return err
			}
		}
		fmt.Printf("Cleared scores for %s.\n", info.Title)
		return nil
	}

	return printGame(deps, info)
}

// summaryRow is one line of the all-games summary.
type summaryRow struct {
	id, title string
	installed bool
}

// summaryRows lists every registered game, then any leaderboard id with
// entries but no registered game, such as one carried over from an older
// scores document.
func summaryRows(board *scores.Store) []summaryRow {
	var rows []summaryRow
	seen := make(map[string]bool)
	for _, g := range registry.List() {
		rows = append(rows, summaryRow{id: g.ID, title: g.Title, installed: true})
		seen[g.ID] = true
	}
	for _, id := range board.Games() {
		if !seen[id] {
			rows = append(rows, summaryRow{id: id, title: id + " (not installed)"})
		}
	}
	return rows
}

// printSummary prints the best entry and play count of every game.
func printSummary(deps tui.Deps) error {
	var stats map[string]storage.GameStats
	if st, ok := deps.History.(*storage.Store); ok {
		all, err := st.AllStats()
		if err != nil {
			return err
		}
		stats = all
	}

	fmt.Println("High Scores")
	fmt.Println()

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "  Game\tBest\tName\tPlays")
	fmt.Fprintln(w, "  ----\t----\t----\t-----")
	for _, r := range summaryRows(deps.Scores) {
		best, name := "-", "-"
		if e, ok := deps.Scores.Best(r.id); ok {
			best, name = humanize.Comma(int64(e.Score)), e.Name
		}
		plays := "-"
		if s, ok := stats[r.id]; ok {
			plays = humanize.Comma(int64(s.Plays))
		}
		fmt.Fprintf(w, "  %s\t%s\t%s\t%s\n", r.title, best, name, plays)
	}
	return w.Flush()
}

// printGame prints the leaderboard of one game with its statistics.
func printGame(deps tui.Deps, info registry.GameInfo) error {
	fmt.Printf("High Scores - %s\n", info.Title)
	fmt.Println()

	list := deps.Scores.Scores(info.ID)
	if len(list) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Println()
		fmt.Printf("Play 'arcade play %s' to set the first high score!\n", info.ID)
	} else {
		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "  Rank\tName\tScore\tDate")
		fmt.Fprintln(w, "  ----\t----\t-----\t----")
		for i, e := range list {
			fmt.Fprintf(w, "  %d\t%s\t%s\t%s (%s)\n", i+1, e.Name, humanize.Comma(int64(e.Score)),
				e.Timestamp.Local().Format("2006-01-02 15:04"), humanize.Time(e.Timestamp))
		}
		if err := w.Flush(); err != nil {
			return err
		}
	}

	st, ok := deps.History.(*storage.Store)
	if !ok {
		return nil
	}
	stats, err := st.Stats(info.ID)
	if err != nil {
		return err
	}
	if stats.Plays > 0 {
		fmt.Println()
		fmt.Printf("Plays: %s  Best: %s  Average: %s  Last played: %s\n",
			humanize.Comma(int64(stats.Plays)),
			humanize.Comma(int64(stats.BestScore)),
			humanize.CommafWithDigits(stats.AvgScore, 1),
			humanize.Time(stats.LastPlayed),
		)
	}

	if flagRecent > 0 {
		plays, err := st.RecentPlays(info.ID, flagRecent)
		if err != nil {
			return err
		}
		fmt.Println()
		fmt.Println("Recent plays:")
		for _, p := range plays {
			name := p.Name
			if name == "" {
				name = "---"
			}
			fmt.Printf("  %s  %s  %s\n", name, humanize.Comma(int64(p.Score)), humanize.Time(p.CreatedAt))
		}
	}
	return nil
}
