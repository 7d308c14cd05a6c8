// arcade is a retro arcade of eight classic games for the terminal.
//
// Usage:
//
//	arcade                   - Start the arcade menu (same as "arcade menu")
//	arcade list              - List available games
//	arcade play <game>       - Play a game
//	arcade menu              - Start menu to pick games interactively
//	arcade serve             - Start SSH server for remote play
//	arcade scores [game]     - Show high scores and play statistics
//
// Global flags:
//
//	--fps <rate>         - Set tick rate (default: 60)
//	--seed <value>       - Set RNG seed for reproducible gameplay
//	--db <path>          - Set database path (default: ~/.arcade/scores.db)
//	--scores <backend>   - Leaderboard backend: sqlite, file or memory
//	--difficulty <name>  - Difficulty preset: easy, normal, hard, fixed
//
// Every flag falls back to its ARCADE_* environment variable.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/retro-arcade/internal/config"

	// Import games to register them
	_ "github.com/vovakirdan/retro-arcade/internal/games/brickbreaker"
	_ "github.com/vovakirdan/retro-arcade/internal/games/flappy"
	_ "github.com/vovakirdan/retro-arcade/internal/games/memory"
	_ "github.com/vovakirdan/retro-arcade/internal/games/minesweeper"
	_ "github.com/vovakirdan/retro-arcade/internal/games/pong"
	_ "github.com/vovakirdan/retro-arcade/internal/games/runner"
	_ "github.com/vovakirdan/retro-arcade/internal/games/snake"
	_ "github.com/vovakirdan/retro-arcade/internal/games/tetris"
)

var (
	// Global flags
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagScores     string
	flagScoresDir  string
	flagDifficulty string
	flagLogFile    string
	flagDebug      bool
	flagMono       bool

	// appCfg is the environment config with flags applied, set before
	// any subcommand runs.
	appCfg config.AppConfig
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "arcade",
	Short: "Retro Arcade - Play classic games in your terminal",
	Long: `Retro Arcade is a terminal arcade cabinet with eight classic games:
snake, tetris, pong, brick breaker, flappy, endless runner, minesweeper
and memory.

Available commands:
  list     - Show all available games
  play     - Play a specific game directly
  menu     - Interactive game picker menu
  serve    - Start SSH server for remote play
  scores   - View high scores and statistics

Examples:
  arcade list
  arcade play tetris
  arcade menu
  arcade serve --port 2222
  arcade scores snake`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: loadConfig,
	RunE:              runMenu,
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	pf.Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	pf.StringVar(&flagDBPath, "db", "~/.arcade/scores.db", "Path to scores database")
	pf.StringVar(&flagScores, "scores", config.BackendSQLite, "Leaderboard backend: sqlite, file or memory")
	pf.StringVar(&flagScoresDir, "scores-dir", "~/.arcade", "Directory of the file leaderboard backend")
	pf.StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	pf.StringVar(&flagLogFile, "log-file", "", "Write logs to this file")
	pf.BoolVar(&flagDebug, "debug", false, "Log at debug level")
	pf.BoolVar(&flagMono, "mono", false, "Disable colors in menus")

	// Add subcommands
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(attractCmd)
}

// loadConfig reads ARCADE_* variables and lets explicit flags override
// them.
func loadConfig(cmd *cobra.Command, _ []string) error {
	cfg, err := config.LoadEnv()
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("fps") {
		cfg.FPS = flagFPS
	}
	if flags.Changed("db") {
		cfg.DBPath = flagDBPath
	}
	if flags.Changed("scores") {
		cfg.ScoresBackend = flagScores
	}
	if flags.Changed("scores-dir") {
		cfg.ScoresDir = flagScoresDir
	}
	if flags.Changed("difficulty") {
		cfg.Difficulty = flagDifficulty
	}
	if flags.Changed("log-file") {
		cfg.LogFile = flagLogFile
	}
	if flagDebug {
		cfg.LogLevel = "debug"
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	if cfg.Difficulty != "" {
		preset, _ := config.ParsePreset(cfg.Difficulty)
		config.SetPreset(preset)
	}
	appCfg = cfg
	return nil
}
