package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/retro-arcade/internal/config"
	"github.com/vovakirdan/retro-arcade/internal/registry"
)

var flagConfig string

var playCmd = &cobra.Command{
	Use:   "play <game>",
	Short: "Play a game",
	Long: `Start playing the specified game, from its instruction card.

Controls:
  Arrows/WASD - Move
  Space       - Jump, flap, launch, hard drop, reveal
  F           - Flag (minesweeper)
  P           - Pause
  R           - Restart
  Esc         - Back to the menu
  Ctrl+S      - Save a screenshot to ~/.arcade/screenshots
  Q/Ctrl+C    - Quit

Difficulty options (flappy, runner, pong):
  easy   - Start at lowest difficulty, progresses to max
  normal - Start at 30% difficulty, progresses to max
  hard   - Start at 70% difficulty, progresses to max
  fixed  - No progression, stays at config's initial level

Examples:
  arcade play snake
  arcade play runner --difficulty easy
  arcade play flappy --difficulty hard
  arcade play pong --config ./my-pong.yaml
  arcade play tetris --seed 42`,
	Args: cobra.ExactArgs(1),
	RunE: runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
}

func runPlay(_ *cobra.Command, args []string) error {
	gameID := args[0]
	if !registry.Exists(gameID) {
		return fmt.Errorf("unknown game %q (run 'arcade list' to see available games)", gameID)
	}

	if flagConfig != "" {
		config.SetConfigPath(gameID, flagConfig)
		// A broken file is reported here instead of silently falling back
		// inside the game.
		if err := checkConfig(gameID, flagConfig); err != nil {
			return err
		}
	}
	return runShell(gameID)
}

func checkConfig(gameID, path string) error {
	var err error
	switch gameID {
	case "flappy":
		_, err = config.LoadFlappy(path)
	case "runner":
		_, err = config.LoadRunner(path)
	case "pong":
		_, err = config.LoadPong(path)
	default:
		return fmt.Errorf("game %q has no config file", gameID)
	}
	return err
}
