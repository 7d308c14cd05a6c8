package main

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"os/signal"
	"time"

	"github.com/charmbracelet/log"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/retro-arcade/internal/core"
	"github.com/vovakirdan/retro-arcade/internal/input"
	"github.com/vovakirdan/retro-arcade/internal/registry"
	"github.com/vovakirdan/retro-arcade/internal/session"
)

var flagAttractFor time.Duration

var attractCmd = &cobra.Command{
	Use:   "attract <game>",
	Short: "Let a game play itself without a terminal UI",
	Long: `Run a game headless with random joystick input, the way an arcade
cabinet plays itself between customers. The run ends at game over or after
--for, and the last frame is printed with the score. Nothing is written to
the leaderboard.

Examples:
  arcade attract snake
  arcade attract tetris --for 30s --seed 7`,
	Args: cobra.ExactArgs(1),
	RunE: runAttract,
}

func init() {
	attractCmd.Flags().DurationVar(&flagAttractFor, "for", 10*time.Second, "Stop after this long if the game is still running")
}

// attractMoves are the actions the random player presses.
var attractMoves = []core.Action{
	core.ActionUp, core.ActionDown, core.ActionLeft, core.ActionRight,
	core.ActionJump, core.ActionConfirm,
}

// attractResult is the outcome of one headless run.
type attractResult struct {
	Score  int
	Over   bool
	Screen string
}

func runAttract(cmd *cobra.Command, args []string) error {
	game, err := registry.Create(args[0])
	if err != nil {
		return fmt.Errorf("unknown game %q (run 'arcade list' to see available games)", args[0])
	}

	logger, closeLog, err := newLogger(appCfg, false)
	if err != nil {
		return err
	}
	defer closeLog()

	seed := flagSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	cfg := core.RuntimeConfig{ScreenW: 80, ScreenH: 22, TickRate: appCfg.FPS, Seed: seed}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()
	ctx, cancel := context.WithTimeout(ctx, flagAttractFor)
	defer cancel()

	start := time.Now()
	res := attract(ctx, game, cfg, logger)

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, res.Screen)
	status := "time up"
	if res.Over {
		status = "game over"
	}
	fmt.Fprintf(out, "%s: %s points, %s after %s (seed %d)\n",
		game.Title(), humanize.Comma(int64(res.Score)), status,
		time.Since(start).Round(time.Millisecond), seed)
	return nil
}

// attract plays game on a session.Loop until it ends or ctx is done. Input
// is published on the bus from the calling goroutine, the only
// cross-goroutine path into a session.
func attract(ctx context.Context, game registry.Game, cfg core.RuntimeConfig, logger *log.Logger) attractResult {
	bus := input.NewBus()
	final := make(chan int, 1)
	sess := session.New(game, cfg, bus, session.Guard(session.Callbacks{
		OnGameOver: func(score int) { final <- score },
	}), session.Options{Logger: logger})
	defer sess.Close()

	loop := session.NewLoop(sess, cfg.TickRate)
	loop.Start(ctx)

	rng := rand.New(rand.NewSource(cfg.Seed))
	press := time.NewTicker(time.Second / 8)
	defer press.Stop()

wait:
	for {
		select {
		case <-loop.Done():
			break wait
		case <-press.C:
			bus.PublishAction(attractMoves[rng.Intn(len(attractMoves))])
		}
	}
	loop.Stop()

	// The loop goroutine has exited, so the session is safe to read.
	res := attractResult{Score: sess.Score(), Screen: sess.Screen().String()}
	select {
	case res.Score = <-final:
		res.Over = true
	default:
	}
	return res
}
