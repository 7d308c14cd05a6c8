package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/term"

	"github.com/vovakirdan/retro-arcade/internal/config"
	"github.com/vovakirdan/retro-arcade/internal/platform/tui"
	"github.com/vovakirdan/retro-arcade/internal/scores"
	"github.com/vovakirdan/retro-arcade/internal/storage"
)

// newLogger builds the process logger. Full-screen commands must not
// write to the terminal, so they log to the log file or nowhere; the
// others fall back to stderr.
func newLogger(cfg config.AppConfig, fullScreen bool) (*log.Logger, func(), error) {
	level, err := log.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, nil, fmt.Errorf("config: %w", err)
	}

	var w io.Writer = os.Stderr
	closer := func() {}
	switch {
	case cfg.LogFile != "":
		f, err := os.OpenFile(expandHome(cfg.LogFile), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("cannot open log file: %w", err)
		}
		w = f
		closer = func() { f.Close() }
	case fullScreen:
		w = io.Discard
	}

	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          "arcade",
		Level:           level,
	})
	return logger, closer, nil
}

// openDeps opens the leaderboard and, for the sqlite backend, the play
// history. The returned func releases them.
func openDeps(cfg config.AppConfig, logger *log.Logger) (tui.Deps, func(), error) {
	deps := tui.Deps{Logger: logger}
	closer := func() {}

	var backend scores.Backend
	switch cfg.ScoresBackend {
	case config.BackendSQLite:
		st, err := storage.Open(cfg.DBPath)
		if err != nil {
			return deps, nil, err
		}
		backend, deps.History = st, st
		closer = func() {
			if err := st.Close(); err != nil {
				logger.Warn("cannot close database", "error", err)
			}
		}
	case config.BackendFile:
		fb, err := scores.NewFileBackend(cfg.ScoresDir)
		if err != nil {
			return deps, nil, err
		}
		backend = fb
	default:
		backend = scores.NewMemoryBackend()
	}

	deps.Scores = scores.New(backend, scores.WithLogger(logger))
	logger.Debug("scores opened", "backend", cfg.ScoresBackend)
	return deps, closer, nil
}

// shellOptions maps the config onto shell options for the local terminal.
func shellOptions(cfg config.AppConfig) tui.Options {
	width, height := 80, 24
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width, height = w, h
	}

	return tui.Options{
		Width:            width,
		Height:           height,
		TickRate:         cfg.FPS,
		Seed:             flagSeed,
		CountdownSeconds: cfg.CountdownSecs,
		InsertCoinDelay:  cfg.InsertCoinDelay,
		Player:           os.Getenv("USER"),
		ScreenshotDir:    expandHome(filepath.Join("~", ".arcade", "screenshots")),
		Monochrome:       flagMono,
	}
}

func expandHome(path string) string {
	if path == "" || path[0] != '~' {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[1:])
}

// runShell runs the full-screen arcade, opened on game when it is not
// empty.
func runShell(game string) error {
	logger, closeLog, err := newLogger(appCfg, true)
	if err != nil {
		return err
	}
	defer closeLog()

	deps, closeDeps, err := openDeps(appCfg, logger)
	if err != nil {
		return err
	}
	defer closeDeps()

	opts := shellOptions(appCfg)
	opts.Game = game

	start := time.Now()
	logger.Info("arcade started", "game", game, "fps", opts.TickRate)
	err = tui.Run(deps, opts)
	logger.Info("arcade stopped", "uptime", time.Since(start).Round(time.Second))
	return err
}
