// Package tui is the Bubble Tea shell of the arcade: the menu, instruction
// cards, the insert-coin screen, game sessions, high-score entry and the
// scoreboard. The same shell runs locally and per SSH connection.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// Every scheduled message carries the generation it was issued in. The
// shell bumps its generation whenever a session is replaced or dropped, so
// a message from a previous run is recognized and ignored.

// TickMsg asks the shell to run one session frame.
type TickMsg struct{ Gen int }

// insertMsg advances the insert-coin animation.
type insertMsg struct{ Gen int }

// restartMsg starts the replacement session after a restart.
type restartMsg struct{ Gen int }

// insertStep is the insert-coin animation frame length.
const insertStep = 100 * time.Millisecond

// restartDelay separates the old session from the new one on restart.
const restartDelay = 100 * time.Millisecond

// tickCmd schedules one frame at tickRate frames per second.
func tickCmd(tickRate, gen int) tea.Cmd {
	interval := time.Second / time.Duration(max(tickRate, 1))
	return tea.Tick(interval, func(time.Time) tea.Msg {
		return TickMsg{Gen: gen}
	})
}

func insertCmd(gen int) tea.Cmd {
	return tea.Tick(insertStep, func(time.Time) tea.Msg {
		return insertMsg{Gen: gen}
	})
}

func restartCmd(gen int) tea.Cmd {
	return tea.Tick(restartDelay, func(time.Time) tea.Msg {
		return restartMsg{Gen: gen}
	})
}
