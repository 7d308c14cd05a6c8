package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
)

var logo = []string{
	"╦═╗╔═╗╔╦╗╦═╗╔═╗  ╔═╗╦═╗╔═╗╔═╗╔╦╗╔═╗",
	"╠╦╝║╣  ║ ╠╦╝║ ║  ╠═╣╠╦╝║  ╠═╣ ║║║╣ ",
	"╩╚═╚═╝ ╩ ╩╚═╚═╝  ╩ ╩╩╚═╚═╝╩ ╩═╩╝╚═╝",
}

// viewMenu renders the game list with each game's best score.
func (m Shell) viewMenu() string {
	var b strings.Builder

	b.WriteString("\n")
	if m.width >= lipgloss.Width(logo[0]) {
		for _, line := range logo {
			b.WriteString(m.theme.Logo.Render(centerText(line, m.width)))
			b.WriteString("\n")
		}
	} else {
		b.WriteString(m.theme.Logo.Render(centerText("RETRO ARCADE", m.width)))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(m.theme.MenuDescription.Render(centerText("Select a game", m.width)))
	b.WriteString("\n\n")

	if len(m.games) == 0 {
		b.WriteString(centerText("No games installed.", m.width))
		b.WriteString("\n")
	}

	for i, g := range m.games {
		cursor := "  "
		style := m.theme.MenuItemNormal
		if i == m.cursor {
			cursor = "> "
			style = m.theme.MenuItemActive
		}

		best, ok := m.best[g.ID]
		if !ok {
			best = "---"
		}

		line := style.Render(fmt.Sprintf("%s%-16s", cursor, g.Title)) + "  " + m.theme.MenuBest.Render(fmt.Sprintf("%12s", best))
		b.WriteString(centerText(line, m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	controls := "Up/Down: Navigate  |  Enter: Select  |  Tab: Scores  |  Q: Quit"
	b.WriteString(m.theme.Footer.Render(centerText(controls, m.width)))
	b.WriteString("\n")

	return b.String()
}

// viewInstructions renders the card shown before a game starts.
func (m Shell) viewInstructions() string {
	var body strings.Builder
	body.WriteString(m.theme.CardTitle.Render(m.current.Title))
	body.WriteString("\n\n")
	for _, line := range m.current.Instructions {
		body.WriteString(m.theme.CardText.Render(line))
		body.WriteString("\n")
	}
	if e, ok := m.deps.Scores.Best(m.current.ID); ok {
		body.WriteString("\n")
		body.WriteString(m.theme.MenuBest.Render(fmt.Sprintf("Best: %s %s", e.Name, humanize.Comma(int64(e.Score)))))
		body.WriteString("\n")
	}
	body.WriteString("\n")
	body.WriteString(m.theme.Footer.Render("Enter: Insert coin  |  Esc: Back"))

	card := m.theme.CardBorder.Render(body.String())
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, card)
}
