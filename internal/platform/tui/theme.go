package tui

import (
	"github.com/charmbracelet/lipgloss"
)

// Theme holds the styles of the shell screens. Game screens use
// cellStyles instead.
type Theme struct {
	// Chrome around the game screen
	HeaderTitle lipgloss.Style
	HeaderValue lipgloss.Style
	HeaderLabel lipgloss.Style
	Footer      lipgloss.Style

	// Menu
	Logo            lipgloss.Style
	MenuItemNormal  lipgloss.Style
	MenuItemActive  lipgloss.Style
	MenuBest        lipgloss.Style
	MenuDescription lipgloss.Style

	// Instruction card and name entry
	CardBorder lipgloss.Style
	CardTitle  lipgloss.Style
	CardText   lipgloss.Style

	// Insert coin
	Coin     lipgloss.Style
	CoinSlot lipgloss.Style
	Blink    lipgloss.Style

	// Scoreboard
	BoardTitle     lipgloss.Style
	BoardHighlight lipgloss.Style
	BoardStats     lipgloss.Style
	BoardEmpty     lipgloss.Style
	BoardPanel     lipgloss.Style
	BoardHeader    lipgloss.Style
	BoardSelected  lipgloss.Style
	Help           lipgloss.Style
}

// DefaultTheme returns the neon arcade theme.
func DefaultTheme() Theme {
	return Theme{
		HeaderTitle: lipgloss.NewStyle().Foreground(lipgloss.Color("51")).Bold(true),
		HeaderValue: lipgloss.NewStyle().Foreground(lipgloss.Color("226")).Bold(true),
		HeaderLabel: lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		Footer:      lipgloss.NewStyle().Foreground(lipgloss.Color("241")),

		Logo:            lipgloss.NewStyle().Foreground(lipgloss.Color("199")).Bold(true),
		MenuItemNormal:  lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		MenuItemActive:  lipgloss.NewStyle().Foreground(lipgloss.Color("226")).Bold(true),
		MenuBest:        lipgloss.NewStyle().Foreground(lipgloss.Color("87")),
		MenuDescription: lipgloss.NewStyle().Foreground(lipgloss.Color("245")),

		CardBorder: lipgloss.NewStyle().
			Border(lipgloss.DoubleBorder()).
			BorderForeground(lipgloss.Color("51")).
			Padding(1, 3),
		CardTitle: lipgloss.NewStyle().Foreground(lipgloss.Color("226")).Bold(true),
		CardText:  lipgloss.NewStyle().Foreground(lipgloss.Color("255")),

		Coin:     lipgloss.NewStyle().Foreground(lipgloss.Color("220")).Bold(true),
		CoinSlot: lipgloss.NewStyle().Foreground(lipgloss.Color("51")),
		Blink:    lipgloss.NewStyle().Foreground(lipgloss.Color("226")).Bold(true).Blink(true),

		BoardTitle:     lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229")),
		BoardHighlight: lipgloss.NewStyle().Foreground(lipgloss.Color("46")).Bold(true),
		BoardStats:     lipgloss.NewStyle().Foreground(lipgloss.Color("250")),
		BoardEmpty:     lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Italic(true).Padding(2, 4),
		BoardPanel: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1),
		BoardHeader: lipgloss.NewStyle().
			Bold(true).
			Padding(0, 1).
			BorderStyle(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("240")).
			BorderBottom(true),
		BoardSelected: lipgloss.NewStyle().Foreground(lipgloss.Color("229")).Background(lipgloss.Color("57")),
		Help:          lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
	}
}

// MonochromeTheme drops every color, for terminals without color support
// or players who prefer it.
func MonochromeTheme() Theme {
	plain := lipgloss.NewStyle()
	bold := plain.Bold(true)
	t := DefaultTheme()
	t.HeaderTitle, t.HeaderValue, t.HeaderLabel, t.Footer = bold, bold, plain, plain
	t.Logo, t.MenuItemNormal, t.MenuItemActive, t.MenuBest, t.MenuDescription = bold, plain, bold.Reverse(true), plain, plain
	t.CardBorder = t.CardBorder.BorderForeground(lipgloss.NoColor{})
	t.CardTitle, t.CardText = bold, plain
	t.Coin, t.CoinSlot, t.Blink = bold, plain, bold
	t.BoardTitle, t.BoardHighlight, t.BoardStats, t.Help = bold, bold.Underline(true), plain, plain
	t.BoardPanel = t.BoardPanel.BorderForeground(lipgloss.NoColor{})
	t.BoardHeader = t.BoardHeader.BorderForeground(lipgloss.NoColor{})
	t.BoardSelected = plain.Reverse(true)
	return t
}
