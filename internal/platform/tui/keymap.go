package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/retro-arcade/internal/core"
)

// gameKeys binds key names, as reported by tea.KeyMsg.String, to actions.
var gameKeys = bindings(map[core.Action][]string{
	core.ActionQuit:    {"ctrl+c", "q"},
	core.ActionUp:      {"w", "up", "k"},
	core.ActionDown:    {"s", "down", "j"},
	core.ActionLeft:    {"a", "left", "h"},
	core.ActionRight:   {"d", "right", "l"},
	core.ActionJump:    {" "},
	core.ActionFlag:    {"f"},
	core.ActionConfirm: {"enter"},
	core.ActionBack:    {"b", "esc"},
	core.ActionPause:   {"p"},
	core.ActionRestart: {"r"},
})

// MenuAction is what a key does on the menu and the instruction card.
type MenuAction int

const (
	MenuActionNone MenuAction = iota
	MenuActionUp
	MenuActionDown
	MenuActionSelect
	MenuActionBack
	MenuActionScoreboard
	MenuActionQuit
)

var menuKeys = bindings(map[MenuAction][]string{
	MenuActionQuit:       {"ctrl+c", "q"},
	MenuActionUp:         {"w", "up", "k"},
	MenuActionDown:       {"s", "down", "j"},
	MenuActionSelect:     {"enter", " "},
	MenuActionBack:       {"b", "esc"},
	MenuActionScoreboard: {"tab", "t"},
})

var mouseButtons = map[tea.MouseButton]core.PointerButton{
	tea.MouseButtonLeft:  core.PointerPrimary,
	tea.MouseButtonRight: core.PointerSecondary,
}

func bindings[A comparable](in map[A][]string) map[string]A {
	out := make(map[string]A)
	for a, names := range in {
		for _, n := range names {
			out[n] = a
		}
	}
	return out
}

// KeyMapper turns terminal input into game actions and pointers. The game
// screen is drawn HeaderRows rows below the top of the terminal.
type KeyMapper struct {
	HeaderRows int
}

func NewKeyMapper(headerRows int) *KeyMapper {
	return &KeyMapper{HeaderRows: headerRows}
}

// MapKey returns the action bound to msg, or ActionNone. isQuit is set for
// the quit keys.
func (km *KeyMapper) MapKey(msg tea.KeyMsg) (action core.Action, isQuit bool) {
	action, ok := gameKeys[msg.String()]
	if !ok {
		return core.ActionNone, false
	}
	return action, action == core.ActionQuit
}

// MapKeyToMenuAction returns the menu action bound to msg.
func (km *KeyMapper) MapKeyToMenuAction(msg tea.KeyMsg) MenuAction {
	return menuKeys[msg.String()]
}

// MapMouse converts a left or right button press into a pointer in screen
// coordinates. Everything else, including presses on the header, is
// dropped.
func (km *KeyMapper) MapMouse(msg tea.MouseMsg) (core.Pointer, bool) {
	if msg.Action != tea.MouseActionPress {
		return core.Pointer{}, false
	}
	button, ok := mouseButtons[msg.Button]
	y := msg.Y - km.HeaderRows
	if !ok || y < 0 {
		return core.Pointer{}, false
	}
	return core.Pointer{X: msg.X, Y: y, Button: button}, true
}
