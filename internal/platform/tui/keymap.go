package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/dinox/internal/core"
)

// KeyMapper translates Bubble Tea key messages to runner actions.
// This centralizes key bindings and makes them testable.
type KeyMapper struct{}

// NewKeyMapper creates a new key mapper with default bindings.
func NewKeyMapper() *KeyMapper {
	return &KeyMapper{}
}

// MapKey translates a key message during play.
// Returns the action (may be ActionNone) and whether it's a quit request.
func (km *KeyMapper) MapKey(msg tea.KeyMsg) (action core.Action, isQuit bool) {
	switch msg.String() {
	case "ctrl+c", "q":
		return core.ActionQuit, true
	case " ", "up", "w":
		return core.ActionJump, false
	case "p":
		return core.ActionPause, false
	case "s":
		return core.ActionOpenShop, false
	case "esc", "b":
		return core.ActionCloseShop, false
	case "r", "enter":
		return core.ActionRestart, false
	}
	return core.ActionNone, false
}

// MapShopKey translates a key message while the shop is open.
func (km *KeyMapper) MapShopKey(msg tea.KeyMsg) (action core.Action, isQuit bool) {
	keys := DefaultShopKeyMap()
	switch {
	case key.Matches(msg, keys.Quit):
		return core.ActionQuit, true
	case key.Matches(msg, keys.Up):
		return core.ActionUp, false
	case key.Matches(msg, keys.Down):
		return core.ActionDown, false
	case key.Matches(msg, keys.Buy):
		return core.ActionConfirm, false
	case key.Matches(msg, keys.Close):
		return core.ActionCloseShop, false
	}
	return core.ActionNone, false
}

// ShopKeyMap defines the key bindings shown in the shop help bar.
type ShopKeyMap struct {
	Up    key.Binding
	Down  key.Binding
	Buy   key.Binding
	Close key.Binding
	Quit  key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k ShopKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Buy, k.Close, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k ShopKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Buy},
		{k.Close, k.Quit},
	}
}

// DefaultShopKeyMap returns default shop key bindings.
func DefaultShopKeyMap() ShopKeyMap {
	return ShopKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k", "w"),
			key.WithHelp("up/k", "move up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "move down"),
		),
		Buy: key.NewBinding(
			key.WithKeys("enter", " "),
			key.WithHelp("enter", "buy/wear"),
		),
		Close: key.NewBinding(
			key.WithKeys("esc", "b", "s"),
			key.WithHelp("esc/s", "close shop"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}
