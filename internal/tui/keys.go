package tui

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/lox/blackjack/internal/game"
)

type keyMap struct {
	Deal     key.Binding
	Hit      key.Binding
	Stand    key.Binding
	BetUp    key.Binding
	BetDown  key.Binding
	AllIn    key.Binding
	Roulette key.Binding
	Upgrades [game.NumUpgrades]key.Binding
	Easy     key.Binding
	Normal   key.Binding
	Hard     key.Binding
	Next     key.Binding
	Quit     key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		Deal:     key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "deal")),
		Hit:      key.NewBinding(key.WithKeys("h"), key.WithHelp("h", "hit")),
		Stand:    key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "stand")),
		BetUp:    key.NewBinding(key.WithKeys("+", "="), key.WithHelp("+", "raise bet")),
		BetDown:  key.NewBinding(key.WithKeys("-", "_"), key.WithHelp("-", "lower bet")),
		AllIn:    key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "all in")),
		Roulette: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "roulette")),
		Upgrades: [game.NumUpgrades]key.Binding{
			key.NewBinding(key.WithKeys("1"), key.WithHelp("1", "extra start")),
			key.NewBinding(key.WithKeys("2"), key.WithHelp("2", "nerves")),
			key.NewBinding(key.WithKeys("3"), key.WithHelp("3", "bonus")),
		},
		Easy:   key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "easy")),
		Normal: key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "normal")),
		Hard:   key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "hard")),
		Next:   key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "next round")),
		Quit:   key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// syncPhase enables only the bindings the current phase accepts, so help
// never advertises a key that would be rejected.
func (k *keyMap) syncPhase(phase game.Phase, broke bool) {
	betting := phase == game.Betting
	for _, b := range []*key.Binding{&k.Deal, &k.BetUp, &k.BetDown, &k.AllIn, &k.Roulette, &k.Easy, &k.Normal, &k.Hard} {
		b.SetEnabled(betting && !broke)
	}
	for i := range k.Upgrades {
		k.Upgrades[i].SetEnabled(betting && !broke)
	}
	k.Hit.SetEnabled(phase == game.PlayerTurn)
	k.Stand.SetEnabled(phase == game.PlayerTurn)
	k.Next.SetEnabled(phase == game.Settled || broke)

	if broke {
		k.Next.SetHelp("enter", "new session")
	} else {
		k.Next.SetHelp("enter", "next round")
	}
}

// ShortHelp implements help.KeyMap
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Deal, k.Hit, k.Stand, k.Next, k.Quit}
}

// FullHelp implements help.KeyMap
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Deal, k.Hit, k.Stand, k.Next},
		{k.BetUp, k.BetDown, k.AllIn, k.Roulette},
		{k.Upgrades[0], k.Upgrades[1], k.Upgrades[2]},
		{k.Easy, k.Normal, k.Hard, k.Quit},
	}
}
