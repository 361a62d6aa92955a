package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/lox/blackjack/blackjack"
	"github.com/lox/blackjack/internal/game"
)

// View implements tea.Model
func (m *Model) View() string {
	if m.quitting {
		return ""
	}

	sections := []string{
		HeaderStyle.Render("BLACKJACK"),
		lipgloss.JoinHorizontal(lipgloss.Top,
			PaneStyle.Render(m.renderTable()),
			PaneStyle.Render(m.renderSidebar()),
		),
	}
	if m.height > 0 {
		sections = append(sections, PaneStyle.Render(m.logViewport.View()))
	}
	if m.status != "" {
		sections = append(sections, ErrorStyle.Render(m.status))
	}
	sections = append(sections, m.help.View(m.keys))
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m *Model) renderTable() string {
	r := m.engine.Observe()
	var b strings.Builder

	if r.Roulette || m.engine.Player().Roulette {
		p := m.engine.Player()
		b.WriteString(WarningStyle.Render("RUSSIAN ROULETTE"))
		b.WriteString("\n\n")
		fmt.Fprintf(&b, "Streak: %d  Next survival pays $%d\n", p.RouletteRun.Streak, p.RouletteRun.NextReward(m.engine.Rules().RoulettePayout))
		fmt.Fprintf(&b, "Chance of death: 1 in %d\n", game.RouletteChambers)
	} else {
		dealerValue := fmt.Sprintf("%d", r.DealerHand.Value())
		if r.DealerConcealed {
			dealerValue = fmt.Sprintf("%d + ?", r.VisibleDealerValue())
		}
		fmt.Fprintf(&b, "Dealer: %s  %s\n", formatCards(r.DealerHand, r.DealerConcealed), InfoStyle.Render(dealerValue))
		fmt.Fprintf(&b, "You:    %s  %s\n", formatCards(r.PlayerHand, false), InfoStyle.Render(fmt.Sprintf("%d", r.PlayerHand.Value())))
		if r.Burned != nil {
			b.WriteString(InfoStyle.Render(fmt.Sprintf("Burned: %s", r.Burned)))
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	switch {
	case r.Message != "":
		b.WriteString(HandInfoStyle.Render(r.Message))
	case r.Phase == game.PlayerTurn:
		b.WriteString(HandInfoStyle.Render("Hit or stand?"))
	default:
		b.WriteString(HandInfoStyle.Render("Place your bet."))
	}
	return b.String()
}

func (m *Model) renderSidebar() string {
	p := m.engine.Player()
	var b strings.Builder

	fmt.Fprintf(&b, "%s\n", WarningStyle.Render(fmt.Sprintf("Money: $%d", p.Money)))
	if !p.Roulette {
		fmt.Fprintf(&b, "Bet:   $%d\n", p.Bet)
	}
	fmt.Fprintf(&b, "Dealer: %s (stands on %d)\n", p.Difficulty,
		game.StandThreshold(p.Difficulty, p.Upgrades.Level(game.DealerNerves)))
	fmt.Fprintf(&b, "Rounds: %d  Wins: %d\n", p.RoundsPlayed, p.Wins)
	fmt.Fprintf(&b, "\nUpgrade points: %d\n", p.Upgrades.Points())
	for i, u := range game.AllUpgrades {
		slot := p.Upgrades.Slot(u)
		fmt.Fprintf(&b, " %d. %-13s %s\n", i+1, u, levelBar(slot.Level, slot.Max))
	}
	return b.String()
}

func levelBar(level, maxLevel int) string {
	return strings.Repeat("■", level) + strings.Repeat("□", maxLevel-level)
}

// formatCards formats cards with colors. When concealed the first card is
// drawn face down.
func formatCards(cards blackjack.Hand, concealed bool) string {
	if len(cards) == 0 {
		return InfoStyle.Render("[]")
	}

	formatted := make([]string, 0, len(cards))
	for i, card := range cards {
		switch {
		case i == 0 && concealed:
			formatted = append(formatted, HiddenCardStyle.Render("??"))
		case card.Suit.IsRed():
			formatted = append(formatted, RedCardStyle.Render(card.String()))
		default:
			formatted = append(formatted, BlackCardStyle.Render(card.String()))
		}
	}
	return "[" + strings.Join(formatted, " ") + "]"
}

func plainCards(cards blackjack.Hand) string {
	return "[" + cards.String() + "]"
}
