// Package console is a line-oriented blackjack game: it asks before every
// round, reads a bet, then hit or stand until the round settles.
package console

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/chzyer/readline"
	"github.com/lox/blackjack/blackjack"
	"github.com/lox/blackjack/internal/game"
	"github.com/rs/zerolog"
)

// LineReader is the input side of the console. *readline.Instance
// satisfies it.
type LineReader interface {
	Readline() (string, error)
	SetPrompt(prompt string)
}

// Styles contains styling for the console
type Styles struct {
	Prompt    lipgloss.Style
	Info      lipgloss.Style
	Success   lipgloss.Style
	Error     lipgloss.Style
	Warning   lipgloss.Style
	RedCard   lipgloss.Style
	BlackCard lipgloss.Style
}

// DefaultStyles returns the console colour scheme
func DefaultStyles() Styles {
	return Styles{
		Prompt:    lipgloss.NewStyle().Foreground(lipgloss.Color("#04B575")).Bold(true),
		Info:      lipgloss.NewStyle().Foreground(lipgloss.Color("#626262")),
		Success:   lipgloss.NewStyle().Foreground(lipgloss.Color("#96CEB4")).Bold(true),
		Error:     lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B")).Bold(true),
		Warning:   lipgloss.NewStyle().Foreground(lipgloss.Color("#FFEAA7")).Bold(true),
		RedCard:   lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B")).Bold(true),
		BlackCard: lipgloss.NewStyle().Bold(true),
	}
}

// Console drives one engine from a LineReader
type Console struct {
	in     LineReader
	out    io.Writer
	engine *game.Engine
	styles Styles
	logger zerolog.Logger
}

// New creates a console
func New(in LineReader, out io.Writer, engine *game.Engine, logger zerolog.Logger) *Console {
	return &Console{
		in:     in,
		out:    out,
		engine: engine,
		styles: DefaultStyles(),
		logger: logger.With().Str("component", "console").Logger(),
	}
}

// errQuit ends the session on EOF or interrupt
var errQuit = errors.New("quit")

// Run plays rounds until the player declines, runs out of money or closes
// the input. It always finishes with the session summary.
func (c *Console) Run() error {
	c.println("Welcome to Blackjack!")

	err := c.loop()
	c.summary()
	if errors.Is(err, errQuit) {
		return nil
	}
	return err
}

func (c *Console) loop() error {
	for {
		if c.engine.Broke() {
			c.println(c.styles.Error.Render("You are out of money."))
			return nil
		}
		if minBet := c.engine.Rules().MinBet; c.engine.Player().Money < minBet {
			c.println(c.styles.Error.Render(fmt.Sprintf("You can't cover the minimum bet of $%d.", minBet)))
			return nil
		}

		c.println("Would you like to play a round?")
		answer, err := c.ask("Y or N: ")
		if err != nil {
			return err
		}
		if !strings.EqualFold(answer, "y") {
			c.println("The game has been stopped")
			return nil
		}

		if err := c.playRound(); err != nil {
			return err
		}
		if err := c.shop(); err != nil {
			return err
		}
	}
}

func (c *Console) playRound() error {
	if err := c.placeBet(); err != nil {
		return err
	}
	if c.engine.Observe().Phase == game.Betting {
		return nil
	}
	c.println("The round has started!")
	c.showHands()

	for c.engine.Observe().Phase == game.PlayerTurn {
		choice, err := c.ask("Hit or stand? (h/s): ")
		if err != nil {
			return err
		}
		switch strings.ToLower(choice) {
		case "h", "hit":
			err = c.engine.Hit()
		case "s", "stand":
			err = c.engine.Stand()
		default:
			c.println(c.styles.Warning.Render("Please type h or s."))
			continue
		}
		if err != nil {
			return c.roundError(err)
		}
		if c.engine.Observe().Phase == game.PlayerTurn {
			c.showHands()
		}
	}

	c.result()
	return c.engine.ResetRound()
}

// placeBet reads bets until the engine accepts one and the round is dealt
func (c *Console) placeBet() error {
	rules := c.engine.Rules()
	for {
		money := c.engine.Player().Money
		c.printf("How much money would you like to bet? (min $%d, you have $%d)\n", rules.MinBet, money)
		line, err := c.ask("$ ")
		if err != nil {
			return err
		}

		bet, err := strconv.Atoi(strings.TrimPrefix(line, "$"))
		if err != nil {
			c.println(c.styles.Error.Render("Please enter a whole number."))
			continue
		}

		err = c.engine.StartRound(bet)
		switch {
		case err == nil:
			c.println(c.styles.Success.Render("Transaction successful! Round starting."))
			return nil
		case errors.Is(err, game.ErrInvalidBet) && bet > money:
			c.println(c.styles.Error.Render("You don't have enough money to bet!"))
		case errors.Is(err, game.ErrInvalidBet):
			c.println(c.styles.Error.Render(fmt.Sprintf("The minimum bet is $%d.", rules.MinBet)))
		default:
			return c.roundError(err)
		}
	}
}

// roundError reports an abandoned round and carries on; anything else is fatal
func (c *Console) roundError(err error) error {
	if errors.Is(err, game.ErrDeckExhausted) {
		c.logger.Warn().Err(err).Msg("Round abandoned")
		c.println(c.styles.Warning.Render(c.engine.Observe().Message))
		return nil
	}
	return err
}

func (c *Console) showHands() {
	r := c.engine.Observe()
	c.printf("Player hand: %s (value: %d)\n", c.cards(r.PlayerHand, false), r.PlayerHand.Value())
	if r.DealerConcealed {
		c.printf("Dealer hand: %s (showing: %d)\n", c.cards(r.DealerHand, true), r.VisibleDealerValue())
	} else {
		c.printf("Dealer hand: %s (value: %d)\n", c.cards(r.DealerHand, false), r.DealerHand.Value())
	}
}

func (c *Console) result() {
	r := c.engine.Observe()
	if r.Phase != game.Settled {
		return
	}
	c.showHands()
	for _, note := range r.Notes {
		c.println(c.styles.Info.Render(note))
	}

	style := c.styles.Warning
	switch {
	case r.Delta > 0:
		style = c.styles.Success
	case r.Delta < 0:
		style = c.styles.Error
	}
	c.println(style.Render(r.Message))
	c.printf("You have $%d.\n", c.engine.Player().Money)
}

// shop offers upgrades while the player has points to spend
func (c *Console) shop() error {
	for c.engine.Player().Upgrades.Points() > 0 && !c.engine.Broke() {
		p := c.engine.Player()
		c.printf("You have %d upgrade point(s).\n", p.Upgrades.Points())
		for i, u := range game.AllUpgrades {
			slot := p.Upgrades.Slot(u)
			c.printf("  [%d] %s (level %d/%d)\n", i+1, u, slot.Level, slot.Max)
		}
		choice, err := c.ask("Buy which upgrade? (enter to skip): ")
		if err != nil {
			return err
		}
		if choice == "" {
			return nil
		}

		n, err := strconv.Atoi(choice)
		if err != nil || n < 1 || n > game.NumUpgrades {
			c.println(c.styles.Warning.Render("Pick a number from the list."))
			continue
		}
		kind := game.AllUpgrades[n-1]
		if c.engine.PurchaseUpgrade(kind) {
			c.println(c.styles.Success.Render(fmt.Sprintf("%s is now level %d.", kind, c.engine.Player().Upgrades.Level(kind))))
		} else {
			c.println(c.styles.Error.Render(fmt.Sprintf("%s is already at its maximum level.", kind)))
		}
	}
	return nil
}

func (c *Console) summary() {
	p := c.engine.Player()
	c.println("Your summary")
	c.printf("Rounds played: %d\n", p.RoundsPlayed)
	c.printf("Wins: %d\n", p.Wins)
	c.printf("Final bankroll: $%d\n", p.Money)
}

// ask prompts for one line. EOF and interrupt both end the session.
func (c *Console) ask(prompt string) (string, error) {
	c.in.SetPrompt(c.styles.Prompt.Render(prompt))
	line, err := c.in.Readline()
	if err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, readline.ErrInterrupt) {
			return "", errQuit
		}
		return "", err
	}
	return strings.TrimSpace(line), nil
}

func (c *Console) cards(hand blackjack.Hand, concealed bool) string {
	parts := make([]string, 0, len(hand))
	for i, card := range hand {
		switch {
		case i == 0 && concealed:
			parts = append(parts, "??")
		case card.Suit.IsRed():
			parts = append(parts, c.styles.RedCard.Render(card.String()))
		default:
			parts = append(parts, c.styles.BlackCard.Render(card.String()))
		}
	}
	return "[" + strings.Join(parts, " ") + "]"
}

func (c *Console) println(s string) {
	_, _ = fmt.Fprintln(c.out, s)
}

func (c *Console) printf(format string, args ...any) {
	_, _ = fmt.Fprintf(c.out, format, args...)
}
