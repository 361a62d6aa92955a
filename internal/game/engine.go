package game

import (
	"errors"
	"fmt"
	"math"
	rand "math/rand/v2"

	"github.com/lox/blackjack/blackjack"
	"github.com/rs/zerolog"
)

// Engine runs blackjack rounds for a single player session. It is not safe
// for concurrent use; collaborators serving several players create one
// Engine per session.
type Engine struct {
	rules    Rules
	rng      *rand.Rand
	decks    DeckSource
	logger   zerolog.Logger
	onSettle SettleHook

	player PlayerState
	round  RoundState
	deck   *blackjack.Deck
}

// New creates an engine in the Betting phase. The RNG is required so every
// source of randomness in a session is explicit and replayable.
func New(rng *rand.Rand, opts ...Option) *Engine {
	if rng == nil {
		panic("rng is required for engine creation")
	}

	cfg := &engineConfig{
		rules:  DefaultRules(),
		decks:  ShuffledDecks,
		logger: zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(cfg)
	}

	if cfg.rules.MinBet <= 0 {
		panic("minimum bet must be positive")
	}
	if cfg.rules.StartingMoney < 0 {
		panic("starting money cannot be negative")
	}
	if cfg.rules.RoulettePayout < 0 || cfg.rules.RoulettePayout > MaxRoulettePayout {
		panic("roulette payout out of range")
	}
	if !cfg.rules.Difficulty.Valid() {
		cfg.rules.Difficulty = Normal
	}

	e := &Engine{
		rules:    cfg.rules,
		rng:      rng,
		decks:    cfg.decks,
		logger:   cfg.logger,
		onSettle: cfg.onSettle,
		player: PlayerState{
			Money:      cfg.rules.StartingMoney,
			Upgrades:   NewUpgradeSystem(),
			Difficulty: cfg.rules.Difficulty,
		},
		round: RoundState{Phase: Betting},
	}
	e.player.Bet = e.clampBet(cfg.rules.DefaultBet)
	return e
}

// Rules returns the table rules in effect
func (e *Engine) Rules() Rules {
	return e.rules
}

// Observe returns a copy of the current round snapshot
func (e *Engine) Observe() RoundState {
	return e.round.clone()
}

// Player returns a copy of the player state
func (e *Engine) Player() PlayerState {
	return e.player
}

// Broke reports the terminal condition of a session with no money left.
// A broke engine rejects every StartRound; callers start a new session.
func (e *Engine) Broke() bool {
	return e.player.Money == 0
}

// StartRound validates the bet and deals a new round. In roulette mode the
// bet is ignored and a single chamber is drawn instead.
func (e *Engine) StartRound(bet int) error {
	if e.round.Phase != Betting {
		return fmt.Errorf("%w: start round during %s", ErrWrongPhase, e.round.Phase)
	}

	if e.player.Roulette {
		if e.player.Money <= 0 {
			return fmt.Errorf("%w: no money left", ErrInvalidBet)
		}
		return e.playRoulette()
	}

	if e.player.Money == 0 || bet < e.rules.MinBet || bet > e.player.Money {
		return fmt.Errorf("%w: bet %d outside [%d, %d]", ErrInvalidBet, bet, e.rules.MinBet, e.player.Money)
	}

	e.player.Bet = bet
	e.deck = e.decks(e.rng)
	round := e.round.Round + 1

	playerHand, err := dealStartingHand(e.deck, e.player.Upgrades.StartTrials())
	if err != nil {
		return e.abandon(round, err)
	}
	dealerCards, err := e.deck.DrawN(2)
	if err != nil {
		return e.abandon(round, err)
	}

	e.transition(RoundState{
		Round:      round,
		Phase:      Dealt,
		PlayerHand: playerHand,
		DealerHand: blackjack.Hand(dealerCards),
	})
	e.player.RoundsPlayed++
	e.resolveNaturals()
	return nil
}

// dealStartingHand runs the ExtraStart trials against a copy of deck: trial k
// takes the k-th successive pair. The best hand not above 21 is committed and
// its cards are removed from the real deck; ties keep the earlier trial.
func dealStartingHand(deck *blackjack.Deck, trials int) (blackjack.Hand, error) {
	if trials < 1 {
		trials = 1
	}

	probe := deck.Clone()
	var best, last blackjack.Hand
	bestValue := -1
	for i := 0; i < trials; i++ {
		cards, err := probe.DrawN(2)
		if err != nil {
			if last == nil {
				return nil, err
			}
			break
		}
		last = blackjack.Hand(cards)
		if v := last.Value(); v <= blackjack.BlackjackValue && v > bestValue {
			best, bestValue = last, v
		}
	}
	if best == nil {
		best = last
	}

	deck.Remove(best...)
	return best, nil
}

func (e *Engine) resolveNaturals() {
	bet := e.player.Bet
	playerNatural := e.round.PlayerHand.IsBlackjack()
	dealerNatural := e.round.DealerHand.IsBlackjack()

	switch {
	case playerNatural && dealerNatural:
		e.settle(OutcomePush, 0, "Both have Blackjack. Push!")
	case playerNatural:
		payout := bet * 3 / 2
		e.settle(OutcomeBlackjack, payout, fmt.Sprintf("Blackjack! +$%d", payout))
	case dealerNatural:
		e.settle(OutcomeDealerBlackjack, -bet, "Dealer has Blackjack!")
	default:
		next := e.round.clone()
		next.Phase = PlayerTurn
		next.DealerConcealed = true
		e.transition(next)
	}
}

// Hit draws one card for the player
func (e *Engine) Hit() error {
	if e.round.Phase != PlayerTurn {
		return fmt.Errorf("%w: hit during %s", ErrWrongPhase, e.round.Phase)
	}

	card, err := e.deck.Draw()
	if err != nil {
		return e.abandon(e.round.Round, err)
	}

	next := e.round.clone()
	next.PlayerHand = append(next.PlayerHand, card)
	e.transition(next)

	if e.round.PlayerHand.IsBust() {
		e.settle(OutcomeBust, -e.player.Bet, "Bust!")
	}
	return nil
}

// Stand ends the player's turn and resolves the dealer
func (e *Engine) Stand() error {
	if e.round.Phase != PlayerTurn {
		return fmt.Errorf("%w: stand during %s", ErrWrongPhase, e.round.Phase)
	}

	next := e.round.clone()
	next.Phase = DealerResolving
	next.DealerConcealed = false
	e.transition(next)

	nerves := e.player.Upgrades.Level(DealerNerves)
	res, err := PlayDealer(e.round.DealerHand, e.player.Difficulty, nerves, e.deck, e.rng)
	if err != nil {
		return e.abandon(e.round.Round, err)
	}

	next = e.round.clone()
	next.DealerHand = res.Hand
	if res.Burned != nil {
		next.Burned = res.Burned
		next.Notes = append(next.Notes, fmt.Sprintf("Dealer nerves: burned %s", *res.Burned))
		e.logger.Debug().Str("card", res.Burned.String()).Int("nerves", nerves).Msg("Dealer burned a card")
	}
	e.transition(next)

	p, d := e.round.PlayerHand.Value(), e.round.DealerHand.Value()
	switch {
	case d > blackjack.BlackjackValue:
		payout := e.player.Upgrades.WinPayout(e.player.Bet)
		e.settle(OutcomeWin, payout, fmt.Sprintf("Dealer busts! You win! +$%d", payout))
	case p > d:
		payout := e.player.Upgrades.WinPayout(e.player.Bet)
		e.settle(OutcomeWin, payout, fmt.Sprintf("You win! +$%d", payout))
	case p < d:
		e.settle(OutcomeLoss, -e.player.Bet, "Dealer wins!")
	default:
		e.settle(OutcomePush, 0, "Push!")
	}
	return nil
}

// ResetRound clears a settled round and returns to Betting with the bet
// clamped to the remaining bankroll.
func (e *Engine) ResetRound() error {
	switch e.round.Phase {
	case Settled:
	case Betting:
		return nil
	default:
		return fmt.Errorf("%w: reset during %s", ErrWrongPhase, e.round.Phase)
	}

	e.deck = nil
	e.player.Bet = e.clampBet(e.player.Bet)
	e.transition(RoundState{
		Round:    e.round.Round,
		Phase:    Betting,
		Roulette: e.player.Roulette,
	})

	if e.Broke() {
		e.logger.Info().Int("rounds", e.player.RoundsPlayed).Msg("Player is broke")
	}
	return nil
}

// AdjustBet moves the bet by delta, clamped to [MinBet, money]
func (e *Engine) AdjustBet(delta int) error {
	if e.round.Phase != Betting {
		return fmt.Errorf("%w: adjust bet during %s", ErrWrongPhase, e.round.Phase)
	}
	e.player.Bet = e.clampBet(e.player.Bet + delta)
	return nil
}

// SetAllIn bets the whole bankroll
func (e *Engine) SetAllIn() error {
	if e.round.Phase != Betting {
		return fmt.Errorf("%w: all-in during %s", ErrWrongPhase, e.round.Phase)
	}
	e.player.Bet = e.player.Money
	return nil
}

// ToggleRouletteMode flips roulette mode and returns the new setting.
// Leaving roulette mode resets the streak.
func (e *Engine) ToggleRouletteMode() (bool, error) {
	if e.round.Phase != Betting {
		return e.player.Roulette, fmt.Errorf("%w: toggle roulette during %s", ErrWrongPhase, e.round.Phase)
	}

	e.player.Roulette = !e.player.Roulette
	if !e.player.Roulette {
		e.player.RouletteRun = RouletteState{}
	}

	next := e.round.clone()
	next.Roulette = e.player.Roulette
	e.transition(next)
	return e.player.Roulette, nil
}

// SetDifficulty changes the dealer difficulty for the next round
func (e *Engine) SetDifficulty(d Difficulty) error {
	if !d.Valid() {
		return fmt.Errorf("unknown difficulty %d", d)
	}
	if e.round.Phase != Betting {
		return fmt.Errorf("%w: set difficulty during %s", ErrWrongPhase, e.round.Phase)
	}
	e.player.Difficulty = d
	return nil
}

// PurchaseUpgrade buys one level of kind. Rejections (no points, level at
// max, round in progress) return false and change nothing.
func (e *Engine) PurchaseUpgrade(kind Upgrade) bool {
	if e.round.Phase != Betting {
		return false
	}
	ok := e.player.Upgrades.Purchase(kind)
	if ok {
		e.logger.Info().
			Str("upgrade", kind.String()).
			Int("level", e.player.Upgrades.Level(kind)).
			Int("points", e.player.Upgrades.Points()).
			Msg("Upgrade purchased")
	}
	return ok
}

// settle applies delta to the bankroll, floored at zero and saturating at
// math.MaxInt, and moves the round to Settled.
func (e *Engine) settle(outcome Outcome, delta int, message string) {
	before := e.player.Money
	e.player.Money = addMoney(before, delta)

	if outcome.IsWin() {
		e.player.Wins++
		if e.player.Wins%2 == 0 {
			e.player.Upgrades.AddPoint()
		}
	}

	next := e.round.clone()
	next.Phase = Settled
	next.DealerConcealed = false
	next.Outcome = outcome
	next.Delta = e.player.Money - before
	next.Message = message
	e.transition(next)

	e.logger.Info().
		Int("round", e.round.Round).
		Str("outcome", outcome.String()).
		Int("delta", e.round.Delta).
		Int("money", e.player.Money).
		Msg("Round settled")

	if e.onSettle != nil {
		e.onSettle(e.record())
	}
}

// abandon drops a round that ran out of cards. No money moves.
func (e *Engine) abandon(round int, err error) error {
	e.deck = nil
	e.logger.Warn().Err(err).Int("round", round).Msg("Round abandoned")
	e.transition(RoundState{
		Round:    round,
		Phase:    Betting,
		Roulette: e.player.Roulette,
		Message:  "Round abandoned: the deck ran out.",
	})
	if errors.Is(err, blackjack.ErrDeckExhausted) {
		return fmt.Errorf("round %d: %w", round, err)
	}
	return err
}

func (e *Engine) transition(next RoundState) {
	if next.Phase != e.round.Phase {
		e.logger.Debug().
			Int("round", next.Round).
			Stringer("from", e.round.Phase).
			Stringer("to", next.Phase).
			Msg("Phase transition")
	}
	e.round = next
}

func addMoney(money, delta int) int {
	if delta > 0 && money > math.MaxInt-delta {
		return math.MaxInt
	}
	return max(0, money+delta)
}

func (e *Engine) clampBet(bet int) int {
	return min(max(bet, e.rules.MinBet), e.player.Money)
}
