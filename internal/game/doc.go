// Package game implements the blackjack round engine.
//
// The main type is Engine, which owns one PlayerState for the lifetime of a
// session and one RoundState per round. Callers drive it with one operation
// at a time and render whatever Observe returns.
//
// # Basic Usage
//
//	e := game.New(randutil.New(42))
//	if err := e.StartRound(100); err != nil {
//	    // errors.Is(err, game.ErrInvalidBet)
//	}
//	for e.Observe().Phase == game.PlayerTurn {
//	    if e.Observe().PlayerHand.Value() < 17 {
//	        _ = e.Hit()
//	    } else {
//	        _ = e.Stand()
//	    }
//	}
//	fmt.Println(e.Observe().Message)
//	_ = e.ResetRound()
//
// # Deterministic Testing
//
// All randomness comes from the *rand.Rand passed to New: deck shuffles,
// dealer burn rolls and roulette draws. A fixed seed replays the same session.
// For complete control over the cards use WithDeckSource:
//
//	deck := blackjack.NewDeckFromCards(blackjack.MustParseCards("Tc 9d 7s Kh 6d")...)
//	e := game.New(rng, game.WithDeckSource(game.FixedDeck(deck)))
//
// # Architecture
//
// Engine delegates to small, mostly pure pieces:
//   - blackjack.Deck and blackjack.Hand: cards and valuation
//   - UpgradeSystem: persistent upgrade levels and the points economy
//   - PlayDealer: stand threshold, nerves burn and the dealer draw loop
//   - the roulette round, which replaces dealing when roulette mode is on
package game
