// Package game runs a single Texas Hold'em hand: blinds, dealing, four
// betting rounds and a showdown.
//
// # Basic Usage
//
//	rng := randutil.New(42)
//	players := []*game.Player{
//	    game.NewPlayer(1, "Alice", 100, game.NewRandomPolicy(rng)),
//	    game.NewPlayer(2, "Bob", 100, game.PassivePolicy{}),
//	}
//	g, err := game.NewGame(players, game.WithRNG(rng))
//	if err != nil {
//	    return err
//	}
//	if err := g.Setup(1, true, 5); err != nil {
//	    return err
//	}
//	result, err := g.Play(ctx)
//
// # Architecture
//
// Game is the phase state machine (Initial, Pre-flop, Flop, Turn, River,
// Showdown). Each betting phase runs a bounded pass over the seats asking
// every active player's Policy for a Decision and applying it through the
// Dealer, which holds the only Capability the players accept for moving
// funds and cards.
//
// A rejected action or a failing policy stops the round where it is. Step
// reports that as a *RoundError without changing phase; Play resubmits the
// phase, resuming at the failed seat, up to a limit.
//
// Failures carry an ErrorKind (validation, authorization, state, evaluation
// gap) and match the package sentinels with errors.Is.
package game
