// Package game implements the rules of War as played by two automated
// players.
//
// A Game owns one shuffled deck and two players. Dealing alternates
// between the players until each holds 26 cards. Every round both
// players reveal the front card of their hand; the higher rank ordinal
// scores a point and equal ranks score nothing. There is no war
// carry-over: a tie simply discards both cards.
//
// # Basic Usage
//
//	g := game.New(game.Options{RNG: randutil.New(42)})
//	for !g.Finished() {
//	    round, _ := g.PlayRound()
//	    fmt.Println(game.FormatRound(g.Names(), round))
//	}
//	result, _ := g.Finish()
//
// Game is not safe for concurrent use. The runner package owns a game
// from a single goroutine and publishes Events to observers.
package game
