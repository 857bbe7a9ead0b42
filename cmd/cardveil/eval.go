package main

import (
	"fmt"

	"github.com/cardveil/holdem/internal/circuit"
	"github.com/cardveil/holdem/internal/deck"
)

// EvalCmd scores a hand from card notation. A public debugging tool: it
// runs the same circuits the executor runs, on cards you already know.
type EvalCmd struct {
	Cards string `arg:"" help:"5 or 7 cards in compact notation, e.g. AsKsQsJsTs"`
}

func (c *EvalCmd) Run() error {
	cards, err := deck.ParseCards(c.Cards)
	if err != nil {
		return err
	}

	var score circuit.HandScore
	switch len(cards) {
	case 5:
		var hand [5]deck.Card
		copy(hand[:], cards)
		score = circuit.Evaluate5(hand)
	case 7:
		var hand [7]deck.Card
		copy(hand[:], cards)
		score = circuit.BestOfSeven(hand)
	default:
		return fmt.Errorf("need 5 or 7 cards, got %d", len(cards))
	}

	fmt.Printf("%s  score=%#06x\n", score, uint64(score))
	return nil
}
