package circuit

import "github.com/cardveil/holdem/internal/deck"

// combos7c5 enumerates all 21 ways to choose 5 cards from 7. A constant
// table: the iteration order is public and identical for every input.
var combos7c5 = [21][5]int{
	{0, 1, 2, 3, 4}, {0, 1, 2, 3, 5}, {0, 1, 2, 3, 6},
	{0, 1, 2, 4, 5}, {0, 1, 2, 4, 6}, {0, 1, 2, 5, 6},
	{0, 1, 3, 4, 5}, {0, 1, 3, 4, 6}, {0, 1, 3, 5, 6},
	{0, 1, 4, 5, 6}, {0, 2, 3, 4, 5}, {0, 2, 3, 4, 6},
	{0, 2, 3, 5, 6}, {0, 2, 4, 5, 6}, {0, 3, 4, 5, 6},
	{1, 2, 3, 4, 5}, {1, 2, 3, 4, 6}, {1, 2, 3, 5, 6},
	{1, 2, 4, 5, 6}, {1, 3, 4, 5, 6}, {2, 3, 4, 5, 6},
}

// BestOfSeven returns the score of the strongest 5-card hand among the 21
// subsets of the 7 cards. All 21 evaluations run unconditionally and the
// running maximum is folded through a multiplexer, so there is no early
// exit and no value-dependent access pattern.
func BestOfSeven(cards [7]deck.Card) HandScore {
	var best uint64
	for _, combo := range combos7c5 {
		var hand [5]deck.Card
		for i, idx := range combo {
			hand[i] = cards[idx]
		}
		score := uint64(Evaluate5(hand))
		best = ctSelect(ctGt(score, best), score, best)
	}
	return HandScore(best)
}
