package circuit

import (
	"github.com/cardveil/holdem/internal/deck"
	"github.com/cardveil/holdem/internal/randutil"
)

// Deal is the outcome of one shuffle: two private hole allocations, the five
// community cards in reveal order, and the unused remainder of the deck.
type Deal struct {
	Hole1 [2]deck.Card
	Hole2 [2]deck.Card
	Board [5]deck.Card
	Rest  [43]deck.Card
}

// ShuffleAndDeal permutes the 52-card deck under a secret seed and slices
// the permutation into disjoint allocations. The shuffle tags every card
// with a random sort key and pushes the tagged words through the fixed
// 52-element Batcher network, so the swap schedule is a deck-size constant
// and never depends on the seed.
func ShuffleAndDeal(seed uint64) Deal {
	var tagged [52]uint64
	for i := 0; i < 52; i++ {
		// Key in the high 58 bits, card index in the low 6. Distinct
		// low bits break any key collision, keeping the permutation
		// well defined.
		key := randutil.Mix64(seed + uint64(i)*0x9e3779b97f4a7c15)
		tagged[i] = key<<6 | uint64(i)
	}
	sortDesc(tagged[:], sortNet52)

	var d Deal
	d.Hole1[0] = deck.Card(tagged[0] & 0x3F)
	d.Hole1[1] = deck.Card(tagged[1] & 0x3F)
	d.Hole2[0] = deck.Card(tagged[2] & 0x3F)
	d.Hole2[1] = deck.Card(tagged[3] & 0x3F)
	for i := 0; i < 5; i++ {
		d.Board[i] = deck.Card(tagged[4+i] & 0x3F)
	}
	for i := 0; i < 43; i++ {
		d.Rest[i] = deck.Card(tagged[9+i] & 0x3F)
	}
	return d
}
