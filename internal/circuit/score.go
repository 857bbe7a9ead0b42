package circuit

import (
	"fmt"

	"github.com/cardveil/holdem/internal/deck"
)

// HandScore is the strength of a 5-card hand packed into the low 24 bits of
// a uint64: category in bits 20-23, then the five ordered kicker ranks in
// descending 4-bit fields. The packing is a strict total order isomorphic to
// poker hand strength: score(A) > score(B) exactly when A beats B, equal
// exactly on a true tie.
//
// Scores are intermediate secrets. They exist only inside the confidential
// boundary; the executor releases the ternary outcome, never a score.
type HandScore uint64

// Category is the primary hand class, 0 (high card) through 8 (straight flush).
type Category uint8

const (
	HighCard Category = iota
	OnePair
	TwoPair
	ThreeOfAKind
	Straight
	Flush
	FullHouse
	FourOfAKind
	StraightFlush
)

// String returns the readable name of the category
func (c Category) String() string {
	switch c {
	case HighCard:
		return "High Card"
	case OnePair:
		return "One Pair"
	case TwoPair:
		return "Two Pair"
	case ThreeOfAKind:
		return "Three of a Kind"
	case Straight:
		return "Straight"
	case Flush:
		return "Flush"
	case FullHouse:
		return "Full House"
	case FourOfAKind:
		return "Four of a Kind"
	case StraightFlush:
		return "Straight Flush"
	default:
		return "Unknown"
	}
}

// Category returns the hand class encoded in the score
func (s HandScore) Category() Category {
	return Category(s >> 20)
}

// Kickers returns the five ordered tie-break ranks encoded in the score
func (s HandScore) Kickers() [5]deck.Rank {
	var k [5]deck.Rank
	for i := 0; i < 5; i++ {
		k[i] = deck.Rank((s >> (16 - 4*i)) & 0xF)
	}
	return k
}

// String describes the hand, e.g. "Full House [K K K Q Q]"
func (s HandScore) String() string {
	k := s.Kickers()
	return fmt.Sprintf("%s [%s %s %s %s %s]", s.Category(), k[0], k[1], k[2], k[3], k[4])
}
