package circuit

import "github.com/cardveil/holdem/internal/deck"

// Outcome is the ternary showdown result, the only value the confidential
// computation ever releases.
type Outcome uint8

const (
	Player1Wins Outcome = 0
	Player2Wins Outcome = 1
	ShowdownTie Outcome = 2
)

// String returns the readable name of the outcome
func (o Outcome) String() string {
	switch o {
	case Player1Wins:
		return "player 1 wins"
	case Player2Wins:
		return "player 2 wins"
	case ShowdownTie:
		return "tie"
	default:
		return "unknown"
	}
}

// DetermineWinner compares the best 5-card hands formed from each player's
// hole cards plus the shared board. The two intermediate scores stay local
// to this call; only the ternary outcome escapes. Inputs must be 14 distinct
// cards from one deck, a precondition enforced by the dealing circuit.
func DetermineWinner(p1Hole, p2Hole [2]deck.Card, board [5]deck.Card) Outcome {
	var seven1, seven2 [7]deck.Card
	seven1[0], seven1[1] = p1Hole[0], p1Hole[1]
	seven2[0], seven2[1] = p2Hole[0], p2Hole[1]
	for i := 0; i < 5; i++ {
		seven1[i+2] = board[i]
		seven2[i+2] = board[i]
	}

	score1 := uint64(BestOfSeven(seven1))
	score2 := uint64(BestOfSeven(seven2))

	p1Wins := ctGt(score1, score2)
	p2Wins := ctGt(score2, score1)
	// Exactly one term is active: the tie indicator is the complement of
	// both win conditions.
	result := p2Wins + 2*((p1Wins^1)&(p2Wins^1))
	return Outcome(result)
}
