package circuit

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cardveil/holdem/internal/deck"
	"github.com/cardveil/holdem/internal/randutil"
)

func holeCards(s string) [2]deck.Card {
	cards := deck.MustParseCards(s)
	return [2]deck.Card{cards[0], cards[1]}
}

func TestDetermineWinner(t *testing.T) {
	tests := []struct {
		name     string
		p1, p2   string
		board    string
		expected Outcome
	}{
		{
			// Straight flush against a pair of deuces.
			name: "p1 straight flush", p1: "AsKs", p2: "2c2d",
			board: "QsJsTs9h3d", expected: Player1Wins,
		},
		{
			name: "p2 set beats overpair", p1: "AsAh", p2: "7c7d",
			board: "7sKh2d9c4s", expected: Player2Wins,
		},
		{
			// Board plays for both: identical best hands.
			name: "board plays tie", p1: "2s3h", p2: "2d3c",
			board: "AsKsQhJdTc", expected: ShowdownTie,
		},
		{
			// Same two pair, identical kicker from the board.
			name: "split with equal kickers", p1: "KsQd", p2: "KhQc",
			board: "KdQs7h4c2s", expected: ShowdownTie,
		},
		{
			name: "kicker decides", p1: "AsKd", p2: "AhQc",
			board: "Ad8s6h4c2d", expected: Player1Wins,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var board [5]deck.Card
			copy(board[:], deck.MustParseCards(tt.board))
			got := DetermineWinner(holeCards(tt.p1), holeCards(tt.p2), board)
			require.Equal(t, tt.expected, got)
		})
	}
}

// TestDetermineWinnerMatchesScores verifies the ternary output against a
// direct comparison of the two best-of-seven scores on random deals.
func TestDetermineWinnerMatchesScores(t *testing.T) {
	rng := randutil.New(1234)
	for trial := 0; trial < 5000; trial++ {
		d := deck.New(rng)
		p1 := holeCardsFrom(d.Deal(2))
		p2 := holeCardsFrom(d.Deal(2))
		var board [5]deck.Card
		copy(board[:], d.Deal(5))

		got := DetermineWinner(p1, p2, board)

		var seven1, seven2 [7]deck.Card
		copy(seven1[:2], p1[:])
		copy(seven2[:2], p2[:])
		copy(seven1[2:], board[:])
		copy(seven2[2:], board[:])
		s1, s2 := BestOfSeven(seven1), BestOfSeven(seven2)

		switch {
		case s1 > s2:
			require.Equal(t, Player1Wins, got)
		case s2 > s1:
			require.Equal(t, Player2Wins, got)
		default:
			require.Equal(t, ShowdownTie, got)
		}
	}
}

func holeCardsFrom(cards []deck.Card) [2]deck.Card {
	return [2]deck.Card{cards[0], cards[1]}
}
