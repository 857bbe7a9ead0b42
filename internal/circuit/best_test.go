package circuit

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cardveil/holdem/internal/deck"
	"github.com/cardveil/holdem/internal/randutil"
)

func TestBestOfSevenKnownHands(t *testing.T) {
	tests := []struct {
		name     string
		cards    string
		expected Category
	}{
		{"Royal Flush", "AsKsQsJsTs9h8h", StraightFlush},
		{"Straight Flush", "9s8s7s6s5s4h3h", StraightFlush},
		{"Four of a Kind", "AsAhAdAcKs2h3h", FourOfAKind},
		{"Full House", "AsAhAdKsKh2h3h", FullHouse},
		{"Flush", "AsKsQs8s6s4h3h", Flush},
		{"Straight", "AsKhQdJcTs9h8h", Straight},
		{"Three of a Kind", "AsAhAdKs9c7h5h", ThreeOfAKind},
		{"Two Pair", "AsAhKdKs9c7h5h", TwoPair},
		{"One Pair", "AsAhKdQs9c7h5h", OnePair},
		{"High Card", "AsKhQd9s7c5h3h", HighCard},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			score := BestOfSeven(hand7(tt.cards))
			require.Equal(t, tt.expected, score.Category())
		})
	}
}

// TestBestOfSevenEqualsBruteForce cross-checks the 21-way fold against the
// maximum of the reference evaluator over every 5-card subset.
func TestBestOfSevenEqualsBruteForce(t *testing.T) {
	rng := randutil.New(99)
	for trial := 0; trial < 5000; trial++ {
		d := deck.New(rng)
		var cards [7]deck.Card
		copy(cards[:], d.Deal(7))

		var want HandScore
		for _, combo := range combos7c5 {
			var hand [5]deck.Card
			for i, idx := range combo {
				hand[i] = cards[idx]
			}
			if s := refEvaluate(hand); s > want {
				want = s
			}
		}
		require.Equal(t, want, BestOfSeven(cards), "cards %s", deck.FormatCards(cards[:]))
	}
}

func TestCombosCoverAllSubsets(t *testing.T) {
	seen := map[[5]int]bool{}
	for _, c := range combos7c5 {
		for i := 1; i < 5; i++ {
			require.Less(t, c[i-1], c[i], "combo indices must ascend")
		}
		seen[c] = true
	}
	require.Len(t, seen, 21)
}
