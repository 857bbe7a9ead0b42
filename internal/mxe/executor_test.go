package mxe

import (
	"io"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/require"

	"github.com/cardveil/holdem/internal/circuit"
	"github.com/cardveil/holdem/internal/deck"
)

func testLogger() *log.Logger {
	return log.New(io.Discard)
}

func TestDealNewHandSealsDisjointCards(t *testing.T) {
	e := NewExecutor(testLogger())
	p1 := NewKeyPair()
	p2 := NewKeyPair()

	artifacts, err := e.DealNewHand(p1.Public, p2.Public)
	require.NoError(t, err)

	h1, err := OpenCards(p1.Private, e.PublicKey(), artifacts.HoleBlobs[0])
	require.NoError(t, err)
	h2, err := OpenCards(p2.Private, e.PublicKey(), artifacts.HoleBlobs[1])
	require.NoError(t, err)

	seen := map[byte]bool{}
	for _, c := range []byte{h1[0], h1[1], h2[0], h2[1]} {
		require.Less(t, c, byte(52))
		require.False(t, seen[c], "hole cards must be disjoint")
		seen[c] = true
	}
}

func TestOpenCardsWrongKeyFails(t *testing.T) {
	e := NewExecutor(testLogger())
	p1 := NewKeyPair()
	p2 := NewKeyPair()

	artifacts, err := e.DealNewHand(p1.Public, p2.Public)
	require.NoError(t, err)

	// Player 2 cannot open player 1's blob.
	_, err = OpenCards(p2.Private, e.PublicKey(), artifacts.HoleBlobs[0])
	require.Error(t, err)
}

func TestRevealCommunityStreets(t *testing.T) {
	e := NewExecutor(testLogger())
	p1 := NewKeyPair()
	p2 := NewKeyPair()

	artifacts, err := e.DealNewHand(p1.Public, p2.Public)
	require.NoError(t, err)

	flop, err := e.RevealCommunity(artifacts.Deck, circuit.RevealFlop)
	require.NoError(t, err)
	require.Len(t, flop, 3)
	turn, err := e.RevealCommunity(artifacts.Deck, circuit.RevealTurn)
	require.NoError(t, err)
	require.Len(t, turn, 1)
	river, err := e.RevealCommunity(artifacts.Deck, circuit.RevealRiver)
	require.NoError(t, err)
	require.Len(t, river, 1)

	seen := map[byte]bool{}
	for _, c := range append(append(flop, turn...), river...) {
		require.True(t, deck.Card(c).Valid())
		require.False(t, seen[c], "board cards must be distinct")
		seen[c] = true
	}
}

func TestDetermineWinnerMatchesOpenedCards(t *testing.T) {
	e := NewExecutor(testLogger())
	p1 := NewKeyPair()
	p2 := NewKeyPair()

	for trial := 0; trial < 20; trial++ {
		artifacts, err := e.DealNewHand(p1.Public, p2.Public)
		require.NoError(t, err)

		outcome, err := e.DetermineWinner(artifacts.Deck)
		require.NoError(t, err)

		// Recompute in the clear from the players' own views plus the
		// revealed board.
		h1, err := OpenCards(p1.Private, e.PublicKey(), artifacts.HoleBlobs[0])
		require.NoError(t, err)
		h2, err := OpenCards(p2.Private, e.PublicKey(), artifacts.HoleBlobs[1])
		require.NoError(t, err)

		var board [5]deck.Card
		streets := []circuit.RevealStage{circuit.RevealFlop, circuit.RevealTurn, circuit.RevealRiver}
		i := 0
		for _, st := range streets {
			cards, err := e.RevealCommunity(artifacts.Deck, st)
			require.NoError(t, err)
			for _, c := range cards {
				board[i] = deck.Card(c)
				i++
			}
		}

		want := circuit.DetermineWinner(
			[2]deck.Card{deck.Card(h1[0]), deck.Card(h1[1])},
			[2]deck.Card{deck.Card(h2[0]), deck.Card(h2[1])},
			board,
		)
		require.Equal(t, want, outcome)
	}
}

func TestDetermineWinnerRejectsTamperedDeck(t *testing.T) {
	e := NewExecutor(testLogger())
	p1 := NewKeyPair()
	p2 := NewKeyPair()

	artifacts, err := e.DealNewHand(p1.Public, p2.Public)
	require.NoError(t, err)

	artifacts.Deck.Ciphertext[0] ^= 0xFF
	_, err = e.DetermineWinner(artifacts.Deck)
	require.Error(t, err)
}
