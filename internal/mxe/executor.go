package mxe

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/binary"
	"fmt"

	"github.com/charmbracelet/log"
	"go.dedis.ch/kyber/v4"

	"github.com/cardveil/holdem/internal/circuit"
	"github.com/cardveil/holdem/internal/deck"
)

// Executor runs the confidential instructions. Each method is one
// instruction: it unseals its inputs, runs a data-independent circuit, and
// releases a single public value. The executor holds only its keypair;
// per-hand material travels as sealed blobs so instructions stay one-shot
// and retryable.
type Executor struct {
	keys    KeyPair
	deckKey []byte
	logger  *log.Logger
}

// HandArtifacts is the public output of one deal: a sealed hole blob per
// player and the deck sealed to the executor for later instructions.
type HandArtifacts struct {
	HoleBlobs [2]SealedCards
	Deck      SealedDeck
}

// NewExecutor creates an executor with a fresh cluster keypair.
func NewExecutor(logger *log.Logger) *Executor {
	keys := NewKeyPair()
	raw, _ := keys.Private.MarshalBinary()
	deckKey := sha256.Sum256(append(raw, []byte("deck-seal")...))
	return &Executor{
		keys:    keys,
		deckKey: deckKey[:],
		logger:  logger.WithPrefix("mxe"),
	}
}

// PublicKey returns the executor's public key. Players seal against it and
// verify blobs came from the executor's side of the exchange.
func (e *Executor) PublicKey() kyber.Point {
	return e.keys.Public
}

// DealNewHand shuffles a deck under a fresh secret seed and seals the
// allocations: each player's hole cards under that player's shared key, the
// whole deal under the executor's own key. Nothing about the card order is
// released.
func (e *Executor) DealNewHand(p1Pub, p2Pub kyber.Point) (HandArtifacts, error) {
	var out HandArtifacts

	var seedBytes [8]byte
	if _, err := rand.Read(seedBytes[:]); err != nil {
		return out, fmt.Errorf("drawing shuffle seed: %w", err)
	}
	dealt := circuit.ShuffleAndDeal(binary.LittleEndian.Uint64(seedBytes[:]))

	holes := [2][2]deck.Card{dealt.Hole1, dealt.Hole2}
	for i, pub := range []kyber.Point{p1Pub, p2Pub} {
		key, err := sharedKey(e.keys.Private, pub)
		if err != nil {
			return out, fmt.Errorf("deriving player %d key: %w", i+1, err)
		}
		nonce, ct, err := sealWithKey(key, []byte{byte(holes[i][0]), byte(holes[i][1])})
		if err != nil {
			return out, fmt.Errorf("sealing player %d hole cards: %w", i+1, err)
		}
		out.HoleBlobs[i] = SealedCards{Nonce: nonce, Ciphertext: ct}
	}

	sealed, err := e.sealDeck(dealt)
	if err != nil {
		return out, err
	}
	out.Deck = sealed

	e.logger.Debug("dealt new hand")
	return out, nil
}

// RevealCommunity opens the sealed deal and releases the street's community
// cards as plaintext bytes, one byte per card. The slicing is fixed per
// street; this is the deal instruction's only reveal path.
func (e *Executor) RevealCommunity(sealed SealedDeck, stage circuit.RevealStage) ([]byte, error) {
	dealt, err := e.openDeck(sealed)
	if err != nil {
		return nil, err
	}
	cards := circuit.RevealCommunity(dealt, stage)
	e.logger.Debug("revealed community cards", "stage", stage.String(), "count", len(cards))
	return cards, nil
}

// DetermineWinner opens the sealed deal, runs the showdown circuit over
// both 7-card hands, and releases the ternary outcome. The hand scores and
// the winning 5-card subset never leave this call.
func (e *Executor) DetermineWinner(sealed SealedDeck) (circuit.Outcome, error) {
	dealt, err := e.openDeck(sealed)
	if err != nil {
		return 0, err
	}
	outcome := circuit.DetermineWinner(dealt.Hole1, dealt.Hole2, dealt.Board)
	e.logger.Debug("showdown computed", "outcome", outcome.String())
	return outcome, nil
}

func (e *Executor) sealDeck(d circuit.Deal) (SealedDeck, error) {
	payload := make([]byte, 0, 52)
	payload = append(payload, byte(d.Hole1[0]), byte(d.Hole1[1]), byte(d.Hole2[0]), byte(d.Hole2[1]))
	for _, c := range d.Board {
		payload = append(payload, byte(c))
	}
	for _, c := range d.Rest {
		payload = append(payload, byte(c))
	}
	nonce, ct, err := sealWithKey(e.deckKey, payload)
	if err != nil {
		return SealedDeck{}, fmt.Errorf("sealing deck: %w", err)
	}
	return SealedDeck{Nonce: nonce, Ciphertext: ct}, nil
}

func (e *Executor) openDeck(sealed SealedDeck) (circuit.Deal, error) {
	var d circuit.Deal
	payload, err := openWithKey(e.deckKey, sealed.Nonce, sealed.Ciphertext)
	if err != nil {
		return d, fmt.Errorf("opening deck: %w", err)
	}
	if len(payload) != 52 {
		return d, fmt.Errorf("sealed deck holds %d bytes, want 52", len(payload))
	}
	d.Hole1[0], d.Hole1[1] = deck.Card(payload[0]), deck.Card(payload[1])
	d.Hole2[0], d.Hole2[1] = deck.Card(payload[2]), deck.Card(payload[3])
	for i := 0; i < 5; i++ {
		d.Board[i] = deck.Card(payload[4+i])
	}
	for i := 0; i < 43; i++ {
		d.Rest[i] = deck.Card(payload[9+i])
	}
	return d, nil
}
