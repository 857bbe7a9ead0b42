// Package mxe models the contract of the confidential computation network:
// inputs arrive sealed, computation runs through the data-independent
// circuits, and exactly one value per instruction crosses back into public
// view. Everything else (hole cards, deck order, intermediate hand scores)
// stays inside the boundary.
package mxe

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"fmt"

	"go.dedis.ch/kyber/v4"
	"go.dedis.ch/kyber/v4/suites"
)

// Suite is the group used for key agreement between players and the
// executor. Ed25519, as elsewhere in the wire protocol.
var Suite = suites.MustFind("Ed25519")

// SealedCards is an encrypted 2-card hole allocation, readable only by the
// owning player and the executor. Nonce and ciphertext travel together on
// the wire.
type SealedCards struct {
	Nonce      []byte `json:"nonce"`
	Ciphertext []byte `json:"ciphertext"`
}

// SealedDeck is a full shuffled deal encrypted to the executor alone. It is
// handed back to the caller as an opaque blob between instructions so the
// executor itself keeps no per-hand state.
type SealedDeck struct {
	Nonce      []byte `json:"nonce"`
	Ciphertext []byte `json:"ciphertext"`
}

// KeyPair is a player's long-lived keypair for hole-card sealing.
type KeyPair struct {
	Private kyber.Scalar
	Public  kyber.Point
}

// NewKeyPair generates a fresh keypair on the executor's suite.
func NewKeyPair() KeyPair {
	priv := Suite.Scalar().Pick(Suite.RandomStream())
	return KeyPair{Private: priv, Public: Suite.Point().Mul(priv, nil)}
}

// sharedKey derives the AES key both sides of a static Diffie-Hellman
// exchange agree on.
func sharedKey(priv kyber.Scalar, peer kyber.Point) ([]byte, error) {
	point := Suite.Point().Mul(priv, peer)
	raw, err := point.MarshalBinary()
	if err != nil {
		return nil, fmt.Errorf("marshaling shared point: %w", err)
	}
	key := sha256.Sum256(raw)
	return key[:], nil
}

func sealWithKey(key, plaintext []byte) (nonce, ciphertext []byte, err error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, nil, fmt.Errorf("creating cipher: %w", err)
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, nil, fmt.Errorf("creating gcm: %w", err)
	}
	nonce = make([]byte, gcm.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return nil, nil, fmt.Errorf("generating nonce: %w", err)
	}
	return nonce, gcm.Seal(nil, nonce, plaintext, nil), nil
}

func openWithKey(key, nonce, ciphertext []byte) ([]byte, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("creating cipher: %w", err)
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("creating gcm: %w", err)
	}
	plaintext, err := gcm.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return nil, fmt.Errorf("opening sealed blob: %w", err)
	}
	return plaintext, nil
}

// OpenCards decrypts a sealed hole-card blob with the reader's private key
// and the other side's public key. Used by players client-side; the
// executor uses the same path with its own key.
func OpenCards(priv kyber.Scalar, peer kyber.Point, sealed SealedCards) ([2]byte, error) {
	var cards [2]byte
	key, err := sharedKey(priv, peer)
	if err != nil {
		return cards, err
	}
	plaintext, err := openWithKey(key, sealed.Nonce, sealed.Ciphertext)
	if err != nil {
		return cards, err
	}
	if len(plaintext) != 2 {
		return cards, fmt.Errorf("sealed blob holds %d bytes, want 2", len(plaintext))
	}
	cards[0], cards[1] = plaintext[0], plaintext[1]
	return cards, nil
}
