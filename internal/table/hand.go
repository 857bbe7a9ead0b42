package table

import (
	"fmt"

	"github.com/cardveil/holdem/internal/circuit"
	"github.com/cardveil/holdem/internal/deck"
)

// StartHand begins a new hand: flips the dealer button, posts blinds, and
// moves to Dealing. The caller then asks the executor to shuffle and calls
// OnDealt with success.
func (t *Table) StartHand() error {
	if t.phase != PhaseIdle && t.phase != PhaseHandOver {
		return fmt.Errorf("cannot start a hand in phase %s", t.phase)
	}
	if t.players[0] == "" || t.players[1] == "" {
		return fmt.Errorf("need two seated players")
	}
	if t.stacks[0] == 0 || t.stacks[1] == 0 {
		return fmt.Errorf("both players need chips")
	}

	if t.phase == PhaseHandOver {
		t.dealerIdx = t.otherSeat(t.dealerIdx)
	}

	t.pot = 0
	t.bets = [MaxPlayers]uint64{}
	t.allIn = [MaxPlayers]bool{}
	t.folded = [MaxPlayers]bool{}
	t.acted = [MaxPlayers]bool{}
	t.bettingClosed = false
	t.revealPending = false
	t.currentBet = 0
	for i := range t.board {
		t.board[i] = deck.NoCard
	}

	// Heads-up: the dealer posts the small blind and acts first preflop.
	t.postBlind(t.dealerIdx, t.cfg.SmallBlind)
	t.postBlind(t.otherSeat(t.dealerIdx), t.cfg.BigBlind)
	t.currentBet = t.bets[t.otherSeat(t.dealerIdx)]
	t.turnIdx = t.dealerIdx

	t.phase = PhaseDealing
	t.touch()
	t.logger.Info("hand started", "dealer", t.dealerIdx, "pot", t.potTotal())
	return nil
}

func (t *Table) postBlind(seat int, amount uint64) {
	blind := min(amount, t.stacks[seat])
	t.stacks[seat] -= blind
	t.bets[seat] += blind
	if t.stacks[seat] == 0 {
		t.allIn[seat] = true
	}
}

// OnDealt is the callback for a completed shuffle-and-deal computation.
// Betting opens preflop.
func (t *Table) OnDealt() error {
	if t.phase != PhaseDealing {
		return fmt.Errorf("not dealing (phase %s)", t.phase)
	}
	t.phase = PhasePreFlop
	t.touch()
	switch {
	case t.allIn[0] && t.allIn[1]:
		t.closeStreet()
	case t.allIn[0] || t.allIn[1]:
		short := 0
		if t.allIn[1] {
			short = 1
		}
		live := t.otherSeat(short)
		if t.bets[live] >= t.bets[short] {
			// The live player's blind already covers the all-in; no
			// decision remains.
			t.closeStreet()
		} else {
			// A blind put the opponent all-in for more than the live
			// player has posted. The live player still chooses to call
			// the remainder or fold.
			t.turnIdx = live
		}
	}
	return nil
}

// OnCommunityRevealed consumes the executor's reveal output for the street
// the table is waiting on. Cards arrive as one byte per card.
func (t *Table) OnCommunityRevealed(stage circuit.RevealStage, cards []byte) error {
	if !t.revealPending || stage != t.pendingReveal {
		return fmt.Errorf("no reveal pending for stage %s", stage)
	}
	offsets := map[circuit.RevealStage]int{
		circuit.RevealFlop:  0,
		circuit.RevealTurn:  3,
		circuit.RevealRiver: 4,
	}
	wantLen := map[circuit.RevealStage]int{
		circuit.RevealFlop:  3,
		circuit.RevealTurn:  1,
		circuit.RevealRiver: 1,
	}
	if len(cards) != wantLen[stage] {
		return fmt.Errorf("reveal for %s has %d cards, want %d", stage, len(cards), wantLen[stage])
	}
	for i, c := range cards {
		card := deck.Card(c)
		if !card.Valid() {
			return fmt.Errorf("revealed card %d out of range", c)
		}
		t.board[offsets[stage]+i] = card
	}
	t.revealPending = false
	t.touch()
	t.logger.Info("community revealed", "stage", stage.String(), "board", deck.FormatCards(t.visibleBoard()))

	if t.bettingClosed {
		// All-in run-out: no betting rounds remain, chain straight to
		// the next reveal or the showdown.
		t.advanceStreet()
	} else {
		// Postflop the non-dealer acts first.
		t.turnIdx = t.otherSeat(t.dealerIdx)
		t.acted = [MaxPlayers]bool{}
		t.currentBet = 0
	}
	return nil
}

// OnWinnerDetermined consumes the showdown outcome and settles the pot.
func (t *Table) OnWinnerDetermined(outcome circuit.Outcome) error {
	if t.phase != PhaseShowdown {
		return fmt.Errorf("not at showdown (phase %s)", t.phase)
	}
	switch outcome {
	case circuit.Player1Wins:
		t.payoutTo(0)
	case circuit.Player2Wins:
		t.payoutTo(1)
	case circuit.ShowdownTie:
		t.payoutSplit()
	default:
		return fmt.Errorf("invalid outcome %d", outcome)
	}
	t.phase = PhaseHandOver
	t.touch()
	return nil
}

// advanceStreet moves the hand forward after a betting round closes.
func (t *Table) advanceStreet() {
	t.collectBets()
	switch t.phase {
	case PhasePreFlop:
		t.phase = PhaseFlop
		t.pendingReveal = circuit.RevealFlop
		t.revealPending = true
	case PhaseFlop:
		t.phase = PhaseTurn
		t.pendingReveal = circuit.RevealTurn
		t.revealPending = true
	case PhaseTurn:
		t.phase = PhaseRiver
		t.pendingReveal = circuit.RevealRiver
		t.revealPending = true
	case PhaseRiver:
		t.phase = PhaseShowdown
	}
}

// collectBets sweeps the round's bets into the pot, refunding any uncalled
// excess created by a short all-in call.
func (t *Table) collectBets() {
	matched := min(t.bets[0], t.bets[1])
	for i := range t.bets {
		excess := t.bets[i] - matched
		t.stacks[i] += excess
		t.pot += matched
		t.bets[i] = 0
	}
	t.currentBet = 0
}

func (t *Table) potTotal() uint64 {
	return t.pot + t.bets[0] + t.bets[1]
}

func (t *Table) visibleBoard() []deck.Card {
	var cards []deck.Card
	for _, c := range t.board {
		if c != deck.NoCard {
			cards = append(cards, c)
		}
	}
	return cards
}
