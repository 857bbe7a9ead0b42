package server

import (
	"fmt"
	"time"

	"github.com/cardveil/holdem/internal/deck"
	"github.com/cardveil/holdem/internal/protocol"
	"github.com/cardveil/holdem/internal/table"
)

// runHand drives one complete hand: deal through the executor, betting
// rounds against the clients, reveals, and settlement. Every piece of
// hidden state stays inside the executor's sealed artifacts; the runner
// only ever forwards public outputs.
func (h *tableHost) runHand() error {
	h.mu.Lock()
	p1, p2 := h.seats[0], h.seats[1]
	handID := fmt.Sprintf("%s-%d", h.name, h.handSeq)
	h.mu.Unlock()

	if err := h.tbl.StartHand(); err != nil {
		return err
	}
	artifacts, err := h.executor.DealNewHand(p1.pub, p2.pub)
	if err != nil {
		return fmt.Errorf("dealing: %w", err)
	}
	if err := h.tbl.OnDealt(); err != nil {
		return err
	}

	for _, pc := range []*playerConn{p1, p2} {
		blob := artifacts.HoleBlobs[pc.seat]
		msg := protocol.HandStart{
			Type:       protocol.TypeHandStart,
			HandID:     handID,
			Dealer:     h.tbl.Dealer(),
			YourSeat:   pc.seat,
			HoleNonce:  blob.Nonce,
			HoleSealed: blob.Ciphertext,
			Stacks:     h.tbl.Stacks(),
		}
		if err := pc.send(msg); err != nil {
			h.logger.Warn("sending hand start", "player", pc.name, "err", err)
		}
	}

	for {
		if stage, pending := h.tbl.PendingReveal(); pending {
			cards, err := h.executor.RevealCommunity(artifacts.Deck, stage)
			if err != nil {
				return fmt.Errorf("revealing %s: %w", stage, err)
			}
			if err := h.tbl.OnCommunityRevealed(stage, cards); err != nil {
				return err
			}
			h.broadcast(protocol.StreetChange{
				Type:   protocol.TypeStreetChange,
				HandID: handID,
				Street: stage.String(),
				Board:  visibleBoardStrings(h.tbl),
			})
			continue
		}

		switch h.tbl.Phase() {
		case table.PhaseShowdown:
			outcome, err := h.executor.DetermineWinner(artifacts.Deck)
			if err != nil {
				return fmt.Errorf("showdown: %w", err)
			}
			if err := h.tbl.OnWinnerDetermined(outcome); err != nil {
				return err
			}
			h.broadcast(protocol.HandResult{
				Type:    protocol.TypeHandResult,
				HandID:  handID,
				Outcome: outcome.String(),
				Winner:  h.tbl.LastWinner(),
				Stacks:  h.tbl.Stacks(),
			})
			return nil

		case table.PhaseHandOver:
			// Ended on a fold; the executor was never consulted.
			h.broadcast(protocol.HandResult{
				Type:    protocol.TypeHandResult,
				HandID:  handID,
				Outcome: "fold",
				Winner:  h.tbl.LastWinner(),
				Stacks:  h.tbl.Stacks(),
			})
			return nil

		default:
			if err := h.awaitAction(handID); err != nil {
				return err
			}
		}
	}
}

// awaitAction requests a decision from the player to act and applies it,
// folding them through the table's crank if the turn timer expires.
func (h *tableHost) awaitAction(handID string) error {
	seat := h.tbl.CurrentTurn()
	h.mu.Lock()
	pc := h.seats[seat]
	h.mu.Unlock()
	if pc == nil {
		return fmt.Errorf("no connection for seat %d", seat)
	}

	valid := h.tbl.ValidActions()
	names := make([]string, len(valid))
	for i, a := range valid {
		names[i] = a.String()
	}
	pc.drainStale()
	if err := pc.send(protocol.ActionRequest{
		Type:         protocol.TypeActionRequest,
		HandID:       handID,
		ValidActions: names,
		ToCall:       h.tbl.ToCall(),
		MinRaiseTo:   h.tbl.MinRaiseTo(),
		Pot:          h.tbl.Pot(),
	}); err != nil {
		h.logger.Warn("sending action request", "player", pc.name, "err", err)
	}

	// Allow a grace period past the table's own timeout before cranking,
	// so the table-side check always passes.
	timer := h.clock.NewTimer(h.actionWait())
	defer timer.Stop()

	for {
		select {
		case msg := <-pc.decisions:
			action, err := table.ParseAction(msg.Action)
			if err != nil {
				h.sendError(pc, "bad_action", err.Error())
				continue
			}
			if err := h.tbl.Act(pc.name, action, msg.Amount); err != nil {
				h.sendError(pc, "invalid_action", err.Error())
				continue
			}
			h.broadcast(protocol.PlayerAction{
				Type:   protocol.TypePlayerAction,
				HandID: handID,
				Seat:   seat,
				Name:   pc.name,
				Action: action.String(),
				Pot:    h.tbl.Pot(),
				Stacks: h.tbl.Stacks(),
			})
			return nil

		case <-timer.C:
			if err := h.tbl.CrankFold(); err != nil {
				return fmt.Errorf("cranking expired turn: %w", err)
			}
			h.broadcast(protocol.PlayerAction{
				Type:   protocol.TypePlayerAction,
				HandID: handID,
				Seat:   seat,
				Name:   pc.name,
				Action: "timeout_fold",
				Pot:    h.tbl.Pot(),
				Stacks: h.tbl.Stacks(),
			})
			return nil
		}
	}
}

func (h *tableHost) actionWait() time.Duration {
	return h.tbl.ActionTimeout() + time.Second
}

func visibleBoardStrings(tbl *table.Table) []string {
	var out []string
	for _, c := range tbl.Board() {
		if c != deck.NoCard {
			out = append(out, c.String())
		}
	}
	return out
}
