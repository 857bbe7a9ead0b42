package table

import "fmt"

// Action is a betting move.
type Action uint8

const (
	ActionFold Action = iota
	ActionCheck
	ActionCall
	ActionRaise
	ActionAllIn
)

// String returns the action name
func (a Action) String() string {
	switch a {
	case ActionFold:
		return "fold"
	case ActionCheck:
		return "check"
	case ActionCall:
		return "call"
	case ActionRaise:
		return "raise"
	case ActionAllIn:
		return "allin"
	default:
		return "unknown"
	}
}

// ParseAction maps a wire action name to an Action.
func ParseAction(s string) (Action, error) {
	switch s {
	case "fold":
		return ActionFold, nil
	case "check":
		return ActionCheck, nil
	case "call":
		return ActionCall, nil
	case "raise":
		return ActionRaise, nil
	case "allin":
		return ActionAllIn, nil
	default:
		return 0, fmt.Errorf("unknown action %q", s)
	}
}

// bettingPhase reports whether betting is open in the current phase.
func (t *Table) bettingPhase() bool {
	switch t.phase {
	case PhasePreFlop, PhaseFlop, PhaseTurn, PhaseRiver:
		return !t.revealPending && !t.bettingClosed
	default:
		return false
	}
}

// ValidActions returns the actions open to the player to act.
func (t *Table) ValidActions() []Action {
	if !t.bettingPhase() {
		return nil
	}
	seat := t.turnIdx
	toCall := t.currentBet - t.bets[seat]
	actions := []Action{ActionFold}
	if toCall == 0 {
		actions = append(actions, ActionCheck)
	} else {
		actions = append(actions, ActionCall)
	}
	if t.stacks[seat] > toCall {
		actions = append(actions, ActionRaise)
	}
	if t.stacks[seat] > 0 {
		actions = append(actions, ActionAllIn)
	}
	return actions
}

// Act applies one betting action by the given player. For raises, amount is
// the total this round is being raised to, not the increment.
func (t *Table) Act(playerID string, action Action, amount uint64) error {
	seat := t.Seat(playerID)
	if seat < 0 {
		return fmt.Errorf("player %s is not seated", playerID)
	}
	if !t.bettingPhase() {
		return fmt.Errorf("no betting open in phase %s", t.phase)
	}
	if seat != t.turnIdx {
		return fmt.Errorf("not %s's turn", playerID)
	}

	toCall := t.currentBet - t.bets[seat]

	switch action {
	case ActionFold:
		t.fold(seat)
		return nil

	case ActionCheck:
		if toCall != 0 {
			return fmt.Errorf("cannot check facing a bet of %d", toCall)
		}

	case ActionCall:
		if toCall == 0 {
			return fmt.Errorf("nothing to call")
		}
		t.commit(seat, min(toCall, t.stacks[seat]))

	case ActionRaise:
		minRaiseTo := t.currentBet + t.cfg.BigBlind
		if amount < minRaiseTo {
			return fmt.Errorf("raise to %d is below minimum %d", amount, minRaiseTo)
		}
		needed := amount - t.bets[seat]
		if needed > t.stacks[seat] {
			return fmt.Errorf("raise to %d exceeds stack", amount)
		}
		t.commit(seat, needed)
		t.currentBet = t.bets[seat]
		// A raise reopens the action.
		t.acted[t.otherSeat(seat)] = false

	case ActionAllIn:
		if t.stacks[seat] == 0 {
			return fmt.Errorf("no chips to move in")
		}
		t.commit(seat, t.stacks[seat])
		if t.bets[seat] > t.currentBet {
			t.currentBet = t.bets[seat]
			t.acted[t.otherSeat(seat)] = false
		}

	default:
		return fmt.Errorf("unknown action %d", action)
	}

	t.acted[seat] = true
	t.touch()
	t.logger.Info("action", "player", playerID, "action", action.String(), "pot", t.potTotal())

	if t.roundComplete() {
		t.closeStreet()
	} else {
		t.turnIdx = t.otherSeat(seat)
	}
	return nil
}

func (t *Table) commit(seat int, amount uint64) {
	t.stacks[seat] -= amount
	t.bets[seat] += amount
	if t.stacks[seat] == 0 {
		t.allIn[seat] = true
	}
}

// roundComplete reports whether the betting round is finished: both players
// have acted since the last raise and the bets match (or a short all-in
// cannot match).
func (t *Table) roundComplete() bool {
	for seat := range t.acted {
		if !t.acted[seat] && !t.allIn[seat] && !t.folded[seat] {
			return false
		}
	}
	if t.bets[0] == t.bets[1] {
		return true
	}
	// Unequal bets are final only if the shorter side is all-in.
	short := 0
	if t.bets[1] < t.bets[0] {
		short = 1
	}
	return t.allIn[short]
}

// closeStreet ends the current betting round and advances the hand. If
// either player is all-in the rest of the hand runs out with betting
// closed.
func (t *Table) closeStreet() {
	if t.allIn[0] || t.allIn[1] {
		t.bettingClosed = true
	}
	t.advanceStreet()
}

// fold ends the hand immediately in the opponent's favor. The executor is
// never consulted: a fold reveals nothing.
func (t *Table) fold(seat int) {
	t.folded[seat] = true
	winner := t.otherSeat(seat)

	// Refund the winner's uncalled excess before sweeping the pot.
	t.collectBets()
	t.payoutTo(winner)
	t.phase = PhaseHandOver
	t.touch()
	t.logger.Info("fold", "folded", t.players[seat], "winner", t.players[winner])
}

// CrankFold forfeits the player to act if their turn timer has expired.
// Anyone may crank; the check is against the table clock.
func (t *Table) CrankFold() error {
	if !t.bettingPhase() {
		return fmt.Errorf("no action to crank in phase %s", t.phase)
	}
	elapsed := t.clock.Now().Sub(t.lastAction)
	if elapsed < t.actionTimeout {
		return fmt.Errorf("turn timer has %s remaining", t.actionTimeout-elapsed)
	}
	t.logger.Warn("turn timer expired, folding", "player", t.players[t.turnIdx])
	t.fold(t.turnIdx)
	return nil
}
