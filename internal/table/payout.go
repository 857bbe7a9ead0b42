package table

// rakeAmount computes the rake owed on the pot: a percentage, capped.
func (t *Table) rakeAmount() uint64 {
	raked := t.pot * t.rake.Percent / 100
	return min(raked, t.rake.Cap)
}

// payoutTo awards the entire pot, less rake, to one seat.
func (t *Table) payoutTo(seat int) {
	rake := t.rakeAmount()
	t.treasury += rake
	won := t.pot - rake
	t.stacks[seat] += won
	t.pot = 0
	t.lastWinner = seat
	t.logger.Info("pot awarded", "player", t.players[seat], "amount", won, "rake", rake)
}

// payoutSplit divides the pot on a tie. The odd chip, if any, goes to the
// seat out of position (the non-dealer), who had to act first all hand.
func (t *Table) payoutSplit() {
	rake := t.rakeAmount()
	t.treasury += rake
	remaining := t.pot - rake
	half := remaining / 2
	odd := remaining - 2*half

	t.stacks[0] += half
	t.stacks[1] += half
	t.stacks[t.otherSeat(t.dealerIdx)] += odd
	t.pot = 0
	t.lastWinner = -1
	t.logger.Info("pot split", "each", half, "odd_chip", odd, "rake", rake)
}
