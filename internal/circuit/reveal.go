package circuit

// RevealStage selects which community cards a reveal releases.
type RevealStage uint8

const (
	RevealFlop RevealStage = iota
	RevealTurn
	RevealRiver
)

// String returns the street name for the stage
func (s RevealStage) String() string {
	switch s {
	case RevealFlop:
		return "flop"
	case RevealTurn:
		return "turn"
	case RevealRiver:
		return "river"
	default:
		return "unknown"
	}
}

// boardSlices maps each stage to its fixed [offset, length) in the board.
var boardSlices = [3][2]int{
	{0, 3}, // flop
	{3, 1}, // turn
	{4, 1}, // river
}

// RevealCommunity returns the cards released at the given stage as plaintext
// bytes, one byte per card holding its deck index. The slicing offsets are
// public constants: which positions leave the boundary is decided by the
// street, never by card values.
func RevealCommunity(d Deal, stage RevealStage) []byte {
	off, n := boardSlices[stage][0], boardSlices[stage][1]
	out := make([]byte, n)
	for i := 0; i < n; i++ {
		out[i] = byte(d.Board[off+i])
	}
	return out
}
