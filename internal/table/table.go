// Package table is the public side of the protocol: a heads-up hold'em
// betting state machine with escrow, blinds, rake, and a turn timer. It
// never sees a card that has not been revealed; hidden state lives behind
// the executor's sealed blobs and the table only consumes the executor's
// public outputs (revealed community bytes, the ternary showdown outcome).
package table

import (
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"

	"github.com/cardveil/holdem/internal/circuit"
	"github.com/cardveil/holdem/internal/deck"
)

// MaxPlayers is the seat count; the protocol is heads-up only.
const MaxPlayers = 2

// GamePhase is the current stage of a hand.
type GamePhase uint8

const (
	PhaseIdle GamePhase = iota
	PhaseDealing
	PhasePreFlop
	PhaseFlop
	PhaseTurn
	PhaseRiver
	PhaseShowdown
	PhaseHandOver
)

// String returns the phase name
func (p GamePhase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseDealing:
		return "dealing"
	case PhasePreFlop:
		return "preflop"
	case PhaseFlop:
		return "flop"
	case PhaseTurn:
		return "turn"
	case PhaseRiver:
		return "river"
	case PhaseShowdown:
		return "showdown"
	case PhaseHandOver:
		return "hand_over"
	default:
		return "unknown"
	}
}

// RakeConfig is the platform-wide rake rule: a percentage of each pot,
// capped at a fixed amount, credited to the treasury.
type RakeConfig struct {
	Percent uint64
	Cap     uint64
}

// Config holds the immutable parameters of one table.
type Config struct {
	TableID    uint64
	SmallBlind uint64
	BigBlind   uint64
	BuyIn      uint64
}

// Table is the mutable public state of one heads-up table.
type Table struct {
	cfg  Config
	rake RakeConfig

	players [MaxPlayers]string // player IDs; "" is an empty seat
	stacks  [MaxPlayers]uint64
	phase   GamePhase
	pot     uint64
	bets    [MaxPlayers]uint64
	board   [5]deck.Card
	allIn   [MaxPlayers]bool
	folded  [MaxPlayers]bool

	turnIdx   int
	dealerIdx int

	currentBet    uint64
	acted         [MaxPlayers]bool
	bettingClosed bool // all-in run-out: no further betting this hand

	pendingReveal circuit.RevealStage
	revealPending bool

	treasury      uint64
	lastWinner    int
	lastAction    time.Time
	actionTimeout time.Duration

	clock  quartz.Clock
	logger *log.Logger
}

// Option configures a Table.
type Option func(*Table)

// WithClock substitutes the clock, letting tests drive the turn timer.
func WithClock(clock quartz.Clock) Option {
	return func(t *Table) { t.clock = clock }
}

// WithActionTimeout sets how long a player may sit on their turn before
// CrankFold may forfeit them.
func WithActionTimeout(d time.Duration) Option {
	return func(t *Table) { t.actionTimeout = d }
}

// New creates an empty table.
func New(cfg Config, rake RakeConfig, logger *log.Logger, opts ...Option) *Table {
	t := &Table{
		cfg:           cfg,
		rake:          rake,
		phase:         PhaseIdle,
		clock:         quartz.NewReal(),
		actionTimeout: 30 * time.Second,
		logger:        logger.WithPrefix("table").With("table", cfg.TableID),
	}
	for i := range t.board {
		t.board[i] = deck.NoCard
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Join seats a player, escrowing the buy-in. Returns the seat index.
func (t *Table) Join(playerID string) (int, error) {
	if playerID == "" {
		return 0, fmt.Errorf("empty player id")
	}
	for _, p := range t.players {
		if p == playerID {
			return 0, fmt.Errorf("player %s already seated", playerID)
		}
	}
	for i := range t.players {
		if t.players[i] == "" {
			t.players[i] = playerID
			t.stacks[i] = t.cfg.BuyIn
			t.logger.Info("player joined", "player", playerID, "seat", i)
			return i, nil
		}
	}
	return 0, fmt.Errorf("table is full")
}

// Leave releases a seat and returns the escrowed stack. Only allowed while
// no hand is in progress.
func (t *Table) Leave(playerID string) (uint64, error) {
	if t.phase != PhaseIdle && t.phase != PhaseHandOver {
		return 0, fmt.Errorf("cannot leave during a hand (phase %s)", t.phase)
	}
	for i := range t.players {
		if t.players[i] == playerID {
			stack := t.stacks[i]
			t.players[i] = ""
			t.stacks[i] = 0
			t.logger.Info("player left", "player", playerID, "returned", stack)
			return stack, nil
		}
	}
	return 0, fmt.Errorf("player %s is not seated", playerID)
}

// Seat returns the seat index of a player, or -1.
func (t *Table) Seat(playerID string) int {
	for i := range t.players {
		if t.players[i] == playerID {
			return i
		}
	}
	return -1
}

// Accessors for the public state.

func (t *Table) Phase() GamePhase            { return t.phase }
func (t *Table) Pot() uint64                 { return t.pot }
func (t *Table) Stacks() [MaxPlayers]uint64  { return t.stacks }
func (t *Table) Bets() [MaxPlayers]uint64    { return t.bets }
func (t *Table) Board() []deck.Card          { return append([]deck.Card(nil), t.board[:]...) }
func (t *Table) CurrentTurn() int            { return t.turnIdx }
func (t *Table) Dealer() int                 { return t.dealerIdx }
func (t *Table) Treasury() uint64            { return t.treasury }
func (t *Table) Players() [MaxPlayers]string { return t.players }

func (t *Table) SmallBlindAmount() uint64 { return t.cfg.SmallBlind }
func (t *Table) BigBlindAmount() uint64   { return t.cfg.BigBlind }
func (t *Table) BuyInAmount() uint64      { return t.cfg.BuyIn }

// ActionTimeout is the configured turn timer.
func (t *Table) ActionTimeout() time.Duration { return t.actionTimeout }

// LastWinner is the seat that took the last pot, or -1 after a split.
// Valid once the hand reaches HandOver.
func (t *Table) LastWinner() int { return t.lastWinner }

// ToCall is the amount the player to act must add to continue.
func (t *Table) ToCall() uint64 {
	return t.currentBet - t.bets[t.turnIdx]
}

// MinRaiseTo is the smallest legal raise-to total for the player to act.
func (t *Table) MinRaiseTo() uint64 {
	return t.currentBet + t.cfg.BigBlind
}

// PendingReveal reports whether the table is waiting on the executor to
// reveal community cards, and for which street.
func (t *Table) PendingReveal() (circuit.RevealStage, bool) {
	return t.pendingReveal, t.revealPending
}

func (t *Table) touch() {
	t.lastAction = t.clock.Now()
}

func (t *Table) otherSeat(seat int) int {
	return 1 - seat
}
