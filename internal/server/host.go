package server

import (
	"fmt"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/gorilla/websocket"
	"go.dedis.ch/kyber/v4"

	"github.com/cardveil/holdem/internal/mxe"
	"github.com/cardveil/holdem/internal/protocol"
	"github.com/cardveil/holdem/internal/table"
)

// tableHost owns one table: its seats, their connections, and the hand
// runner that drives the table against the executor.
type tableHost struct {
	name     string
	tbl      *table.Table
	executor *mxe.Executor
	clock    quartz.Clock
	logger   *log.Logger

	mu       sync.Mutex
	seats    [table.MaxPlayers]*playerConn
	handSeq  int
	inHand   bool
}

// playerConn is one seated player's connection.
type playerConn struct {
	name      string
	seat      int
	conn      *websocket.Conn
	pub       kyber.Point
	decisions chan protocol.Action

	writeMu sync.Mutex
}

func newTableHost(name string, cfg table.Config, rake table.RakeConfig, executor *mxe.Executor, clock quartz.Clock, logger *log.Logger, opts ...table.Option) *tableHost {
	return &tableHost{
		name:     name,
		tbl:      table.New(cfg, rake, logger, opts...),
		executor: executor,
		clock:    clock,
		logger:   logger.WithPrefix("host").With("table", name),
	}
}

// drainStale empties any decision buffered before the current action
// request existed. A pre-typed action must not answer a bet the player has
// never seen.
func (pc *playerConn) drainStale() {
	select {
	case <-pc.decisions:
	default:
	}
}

func (pc *playerConn) send(msg any) error {
	data, err := protocol.Marshal(msg)
	if err != nil {
		return err
	}
	pc.writeMu.Lock()
	defer pc.writeMu.Unlock()
	return pc.conn.WriteMessage(websocket.TextMessage, data)
}

func (h *tableHost) broadcast(msg any) {
	h.mu.Lock()
	seats := h.seats
	h.mu.Unlock()
	for _, pc := range seats {
		if pc == nil {
			continue
		}
		if err := pc.send(msg); err != nil {
			h.logger.Warn("broadcast failed", "player", pc.name, "err", err)
		}
	}
}

// serveConn joins the connection to the table and pumps its messages until
// it closes.
func (h *tableHost) serveConn(conn *websocket.Conn) {
	defer conn.Close()

	pc, err := h.join(conn)
	if err != nil {
		h.logger.Warn("join rejected", "err", err)
		data, _ := protocol.Marshal(protocol.Error{Type: protocol.TypeError, Code: "join_rejected", Message: err.Error()})
		_ = conn.WriteMessage(websocket.TextMessage, data)
		return
	}
	h.logger.Info("player connected", "player", pc.name, "seat", pc.seat)

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			h.logger.Info("player disconnected", "player", pc.name)
			return
		}
		typ, err := protocol.PeekType(data)
		if err != nil {
			h.sendError(pc, "bad_message", err.Error())
			continue
		}
		switch typ {
		case protocol.TypeStart:
			h.requestStart()
		case protocol.TypeAction:
			var act protocol.Action
			if err := protocol.Unmarshal(data, &act); err != nil {
				h.sendError(pc, "bad_message", err.Error())
				continue
			}
			select {
			case pc.decisions <- act:
			default:
				h.sendError(pc, "not_your_turn", "no action pending")
			}
		default:
			h.sendError(pc, "bad_message", fmt.Sprintf("unexpected message type %q", typ))
		}
	}
}

// join handles the initial Join message on a fresh connection.
func (h *tableHost) join(conn *websocket.Conn) (*playerConn, error) {
	_, data, err := conn.ReadMessage()
	if err != nil {
		return nil, fmt.Errorf("reading join: %w", err)
	}
	var msg protocol.Join
	if err := protocol.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	if msg.Type != protocol.TypeJoin {
		return nil, fmt.Errorf("expected join, got %q", msg.Type)
	}

	pub := mxe.Suite.Point()
	if err := pub.UnmarshalBinary(msg.PublicKey); err != nil {
		return nil, fmt.Errorf("decoding public key: %w", err)
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	seat, err := h.tbl.Join(msg.Name)
	if err != nil {
		return nil, err
	}
	pc := &playerConn{
		name:      msg.Name,
		seat:      seat,
		conn:      conn,
		pub:       pub,
		decisions: make(chan protocol.Action, 1),
	}
	h.seats[seat] = pc

	execKey, err := h.executor.PublicKey().MarshalBinary()
	if err != nil {
		return nil, fmt.Errorf("marshaling executor key: %w", err)
	}
	if err := pc.send(protocol.Joined{
		Type:        protocol.TypeJoined,
		Seat:        seat,
		ExecutorKey: execKey,
		SmallBlind:  h.tbl.SmallBlindAmount(),
		BigBlind:    h.tbl.BigBlindAmount(),
		BuyIn:       h.tbl.BuyInAmount(),
	}); err != nil {
		return nil, err
	}
	return pc, nil
}

func (h *tableHost) sendError(pc *playerConn, code, message string) {
	_ = pc.send(protocol.Error{Type: protocol.TypeError, Code: code, Message: message})
}

// requestStart kicks off a hand runner if one is not already going.
func (h *tableHost) requestStart() {
	h.mu.Lock()
	if h.inHand || h.seats[0] == nil || h.seats[1] == nil {
		h.mu.Unlock()
		return
	}
	h.inHand = true
	h.handSeq++
	h.mu.Unlock()

	go func() {
		defer func() {
			h.mu.Lock()
			h.inHand = false
			h.mu.Unlock()
		}()
		if err := h.runHand(); err != nil {
			h.logger.Error("hand failed", "err", err)
		}
	}()
}
