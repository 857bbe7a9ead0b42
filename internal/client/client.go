// Package client is a minimal websocket client for the table service. It
// owns the player's keypair, opens the sealed hole blob for its own seat,
// and delegates betting decisions to an Agent.
package client

import (
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"
	"go.dedis.ch/kyber/v4"

	"github.com/cardveil/holdem/internal/deck"
	"github.com/cardveil/holdem/internal/mxe"
	"github.com/cardveil/holdem/internal/protocol"
)

// Agent decides betting actions for the client.
type Agent interface {
	// MakeDecision picks one of the offered actions. Amount is the
	// raise-to total when the action is "raise".
	MakeDecision(req protocol.ActionRequest, hole [2]deck.Card, board []string) (action string, amount uint64)
}

// AgentFunc adapts a function to the Agent interface.
type AgentFunc func(req protocol.ActionRequest, hole [2]deck.Card, board []string) (string, uint64)

func (f AgentFunc) MakeDecision(req protocol.ActionRequest, hole [2]deck.Card, board []string) (string, uint64) {
	return f(req, hole, board)
}

// Client is one seated player's connection.
type Client struct {
	name    string
	conn    *websocket.Conn
	keys    mxe.KeyPair
	execPub kyber.Point
	seat    int
	logger  *log.Logger

	hole  [2]deck.Card
	board []string

	// Results receives one HandResult per completed hand. Closed when
	// Run returns, so consumers ranging over it terminate with the pump.
	Results chan protocol.HandResult
}

// Dial connects, joins the table, and performs the key exchange.
func Dial(url, name string, logger *log.Logger) (*Client, error) {
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		return nil, fmt.Errorf("dialing %s: %w", url, err)
	}

	c := &Client{
		name:    name,
		conn:    conn,
		keys:    mxe.NewKeyPair(),
		logger:  logger.WithPrefix("client").With("player", name),
		Results: make(chan protocol.HandResult, 8),
	}

	pubBytes, err := c.keys.Public.MarshalBinary()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("marshaling public key: %w", err)
	}
	if err := c.send(protocol.Join{Type: protocol.TypeJoin, Name: name, PublicKey: pubBytes}); err != nil {
		conn.Close()
		return nil, err
	}

	_, data, err := conn.ReadMessage()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("reading join reply: %w", err)
	}
	typ, err := protocol.PeekType(data)
	if err != nil {
		conn.Close()
		return nil, err
	}
	if typ == protocol.TypeError {
		var e protocol.Error
		_ = protocol.Unmarshal(data, &e)
		conn.Close()
		return nil, fmt.Errorf("join rejected: %s", e.Message)
	}
	var joined protocol.Joined
	if err := protocol.Unmarshal(data, &joined); err != nil {
		conn.Close()
		return nil, err
	}
	c.seat = joined.Seat
	c.execPub = mxe.Suite.Point()
	if err := c.execPub.UnmarshalBinary(joined.ExecutorKey); err != nil {
		conn.Close()
		return nil, fmt.Errorf("decoding executor key: %w", err)
	}

	c.logger.Info("joined", "seat", c.seat)
	return c, nil
}

// Seat returns the client's seat index.
func (c *Client) Seat() int { return c.seat }

// Close closes the connection.
func (c *Client) Close() error { return c.conn.Close() }

// RequestStart asks the server to begin the next hand.
func (c *Client) RequestStart() error {
	return c.send(protocol.StartHand{Type: protocol.TypeStart})
}

// Run processes server messages until the connection closes, answering
// action requests through the agent. Results is closed on return.
func (c *Client) Run(agent Agent) error {
	defer close(c.Results)
	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			return fmt.Errorf("connection closed: %w", err)
		}
		typ, err := protocol.PeekType(data)
		if err != nil {
			c.logger.Warn("bad frame", "err", err)
			continue
		}

		switch typ {
		case protocol.TypeHandStart:
			var msg protocol.HandStart
			if err := protocol.Unmarshal(data, &msg); err != nil {
				return err
			}
			if err := c.openHole(msg); err != nil {
				return fmt.Errorf("opening hole cards: %w", err)
			}
			c.board = nil
			c.logger.Debug("hand started", "hand", msg.HandID)

		case protocol.TypeStreetChange:
			var msg protocol.StreetChange
			if err := protocol.Unmarshal(data, &msg); err != nil {
				return err
			}
			c.board = msg.Board

		case protocol.TypeActionRequest:
			var msg protocol.ActionRequest
			if err := protocol.Unmarshal(data, &msg); err != nil {
				return err
			}
			action, amount := agent.MakeDecision(msg, c.hole, c.board)
			if err := c.send(protocol.Action{Type: protocol.TypeAction, Action: action, Amount: amount}); err != nil {
				return err
			}

		case protocol.TypeHandResult:
			var msg protocol.HandResult
			if err := protocol.Unmarshal(data, &msg); err != nil {
				return err
			}
			select {
			case c.Results <- msg:
			default:
			}

		case protocol.TypePlayerAction, protocol.TypeError:
			// Informational; errors are also surfaced per request.

		default:
			c.logger.Warn("unexpected message", "type", typ)
		}
	}
}

func (c *Client) openHole(msg protocol.HandStart) error {
	cards, err := mxe.OpenCards(c.keys.Private, c.execPub, mxe.SealedCards{
		Nonce:      msg.HoleNonce,
		Ciphertext: msg.HoleSealed,
	})
	if err != nil {
		return err
	}
	c.hole = [2]deck.Card{deck.Card(cards[0]), deck.Card(cards[1])}
	return nil
}

func (c *Client) send(msg any) error {
	data, err := protocol.Marshal(msg)
	if err != nil {
		return err
	}
	return c.conn.WriteMessage(websocket.TextMessage, data)
}
