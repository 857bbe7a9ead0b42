// Package protocol defines the JSON wire messages between the table service
// and player clients. Hole cards only ever appear as sealed blobs; board
// cards appear in cleartext once the executor has revealed them.
package protocol

// MessageType identifies the type of message
type MessageType string

const (
	// Client -> Server
	TypeJoin   MessageType = "join"
	TypeAction MessageType = "action"
	TypeStart  MessageType = "start_hand"

	// Server -> Client
	TypeJoined        MessageType = "joined"
	TypeHandStart     MessageType = "hand_start"
	TypeActionRequest MessageType = "action_request"
	TypePlayerAction  MessageType = "player_action"
	TypeStreetChange  MessageType = "street_change"
	TypeHandResult    MessageType = "hand_result"
	TypeError         MessageType = "error"
)

// Join is sent by a client when connecting. PublicKey is the player's
// marshaled group point used for hole-card sealing.
type Join struct {
	Type      MessageType `json:"type"`
	Name      string      `json:"name"`
	PublicKey []byte      `json:"public_key"`
}

// Joined confirms a seat and carries the executor's public key so the
// client can open its sealed blobs.
type Joined struct {
	Type        MessageType `json:"type"`
	Seat        int         `json:"seat"`
	ExecutorKey []byte      `json:"executor_key"`
	SmallBlind  uint64      `json:"small_blind"`
	BigBlind    uint64      `json:"big_blind"`
	BuyIn       uint64      `json:"buy_in"`
}

// StartHand asks the server to begin the next hand once both seats are
// filled.
type StartHand struct {
	Type MessageType `json:"type"`
}

// HandStart announces a new hand. Each player receives only their own
// sealed hole blob.
type HandStart struct {
	Type       MessageType `json:"type"`
	HandID     string      `json:"hand_id"`
	Dealer     int         `json:"dealer"`
	YourSeat   int         `json:"your_seat"`
	HoleNonce  []byte      `json:"hole_nonce"`
	HoleSealed []byte      `json:"hole_sealed"`
	Stacks     [2]uint64   `json:"stacks"`
}

// ActionRequest asks the player to act.
type ActionRequest struct {
	Type         MessageType `json:"type"`
	HandID       string      `json:"hand_id"`
	ValidActions []string    `json:"valid_actions"`
	ToCall       uint64      `json:"to_call"`
	MinRaiseTo   uint64      `json:"min_raise_to"`
	Pot          uint64      `json:"pot"`
}

// Action is the client's reply to an ActionRequest. Amount is the raise-to
// total and is ignored for other actions.
type Action struct {
	Type   MessageType `json:"type"`
	Action string      `json:"action"`
	Amount uint64      `json:"amount,omitempty"`
}

// PlayerAction is broadcast after every applied action.
type PlayerAction struct {
	Type   MessageType `json:"type"`
	HandID string      `json:"hand_id"`
	Seat   int         `json:"seat"`
	Name   string      `json:"name"`
	Action string      `json:"action"`
	Pot    uint64      `json:"pot"`
	Stacks [2]uint64   `json:"stacks"`
}

// StreetChange is broadcast when community cards are revealed. Board holds
// the full visible board in card notation.
type StreetChange struct {
	Type   MessageType `json:"type"`
	HandID string      `json:"hand_id"`
	Street string      `json:"street"`
	Board  []string    `json:"board"`
}

// HandResult is broadcast when a hand ends. Outcome is "fold" when the hand
// ended without a showdown, otherwise the showdown's ternary result. No
// hand descriptions or hole cards are ever included: the protocol releases
// only what the confidential boundary released.
type HandResult struct {
	Type    MessageType `json:"type"`
	HandID  string      `json:"hand_id"`
	Outcome string      `json:"outcome"`
	Winner  int         `json:"winner"` // seat index; -1 on a tie
	Stacks  [2]uint64   `json:"stacks"`
}

// Error reports a rejected request.
type Error struct {
	Type    MessageType `json:"type"`
	Code    string      `json:"code"`
	Message string      `json:"message"`
}
