package protocol

import (
	"encoding/json"
	"fmt"
)

// envelope peeks at the discriminator without decoding the body.
type envelope struct {
	Type MessageType `json:"type"`
}

// PeekType returns the message type of a raw frame.
func PeekType(data []byte) (MessageType, error) {
	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return "", fmt.Errorf("decoding message envelope: %w", err)
	}
	if env.Type == "" {
		return "", fmt.Errorf("message has no type field")
	}
	return env.Type, nil
}

// Marshal encodes a message for the wire.
func Marshal(msg any) ([]byte, error) {
	data, err := json.Marshal(msg)
	if err != nil {
		return nil, fmt.Errorf("encoding message: %w", err)
	}
	return data, nil
}

// Unmarshal decodes a frame into the given message struct.
func Unmarshal(data []byte, msg any) error {
	if err := json.Unmarshal(data, msg); err != nil {
		return fmt.Errorf("decoding message: %w", err)
	}
	return nil
}
