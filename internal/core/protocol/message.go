// Package protocol defines the framed messages that carry tracking
// snapshots across the client/runtime boundary, and the transports
// that move them.
//
// The wire layout is versioned: field order and sizes are part of the
// compatibility contract, and every envelope carries LayoutVersion. A
// payload checksum guards against torn or reinterpreted frames; a
// client must never accept a frame from a different layout version.
package protocol

import (
	"encoding/json"
	"fmt"

	"github.com/cespare/xxhash/v2"
)

// LayoutVersion is bumped whenever any wire struct changes shape.
const LayoutVersion = 1

// MaxMessageSize bounds a single encoded envelope.
const MaxMessageSize = 64 * 1024

// Message types exchanged with the runtime.
const (
	TypeHello           = "hello"
	TypeHelloAck        = "hello_ack"
	TypeControllerState = "controller_state"
	TypeHeadPose        = "head_pose"
	TypeRenderParams    = "render_params"
	TypeRecenterRequest = "recenter_request"
)

// Envelope frames one message. Payload is the JSON encoding of the
// type-specific body; Checksum is the xxhash64 of Payload.
type Envelope struct {
	Version  int             `json:"version"`
	Type     string          `json:"type"`
	Seq      uint64          `json:"seq"`
	Checksum uint64          `json:"checksum"`
	Payload  json.RawMessage `json:"payload"`
}

// Hello is sent by a client after connecting.
type Hello struct {
	ClientName    string `json:"client_name"`
	LayoutVersion int    `json:"layout_version"`
}

// HelloAck carries the runtime-owned session handle token. The token
// is opaque to the client: it identifies the runtime-side context and
// is only ever given back (on Close), never interpreted or duplicated.
type HelloAck struct {
	SessionToken string `json:"session_token"`
	Accepted     bool   `json:"accepted"`
	Reason       string `json:"reason,omitempty"`
}

// Codec encodes and decodes envelopes.
type Codec interface {
	Encode(msgType string, seq uint64, body any) ([]byte, error)
	Decode(data []byte) (Envelope, error)
}

// JSONCodec is the default codec. JSON keeps the boundary debuggable;
// the checksum and version fields do the safety work.
type JSONCodec struct{}

// Encode marshals body into a checksummed envelope.
func (JSONCodec) Encode(msgType string, seq uint64, body any) ([]byte, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("encode %s payload: %w", msgType, err)
	}
	env := Envelope{
		Version:  LayoutVersion,
		Type:     msgType,
		Seq:      seq,
		Checksum: xxhash.Sum64(payload),
		Payload:  payload,
	}
	data, err := json.Marshal(env)
	if err != nil {
		return nil, fmt.Errorf("encode %s envelope: %w", msgType, err)
	}
	if len(data) > MaxMessageSize {
		return nil, ErrMessageTooLarge
	}
	return data, nil
}

// Decode unmarshals and verifies an envelope. It fails on a layout
// version mismatch or a payload checksum mismatch.
func (JSONCodec) Decode(data []byte) (Envelope, error) {
	if len(data) > MaxMessageSize {
		return Envelope{}, ErrMessageTooLarge
	}
	var env Envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return Envelope{}, fmt.Errorf("%w: %v", ErrInvalidMessage, err)
	}
	if env.Version != LayoutVersion {
		return Envelope{}, fmt.Errorf("%w: got %d, want %d", ErrLayoutVersion, env.Version, LayoutVersion)
	}
	if env.Type == "" {
		return Envelope{}, ErrInvalidMessage
	}
	if xxhash.Sum64(env.Payload) != env.Checksum {
		return Envelope{}, ErrChecksumMismatch
	}
	return env, nil
}

// Unmarshal decodes the envelope payload into body.
func (e Envelope) Unmarshal(body any) error {
	if err := json.Unmarshal(e.Payload, body); err != nil {
		return fmt.Errorf("decode %s payload: %w", e.Type, err)
	}
	return nil
}
