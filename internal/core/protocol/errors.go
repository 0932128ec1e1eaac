package protocol

import "errors"

// Wire and transport errors
var (
	ErrConnectionClosed  = errors.New("connection is closed")
	ErrListenerClosed    = errors.New("listener is closed")
	ErrTransportClosed   = errors.New("transport is closed")
	ErrInvalidAddress    = errors.New("invalid address")
	ErrMessageTooLarge   = errors.New("message too large")
	ErrInvalidMessage    = errors.New("invalid message")
	ErrChecksumMismatch  = errors.New("payload checksum mismatch")
	ErrLayoutVersion     = errors.New("incompatible wire layout version")
	ErrUnknownMessage    = errors.New("unknown message type")
	ErrHandshakeRejected = errors.New("handshake rejected")
)
