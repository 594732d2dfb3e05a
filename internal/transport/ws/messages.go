package ws

import (
	"encoding/json"

	"github.com/ZEBR0Z/Gamejam2025-sub000/internal/domain"
)

// Client -> server message types
const (
	MsgJoinSession   = "join_session"
	MsgSetReady      = "set_ready"
	MsgSubmitSegment = "submit_segment"
	MsgPing          = "ping"
)

// Server -> client message types
const (
	MsgConnected = "connected"
	MsgError     = "error"
	MsgPong      = "pong"
)

// Error codes surfaced to clients
const (
	ErrCodeInvalidMessage      = "INVALID_MESSAGE"
	ErrCodeSessionNotFound     = "SESSION_NOT_FOUND"
	ErrCodePlayerNotFound      = "PLAYER_NOT_FOUND"
	ErrCodeSessionFull         = "SESSION_FULL"
	ErrCodeSessionActive       = "SESSION_ALREADY_ACTIVE"
	ErrCodeNotEnoughPlayers    = "NOT_ENOUGH_PLAYERS"
	ErrCodeDuplicateSubmission = "DUPLICATE_SUBMISSION"
	ErrCodeAssignmentMissing   = "ASSIGNMENT_MISSING"
	ErrCodeInvalidAction       = "INVALID_ACTION"
	ErrCodeInternalError       = "INTERNAL_ERROR"
)

// ClientMessage is the envelope for all client -> server messages
type ClientMessage struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// JoinSessionPayload is the payload for join_session
type JoinSessionPayload struct {
	Name string `json:"name"`
}

// SubmitSegmentPayload is the payload for submit_segment. The segment
// itself is opaque to the server; it is stored and forwarded untouched.
type SubmitSegmentPayload struct {
	Segment json.RawMessage `json:"segment"`
}

// ServerMessage is the envelope for all server -> client messages
type ServerMessage struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload,omitempty"`
}

// NewServerMessage creates a new server message
func NewServerMessage(msgType string, payload interface{}) *ServerMessage {
	return &ServerMessage{
		Type:    msgType,
		Payload: payload,
	}
}

// ConnectedPayload confirms a join or reconnect
type ConnectedPayload struct {
	PlayerID    string                `json:"playerId"`
	SessionCode string                `json:"sessionCode"`
	State       *domain.StateSnapshot `json:"state"`
}

// ErrorPayload carries an error to the client
type ErrorPayload struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
