package domain

import "time"

// EventType represents the type of session event
type EventType string

const (
	EventPlayerJoined      EventType = "PLAYER_JOINED"
	EventPlayerLeft        EventType = "PLAYER_LEFT"
	EventPlayerReady       EventType = "PLAYER_READY"
	EventPlayerReconnected EventType = "PLAYER_RECONNECTED"
	EventGameStarted       EventType = "GAME_STARTED"
	EventSegmentSubmitted  EventType = "SEGMENT_SUBMITTED"
	EventRoundAdvanced     EventType = "ROUND_ADVANCED"
	EventShowcase          EventType = "SHOWCASE"
	EventError             EventType = "ERROR"
)

// SessionEvent is an event broadcast to session members. The payload is
// the recipient's state snapshot.
type SessionEvent struct {
	Type        EventType   `json:"type"`
	SessionCode string      `json:"sessionCode"`
	PlayerID    string      `json:"playerId,omitempty"` // recipient, when player-specific
	Payload     interface{} `json:"payload,omitempty"`
	Timestamp   time.Time   `json:"timestamp"`
}

// NewEvent creates a new session event
func NewEvent(eventType EventType, sessionCode string, payload interface{}) *SessionEvent {
	return &SessionEvent{
		Type:        eventType,
		SessionCode: sessionCode,
		Payload:     payload,
		Timestamp:   time.Now(),
	}
}

// NewPlayerEvent creates a new player-specific session event
func NewPlayerEvent(eventType EventType, sessionCode, playerID string, payload interface{}) *SessionEvent {
	return &SessionEvent{
		Type:        eventType,
		SessionCode: sessionCode,
		PlayerID:    playerID,
		Payload:     payload,
		Timestamp:   time.Now(),
	}
}
