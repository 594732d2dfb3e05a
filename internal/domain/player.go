package domain

import (
	"time"

	"github.com/google/uuid"
)

// ConnectionStatus represents a player's connection state
type ConnectionStatus string

const (
	StatusConnected    ConnectionStatus = "CONNECTED"
	StatusDisconnected ConnectionStatus = "DISCONNECTED"
)

// Player represents a player in a session. The ID is stable for the
// session's lifetime even across reconnects.
type Player struct {
	ID        string           `json:"id"`
	Name      string           `json:"name"`
	Ready     bool             `json:"ready"`
	Submitted bool             `json:"submitted"`
	Status    ConnectionStatus `json:"status"`
	JoinedAt  time.Time        `json:"joinedAt"`
}

// NewPlayer creates a new player with a fresh identity
func NewPlayer(name string) *Player {
	return &Player{
		ID:       uuid.New().String(),
		Name:     name,
		Status:   StatusConnected,
		JoinedAt: time.Now(),
	}
}

// ResetForNewRound clears the player's per-round submission flag
func (p *Player) ResetForNewRound() {
	p.Submitted = false
}

// IsConnected returns true if the player is currently connected
func (p *Player) IsConnected() bool {
	return p.Status == StatusConnected
}

// Disconnect marks the player as disconnected
func (p *Player) Disconnect() {
	p.Status = StatusDisconnected
}

// Reconnect marks the player as connected
func (p *Player) Reconnect() {
	p.Status = StatusConnected
}

// PlayerInfo is the view of a player included in broadcast snapshots
type PlayerInfo struct {
	ID        string           `json:"id"`
	Name      string           `json:"name"`
	Ready     bool             `json:"ready"`
	Submitted bool             `json:"submitted"`
	Status    ConnectionStatus `json:"status"`
}

// ToInfo converts a Player to PlayerInfo
func (p *Player) ToInfo() PlayerInfo {
	return PlayerInfo{
		ID:        p.ID,
		Name:      p.Name,
		Ready:     p.Ready,
		Submitted: p.Submitted,
		Status:    p.Status,
	}
}
