package domain

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Segment is one player's single-round contribution to a composition.
// Immutable once appended; the payload is opaque to the server.
type Segment struct {
	Round       int             `json:"round"`
	PlayerID    string          `json:"playerId"`
	Payload     json.RawMessage `json:"payload"`
	SubmittedAt time.Time       `json:"submittedAt"`
}

// Composition is one collaboratively-built song. It accumulates exactly
// one segment per round, each from a distinct player.
type Composition struct {
	ID             string          `json:"id"`
	OwnerID        string          `json:"ownerId"`
	Segments       []Segment       `json:"segments"`
	Contributors   []string        `json:"contributors"`
	SoundSelection json.RawMessage `json:"soundSelection,omitempty"`
}

// NewComposition creates an empty composition seeded for the given owner
func NewComposition(ownerID string) *Composition {
	return &Composition{
		ID:           uuid.New().String(),
		OwnerID:      ownerID,
		Segments:     make([]Segment, 0),
		Contributors: []string{ownerID},
	}
}

// AppendSegment records a contribution for the given round. It returns
// false without mutating anything if the composition already holds a
// segment for that round or is already complete.
func (c *Composition) AppendSegment(playerID string, payload json.RawMessage, round, totalRounds int) bool {
	if len(c.Segments) >= totalRounds {
		return false
	}
	for _, seg := range c.Segments {
		if seg.Round == round {
			return false
		}
	}

	c.Segments = append(c.Segments, Segment{
		Round:       round,
		PlayerID:    playerID,
		Payload:     payload,
		SubmittedAt: time.Now(),
	})

	if !c.HasContributor(playerID) {
		c.Contributors = append(c.Contributors, playerID)
	}
	return true
}

// FixSoundSelection fixes the composition's sound selection. Settable only
// once, by the round-0 contribution; later calls are ignored.
func (c *Composition) FixSoundSelection(payload json.RawMessage) {
	if c.SoundSelection != nil {
		return
	}
	c.SoundSelection = payload
}

// HasContributor reports whether the player already contributed a segment
func (c *Composition) HasContributor(playerID string) bool {
	for _, id := range c.Contributors {
		if id == playerID {
			return true
		}
	}
	return false
}

// SegmentForRound returns the segment recorded for the given round, if any
func (c *Composition) SegmentForRound(round int) (Segment, bool) {
	for _, seg := range c.Segments {
		if seg.Round == round {
			return seg, true
		}
	}
	return Segment{}, false
}

// LastContributor returns the player who appended the most recent segment,
// or "" if the composition is still empty.
func (c *Composition) LastContributor() string {
	if len(c.Segments) == 0 {
		return ""
	}
	return c.Segments[len(c.Segments)-1].PlayerID
}

// IsComplete reports whether the composition has a segment for every round
func (c *Composition) IsComplete(totalRounds int) bool {
	return len(c.Segments) == totalRounds
}
