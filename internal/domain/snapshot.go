package domain

import "encoding/json"

// SegmentView is a segment as shown to clients
type SegmentView struct {
	Round      int             `json:"round"`
	PlayerID   string          `json:"playerId"`
	PlayerName string          `json:"playerName,omitempty"`
	Payload    json.RawMessage `json:"payload"`
}

// AssignmentView is the composition a player is currently assigned,
// with the segments accumulated so far.
type AssignmentView struct {
	CompositionID  string          `json:"compositionId"`
	OwnerID        string          `json:"ownerId"`
	SoundSelection json.RawMessage `json:"soundSelection,omitempty"`
	Segments       []SegmentView   `json:"segments"`
}

// CompositionView is a finished composition as shown in the showcase
type CompositionView struct {
	CompositionID  string          `json:"compositionId"`
	OwnerID        string          `json:"ownerId"`
	OwnerName      string          `json:"ownerName,omitempty"`
	SoundSelection json.RawMessage `json:"soundSelection,omitempty"`
	Segments       []SegmentView   `json:"segments"`
}

// StateSnapshot is the full session state broadcast to a member after
// every accepted mutation. The assignment is personal: each member sees
// only the composition they are working on, until the showcase reveals
// everything.
type StateSnapshot struct {
	SessionCode string            `json:"sessionCode"`
	Phase       Phase             `json:"phase"`
	Round       int               `json:"round"`
	TotalRounds int               `json:"totalRounds"`
	Players     []PlayerInfo      `json:"players"`
	Sounds      []Sound           `json:"sounds,omitempty"`
	Assignment  *AssignmentView   `json:"assignment,omitempty"`
	Showcase    []CompositionView `json:"showcase,omitempty"`
	CanStart    bool              `json:"canStart"`
}

// SnapshotFor builds the state snapshot tailored to one session member.
func (s *Session) SnapshotFor(playerID string) *StateSnapshot {
	snapshot := &StateSnapshot{
		SessionCode: s.Code,
		Phase:       s.Phase,
		Round:       s.Round,
		TotalRounds: s.TotalRounds,
		Players:     make([]PlayerInfo, 0, len(s.Players)),
		Sounds:      s.Sounds,
		CanStart:    s.AllReady(),
	}
	for _, p := range s.Players {
		snapshot.Players = append(snapshot.Players, p.ToInfo())
	}

	if s.Phase.IsActiveRound() {
		if composition, err := s.AssignedComposition(playerID); err == nil {
			snapshot.Assignment = &AssignmentView{
				CompositionID:  composition.ID,
				OwnerID:        composition.OwnerID,
				SoundSelection: composition.SoundSelection,
				Segments:       s.segmentViews(composition),
			}
		}
	}

	if s.Phase == PhaseShowcase {
		snapshot.Showcase = make([]CompositionView, 0, len(s.Players))
		// Reveal in join order of the owners so every client sees the
		// same playlist.
		for _, p := range s.Players {
			for _, composition := range s.Compositions {
				if composition.OwnerID != p.ID {
					continue
				}
				snapshot.Showcase = append(snapshot.Showcase, CompositionView{
					CompositionID:  composition.ID,
					OwnerID:        composition.OwnerID,
					OwnerName:      p.Name,
					SoundSelection: composition.SoundSelection,
					Segments:       s.segmentViews(composition),
				})
			}
		}
	}

	return snapshot
}

func (s *Session) segmentViews(c *Composition) []SegmentView {
	views := make([]SegmentView, 0, len(c.Segments))
	for _, seg := range c.Segments {
		view := SegmentView{
			Round:    seg.Round,
			PlayerID: seg.PlayerID,
			Payload:  seg.Payload,
		}
		if player, err := s.GetPlayer(seg.PlayerID); err == nil {
			view.PlayerName = player.Name
		}
		views = append(views, view)
	}
	return views
}
