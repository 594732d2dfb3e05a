package domain

import (
	"encoding/json"
	"strings"
	"time"
)

// SessionSettings holds configurable session parameters
type SessionSettings struct {
	MinPlayers int `json:"minPlayers"`
	MaxPlayers int `json:"maxPlayers"`
}

// DefaultSessionSettings returns the default session settings
func DefaultSessionSettings() SessionSettings {
	return SessionSettings{
		MinPlayers: 2,
		MaxPlayers: 8,
	}
}

// Session is one independent game instance identified by a short code.
// It owns the roster, the compositions, and the current round's
// assignment map. All methods assume the caller serializes access.
type Session struct {
	Code         string                  `json:"code"`
	Players      []*Player               `json:"players"` // join order defines the rotation ring
	Compositions map[string]*Composition `json:"compositions"`
	Phase        Phase                   `json:"phase"`
	Round        int                     `json:"round"`
	TotalRounds  int                     `json:"totalRounds"`
	Assignments  map[string]string       `json:"assignments"` // playerID -> compositionID, current round only
	Sounds       []Sound                 `json:"sounds"`      // sounds available this game
	Settings     SessionSettings         `json:"settings"`
	CreatedAt    time.Time               `json:"createdAt"`
}

// NewSession creates a new session in the lobby phase
func NewSession(code string) *Session {
	return &Session{
		Code:         code,
		Players:      make([]*Player, 0),
		Compositions: make(map[string]*Composition),
		Phase:        PhaseLobby,
		Settings:     DefaultSessionSettings(),
		CreatedAt:    time.Now(),
	}
}

// AddPlayer adds a player to the session. Rejected once the session has
// left the lobby phase; join order matters, it defines rotation adjacency.
func (s *Session) AddPlayer(name string) (*Player, error) {
	if s.Phase != PhaseLobby {
		return nil, ErrSessionAlreadyActive
	}
	if len(s.Players) >= s.Settings.MaxPlayers {
		return nil, ErrSessionFull
	}

	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyName
	}

	player := NewPlayer(name)
	s.Players = append(s.Players, player)
	return player, nil
}

// RemovePlayer removes a player from the roster. Mid-round removal leaves
// the assignment map untouched, which stalls the barrier by design; the
// caller decides whether a mid-game leaver is removed or only marked
// disconnected.
func (s *Session) RemovePlayer(playerID string) error {
	for i, p := range s.Players {
		if p.ID == playerID {
			s.Players = append(s.Players[:i], s.Players[i+1:]...)
			return nil
		}
	}
	return ErrPlayerNotFound
}

// GetPlayer returns a player by ID
func (s *Session) GetPlayer(playerID string) (*Player, error) {
	for _, p := range s.Players {
		if p.ID == playerID {
			return p, nil
		}
	}
	return nil, ErrPlayerNotFound
}

// PlayerIDs returns all player IDs in join order
func (s *Session) PlayerIDs() []string {
	ids := make([]string, 0, len(s.Players))
	for _, p := range s.Players {
		ids = append(ids, p.ID)
	}
	return ids
}

// IsEmpty reports whether the roster is empty
func (s *Session) IsEmpty() bool {
	return len(s.Players) == 0
}

// SetReady marks a player ready. Idempotent.
func (s *Session) SetReady(playerID string) error {
	if s.Phase != PhaseLobby {
		return ErrInvalidPhase
	}
	player, err := s.GetPlayer(playerID)
	if err != nil {
		return err
	}
	player.Ready = true
	return nil
}

// AllReady is the lobby barrier: true only with at least MinPlayers
// players, every one of them ready.
func (s *Session) AllReady() bool {
	if len(s.Players) < s.Settings.MinPlayers {
		return false
	}
	for _, p := range s.Players {
		if !p.Ready {
			return false
		}
	}
	return true
}

// Start begins the game: fixes the round count to the roster size, seeds
// one composition per player with the identity assignment, stores the
// sounds available this game, and enters the round-0 selection phase.
func (s *Session) Start(sounds []Sound) error {
	if s.Phase != PhaseLobby {
		return ErrInvalidTransition
	}
	if !s.AllReady() {
		return ErrNotEnoughPlayers
	}

	ownedBy := make(map[string]string, len(s.Players))
	for _, p := range s.Players {
		composition := NewComposition(p.ID)
		s.Compositions[composition.ID] = composition
		ownedBy[p.ID] = composition.ID
	}

	s.Round = 0
	s.TotalRounds = len(s.Players)
	s.Assignments = IdentityAssignments(s.PlayerIDs(), ownedBy)
	s.Sounds = sounds
	s.Phase = PhaseSoundSelection
	return nil
}

// Submit records a player's contribution for the currently open round.
// Submissions are round-stamped at receipt time; a resubmission within
// the same round is rejected without mutation.
func (s *Session) Submit(playerID string, payload json.RawMessage) error {
	if !s.Phase.IsActiveRound() {
		return ErrInvalidPhase
	}
	if len(payload) == 0 {
		return ErrEmptyPayload
	}

	player, err := s.GetPlayer(playerID)
	if err != nil {
		return err
	}
	if player.Submitted {
		return ErrDuplicateSubmission
	}

	compositionID, ok := s.Assignments[playerID]
	if !ok {
		return ErrAssignmentMissing
	}
	composition, ok := s.Compositions[compositionID]
	if !ok {
		return ErrAssignmentMissing
	}

	if !composition.AppendSegment(playerID, payload, s.Round, s.TotalRounds) {
		return ErrDuplicateSubmission
	}
	if s.Round == 0 {
		composition.FixSoundSelection(payload)
	}

	player.Submitted = true
	s.Phase = PhaseAwaitingPlayers
	return nil
}

// AllSubmitted is the round barrier: true once every player on the roster
// has a recorded submission for the open round.
func (s *Session) AllSubmitted() bool {
	if len(s.Players) == 0 {
		return false
	}
	for _, p := range s.Players {
		if !p.Submitted {
			return false
		}
	}
	return true
}

// AdvanceRound closes the completed round. Either the game ends at the
// showcase, or the submitted flags are cleared, the assignment map is
// rotated one ring step, and the next round opens in the preview phase.
func (s *Session) AdvanceRound() error {
	if s.Phase != PhaseAwaitingPlayers || !s.AllSubmitted() {
		return ErrInvalidTransition
	}

	s.Round++
	if s.Round >= s.TotalRounds {
		s.Phase = PhaseShowcase
		return nil
	}

	next, err := RotateAssignments(s.PlayerIDs(), s.Assignments)
	if err != nil {
		// Unreachable unless the rotation engine is broken; refuse to
		// advance rather than corrupt the coverage invariant.
		s.Round--
		return err
	}

	for _, p := range s.Players {
		p.ResetForNewRound()
	}
	s.Assignments = next
	s.Phase = PhasePreview
	return nil
}

// AssignedComposition returns the composition the player must contribute
// to this round.
func (s *Session) AssignedComposition(playerID string) (*Composition, error) {
	compositionID, ok := s.Assignments[playerID]
	if !ok {
		return nil, ErrAssignmentMissing
	}
	composition, ok := s.Compositions[compositionID]
	if !ok {
		return nil, ErrAssignmentMissing
	}
	return composition, nil
}

// AllDisconnected reports whether every player on the roster has dropped
func (s *Session) AllDisconnected() bool {
	if len(s.Players) == 0 {
		return true
	}
	for _, p := range s.Players {
		if p.IsConnected() {
			return false
		}
	}
	return true
}
