package domain

// Phase represents the current phase of a session
type Phase string

const (
	PhaseLobby           Phase = "lobby"            // Waiting for players to join and ready up
	PhaseSoundSelection  Phase = "sound-selection"  // Round 0: owners pick sounds and record the first segment
	PhaseComposing       Phase = "composing"        // Players record their segment for the round
	PhaseRefinement      Phase = "refinement"       // Players fine-tune their segment before submitting
	PhaseAwaitingPlayers Phase = "awaiting-players" // Waiting for the rest of the lobby to submit
	PhasePreview         Phase = "preview"          // Players listen to the composition they were handed
	PhaseShowcase        Phase = "showcase"         // Game over, everyone listens to the finished songs
)

// String returns the string representation of the phase
func (p Phase) String() string {
	return string(p)
}

// IsActiveRound reports whether the phase belongs to an open round,
// i.e. submissions for the current round are accepted.
func (p Phase) IsActiveRound() bool {
	switch p {
	case PhaseSoundSelection, PhaseComposing, PhaseRefinement, PhaseAwaitingPlayers, PhasePreview:
		return true
	}
	return false
}

// CanTransitionTo checks if a transition from current phase to target phase is valid
func (p Phase) CanTransitionTo(target Phase) bool {
	validTransitions := map[Phase][]Phase{
		PhaseLobby:           {PhaseSoundSelection},
		PhaseSoundSelection:  {PhaseComposing, PhaseAwaitingPlayers},
		PhaseComposing:       {PhaseRefinement, PhaseAwaitingPlayers},
		PhaseRefinement:      {PhaseAwaitingPlayers},
		PhaseAwaitingPlayers: {PhasePreview, PhaseShowcase},
		PhasePreview:         {PhaseComposing, PhaseAwaitingPlayers},
		// PhaseShowcase is terminal
	}

	allowed, ok := validTransitions[p]
	if !ok {
		return false
	}

	for _, phase := range allowed {
		if phase == target {
			return true
		}
	}
	return false
}
