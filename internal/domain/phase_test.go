package domain

import "testing"

func TestPhaseTransitions(t *testing.T) {
	cases := []struct {
		from  Phase
		to    Phase
		valid bool
	}{
		{PhaseLobby, PhaseSoundSelection, true},
		{PhaseLobby, PhaseComposing, false},
		{PhaseSoundSelection, PhaseAwaitingPlayers, true},
		{PhaseComposing, PhaseAwaitingPlayers, true},
		{PhaseRefinement, PhaseAwaitingPlayers, true},
		{PhaseAwaitingPlayers, PhasePreview, true},
		{PhaseAwaitingPlayers, PhaseShowcase, true},
		{PhasePreview, PhaseAwaitingPlayers, true},
		{PhaseShowcase, PhaseLobby, false},
		{PhaseShowcase, PhasePreview, false},
		{PhasePreview, PhaseLobby, false},
	}

	for _, tc := range cases {
		if got := tc.from.CanTransitionTo(tc.to); got != tc.valid {
			t.Fatalf("%s -> %s: want %v, got %v", tc.from, tc.to, tc.valid, got)
		}
	}
}

func TestIsActiveRound(t *testing.T) {
	active := []Phase{PhaseSoundSelection, PhaseComposing, PhaseRefinement, PhaseAwaitingPlayers, PhasePreview}
	for _, p := range active {
		if !p.IsActiveRound() {
			t.Fatalf("%s should be an active-round phase", p)
		}
	}
	if PhaseLobby.IsActiveRound() || PhaseShowcase.IsActiveRound() {
		t.Fatalf("lobby and showcase are not active-round phases")
	}
}
