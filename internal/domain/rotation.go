package domain

// RotateAssignments computes the next round's player-to-composition map by
// rotating the current one a single step around the ring defined by join
// order: the player at ring position i takes over whatever the player at
// position (i-1+N) mod N held during the round that just closed.
//
// Applying this once per round for N-1 rounds walks every player across
// every composition exactly once, and never hands a player the composition
// they just contributed to (for N >= 2 the single step moves every
// composition to a different player).
//
// The input must be a bijection over ringOrder; if it is not, the rotation
// engine has a bug upstream and ErrBrokenRotation is returned with no
// result.
func RotateAssignments(ringOrder []string, current map[string]string) (map[string]string, error) {
	n := len(ringOrder)
	if n == 0 || len(current) != n {
		return nil, ErrBrokenRotation
	}

	seen := make(map[string]bool, n)
	for _, playerID := range ringOrder {
		compositionID, ok := current[playerID]
		if !ok || seen[compositionID] {
			return nil, ErrBrokenRotation
		}
		seen[compositionID] = true
	}

	next := make(map[string]string, n)
	for i, playerID := range ringOrder {
		prev := ringOrder[(i-1+n)%n]
		next[playerID] = current[prev]
	}
	return next, nil
}

// IdentityAssignments builds the round-0 map: every player is assigned the
// composition they own.
func IdentityAssignments(ringOrder []string, ownedBy map[string]string) map[string]string {
	assignments := make(map[string]string, len(ringOrder))
	for _, playerID := range ringOrder {
		assignments[playerID] = ownedBy[playerID]
	}
	return assignments
}
