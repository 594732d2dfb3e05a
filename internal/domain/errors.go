package domain

import "errors"

// Domain errors
var (
	ErrSessionNotFound      = errors.New("session not found")
	ErrSessionFull          = errors.New("session is full")
	ErrSessionAlreadyActive = errors.New("game already started")
	ErrNotEnoughPlayers     = errors.New("not enough players to start")
	ErrDuplicateSubmission  = errors.New("already submitted this round")
	ErrAssignmentMissing    = errors.New("no composition assigned for this round")
	ErrPlayerNotFound       = errors.New("player not found")
	ErrInvalidPhase         = errors.New("invalid action for current phase")
	ErrInvalidTransition    = errors.New("invalid phase transition")
	ErrEmptyName            = errors.New("display name cannot be empty")
	ErrEmptyPayload         = errors.New("segment payload cannot be empty")
	ErrBrokenRotation       = errors.New("assignment map is not a bijection")
)
