package app

import (
	"crypto/rand"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/ZEBR0Z/Gamejam2025-sub000/internal/domain"
)

const (
	// DefaultSessionCodeLength is the default length for session codes
	DefaultSessionCodeLength = 6

	// StaleSessionTimeout is how long an abandoned session survives
	// before the cleanup loop reaps it
	StaleSessionTimeout = 2 * time.Hour
)

// SessionCodeChars are characters used for session codes (no ambiguous chars)
const SessionCodeChars = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

// Hub manages all live sessions. It is the only piece of state shared
// across sessions, so it carries its own lock, decoupled from the
// per-session mutexes.
type Hub struct {
	sessions      map[string]*LiveSession
	mu            sync.RWMutex
	catalog       *SoundCatalog
	settings      domain.SessionSettings
	soundsPerGame int
	codeLength    int
	logger        *slog.Logger
	done          chan struct{}
	closeOnce     sync.Once
}

// NewHub creates a new session hub
func NewHub(catalog *SoundCatalog, settings domain.SessionSettings, soundsPerGame int, logger *slog.Logger) *Hub {
	hub := &Hub{
		sessions:      make(map[string]*LiveSession),
		catalog:       catalog,
		settings:      settings,
		soundsPerGame: soundsPerGame,
		codeLength:    DefaultSessionCodeLength,
		logger:        logger,
		done:          make(chan struct{}),
	}

	go hub.cleanupLoop()

	return hub
}

// CreateSession creates a new session under a fresh unique code
func (h *Hub) CreateSession() (*LiveSession, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	var code string
	for attempts := 0; attempts < 10; attempts++ {
		code = h.generateCode()
		if _, exists := h.sessions[code]; !exists {
			break
		}
	}
	if _, exists := h.sessions[code]; exists {
		return nil, fmt.Errorf("failed to generate unique session code")
	}

	session := domain.NewSession(code)
	session.Settings = h.settings
	live := NewLiveSession(session, h.catalog, h.soundsPerGame, h.logger)
	h.sessions[code] = live

	h.logger.Info("session created", "sessionCode", code)

	return live, nil
}

// GetSession returns a live session by code
func (h *Hub) GetSession(code string) (*LiveSession, error) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	session, ok := h.sessions[code]
	if !ok {
		return nil, domain.ErrSessionNotFound
	}

	return session, nil
}

// DeleteSession removes a session and releases its resources
func (h *Hub) DeleteSession(code string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if session, ok := h.sessions[code]; ok {
		session.Close()
		delete(h.sessions, code)
		h.logger.Info("session deleted", "sessionCode", code)
	}
}

// RemoveIfEmpty tears a session down once its roster is empty. Called
// after every player removal.
func (h *Hub) RemoveIfEmpty(code string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	session, ok := h.sessions[code]
	if !ok || !session.IsEmpty() {
		return
	}

	session.Close()
	delete(h.sessions, code)
	h.logger.Info("empty session torn down", "sessionCode", code)
}

// SessionCount returns the number of live sessions
func (h *Hub) SessionCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.sessions)
}

// TotalPlayerCount returns the total number of players across all sessions
func (h *Hub) TotalPlayerCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	total := 0
	for _, session := range h.sessions {
		total += session.PlayerCount()
	}
	return total
}

// Close shuts down the hub and all sessions
func (h *Hub) Close() {
	h.closeOnce.Do(func() {
		close(h.done)
	})

	h.mu.Lock()
	defer h.mu.Unlock()

	for _, session := range h.sessions {
		session.Close()
	}
	h.sessions = make(map[string]*LiveSession)
}

// generateCode generates a random session code
func (h *Hub) generateCode() string {
	b := make([]byte, h.codeLength)
	rand.Read(b)

	code := make([]byte, h.codeLength)
	for i := range code {
		code[i] = SessionCodeChars[int(b[i])%len(SessionCodeChars)]
	}

	return string(code)
}

// cleanupLoop periodically reaps abandoned sessions
func (h *Hub) cleanupLoop() {
	ticker := time.NewTicker(10 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-h.done:
			return
		case <-ticker.C:
			h.cleanupStaleSessions()
		}
	}
}

// cleanupStaleSessions removes sessions whose every player disconnected
// long enough ago
func (h *Hub) cleanupStaleSessions() {
	h.mu.Lock()
	defer h.mu.Unlock()

	now := time.Now()

	for code, session := range h.sessions {
		if session.Abandoned() && now.Sub(session.CreatedAt()) > StaleSessionTimeout {
			session.Close()
			delete(h.sessions, code)
			h.logger.Info("stale session cleaned up", "sessionCode", code)
		}
	}
}
