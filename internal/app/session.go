package app

import (
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"github.com/ZEBR0Z/Gamejam2025-sub000/internal/domain"
)

// ClientConnection represents a connected client
type ClientConnection interface {
	Send(message interface{}) error
	GetPlayerID() string
	Close() error
}

// LiveSession wraps a session with concurrency control and client
// management. Every state mutation and the barrier check that follows it
// run under one mutex, so transitions never interleave; different
// sessions are fully independent.
type LiveSession struct {
	session   *domain.Session
	mu        sync.Mutex
	clients   map[string]ClientConnection // playerID -> client
	clientsMu sync.RWMutex
	catalog   *SoundCatalog
	soundsPer int
	logger    *slog.Logger

	events    chan *domain.SessionEvent
	done      chan struct{}
	closeOnce sync.Once
}

// NewLiveSession creates a new live session around a domain session
func NewLiveSession(session *domain.Session, catalog *SoundCatalog, soundsPerGame int, logger *slog.Logger) *LiveSession {
	ls := &LiveSession{
		session:   session,
		clients:   make(map[string]ClientConnection),
		catalog:   catalog,
		soundsPer: soundsPerGame,
		logger:    logger,
		events:    make(chan *domain.SessionEvent, 100),
		done:      make(chan struct{}),
	}

	go ls.eventLoop()

	return ls
}

// Code returns the session code
func (ls *LiveSession) Code() string {
	return ls.session.Code
}

// CreatedAt returns when the session was created
func (ls *LiveSession) CreatedAt() time.Time {
	return ls.session.CreatedAt
}

// PlayerCount returns the number of players on the roster
func (ls *LiveSession) PlayerCount() int {
	ls.mu.Lock()
	defer ls.mu.Unlock()
	return len(ls.session.Players)
}

// Phase returns the current session phase
func (ls *LiveSession) Phase() domain.Phase {
	ls.mu.Lock()
	defer ls.mu.Unlock()
	return ls.session.Phase
}

// CanJoin checks if a new player can still join
func (ls *LiveSession) CanJoin() bool {
	ls.mu.Lock()
	defer ls.mu.Unlock()
	return ls.session.Phase == domain.PhaseLobby &&
		len(ls.session.Players) < ls.session.Settings.MaxPlayers
}

// Abandoned reports whether every roster member has disconnected
func (ls *LiveSession) Abandoned() bool {
	ls.mu.Lock()
	defer ls.mu.Unlock()
	return ls.session.AllDisconnected()
}

// RegisterClient registers a client connection for a player
func (ls *LiveSession) RegisterClient(playerID string, client ClientConnection) {
	ls.clientsMu.Lock()
	defer ls.clientsMu.Unlock()
	ls.clients[playerID] = client
}

// UnregisterClient removes a client connection
func (ls *LiveSession) UnregisterClient(playerID string) {
	ls.clientsMu.Lock()
	defer ls.clientsMu.Unlock()
	delete(ls.clients, playerID)
}

// Join adds a player to the session
func (ls *LiveSession) Join(name string) (*domain.Player, error) {
	ls.mu.Lock()
	defer ls.mu.Unlock()

	player, err := ls.session.AddPlayer(name)
	if err != nil {
		return nil, err
	}

	ls.broadcastSnapshots(domain.EventPlayerJoined)

	return player, nil
}

// Leave handles a departing player. In the lobby the player is removed
// outright; mid-game they are only marked disconnected so the rotation
// ring and the coverage invariant stay intact — the round stalls until
// they come back.
func (ls *LiveSession) Leave(playerID string) {
	ls.mu.Lock()
	defer ls.mu.Unlock()

	if ls.session.Phase == domain.PhaseLobby {
		if err := ls.session.RemovePlayer(playerID); err != nil {
			return
		}
		ls.broadcastSnapshots(domain.EventPlayerLeft)
		return
	}

	if player, err := ls.session.GetPlayer(playerID); err == nil {
		player.Disconnect()
		ls.broadcastSnapshots(domain.EventPlayerLeft)
	}
}

// Reconnect marks a player as reconnected and returns their current
// snapshot.
func (ls *LiveSession) Reconnect(playerID string) (*domain.StateSnapshot, error) {
	ls.mu.Lock()
	defer ls.mu.Unlock()

	player, err := ls.session.GetPlayer(playerID)
	if err != nil {
		return nil, err
	}

	player.Reconnect()
	ls.broadcastSnapshots(domain.EventPlayerReconnected)

	return ls.session.SnapshotFor(playerID), nil
}

// IsEmpty reports whether the roster is empty
func (ls *LiveSession) IsEmpty() bool {
	ls.mu.Lock()
	defer ls.mu.Unlock()
	return ls.session.IsEmpty()
}

// Snapshot returns the session state as seen by one player
func (ls *LiveSession) Snapshot(playerID string) *domain.StateSnapshot {
	ls.mu.Lock()
	defer ls.mu.Unlock()
	return ls.session.SnapshotFor(playerID)
}

// SetReady marks a player ready and starts the game once the readiness
// barrier holds: everyone ready and at least the minimum player count.
// Readying up below the minimum roster is rejected outright, so the
// error never comes paired with a ready broadcast.
func (ls *LiveSession) SetReady(playerID string) error {
	ls.mu.Lock()
	defer ls.mu.Unlock()

	if len(ls.session.Players) < ls.session.Settings.MinPlayers {
		return domain.ErrNotEnoughPlayers
	}

	if err := ls.session.SetReady(playerID); err != nil {
		return err
	}

	if ls.session.AllReady() {
		sounds := ls.catalog.Pick(ls.soundsPer)
		if err := ls.session.Start(sounds); err != nil {
			return err
		}
		ls.logger.Info("game started",
			"sessionCode", ls.session.Code,
			"players", len(ls.session.Players),
			"rounds", ls.session.TotalRounds,
		)
		ls.broadcastSnapshots(domain.EventGameStarted)
		return nil
	}

	ls.broadcastSnapshots(domain.EventPlayerReady)
	return nil
}

// Submit records a player's segment for the open round and advances the
// round once the submission barrier holds.
func (ls *LiveSession) Submit(playerID string, payload json.RawMessage) error {
	ls.mu.Lock()
	defer ls.mu.Unlock()

	if err := ls.session.Submit(playerID, payload); err != nil {
		return err
	}

	if !ls.session.AllSubmitted() {
		ls.broadcastSnapshots(domain.EventSegmentSubmitted)
		return nil
	}

	if err := ls.session.AdvanceRound(); err != nil {
		// A broken assignment bijection means the rotation engine has a
		// bug. The submission stands but the session stalls here rather
		// than corrupting composition coverage.
		ls.logger.Error("round advance failed",
			"sessionCode", ls.session.Code,
			"round", ls.session.Round,
			"error", err,
		)
		ls.broadcastSnapshots(domain.EventSegmentSubmitted)
		return nil
	}

	if ls.session.Phase == domain.PhaseShowcase {
		ls.logger.Info("game finished", "sessionCode", ls.session.Code)
		ls.broadcastSnapshots(domain.EventShowcase)
	} else {
		ls.broadcastSnapshots(domain.EventRoundAdvanced)
	}
	return nil
}

// broadcastSnapshots queues one personalized snapshot event per connected
// client. Caller must hold ls.mu; the actual websocket writes happen on
// the event loop, never under the session lock.
func (ls *LiveSession) broadcastSnapshots(eventType domain.EventType) {
	ls.clientsMu.RLock()
	defer ls.clientsMu.RUnlock()

	for playerID := range ls.clients {
		snapshot := ls.session.SnapshotFor(playerID)
		ls.queueEvent(domain.NewPlayerEvent(eventType, ls.session.Code, playerID, snapshot))
	}
}

// queueEvent adds an event to the broadcast queue
func (ls *LiveSession) queueEvent(event *domain.SessionEvent) {
	select {
	case ls.events <- event:
	default:
		ls.logger.Warn("event queue full, dropping event", "type", event.Type)
	}
}

// eventLoop delivers queued events to clients
func (ls *LiveSession) eventLoop() {
	for {
		select {
		case <-ls.done:
			return
		case event := <-ls.events:
			ls.deliverEvent(event)
		}
	}
}

// deliverEvent sends an event to its recipient
func (ls *LiveSession) deliverEvent(event *domain.SessionEvent) {
	ls.clientsMu.RLock()
	defer ls.clientsMu.RUnlock()

	if event.PlayerID != "" {
		if client, ok := ls.clients[event.PlayerID]; ok {
			if err := client.Send(event); err != nil {
				ls.logger.Debug("failed to send to client", "playerID", event.PlayerID, "error", err)
			}
		}
		return
	}

	for playerID, client := range ls.clients {
		if err := client.Send(event); err != nil {
			ls.logger.Debug("failed to send to client", "playerID", playerID, "error", err)
		}
	}
}

// Close shuts down the live session
func (ls *LiveSession) Close() {
	ls.closeOnce.Do(func() {
		close(ls.done)

		ls.clientsMu.Lock()
		for _, client := range ls.clients {
			client.Close()
		}
		ls.clients = make(map[string]ClientConnection)
		ls.clientsMu.Unlock()
	})
}
