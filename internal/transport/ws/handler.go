package ws

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/gorilla/websocket"

	"github.com/ZEBR0Z/Gamejam2025-sub000/internal/app"
)

// Handler handles WebSocket connections
type Handler struct {
	hub      *app.Hub
	upgrader websocket.Upgrader
	logger   *slog.Logger
}

// NewHandler creates a new WebSocket handler
func NewHandler(hub *app.Hub, logger *slog.Logger) *Handler {
	return &Handler{
		hub: hub,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				// Allow all origins for development
				// In production, you should validate the origin
				return true
			},
		},
		logger: logger,
	}
}

// ServeHTTP handles WebSocket upgrade requests
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	sessionCode := strings.ToUpper(r.URL.Query().Get("sessionCode"))
	if sessionCode == "" {
		http.Error(w, "sessionCode is required", http.StatusBadRequest)
		return
	}

	// A playerId means this peer claims an existing identity
	playerID := r.URL.Query().Get("playerId")
	isReconnect := playerID != ""

	session, err := h.hub.GetSession(sessionCode)
	if err != nil {
		http.Error(w, "Session not found", http.StatusNotFound)
		return
	}

	if !isReconnect && !session.CanJoin() {
		http.Error(w, "Cannot join this session", http.StatusForbidden)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Error("websocket upgrade failed", "error", err)
		return
	}

	client := NewClient(conn, h.hub, session, h.logger)

	h.logger.Info("websocket connected",
		"sessionCode", sessionCode,
		"playerID", playerID,
		"isReconnect", isReconnect,
	)

	if isReconnect {
		if state, err := session.Reconnect(playerID); err != nil {
			h.logger.Debug("reconnect failed", "playerID", playerID, "error", err)
			client.sendError(ErrCodePlayerNotFound, "Unknown player for this session")
		} else {
			client.playerID = playerID
			session.RegisterClient(playerID, client)
			client.Send(NewServerMessage(MsgConnected, &ConnectedPayload{
				PlayerID:    playerID,
				SessionCode: sessionCode,
				State:       state,
			}))
		}
	}

	client.Run()
}
