package ws

import (
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/ZEBR0Z/Gamejam2025-sub000/internal/app"
	"github.com/ZEBR0Z/Gamejam2025-sub000/internal/domain"
)

const (
	// Time allowed to write a message to the peer
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer
	pongWait = 60 * time.Second

	// Send pings to peer with this period (must be less than pongWait)
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer. Segments carry sound event
	// lists, so this is roomier than a chat protocol would need.
	maxMessageSize = 64 * 1024

	// Size of the send channel buffer
	sendBufferSize = 256
)

// Client represents a WebSocket client connection. The playerID is empty
// until the peer joins (or reconnects into) the session.
type Client struct {
	conn     *websocket.Conn
	hub      *app.Hub
	session  *app.LiveSession
	playerID string
	send     chan []byte
	done     chan struct{}
	logger   *slog.Logger
	mu       sync.Mutex
	closed   bool
}

// NewClient creates a new WebSocket client
func NewClient(conn *websocket.Conn, hub *app.Hub, session *app.LiveSession, logger *slog.Logger) *Client {
	return &Client{
		conn:    conn,
		hub:     hub,
		session: session,
		send:    make(chan []byte, sendBufferSize),
		done:    make(chan struct{}),
		logger:  logger,
	}
}

// GetPlayerID returns the player ID for this client
func (c *Client) GetPlayerID() string {
	return c.playerID
}

// Send implements app.ClientConnection
func (c *Client) Send(message interface{}) error {
	data, err := json.Marshal(message)
	if err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return nil
	}

	select {
	case c.send <- data:
		return nil
	default:
		c.logger.Warn("send buffer full, message dropped", "playerID", c.playerID)
		return nil
	}
}

// Close implements app.ClientConnection
func (c *Client) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return nil
	}

	c.closed = true
	close(c.done)
	return c.conn.Close()
}

// Run starts the client's read and write pumps
func (c *Client) Run() {
	go c.writePump()
	c.readPump()
}

// readPump pumps messages from the WebSocket connection
func (c *Client) readPump() {
	defer func() {
		if c.playerID != "" {
			c.session.UnregisterClient(c.playerID)
			c.session.Leave(c.playerID)
			c.hub.RemoveIfEmpty(c.session.Code())
		}
		c.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.logger.Debug("websocket read error", "error", err)
			}
			break
		}

		c.handleMessage(message)
	}
}

// writePump pumps messages from the send channel to the WebSocket connection
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case <-c.done:
			return
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			w, err := c.conn.NextWriter(websocket.TextMessage)
			if err != nil {
				return
			}
			w.Write(message)

			// Add queued messages to the current websocket message
			n := len(c.send)
			for i := 0; i < n; i++ {
				w.Write([]byte{'\n'})
				w.Write(<-c.send)
			}

			if err := w.Close(); err != nil {
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// handleMessage processes an incoming message from the client
func (c *Client) handleMessage(data []byte) {
	var msg ClientMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		c.sendError(ErrCodeInvalidMessage, "Invalid message format")
		return
	}

	switch msg.Type {
	case MsgJoinSession:
		c.handleJoinSession(msg.Payload)
	case MsgSetReady:
		c.handleSetReady()
	case MsgSubmitSegment:
		c.handleSubmitSegment(msg.Payload)
	case MsgPing:
		c.sendPong()
	default:
		c.sendError(ErrCodeInvalidMessage, "Unknown message type")
	}
}

// handleJoinSession handles a join_session message
func (c *Client) handleJoinSession(payload json.RawMessage) {
	var join JoinSessionPayload
	if err := json.Unmarshal(payload, &join); err != nil || join.Name == "" {
		c.sendError(ErrCodeInvalidMessage, "Display name is required")
		return
	}

	if c.playerID != "" {
		c.sendError(ErrCodeInvalidAction, "Already joined")
		return
	}

	player, err := c.session.Join(join.Name)
	if err != nil {
		switch err {
		case domain.ErrSessionFull:
			c.sendError(ErrCodeSessionFull, "Session is full")
		case domain.ErrSessionAlreadyActive:
			c.sendError(ErrCodeSessionActive, "Game has already started")
		case domain.ErrEmptyName:
			c.sendError(ErrCodeInvalidMessage, "Display name is required")
		default:
			c.sendError(ErrCodeInternalError, err.Error())
		}
		return
	}

	c.playerID = player.ID
	c.session.RegisterClient(player.ID, c)
	c.sendConnected()
}

// handleSetReady handles a set_ready message
func (c *Client) handleSetReady() {
	if c.playerID == "" {
		c.sendError(ErrCodeInvalidAction, "Join the session first")
		return
	}

	err := c.session.SetReady(c.playerID)
	if err != nil {
		switch err {
		case domain.ErrNotEnoughPlayers:
			c.sendError(ErrCodeNotEnoughPlayers, "Waiting for more players")
		case domain.ErrInvalidPhase:
			c.sendError(ErrCodeInvalidAction, "Cannot ready up now")
		default:
			c.sendError(ErrCodeInternalError, err.Error())
		}
		return
	}
}

// handleSubmitSegment handles a submit_segment message
func (c *Client) handleSubmitSegment(payload json.RawMessage) {
	if c.playerID == "" {
		c.sendError(ErrCodeInvalidAction, "Join the session first")
		return
	}

	var submit SubmitSegmentPayload
	if err := json.Unmarshal(payload, &submit); err != nil || len(submit.Segment) == 0 {
		c.sendError(ErrCodeInvalidMessage, "Segment payload is required")
		return
	}

	err := c.session.Submit(c.playerID, submit.Segment)
	if err != nil {
		switch err {
		case domain.ErrDuplicateSubmission:
			c.sendError(ErrCodeDuplicateSubmission, "You already submitted this round")
		case domain.ErrAssignmentMissing:
			c.sendError(ErrCodeAssignmentMissing, "No composition assigned")
		case domain.ErrInvalidPhase:
			c.sendError(ErrCodeInvalidAction, "Cannot submit now")
		case domain.ErrEmptyPayload:
			c.sendError(ErrCodeInvalidMessage, "Segment payload is required")
		default:
			c.sendError(ErrCodeInternalError, err.Error())
		}
		return
	}
}

// sendConnected sends the connected message to the client
func (c *Client) sendConnected() {
	payload := &ConnectedPayload{
		PlayerID:    c.playerID,
		SessionCode: c.session.Code(),
		State:       c.session.Snapshot(c.playerID),
	}

	c.Send(NewServerMessage(MsgConnected, payload))
}

// sendError sends an error message to the client
func (c *Client) sendError(code, message string) {
	payload := &ErrorPayload{
		Code:    code,
		Message: message,
	}

	c.Send(NewServerMessage(MsgError, payload))
}

// sendPong sends a pong message in response to ping
func (c *Client) sendPong() {
	c.Send(NewServerMessage(MsgPong, nil))
}
