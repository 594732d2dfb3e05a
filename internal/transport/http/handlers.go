package http

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/skip2/go-qrcode"

	"github.com/ZEBR0Z/Gamejam2025-sub000/internal/domain"
)

// Response is a standard API response
type Response struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *ErrorInfo  `json:"error,omitempty"`
}

// ErrorInfo contains error details
type ErrorInfo struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// CreateSessionResponse is the response for session creation
type CreateSessionResponse struct {
	SessionCode string `json:"sessionCode"`
	InviteLink  string `json:"inviteLink"`
}

// GetSessionResponse is the response for getting session info
type GetSessionResponse struct {
	SessionCode string `json:"sessionCode"`
	PlayerCount int    `json:"playerCount"`
	Phase       string `json:"phase"`
	CanJoin     bool   `json:"canJoin"`
}

// HealthResponse is the response for health checks
type HealthResponse struct {
	Status string `json:"status"`
}

// StatsResponse is the response for the stats endpoint
type StatsResponse struct {
	ActiveSessions int `json:"activeSessions"`
	TotalPlayers   int `json:"totalPlayers"`
}

// handleCreateSession handles POST /api/sessions
func (s *Server) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	session, err := s.hub.CreateSession()
	if err != nil {
		s.sendError(w, http.StatusInternalServerError, "CREATION_FAILED", "Failed to create session")
		return
	}

	s.sendSuccess(w, &CreateSessionResponse{
		SessionCode: session.Code(),
		InviteLink:  s.inviteLink(r, session.Code()),
	})
}

// handleGetSession handles GET /api/sessions/{sessionCode}
func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	sessionCode := r.PathValue("sessionCode")
	if sessionCode == "" {
		s.sendError(w, http.StatusBadRequest, "MISSING_SESSION_CODE", "Session code is required")
		return
	}

	session, err := s.hub.GetSession(strings.ToUpper(sessionCode))
	if err != nil {
		if err == domain.ErrSessionNotFound {
			s.sendError(w, http.StatusNotFound, "SESSION_NOT_FOUND", "Session not found")
		} else {
			s.sendError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error")
		}
		return
	}

	s.sendSuccess(w, &GetSessionResponse{
		SessionCode: session.Code(),
		PlayerCount: session.PlayerCount(),
		Phase:       string(session.Phase()),
		CanJoin:     session.CanJoin(),
	})
}

// handleSessionQR handles GET /api/sessions/{sessionCode}/qr and returns
// a PNG QR code of the invite link for sharing on a second screen.
func (s *Server) handleSessionQR(w http.ResponseWriter, r *http.Request) {
	sessionCode := strings.ToUpper(r.PathValue("sessionCode"))

	session, err := s.hub.GetSession(sessionCode)
	if err != nil {
		s.sendError(w, http.StatusNotFound, "SESSION_NOT_FOUND", "Session not found")
		return
	}

	png, err := qrcode.Encode(s.inviteLink(r, session.Code()), qrcode.Medium, 256)
	if err != nil {
		s.sendError(w, http.StatusInternalServerError, "QR_FAILED", "Failed to render QR code")
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "no-store")
	w.Write(png)
}

// handleHealth handles GET /api/health
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.sendSuccess(w, &HealthResponse{
		Status: "ok",
	})
}

// handleStats handles GET /api/stats
func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	s.sendSuccess(w, &StatsResponse{
		ActiveSessions: s.hub.SessionCount(),
		TotalPlayers:   s.hub.TotalPlayerCount(),
	})
}

// inviteLink builds the client-side join URL for a session
func (s *Server) inviteLink(r *http.Request, sessionCode string) string {
	scheme := "http"
	if r.TLS != nil || r.Header.Get("X-Forwarded-Proto") == "https" {
		scheme = "https"
	}
	return scheme + "://" + r.Host + "/join/" + sessionCode
}

// sendSuccess sends a successful JSON response
func (s *Server) sendSuccess(w http.ResponseWriter, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(&Response{
		Success: true,
		Data:    data,
	})
}

// sendError sends an error JSON response
func (s *Server) sendError(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(&Response{
		Success: false,
		Error: &ErrorInfo{
			Code:    code,
			Message: message,
		},
	})
}
