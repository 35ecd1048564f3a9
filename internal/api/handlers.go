// Package api provides HTTP handlers for civicbot endpoints.
package api

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/kolhapurmc/civicbot/internal/models"
)

// chatRequest is the web chat payload: a sender identifier and the
// message text.
type chatRequest struct {
	From    string `json:"from"`
	Message string `json:"message"`
}

// chatHandler runs one dialogue turn for the web chat channel. The same
// controller serves both channels, so a web session and a WhatsApp session
// with the same identifier share state.
func (s *Server) chatHandler(w http.ResponseWriter, r *http.Request) {
	if r.Body != nil {
		defer r.Body.Close()
	}
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Warn("Server.chatHandler: failed to decode JSON", "error", err)
		writeJSONResponse(w, http.StatusBadRequest, models.Error("Invalid JSON format"))
		return
	}
	if strings.TrimSpace(req.From) == "" {
		writeJSONResponse(w, http.StatusBadRequest, models.Error("Missing sender"))
		return
	}
	if req.Message == "" {
		writeJSONResponse(w, http.StatusBadRequest, models.Error("Missing message"))
		return
	}

	slog.Debug("Server.chatHandler: processing turn", "from", req.From, "message_length", len(req.Message))
	reply := s.handler.HandleMessage(r.Context(), req.From, req.Message)
	writeJSONResponse(w, http.StatusOK, models.Success(map[string]string{"reply": reply}))
}

// healthHandler provides a health check endpoint for monitoring.
func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	writeJSONResponse(w, http.StatusOK, map[string]interface{}{
		"status":    "healthy",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}
