package handler

import (
	"encoding/json"
	"net/http"

	"github.com/cryptokey/dashboard-api/internal/domain"
)

// MessageEnvelope is the generic response wrapper.
type MessageEnvelope struct {
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}

// AuthEnvelope wraps register/login responses.
type AuthEnvelope struct {
	Bearer  string             `json:"Bearer,omitempty"`
	User    *domain.UserRecord `json:"user,omitempty"`
	Message string             `json:"message,omitempty"`
	Error   string             `json:"error,omitempty"`
}

// UsersEnvelope wraps dashboard user-list responses.
type UsersEnvelope struct {
	Data  []domain.UserRecord `json:"data"`
	Error string              `json:"error,omitempty"`
}

// EmailsEnvelope wraps send-history responses.
type EmailsEnvelope struct {
	Data  []domain.DeliveryReceipt `json:"data"`
	Error string                   `json:"error,omitempty"`
}

// SendEnvelope wraps raw send responses with the provider's message id.
type SendEnvelope struct {
	ID    string `json:"id,omitempty"`
	Error string `json:"error,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, MessageEnvelope{Error: msg})
}
