package handler

import (
	"encoding/json"
	"net/http"

	"github.com/cryptokey/dashboard-api/internal/application/dispatch"
	"github.com/cryptokey/dashboard-api/internal/domain"
)

// SendHandler handles the transactional email endpoints.
type SendHandler struct {
	svc dispatch.Service
}

func NewSendHandler(svc dispatch.Service) *SendHandler { return &SendHandler{svc: svc} }

type rawSendRequest struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
	HTML    string `json:"html"`
}

type welcomeRequest struct {
	Email string `json:"email"`
}

type statusRequest struct {
	Email  string `json:"email"`
	Status string `json:"status"`
	UserID string `json:"userId"`
}

// Send forwards the body verbatim to the email API. No template, no receipt.
func (h *SendHandler) Send(w http.ResponseWriter, r *http.Request) {
	var req rawSendRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	providerID, err := h.svc.SendRaw(r.Context(), req.To, req.Subject, req.HTML)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, SendEnvelope{ID: providerID})
}

// Welcome validates the recipient before any external call, then sends the
// welcome template. The record timestamp is matched by email lookup.
func (h *SendHandler) Welcome(w http.ResponseWriter, r *http.Request) {
	var req welcomeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Email == "" {
		writeError(w, http.StatusBadRequest, "Email is required")
		return
	}
	if _, err := h.svc.Send(r.Context(), req.Email, domain.KindWelcome, ""); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to send email")
		return
	}
	writeJSON(w, http.StatusOK, MessageEnvelope{Message: "Welcome email sent successfully"})
}

// Status validates all fields and the status value before any external call,
// then sends the status-mapped template and timestamps users/{userId}.
func (h *SendHandler) Status(w http.ResponseWriter, r *http.Request) {
	var req statusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Email == "" || req.Status == "" || req.UserID == "" {
		writeError(w, http.StatusBadRequest, "Email, status, and userId are required")
		return
	}
	kind, ok := domain.KindForStatus(req.Status)
	if !ok {
		writeError(w, http.StatusBadRequest, "Invalid status")
		return
	}
	if _, err := h.svc.Send(r.Context(), req.Email, kind, req.UserID); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to send email")
		return
	}
	writeJSON(w, http.StatusOK, MessageEnvelope{Message: "Status email sent successfully"})
}
