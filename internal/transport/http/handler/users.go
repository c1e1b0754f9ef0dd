package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/cryptokey/dashboard-api/internal/application/dashboard"
	"github.com/cryptokey/dashboard-api/internal/domain"
	"github.com/cryptokey/dashboard-api/internal/transport/http/middleware"
	"github.com/go-chi/chi/v5"
)

// UsersHandler serves the dashboard projection.
type UsersHandler struct {
	svc dashboard.Service
}

func NewUsersHandler(svc dashboard.Service) *UsersHandler { return &UsersHandler{svc: svc} }

// List returns all records for the admin, the caller's own record otherwise.
func (h *UsersHandler) List(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerFrom(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	records, err := h.svc.List(r.Context(), caller)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			writeError(w, http.StatusNotFound, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, UsersEnvelope{Data: records})
}

// ResendWelcome is the admin's manual welcome re-send for users registered
// within the last 24 hours.
func (h *UsersHandler) ResendWelcome(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerFrom(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	var req struct {
		Email string `json:"email"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Email == "" {
		writeError(w, http.StatusBadRequest, "Email is required")
		return
	}
	sent, err := h.svc.ResendWelcome(r.Context(), caller, req.Email)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrForbidden):
			writeError(w, http.StatusForbidden, err.Error())
		case errors.Is(err, domain.ErrBadRequest):
			writeError(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, domain.ErrNotFound):
			writeError(w, http.StatusNotFound, err.Error())
		default:
			writeError(w, http.StatusInternalServerError, "Failed to send email")
		}
		return
	}
	if !sent {
		writeJSON(w, http.StatusOK, MessageEnvelope{Message: "Welcome email already sent today"})
		return
	}
	writeJSON(w, http.StatusOK, MessageEnvelope{Message: "Welcome email sent successfully"})
}

// Emails returns a user's send history, newest first.
func (h *UsersHandler) Emails(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerFrom(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	receipts, err := h.svc.Emails(r.Context(), caller, chi.URLParam(r, "userID"))
	if err != nil {
		if errors.Is(err, domain.ErrForbidden) {
			writeError(w, http.StatusForbidden, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, EmailsEnvelope{Data: receipts})
}

func callerFrom(r *http.Request) (dashboard.Caller, bool) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		return dashboard.Caller{}, false
	}
	return dashboard.Caller{UserID: claims.UserID, Email: claims.Email}, true
}
