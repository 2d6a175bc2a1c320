package handlers

import (
	"encoding/json"
	"net/http"

	"adventure-backend/internal/middleware"
	"adventure-backend/internal/services"

	"github.com/rs/zerolog/log"
)

// AuthHandler handles registration and token issuance requests
type AuthHandler struct {
	identity *services.IdentityService
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(identity *services.IdentityService) *AuthHandler {
	return &AuthHandler{identity: identity}
}

// RegisterRequest is the body for POST /api/v1/auth/register
type RegisterRequest struct {
	Email       string `json:"email"`
	Password    string `json:"password"`
	CallbackURL string `json:"callback_url"`
}

// Register handles POST /api/v1/auth/register
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	result := h.identity.Register(r.Context(), req.Email, req.Password, req.CallbackURL)
	if !result.Succeeded {
		log.Warn().Strs("errors", result.Errors).Str("email", req.Email).Msg("Registration failed")
		respondJSON(w, http.StatusBadRequest, result)
		return
	}

	log.Info().Str("email", req.Email).Msg("Registration succeeded")
	respondJSON(w, http.StatusOK, result)
}

// LoginRequest is the body for POST /api/v1/auth/login
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login handles POST /api/v1/auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	pair, err := h.identity.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		log.Warn().Err(err).Str("email", req.Email).Msg("Login failed")
		respondError(w, "invalid credentials", http.StatusUnauthorized)
		return
	}
	respondJSON(w, http.StatusOK, pair)
}

// RefreshRequest is the body for POST /api/v1/auth/refresh
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// Refresh handles POST /api/v1/auth/refresh
func (h *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	var req RefreshRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	pair, err := h.identity.Refresh(r.Context(), req.RefreshToken)
	if err != nil {
		log.Warn().Err(err).Msg("Token refresh failed")
		respondError(w, "invalid refresh token", http.StatusUnauthorized)
		return
	}
	respondJSON(w, http.StatusOK, pair)
}

// Revoke handles POST /api/v1/auth/revoke
func (h *AuthHandler) Revoke(w http.ResponseWriter, r *http.Request) {
	participantID := middleware.GetParticipantID(r.Context())
	if err := h.identity.Revoke(r.Context(), participantID); err != nil {
		respondServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GoogleSignInRequest is the body for POST /api/v1/auth/google
type GoogleSignInRequest struct {
	IDToken string `json:"id_token"`
}

// GoogleSignIn handles POST /api/v1/auth/google
func (h *AuthHandler) GoogleSignIn(w http.ResponseWriter, r *http.Request) {
	var req GoogleSignInRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	pair, err := h.identity.GoogleSignIn(r.Context(), req.IDToken)
	if err != nil {
		log.Warn().Err(err).Msg("Google sign-in failed")
		respondError(w, "google sign-in failed", http.StatusUnauthorized)
		return
	}
	respondJSON(w, http.StatusOK, pair)
}

// ConfirmEmailRequest is the body for POST /api/v1/auth/confirm-email
type ConfirmEmailRequest struct {
	UserID string `json:"user_id"`
	Token  string `json:"token"`
}

// ConfirmEmail handles POST /api/v1/auth/confirm-email
func (h *AuthHandler) ConfirmEmail(w http.ResponseWriter, r *http.Request) {
	var req ConfirmEmailRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if err := h.identity.ConfirmEmail(r.Context(), req.UserID, req.Token); err != nil {
		respondServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ForgotPasswordRequest is the body for POST /api/v1/auth/forgot-password
type ForgotPasswordRequest struct {
	Email       string `json:"email"`
	CallbackURL string `json:"callback_url"`
}

// ForgotPassword handles POST /api/v1/auth/forgot-password
func (h *AuthHandler) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	var req ForgotPasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	result := h.identity.ForgotPassword(r.Context(), req.Email, req.CallbackURL)
	status := http.StatusOK
	if !result.Succeeded {
		status = http.StatusBadRequest
	}
	respondJSON(w, status, result)
}

// ResetPasswordRequest is the body for POST /api/v1/auth/reset-password
type ResetPasswordRequest struct {
	UserID      string `json:"user_id"`
	Token       string `json:"token"`
	NewPassword string `json:"new_password"`
}

// ResetPassword handles POST /api/v1/auth/reset-password
func (h *AuthHandler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	var req ResetPasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if err := h.identity.ResetPassword(r.Context(), req.UserID, req.Token, req.NewPassword); err != nil {
		respondServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
