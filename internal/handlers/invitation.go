package handlers

import (
	"encoding/json"
	"net/http"

	"adventure-backend/internal/middleware"
	"adventure-backend/internal/services"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

// InvitationHandler handles adventure invitation HTTP requests
type InvitationHandler struct {
	invitationService *services.InvitationService
}

// NewInvitationHandler creates a new invitation handler
func NewInvitationHandler(invitationService *services.InvitationService) *InvitationHandler {
	return &InvitationHandler{invitationService: invitationService}
}

// InviteRequest is the body for POST /api/v1/adventures/{adventure_id}/invitations
type InviteRequest struct {
	Email         string `json:"email"`
	AccessLevelID int    `json:"access_level_id"`
}

// Invite handles POST /api/v1/adventures/{adventure_id}/invitations
func (h *InvitationHandler) Invite(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	participantID := middleware.GetParticipantID(ctx)
	adventureID := chi.URLParam(r, "adventure_id")

	var req InviteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	invitation, err := h.invitationService.Invite(ctx, adventureID, req.Email, req.AccessLevelID, participantID)
	if err != nil {
		log.Error().Err(err).Str("adventure_id", adventureID).Str("email", req.Email).Msg("Failed to invite participant")
		respondServiceError(w, err)
		return
	}

	log.Info().Str("adventure_id", adventureID).Str("invitation_id", invitation.ID).Msg("Participant invited")
	respondJSON(w, http.StatusCreated, invitation)
}

// AcceptRequest is the body for POST /api/v1/adventures/{adventure_id}/invitations/accept
type AcceptRequest struct {
	Email string `json:"email"`
}

// Accept handles POST /api/v1/adventures/{adventure_id}/invitations/accept
func (h *InvitationHandler) Accept(w http.ResponseWriter, r *http.Request) {
	adventureID := chi.URLParam(r, "adventure_id")

	var req AcceptRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	join, err := h.invitationService.Accept(r.Context(), adventureID, req.Email)
	if err != nil {
		log.Error().Err(err).Str("adventure_id", adventureID).Str("email", req.Email).Msg("Failed to accept invitation")
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, join)
}

// Reject handles POST /api/v1/invitations/{invitation_id}/reject
func (h *InvitationHandler) Reject(w http.ResponseWriter, r *http.Request) {
	invitationID := chi.URLParam(r, "invitation_id")

	if err := h.invitationService.Reject(r.Context(), invitationID); err != nil {
		log.Error().Err(err).Str("invitation_id", invitationID).Msg("Failed to reject invitation")
		respondServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// List handles GET /api/v1/adventures/{adventure_id}/invitations
func (h *InvitationHandler) List(w http.ResponseWriter, r *http.Request) {
	invitations, err := h.invitationService.ListByAdventure(r.Context(), chi.URLParam(r, "adventure_id"))
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, invitations)
}
