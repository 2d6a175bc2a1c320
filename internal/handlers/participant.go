package handlers

import (
	"encoding/json"
	"net/http"

	"adventure-backend/internal/middleware"
	"adventure-backend/internal/services"

	"github.com/rs/zerolog/log"
)

// ParticipantHandler handles profile and notification HTTP requests
type ParticipantHandler struct {
	participantService *services.ParticipantService
	positionService    *services.PositionService
}

// NewParticipantHandler creates a new participant handler
func NewParticipantHandler(participantService *services.ParticipantService, positionService *services.PositionService) *ParticipantHandler {
	return &ParticipantHandler{
		participantService: participantService,
		positionService:    positionService,
	}
}

// Me handles GET /api/v1/participants/me
func (h *ParticipantHandler) Me(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	participant, err := h.participantService.Get(ctx, middleware.GetParticipantID(ctx))
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, participant)
}

// ProfileRequest is the body for PUT /api/v1/participants/me
type ProfileRequest struct {
	DisplayName string `json:"display_name"`
	TrailColor  string `json:"trail_color"`
	FollowMe    bool   `json:"follow_me"`
}

// UpdateProfile handles PUT /api/v1/participants/me
func (h *ParticipantHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	participantID := middleware.GetParticipantID(ctx)

	var req ProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	participant, err := h.participantService.UpdateProfile(ctx, participantID, services.UpdateProfileInput{
		DisplayName: req.DisplayName,
		TrailColor:  req.TrailColor,
		FollowMe:    req.FollowMe,
	})
	if err != nil {
		log.Error().Err(err).Str("participant_id", participantID).Msg("Failed to update profile")
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, participant)
}

// PushTokenRequest is the body for PUT /api/v1/participants/me/push-token
type PushTokenRequest struct {
	PushToken *string `json:"push_token"`
}

// UpdatePushToken handles PUT /api/v1/participants/me/push-token
func (h *ParticipantHandler) UpdatePushToken(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	participantID := middleware.GetParticipantID(ctx)

	var req PushTokenRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if err := h.participantService.UpdatePushToken(ctx, participantID, req.PushToken); err != nil {
		respondServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// PhotoUploadRequest is the body for POST /api/v1/participants/me/photo-upload
type PhotoUploadRequest struct {
	ContentType string `json:"content_type"`
}

// PhotoUpload handles POST /api/v1/participants/me/photo-upload
func (h *ParticipantHandler) PhotoUpload(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	participantID := middleware.GetParticipantID(ctx)

	var req PhotoUploadRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	response, err := h.participantService.PhotoUploadURL(ctx, participantID, req.ContentType)
	if err != nil {
		log.Error().Err(err).Str("participant_id", participantID).Msg("Failed to generate pre-signed URL")
		respondServiceError(w, err)
		return
	}

	log.Info().Str("participant_id", participantID).Msg("Pre-signed photo URL generated")
	respondJSON(w, http.StatusOK, response)
}

// Notifications handles GET /api/v1/participants/me/notifications
func (h *ParticipantHandler) Notifications(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	participantID := middleware.GetParticipantID(ctx)
	pageNumber, pageSize := pageParams(r)

	page, err := h.participantService.Notifications(ctx, participantID, pageNumber, pageSize)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, page)
}

// Positions handles GET /api/v1/participants/me/positions
func (h *ParticipantHandler) Positions(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	participantID := middleware.GetParticipantID(ctx)
	pageNumber, pageSize := pageParams(r)

	page, err := h.positionService.ListForParticipant(ctx, participantID, pageNumber, pageSize)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, page)
}

// DeleteAccount handles DELETE /api/v1/participants/me
func (h *ParticipantHandler) DeleteAccount(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	participantID := middleware.GetParticipantID(ctx)

	if err := h.participantService.DeleteAccount(ctx, participantID); err != nil {
		respondServiceError(w, err)
		return
	}

	log.Info().Str("participant_id", participantID).Msg("Account deleted")
	w.WriteHeader(http.StatusNoContent)
}
