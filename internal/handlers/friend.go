package handlers

import (
	"encoding/json"
	"net/http"

	"adventure-backend/internal/middleware"
	"adventure-backend/internal/services"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

// FriendHandler handles friend request HTTP requests
type FriendHandler struct {
	friendService *services.FriendService
}

// NewFriendHandler creates a new friend handler
func NewFriendHandler(friendService *services.FriendService) *FriendHandler {
	return &FriendHandler{friendService: friendService}
}

// FriendInviteRequest is the body for POST /api/v1/friends/invitations
type FriendInviteRequest struct {
	FriendID string `json:"friend_id"`
}

// Invite handles POST /api/v1/friends/invitations
func (h *FriendHandler) Invite(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	participantID := middleware.GetParticipantID(ctx)

	var req FriendInviteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.FriendID == "" {
		respondError(w, "friend_id is required", http.StatusBadRequest)
		return
	}

	request, err := h.friendService.Invite(ctx, participantID, req.FriendID)
	if err != nil {
		log.Error().Err(err).Str("participant_id", participantID).Str("friend_id", req.FriendID).Msg("Failed to send friend request")
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, request)
}

// FriendUpdateRequest is the body for PUT /api/v1/friends/invitations/{request_id}
type FriendUpdateRequest struct {
	StatusID int `json:"status_id"`
}

// Update handles PUT /api/v1/friends/invitations/{request_id}
func (h *FriendHandler) Update(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	participantID := middleware.GetParticipantID(ctx)
	requestID := chi.URLParam(r, "request_id")

	var req FriendUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	request, err := h.friendService.Update(ctx, requestID, req.StatusID, participantID)
	if err != nil {
		log.Error().Err(err).Str("request_id", requestID).Msg("Failed to update friend request")
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, request)
}

// List handles GET /api/v1/friends
func (h *FriendHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	participantID := middleware.GetParticipantID(ctx)
	pageNumber, pageSize := pageParams(r)

	page, err := h.friendService.Friends(ctx, participantID, pageNumber, pageSize)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, page)
}

// Pending handles GET /api/v1/friends/invitations/pending
func (h *FriendHandler) Pending(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	participantID := middleware.GetParticipantID(ctx)

	requests, err := h.friendService.PendingFor(ctx, participantID)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, requests)
}
