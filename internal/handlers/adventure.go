package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"adventure-backend/internal/middleware"
	"adventure-backend/internal/services"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

// AdventureHandler handles adventure-related HTTP requests
type AdventureHandler struct {
	adventureService *services.AdventureService
	positionService  *services.PositionService
}

// NewAdventureHandler creates a new adventure handler
func NewAdventureHandler(adventureService *services.AdventureService, positionService *services.PositionService) *AdventureHandler {
	return &AdventureHandler{
		adventureService: adventureService,
		positionService:  positionService,
	}
}

// AdventureRequest is the body for creating and updating adventures
type AdventureRequest struct {
	Name                  string    `json:"name"`
	StartDate             time.Time `json:"start_date"`
	EndDate               time.Time `json:"end_date"`
	TypeID                int       `json:"type_id"`
	MeetupLocationID      *string   `json:"meetup_location_id,omitempty"`
	DestinationLocationID *string   `json:"destination_location_id,omitempty"`
}

// Create handles POST /api/v1/adventures
func (h *AdventureHandler) Create(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	participantID := middleware.GetParticipantID(ctx)

	var req AdventureRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	adventure, err := h.adventureService.Create(ctx, participantID, services.CreateAdventureInput{
		Name:                  req.Name,
		StartDate:             req.StartDate,
		EndDate:               req.EndDate,
		TypeID:                req.TypeID,
		MeetupLocationID:      req.MeetupLocationID,
		DestinationLocationID: req.DestinationLocationID,
	})
	if err != nil {
		log.Error().Err(err).Str("participant_id", participantID).Msg("Failed to create adventure")
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, adventure)
}

// List handles GET /api/v1/adventures
func (h *AdventureHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	participantID := middleware.GetParticipantID(ctx)
	pageNumber, pageSize := pageParams(r)

	page, err := h.adventureService.ListForParticipant(ctx, participantID, pageNumber, pageSize)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, page)
}

// Get handles GET /api/v1/adventures/{adventure_id}
func (h *AdventureHandler) Get(w http.ResponseWriter, r *http.Request) {
	adventure, err := h.adventureService.Get(r.Context(), chi.URLParam(r, "adventure_id"))
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, adventure)
}

// Update handles PUT /api/v1/adventures/{adventure_id}
func (h *AdventureHandler) Update(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	participantID := middleware.GetParticipantID(ctx)
	adventureID := chi.URLParam(r, "adventure_id")

	var req AdventureRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	adventure, err := h.adventureService.Update(ctx, adventureID, participantID, services.UpdateAdventureInput{
		Name:                  req.Name,
		StartDate:             req.StartDate,
		EndDate:               req.EndDate,
		TypeID:                req.TypeID,
		MeetupLocationID:      req.MeetupLocationID,
		DestinationLocationID: req.DestinationLocationID,
	})
	if err != nil {
		log.Error().Err(err).Str("adventure_id", adventureID).Msg("Failed to update adventure")
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, adventure)
}

// Delete handles DELETE /api/v1/adventures/{adventure_id}
func (h *AdventureHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	participantID := middleware.GetParticipantID(ctx)
	adventureID := chi.URLParam(r, "adventure_id")

	if err := h.adventureService.Delete(ctx, adventureID, participantID); err != nil {
		log.Error().Err(err).Str("adventure_id", adventureID).Msg("Failed to delete adventure")
		respondServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Start handles POST /api/v1/adventures/{adventure_id}/start
func (h *AdventureHandler) Start(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	participantID := middleware.GetParticipantID(ctx)
	adventureID := chi.URLParam(r, "adventure_id")

	adventure, err := h.adventureService.Start(ctx, adventureID, participantID)
	if err != nil {
		log.Error().Err(err).Str("adventure_id", adventureID).Msg("Failed to start adventure")
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, adventure)
}

// Complete handles POST /api/v1/adventures/{adventure_id}/complete
func (h *AdventureHandler) Complete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	participantID := middleware.GetParticipantID(ctx)
	adventureID := chi.URLParam(r, "adventure_id")

	adventure, err := h.adventureService.Complete(ctx, adventureID, participantID)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, adventure)
}

// Participants handles GET /api/v1/adventures/{adventure_id}/participants
func (h *AdventureHandler) Participants(w http.ResponseWriter, r *http.Request) {
	participants, err := h.adventureService.Participants(r.Context(), chi.URLParam(r, "adventure_id"))
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, participants)
}

// DistanceRequest is the body for POST /api/v1/adventures/{adventure_id}/distance
type DistanceRequest struct {
	Distance float64 `json:"distance"`
}

// AddDistance handles POST /api/v1/adventures/{adventure_id}/distance
func (h *AdventureHandler) AddDistance(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	participantID := middleware.GetParticipantID(ctx)
	adventureID := chi.URLParam(r, "adventure_id")

	var req DistanceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if err := h.adventureService.AddDistance(ctx, adventureID, participantID, req.Distance); err != nil {
		respondServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Positions handles GET /api/v1/adventures/{adventure_id}/positions
func (h *AdventureHandler) Positions(w http.ResponseWriter, r *http.Request) {
	adventureID := chi.URLParam(r, "adventure_id")
	pageNumber, pageSize := pageParams(r)

	page, err := h.positionService.ListForAdventure(r.Context(), adventureID, pageNumber, pageSize)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, page)
}
