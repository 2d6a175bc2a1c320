package handlers

import (
	"encoding/json"
	"net/http"

	"adventure-backend/internal/middleware"
	"adventure-backend/internal/services"

	"github.com/rs/zerolog/log"
)

// PositionHandler handles GPS sample ingestion
type PositionHandler struct {
	positionService *services.PositionService
}

// NewPositionHandler creates a new position handler
func NewPositionHandler(positionService *services.PositionService) *PositionHandler {
	return &PositionHandler{positionService: positionService}
}

// PositionRequest is the body for POST /api/v1/positions
type PositionRequest struct {
	Latitude     *float64 `json:"latitude"`
	Longitude    *float64 `json:"longitude"`
	Speed        float64  `json:"speed"`
	Heading      float64  `json:"heading"`
	Altitude     float64  `json:"altitude"`
	Odometer     float64  `json:"odometer"`
	ActivityType string   `json:"activity_type"`
	BatteryLevel float64  `json:"battery_level"`
	Timestamp    string   `json:"timestamp"`
	IsMoving     bool     `json:"is_moving"`
}

// Record handles POST /api/v1/positions
func (h *PositionHandler) Record(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	participantID := middleware.GetParticipantID(ctx)

	var req PositionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	position, err := h.positionService.Record(ctx, services.RecordPositionInput{
		ParticipantID: participantID,
		Latitude:      req.Latitude,
		Longitude:     req.Longitude,
		Speed:         req.Speed,
		Heading:       req.Heading,
		Altitude:      req.Altitude,
		Odometer:      req.Odometer,
		ActivityType:  req.ActivityType,
		BatteryLevel:  req.BatteryLevel,
		Timestamp:     req.Timestamp,
		IsMoving:      req.IsMoving,
	})
	if err != nil {
		log.Error().Err(err).Str("participant_id", participantID).Msg("Failed to record position")
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, position)
}
