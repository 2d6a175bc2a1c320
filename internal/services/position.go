package services

import (
	"context"
	"time"

	"adventure-backend/internal/models"
	"adventure-backend/internal/pagination"

	"github.com/google/uuid"
)

// PositionService handles GPS sample ingestion and retrieval
type PositionService struct {
	positions  PositionStore
	adventures AdventureStore
	publisher  EventPublisher
}

// NewPositionService creates a new position service
func NewPositionService(positions PositionStore, adventures AdventureStore, publisher EventPublisher) *PositionService {
	return &PositionService{positions: positions, adventures: adventures, publisher: publisher}
}

// RecordPositionInput is one incoming GPS sample. Latitude and longitude are
// pointers so a missing field can be told apart from zero.
type RecordPositionInput struct {
	ParticipantID string
	Latitude      *float64
	Longitude     *float64
	Speed         float64
	Heading       float64
	Altitude      float64
	Odometer      float64
	ActivityType  string
	BatteryLevel  float64
	Timestamp     string
	IsMoving      bool
}

// Record validates and appends one sample, publishing a recorded event per
// sample. No deduplication, ordering or batching.
func (s *PositionService) Record(ctx context.Context, input RecordPositionInput) (*models.Position, error) {
	verr := &models.ValidationError{}
	if input.ParticipantID == "" {
		verr.Add("participant_id", "is required")
	}
	if input.Latitude == nil {
		verr.Add("latitude", "is required")
	} else if *input.Latitude < -90 || *input.Latitude > 90 {
		verr.Add("latitude", "must be between -90 and 90")
	}
	if input.Longitude == nil {
		verr.Add("longitude", "is required")
	} else if *input.Longitude < -180 || *input.Longitude > 180 {
		verr.Add("longitude", "must be between -180 and 180")
	}
	if len(verr.Fields) > 0 {
		return nil, verr
	}

	position := &models.Position{
		ID:            uuid.New().String(),
		ParticipantID: input.ParticipantID,
		Latitude:      *input.Latitude,
		Longitude:     *input.Longitude,
		Speed:         input.Speed,
		Heading:       input.Heading,
		Altitude:      input.Altitude,
		Odometer:      input.Odometer,
		ActivityType:  input.ActivityType,
		BatteryLevel:  input.BatteryLevel,
		Timestamp:     input.Timestamp,
		IsMoving:      input.IsMoving,
		CreatedAt:     time.Now(),
	}

	if err := s.positions.Create(ctx, position); err != nil {
		return nil, err
	}
	event := models.PositionRecordedEvent{
		PositionID:    position.ID,
		ParticipantID: position.ParticipantID,
		Latitude:      position.Latitude,
		Longitude:     position.Longitude,
	}
	if err := s.publisher.Publish(ctx, event); err != nil {
		return nil, err
	}
	return position, nil
}

// ListForAdventure returns a page of the adventure participants' positions
// whose device timestamps fall inside the adventure's start/end window.
// Timestamps are stored as free-text strings and parsed here; unparseable
// samples are skipped.
func (s *PositionService) ListForAdventure(ctx context.Context, adventureID string, pageNumber, pageSize int) (*pagination.Page[*models.Position], error) {
	if pageNumber < 1 || pageSize < 1 {
		return nil, models.NewValidationError("page", "page number and page size must be at least 1")
	}

	adventure, err := s.adventures.GetByID(ctx, adventureID)
	if err != nil {
		return nil, err
	}

	positions, err := s.positions.ListByAdventure(ctx, adventureID)
	if err != nil {
		return nil, err
	}

	filtered := make([]*models.Position, 0, len(positions))
	for _, position := range positions {
		ts, ok := position.ParsedTimestamp()
		if !ok {
			continue
		}
		if ts.Before(adventure.StartDate) {
			continue
		}
		if !adventure.EndDate.IsZero() && ts.After(adventure.EndDate) {
			continue
		}
		filtered = append(filtered, position)
	}

	return pagination.ToPagedData(filtered, pageNumber, pageSize)
}

// ListForParticipant returns a page of one participant's position history
func (s *PositionService) ListForParticipant(ctx context.Context, participantID string, pageNumber, pageSize int) (*pagination.Page[*models.Position], error) {
	if pageNumber < 1 || pageSize < 1 {
		return nil, models.NewValidationError("page", "page number and page size must be at least 1")
	}
	positions, total, err := s.positions.ListByParticipant(ctx, participantID, pageSize, pagination.Offset(pageNumber, pageSize))
	if err != nil {
		return nil, err
	}
	return pagination.New(positions, total, pageNumber, pageSize)
}
