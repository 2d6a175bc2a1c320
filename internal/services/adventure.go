package services

import (
	"context"
	"fmt"
	"time"

	"adventure-backend/internal/models"
	"adventure-backend/internal/pagination"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// AdventureService handles adventure lifecycle business logic
type AdventureService struct {
	adventures AdventureStore
	publisher  EventPublisher
}

// NewAdventureService creates a new adventure service
func NewAdventureService(adventures AdventureStore, publisher EventPublisher) *AdventureService {
	return &AdventureService{adventures: adventures, publisher: publisher}
}

// CreateAdventureInput carries the fields of a new adventure
type CreateAdventureInput struct {
	Name                  string
	StartDate             time.Time
	EndDate               time.Time
	TypeID                int
	MeetupLocationID      *string
	DestinationLocationID *string
}

// Create creates an adventure in Created status with the creator as its one
// Administrator participant
func (s *AdventureService) Create(ctx context.Context, creatorID string, input CreateAdventureInput) (*models.Adventure, error) {
	verr := &models.ValidationError{}
	if input.Name == "" {
		verr.Add("name", "is required")
	}
	adventureType, err := models.ParseAdventureType(input.TypeID)
	if err != nil {
		verr.Add("type_id", err.Error())
	}
	if !input.EndDate.IsZero() && input.EndDate.Before(input.StartDate) {
		verr.Add("end_date", "must not be before start date")
	}
	if len(verr.Fields) > 0 {
		return nil, verr
	}

	adventure := &models.Adventure{
		ID:                    uuid.New().String(),
		Name:                  input.Name,
		StartDate:             input.StartDate,
		EndDate:               input.EndDate,
		TypeID:                adventureType,
		StatusID:              models.AdventureStatusCreated,
		MeetupLocationID:      input.MeetupLocationID,
		DestinationLocationID: input.DestinationLocationID,
		CreatedBy:             creatorID,
		CreatedAt:             time.Now(),
	}
	admin := &models.ParticipantAdventure{
		AdventureID:   adventure.ID,
		ParticipantID: creatorID,
		AccessLevelID: models.AccessLevelAdministrator,
		CreatedAt:     adventure.CreatedAt,
	}

	if err := s.adventures.Create(ctx, adventure, admin); err != nil {
		return nil, err
	}

	log.Info().Str("adventure_id", adventure.ID).Str("created_by", creatorID).Msg("Adventure created")
	return adventure, nil
}

// Get retrieves an adventure by id
func (s *AdventureService) Get(ctx context.Context, id string) (*models.Adventure, error) {
	return s.adventures.GetByID(ctx, id)
}

// ListForParticipant returns a page of the participant's adventures
func (s *AdventureService) ListForParticipant(ctx context.Context, participantID string, pageNumber, pageSize int) (*pagination.Page[*models.Adventure], error) {
	if pageNumber < 1 || pageSize < 1 {
		return nil, models.NewValidationError("page", "page number and page size must be at least 1")
	}
	adventures, total, err := s.adventures.ListByParticipant(ctx, participantID, pageSize, pagination.Offset(pageNumber, pageSize))
	if err != nil {
		return nil, err
	}
	return pagination.New(adventures, total, pageNumber, pageSize)
}

// UpdateAdventureInput carries updatable adventure fields
type UpdateAdventureInput struct {
	Name                  string
	StartDate             time.Time
	EndDate               time.Time
	TypeID                int
	MeetupLocationID      *string
	DestinationLocationID *string
}

// Update modifies an adventure. Only the creator may update.
func (s *AdventureService) Update(ctx context.Context, id, callerID string, input UpdateAdventureInput) (*models.Adventure, error) {
	adventure, err := s.adventures.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if adventure.CreatedBy != callerID {
		return nil, fmt.Errorf("only the creator may update an adventure: %w", models.ErrForbidden)
	}

	adventureType, err := models.ParseAdventureType(input.TypeID)
	if err != nil {
		return nil, models.NewValidationError("type_id", err.Error())
	}
	if input.Name == "" {
		return nil, models.NewValidationError("name", "is required")
	}

	adventure.Name = input.Name
	adventure.StartDate = input.StartDate
	adventure.EndDate = input.EndDate
	adventure.TypeID = adventureType
	adventure.MeetupLocationID = input.MeetupLocationID
	adventure.DestinationLocationID = input.DestinationLocationID

	if err := s.adventures.Update(ctx, adventure); err != nil {
		return nil, err
	}
	return adventure, nil
}

// Delete removes an adventure. Only the creator may delete.
func (s *AdventureService) Delete(ctx context.Context, id, callerID string) error {
	adventure, err := s.adventures.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if adventure.CreatedBy != callerID {
		return fmt.Errorf("only the creator may delete an adventure: %w", models.ErrForbidden)
	}
	return s.adventures.Delete(ctx, id)
}

// Start moves an adventure into InProgress. A participant may not start a
// second adventure while one of theirs is already running; the check runs at
// validation time, so a race between check and save is possible.
func (s *AdventureService) Start(ctx context.Context, id, callerID string) (*models.Adventure, error) {
	adventure, err := s.adventures.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if adventure.CreatedBy != callerID {
		return nil, fmt.Errorf("only the creator may start an adventure: %w", models.ErrForbidden)
	}

	running, err := s.adventures.HasInProgress(ctx, callerID, id)
	if err != nil {
		return nil, err
	}
	if running {
		return nil, fmt.Errorf("another adventure is already in progress: %w", models.ErrConflict)
	}

	adventure.UpdateStatus(models.AdventureStatusInProgress)
	if err := s.adventures.Update(ctx, adventure); err != nil {
		return nil, err
	}
	if err := s.publisher.Publish(ctx, adventure.DrainEvents()...); err != nil {
		return nil, err
	}

	log.Info().Str("adventure_id", adventure.ID).Msg("Adventure started")
	return adventure, nil
}

// Complete moves an adventure into Completed. Only the creator may complete.
func (s *AdventureService) Complete(ctx context.Context, id, callerID string) (*models.Adventure, error) {
	adventure, err := s.adventures.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if adventure.CreatedBy != callerID {
		return nil, fmt.Errorf("only the creator may complete an adventure: %w", models.ErrForbidden)
	}

	adventure.UpdateStatus(models.AdventureStatusCompleted)
	if err := s.adventures.Update(ctx, adventure); err != nil {
		return nil, err
	}
	if err := s.publisher.Publish(ctx, adventure.DrainEvents()...); err != nil {
		return nil, err
	}
	return adventure, nil
}

// Participants lists the join rows of an adventure
func (s *AdventureService) Participants(ctx context.Context, adventureID string) ([]*models.ParticipantAdventure, error) {
	if _, err := s.adventures.GetByID(ctx, adventureID); err != nil {
		return nil, err
	}
	return s.adventures.Participants(ctx, adventureID)
}

// AddDistance accumulates distance onto a participant's join row
func (s *AdventureService) AddDistance(ctx context.Context, adventureID, participantID string, delta float64) error {
	if delta < 0 {
		return models.NewValidationError("distance", "must not be negative")
	}
	return s.adventures.AddDistance(ctx, adventureID, participantID, delta)
}
