package repository

import (
	"context"
	"errors"
	"fmt"

	"adventure-backend/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// AdventureRepository handles database operations for adventures and their
// participant join rows
type AdventureRepository struct {
	db *pgxpool.Pool
}

// NewAdventureRepository creates a new adventure repository
func NewAdventureRepository(db *pgxpool.Pool) *AdventureRepository {
	return &AdventureRepository{db: db}
}

const adventureColumns = `id, name, start_date, end_date, type_id, status_id,
	meetup_location_id, destination_location_id, created_by, created_at`

func scanAdventure(row pgx.Row) (*models.Adventure, error) {
	var a models.Adventure
	err := row.Scan(
		&a.ID, &a.Name, &a.StartDate, &a.EndDate, &a.TypeID, &a.StatusID,
		&a.MeetupLocationID, &a.DestinationLocationID, &a.CreatedBy, &a.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("adventure: %w", models.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to scan adventure: %w", err)
	}
	return &a, nil
}

// Create inserts the adventure together with its administrator join row.
func (r *AdventureRepository) Create(ctx context.Context, a *models.Adventure, admin *models.ParticipantAdventure) error {
	query := `
		INSERT INTO adventures (id, name, start_date, end_date, type_id, status_id,
			meetup_location_id, destination_location_id, created_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`
	_, err := r.db.Exec(ctx, query,
		a.ID, a.Name, a.StartDate, a.EndDate, a.TypeID, a.StatusID,
		a.MeetupLocationID, a.DestinationLocationID, a.CreatedBy, a.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create adventure: %w", err)
	}
	if err := r.AddParticipant(ctx, admin); err != nil {
		return err
	}
	return nil
}

// GetByID retrieves an adventure by ID
func (r *AdventureRepository) GetByID(ctx context.Context, id string) (*models.Adventure, error) {
	query := `SELECT ` + adventureColumns + ` FROM adventures WHERE id = $1`
	return scanAdventure(r.db.QueryRow(ctx, query, id))
}

// Update persists adventure changes
func (r *AdventureRepository) Update(ctx context.Context, a *models.Adventure) error {
	query := `
		UPDATE adventures
		SET name = $1, start_date = $2, end_date = $3, type_id = $4, status_id = $5,
			meetup_location_id = $6, destination_location_id = $7
		WHERE id = $8
	`
	result, err := r.db.Exec(ctx, query,
		a.Name, a.StartDate, a.EndDate, a.TypeID, a.StatusID,
		a.MeetupLocationID, a.DestinationLocationID, a.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update adventure: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("adventure: %w", models.ErrNotFound)
	}
	return nil
}

// Delete deletes an adventure by ID
func (r *AdventureRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.Exec(ctx, `DELETE FROM adventures WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete adventure: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("adventure: %w", models.ErrNotFound)
	}
	return nil
}

// ListByParticipant retrieves a page of adventures the participant belongs to
func (r *AdventureRepository) ListByParticipant(ctx context.Context, participantID string, limit, offset int) ([]*models.Adventure, int, error) {
	countQuery := `
		SELECT COUNT(*)
		FROM adventures a
		JOIN participant_adventures pa ON pa.adventure_id = a.id
		WHERE pa.participant_id = $1
	`
	var total int
	if err := r.db.QueryRow(ctx, countQuery, participantID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count adventures: %w", err)
	}

	query := `
		SELECT a.id, a.name, a.start_date, a.end_date, a.type_id, a.status_id,
			a.meetup_location_id, a.destination_location_id, a.created_by, a.created_at
		FROM adventures a
		JOIN participant_adventures pa ON pa.adventure_id = a.id
		WHERE pa.participant_id = $1
		ORDER BY a.start_date DESC
		LIMIT $2 OFFSET $3
	`
	rows, err := r.db.Query(ctx, query, participantID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list adventures: %w", err)
	}
	defer rows.Close()

	var adventures []*models.Adventure
	for rows.Next() {
		a, err := scanAdventure(rows)
		if err != nil {
			return nil, 0, err
		}
		adventures = append(adventures, a)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating adventures: %w", err)
	}
	return adventures, total, nil
}

// HasInProgress reports whether the participant has another InProgress
// adventure of their own, excluding the given adventure id
func (r *AdventureRepository) HasInProgress(ctx context.Context, createdBy, excludeID string) (bool, error) {
	query := `
		SELECT EXISTS(
			SELECT 1 FROM adventures
			WHERE created_by = $1 AND status_id = $2 AND id <> $3
		)
	`
	var exists bool
	err := r.db.QueryRow(ctx, query, createdBy, models.AdventureStatusInProgress, excludeID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check in-progress adventures: %w", err)
	}
	return exists, nil
}

// AddParticipant inserts a participant join row
func (r *AdventureRepository) AddParticipant(ctx context.Context, pa *models.ParticipantAdventure) error {
	query := `
		INSERT INTO participant_adventures (adventure_id, participant_id, access_level_id, distance, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err := r.db.Exec(ctx, query, pa.AdventureID, pa.ParticipantID, pa.AccessLevelID, pa.Distance, pa.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to add participant to adventure: %w", err)
	}
	return nil
}

// GetParticipant retrieves one participant join row
func (r *AdventureRepository) GetParticipant(ctx context.Context, adventureID, participantID string) (*models.ParticipantAdventure, error) {
	query := `
		SELECT adventure_id, participant_id, access_level_id, distance, created_at
		FROM participant_adventures
		WHERE adventure_id = $1 AND participant_id = $2
	`
	var pa models.ParticipantAdventure
	err := r.db.QueryRow(ctx, query, adventureID, participantID).Scan(
		&pa.AdventureID, &pa.ParticipantID, &pa.AccessLevelID, &pa.Distance, &pa.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("adventure participant: %w", models.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get adventure participant: %w", err)
	}
	return &pa, nil
}

// Participants lists all join rows of an adventure
func (r *AdventureRepository) Participants(ctx context.Context, adventureID string) ([]*models.ParticipantAdventure, error) {
	query := `
		SELECT adventure_id, participant_id, access_level_id, distance, created_at
		FROM participant_adventures
		WHERE adventure_id = $1
		ORDER BY created_at
	`
	rows, err := r.db.Query(ctx, query, adventureID)
	if err != nil {
		return nil, fmt.Errorf("failed to list adventure participants: %w", err)
	}
	defer rows.Close()

	var participants []*models.ParticipantAdventure
	for rows.Next() {
		var pa models.ParticipantAdventure
		if err := rows.Scan(&pa.AdventureID, &pa.ParticipantID, &pa.AccessLevelID, &pa.Distance, &pa.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan adventure participant: %w", err)
		}
		participants = append(participants, &pa)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating adventure participants: %w", err)
	}
	return participants, nil
}

// AddDistance accumulates distance onto a participant join row
func (r *AdventureRepository) AddDistance(ctx context.Context, adventureID, participantID string, delta float64) error {
	query := `
		UPDATE participant_adventures
		SET distance = distance + $1
		WHERE adventure_id = $2 AND participant_id = $3
	`
	result, err := r.db.Exec(ctx, query, delta, adventureID, participantID)
	if err != nil {
		return fmt.Errorf("failed to add distance: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("adventure participant: %w", models.ErrNotFound)
	}
	return nil
}
