package repository

import (
	"context"
	"fmt"

	"adventure-backend/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PositionRepository handles database operations for GPS positions
type PositionRepository struct {
	db *pgxpool.Pool
}

// NewPositionRepository creates a new position repository
func NewPositionRepository(db *pgxpool.Pool) *PositionRepository {
	return &PositionRepository{db: db}
}

const positionColumns = `id, participant_id, latitude, longitude, speed, heading,
	altitude, odometer, activity_type, battery_level, timestamp, is_moving, created_at`

func scanPosition(row pgx.Row) (*models.Position, error) {
	var p models.Position
	err := row.Scan(
		&p.ID, &p.ParticipantID, &p.Latitude, &p.Longitude, &p.Speed, &p.Heading,
		&p.Altitude, &p.Odometer, &p.ActivityType, &p.BatteryLevel, &p.Timestamp,
		&p.IsMoving, &p.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to scan position: %w", err)
	}
	return &p, nil
}

// Create appends one position sample. No deduplication, one row per sample.
func (r *PositionRepository) Create(ctx context.Context, p *models.Position) error {
	query := `
		INSERT INTO positions (id, participant_id, latitude, longitude, speed, heading,
			altitude, odometer, activity_type, battery_level, timestamp, is_moving, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`
	_, err := r.db.Exec(ctx, query,
		p.ID, p.ParticipantID, p.Latitude, p.Longitude, p.Speed, p.Heading,
		p.Altitude, p.Odometer, p.ActivityType, p.BatteryLevel, p.Timestamp,
		p.IsMoving, p.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create position: %w", err)
	}
	return nil
}

// ListByAdventure fetches all positions of the adventure's participants. The
// start/end window is applied by the caller because timestamps are stored as
// device-reported strings.
func (r *PositionRepository) ListByAdventure(ctx context.Context, adventureID string) ([]*models.Position, error) {
	query := `
		SELECT p.id, p.participant_id, p.latitude, p.longitude, p.speed, p.heading,
			p.altitude, p.odometer, p.activity_type, p.battery_level, p.timestamp,
			p.is_moving, p.created_at
		FROM positions p
		JOIN participant_adventures pa ON pa.participant_id = p.participant_id
		WHERE pa.adventure_id = $1
		ORDER BY p.created_at
	`
	rows, err := r.db.Query(ctx, query, adventureID)
	if err != nil {
		return nil, fmt.Errorf("failed to list adventure positions: %w", err)
	}
	defer rows.Close()

	var positions []*models.Position
	for rows.Next() {
		p, err := scanPosition(rows)
		if err != nil {
			return nil, err
		}
		positions = append(positions, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating positions: %w", err)
	}
	return positions, nil
}

// ListByParticipant retrieves a page of one participant's positions
func (r *PositionRepository) ListByParticipant(ctx context.Context, participantID string, limit, offset int) ([]*models.Position, int, error) {
	countQuery := `SELECT COUNT(*) FROM positions WHERE participant_id = $1`
	var total int
	if err := r.db.QueryRow(ctx, countQuery, participantID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count positions: %w", err)
	}

	query := `
		SELECT ` + positionColumns + `
		FROM positions
		WHERE participant_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`
	rows, err := r.db.Query(ctx, query, participantID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list positions: %w", err)
	}
	defer rows.Close()

	var positions []*models.Position
	for rows.Next() {
		p, err := scanPosition(rows)
		if err != nil {
			return nil, 0, err
		}
		positions = append(positions, p)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating positions: %w", err)
	}
	return positions, total, nil
}
