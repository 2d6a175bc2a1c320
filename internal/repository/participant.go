package repository

import (
	"context"
	"errors"
	"fmt"

	"adventure-backend/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ParticipantRepository handles database operations for participants
type ParticipantRepository struct {
	db *pgxpool.Pool
}

// NewParticipantRepository creates a new participant repository
func NewParticipantRepository(db *pgxpool.Pool) *ParticipantRepository {
	return &ParticipantRepository{db: db}
}

const participantColumns = `id, email, display_name, photo_url, follow_me, trail_color,
	push_token, refresh_token, refresh_token_expiry, created_at`

func scanParticipant(row pgx.Row) (*models.Participant, error) {
	var p models.Participant
	err := row.Scan(
		&p.ID, &p.Email, &p.DisplayName, &p.PhotoURL, &p.FollowMe, &p.TrailColor,
		&p.PushToken, &p.RefreshToken, &p.RefreshTokenExpiry, &p.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("participant: %w", models.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to scan participant: %w", err)
	}
	return &p, nil
}

// Create creates a new participant
func (r *ParticipantRepository) Create(ctx context.Context, p *models.Participant) error {
	query := `
		INSERT INTO participants (id, email, display_name, photo_url, follow_me, trail_color,
			push_token, refresh_token, refresh_token_expiry, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`
	_, err := r.db.Exec(ctx, query,
		p.ID, p.Email, p.DisplayName, p.PhotoURL, p.FollowMe, p.TrailColor,
		p.PushToken, p.RefreshToken, p.RefreshTokenExpiry, p.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create participant: %w", err)
	}
	return nil
}

// GetByID retrieves a participant by ID
func (r *ParticipantRepository) GetByID(ctx context.Context, id string) (*models.Participant, error) {
	query := `SELECT ` + participantColumns + ` FROM participants WHERE id = $1`
	return scanParticipant(r.db.QueryRow(ctx, query, id))
}

// GetByEmail retrieves a participant by email
func (r *ParticipantRepository) GetByEmail(ctx context.Context, email string) (*models.Participant, error) {
	query := `SELECT ` + participantColumns + ` FROM participants WHERE email = $1`
	return scanParticipant(r.db.QueryRow(ctx, query, email))
}

// GetByRefreshToken retrieves a participant by its stored refresh token
func (r *ParticipantRepository) GetByRefreshToken(ctx context.Context, token string) (*models.Participant, error) {
	query := `SELECT ` + participantColumns + ` FROM participants WHERE refresh_token = $1`
	return scanParticipant(r.db.QueryRow(ctx, query, token))
}

// Update persists profile, push token and refresh token changes
func (r *ParticipantRepository) Update(ctx context.Context, p *models.Participant) error {
	query := `
		UPDATE participants
		SET display_name = $1, photo_url = $2, follow_me = $3, trail_color = $4,
			push_token = $5, refresh_token = $6, refresh_token_expiry = $7
		WHERE id = $8
	`
	result, err := r.db.Exec(ctx, query,
		p.DisplayName, p.PhotoURL, p.FollowMe, p.TrailColor,
		p.PushToken, p.RefreshToken, p.RefreshTokenExpiry, p.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update participant: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("participant: %w", models.ErrNotFound)
	}
	return nil
}

// Delete removes a participant (explicit account deletion only)
func (r *ParticipantRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.Exec(ctx, `DELETE FROM participants WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete participant: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("participant: %w", models.ErrNotFound)
	}
	return nil
}
