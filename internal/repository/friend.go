package repository

import (
	"context"
	"errors"
	"fmt"

	"adventure-backend/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// FriendRepository handles database operations for friend requests
type FriendRepository struct {
	db *pgxpool.Pool
}

// NewFriendRepository creates a new friend repository
func NewFriendRepository(db *pgxpool.Pool) *FriendRepository {
	return &FriendRepository{db: db}
}

const friendRequestColumns = `id, participant_id, friend_id, status_id, created_at`

func scanFriendRequest(row pgx.Row) (*models.FriendRequest, error) {
	var fr models.FriendRequest
	err := row.Scan(&fr.ID, &fr.ParticipantID, &fr.FriendID, &fr.StatusID, &fr.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("friend request: %w", models.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to scan friend request: %w", err)
	}
	return &fr, nil
}

// Create creates a new friend request
func (r *FriendRepository) Create(ctx context.Context, fr *models.FriendRequest) error {
	query := `
		INSERT INTO friend_requests (id, participant_id, friend_id, status_id, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err := r.db.Exec(ctx, query, fr.ID, fr.ParticipantID, fr.FriendID, fr.StatusID, fr.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create friend request: %w", err)
	}
	return nil
}

// Update persists status changes
func (r *FriendRepository) Update(ctx context.Context, fr *models.FriendRequest) error {
	query := `UPDATE friend_requests SET status_id = $1 WHERE id = $2`
	result, err := r.db.Exec(ctx, query, fr.StatusID, fr.ID)
	if err != nil {
		return fmt.Errorf("failed to update friend request: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("friend request: %w", models.ErrNotFound)
	}
	return nil
}

// GetByID retrieves a friend request by ID
func (r *FriendRepository) GetByID(ctx context.Context, id string) (*models.FriendRequest, error) {
	query := `SELECT ` + friendRequestColumns + ` FROM friend_requests WHERE id = $1`
	return scanFriendRequest(r.db.QueryRow(ctx, query, id))
}

// GetBetween retrieves the request between two participants in either direction
func (r *FriendRepository) GetBetween(ctx context.Context, a, b string) (*models.FriendRequest, error) {
	query := `
		SELECT ` + friendRequestColumns + `
		FROM friend_requests
		WHERE (participant_id = $1 AND friend_id = $2)
		   OR (participant_id = $2 AND friend_id = $1)
		LIMIT 1
	`
	return scanFriendRequest(r.db.QueryRow(ctx, query, a, b))
}

// ListFriends retrieves a page of participants with an accepted request in
// either direction
func (r *FriendRepository) ListFriends(ctx context.Context, participantID string, limit, offset int) ([]*models.Participant, int, error) {
	countQuery := `
		SELECT COUNT(*)
		FROM friend_requests
		WHERE (participant_id = $1 OR friend_id = $1) AND status_id = $2
	`
	var total int
	if err := r.db.QueryRow(ctx, countQuery, participantID, models.InvitationStatusAccepted).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count friends: %w", err)
	}

	query := `
		SELECT p.id, p.email, p.display_name, p.photo_url, p.follow_me, p.trail_color,
			p.push_token, p.refresh_token, p.refresh_token_expiry, p.created_at
		FROM participants p
		JOIN friend_requests fr
		  ON (fr.participant_id = $1 AND fr.friend_id = p.id)
		  OR (fr.friend_id = $1 AND fr.participant_id = p.id)
		WHERE fr.status_id = $2
		ORDER BY p.display_name
		LIMIT $3 OFFSET $4
	`
	rows, err := r.db.Query(ctx, query, participantID, models.InvitationStatusAccepted, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list friends: %w", err)
	}
	defer rows.Close()

	var friends []*models.Participant
	for rows.Next() {
		p, err := scanParticipant(rows)
		if err != nil {
			return nil, 0, err
		}
		friends = append(friends, p)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating friends: %w", err)
	}
	return friends, total, nil
}

// ListPendingFor lists requests waiting on the given participant
func (r *FriendRepository) ListPendingFor(ctx context.Context, participantID string) ([]*models.FriendRequest, error) {
	query := `
		SELECT ` + friendRequestColumns + `
		FROM friend_requests
		WHERE friend_id = $1 AND status_id = $2
		ORDER BY created_at DESC
	`
	rows, err := r.db.Query(ctx, query, participantID, models.InvitationStatusPending)
	if err != nil {
		return nil, fmt.Errorf("failed to list pending friend requests: %w", err)
	}
	defer rows.Close()

	var requests []*models.FriendRequest
	for rows.Next() {
		fr, err := scanFriendRequest(rows)
		if err != nil {
			return nil, err
		}
		requests = append(requests, fr)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating pending friend requests: %w", err)
	}
	return requests, nil
}
