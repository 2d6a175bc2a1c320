package repository

import (
	"context"
	"errors"
	"fmt"

	"adventure-backend/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// InvitationRepository handles database operations for adventure invitations
type InvitationRepository struct {
	db *pgxpool.Pool
}

// NewInvitationRepository creates a new invitation repository
func NewInvitationRepository(db *pgxpool.Pool) *InvitationRepository {
	return &InvitationRepository{db: db}
}

const invitationColumns = `id, adventure_id, email, access_level_id, status_id, created_at`

func scanInvitation(row pgx.Row) (*models.AdventureInvitation, error) {
	var inv models.AdventureInvitation
	err := row.Scan(&inv.ID, &inv.AdventureID, &inv.Email, &inv.AccessLevelID, &inv.StatusID, &inv.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("invitation: %w", models.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to scan invitation: %w", err)
	}
	return &inv, nil
}

// Create creates a new invitation
func (r *InvitationRepository) Create(ctx context.Context, inv *models.AdventureInvitation) error {
	query := `
		INSERT INTO adventure_invitations (id, adventure_id, email, access_level_id, status_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := r.db.Exec(ctx, query, inv.ID, inv.AdventureID, inv.Email, inv.AccessLevelID, inv.StatusID, inv.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create invitation: %w", err)
	}
	return nil
}

// Update persists status and access level changes
func (r *InvitationRepository) Update(ctx context.Context, inv *models.AdventureInvitation) error {
	query := `
		UPDATE adventure_invitations
		SET access_level_id = $1, status_id = $2
		WHERE id = $3
	`
	result, err := r.db.Exec(ctx, query, inv.AccessLevelID, inv.StatusID, inv.ID)
	if err != nil {
		return fmt.Errorf("failed to update invitation: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("invitation: %w", models.ErrNotFound)
	}
	return nil
}

// GetByID retrieves an invitation by ID
func (r *InvitationRepository) GetByID(ctx context.Context, id string) (*models.AdventureInvitation, error) {
	query := `SELECT ` + invitationColumns + ` FROM adventure_invitations WHERE id = $1`
	return scanInvitation(r.db.QueryRow(ctx, query, id))
}

// GetByAdventureAndEmail retrieves the invitation for one (adventure, email) pair
func (r *InvitationRepository) GetByAdventureAndEmail(ctx context.Context, adventureID, email string) (*models.AdventureInvitation, error) {
	query := `
		SELECT ` + invitationColumns + `
		FROM adventure_invitations
		WHERE adventure_id = $1 AND email = $2
	`
	return scanInvitation(r.db.QueryRow(ctx, query, adventureID, email))
}

// ListByAdventure lists all invitations of an adventure
func (r *InvitationRepository) ListByAdventure(ctx context.Context, adventureID string) ([]*models.AdventureInvitation, error) {
	query := `
		SELECT ` + invitationColumns + `
		FROM adventure_invitations
		WHERE adventure_id = $1
		ORDER BY created_at
	`
	rows, err := r.db.Query(ctx, query, adventureID)
	if err != nil {
		return nil, fmt.Errorf("failed to list invitations: %w", err)
	}
	defer rows.Close()

	var invitations []*models.AdventureInvitation
	for rows.Next() {
		inv, err := scanInvitation(rows)
		if err != nil {
			return nil, err
		}
		invitations = append(invitations, inv)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating invitations: %w", err)
	}
	return invitations, nil
}
