package repository

import (
	"context"
	"errors"
	"fmt"

	"adventure-backend/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// IdentityRepository is the identity store: credential records, roles and
// claims keyed by user id or email
type IdentityRepository struct {
	db *pgxpool.Pool
}

// NewIdentityRepository creates a new identity repository
func NewIdentityRepository(db *pgxpool.Pool) *IdentityRepository {
	return &IdentityRepository{db: db}
}

const identityColumns = `id, email, password_hash, email_confirmed, confirmation_token, reset_token, created_at`

func scanIdentityUser(row pgx.Row) (*models.IdentityUser, error) {
	var u models.IdentityUser
	err := row.Scan(&u.ID, &u.Email, &u.PasswordHash, &u.EmailConfirmed, &u.ConfirmationToken, &u.ResetToken, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("identity user: %w", models.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to scan identity user: %w", err)
	}
	return &u, nil
}

// Create creates a new identity user
func (r *IdentityRepository) Create(ctx context.Context, u *models.IdentityUser) error {
	query := `
		INSERT INTO identity_users (id, email, password_hash, email_confirmed, confirmation_token, reset_token, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := r.db.Exec(ctx, query, u.ID, u.Email, u.PasswordHash, u.EmailConfirmed, u.ConfirmationToken, u.ResetToken, u.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create identity user: %w", err)
	}
	return nil
}

// GetByID retrieves an identity user by ID
func (r *IdentityRepository) GetByID(ctx context.Context, id string) (*models.IdentityUser, error) {
	query := `SELECT ` + identityColumns + ` FROM identity_users WHERE id = $1`
	return scanIdentityUser(r.db.QueryRow(ctx, query, id))
}

// GetByEmail retrieves an identity user by email
func (r *IdentityRepository) GetByEmail(ctx context.Context, email string) (*models.IdentityUser, error) {
	query := `SELECT ` + identityColumns + ` FROM identity_users WHERE email = $1`
	return scanIdentityUser(r.db.QueryRow(ctx, query, email))
}

// Update persists credential and confirmation changes
func (r *IdentityRepository) Update(ctx context.Context, u *models.IdentityUser) error {
	query := `
		UPDATE identity_users
		SET email = $1, password_hash = $2, email_confirmed = $3, confirmation_token = $4, reset_token = $5
		WHERE id = $6
	`
	result, err := r.db.Exec(ctx, query, u.Email, u.PasswordHash, u.EmailConfirmed, u.ConfirmationToken, u.ResetToken, u.ID)
	if err != nil {
		return fmt.Errorf("failed to update identity user: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("identity user: %w", models.ErrNotFound)
	}
	return nil
}

// AddRole assigns a role to an identity user
func (r *IdentityRepository) AddRole(ctx context.Context, userID, role string) error {
	query := `
		INSERT INTO identity_user_roles (user_id, role)
		VALUES ($1, $2)
		ON CONFLICT DO NOTHING
	`
	_, err := r.db.Exec(ctx, query, userID, role)
	if err != nil {
		return fmt.Errorf("failed to add role: %w", err)
	}
	return nil
}

// Roles lists the roles of an identity user
func (r *IdentityRepository) Roles(ctx context.Context, userID string) ([]string, error) {
	rows, err := r.db.Query(ctx, `SELECT role FROM identity_user_roles WHERE user_id = $1`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list roles: %w", err)
	}
	defer rows.Close()

	var roles []string
	for rows.Next() {
		var role string
		if err := rows.Scan(&role); err != nil {
			return nil, fmt.Errorf("failed to scan role: %w", err)
		}
		roles = append(roles, role)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating roles: %w", err)
	}
	return roles, nil
}

// AddClaim attaches a claim to an identity user
func (r *IdentityRepository) AddClaim(ctx context.Context, userID string, claim models.IdentityClaim) error {
	query := `
		INSERT INTO identity_user_claims (user_id, claim_type, claim_value)
		VALUES ($1, $2, $3)
	`
	_, err := r.db.Exec(ctx, query, userID, claim.Type, claim.Value)
	if err != nil {
		return fmt.Errorf("failed to add claim: %w", err)
	}
	return nil
}

// Claims lists the claims of an identity user
func (r *IdentityRepository) Claims(ctx context.Context, userID string) ([]models.IdentityClaim, error) {
	rows, err := r.db.Query(ctx, `SELECT claim_type, claim_value FROM identity_user_claims WHERE user_id = $1`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list claims: %w", err)
	}
	defer rows.Close()

	var claims []models.IdentityClaim
	for rows.Next() {
		var c models.IdentityClaim
		if err := rows.Scan(&c.Type, &c.Value); err != nil {
			return nil, fmt.Errorf("failed to scan claim: %w", err)
		}
		claims = append(claims, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating claims: %w", err)
	}
	return claims, nil
}
