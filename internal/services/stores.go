package services

import (
	"context"

	"adventure-backend/internal/models"
)

// Store interfaces consumed by the services. The pgx repositories in
// internal/repository satisfy them; tests substitute in-memory fakes.

type ParticipantStore interface {
	Create(ctx context.Context, p *models.Participant) error
	GetByID(ctx context.Context, id string) (*models.Participant, error)
	GetByEmail(ctx context.Context, email string) (*models.Participant, error)
	GetByRefreshToken(ctx context.Context, token string) (*models.Participant, error)
	Update(ctx context.Context, p *models.Participant) error
	Delete(ctx context.Context, id string) error
}

type AdventureStore interface {
	Create(ctx context.Context, a *models.Adventure, admin *models.ParticipantAdventure) error
	GetByID(ctx context.Context, id string) (*models.Adventure, error)
	Update(ctx context.Context, a *models.Adventure) error
	Delete(ctx context.Context, id string) error
	ListByParticipant(ctx context.Context, participantID string, limit, offset int) ([]*models.Adventure, int, error)
	HasInProgress(ctx context.Context, createdBy, excludeID string) (bool, error)
	AddParticipant(ctx context.Context, pa *models.ParticipantAdventure) error
	GetParticipant(ctx context.Context, adventureID, participantID string) (*models.ParticipantAdventure, error)
	Participants(ctx context.Context, adventureID string) ([]*models.ParticipantAdventure, error)
	AddDistance(ctx context.Context, adventureID, participantID string, delta float64) error
}

type InvitationStore interface {
	Create(ctx context.Context, inv *models.AdventureInvitation) error
	Update(ctx context.Context, inv *models.AdventureInvitation) error
	GetByID(ctx context.Context, id string) (*models.AdventureInvitation, error)
	GetByAdventureAndEmail(ctx context.Context, adventureID, email string) (*models.AdventureInvitation, error)
	ListByAdventure(ctx context.Context, adventureID string) ([]*models.AdventureInvitation, error)
}

type FriendStore interface {
	Create(ctx context.Context, fr *models.FriendRequest) error
	Update(ctx context.Context, fr *models.FriendRequest) error
	GetByID(ctx context.Context, id string) (*models.FriendRequest, error)
	GetBetween(ctx context.Context, a, b string) (*models.FriendRequest, error)
	ListFriends(ctx context.Context, participantID string, limit, offset int) ([]*models.Participant, int, error)
	ListPendingFor(ctx context.Context, participantID string) ([]*models.FriendRequest, error)
}

type PositionStore interface {
	Create(ctx context.Context, p *models.Position) error
	ListByAdventure(ctx context.Context, adventureID string) ([]*models.Position, error)
	ListByParticipant(ctx context.Context, participantID string, limit, offset int) ([]*models.Position, int, error)
}

type NotificationStore interface {
	Create(ctx context.Context, n *models.Notification) error
	ListByParticipant(ctx context.Context, participantID string, limit, offset int) ([]*models.Notification, int, error)
}

type IdentityStore interface {
	Create(ctx context.Context, u *models.IdentityUser) error
	GetByID(ctx context.Context, id string) (*models.IdentityUser, error)
	GetByEmail(ctx context.Context, email string) (*models.IdentityUser, error)
	Update(ctx context.Context, u *models.IdentityUser) error
	AddRole(ctx context.Context, userID, role string) error
	Roles(ctx context.Context, userID string) ([]string, error)
	AddClaim(ctx context.Context, userID string, claim models.IdentityClaim) error
	Claims(ctx context.Context, userID string) ([]models.IdentityClaim, error)
}

// EventPublisher fans drained domain events out to notifications and push
// channels. Publish failure fails the surrounding operation.
type EventPublisher interface {
	Publish(ctx context.Context, events ...models.DomainEvent) error
}
