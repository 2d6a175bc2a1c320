package services

import (
	"context"
	"errors"
	"fmt"

	"adventure-backend/internal/models"
	"adventure-backend/internal/pagination"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// FriendService handles the friend request workflow
type FriendService struct {
	friends      FriendStore
	participants ParticipantStore
	publisher    EventPublisher
}

// NewFriendService creates a new friend service
func NewFriendService(friends FriendStore, participants ParticipantStore, publisher EventPublisher) *FriendService {
	return &FriendService{friends: friends, participants: participants, publisher: publisher}
}

// Invite creates a pending friend request. It fails when any request already
// exists between the two participants, regardless of direction.
func (s *FriendService) Invite(ctx context.Context, requesterID, friendID string) (*models.FriendRequest, error) {
	if requesterID == friendID {
		return nil, models.NewValidationError("friend_id", "cannot invite yourself")
	}
	if _, err := s.participants.GetByID(ctx, requesterID); err != nil {
		return nil, err
	}
	if _, err := s.participants.GetByID(ctx, friendID); err != nil {
		return nil, err
	}

	existing, err := s.friends.GetBetween(ctx, requesterID, friendID)
	if err != nil && !errors.Is(err, models.ErrNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("cannot invite: a request already exists between these participants: %w", models.ErrConflict)
	}

	request := models.NewFriendRequest(uuid.New().String(), requesterID, friendID)
	request.SetStatus(models.InvitationStatusPending)

	if err := s.friends.Create(ctx, request); err != nil {
		return nil, err
	}
	if err := s.publisher.Publish(ctx, request.DrainEvents()...); err != nil {
		return nil, err
	}

	log.Info().Str("request_id", request.ID).Str("participant_id", requesterID).Str("friend_id", friendID).Msg("Friend request sent")
	return request, nil
}

// Update transitions a friend request. The caller must be a party to the
// request.
func (s *FriendService) Update(ctx context.Context, requestID string, statusID int, callerID string) (*models.FriendRequest, error) {
	status, err := models.ParseInvitationStatus(statusID)
	if err != nil {
		return nil, models.NewValidationError("status_id", err.Error())
	}

	request, err := s.friends.GetByID(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if !request.IsParty(callerID) {
		return nil, fmt.Errorf("caller is not a party to this friend request: %w", models.ErrForbidden)
	}

	request.SetStatus(status)
	if err := s.friends.Update(ctx, request); err != nil {
		return nil, err
	}
	if err := s.publisher.Publish(ctx, request.DrainEvents()...); err != nil {
		return nil, err
	}
	return request, nil
}

// Friends returns a page of accepted friends in either direction
func (s *FriendService) Friends(ctx context.Context, participantID string, pageNumber, pageSize int) (*pagination.Page[*models.Participant], error) {
	if pageNumber < 1 || pageSize < 1 {
		return nil, models.NewValidationError("page", "page number and page size must be at least 1")
	}
	friends, total, err := s.friends.ListFriends(ctx, participantID, pageSize, pagination.Offset(pageNumber, pageSize))
	if err != nil {
		return nil, err
	}
	return pagination.New(friends, total, pageNumber, pageSize)
}

// PendingFor lists requests waiting on the participant
func (s *FriendService) PendingFor(ctx context.Context, participantID string) ([]*models.FriendRequest, error) {
	return s.friends.ListPendingFor(ctx, participantID)
}
