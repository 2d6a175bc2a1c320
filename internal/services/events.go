package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"adventure-backend/internal/models"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// Broadcaster pushes a message to every connected websocket client.
type Broadcaster interface {
	Broadcast(message WSMessage)
}

// Publisher fans domain events out synchronously: a persisted notification
// row, one hub broadcast, and a best-effort device push to the affected
// participant. Failing to persist the notification fails the whole operation;
// broadcast and device push failures are only logged.
type Publisher struct {
	notifications NotificationStore
	participants  ParticipantStore
	hub           Broadcaster
	push          PushNotifier
}

// NewPublisher creates a new event publisher
func NewPublisher(notifications NotificationStore, participants ParticipantStore, hub Broadcaster, push PushNotifier) *Publisher {
	return &Publisher{
		notifications: notifications,
		participants:  participants,
		hub:           hub,
		push:          push,
	}
}

// Publish dispatches each event in order
func (p *Publisher) Publish(ctx context.Context, events ...models.DomainEvent) error {
	for _, event := range events {
		if err := p.publish(ctx, event); err != nil {
			return err
		}
	}
	return nil
}

func (p *Publisher) publish(ctx context.Context, event models.DomainEvent) error {
	target, message, persist := p.describe(ctx, event)

	if persist {
		notification := &models.Notification{
			ID:            uuid.New().String(),
			ParticipantID: target,
			Kind:          event.EventName(),
			Message:       message,
			CreatedAt:     time.Now(),
		}
		if err := p.notifications.Create(ctx, notification); err != nil {
			return fmt.Errorf("failed to publish %s: %w", event.EventName(), err)
		}
	}

	p.hub.Broadcast(WSMessage{Type: event.EventName(), Data: event})

	if target != "" {
		p.pushToParticipant(ctx, target, message)
	}
	return nil
}

// describe maps an event to its notification target ("" = broadcast), the
// human-readable message, and whether a notification row is written. Position
// samples are streamed over the hub only; persisting a row per GPS sample
// would swamp the table.
func (p *Publisher) describe(ctx context.Context, event models.DomainEvent) (target, message string, persist bool) {
	switch e := event.(type) {
	case models.AdventureStatusInProgressEvent:
		return "", fmt.Sprintf("Adventure %s is now in progress", e.AdventureName), true
	case models.InvitationPendingEvent:
		if participant, err := p.participants.GetByEmail(ctx, e.Email); err == nil {
			target = participant.ID
		} else if !errors.Is(err, models.ErrNotFound) {
			log.Error().Err(err).Str("email", e.Email).Msg("Failed to resolve invitation target")
		}
		return target, "You have been invited to an adventure", true
	case models.FriendRequestPendingEvent:
		return e.FriendID, "You have a new friend request", true
	case models.FriendRequestAcceptedEvent:
		return e.ParticipantID, "Your friend request was accepted", true
	case models.PositionRecordedEvent:
		return "", "", false
	default:
		return "", event.EventName(), true
	}
}

func (p *Publisher) pushToParticipant(ctx context.Context, participantID, message string) {
	participant, err := p.participants.GetByID(ctx, participantID)
	if err != nil {
		log.Error().Err(err).Str("participant_id", participantID).Msg("Failed to load participant for push")
		return
	}
	if participant.PushToken == nil || *participant.PushToken == "" {
		return
	}
	if err := p.push.Push(ctx, *participant.PushToken, message); err != nil {
		log.Error().Err(err).Str("participant_id", participantID).Msg("Failed to push notification")
	}
}
