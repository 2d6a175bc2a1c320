package models

// DomainEvent is raised by an aggregate on a state transition and published
// after the aggregate has been saved.
type DomainEvent interface {
	EventName() string
}

// EventRecorder queues domain events on an entity until they are drained at
// save time. The zero value is ready to use.
type EventRecorder struct {
	pending []DomainEvent
}

// Record appends an event to the pending queue.
func (r *EventRecorder) Record(e DomainEvent) {
	r.pending = append(r.pending, e)
}

// DrainEvents returns the queued events and clears the queue.
func (r *EventRecorder) DrainEvents() []DomainEvent {
	events := r.pending
	r.pending = nil
	return events
}

// AdventureStatusInProgressEvent is recorded when an adventure transitions
// into InProgress from a different status.
type AdventureStatusInProgressEvent struct {
	AdventureID   string
	AdventureName string
	CreatedBy     string
}

func (AdventureStatusInProgressEvent) EventName() string { return "adventure.started" }

// InvitationPendingEvent is recorded when an adventure invitation becomes
// Pending, either on creation or when a rejected invitation is re-sent.
type InvitationPendingEvent struct {
	InvitationID string
	AdventureID  string
	Email        string
}

func (InvitationPendingEvent) EventName() string { return "invitation.pending" }

// FriendRequestPendingEvent is recorded when a friend request becomes Pending.
type FriendRequestPendingEvent struct {
	RequestID     string
	ParticipantID string
	FriendID      string
}

func (FriendRequestPendingEvent) EventName() string { return "friend_request.pending" }

// FriendRequestAcceptedEvent is recorded when a friend request is accepted.
type FriendRequestAcceptedEvent struct {
	RequestID     string
	ParticipantID string
	FriendID      string
}

func (FriendRequestAcceptedEvent) EventName() string { return "friend_request.accepted" }

// PositionRecordedEvent is published once per ingested GPS sample.
type PositionRecordedEvent struct {
	PositionID    string
	ParticipantID string
	Latitude      float64
	Longitude     float64
}

func (PositionRecordedEvent) EventName() string { return "position.recorded" }
