package models

import "time"

// Notification is the persisted projection of a published domain event. An
// empty ParticipantID marks a broadcast notification.
type Notification struct {
	ID            string    `json:"id"`
	ParticipantID string    `json:"participant_id,omitempty"`
	Kind          string    `json:"kind"`
	Message       string    `json:"message"`
	CreatedAt     time.Time `json:"created_at"`
}
