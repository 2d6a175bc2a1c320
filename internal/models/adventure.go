package models

import "time"

// Adventure is a planned multi-participant trip with a lifecycle status.
type Adventure struct {
	EventRecorder `json:"-"`

	ID                    string          `json:"id"`
	Name                  string          `json:"name"`
	StartDate             time.Time       `json:"start_date"`
	EndDate               time.Time       `json:"end_date"`
	TypeID                AdventureType   `json:"type_id"`
	StatusID              AdventureStatus `json:"status_id"`
	MeetupLocationID      *string         `json:"meetup_location_id,omitempty"`
	DestinationLocationID *string         `json:"destination_location_id,omitempty"`
	CreatedBy             string          `json:"created_by"`
	CreatedAt             time.Time       `json:"created_at"`
}

// UpdateStatus stores the new status and records a status event only when the
// adventure transitions into InProgress from a different status. Repeated
// calls with the same status never queue a second event.
func (a *Adventure) UpdateStatus(status AdventureStatus) {
	if status == AdventureStatusInProgress && a.StatusID != AdventureStatusInProgress {
		a.Record(AdventureStatusInProgressEvent{
			AdventureID:   a.ID,
			AdventureName: a.Name,
			CreatedBy:     a.CreatedBy,
		})
	}
	a.StatusID = status
}

// ParticipantAdventure joins a participant to an adventure with an access
// level and the distance accumulated so far.
type ParticipantAdventure struct {
	AdventureID   string      `json:"adventure_id"`
	ParticipantID string      `json:"participant_id"`
	AccessLevelID AccessLevel `json:"access_level_id"`
	Distance      float64     `json:"distance"`
	CreatedAt     time.Time   `json:"created_at"`
}
