package models

import "time"

// AdventureInvitation is an offer of adventure membership at a given access
// level, targeted by email. The email does not have to belong to an existing
// participant.
type AdventureInvitation struct {
	EventRecorder `json:"-"`

	ID            string           `json:"id"`
	AdventureID   string           `json:"adventure_id"`
	Email         string           `json:"email"`
	AccessLevelID AccessLevel      `json:"access_level_id"`
	StatusID      InvitationStatus `json:"status_id"`
	CreatedAt     time.Time        `json:"created_at"`
}

// SetStatus stores the new status. A pending event is recorded only when the
// invitation actually moves into Pending, so re-inviting an already pending
// target stays silent.
func (i *AdventureInvitation) SetStatus(status InvitationStatus) {
	if status == i.StatusID {
		return
	}
	i.StatusID = status
	if status == InvitationStatusPending {
		i.Record(InvitationPendingEvent{
			InvitationID: i.ID,
			AdventureID:  i.AdventureID,
			Email:        i.Email,
		})
	}
}
