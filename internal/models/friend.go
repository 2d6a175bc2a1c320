package models

import "time"

// FriendRequest tracks a pending/accepted/rejected relationship between two
// participants. The (ParticipantID, FriendID) pair is unique regardless of
// direction.
type FriendRequest struct {
	EventRecorder `json:"-"`

	ID            string           `json:"id"`
	ParticipantID string           `json:"participant_id"`
	FriendID      string           `json:"friend_id"`
	StatusID      InvitationStatus `json:"status_id"`
	CreatedAt     time.Time        `json:"created_at"`
}

// NewFriendRequest builds a request with no status set. The caller moves it
// into Pending through SetStatus, which is what records the event; plain
// construction never does.
func NewFriendRequest(id, participantID, friendID string) *FriendRequest {
	return &FriendRequest{
		ID:            id,
		ParticipantID: participantID,
		FriendID:      friendID,
		CreatedAt:     time.Now(),
	}
}

// IsParty reports whether the given participant is one of the two sides.
func (f *FriendRequest) IsParty(participantID string) bool {
	return f.ParticipantID == participantID || f.FriendID == participantID
}

// SetStatus stores the new status and records an event only on an actual
// transition into Pending or Accepted.
func (f *FriendRequest) SetStatus(status InvitationStatus) {
	if status == f.StatusID {
		return
	}
	f.StatusID = status
	switch status {
	case InvitationStatusPending:
		f.Record(FriendRequestPendingEvent{
			RequestID:     f.ID,
			ParticipantID: f.ParticipantID,
			FriendID:      f.FriendID,
		})
	case InvitationStatusAccepted:
		f.Record(FriendRequestAcceptedEvent{
			RequestID:     f.ID,
			ParticipantID: f.ParticipantID,
			FriendID:      f.FriendID,
		})
	}
}
