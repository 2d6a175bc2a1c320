package models

import "fmt"

// AdventureStatus is the lifecycle status of an adventure.
type AdventureStatus int

const (
	AdventureStatusCreated    AdventureStatus = 1
	AdventureStatusInProgress AdventureStatus = 2
	AdventureStatusCompleted  AdventureStatus = 3
)

var adventureStatusNames = map[AdventureStatus]string{
	AdventureStatusCreated:    "Created",
	AdventureStatusInProgress: "InProgress",
	AdventureStatusCompleted:  "Completed",
}

// Name returns the display name for the status, or "Unknown".
func (s AdventureStatus) Name() string {
	if name, ok := adventureStatusNames[s]; ok {
		return name
	}
	return "Unknown"
}

// Valid reports whether the status id is a known one.
func (s AdventureStatus) Valid() bool {
	_, ok := adventureStatusNames[s]
	return ok
}

// ParseAdventureStatus converts a raw id into an AdventureStatus.
func ParseAdventureStatus(id int) (AdventureStatus, error) {
	s := AdventureStatus(id)
	if !s.Valid() {
		return 0, fmt.Errorf("unknown adventure status id %d", id)
	}
	return s, nil
}

// AdventureType classifies an adventure.
type AdventureType int

const (
	AdventureTypeHike     AdventureType = 1
	AdventureTypeRide     AdventureType = 2
	AdventureTypeRoadTrip AdventureType = 3
	AdventureTypeCustom   AdventureType = 4
)

var adventureTypeNames = map[AdventureType]string{
	AdventureTypeHike:     "Hike",
	AdventureTypeRide:     "Ride",
	AdventureTypeRoadTrip: "RoadTrip",
	AdventureTypeCustom:   "Custom",
}

func (t AdventureType) Name() string {
	if name, ok := adventureTypeNames[t]; ok {
		return name
	}
	return "Unknown"
}

func (t AdventureType) Valid() bool {
	_, ok := adventureTypeNames[t]
	return ok
}

func ParseAdventureType(id int) (AdventureType, error) {
	t := AdventureType(id)
	if !t.Valid() {
		return 0, fmt.Errorf("unknown adventure type id %d", id)
	}
	return t, nil
}

// AccessLevel is the authorization tier of a participant within one adventure.
type AccessLevel int

const (
	AccessLevelViewer        AccessLevel = 1
	AccessLevelParticipant   AccessLevel = 2
	AccessLevelAdministrator AccessLevel = 3
)

var accessLevelNames = map[AccessLevel]string{
	AccessLevelViewer:        "Viewer",
	AccessLevelParticipant:   "Participant",
	AccessLevelAdministrator: "Administrator",
}

func (l AccessLevel) Name() string {
	if name, ok := accessLevelNames[l]; ok {
		return name
	}
	return "Unknown"
}

func (l AccessLevel) Valid() bool {
	_, ok := accessLevelNames[l]
	return ok
}

func ParseAccessLevel(id int) (AccessLevel, error) {
	l := AccessLevel(id)
	if !l.Valid() {
		return 0, fmt.Errorf("unknown access level id %d", id)
	}
	return l, nil
}

// InvitationStatus is shared by adventure invitations and friend requests.
type InvitationStatus int

const (
	InvitationStatusPending  InvitationStatus = 1
	InvitationStatusAccepted InvitationStatus = 2
	InvitationStatusRejected InvitationStatus = 3
)

var invitationStatusNames = map[InvitationStatus]string{
	InvitationStatusPending:  "Pending",
	InvitationStatusAccepted: "Accepted",
	InvitationStatusRejected: "Rejected",
}

func (s InvitationStatus) Name() string {
	if name, ok := invitationStatusNames[s]; ok {
		return name
	}
	return "Unknown"
}

func (s InvitationStatus) Valid() bool {
	_, ok := invitationStatusNames[s]
	return ok
}

func ParseInvitationStatus(id int) (InvitationStatus, error) {
	s := InvitationStatus(id)
	if !s.Valid() {
		return 0, fmt.Errorf("unknown invitation status id %d", id)
	}
	return s, nil
}
