package models

import "time"

// Participant represents an application user and potential adventure member.
type Participant struct {
	ID                 string     `json:"id"`
	Email              string     `json:"email"`
	DisplayName        string     `json:"display_name"`
	PhotoURL           string     `json:"photo_url,omitempty"`
	FollowMe           bool       `json:"follow_me"`
	TrailColor         string     `json:"trail_color,omitempty"`
	PushToken          *string    `json:"push_token,omitempty"`
	RefreshToken       *string    `json:"-"`
	RefreshTokenExpiry *time.Time `json:"-"`
	CreatedAt          time.Time  `json:"created_at"`
}

// IdentityUser is the credential record behind a participant. Participants
// created through an accepted invitation get one with a temporary password.
type IdentityUser struct {
	ID                string    `json:"id"`
	Email             string    `json:"email"`
	PasswordHash      string    `json:"-"`
	EmailConfirmed    bool      `json:"email_confirmed"`
	ConfirmationToken string    `json:"-"`
	ResetToken        string    `json:"-"`
	CreatedAt         time.Time `json:"created_at"`
}

// IdentityClaim is an arbitrary typed claim attached to an identity user.
type IdentityClaim struct {
	Type  string `json:"type"`
	Value string `json:"value"`
}
