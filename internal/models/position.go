package models

import "time"

// Position is one GPS sample associated with a participant. The timestamp is
// kept as the raw string reported by the device and parsed at query time.
type Position struct {
	ID            string  `json:"id"`
	ParticipantID string  `json:"participant_id"`
	Latitude      float64 `json:"latitude"`
	Longitude     float64 `json:"longitude"`
	Speed         float64 `json:"speed"`
	Heading       float64 `json:"heading"`
	Altitude      float64 `json:"altitude"`
	Odometer      float64 `json:"odometer"`
	ActivityType  string  `json:"activity_type,omitempty"`
	BatteryLevel  float64 `json:"battery_level"`
	Timestamp     string  `json:"timestamp"`
	IsMoving      bool    `json:"is_moving"`

	CreatedAt time.Time `json:"created_at"`
}

// ParsedTimestamp parses the device timestamp. RFC3339 with a nanosecond
// fallback; ok is false for anything unparseable.
func (p *Position) ParsedTimestamp() (time.Time, bool) {
	for _, layout := range []string{time.RFC3339, time.RFC3339Nano, "2006-01-02 15:04:05"} {
		if t, err := time.Parse(layout, p.Timestamp); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
