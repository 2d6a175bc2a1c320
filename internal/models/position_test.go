package models

import (
	"testing"
	"time"
)

func TestParsedTimestamp(t *testing.T) {
	cases := []struct {
		raw  string
		ok   bool
		want time.Time
	}{
		{"2026-08-01T10:30:00Z", true, time.Date(2026, 8, 1, 10, 30, 0, 0, time.UTC)},
		{"2026-08-01T10:30:00.5Z", true, time.Date(2026, 8, 1, 10, 30, 0, 500000000, time.UTC)},
		{"2026-08-01 10:30:00", true, time.Date(2026, 8, 1, 10, 30, 0, 0, time.UTC)},
		{"yesterday", false, time.Time{}},
		{"", false, time.Time{}},
	}

	for _, tc := range cases {
		p := &Position{Timestamp: tc.raw}
		got, ok := p.ParsedTimestamp()
		if ok != tc.ok {
			t.Errorf("ParsedTimestamp(%q): expected ok=%v, got %v", tc.raw, tc.ok, ok)
			continue
		}
		if ok && !got.Equal(tc.want) {
			t.Errorf("ParsedTimestamp(%q): expected %v, got %v", tc.raw, tc.want, got)
		}
	}
}
