package models

import "testing"

func TestParseAdventureStatus(t *testing.T) {
	for id, want := range map[int]string{1: "Created", 2: "InProgress", 3: "Completed"} {
		status, err := ParseAdventureStatus(id)
		if err != nil {
			t.Fatalf("ParseAdventureStatus(%d) returned error: %v", id, err)
		}
		if status.Name() != want {
			t.Errorf("status %d: expected name %q, got %q", id, want, status.Name())
		}
	}
	if _, err := ParseAdventureStatus(0); err == nil {
		t.Error("expected error for status id 0")
	}
	if _, err := ParseAdventureStatus(4); err == nil {
		t.Error("expected error for status id 4")
	}
}

func TestParseAdventureType(t *testing.T) {
	for id, want := range map[int]string{1: "Hike", 2: "Ride", 3: "RoadTrip", 4: "Custom"} {
		adventureType, err := ParseAdventureType(id)
		if err != nil {
			t.Fatalf("ParseAdventureType(%d) returned error: %v", id, err)
		}
		if adventureType.Name() != want {
			t.Errorf("type %d: expected name %q, got %q", id, want, adventureType.Name())
		}
	}
	if _, err := ParseAdventureType(5); err == nil {
		t.Error("expected error for type id 5")
	}
}

func TestParseAccessLevel(t *testing.T) {
	for id, want := range map[int]string{1: "Viewer", 2: "Participant", 3: "Administrator"} {
		level, err := ParseAccessLevel(id)
		if err != nil {
			t.Fatalf("ParseAccessLevel(%d) returned error: %v", id, err)
		}
		if level.Name() != want {
			t.Errorf("level %d: expected name %q, got %q", id, want, level.Name())
		}
	}
	if _, err := ParseAccessLevel(0); err == nil {
		t.Error("expected error for access level id 0")
	}
}

func TestParseInvitationStatus(t *testing.T) {
	for id, want := range map[int]string{1: "Pending", 2: "Accepted", 3: "Rejected"} {
		status, err := ParseInvitationStatus(id)
		if err != nil {
			t.Fatalf("ParseInvitationStatus(%d) returned error: %v", id, err)
		}
		if status.Name() != want {
			t.Errorf("status %d: expected name %q, got %q", id, want, status.Name())
		}
	}
	if _, err := ParseInvitationStatus(9); err == nil {
		t.Error("expected error for status id 9")
	}
}

func TestUnknownName(t *testing.T) {
	if got := AdventureStatus(42).Name(); got != "Unknown" {
		t.Errorf("expected Unknown, got %q", got)
	}
	if AdventureStatus(42).Valid() {
		t.Error("expected status 42 to be invalid")
	}
}
