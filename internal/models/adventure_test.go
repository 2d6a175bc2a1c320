package models

import "testing"

func TestUpdateStatusRecordsStartEventOnce(t *testing.T) {
	adventure := &Adventure{ID: "a1", Name: "Coastal ride", StatusID: AdventureStatusCreated, CreatedBy: "p1"}

	adventure.UpdateStatus(AdventureStatusInProgress)
	events := adventure.DrainEvents()
	if len(events) != 1 {
		t.Fatalf("expected 1 event after transition, got %d", len(events))
	}
	started, ok := events[0].(AdventureStatusInProgressEvent)
	if !ok {
		t.Fatalf("expected AdventureStatusInProgressEvent, got %T", events[0])
	}
	if started.AdventureID != "a1" || started.AdventureName != "Coastal ride" || started.CreatedBy != "p1" {
		t.Errorf("event carries wrong fields: %+v", started)
	}

	adventure.UpdateStatus(AdventureStatusInProgress)
	if events := adventure.DrainEvents(); len(events) != 0 {
		t.Errorf("expected no event when status is unchanged, got %d", len(events))
	}
}

func TestUpdateStatusCompleteRecordsNothing(t *testing.T) {
	adventure := &Adventure{ID: "a1", StatusID: AdventureStatusInProgress}
	adventure.UpdateStatus(AdventureStatusCompleted)
	if events := adventure.DrainEvents(); len(events) != 0 {
		t.Errorf("expected no event on completion, got %d", len(events))
	}
	if adventure.StatusID != AdventureStatusCompleted {
		t.Errorf("expected status Completed, got %v", adventure.StatusID)
	}
}

func TestDrainEventsClearsQueue(t *testing.T) {
	adventure := &Adventure{ID: "a1", StatusID: AdventureStatusCreated}
	adventure.UpdateStatus(AdventureStatusInProgress)

	if events := adventure.DrainEvents(); len(events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(events))
	}
	if events := adventure.DrainEvents(); len(events) != 0 {
		t.Errorf("expected drained queue to be empty, got %d events", len(events))
	}
}
