package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"adventure-backend/internal/models"
)

func float(v float64) *float64 { return &v }

func newPositionFixture(t *testing.T) (*PositionService, *memAdventures, *collectingPublisher) {
	t.Helper()
	adventures := newMemAdventures()
	publisher := &collectingPublisher{}
	svc := NewPositionService(&memPositions{}, adventures, publisher)

	adventure := &models.Adventure{
		ID:        "adv-1",
		Name:      "Weekend ride",
		StartDate: time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2026, 8, 3, 0, 0, 0, 0, time.UTC),
		StatusID:  models.AdventureStatusInProgress,
		CreatedBy: "p1",
	}
	admin := &models.ParticipantAdventure{AdventureID: "adv-1", ParticipantID: "p1", AccessLevelID: models.AccessLevelAdministrator}
	if err := adventures.Create(context.Background(), adventure, admin); err != nil {
		t.Fatalf("failed to seed adventure: %v", err)
	}
	return svc, adventures, publisher
}

func TestRecordPublishesEventPerSample(t *testing.T) {
	svc, _, publisher := newPositionFixture(t)
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		input := RecordPositionInput{
			ParticipantID: "p1",
			Latitude:      float(47.1),
			Longitude:     float(8.5),
			Timestamp:     "2026-08-01T10:00:00Z",
		}
		if _, err := svc.Record(ctx, input); err != nil {
			t.Fatalf("Record returned error: %v", err)
		}
	}

	if len(publisher.events) != 2 {
		t.Fatalf("expected 2 published events, got %d", len(publisher.events))
	}
	recorded, ok := publisher.events[0].(models.PositionRecordedEvent)
	if !ok {
		t.Fatalf("expected PositionRecordedEvent, got %T", publisher.events[0])
	}
	if recorded.ParticipantID != "p1" || recorded.Latitude != 47.1 || recorded.Longitude != 8.5 {
		t.Errorf("event carries wrong fields: %+v", recorded)
	}
}

func TestRecordValidation(t *testing.T) {
	svc, _, _ := newPositionFixture(t)
	ctx := context.Background()

	cases := []struct {
		name  string
		input RecordPositionInput
		field string
	}{
		{"missing participant", RecordPositionInput{Latitude: float(1), Longitude: float(1)}, "participant_id"},
		{"missing latitude", RecordPositionInput{ParticipantID: "p1", Longitude: float(1)}, "latitude"},
		{"missing longitude", RecordPositionInput{ParticipantID: "p1", Latitude: float(1)}, "longitude"},
		{"latitude out of range", RecordPositionInput{ParticipantID: "p1", Latitude: float(91), Longitude: float(1)}, "latitude"},
		{"longitude out of range", RecordPositionInput{ParticipantID: "p1", Latitude: float(1), Longitude: float(-181)}, "longitude"},
	}

	for _, tc := range cases {
		_, err := svc.Record(ctx, tc.input)
		var verr *models.ValidationError
		if !errors.As(err, &verr) {
			t.Errorf("%s: expected validation error, got %v", tc.name, err)
			continue
		}
		if _, ok := verr.Fields[tc.field]; !ok {
			t.Errorf("%s: expected a %s field error, got %v", tc.name, tc.field, verr.Fields)
		}
	}
}

func TestRecordZeroCoordinatesAreValid(t *testing.T) {
	svc, _, _ := newPositionFixture(t)

	input := RecordPositionInput{ParticipantID: "p1", Latitude: float(0), Longitude: float(0)}
	if _, err := svc.Record(context.Background(), input); err != nil {
		t.Fatalf("Record returned error for the null island sample: %v", err)
	}
}

func TestListForAdventureFiltersByWindow(t *testing.T) {
	svc, _, _ := newPositionFixture(t)
	ctx := context.Background()

	samples := []struct {
		timestamp string
	}{
		{"2026-07-31T23:00:00Z"}, // before the window
		{"2026-08-01T09:00:00Z"}, // inside
		{"2026-08-02T18:00:00Z"}, // inside
		{"2026-08-04T09:00:00Z"}, // after the window
		{"garbled"},              // unparseable, skipped
	}
	for _, s := range samples {
		input := RecordPositionInput{
			ParticipantID: "p1",
			Latitude:      float(47.1),
			Longitude:     float(8.5),
			Timestamp:     s.timestamp,
		}
		if _, err := svc.Record(ctx, input); err != nil {
			t.Fatalf("Record returned error: %v", err)
		}
	}

	page, err := svc.ListForAdventure(ctx, "adv-1", 1, 20)
	if err != nil {
		t.Fatalf("ListForAdventure returned error: %v", err)
	}
	if page.TotalCount != 2 {
		t.Errorf("expected 2 positions inside the window, got %d", page.TotalCount)
	}
	for _, position := range page.Items {
		ts, ok := position.ParsedTimestamp()
		if !ok {
			t.Errorf("unparseable timestamp slipped through: %q", position.Timestamp)
			continue
		}
		if ts.Before(time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)) || ts.After(time.Date(2026, 8, 3, 0, 0, 0, 0, time.UTC)) {
			t.Errorf("position outside the window: %q", position.Timestamp)
		}
	}
}

func TestListForAdventureOpenEndedWindow(t *testing.T) {
	adventures := newMemAdventures()
	svc := NewPositionService(&memPositions{}, adventures, &collectingPublisher{})
	ctx := context.Background()

	adventure := &models.Adventure{
		ID:        "adv-2",
		Name:      "Open ended",
		StartDate: time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC),
		CreatedBy: "p1",
	}
	admin := &models.ParticipantAdventure{AdventureID: "adv-2", ParticipantID: "p1", AccessLevelID: models.AccessLevelAdministrator}
	if err := adventures.Create(ctx, adventure, admin); err != nil {
		t.Fatalf("failed to seed adventure: %v", err)
	}

	input := RecordPositionInput{
		ParticipantID: "p1",
		Latitude:      float(47.1),
		Longitude:     float(8.5),
		Timestamp:     "2030-01-01T00:00:00Z",
	}
	if _, err := svc.Record(ctx, input); err != nil {
		t.Fatalf("Record returned error: %v", err)
	}

	page, err := svc.ListForAdventure(ctx, "adv-2", 1, 20)
	if err != nil {
		t.Fatalf("ListForAdventure returned error: %v", err)
	}
	if page.TotalCount != 1 {
		t.Errorf("expected far-future sample kept for an open-ended adventure, got %d", page.TotalCount)
	}
}

func TestListForAdventureUnknownAdventure(t *testing.T) {
	svc, _, _ := newPositionFixture(t)
	if _, err := svc.ListForAdventure(context.Background(), "no-such-adventure", 1, 20); !errors.Is(err, models.ErrNotFound) {
		t.Errorf("expected not found, got %v", err)
	}
}

func TestPositionListForParticipantPaging(t *testing.T) {
	svc, _, _ := newPositionFixture(t)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		input := RecordPositionInput{
			ParticipantID: "p1",
			Latitude:      float(47.1),
			Longitude:     float(8.5),
			Timestamp:     "2026-08-01T10:00:00Z",
		}
		if _, err := svc.Record(ctx, input); err != nil {
			t.Fatalf("Record returned error: %v", err)
		}
	}

	page, err := svc.ListForParticipant(ctx, "p1", 2, 2)
	if err != nil {
		t.Fatalf("ListForParticipant returned error: %v", err)
	}
	if page.TotalCount != 5 {
		t.Errorf("expected total 5, got %d", page.TotalCount)
	}
	if len(page.Items) != 2 {
		t.Errorf("expected 2 items, got %d", len(page.Items))
	}
	if !page.HasNextPage || !page.HasPreviousPage {
		t.Error("expected both neighbors on page 2 of 3")
	}
}
