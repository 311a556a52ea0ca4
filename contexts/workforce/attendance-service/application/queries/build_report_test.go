package queries

import (
	"context"
	"errors"
	"testing"
	"time"

	"timeclock/contexts/workforce/attendance-service/adapters/memory"
	"timeclock/contexts/workforce/attendance-service/domain/entities"
	domainerrors "timeclock/contexts/workforce/attendance-service/domain/errors"
	"timeclock/contexts/workforce/attendance-service/ports"
)

func newReportFixture(t *testing.T) (*memory.Store, BuildReportUseCase) {
	t.Helper()
	store := memory.NewStore([]ports.EmployeeProfile{
		{UserID: "boss@example.com", Name: "Marta Reis", Role: "admin", Active: true},
		{UserID: "ex-boss@example.com", Name: "Caio Dias", Role: "admin", Active: false},
		{UserID: "ana@example.com", Name: "Ana Souza", Role: "employee", Active: true},
	})

	base := time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC)
	seed := []entities.AttendanceEvent{
		{EventID: "e1", UserID: "ana@example.com", Type: entities.EventTypeClockIn, RecordedAt: base},
		{EventID: "e2", UserID: "bia@example.com", Type: entities.EventTypeClockIn, RecordedAt: base.Add(time.Hour)},
		{EventID: "e3", UserID: "ana@example.com", Type: entities.EventTypeClockOut, RecordedAt: base.Add(9 * time.Hour)},
	}
	for _, event := range seed {
		if err := store.Append(context.Background(), event); err != nil {
			t.Fatalf("seed event %s: %v", event.EventID, err)
		}
	}
	return store, BuildReportUseCase{Events: store, Directory: store}
}

func TestBuildReportRequiresAdmin(t *testing.T) {
	_, useCase := newReportFixture(t)

	_, err := useCase.Execute(context.Background(), BuildReportQuery{RequesterID: "ana@example.com"})
	if !errors.Is(err, domainerrors.ErrReportAccessDenied) {
		t.Fatalf("expected ErrReportAccessDenied for non-admin, got %v", err)
	}

	_, err = useCase.Execute(context.Background(), BuildReportQuery{RequesterID: "ex-boss@example.com"})
	if !errors.Is(err, domainerrors.ErrReportAccessDenied) {
		t.Fatalf("expected ErrReportAccessDenied for inactive admin, got %v", err)
	}

	_, err = useCase.Execute(context.Background(), BuildReportQuery{RequesterID: "ghost@example.com"})
	if !errors.Is(err, domainerrors.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound for unknown requester, got %v", err)
	}
}

func TestBuildReportDescendingOrder(t *testing.T) {
	_, useCase := newReportFixture(t)

	items, err := useCase.Execute(context.Background(), BuildReportQuery{RequesterID: "boss@example.com"})
	if err != nil {
		t.Fatalf("build report: %v", err)
	}
	if len(items) != 3 {
		t.Fatalf("expected 3 events, got %d", len(items))
	}
	for i := 1; i < len(items); i++ {
		if items[i].RecordedAt.After(items[i-1].RecordedAt) {
			t.Fatalf("expected descending RecordedAt order at index %d", i)
		}
	}
}

func TestBuildReportFiltersTargetAndRange(t *testing.T) {
	_, useCase := newReportFixture(t)

	items, err := useCase.Execute(context.Background(), BuildReportQuery{
		RequesterID:  "boss@example.com",
		TargetUserID: "ANA@example.com",
	})
	if err != nil {
		t.Fatalf("build report: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("expected 2 events for ana, got %d", len(items))
	}
	for _, item := range items {
		if item.UserID != "ana@example.com" {
			t.Fatalf("unexpected user %q in filtered report", item.UserID)
		}
	}

	from := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	items, err = useCase.Execute(context.Background(), BuildReportQuery{
		RequesterID: "boss@example.com",
		From:        &from,
	})
	if err != nil {
		t.Fatalf("build report with from: %v", err)
	}
	if len(items) != 1 || items[0].EventID != "e3" {
		t.Fatalf("expected only the late clock_out after %v, got %d items", from, len(items))
	}
}
