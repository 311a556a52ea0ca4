package commands

import (
	"context"
	"errors"
	"testing"
	"time"

	"timeclock/contexts/workforce/attendance-service/adapters/memory"
	"timeclock/contexts/workforce/attendance-service/domain/entities"
	domainerrors "timeclock/contexts/workforce/attendance-service/domain/errors"
	"timeclock/contexts/workforce/attendance-service/domain/services"
	"timeclock/contexts/workforce/attendance-service/ports"
)

// countingLog wraps the memory store so tests can assert how often the
// event history was read.
type countingLog struct {
	*memory.Store
	listCalls int
}

func (c *countingLog) ListAll(ctx context.Context) ([]entities.AttendanceEvent, error) {
	c.listCalls++
	return c.Store.ListAll(ctx)
}

// countingDirectory wraps the memory store so tests can assert that the
// profile lookup happened at all.
type countingDirectory struct {
	*memory.Store
	findCalls int
}

func (c *countingDirectory) FindEmployee(ctx context.Context, userID string) (ports.EmployeeProfile, error) {
	c.findCalls++
	return c.Store.FindEmployee(ctx, userID)
}

type recordEventFixture struct {
	store     *memory.Store
	log       *countingLog
	directory *countingDirectory
	useCase   RecordEventUseCase
}

func newRecordEventFixture() *recordEventFixture {
	store := memory.NewStore([]ports.EmployeeProfile{
		{UserID: "ana@example.com", Name: "Ana Souza", Role: "employee", Active: true},
		{UserID: "leo@example.com", Name: "Leo Prado", Role: "admin", Active: false},
	})
	store.SetNow(time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC))

	log := &countingLog{Store: store}
	directory := &countingDirectory{Store: store}
	return &recordEventFixture{
		store:     store,
		log:       log,
		directory: directory,
		useCase: RecordEventUseCase{
			Events:      log,
			Directory:   directory,
			BreakPolicy: services.BreakPolicy{},
			Clock:       store,
			IDGenerator: store,
		},
	}
}

func (f *recordEventFixture) record(t *testing.T, userID string, eventType entities.EventType) entities.AttendanceEvent {
	t.Helper()
	event, err := f.useCase.Execute(context.Background(), RecordEventCommand{
		UserID:      userID,
		Type:        string(eventType),
		EvidenceRef: "https://storage.example.com/selfies/abc.jpg",
	})
	if err != nil {
		t.Fatalf("record %s for %s: %v", eventType, userID, err)
	}
	return event
}

func TestRecordEventUnknownUser(t *testing.T) {
	f := newRecordEventFixture()

	_, err := f.useCase.Execute(context.Background(), RecordEventCommand{
		UserID:      "nobody@example.com",
		Type:        string(entities.EventTypeClockIn),
		EvidenceRef: "ref",
	})
	if !errors.Is(err, domainerrors.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
	if f.store.EventCount() != 0 {
		t.Fatalf("expected no append on rejection, got %d events", f.store.EventCount())
	}
}

func TestRecordEventInactiveUser(t *testing.T) {
	f := newRecordEventFixture()

	_, err := f.useCase.Execute(context.Background(), RecordEventCommand{
		UserID:      "leo@example.com",
		Type:        string(entities.EventTypeClockIn),
		EvidenceRef: "ref",
	})
	if !errors.Is(err, domainerrors.ErrUserInactive) {
		t.Fatalf("expected ErrUserInactive, got %v", err)
	}
	if f.store.EventCount() != 0 {
		t.Fatalf("expected no append for inactive user, got %d events", f.store.EventCount())
	}
}

func TestRecordEventUnsupportedType(t *testing.T) {
	f := newRecordEventFixture()

	_, err := f.useCase.Execute(context.Background(), RecordEventCommand{
		UserID:      "ana@example.com",
		Type:        "lunch",
		EvidenceRef: "ref",
	})
	if !errors.Is(err, domainerrors.ErrInvalidEventType) {
		t.Fatalf("expected ErrInvalidEventType, got %v", err)
	}
	if f.store.EventCount() != 0 {
		t.Fatalf("expected no append for unsupported type, got %d events", f.store.EventCount())
	}
}

func TestRecordEventMissingEvidence(t *testing.T) {
	f := newRecordEventFixture()

	_, err := f.useCase.Execute(context.Background(), RecordEventCommand{
		UserID:      "ana@example.com",
		Type:        string(entities.EventTypeBreakEnd),
		EvidenceRef: "   ",
	})
	if !errors.Is(err, domainerrors.ErrMissingEvidence) {
		t.Fatalf("expected ErrMissingEvidence, got %v", err)
	}
	// The profile lookup precedes the evidence check, and the history
	// read never happens once evidence is rejected.
	if f.directory.findCalls != 1 {
		t.Fatalf("expected exactly one profile lookup, got %d", f.directory.findCalls)
	}
	if f.log.listCalls != 0 {
		t.Fatalf("expected no history read after evidence rejection, got %d", f.log.listCalls)
	}
	if f.store.EventCount() != 0 {
		t.Fatalf("expected no append, got %d events", f.store.EventCount())
	}
}

func TestRecordEventClockInNeverReadsHistory(t *testing.T) {
	f := newRecordEventFixture()

	// Two consecutive clock_ins are accepted: only break_end is gated.
	f.record(t, "ana@example.com", entities.EventTypeClockIn)
	f.record(t, "ana@example.com", entities.EventTypeClockIn)

	if f.log.listCalls != 0 {
		t.Fatalf("expected clock_in to skip the history read, got %d reads", f.log.listCalls)
	}
	if f.store.EventCount() != 2 {
		t.Fatalf("expected 2 appended events, got %d", f.store.EventCount())
	}
}

func TestRecordEventBreakEndTooShort(t *testing.T) {
	f := newRecordEventFixture()

	f.record(t, "ana@example.com", entities.EventTypeBreakStart)
	f.store.Advance(19 * time.Minute)

	_, err := f.useCase.Execute(context.Background(), RecordEventCommand{
		UserID:      "ana@example.com",
		Type:        string(entities.EventTypeBreakEnd),
		EvidenceRef: "ref",
	})
	var tooShort domainerrors.BreakTooShortError
	if !errors.As(err, &tooShort) {
		t.Fatalf("expected BreakTooShortError, got %v", err)
	}
	if tooShort.RemainingMinutes != 1 {
		t.Fatalf("expected 1 remaining minute, got %d", tooShort.RemainingMinutes)
	}
	if f.store.EventCount() != 1 {
		t.Fatalf("expected only the break_start in the log, got %d events", f.store.EventCount())
	}
}

func TestRecordEventBreakEndAfterMinimum(t *testing.T) {
	f := newRecordEventFixture()

	f.record(t, "ana@example.com", entities.EventTypeBreakStart)
	f.store.Advance(20 * time.Minute)

	event := f.record(t, "ana@example.com", entities.EventTypeBreakEnd)
	if event.Type != entities.EventTypeBreakEnd {
		t.Fatalf("expected break_end event, got %s", event.Type)
	}
	if f.store.EventCount() != 2 {
		t.Fatalf("expected 2 appended events, got %d", f.store.EventCount())
	}
}

func TestRecordEventBreakRuleIgnoresOtherUsers(t *testing.T) {
	f := newRecordEventFixture()
	f.store.PutProfile(ports.EmployeeProfile{UserID: "bia@example.com", Name: "Bia Lima", Role: "employee", Active: true})

	// Bia's recent break_start must not open a break for Ana.
	f.record(t, "bia@example.com", entities.EventTypeBreakStart)

	_, err := f.useCase.Execute(context.Background(), RecordEventCommand{
		UserID:      "ana@example.com",
		Type:        string(entities.EventTypeBreakEnd),
		EvidenceRef: "ref",
	})
	if !errors.Is(err, domainerrors.ErrNoOpenBreak) {
		t.Fatalf("expected ErrNoOpenBreak for user without a break_start, got %v", err)
	}
}

func TestRecordEventStampsServerTimeAndIdentity(t *testing.T) {
	f := newRecordEventFixture()
	now := time.Date(2025, 3, 10, 15, 30, 0, 0, time.UTC)
	f.store.SetNow(now)

	lat, lon := -23.55, -46.63
	event, err := f.useCase.Execute(context.Background(), RecordEventCommand{
		UserID:      "  ANA@example.com ",
		Type:        string(entities.EventTypeClockOut),
		EvidenceRef: " https://storage.example.com/selfies/out.jpg ",
		Note:        " leaving early ",
		Latitude:    &lat,
		Longitude:   &lon,
	})
	if err != nil {
		t.Fatalf("record clock_out: %v", err)
	}
	if event.UserID != "ana@example.com" {
		t.Fatalf("expected normalized user id, got %q", event.UserID)
	}
	if !event.RecordedAt.Equal(now) {
		t.Fatalf("expected server timestamp %v, got %v", now, event.RecordedAt)
	}
	if event.Name != "Ana Souza" || event.Role != "employee" {
		t.Fatalf("expected profile snapshot on the event, got %q/%q", event.Name, event.Role)
	}
	if event.EvidenceRef != "https://storage.example.com/selfies/out.jpg" || event.Note != "leaving early" {
		t.Fatalf("expected trimmed evidence and note, got %q/%q", event.EvidenceRef, event.Note)
	}
	if event.EventID == "" {
		t.Fatalf("expected generated event id")
	}
	if event.Latitude == nil || *event.Latitude != lat {
		t.Fatalf("expected latitude to pass through")
	}
}
