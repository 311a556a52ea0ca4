package workers

import (
	"context"
	"errors"
	"testing"
	"time"

	"timeclock/contexts/workforce/attendance-service/adapters/memory"
	"timeclock/contexts/workforce/attendance-service/domain/entities"
)

// flakyMirror fails the first N appends, then delegates to the store.
type flakyMirror struct {
	*memory.Store
	failures int
}

func (m *flakyMirror) Append(ctx context.Context, event entities.AttendanceEvent) error {
	if m.failures > 0 {
		m.failures--
		return errors.New("sheets unavailable")
	}
	return m.Store.Append(ctx, event)
}

func seedSourceEvents(t *testing.T, source *memory.Store, count int) {
	t.Helper()
	base := time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC)
	for i := 0; i < count; i++ {
		event := entities.AttendanceEvent{
			EventID:    string(rune('a' + i)),
			UserID:     "ana@example.com",
			Type:       entities.EventTypeClockIn,
			RecordedAt: base.Add(time.Duration(i) * time.Minute),
		}
		if err := source.Append(context.Background(), event); err != nil {
			t.Fatalf("seed source: %v", err)
		}
	}
}

func TestSheetRelayMirrorsPendingRows(t *testing.T) {
	source := memory.NewStore(nil)
	mirror := memory.NewStore(nil)
	seedSourceEvents(t, source, 3)

	relay := SheetRelay{Source: source, Cursor: source, Mirror: mirror}
	if err := relay.RunOnce(context.Background()); err != nil {
		t.Fatalf("run once: %v", err)
	}
	if mirror.EventCount() != 3 {
		t.Fatalf("expected 3 mirrored rows, got %d", mirror.EventCount())
	}

	// A second cycle with no new rows mirrors nothing.
	if err := relay.RunOnce(context.Background()); err != nil {
		t.Fatalf("second run: %v", err)
	}
	if mirror.EventCount() != 3 {
		t.Fatalf("expected cursor to prevent re-mirroring, got %d rows", mirror.EventCount())
	}
}

func TestSheetRelayResumesAfterMirrorFailure(t *testing.T) {
	source := memory.NewStore(nil)
	mirror := &flakyMirror{Store: memory.NewStore(nil), failures: 1}
	seedSourceEvents(t, source, 2)

	relay := SheetRelay{Source: source, Cursor: source, Mirror: mirror}
	if err := relay.RunOnce(context.Background()); err == nil {
		t.Fatalf("expected first cycle to surface the mirror failure")
	}
	if mirror.EventCount() != 0 {
		t.Fatalf("expected no mirrored rows after immediate failure, got %d", mirror.EventCount())
	}

	// The cursor did not advance, so the retry replays both rows.
	if err := relay.RunOnce(context.Background()); err != nil {
		t.Fatalf("retry cycle: %v", err)
	}
	if mirror.EventCount() != 2 {
		t.Fatalf("expected 2 mirrored rows after retry, got %d", mirror.EventCount())
	}
}

func TestSheetRelayHonorsBatchSize(t *testing.T) {
	source := memory.NewStore(nil)
	mirror := memory.NewStore(nil)
	seedSourceEvents(t, source, 5)

	relay := SheetRelay{Source: source, Cursor: source, Mirror: mirror, BatchSize: 2}
	if err := relay.RunOnce(context.Background()); err != nil {
		t.Fatalf("run once: %v", err)
	}
	if mirror.EventCount() != 2 {
		t.Fatalf("expected batch of 2, got %d", mirror.EventCount())
	}

	for mirror.EventCount() < 5 {
		if err := relay.RunOnce(context.Background()); err != nil {
			t.Fatalf("drain cycle: %v", err)
		}
	}
	if mirror.EventCount() != 5 {
		t.Fatalf("expected all 5 rows mirrored, got %d", mirror.EventCount())
	}
}
