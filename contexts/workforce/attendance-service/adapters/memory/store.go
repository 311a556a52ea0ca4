package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"timeclock/contexts/workforce/attendance-service/domain/entities"
	domainerrors "timeclock/contexts/workforce/attendance-service/domain/errors"
	"timeclock/contexts/workforce/attendance-service/ports"
)

// Store is the in-memory adapter used by tests and local runs. It
// implements every attendance port, including a settable clock so break
// interval rules can be exercised without sleeping.
type Store struct {
	mu sync.RWMutex

	events   []entities.AttendanceEvent
	profiles map[string]ports.EmployeeProfile
	cursors  map[string]int64

	now time.Time
}

func NewStore(seed []ports.EmployeeProfile) *Store {
	profiles := make(map[string]ports.EmployeeProfile, len(seed))
	for _, item := range seed {
		profiles[entities.NormalizeUserID(item.UserID)] = item
	}
	return &Store{
		events:   make([]entities.AttendanceEvent, 0),
		profiles: profiles,
		cursors:  make(map[string]int64),
		now:      time.Now().UTC(),
	}
}

func (s *Store) Append(_ context.Context, event entities.AttendanceEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.events = append(s.events, event)
	return nil
}

func (s *Store) ListAll(_ context.Context) ([]entities.AttendanceEvent, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return append([]entities.AttendanceEvent(nil), s.events...), nil
}

func (s *Store) ListEventsAfter(_ context.Context, position int64, limit int) ([]ports.NumberedEvent, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]ports.NumberedEvent, 0, limit)
	for index, event := range s.events {
		rowPosition := int64(index) + 1
		if rowPosition <= position {
			continue
		}
		items = append(items, ports.NumberedEvent{Position: rowPosition, Event: event})
		if len(items) == limit {
			break
		}
	}
	return items, nil
}

func (s *Store) FindEmployee(_ context.Context, userID string) (ports.EmployeeProfile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	profile, exists := s.profiles[entities.NormalizeUserID(userID)]
	if !exists {
		return ports.EmployeeProfile{}, domainerrors.ErrUserNotFound
	}
	return profile, nil
}

func (s *Store) PutProfile(profile ports.EmployeeProfile) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.profiles[entities.NormalizeUserID(profile.UserID)] = profile
}

func (s *Store) GetCursor(_ context.Context, relayName string) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.cursors[relayName], nil
}

func (s *Store) SetCursor(_ context.Context, relayName string, position int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cursors[relayName] = position
	return nil
}

func (s *Store) Now() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.now
}

// SetNow pins the store clock for deterministic break interval tests.
func (s *Store) SetNow(now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.now = now
}

// Advance moves the store clock forward.
func (s *Store) Advance(d time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.now = s.now.Add(d)
}

func (s *Store) NewID(_ context.Context) (string, error) {
	return uuid.NewString(), nil
}

// EventCount reports appended rows; tests assert zero appends on rejection.
func (s *Store) EventCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.events)
}
