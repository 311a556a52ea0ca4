package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"timeclock/contexts/workforce/directory-service/domain/entities"
	domainerrors "timeclock/contexts/workforce/directory-service/domain/errors"
)

type Store struct {
	mu sync.RWMutex

	profiles map[string]entities.Profile
	now      time.Time
}

func NewStore(seed []entities.Profile) *Store {
	profiles := make(map[string]entities.Profile, len(seed))
	for _, item := range seed {
		profiles[entities.NormalizeEmail(item.UserID)] = item
	}
	return &Store{
		profiles: profiles,
		now:      time.Now().UTC(),
	}
}

func (s *Store) CreateProfile(_ context.Context, profile entities.Profile) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.profiles[profile.UserID]; exists {
		return domainerrors.ErrEmailTaken
	}
	s.profiles[profile.UserID] = profile
	return nil
}

func (s *Store) UpdateProfile(_ context.Context, currentUserID string, profile entities.Profile) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	currentUserID = entities.NormalizeEmail(currentUserID)
	if _, exists := s.profiles[currentUserID]; !exists {
		return domainerrors.ErrProfileNotFound
	}
	if profile.UserID != currentUserID {
		if _, exists := s.profiles[profile.UserID]; exists {
			return domainerrors.ErrEmailTaken
		}
		delete(s.profiles, currentUserID)
	}
	s.profiles[profile.UserID] = profile
	return nil
}

func (s *Store) GetProfile(_ context.Context, userID string) (entities.Profile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	profile, exists := s.profiles[entities.NormalizeEmail(userID)]
	if !exists {
		return entities.Profile{}, domainerrors.ErrProfileNotFound
	}
	return profile, nil
}

func (s *Store) ListProfiles(_ context.Context) ([]entities.Profile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]entities.Profile, 0, len(s.profiles))
	for _, profile := range s.profiles {
		items = append(items, profile)
	}
	sort.Slice(items, func(i, j int) bool {
		return items[i].UserID < items[j].UserID
	})
	return items, nil
}

func (s *Store) Now() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.now
}

// SetNow pins the store clock for deterministic tests.
func (s *Store) SetNow(now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.now = now
}
