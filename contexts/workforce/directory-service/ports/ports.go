package ports

import (
	"context"
	"time"

	"timeclock/contexts/workforce/directory-service/domain/entities"
)

// Clock abstracts current time for deterministic tests.
type Clock interface {
	Now() time.Time
}

// ProfileRepository persists employee profiles. CreateProfile returns
// domain ErrEmailTaken when the normalized email already exists.
// UpdateProfile is keyed by currentUserID so an email change re-keys the
// record in one write.
type ProfileRepository interface {
	CreateProfile(ctx context.Context, profile entities.Profile) error
	UpdateProfile(ctx context.Context, currentUserID string, profile entities.Profile) error
	GetProfile(ctx context.Context, userID string) (entities.Profile, error)
	ListProfiles(ctx context.Context) ([]entities.Profile, error)
}
