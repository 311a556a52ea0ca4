package queries

import (
	"context"
	"log/slog"

	"timeclock/contexts/workforce/directory-service/domain/entities"
	"timeclock/contexts/workforce/directory-service/ports"
)

type ListProfilesUseCase struct {
	Profiles ports.ProfileRepository
	Logger   *slog.Logger
}

func (uc ListProfilesUseCase) Execute(ctx context.Context) ([]entities.Profile, error) {
	return uc.Profiles.ListProfiles(ctx)
}
