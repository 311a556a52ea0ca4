package queries

import (
	"context"
	"log/slog"

	"timeclock/contexts/workforce/directory-service/domain/entities"
	"timeclock/contexts/workforce/directory-service/ports"
)

type GetProfileUseCase struct {
	Profiles ports.ProfileRepository
	Logger   *slog.Logger
}

func (uc GetProfileUseCase) Execute(ctx context.Context, userID string) (entities.Profile, error) {
	return uc.Profiles.GetProfile(ctx, entities.NormalizeEmail(userID))
}
