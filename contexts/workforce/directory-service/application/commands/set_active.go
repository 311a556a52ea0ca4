package commands

import (
	"context"
	"log/slog"

	application "timeclock/contexts/workforce/directory-service/application"
	"timeclock/contexts/workforce/directory-service/domain/entities"
	domainerrors "timeclock/contexts/workforce/directory-service/domain/errors"
	"timeclock/contexts/workforce/directory-service/ports"
)

type SetActiveCommand struct {
	UserID string
	Active bool
}

type SetActiveUseCase struct {
	Profiles ports.ProfileRepository
	Clock    ports.Clock
	Logger   *slog.Logger
}

// Execute deactivates or reactivates a profile. Inactive profiles keep
// their history; the attendance service refuses new events for them.
func (uc SetActiveUseCase) Execute(ctx context.Context, cmd SetActiveCommand) (entities.Profile, error) {
	logger := application.ResolveLogger(uc.Logger)
	userID := entities.NormalizeEmail(cmd.UserID)

	profile, err := uc.Profiles.GetProfile(ctx, userID)
	if err != nil {
		return entities.Profile{}, err
	}
	if profile.Active == cmd.Active {
		return entities.Profile{}, domainerrors.ErrAlreadyInTargetState
	}

	profile.Active = cmd.Active
	profile.UpdatedAt = uc.Clock.Now().UTC()

	if err := uc.Profiles.UpdateProfile(ctx, userID, profile); err != nil {
		return entities.Profile{}, err
	}

	logger.Info("profile activation changed",
		"event", "profile_activation_changed",
		"module", "workforce/directory-service",
		"layer", "application",
		"user_id", profile.UserID,
		"active", profile.Active,
	)
	return profile, nil
}
