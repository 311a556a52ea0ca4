package commands

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	application "timeclock/contexts/workforce/directory-service/application"
	"timeclock/contexts/workforce/directory-service/domain/entities"
	domainerrors "timeclock/contexts/workforce/directory-service/domain/errors"
	"timeclock/contexts/workforce/directory-service/ports"
)

type UpdateProfileCommand struct {
	UserID string
	Name   *string
	Email  *string
	Phone  *string
	Role   *string
}

type UpdateProfileUseCase struct {
	Profiles ports.ProfileRepository
	Clock    ports.Clock
	Logger   *slog.Logger
}

// Execute applies a partial profile update. Changing the email re-keys the
// record and fails with ErrEmailTaken when the new address is already used.
func (uc UpdateProfileUseCase) Execute(ctx context.Context, cmd UpdateProfileCommand) (entities.Profile, error) {
	logger := application.ResolveLogger(uc.Logger)
	userID := entities.NormalizeEmail(cmd.UserID)

	profile, err := uc.Profiles.GetProfile(ctx, userID)
	if err != nil {
		return entities.Profile{}, err
	}

	if cmd.Name != nil {
		profile.Name = strings.TrimSpace(*cmd.Name)
	}
	if cmd.Phone != nil {
		profile.Phone = entities.NormalizePhone(*cmd.Phone)
	}
	if cmd.Role != nil {
		role := entities.Role(strings.TrimSpace(*cmd.Role))
		if !entities.IsSupportedRole(role) {
			return entities.Profile{}, domainerrors.ErrUnsupportedRole
		}
		profile.Role = role
	}
	if cmd.Email != nil {
		nextEmail := entities.NormalizeEmail(*cmd.Email)
		if nextEmail != userID {
			if _, err := uc.Profiles.GetProfile(ctx, nextEmail); err == nil {
				return entities.Profile{}, domainerrors.ErrEmailTaken
			} else if !errors.Is(err, domainerrors.ErrProfileNotFound) {
				return entities.Profile{}, err
			}
			profile.UserID = nextEmail
		}
	}

	if !profile.Validate() {
		return entities.Profile{}, domainerrors.ErrInvalidProfile
	}
	profile.UpdatedAt = uc.Clock.Now().UTC()

	if err := uc.Profiles.UpdateProfile(ctx, userID, profile); err != nil {
		return entities.Profile{}, err
	}

	logger.Info("profile updated",
		"event", "profile_updated",
		"module", "workforce/directory-service",
		"layer", "application",
		"user_id", profile.UserID,
	)
	return profile, nil
}
