package commands

import (
	"context"
	"log/slog"
	"strings"

	application "timeclock/contexts/workforce/directory-service/application"
	"timeclock/contexts/workforce/directory-service/domain/entities"
	domainerrors "timeclock/contexts/workforce/directory-service/domain/errors"
	"timeclock/contexts/workforce/directory-service/ports"
)

type CreateProfileCommand struct {
	Email string
	Name  string
	Phone string
	Role  string
}

type CreateProfileUseCase struct {
	Profiles ports.ProfileRepository
	Clock    ports.Clock
	Logger   *slog.Logger
}

// Execute registers a new employee. New profiles start active and default
// to the employee role, matching the original registration flow.
func (uc CreateProfileUseCase) Execute(ctx context.Context, cmd CreateProfileCommand) (entities.Profile, error) {
	logger := application.ResolveLogger(uc.Logger)
	now := uc.Clock.Now().UTC()

	role := entities.Role(strings.TrimSpace(cmd.Role))
	if role == "" {
		role = entities.RoleEmployee
	}
	if !entities.IsSupportedRole(role) {
		return entities.Profile{}, domainerrors.ErrUnsupportedRole
	}

	profile := entities.Profile{
		UserID:    entities.NormalizeEmail(cmd.Email),
		Name:      strings.TrimSpace(cmd.Name),
		Phone:     entities.NormalizePhone(cmd.Phone),
		Role:      role,
		Active:    true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if !profile.Validate() {
		return entities.Profile{}, domainerrors.ErrInvalidProfile
	}

	if err := uc.Profiles.CreateProfile(ctx, profile); err != nil {
		return entities.Profile{}, err
	}

	logger.Info("profile created",
		"event", "profile_created",
		"module", "workforce/directory-service",
		"layer", "application",
		"user_id", profile.UserID,
		"role", string(profile.Role),
	)
	return profile, nil
}
