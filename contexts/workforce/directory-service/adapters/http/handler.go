package httpadapter

import (
	"context"
	"log/slog"
	"time"

	"timeclock/contexts/workforce/directory-service/application/commands"
	"timeclock/contexts/workforce/directory-service/application/queries"
	"timeclock/contexts/workforce/directory-service/domain/entities"
	httptransport "timeclock/contexts/workforce/directory-service/transport/http"
)

type Handler struct {
	CreateProfile commands.CreateProfileUseCase
	UpdateProfile commands.UpdateProfileUseCase
	SetActive     commands.SetActiveUseCase
	GetProfile    queries.GetProfileUseCase
	ListProfiles  queries.ListProfilesUseCase
	Logger        *slog.Logger
}

func (h Handler) CreateProfileHandler(ctx context.Context, req httptransport.CreateProfileRequest) (httptransport.ProfileResponse, error) {
	profile, err := h.CreateProfile.Execute(ctx, commands.CreateProfileCommand{
		Email: req.Email,
		Name:  req.Name,
		Phone: req.Phone,
		Role:  req.Role,
	})
	if err != nil {
		return httptransport.ProfileResponse{}, err
	}
	return httptransport.ProfileResponse{Profile: mapProfile(profile)}, nil
}

func (h Handler) UpdateProfileHandler(ctx context.Context, userID string, req httptransport.UpdateProfileRequest) (httptransport.ProfileResponse, error) {
	profile, err := h.UpdateProfile.Execute(ctx, commands.UpdateProfileCommand{
		UserID: userID,
		Name:   req.Name,
		Email:  req.Email,
		Phone:  req.Phone,
		Role:   req.Role,
	})
	if err != nil {
		return httptransport.ProfileResponse{}, err
	}
	return httptransport.ProfileResponse{Profile: mapProfile(profile)}, nil
}

func (h Handler) SetActiveHandler(ctx context.Context, userID string, active bool) (httptransport.ProfileResponse, error) {
	profile, err := h.SetActive.Execute(ctx, commands.SetActiveCommand{
		UserID: userID,
		Active: active,
	})
	if err != nil {
		return httptransport.ProfileResponse{}, err
	}
	return httptransport.ProfileResponse{Profile: mapProfile(profile)}, nil
}

func (h Handler) GetProfileHandler(ctx context.Context, userID string) (httptransport.ProfileResponse, error) {
	profile, err := h.GetProfile.Execute(ctx, userID)
	if err != nil {
		return httptransport.ProfileResponse{}, err
	}
	return httptransport.ProfileResponse{Profile: mapProfile(profile)}, nil
}

func (h Handler) ListProfilesHandler(ctx context.Context) (httptransport.ListProfilesResponse, error) {
	items, err := h.ListProfiles.Execute(ctx)
	if err != nil {
		return httptransport.ListProfilesResponse{}, err
	}
	result := make([]httptransport.ProfileDTO, 0, len(items))
	for _, item := range items {
		result = append(result, mapProfile(item))
	}
	return httptransport.ListProfilesResponse{Items: result}, nil
}

func mapProfile(profile entities.Profile) httptransport.ProfileDTO {
	return httptransport.ProfileDTO{
		UserID:    profile.UserID,
		Name:      profile.Name,
		Phone:     profile.Phone,
		Role:      string(profile.Role),
		Active:    profile.Active,
		CreatedAt: profile.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt: profile.UpdatedAt.UTC().Format(time.RFC3339),
	}
}
