package directoryservice

import (
	"log/slog"

	httpadapter "timeclock/contexts/workforce/directory-service/adapters/http"
	"timeclock/contexts/workforce/directory-service/adapters/memory"
	"timeclock/contexts/workforce/directory-service/application/commands"
	"timeclock/contexts/workforce/directory-service/application/queries"
	"timeclock/contexts/workforce/directory-service/domain/entities"
	"timeclock/contexts/workforce/directory-service/ports"
)

type Module struct {
	Handler httpadapter.Handler
	Store   *memory.Store
}

type Dependencies struct {
	Profiles ports.ProfileRepository
	Clock    ports.Clock
	Logger   *slog.Logger
}

func NewModule(deps Dependencies) Module {
	createProfile := commands.CreateProfileUseCase{
		Profiles: deps.Profiles,
		Clock:    deps.Clock,
		Logger:   deps.Logger,
	}
	updateProfile := commands.UpdateProfileUseCase{
		Profiles: deps.Profiles,
		Clock:    deps.Clock,
		Logger:   deps.Logger,
	}
	setActive := commands.SetActiveUseCase{
		Profiles: deps.Profiles,
		Clock:    deps.Clock,
		Logger:   deps.Logger,
	}
	getProfile := queries.GetProfileUseCase{
		Profiles: deps.Profiles,
		Logger:   deps.Logger,
	}
	listProfiles := queries.ListProfilesUseCase{
		Profiles: deps.Profiles,
		Logger:   deps.Logger,
	}

	return Module{
		Handler: httpadapter.Handler{
			CreateProfile: createProfile,
			UpdateProfile: updateProfile,
			SetActive:     setActive,
			GetProfile:    getProfile,
			ListProfiles:  listProfiles,
			Logger:        deps.Logger,
		},
	}
}

func NewInMemoryModule(seed []entities.Profile, logger *slog.Logger) Module {
	store := memory.NewStore(seed)
	module := NewModule(Dependencies{
		Profiles: store,
		Clock:    store,
		Logger:   logger,
	})
	module.Store = store
	return module
}
