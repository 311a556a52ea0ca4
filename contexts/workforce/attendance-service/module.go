package attendanceservice

import (
	"log/slog"
	"time"

	httpadapter "timeclock/contexts/workforce/attendance-service/adapters/http"
	"timeclock/contexts/workforce/attendance-service/adapters/memory"
	"timeclock/contexts/workforce/attendance-service/application/commands"
	"timeclock/contexts/workforce/attendance-service/application/queries"
	"timeclock/contexts/workforce/attendance-service/domain/services"
	"timeclock/contexts/workforce/attendance-service/ports"
)

type Module struct {
	Handler httpadapter.Handler
	Store   *memory.Store
}

type Dependencies struct {
	Events          ports.EventLog
	Directory       ports.EmployeeDirectory
	Clock           ports.Clock
	IDGenerator     ports.IDGenerator
	MinBreakMinutes int
	ReportTimezone  *time.Location
	Logger          *slog.Logger
}

func NewModule(deps Dependencies) Module {
	policy := services.BreakPolicy{MinBreakMinutes: deps.MinBreakMinutes}

	recordEvent := commands.RecordEventUseCase{
		Events:      deps.Events,
		Directory:   deps.Directory,
		BreakPolicy: policy,
		Clock:       deps.Clock,
		IDGenerator: deps.IDGenerator,
		Logger:      deps.Logger,
	}
	listEvents := queries.ListEventsUseCase{
		Events: deps.Events,
		Logger: deps.Logger,
	}
	buildReport := queries.BuildReportUseCase{
		Events:    deps.Events,
		Directory: deps.Directory,
		Logger:    deps.Logger,
	}

	return Module{
		Handler: httpadapter.Handler{
			RecordEvent:    recordEvent,
			ListEvents:     listEvents,
			BuildReport:    buildReport,
			ReportTimezone: deps.ReportTimezone,
			Logger:         deps.Logger,
		},
	}
}

func NewInMemoryModule(seed []ports.EmployeeProfile, logger *slog.Logger) Module {
	store := memory.NewStore(seed)
	module := NewModule(Dependencies{
		Events:      store,
		Directory:   store,
		Clock:       store,
		IDGenerator: store,
		Logger:      logger,
	})
	module.Store = store
	return module
}
