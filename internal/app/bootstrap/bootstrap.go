package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	attendanceservice "timeclock/contexts/workforce/attendance-service"
	attendancepostgres "timeclock/contexts/workforce/attendance-service/adapters/postgres"
	sheetsadapter "timeclock/contexts/workforce/attendance-service/adapters/sheets"
	"timeclock/contexts/workforce/attendance-service/application/workers"
	"timeclock/contexts/workforce/attendance-service/ports"
	directoryservice "timeclock/contexts/workforce/directory-service"
	directorypostgres "timeclock/contexts/workforce/directory-service/adapters/postgres"
	"timeclock/internal/platform/config"
	"timeclock/internal/platform/db"
	"timeclock/internal/platform/httpserver"
)

// Package bootstrap is the composition root.
// Keep construction/wiring here so module code stays framework-agnostic.

type APIApp struct {
	server   *httpserver.Server
	postgres *db.Postgres
	logger   *slog.Logger
}

type WorkerApp struct {
	postgres     *db.Postgres
	relay        workers.SheetRelay
	pollInterval time.Duration
	logger       *slog.Logger
}

func BuildAPI() (*APIApp, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	logger := slog.Default().With("service", cfg.ServiceName, "process", "api")
	if strings.TrimSpace(cfg.PostgresDSN) == "" {
		return nil, errors.New("POSTGRES_DSN is required")
	}

	pg, err := db.Connect(cfg.PostgresDSN)
	if err != nil {
		return nil, err
	}

	timezone, err := time.LoadLocation(cfg.ReportTimezone)
	if err != nil {
		return nil, fmt.Errorf("load report timezone %q: %w", cfg.ReportTimezone, err)
	}

	directoryRepo := directorypostgres.NewRepository(pg.DB, logger)
	if err := directoryRepo.Migrate(); err != nil {
		return nil, err
	}
	directoryModule := directoryservice.NewModule(directoryservice.Dependencies{
		Profiles: directoryRepo,
		Clock:    directorypostgres.SystemClock{},
		Logger:   logger,
	})

	attendanceRepo := attendancepostgres.NewRepository(pg.DB, logger)
	if err := attendanceRepo.Migrate(); err != nil {
		return nil, err
	}

	eventLog, err := buildEventLog(cfg, attendanceRepo, timezone, logger)
	if err != nil {
		return nil, err
	}

	attendanceModule := attendanceservice.NewModule(attendanceservice.Dependencies{
		Events:          eventLog,
		Directory:       attendanceRepo,
		Clock:           attendancepostgres.SystemClock{},
		IDGenerator:     attendancepostgres.UUIDGenerator{},
		MinBreakMinutes: cfg.MinBreakMinutes,
		ReportTimezone:  timezone,
		Logger:          logger,
	})

	server := httpserver.New(attendanceModule, directoryModule, logger, normalizeAddr(cfg.HTTPPort))
	return &APIApp{
		server:   server,
		postgres: pg,
		logger:   logger,
	}, nil
}

func (a *APIApp) Run() error {
	return a.server.Start()
}

func (a *APIApp) Close() error {
	return a.postgres.Close()
}

// BuildWorker wires the sheet mirror relay. It requires the postgres event
// log as primary; when the API writes straight to the spreadsheet there is
// nothing to mirror.
func BuildWorker() (*WorkerApp, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	logger := slog.Default().With("service", cfg.ServiceName, "process", "worker")
	if strings.TrimSpace(cfg.PostgresDSN) == "" {
		return nil, errors.New("POSTGRES_DSN is required")
	}
	if cfg.EventLogBackend != config.EventLogBackendPostgres {
		return nil, errors.New("sheet relay requires EVENT_LOG_BACKEND=postgres")
	}
	if strings.TrimSpace(cfg.GoogleSpreadsheetID) == "" {
		return nil, errors.New("GOOGLE_SHEETS_SPREADSHEET_ID is required for the sheet relay")
	}

	pg, err := db.Connect(cfg.PostgresDSN)
	if err != nil {
		return nil, err
	}

	timezone, err := time.LoadLocation(cfg.ReportTimezone)
	if err != nil {
		return nil, fmt.Errorf("load report timezone %q: %w", cfg.ReportTimezone, err)
	}

	repo := attendancepostgres.NewRepository(pg.DB, logger)
	if err := repo.Migrate(); err != nil {
		return nil, err
	}

	mirror := sheetsadapter.NewLog(sheetsadapter.Config{
		ServiceAccountEmail: cfg.GoogleServiceAccountEmail,
		PrivateKeyPEM:       cfg.GoogleServiceAccountKey,
		SpreadsheetID:       cfg.GoogleSpreadsheetID,
		TabName:             cfg.GoogleSheetsTabName,
		Timezone:            timezone,
		Logger:              logger,
	})

	return &WorkerApp{
		postgres: pg,
		relay: workers.SheetRelay{
			Source: repo,
			Cursor: repo,
			Mirror: mirror,
			Logger: logger,
		},
		pollInterval: cfg.SheetRelayInterval,
		logger:       logger,
	}, nil
}

func (w *WorkerApp) Run(ctx context.Context) error {
	ticker := time.NewTicker(w.pollInterval)
	defer ticker.Stop()

	for {
		if err := w.relay.RunOnce(ctx); err != nil {
			// At-least-once: the next tick retries from the persisted cursor.
			w.logger.Error("sheet relay cycle failed",
				"event", "sheet_relay_cycle_failed",
				"module", "internal/app/bootstrap",
				"layer", "platform",
				"error", err.Error(),
			)
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

func (w *WorkerApp) Close() error {
	return w.postgres.Close()
}

func buildEventLog(
	cfg config.Config,
	repo *attendancepostgres.Repository,
	timezone *time.Location,
	logger *slog.Logger,
) (ports.EventLog, error) {
	switch cfg.EventLogBackend {
	case config.EventLogBackendPostgres:
		return repo, nil
	case config.EventLogBackendSheets:
		if strings.TrimSpace(cfg.GoogleSpreadsheetID) == "" {
			return nil, errors.New("GOOGLE_SHEETS_SPREADSHEET_ID is required for the sheets backend")
		}
		return sheetsadapter.NewLog(sheetsadapter.Config{
			ServiceAccountEmail: cfg.GoogleServiceAccountEmail,
			PrivateKeyPEM:       cfg.GoogleServiceAccountKey,
			SpreadsheetID:       cfg.GoogleSpreadsheetID,
			TabName:             cfg.GoogleSheetsTabName,
			Timezone:            timezone,
			Logger:              logger,
		}), nil
	default:
		return nil, fmt.Errorf("unknown EVENT_LOG_BACKEND %q", cfg.EventLogBackend)
	}
}

func normalizeAddr(port string) string {
	port = strings.TrimSpace(port)
	if port == "" {
		return ":8080"
	}
	if strings.HasPrefix(port, ":") {
		return port
	}
	return ":" + port
}
