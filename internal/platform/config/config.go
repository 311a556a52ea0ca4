package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config is centralized process configuration.
// Keep infra values here and pass typed config into builders.
type Config struct {
	ServiceName string
	HTTPPort    string
	PostgresDSN string

	EventLogBackend string
	MinBreakMinutes int
	ReportTimezone  string

	GoogleServiceAccountEmail string
	GoogleServiceAccountKey   string
	GoogleSpreadsheetID       string
	GoogleSheetsTabName       string

	SheetRelayInterval time.Duration
}

const (
	EventLogBackendPostgres = "postgres"
	EventLogBackendSheets   = "sheets"
)

func Load() (Config, error) {
	// Local runs keep settings in .env; a missing file is not an error.
	_ = godotenv.Load()

	service := os.Getenv("SERVICE_NAME")
	if service == "" {
		service = "timeclock"
	}

	port := os.Getenv("HTTP_PORT")
	if port == "" {
		port = "8080"
	}

	backend := strings.TrimSpace(strings.ToLower(os.Getenv("EVENT_LOG_BACKEND")))
	if backend == "" {
		backend = EventLogBackendPostgres
	}

	timezone := strings.TrimSpace(os.Getenv("REPORT_TIMEZONE"))
	if timezone == "" {
		timezone = "America/Sao_Paulo"
	}

	tabName := strings.TrimSpace(os.Getenv("GOOGLE_SHEETS_TAB_NAME"))
	if tabName == "" {
		tabName = "Attendance"
	}

	return Config{
		ServiceName: service,
		HTTPPort:    port,
		PostgresDSN: os.Getenv("POSTGRES_DSN"),

		EventLogBackend: backend,
		MinBreakMinutes: envInt("BREAK_MIN_MINUTES", 20),
		ReportTimezone:  timezone,

		GoogleServiceAccountEmail: os.Getenv("GOOGLE_SERVICE_ACCOUNT_EMAIL"),
		GoogleServiceAccountKey:   os.Getenv("GOOGLE_SERVICE_ACCOUNT_PRIVATE_KEY"),
		GoogleSpreadsheetID:       os.Getenv("GOOGLE_SHEETS_SPREADSHEET_ID"),
		GoogleSheetsTabName:       tabName,

		SheetRelayInterval: time.Duration(envInt("SHEET_RELAY_INTERVAL_SECONDS", 60)) * time.Second,
	}, nil
}

func envInt(name string, fallback int) int {
	raw := strings.TrimSpace(os.Getenv(name))
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil || value <= 0 {
		return fallback
	}
	return value
}
