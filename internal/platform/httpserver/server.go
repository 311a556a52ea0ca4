package httpserver

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	httpSwagger "github.com/swaggo/http-swagger"

	attendanceservice "timeclock/contexts/workforce/attendance-service"
	directoryservice "timeclock/contexts/workforce/directory-service"
	_ "timeclock/internal/platform/httpserver/docs"
)

type Server struct {
	mux        *http.ServeMux
	logger     *slog.Logger
	addr       string
	attendance attendanceservice.Module
	directory  directoryservice.Module
}

func New(
	attendance attendanceservice.Module,
	directory directoryservice.Module,
	logger *slog.Logger,
	addr string,
) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	if addr == "" {
		addr = ":8080"
	}

	s := &Server{
		mux:        http.NewServeMux(),
		logger:     logger,
		addr:       addr,
		attendance: attendance,
		directory:  directory,
	}
	s.registerRoutes()
	return s
}

func (s *Server) Start() error {
	s.logger.Info("http server starting",
		"event", "http_server_starting",
		"module", "internal/platform/httpserver",
		"layer", "platform",
		"addr", s.addr,
	)
	return http.ListenAndServe(s.addr, s.mux)
}

func (s *Server) registerRoutes() {
	s.mux.Handle("/swagger/", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	s.mux.HandleFunc("POST /api/attendance/v1/events", s.handleRecordEvent)
	s.mux.HandleFunc("GET /api/attendance/v1/events", s.handleListEvents)
	s.mux.HandleFunc("GET /api/attendance/v1/reports", s.handleBuildReport)
	s.mux.HandleFunc("GET /api/attendance/v1/reports/export", s.handleExportReport)

	s.mux.HandleFunc("POST /api/directory/v1/employees", s.handleCreateProfile)
	s.mux.HandleFunc("GET /api/directory/v1/employees", s.handleListProfiles)
	s.mux.HandleFunc("GET /api/directory/v1/employees/{user_id}", s.handleGetProfile)
	s.mux.HandleFunc("PUT /api/directory/v1/employees/{user_id}", s.handleUpdateProfile)
	s.mux.HandleFunc("POST /api/directory/v1/employees/{user_id}/deactivate", s.handleDeactivateProfile)
	s.mux.HandleFunc("POST /api/directory/v1/employees/{user_id}/reactivate", s.handleReactivateProfile)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

// parseTimeParam accepts RFC3339 instants or bare dates for range filters.
func parseTimeParam(raw string) (*time.Time, bool) {
	if raw == "" {
		return nil, true
	}
	if parsed, err := time.Parse(time.RFC3339, raw); err == nil {
		utc := parsed.UTC()
		return &utc, true
	}
	if parsed, err := time.Parse("2006-01-02", raw); err == nil {
		utc := parsed.UTC()
		return &utc, true
	}
	return nil, false
}
