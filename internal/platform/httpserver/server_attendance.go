package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	attendanceerrors "timeclock/contexts/workforce/attendance-service/domain/errors"
	attendancehttp "timeclock/contexts/workforce/attendance-service/transport/http"
)

func writeAttendanceError(w http.ResponseWriter, status int, code string, message string) {
	writeJSON(w, status, attendancehttp.ErrorResponse{Code: code, Message: message})
}

func (s *Server) writeAttendanceDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, attendanceerrors.ErrUserNotFound):
		writeAttendanceError(w, http.StatusNotFound, "not_found", err.Error())
	case errors.Is(err, attendanceerrors.ErrUserInactive),
		errors.Is(err, attendanceerrors.ErrReportAccessDenied):
		writeAttendanceError(w, http.StatusForbidden, "forbidden", err.Error())
	case errors.Is(err, attendanceerrors.ErrInvalidEventType),
		errors.Is(err, attendanceerrors.ErrMissingEvidence),
		errors.Is(err, attendanceerrors.ErrNoOpenBreak),
		errors.Is(err, attendanceerrors.ErrBreakTooShort):
		writeAttendanceError(w, http.StatusBadRequest, "invalid_request", err.Error())
	default:
		// Infrastructure failures keep their detail in the log, never in
		// the response body.
		s.logger.Error("attendance request failed",
			"event", "attendance_request_failed",
			"module", "internal/platform/httpserver",
			"layer", "platform",
			"error", err.Error(),
		)
		writeAttendanceError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}

func requireAttendanceUser(w http.ResponseWriter, r *http.Request) (string, bool) {
	userID := strings.TrimSpace(r.Header.Get("X-User-Id"))
	if userID == "" {
		writeAttendanceError(w, http.StatusUnauthorized, "missing_user", "X-User-Id header is required")
		return "", false
	}
	return userID, true
}

func (s *Server) handleRecordEvent(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireAttendanceUser(w, r)
	if !ok {
		return
	}

	var req attendancehttp.RecordEventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeAttendanceError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}

	resp, err := s.attendance.Handler.RecordEventHandler(r.Context(), userID, req)
	if err != nil {
		s.writeAttendanceDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleListEvents(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireAttendanceUser(w, r)
	if !ok {
		return
	}

	query := r.URL.Query()
	from, ok := parseTimeParam(query.Get("from"))
	if !ok {
		writeAttendanceError(w, http.StatusBadRequest, "invalid_range", "from must be RFC3339 or YYYY-MM-DD")
		return
	}
	to, ok := parseTimeParam(query.Get("to"))
	if !ok {
		writeAttendanceError(w, http.StatusBadRequest, "invalid_range", "to must be RFC3339 or YYYY-MM-DD")
		return
	}

	resp, err := s.attendance.Handler.ListEventsHandler(r.Context(), userID, from, to)
	if err != nil {
		s.writeAttendanceDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleBuildReport(w http.ResponseWriter, r *http.Request) {
	requesterID, ok := requireAttendanceUser(w, r)
	if !ok {
		return
	}

	query := r.URL.Query()
	from, ok := parseTimeParam(query.Get("from"))
	if !ok {
		writeAttendanceError(w, http.StatusBadRequest, "invalid_range", "from must be RFC3339 or YYYY-MM-DD")
		return
	}
	to, ok := parseTimeParam(query.Get("to"))
	if !ok {
		writeAttendanceError(w, http.StatusBadRequest, "invalid_range", "to must be RFC3339 or YYYY-MM-DD")
		return
	}

	resp, err := s.attendance.Handler.BuildReportHandler(r.Context(), requesterID, query.Get("user_id"), from, to)
	if err != nil {
		s.writeAttendanceDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleExportReport(w http.ResponseWriter, r *http.Request) {
	requesterID, ok := requireAttendanceUser(w, r)
	if !ok {
		return
	}

	query := r.URL.Query()
	from, ok := parseTimeParam(query.Get("from"))
	if !ok {
		writeAttendanceError(w, http.StatusBadRequest, "invalid_range", "from must be RFC3339 or YYYY-MM-DD")
		return
	}
	to, ok := parseTimeParam(query.Get("to"))
	if !ok {
		writeAttendanceError(w, http.StatusBadRequest, "invalid_range", "to must be RFC3339 or YYYY-MM-DD")
		return
	}

	workbook, err := s.attendance.Handler.ExportReportHandler(r.Context(), requesterID, query.Get("user_id"), from, to)
	if err != nil {
		s.writeAttendanceDomainError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="attendance-report.xlsx"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(workbook)
}
