package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	directoryerrors "timeclock/contexts/workforce/directory-service/domain/errors"
	directoryhttp "timeclock/contexts/workforce/directory-service/transport/http"
)

func writeDirectoryError(w http.ResponseWriter, status int, code string, message string) {
	writeJSON(w, status, directoryhttp.ErrorResponse{Code: code, Message: message})
}

func (s *Server) writeDirectoryDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, directoryerrors.ErrProfileNotFound):
		writeDirectoryError(w, http.StatusNotFound, "not_found", err.Error())
	case errors.Is(err, directoryerrors.ErrEmailTaken),
		errors.Is(err, directoryerrors.ErrAlreadyInTargetState):
		writeDirectoryError(w, http.StatusConflict, "conflict", err.Error())
	case errors.Is(err, directoryerrors.ErrInvalidProfile),
		errors.Is(err, directoryerrors.ErrUnsupportedRole):
		writeDirectoryError(w, http.StatusBadRequest, "invalid_request", err.Error())
	default:
		s.logger.Error("directory request failed",
			"event", "directory_request_failed",
			"module", "internal/platform/httpserver",
			"layer", "platform",
			"error", err.Error(),
		)
		writeDirectoryError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}

func (s *Server) handleCreateProfile(w http.ResponseWriter, r *http.Request) {
	var req directoryhttp.CreateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeDirectoryError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}

	resp, err := s.directory.Handler.CreateProfileHandler(r.Context(), req)
	if err != nil {
		s.writeDirectoryDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleListProfiles(w http.ResponseWriter, r *http.Request) {
	resp, err := s.directory.Handler.ListProfilesHandler(r.Context())
	if err != nil {
		s.writeDirectoryDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleGetProfile(w http.ResponseWriter, r *http.Request) {
	userID := strings.TrimSpace(r.PathValue("user_id"))
	resp, err := s.directory.Handler.GetProfileHandler(r.Context(), userID)
	if err != nil {
		s.writeDirectoryDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	userID := strings.TrimSpace(r.PathValue("user_id"))

	var req directoryhttp.UpdateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeDirectoryError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}

	resp, err := s.directory.Handler.UpdateProfileHandler(r.Context(), userID, req)
	if err != nil {
		s.writeDirectoryDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleDeactivateProfile(w http.ResponseWriter, r *http.Request) {
	s.handleSetActive(w, r, false)
}

func (s *Server) handleReactivateProfile(w http.ResponseWriter, r *http.Request) {
	s.handleSetActive(w, r, true)
}

func (s *Server) handleSetActive(w http.ResponseWriter, r *http.Request, active bool) {
	userID := strings.TrimSpace(r.PathValue("user_id"))
	resp, err := s.directory.Handler.SetActiveHandler(r.Context(), userID, active)
	if err != nil {
		s.writeDirectoryDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}
