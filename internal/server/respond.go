package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"adra/pkg/types"
)

type errorResponse struct {
	Error string `json:"error"`
	// Code distinguishes machine-handled cases, notably no_session vs
	// invalid_session so the UI knows when to prompt a login.
	Code string `json:"code,omitempty"`
}

func (s *Service) respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.WithError(err).Error("failed to encode response")
	}
}

// respondError maps the domain sentinels onto HTTP statuses. Anything not
// recognized is an unexpected failure: logged and returned as an opaque 500,
// never as one of the session errors.
func (s *Service) respondError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, types.ErrNoSession):
		s.respondJSON(w, http.StatusUnauthorized, errorResponse{Error: err.Error(), Code: "no_session"})
	case errors.Is(err, types.ErrInvalidSession):
		s.respondJSON(w, http.StatusUnauthorized, errorResponse{Error: err.Error(), Code: "invalid_session"})
	case errors.Is(err, types.ErrInvalidCredentials):
		s.respondJSON(w, http.StatusUnauthorized, errorResponse{Error: err.Error(), Code: "invalid_credentials"})
	case errors.Is(err, types.ErrBeneficiaryNotFound),
		errors.Is(err, types.ErrDonationNotFound),
		errors.Is(err, types.ErrRequestNotFound):
		s.respondJSON(w, http.StatusNotFound, errorResponse{Error: err.Error()})
	case errors.Is(err, types.ErrDuplicateContact),
		errors.Is(err, types.ErrInvalidState),
		errors.Is(err, types.ErrAlreadyVerified):
		s.respondJSON(w, http.StatusConflict, errorResponse{Error: err.Error()})
	case errors.Is(err, types.ErrValidation),
		errors.Is(err, types.ErrEmptyReason),
		errors.Is(err, types.ErrInvalidCode),
		errors.Is(err, types.ErrCodeExpired),
		errors.Is(err, types.ErrInvalidDonationStatus):
		s.respondJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
	case errors.Is(err, types.ErrRateLimited):
		s.respondJSON(w, http.StatusTooManyRequests, errorResponse{Error: err.Error()})
	case errors.Is(err, types.ErrBeneficiaryNotEligible):
		s.respondJSON(w, http.StatusForbidden, errorResponse{Error: err.Error()})
	default:
		s.logger.WithError(err).Error("unexpected failure")
		s.respondJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal server error"})
	}
}

func (s *Service) decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		s.respondJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return false
	}
	return true
}

func (s *Service) decodeFilter(w http.ResponseWriter, r *http.Request) (types.ListFilter, bool) {
	var filter types.ListFilter
	if err := queryDecoder.Decode(&filter, r.URL.Query()); err != nil {
		s.respondJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid query parameters"})
		return types.ListFilter{}, false
	}
	return filter, true
}
