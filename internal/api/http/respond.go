package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"juntaai-backend/internal/domain"
	"juntaai-backend/internal/logger"
	"juntaai-backend/internal/money"
)

type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
	// GroupID accompanies owner_enrollment_failed: the group that already
	// exists and should be joined on retry.
	GroupID string `json:"group_id,omitempty"`
}

func respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload != nil {
		if err := json.NewEncoder(w).Encode(payload); err != nil {
			logger.Error("failed to encode response", "error", err)
		}
	}
}

// respondError maps the typed failure taxonomy onto HTTP statuses. Unknown
// errors are logged and masked as 500.
func respondError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidAmount) || errors.Is(err, money.ErrInvalidAmount):
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error(), Code: "invalid_amount"})
	case errors.Is(err, domain.ErrValidation):
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error(), Code: "validation_failed"})
	case errors.Is(err, domain.ErrUnauthorized):
		respondJSON(w, http.StatusForbidden, errorResponse{Error: err.Error(), Code: "unauthorized"})
	case errors.Is(err, domain.ErrNotFound):
		respondJSON(w, http.StatusNotFound, errorResponse{Error: err.Error(), Code: "not_found"})
	case errors.Is(err, domain.ErrInvalidTransition):
		respondJSON(w, http.StatusConflict, errorResponse{Error: err.Error(), Code: "invalid_transition"})
	case errors.Is(err, domain.ErrAlreadyMember):
		respondJSON(w, http.StatusConflict, errorResponse{Error: err.Error(), Code: "already_member"})
	case errors.Is(err, domain.ErrOwnerEnrollmentFailed):
		// Distinct code so the caller retries enrollment, not group creation.
		resp := errorResponse{Error: err.Error(), Code: "owner_enrollment_failed"}
		var enrollErr *domain.OwnerEnrollmentError
		if errors.As(err, &enrollErr) {
			resp.GroupID = enrollErr.GroupID
		}
		respondJSON(w, http.StatusInternalServerError, resp)
	case errors.Is(err, domain.ErrUpstreamUnavailable):
		respondJSON(w, http.StatusServiceUnavailable, errorResponse{Error: err.Error(), Code: "upstream_unavailable"})
	default:
		logger.Error("internal error", "error", err)
		respondJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal error", Code: "internal"})
	}
}

func decodeBody(r *http.Request, dst any) error {
	defer r.Body.Close()
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return domain.ErrValidation
	}
	return nil
}
