package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/parfumdelite/backend/internal/models"
	"github.com/parfumdelite/backend/internal/security"
)

type errorResponse struct {
	Message string `json:"message"`
}

func respondJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		_ = json.NewEncoder(w).Encode(v)
	}
}

// respondError maps a service error to a status code and a fixed,
// non-leaking message. Password policy violations are the one case whose
// text is surfaced to the caller.
func respondError(w http.ResponseWriter, err error) {
	respondJSON(w, statusFromError(err), errorResponse{Message: messageFor(err)})
}

func statusFromError(err error) int {
	switch {
	case errors.Is(err, models.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, models.ErrInvalidCredentials):
		return http.StatusUnauthorized
	case errors.Is(err, models.ErrForbidden), errors.Is(err, models.ErrAccountSuspended):
		return http.StatusForbidden
	case errors.Is(err, models.ErrDataNotFound):
		return http.StatusNotFound
	case errors.Is(err, models.ErrConflictData):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func messageFor(err error) string {
	switch {
	case errors.Is(err, security.ErrPasswordTooShort):
		return security.ErrPasswordTooShort.Error()
	case errors.Is(err, security.ErrPasswordTooCommon):
		return security.ErrPasswordTooCommon.Error()
	case errors.Is(err, models.ErrValidation):
		return "Invalid request"
	case errors.Is(err, models.ErrInvalidCredentials):
		return "Invalid login or password"
	case errors.Is(err, models.ErrAccountSuspended):
		return "Account is suspended"
	case errors.Is(err, models.ErrForbidden):
		return "Forbidden"
	case errors.Is(err, models.ErrDataNotFound):
		return "Not found"
	case errors.Is(err, models.ErrConflictData):
		return "Conflict"
	default:
		return "Internal server error"
	}
}
