package rest

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/sujay090/Dynamic-form-sub001/internal/domain"
)

type errorResponse struct {
	Error      string              `json:"error"`
	Fields     []domain.FieldError `json:"fields,omitempty"`
	Field      string              `json:"field,omitempty"`
	ExistingID string              `json:"existingId,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}

// handleError maps domain errors to HTTP responses. Unknown errors are
// logged and answered with 500.
func handleError(log *slog.Logger, w http.ResponseWriter, r *http.Request, err error) {
	var (
		verr *domain.ValidationError
		derr *domain.FieldDefinitionError
		dup  *domain.DuplicateEntityError
	)
	switch {
	case errors.As(err, &verr):
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "validation failed", Fields: verr.Errors})
	case errors.As(err, &derr):
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid field definition", Fields: derr.Errors})
	case errors.As(err, &dup):
		writeJSON(w, http.StatusConflict, errorResponse{Error: dup.Error(), Field: dup.Field, ExistingID: dup.ExistingID})
	case errors.Is(err, domain.ErrValidation), errors.Is(err, domain.ErrEmptyName):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, "not found")
	case errors.Is(err, domain.ErrAlreadyExists), errors.Is(err, domain.ErrDuplicateEntity):
		writeError(w, http.StatusConflict, "already exists")
	case errors.Is(err, domain.ErrUnauthorized):
		writeError(w, http.StatusUnauthorized, "unauthorized")
	case errors.Is(err, domain.ErrForbidden):
		writeError(w, http.StatusForbidden, "admin access required")
	case errors.Is(err, domain.ErrPersistenceUnavailable):
		log.WarnContext(r.Context(), "persistence unavailable", slog.String("error", err.Error()))
		writeError(w, http.StatusServiceUnavailable, "storage temporarily unavailable")
	default:
		log.ErrorContext(r.Context(), "internal error", slog.String("error", err.Error()))
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}
