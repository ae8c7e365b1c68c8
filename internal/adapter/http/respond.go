package httpadapter

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"campaign-optimizer/internal/core/port"
)

type errorBody struct {
	Error    string   `json:"error"`
	Details  []string `json:"details,omitempty"`
	Warnings []string `json:"warnings,omitempty"`
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.logger.Error("encode response error", slog.Any("error", err))
	}
}

// writeError maps core errors onto status codes. Anything unrecognised is
// logged and reported as a generic 500.
func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	var verr *port.ValidationError
	switch {
	case errors.As(err, &verr):
		h.writeJSON(w, http.StatusUnprocessableEntity, errorBody{
			Error: port.ErrValidationFailed.Error(), Details: verr.Errors, Warnings: verr.Warnings,
		})
	case errors.Is(err, port.ErrCampaignNotFound), errors.Is(err, port.ErrOptimizationNotFound):
		h.writeJSON(w, http.StatusNotFound, errorBody{Error: err.Error()})
	case errors.Is(err, port.ErrOptimizationInProgress),
		errors.Is(err, port.ErrInvalidTransition),
		errors.Is(err, port.ErrNotCompleted),
		errors.Is(err, port.ErrLockNotAcquired):
		h.writeJSON(w, http.StatusConflict, errorBody{Error: err.Error()})
	default:
		h.logger.Error("request failed",
			slog.String("method", r.Method), slog.String("path", r.URL.Path), slog.Any("error", err))
		h.writeJSON(w, http.StatusInternalServerError, errorBody{Error: "internal error"})
	}
}

func decodeBody(r *http.Request, v any) error {
	if r.Body == nil || r.ContentLength == 0 {
		return nil
	}
	return json.NewDecoder(r.Body).Decode(v)
}
