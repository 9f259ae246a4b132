package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/hayder75/clinic-core/internal/services"
	"github.com/hayder75/clinic-core/internal/workflow"
	"github.com/rs/zerolog/log"
)

type errorResponse struct {
	Error    string   `json:"error"`
	Errors   []string `json:"errors,omitempty"`
	Warnings any      `json:"warnings,omitempty"`
	Confirm  bool     `json:"confirmation_required,omitempty"`
}

// respondJSON writes a JSON body with the given status
func respondJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if body != nil {
		if err := json.NewEncoder(w).Encode(body); err != nil {
			log.Error().Err(err).Msg("Failed to encode response")
		}
	}
}

// respondError maps service errors onto HTTP statuses. Validation warnings
// that only need confirmation come back as 422 with the warning list so the
// client can re-submit with acknowledge_warnings.
func respondError(w http.ResponseWriter, err error) {
	var transition *workflow.ErrTransition
	var validation *services.ValidationError

	switch {
	case errors.Is(err, services.ErrNotFound):
		respondJSON(w, http.StatusNotFound, errorResponse{Error: "not found"})
	case errors.Is(err, services.ErrConflict):
		respondJSON(w, http.StatusConflict, errorResponse{Error: err.Error()})
	case errors.As(err, &transition):
		respondJSON(w, http.StatusConflict, errorResponse{Error: transition.Error()})
	case errors.As(err, &validation):
		if !validation.Result.OK() {
			respondJSON(w, http.StatusBadRequest, errorResponse{
				Error:    "validation failed",
				Errors:   validation.Result.Errors,
				Warnings: validation.Result.Warnings,
			})
			return
		}
		respondJSON(w, http.StatusUnprocessableEntity, errorResponse{
			Error:    "values out of expected range",
			Warnings: validation.Result.Warnings,
			Confirm:  true,
		})
	case errors.Is(err, services.ErrInsufficientFunds):
		respondJSON(w, http.StatusConflict, errorResponse{Error: err.Error()})
	case errors.Is(err, services.ErrInvalid):
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
	case errors.Is(err, services.ErrForbidden):
		respondJSON(w, http.StatusForbidden, errorResponse{Error: "forbidden"})
	case errors.Is(err, services.ErrUnauthorized):
		respondJSON(w, http.StatusUnauthorized, errorResponse{Error: "invalid credentials"})
	default:
		log.Error().Err(err).Msg("Unhandled service error")
		respondJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal error"})
	}
}

// decodeBody decodes a JSON request body
func decodeBody(r *http.Request, dst interface{}) error {
	return json.NewDecoder(r.Body).Decode(dst)
}

// queryInt parses an integer query parameter, defaulting to 0
func queryInt(r *http.Request, name string) int {
	v := r.URL.Query().Get(name)
	if v == "" {
		return 0
	}
	n, _ := strconv.Atoi(v)
	return n
}
