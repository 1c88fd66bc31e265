package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/rs/zerolog/log"

	"adminconsole/internal/core/listresource"
	"adminconsole/internal/services/screen"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("failed to encode response")
	}
}

// decodeBody decodes an optional JSON body. An empty body leaves v untouched.
func decodeBody(r *http.Request, v any) error {
	if r.Body == nil {
		return nil
	}
	err := json.NewDecoder(r.Body).Decode(v)
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}

// statusFor maps lookup and modal errors to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, screen.ErrSessionNotFound),
		errors.Is(err, screen.ErrUnknownScreen),
		errors.Is(err, screen.ErrItemNotVisible),
		errors.Is(err, listresource.ErrUnknownSlot):
		return http.StatusNotFound
	case errors.Is(err, listresource.ErrSubjectRequired):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func fail(w http.ResponseWriter, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		log.Error().Err(err).Msg("console request failed")
		http.Error(w, "internal error", status)
		return
	}
	http.Error(w, err.Error(), status)
}
