package web

// errors.go provides unified response helpers for the JSON API. Errors are
// logged server-side with the request ID and returned to clients as a small
// structured body.

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/statops/permitdesk/internal/logging"
	"github.com/statops/permitdesk/internal/store"
	"github.com/statops/permitdesk/internal/tabular"
)

// ErrorResponse is the JSON body for all error responses.
type ErrorResponse struct {
	Error string `json:"error"`
}

// respondJSON writes a JSON response with the given status.
func respondJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

// respondError logs the error and writes it as a JSON body. Known error
// kinds pick their own status: decode failures are 422, missing records 404.
func (s *Server) respondError(w http.ResponseWriter, r *http.Request, err error, status int) {
	var decodeErr *tabular.DecodeError
	switch {
	case errors.As(err, &decodeErr):
		status = http.StatusUnprocessableEntity
	case errors.Is(err, store.ErrNotFound):
		status = http.StatusNotFound
	}

	logging.FromContext(r.Context()).Error("request error",
		"path", r.URL.Path,
		"method", r.Method,
		"status", status,
		"error", err.Error(),
	)

	respondJSON(w, status, ErrorResponse{Error: err.Error()})
}
