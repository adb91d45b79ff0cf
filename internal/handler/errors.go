package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/pkordes/trip-planner/backend/internal/domain"
)

// Error codes carried in errorResponse.Code.
const (
	codeNotFound         = "not_found"
	codeAlreadyConfirmed = "already_confirmed"
	codeInvalidSchedule  = "invalid_schedule"
	codeValidation       = "validation_error"
	codeInternal         = "internal_error"
)

// errorResponse is the body of every failed request.
type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// subject names what a handler was operating on ("trip", "participant") so
// not-found and already-confirmed messages can say what was missing.
type subject string

// writeError classifies err and writes the matching response. Every domain
// failure is a 400; anything else is logged and reported as a 500 without
// leaking internals.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, what subject, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		writeJSON(w, http.StatusBadRequest, errorResponse{Code: codeNotFound, Message: string(what) + " not found"})
	case errors.Is(err, domain.ErrAlreadyConfirmed):
		writeJSON(w, http.StatusBadRequest, errorResponse{Code: codeAlreadyConfirmed, Message: string(what) + " already confirmed"})
	case errors.Is(err, domain.ErrInvalidSchedule):
		writeJSON(w, http.StatusBadRequest, errorResponse{Code: codeInvalidSchedule, Message: unwrapMessage(err, domain.ErrInvalidSchedule)})
	case errors.Is(err, domain.ErrValidation):
		writeJSON(w, http.StatusBadRequest, errorResponse{Code: codeValidation, Message: unwrapMessage(err, domain.ErrValidation)})
	default:
		s.log.ErrorContext(r.Context(), "request failed",
			"method", r.Method,
			"path", r.URL.Path,
			"request_id", chimiddleware.GetReqID(r.Context()),
			"error", err,
		)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Code: codeInternal, Message: "internal server error"})
	}
}

// unwrapMessage extracts the human-readable part following a wrapped sentinel.
// e.g. "service.LinkService.Create: validation error: url must be ..." → "url must be ..."
func unwrapMessage(err, sentinel error) string {
	msg := err.Error()
	if _, detail, ok := strings.Cut(msg, sentinel.Error()+": "); ok {
		return detail
	}
	return sentinel.Error()
}

// writeJSON encodes v before committing the status, so a value that cannot be
// encoded turns into a 500 instead of a success with an empty body.
func writeJSON(w http.ResponseWriter, status int, v any) {
	body, err := json.Marshal(v)
	if err != nil {
		slog.Error("encode response", "error", err)
		status = http.StatusInternalServerError
		body, _ = json.Marshal(errorResponse{Code: codeInternal, Message: "internal server error"})
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(append(body, '\n'))
}
