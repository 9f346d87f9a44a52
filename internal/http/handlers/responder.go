package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/mito-shogi/wars-kif-service/internal/app/games"
	"github.com/mito-shogi/wars-kif-service/internal/apperr"
	"github.com/mito-shogi/wars-kif-service/internal/http/middleware"
	"github.com/mito-shogi/wars-kif-service/internal/logging"
	"github.com/mito-shogi/wars-kif-service/internal/providers"
	"github.com/mito-shogi/wars-kif-service/internal/validate"
)

// errorBody is the JSON shape of every error response.
type errorBody struct {
	Error      string               `json:"error"`
	Kind       string               `json:"kind,omitempty"`
	RequestID  string               `json:"request_id,omitempty"`
	Violations []validate.Violation `json:"violations,omitempty"`
}

var errorKinds = []error{
	apperr.ErrStructuralMismatch,
	apperr.ErrBadUpstreamFormat,
	apperr.ErrValidation,
	apperr.ErrMoveLogCorrupt,
	apperr.ErrPositionParse,
	apperr.ErrMoveParse,
	apperr.ErrIllegalMove,
}

func writeJSON(w http.ResponseWriter, status int, payload any, logger *slog.Logger) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil && logger != nil {
		logger.Error("failed to encode response", logging.FieldError, err)
	}
}

func writeText(w http.ResponseWriter, status int, contentType, body string) {
	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(status)
	_, _ = w.Write([]byte(body))
}

func writeError(w http.ResponseWriter, r *http.Request, status int, message string, logger *slog.Logger) {
	writeJSON(w, status, errorBody{Error: message, RequestID: requestID(r)}, logger)
}

// writeServiceError maps a service error onto a status code. Payloads the
// pipeline rejects are 422; upstream failures are 502, or 404 when the
// upstream itself said so.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error, logger *slog.Logger) {
	logger = loggerFromContext(r, logger)
	body := errorBody{Error: err.Error(), RequestID: requestID(r)}

	var status int
	switch {
	case apperr.IsInputRejection(err):
		status = http.StatusUnprocessableEntity
		body.Kind = errorKind(err)
		var vErr *validate.ValidationError
		if errors.As(err, &vErr) {
			body.Violations = vErr.Violations
		}
	case errors.Is(err, providers.ErrProviderUnavailable):
		status = http.StatusServiceUnavailable
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		status = http.StatusGatewayTimeout
	case games.IsUpstreamError(err):
		status = http.StatusBadGateway
		if stErr, ok := providers.AsStatusError(err); ok && stErr.StatusCode == http.StatusNotFound {
			status = http.StatusNotFound
		}
		if rlErr, ok := providers.AsRateLimitError(err); ok {
			status = http.StatusServiceUnavailable
			if rlErr.RetryAfter > 0 {
				w.Header().Set("Retry-After", strconv.Itoa(int(rlErr.RetryAfter.Seconds())))
			}
		}
	default:
		status = http.StatusBadGateway
	}

	if status >= http.StatusInternalServerError {
		logging.Error(logger, "request failed", err, logging.FieldStatusCode, status)
	} else {
		logging.Warn(logger, "request rejected", logging.FieldStatusCode, status, logging.FieldError, err)
	}
	writeJSON(w, status, body, logger)
}

func errorKind(err error) string {
	for _, kind := range errorKinds {
		if errors.Is(err, kind) {
			return kind.Error()
		}
	}
	return ""
}

func requestID(r *http.Request) string {
	reqID := middleware.RequestIDFromContext(r.Context())
	if reqID == "" {
		reqID = r.Header.Get("X-Request-ID")
	}
	return reqID
}

func loggerFromContext(r *http.Request, fallback *slog.Logger) *slog.Logger {
	if r == nil {
		return fallback
	}
	return logging.FromContext(r.Context(), fallback)
}
