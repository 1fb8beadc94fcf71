package server

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5/middleware"
	json "github.com/goccy/go-json"

	"github.com/sehha/chicalc/internal/backend"
	"github.com/sehha/chicalc/internal/breakeven"
	"github.com/sehha/chicalc/internal/calculation"
	"github.com/sehha/chicalc/internal/logging"
)

const maxRequestBody = 64 * 1024

var (
	errEmptyBody    = errors.New("request body is required")
	errBodyTooLarge = errors.New("request body too large")
)

// apiError is the JSON error envelope returned by every endpoint
type apiError struct {
	Code    string
	Message string
	Status  int
	Details map[string]any
}

func newError(code, message string, status int) apiError {
	if status == 0 {
		status = http.StatusInternalServerError
	}
	return apiError{Code: code, Message: sanitize(message, 512), Status: status}
}

func writeError(ctx context.Context, w http.ResponseWriter, e apiError) {
	payload := map[string]any{
		"error":   e.Code,
		"message": e.Message,
		"status":  e.Status,
	}
	if id := middleware.GetReqID(ctx); id != "" {
		payload["request_id"] = id
	}
	for k, v := range e.Details {
		payload[k] = v
	}
	writeJSON(w, e.Status, payload)
}

// writeCalcError maps calculator and backend errors to HTTP statuses
func writeCalcError(ctx context.Context, w http.ResponseWriter, err error) {
	var verr *calculation.ValidationError
	var statusErr *backend.StatusError
	switch {
	case errors.As(err, &verr):
		e := newError("invalid_input", err.Error(), http.StatusBadRequest)
		e.Details = map[string]any{"field": verr.Field}
		writeError(ctx, w, e)
	case errors.Is(err, calculation.ErrInvalidInput):
		writeError(ctx, w, newError("invalid_input", err.Error(), http.StatusBadRequest))
	case errors.Is(err, calculation.ErrUnknownReference):
		writeError(ctx, w, newError("not_found", err.Error(), http.StatusNotFound))
	case errors.Is(err, breakeven.ErrNoBreakEven):
		writeError(ctx, w, newError("no_break_even", err.Error(), http.StatusUnprocessableEntity))
	case errors.Is(err, backend.ErrInvalidNationalID):
		writeError(ctx, w, newError("invalid_input", err.Error(), http.StatusBadRequest))
	case errors.Is(err, backend.ErrNotConfigured):
		writeError(ctx, w, newError("backend_unavailable", "backend is not configured", http.StatusServiceUnavailable))
	case errors.As(err, &statusErr):
		logging.FromContext(ctx).Sugar().Warnf("backend status %d", statusErr.StatusCode)
		writeError(ctx, w, newError("backend_error", err.Error(), http.StatusBadGateway))
	case errors.Is(err, context.DeadlineExceeded):
		writeError(ctx, w, newError("timeout", "request timed out", http.StatusGatewayTimeout))
	default:
		logging.FromContext(ctx).Sugar().Errorf("unhandled error: %v", err)
		writeError(ctx, w, newError("backend_error", err.Error(), http.StatusBadGateway))
	}
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	data, err := json.Marshal(payload)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(append(data, '\n'))
}

func readLimitedBody(r *http.Request, limit int64) ([]byte, error) {
	if r == nil || r.Body == nil {
		return nil, errEmptyBody
	}
	data, err := io.ReadAll(io.LimitReader(r.Body, limit+1))
	if err != nil {
		return nil, err
	}
	if len(strings.TrimSpace(string(data))) == 0 {
		return nil, errEmptyBody
	}
	if int64(len(data)) > limit {
		return nil, errBodyTooLarge
	}
	return data, nil
}

// decodeBody reads and unmarshals a JSON request body, writing a 400/413 on failure
func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	body, err := readLimitedBody(r, maxRequestBody)
	if err != nil {
		status := http.StatusBadRequest
		if errors.Is(err, errBodyTooLarge) {
			status = http.StatusRequestEntityTooLarge
		}
		writeError(r.Context(), w, newError("invalid_request", err.Error(), status))
		return false
	}
	if err := json.Unmarshal(body, v); err != nil {
		writeError(r.Context(), w, newError("invalid_request", "request body must be valid JSON", http.StatusBadRequest))
		return false
	}
	return true
}

func sanitize(value string, limit int) string {
	value = strings.ReplaceAll(value, "\n", " ")
	value = strings.ReplaceAll(value, "\r", " ")
	value = strings.TrimSpace(value)
	if len(value) > limit {
		value = value[:limit]
	}
	return value
}
