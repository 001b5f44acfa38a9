package dashboard

import (
	"encoding/json"
	"net/http"

	"sentinel/pkg/errors"
)

// ErrorResponse is the body of every failed request
type ErrorResponse struct {
	Error string `json:"error"`
	Field string `json:"field,omitempty"`
}

// StatusCode maps domain errors onto HTTP status codes
func StatusCode(err error) int {
	switch {
	case errors.Is(err, errors.ErrInvalidInput), errors.Is(err, errors.ErrUnknownAction):
		return http.StatusBadRequest
	case errors.Is(err, errors.ErrNotFound), errors.Is(err, errors.ErrSessionNotFound):
		return http.StatusNotFound
	case errors.Is(err, errors.ErrRateLimitExceeded):
		return http.StatusTooManyRequests
	case errors.Is(err, errors.ErrFetchFailed):
		return http.StatusBadGateway
	case errors.Is(err, errors.ErrUnavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, code int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	code := StatusCode(err)

	body := ErrorResponse{Error: err.Error()}
	var verr *errors.ValidationError
	if errors.As(err, &verr) {
		body.Field = verr.Field
	}

	if code >= http.StatusInternalServerError {
		h.log.Errorw("Request failed", "method", r.Method, "path", r.URL.Path, "error", err)
		if code != http.StatusBadGateway {
			body.Error = http.StatusText(code)
		}
	} else {
		h.log.Debugw("Request rejected", "method", r.Method, "path", r.URL.Path, "code", code, "error", err)
	}

	writeJSON(w, code, body)
}
