package gateway

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"

	"agent-bridge/internal/relay"
)

type errorResponse struct {
	Error string `json:"error"`
}

// errorStatuses is checked in order; anything unmatched is a 500.
var errorStatuses = []struct {
	match  func(error) bool
	status int
}{
	{
		match:  func(err error) bool { return errors.Is(err, relay.ErrValidation) },
		status: http.StatusBadRequest,
	},
	{
		match: func(err error) bool {
			var tooLarge *http.MaxBytesError
			return errors.As(err, &tooLarge)
		},
		status: http.StatusRequestEntityTooLarge,
	},
}

func statusFor(err error) int {
	for _, e := range errorStatuses {
		if e.match(err) {
			return e.status
		}
	}
	return http.StatusInternalServerError
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		s.log.Error("request failed",
			"method", r.Method,
			"path", r.URL.Path,
			"request_id", requestID(r.Context()),
			"error", err)
	} else {
		s.log.Debug("request rejected",
			"path", r.URL.Path,
			"request_id", requestID(r.Context()),
			"status", status,
			"error", err)
	}
	s.writeJSON(w, r, status, errorResponse{Error: err.Error()})
}

// writeJSON encodes before writing the header so an encoding failure can
// still be reported as a 500.
func (s *Server) writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(v); err != nil {
		s.log.Error("encode response",
			"path", r.URL.Path,
			"request_id", requestID(r.Context()),
			"error", err)
		status = http.StatusInternalServerError
		buf.Reset()
		_ = json.NewEncoder(&buf).Encode(errorResponse{Error: "encode response: " + err.Error()})
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(buf.Bytes())
}
