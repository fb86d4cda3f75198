package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/nudgecli/nudge/common"
	"github.com/nudgecli/nudge/internal/osched"
)

// Error is the JSON body of every failed request.
type Error struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

// classify maps an error to its HTTP status and kind.
func classify(err error) (int, string) {
	switch {
	case common.IsParse(err):
		return http.StatusBadRequest, "parse"
	case common.IsValidation(err):
		return http.StatusBadRequest, "validation"
	case errors.Is(err, osched.ErrUnknownReminder):
		return http.StatusNotFound, "not_found"
	case common.IsUnsupportedPlatform(err):
		return http.StatusNotImplemented, "unsupported_platform"
	case common.IsGeneration(err):
		return http.StatusBadGateway, "generation"
	case common.IsSend(err):
		return http.StatusBadGateway, "send"
	case common.IsScheduling(err):
		return http.StatusBadGateway, "scheduling"
	case errors.Is(err, errNotConfigured):
		return http.StatusServiceUnavailable, "not_configured"
	default:
		return http.StatusInternalServerError, "internal"
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status, kind := classify(err)
	if status >= http.StatusInternalServerError {
		s.log.Error("server: %s %s: %v", r.Method, r.URL.Path, err)
	} else {
		s.log.Warning("server: %s %s: %v", r.Method, r.URL.Path, err)
	}
	writeJSON(w, status, Error{Kind: kind, Message: err.Error()})
}
