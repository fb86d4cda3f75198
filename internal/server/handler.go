package server

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/nudgecli/nudge/common"
	"github.com/nudgecli/nudge/internal/email"
	"github.com/nudgecli/nudge/internal/reminder"
)

const maxBodySize = 1 << 20

func decodeBody(r *http.Request, v any) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodySize))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return common.NewValidationError("body", fmt.Sprintf("invalid JSON: %v", err))
	}
	return nil
}

func (s *Server) createReminder(w http.ResponseWriter, r *http.Request) {
	var in reminder.Input
	if err := decodeBody(r, &in); err != nil {
		s.writeError(w, r, err)
		return
	}
	adapter, err := s.scheduler()
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	req, err := in.Resolve(r.Context(), s.deps.Parser, s.deps.Now())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	sr, err := adapter.Schedule(r.Context(), req)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, sr)
}

func (s *Server) cancelReminder(w http.ResponseWriter, r *http.Request) {
	adapter, err := s.scheduler()
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if err := adapter.Cancel(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) drafter() (email.Drafter, error) {
	if s.deps.Drafter == nil {
		return nil, fmt.Errorf("text generation is %w", errNotConfigured)
	}
	return s.deps.Drafter, nil
}

func (s *Server) sender() (email.Sender, error) {
	if s.deps.Sender == nil {
		return nil, fmt.Errorf("smtp is %w", errNotConfigured)
	}
	return s.deps.Sender, nil
}

func (s *Server) draftEmail(w http.ResponseWriter, r *http.Request) {
	var req email.GenerateRequest
	if err := decodeBody(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	d, err := s.drafter()
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	draft, err := d.Generate(r.Context(), req)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, draft)
}

func (s *Server) sendEmail(w http.ResponseWriter, r *http.Request) {
	var m email.Message
	if err := decodeBody(r, &m); err != nil {
		s.writeError(w, r, err)
		return
	}
	snd, err := s.sender()
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	res, err := snd.Send(r.Context(), m)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

type composeResponse struct {
	Draft   email.Draft `json:"draft"`
	Success bool        `json:"success"`
}

func (s *Server) composeEmail(w http.ResponseWriter, r *http.Request) {
	var req email.GenerateRequest
	if err := decodeBody(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	d, err := s.drafter()
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	snd, err := s.sender()
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	draft, res, err := email.Compose(r.Context(), d, snd, req)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, composeResponse{Draft: draft, Success: res.Success})
}
