package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/thunderstroke325/mage-ai/internal/store"
	"github.com/thunderstroke325/mage-ai/pkg/cleaner"
	"github.com/thunderstroke325/mage-ai/pkg/transformer"
)

// errorEnvelope is the uniform error body: {"error": {...}}.
type errorEnvelope struct {
	Error errorBody `json:"error"`
}

type errorBody struct {
	Code       int    `json:"code"`
	Type       string `json:"type"`
	Message    string `json:"message"`
	Identifier string `json:"identifier,omitempty"`
}

func (s *Server) respondJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		s.logger.Error("encode response", "error", err)
	}
}

// respondError maps the core's typed errors onto HTTP statuses: contract
// violations are bad requests, unresolved actions are unprocessable, and
// missing entities are 404s.
func (s *Server) respondError(w http.ResponseWriter, err error) {
	body := errorBody{
		Code:    http.StatusInternalServerError,
		Type:    "internal",
		Message: err.Error(),
	}

	var contractErr *cleaner.ContractError
	var resolutionErr *transformer.ResolutionError
	var notFoundErr *store.NotFoundError
	switch {
	case errors.As(err, &contractErr):
		body.Code = http.StatusBadRequest
		body.Type = "data_contract"
		body.Identifier = contractErr.Identifier
	case errors.As(err, &resolutionErr):
		body.Code = http.StatusUnprocessableEntity
		body.Type = "resolution"
		body.Identifier = resolutionErr.Column
	case errors.As(err, &notFoundErr):
		body.Code = http.StatusNotFound
		body.Type = "not_found"
		body.Identifier = notFoundErr.ID
	}

	s.logger.Error("request failed", "type", body.Type, "error", err)
	s.respondJSON(w, body.Code, errorEnvelope{Error: body})
}
