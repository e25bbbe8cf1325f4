package server

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/jonathan/resume-editor/internal/types"
)

// handleNormalizeTitle maps a free-form job title to up to three standard titles.
func (s *Server) handleNormalizeTitle(w http.ResponseWriter, r *http.Request) {
	if s.titles == nil {
		s.errorFor(w, &ErrUnavailable{Feature: "title normalization"})
		return
	}

	var req types.NormalizeTitleRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.errorFor(w, err)
		return
	}
	if err := req.Validate(); err != nil {
		s.errorFor(w, validationError(err))
		return
	}

	terms, err := s.titles.Normalize(r.Context(), req.Title)
	if err != nil {
		s.logger.Warn("title normalization failed", zap.String("title", req.Title), zap.Error(err))
		s.errorFor(w, err)
		return
	}

	s.jsonResponse(w, http.StatusOK, types.NormalizeTitleResponse{Success: true, Terms: terms})
}
