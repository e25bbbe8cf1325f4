package server

import (
	"fmt"
	"net/http"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/jonathan/resume-editor/internal/ingestion"
	"github.com/jonathan/resume-editor/internal/keywords"
	"github.com/jonathan/resume-editor/internal/types"
)

// ---------------------------------------------------------------------
// Scan Handlers
// ---------------------------------------------------------------------

func (s *Server) handleScan(w http.ResponseWriter, r *http.Request) {
	var req types.ScanRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.errorFor(w, err)
		return
	}
	if strings.TrimSpace(req.ResumeText) == "" || strings.TrimSpace(req.JobDescription) == "" {
		s.errorResponse(w, http.StatusBadRequest, "resume_text and job_description are required")
		return
	}
	if err := req.Validate(); err != nil {
		s.errorFor(w, validationError(err))
		return
	}

	resume, err := ingestion.Normalize("resume_text", req.ResumeText)
	if err != nil {
		s.errorFor(w, err)
		return
	}
	job, err := ingestion.Normalize("job_description", req.JobDescription)
	if err != nil {
		s.errorFor(w, err)
		return
	}

	result := keywords.ScanResumeWithOptions(resume.Text, job.Text, s.scanOptions)
	s.logger.Debug("scan completed",
		zap.String("job_hash", job.Hash),
		zap.Int("total_keywords", result.TotalKeywords),
		zap.Int("match_percentage", result.MatchPercentage))

	s.jsonResponse(w, http.StatusOK, result)
}

// handleBatchScan scans one resume against several job descriptions concurrently.
// Results keep the order of the request.
func (s *Server) handleBatchScan(w http.ResponseWriter, r *http.Request) {
	var req types.BatchScanRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.errorFor(w, err)
		return
	}
	if strings.TrimSpace(req.ResumeText) == "" {
		s.errorResponse(w, http.StatusBadRequest, "resume_text is required")
		return
	}
	if err := req.Validate(); err != nil {
		s.errorFor(w, validationError(err))
		return
	}

	resume, err := ingestion.Normalize("resume_text", req.ResumeText)
	if err != nil {
		s.errorFor(w, err)
		return
	}

	results := make([]types.ScanResult, len(req.JobDescriptions))
	g, ctx := errgroup.WithContext(r.Context())
	g.SetLimit(s.batchWorkers)
	for i, description := range req.JobDescriptions {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			if strings.TrimSpace(description) == "" {
				return &ErrValidation{Field: fmt.Sprintf("job_descriptions[%d]", i), Message: "is blank"}
			}
			job, err := ingestion.Normalize(fmt.Sprintf("job_descriptions[%d]", i), description)
			if err != nil {
				return err
			}
			results[i] = keywords.ScanResumeWithOptions(resume.Text, job.Text, s.scanOptions)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		s.errorFor(w, err)
		return
	}

	s.jsonResponse(w, http.StatusOK, types.BatchScanResponse{Results: results})
}
