// Package server provides the HTTP REST API for the resume editor.
package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/jonathan/resume-editor/internal/ingestion"
	"github.com/jonathan/resume-editor/internal/schemas"
	"github.com/jonathan/resume-editor/internal/titles"
)

// ErrSessionNotFound indicates the session expired or never existed
type ErrSessionNotFound struct {
	SessionID string
}

func (e *ErrSessionNotFound) Error() string {
	return fmt.Sprintf("session not found: %s", e.SessionID)
}

// ErrValidation indicates request validation failure
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// ErrUnavailable indicates a feature that is not configured, such as title
// normalization without an API key
type ErrUnavailable struct {
	Feature string
}

func (e *ErrUnavailable) Error() string {
	return fmt.Sprintf("%s is not available", e.Feature)
}

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	var (
		notFound    *ErrSessionNotFound
		validation  *ErrValidation
		unavailable *ErrUnavailable
		schemaErr   *schemas.ValidationError
		inputErr    *ingestion.InputError
		apiErr      *titles.APICallError
		parseErr    *titles.ParseError
	)
	switch {
	case errors.As(err, &notFound):
		return http.StatusNotFound
	case errors.As(err, &validation), errors.As(err, &schemaErr), errors.As(err, &inputErr),
		errors.Is(err, titles.ErrEmptyTitle):
		return http.StatusBadRequest
	case errors.As(err, &unavailable):
		return http.StatusServiceUnavailable
	case errors.As(err, &apiErr), errors.As(err, &parseErr):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
