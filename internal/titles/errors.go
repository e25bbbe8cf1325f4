package titles

import (
	"errors"
	"fmt"
)

// ErrEmptyTitle is returned when there is nothing to normalize.
var ErrEmptyTitle = errors.New("title is empty")

// APICallError represents a failed call to the language model
type APICallError struct {
	Message string
	Cause   error
}

func (e *APICallError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("API call failed: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("API call failed: %s", e.Message)
}

func (e *APICallError) Unwrap() error {
	return e.Cause
}

// ParseError represents a model response that held no usable titles
type ParseError struct {
	Message  string
	Response string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error: %s (response: %q)", e.Message, e.Response)
}
