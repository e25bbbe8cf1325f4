package ingestion

import "fmt"

// InputError represents an error reading or decoding user-supplied text.
type InputError struct {
	Source  string
	Message string
	Cause   error
}

func (e *InputError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("input error for %s: %s: %v", e.Source, e.Message, e.Cause)
	}
	return fmt.Sprintf("input error for %s: %s", e.Source, e.Message)
}

func (e *InputError) Unwrap() error {
	return e.Cause
}
