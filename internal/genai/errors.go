package genai

import (
	"errors"
	"fmt"
)

// ErrNoAPIKey is returned by every backend call while the GEMINI_API_KEY
// environment variable is unset.
var ErrNoAPIKey = errors.New("GEMINI_API_KEY environment variable not set")

// ResponseError means the backend was reachable but returned no text,
// unparseable text, or a payload missing required schema fields.
type ResponseError struct {
	Reason string
	Err    error
}

func (e *ResponseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("backend response: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("backend response: %s", e.Reason)
}

func (e *ResponseError) Unwrap() error { return e.Err }

func responseErr(reason string, err error) *ResponseError {
	return &ResponseError{Reason: reason, Err: err}
}
