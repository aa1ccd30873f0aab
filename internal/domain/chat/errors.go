package chat

import "errors"

var (
	// ErrEmptyPrompt is returned when the prompt is blank after trimming.
	ErrEmptyPrompt = errors.New("prompt is required")
	// ErrUpstream matches any *UpstreamError via errors.Is.
	ErrUpstream = errors.New("chat upstream failure")
)

const (
	msgUnexpectedResponse = "Unexpected response from the language model"
	msgFetchFailed        = "Failed to fetch response from the language model"
	msgUpstreamRejected   = "The language model rejected the request"
)

// UpstreamError is a failed completion. Message is safe to show to the
// caller; Err and Status are kept for logs.
type UpstreamError struct {
	Status  int
	Message string
	Err     error
}

func (e *UpstreamError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *UpstreamError) Unwrap() error { return e.Err }

func (e *UpstreamError) Is(target error) bool { return target == ErrUpstream }
