package billbook

import "fmt"

// ConfigurationError means a credential artifact is missing or
// malformed. It is raised before any request goes out and is never
// retried.
type ConfigurationError struct {
	Field  string
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("invalid configuration: %s: %s", e.Field, e.Reason)
}

// AuthenticationError means the server rejected the captured browser
// credentials (401/403). Retrying cannot help, the operator has to
// capture a fresh session from the browser.
type AuthenticationError struct {
	StatusCode int
	Endpoint   string
}

func (e *AuthenticationError) Error() string {
	return fmt.Sprintf(
		"authentication rejected (status %d) on %s: capture fresh credentials from your browser session",
		e.StatusCode, e.Endpoint,
	)
}

// TransientFetchError is a network failure, 5xx or 429 that survived
// the retry budget. StatusCode is 0 when the request never produced a
// response.
type TransientFetchError struct {
	StatusCode int
	Endpoint   string
	ItemId     string
	Snippet    string
	Err        error
}

func (e *TransientFetchError) Error() string {
	msg := fmt.Sprintf("fetch failed (status %d) on %s", e.StatusCode, e.Endpoint)
	if e.ItemId != "" {
		msg += fmt.Sprintf(" (item %s)", e.ItemId)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	if e.Snippet != "" {
		msg += ": " + e.Snippet
	}
	return msg
}

func (e *TransientFetchError) Unwrap() error {
	return e.Err
}
