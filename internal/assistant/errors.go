package assistant

import "errors"

var (
	// ErrAuthenticationMissing means no API key is configured, or the remote
	// provider rejected the credentials.
	ErrAuthenticationMissing = errors.New("completion service credentials missing or rejected")

	// ErrServiceUnavailable means the remote provider could not be reached or
	// is refusing work (transport failure, 5xx, rate limiting).
	ErrServiceUnavailable = errors.New("completion service unavailable")

	// ErrRequestFailed covers every other completion failure, including an
	// empty response from the model.
	ErrRequestFailed = errors.New("completion request failed")
)
