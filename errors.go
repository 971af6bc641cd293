package ampemail

import "errors"

// Sentinel errors classify every failure the client can surface.
// They are designed for errors.Is checks while detailed context is
// carried by the wrapping error (or by APIError for server failures).
var (
	// ErrValidation is returned when input is rejected client-side
	// before any network call is made.
	ErrValidation = errors.New("validation failed")

	// ErrAuthentication is returned when the server rejects the API key (HTTP 401).
	ErrAuthentication = errors.New("invalid API key")

	// ErrRateLimit is returned when the server throttles the request (HTTP 429).
	ErrRateLimit = errors.New("rate limit exceeded")

	// ErrDecodeResponse is returned when a 2xx response body cannot be
	// decoded into the expected shape. It is deliberately a different
	// kind from APIError so callers can tell "the server rejected us"
	// apart from "the server returned something we cannot parse".
	ErrDecodeResponse = errors.New("malformed API response")
)

// APIError is the generic API failure kind: any non-2xx HTTP status or
// transport-level failure. For HTTP 401 and 429 the Err field carries
// ErrAuthentication or ErrRateLimit, so errors.Is matches the specific
// kind while errors.As still exposes the status code.
type APIError struct {
	// StatusCode is the HTTP status of the failed response,
	// or zero for transport-level failures.
	StatusCode int

	// Message is the server-provided error message when the error body
	// carried one, or a generic description otherwise.
	Message string

	// Err is the underlying cause: a classification sentinel or the
	// transport error. Nil for plain HTTP failures.
	Err error
}

func (e *APIError) Error() string { return e.Message }

func (e *APIError) Unwrap() error { return e.Err }
