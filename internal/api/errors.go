package api

import "fmt"

// AuthError reports a rejected login, registration, or identity lookup.
// Message carries the server-supplied detail; the fallback "Error" is
// applied at construction, so Message is never empty.
type AuthError struct {
	Status  int
	Message string
}

func (e *AuthError) Error() string { return e.Message }

// NetworkError is a transport-level failure: unreachable host, timeout,
// or a cancelled context.
type NetworkError struct {
	Op  string
	Err error
}

func (e *NetworkError) Error() string { return fmt.Sprintf("%s: %v", e.Op, e.Err) }
func (e *NetworkError) Unwrap() error { return e.Err }

// ServerError is a non-success status from a data read or write endpoint.
type ServerError struct {
	Op     string
	Status int
}

func (e *ServerError) Error() string {
	return fmt.Sprintf("%s: server returned status %d", e.Op, e.Status)
}
