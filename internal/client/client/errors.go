package client

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrUnavailable is matched by every TransportError.
	ErrUnavailable = errors.New("server unavailable")
	// ErrUnauthorized is matched by a RequestFailedError with status 401.
	ErrUnauthorized = errors.New("unauthorized")
)

// DefaultFailureMessage is used when a failed response carries neither a
// "detail" nor a "message" field.
const DefaultFailureMessage = "Request failed"

// RequestFailedError is returned when the server answered with a non-2xx
// status.
type RequestFailedError struct {
	Status  int
	Message string
	Data    Body
}

func (e *RequestFailedError) Error() string {
	return fmt.Sprintf("request failed with status %d: %s", e.Status, e.Message)
}

func (e *RequestFailedError) Is(target error) bool {
	return target == ErrUnauthorized && e.Status == http.StatusUnauthorized
}

// TransportError is returned when no HTTP response was obtained at all:
// connection refused, DNS failure, timeout, broken body.
type TransportError struct {
	Method string
	URL    string
	Err    error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Method, e.URL, e.Err)
}

func (e *TransportError) Unwrap() []error {
	return []error{ErrUnavailable, e.Err}
}

// Message turns an error returned by this package into text fit for the
// user. It returns an empty string for errors it does not know.
func Message(err error) string {
	var rf *RequestFailedError
	if errors.As(err, &rf) {
		return rf.Message
	}
	var te *TransportError
	if errors.As(err, &te) {
		return "Unable to reach the server"
	}
	return ""
}
