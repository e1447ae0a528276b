package docuware

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrInvalidConfig is returned by New when the configuration fails validation.
	ErrInvalidConfig = errors.New("docuware: invalid configuration")
	// ErrRequestFailed matches every non-2xx response.
	ErrRequestFailed = errors.New("docuware: request failed")
	// ErrUnauthorized matches 401 responses. The session cookie has already been purged.
	ErrUnauthorized = errors.New("docuware: unauthorized")
	// ErrNotFound matches 404 responses.
	ErrNotFound = errors.New("docuware: not found")
	// ErrTransport wraps connection-level failures.
	ErrTransport = errors.New("docuware: transport error")
	// ErrEmptySessionCookie is returned by Login when the logon response set no usable cookie.
	ErrEmptySessionCookie = errors.New("docuware: logon response carried no session cookie")
	// ErrSessionStore wraps failures of the session cache.
	ErrSessionStore = errors.New("docuware: session store error")
)

// ResponseError carries a failed response's status code and raw body.
type ResponseError struct {
	Status int
	Body   string
}

// Error implements the error interface.
func (e *ResponseError) Error() string {
	return fmt.Sprintf("Request failed. Status: %d Body: %s", e.Status, e.Body)
}

// Is lets errors.Is match the package sentinels.
func (e *ResponseError) Is(target error) bool {
	switch target {
	case ErrRequestFailed:
		return true
	case ErrUnauthorized:
		return e.Status == http.StatusUnauthorized
	case ErrNotFound:
		return e.Status == http.StatusNotFound
	}
	return false
}

// StatusCode extracts the HTTP status from err, or 0 if err is not a ResponseError.
func StatusCode(err error) int {
	var re *ResponseError
	if errors.As(err, &re) {
		return re.Status
	}
	return 0
}
