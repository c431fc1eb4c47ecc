package client

import (
	"errors"
	"fmt"

	"github.com/valyala/fasthttp"

	"github.com/martinferreira/elasticsearch-net/internal/utils"
)

// RemoteError is a non-2xx response. Body is the response body as received.
type RemoteError struct {
	Method     string
	Path       string
	StatusCode int
	Status     string
	Body       []byte
}

// Error implements the error interface.
func (e *RemoteError) Error() string {
	if reason := e.Reason(); reason != "" {
		return fmt.Sprintf("%s %s: %d %s: %s", e.Method, e.Path, e.StatusCode, e.Status, reason)
	}
	return fmt.Sprintf("%s %s: %d %s", e.Method, e.Path, e.StatusCode, e.Status)
}

// Reason returns error.reason from the body, or "" when the body has none.
func (e *RemoteError) Reason() string {
	reason, err := utils.GetString(e.Body, "error", "reason")
	if err != nil {
		return ""
	}
	return reason
}

func newRemoteError(method, path string, code int, body []byte) *RemoteError {
	return &RemoteError{
		Method:     method,
		Path:       path,
		StatusCode: code,
		Status:     fasthttp.StatusMessage(code),
		Body:       append([]byte(nil), body...),
	}
}

// TransportError is a request that got no HTTP response.
type TransportError struct {
	Method string
	Path   string
	Err    error
}

// Error implements the error interface.
func (e *TransportError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Method, e.Path, e.Err)
}

// Unwrap returns the underlying error.
func (e *TransportError) Unwrap() error {
	return e.Err
}

// IsNotFound reports whether err is a 404 from the server.
func IsNotFound(err error) bool {
	var re *RemoteError
	return errors.As(err, &re) && re.StatusCode == fasthttp.StatusNotFound
}
