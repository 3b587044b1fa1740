package domain

import "fmt"

// ErrorKind classifies a failed backend call.
type ErrorKind string

const (
	// ErrKindHTTP is a non-2xx response; Status holds the code.
	ErrKindHTTP ErrorKind = "http"
	// ErrKindParse is a 2xx response whose body was not valid JSON.
	ErrKindParse ErrorKind = "parse"
	// ErrKindTransport covers network failures and cancelled contexts.
	ErrKindTransport ErrorKind = "transport"
	// ErrKindRequest means the request could not be built or encoded.
	ErrKindRequest ErrorKind = "request"
)

// MsgInvalidResponse is the message carried by every ErrKindParse error.
const MsgInvalidResponse = "Invalid response format"

// GatewayError describes why a backend call produced no data.
type GatewayError struct {
	Kind    ErrorKind
	Status  int
	Message string
	Err     error
}

func (e *GatewayError) Error() string { return e.Message }

func (e *GatewayError) Unwrap() error { return e.Err }

// IsClientError reports whether the backend answered with a 4xx status.
func (e *GatewayError) IsClientError() bool {
	return e != nil && e.Kind == ErrKindHTTP && e.Status >= 400 && e.Status < 500
}

// NewHTTPError builds the error for a non-2xx response.
func NewHTTPError(status int, body string) *GatewayError {
	return &GatewayError{
		Kind:    ErrKindHTTP,
		Status:  status,
		Message: fmt.Sprintf("HTTP error! status: %d, message: %s", status, body),
	}
}

// Result is the outcome of a backend call: either Data (possibly nil for
// empty successful responses) or Err, never both.
type Result[T any] struct {
	Data *T
	Err  *GatewayError
}

// Ok wraps a successful payload. A nil pointer means "no content".
func Ok[T any](data *T) Result[T] {
	return Result[T]{Data: data}
}

// Fail wraps a gateway error.
func Fail[T any](err *GatewayError) Result[T] {
	return Result[T]{Err: err}
}

// Failed reports whether the call did not succeed.
func (r Result[T]) Failed() bool { return r.Err != nil }

// Failure returns the error as a plain error value, or nil on success.
func (r Result[T]) Failure() error {
	if r.Err == nil {
		return nil
	}
	return r.Err
}

// Value returns the payload or the zero value when there is none.
func (r Result[T]) Value() T {
	var zero T
	if r.Data == nil {
		return zero
	}
	return *r.Data
}
