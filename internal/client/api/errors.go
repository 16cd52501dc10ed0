package api

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind partitions request failures into the three cases callers dispatch on.
type Kind int

const (
	// KindNetwork means no response was received at all (Status is 0).
	KindNetwork Kind = iota + 1
	// KindUnclassified is a non-2xx response without a recognized error_type.
	KindUnclassified
	// KindClassified is a non-2xx response carrying a recognized error_type.
	KindClassified
)

// ErrorType is the structured discriminator the identity service attaches to
// business failures. Only the values below are recognized; anything else is
// treated as unclassified.
type ErrorType string

const (
	ErrorTypeUserNotFound    ErrorType = "user_not_found"
	ErrorTypeAccountPending  ErrorType = "account_pending"
	ErrorTypeAccountInactive ErrorType = "account_inactive"
	ErrorTypeInvalidPassword ErrorType = "invalid_password"
)

var recognizedTypes = map[ErrorType]struct{}{
	ErrorTypeUserNotFound:    {},
	ErrorTypeAccountPending:  {},
	ErrorTypeAccountInactive: {},
	ErrorTypeInvalidPassword: {},
}

// Error is the normalized form of every request failure. It is decoded once
// at the transport boundary so callers can match on Kind/Type instead of
// re-parsing response bodies.
type Error struct {
	Kind    Kind
	Status  int
	Type    ErrorType
	Message string
	Details map[string]any
}

func (e *Error) Error() string {
	if e.Kind == KindNetwork {
		return "server unreachable: " + e.Message
	}
	return e.Message
}

// AsError unwraps err into *Error, if it is one.
func AsError(err error) (*Error, bool) {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}

// IsNetwork reports whether err means the server could not be reached.
func IsNetwork(err error) bool {
	apiErr, ok := AsError(err)
	return ok && apiErr.Kind == KindNetwork
}

// IsUnauthorized reports whether err is an HTTP 401 rejection.
func IsUnauthorized(err error) bool {
	apiErr, ok := AsError(err)
	return ok && apiErr.Status == http.StatusUnauthorized
}

// IsRateLimited reports whether err is an HTTP 429 rejection.
func IsRateLimited(err error) bool {
	apiErr, ok := AsError(err)
	return ok && apiErr.Status == http.StatusTooManyRequests
}

// TypeOf returns the classified error type of err, or "" when err carries
// none.
func TypeOf(err error) ErrorType {
	apiErr, ok := AsError(err)
	if !ok || apiErr.Kind != KindClassified {
		return ""
	}
	return apiErr.Type
}

// errorBody is the JSON error payload shape produced by the identity service.
type errorBody struct {
	Error     string         `json:"error"`
	ErrorType string         `json:"error_type"`
	Details   map[string]any `json:"details"`
}

// decodeError normalizes a non-2xx response into *Error. When the body is
// not parseable JSON the message falls back to "HTTP <status>".
func decodeError(status int, data []byte) *Error {
	e := &Error{
		Kind:    KindUnclassified,
		Status:  status,
		Message: fmt.Sprintf("HTTP %d", status),
	}

	var body errorBody
	if err := unmarshalBody(data, &body); err != nil {
		return e
	}
	if body.Error != "" {
		e.Message = body.Error
	}
	if _, ok := recognizedTypes[ErrorType(body.ErrorType)]; ok {
		e.Kind = KindClassified
		e.Type = ErrorType(body.ErrorType)
		e.Details = body.Details
	}
	return e
}
