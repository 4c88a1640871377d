// Package core provides the envelope, error and data types shared by the File API client.
package core

import (
	"errors"
	"fmt"
	"strings"
)

// ResponseCode is the value of the envelope "code" field.
type ResponseCode string

const (
	CodeSuccess                    ResponseCode = "SUCCESS"
	CodeValidationError            ResponseCode = "VALIDATION_ERROR"
	CodeAuthenticationError        ResponseCode = "AUTHENTICATION_ERROR"
	CodeGeneralError               ResponseCode = "GENERAL_ERROR"
	CodeMaintenanceModeError       ResponseCode = "MAINTENANCE_MODE_ERROR"
	CodeResourceLocked             ResponseCode = "RESOURCE_LOCKED"
	CodeMaxOperationsLimitExceeded ResponseCode = "MAX_OPERATIONS_LIMIT_EXCEEDED"
)

// ErrNilArgument is matched by every NilArgumentError.
var ErrNilArgument = errors.New("required argument is missing")

// ErrInvalidArgument is returned, wrapped, for an argument the API would not
// accept, such as an unknown file or retrieval type. No request is sent.
var ErrInvalidArgument = errors.New("invalid argument")

// NilArgumentError reports a required argument that was left empty.
// It signals a programming mistake and is returned before any network activity.
type NilArgumentError struct {
	Name string
}

func (e *NilArgumentError) Error() string {
	return fmt.Sprintf("%s: %s", ErrNilArgument.Error(), e.Name)
}

// Is lets errors.Is(err, ErrNilArgument) match.
func (e *NilArgumentError) Is(target error) bool {
	return target == ErrNilArgument
}

// NewNilArgumentError creates a NilArgumentError for the named argument.
func NewNilArgumentError(name string) *NilArgumentError {
	return &NilArgumentError{Name: name}
}

// RequireArgs returns a NilArgumentError for the first blank value.
// Pairs are name, value, name, value...
func RequireArgs(pairs ...string) error {
	for i := 0; i+1 < len(pairs); i += 2 {
		if strings.TrimSpace(pairs[i+1]) == "" {
			return NewNilArgumentError(pairs[i])
		}
	}
	return nil
}

// APIError is returned for any non-success envelope.
type APIError struct {
	Code     ResponseCode `json:"code"`
	Messages []string     `json:"messages"`
	// HTTP status of the response that carried the envelope, if any
	StatusCode int `json:"-"`
}

// Error implements the error interface
func (e *APIError) Error() string {
	if len(e.Messages) == 0 {
		return fmt.Sprintf("api error %s", e.Code)
	}
	return fmt.Sprintf("api error %s: %s", e.Code, strings.Join(e.Messages, "; "))
}

// ValidationError is returned when the server rejects the request parameters.
// errors.As also matches it as an *APIError.
type ValidationError struct {
	APIError
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	if len(e.Messages) == 0 {
		return "validation error"
	}
	return "validation error: " + strings.Join(e.Messages, "; ")
}

// As lets callers that only care about the generic taxonomy extract the APIError.
func (e *ValidationError) As(target any) bool {
	if t, ok := target.(**APIError); ok {
		*t = &e.APIError
		return true
	}
	return false
}

// NewAPIError maps a non-success code and its messages to the error taxonomy.
func NewAPIError(code ResponseCode, messages []string, statusCode int) error {
	msgs := append([]string(nil), messages...)
	if code == CodeValidationError {
		return &ValidationError{APIError{Code: code, Messages: msgs, StatusCode: statusCode}}
	}
	return &APIError{Code: code, Messages: msgs, StatusCode: statusCode}
}

// IsValidationError reports whether err carries a server validation failure.
func IsValidationError(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}
