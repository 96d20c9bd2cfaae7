package errors

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
)

// HTTPStatuser is implemented by errors that know their HTTP response status.
type HTTPStatuser interface {
	HTTPStatus() int
	Code() string
}

// StatusOf returns the HTTP status and error code for err.
// Errors without an HTTPStatuser in their chain map to 500 internal_error.
func StatusOf(err error) (int, string) {
	var s HTTPStatuser
	if errors.As(err, &s) {
		return s.HTTPStatus(), s.Code()
	}
	return http.StatusInternalServerError, "internal_error"
}

// ValidationError represents a request that could not be decoded or bound
type ValidationError struct {
	Field   string
	Message string
	code    string
}

// NewValidationError creates a new validation error
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{
		Field:   field,
		Message: message,
		code:    "validation_error",
	}
}

// NewInvalidIDError reports a path id that is not a 64-bit integer.
func NewInvalidIDError(raw string) *ValidationError {
	return &ValidationError{
		Field:   "id",
		Message: fmt.Sprintf("User ID must be a valid number, got %q", raw),
		code:    "invalid_id",
	}
}

// FromBindingError turns a gin binding failure into a ValidationError with a
// readable message. Field rule violations are listed per field; anything else
// (malformed JSON, type mismatches) keeps the decoder's message.
func FromBindingError(err error) *ValidationError {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return NewValidationError("", err.Error())
	}

	messages := make([]string, 0, len(validationErrors))
	fields := make([]string, 0, len(validationErrors))
	for _, e := range validationErrors {
		field := strings.ToLower(e.Field())
		fields = append(fields, field)
		switch e.Tag() {
		case "required":
			messages = append(messages, fmt.Sprintf("%s is required", field))
		default:
			messages = append(messages, fmt.Sprintf("%s is invalid", field))
		}
	}
	return NewValidationError(strings.Join(fields, ","), strings.Join(messages, ", "))
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation failed: %s - %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation failed: %s", e.Message)
}

// HTTPStatus returns 400
func (e *ValidationError) HTTPStatus() int {
	return http.StatusBadRequest
}

// Code returns the machine-readable error code
func (e *ValidationError) Code() string {
	return e.code
}

// NotFoundError represents a resource not found error
type NotFoundError struct {
	Resource string
	Message  string
}

// NewNotFoundError creates a new not found error
func NewNotFoundError(resource, message string) *NotFoundError {
	return &NotFoundError{
		Resource: resource,
		Message:  message,
	}
}

// Error implements the error interface
func (e *NotFoundError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("%s not found", e.Resource)
}

// HTTPStatus returns 404
func (e *NotFoundError) HTTPStatus() int {
	return http.StatusNotFound
}

// Code returns the machine-readable error code
func (e *NotFoundError) Code() string {
	return "not_found"
}

// InternalError represents an internal server error with context
type InternalError struct {
	Message string
	Err     error
}

// NewInternalError creates a new internal error
func NewInternalError(message string, err error) *InternalError {
	return &InternalError{
		Message: message,
		Err:     err,
	}
}

// Error implements the error interface
func (e *InternalError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the wrapped error
func (e *InternalError) Unwrap() error {
	return e.Err
}

// HTTPStatus returns 500
func (e *InternalError) HTTPStatus() int {
	return http.StatusInternalServerError
}

// Code returns the machine-readable error code
func (e *InternalError) Code() string {
	return "internal_error"
}

// MethodNotAllowedError reports a known path requested with an unsupported method
type MethodNotAllowedError struct {
	Method string
	Path   string
}

// NewMethodNotAllowedError creates a new method not allowed error
func NewMethodNotAllowedError(method, path string) *MethodNotAllowedError {
	return &MethodNotAllowedError{Method: method, Path: path}
}

// Error implements the error interface
func (e *MethodNotAllowedError) Error() string {
	return fmt.Sprintf("%s is not allowed on %s", e.Method, e.Path)
}

// HTTPStatus returns 405
func (e *MethodNotAllowedError) HTTPStatus() int {
	return http.StatusMethodNotAllowed
}

// Code returns the machine-readable error code
func (e *MethodNotAllowedError) Code() string {
	return "method_not_allowed"
}
