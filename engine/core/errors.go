package core

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrorCode identifies one kind of request failure. The set is closed: every
// error crossing a package boundary carries exactly one of these.
type ErrorCode string

const (
	// User errors
	CodeComponentNotFound ErrorCode = "component_not_found"
	CodeInvalidBirthData  ErrorCode = "invalid_birth_data"

	// Collaborator errors
	CodeUpstreamUnavailable ErrorCode = "upstream_unavailable"

	// Generative-model errors
	CodeSynthesisContentBlocked ErrorCode = "synthesis_content_error"
	CodeSynthesisRateLimited    ErrorCode = "synthesis_rate_limited"
	CodeBadLLMResponse          ErrorCode = "bad_llm_response"

	// Configuration defect, never user-caused. Mapped to CodeInternal at the
	// HTTP boundary so no internal detail leaks.
	CodeTemplateNotFound ErrorCode = "template_not_found"

	CodeInternal ErrorCode = "internal_server_error"
)

// Error is the tagged error carried across package boundaries.
type Error struct {
	Code    ErrorCode
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// NewError creates a tagged error.
func NewError(code ErrorCode, message string, err error) *Error {
	return &Error{Code: code, Message: message, Err: err}
}

// NewErrorf creates a tagged error with a formatted message.
func NewErrorf(code ErrorCode, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// CodeOf extracts the error code, defaulting to CodeInternal for untagged
// errors.
func CodeOf(err error) ErrorCode {
	var tagged *Error
	if errors.As(err, &tagged) {
		return tagged.Code
	}
	return CodeInternal
}

// IsCode reports whether err carries the given code.
func IsCode(err error, code ErrorCode) bool {
	return CodeOf(err) == code
}

// HTTPStatus maps an error code to its response status.
func HTTPStatus(code ErrorCode) int {
	switch code {
	case CodeComponentNotFound:
		return http.StatusNotFound
	case CodeInvalidBirthData:
		return http.StatusUnprocessableEntity
	case CodeUpstreamUnavailable:
		return http.StatusServiceUnavailable
	case CodeSynthesisRateLimited:
		return http.StatusTooManyRequests
	case CodeSynthesisContentBlocked, CodeBadLLMResponse:
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}
