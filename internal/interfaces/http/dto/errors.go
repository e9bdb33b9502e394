package dto

import (
	"net/http"

	"github.com/rentflow/backend/internal/domain/shared"
)

// Transport-level error codes. Domain errors keep their own codes; these
// cover failures that never reach a service.
const (
	// ErrCodeInternal is used for unexpected server errors
	ErrCodeInternal = "INTERNAL_ERROR"
	// ErrCodeBadRequest is used for malformed or invalid requests
	ErrCodeBadRequest = "BAD_REQUEST"
	// ErrCodeUnauthenticated is used when the caller carries no valid token
	ErrCodeUnauthenticated = "UNAUTHENTICATED"
	// ErrCodeValidation is used when request body validation fails
	ErrCodeValidation = "VALIDATION_ERROR"
)

// ErrorCodeHTTPStatus maps error codes to HTTP status codes.
//
// UNAUTHORIZED maps to 403: the caller is authenticated but is not a party
// entitled to act. A missing or invalid token is UNAUTHENTICATED and 401.
// Stage violations and bad readings are semantic failures, so 422 rather
// than 400.
var ErrorCodeHTTPStatus = map[string]int{
	shared.CodeNotFound:          http.StatusNotFound,
	shared.CodeUnauthorized:      http.StatusForbidden,
	shared.CodeIllegalTransition: http.StatusUnprocessableEntity,
	shared.CodeInvalidReading:    http.StatusUnprocessableEntity,
	shared.CodeConflict:          http.StatusConflict,
	shared.CodeInvalidInput:      http.StatusBadRequest,
	shared.CodePersistence:       http.StatusInternalServerError,

	ErrCodeInternal:        http.StatusInternalServerError,
	ErrCodeBadRequest:      http.StatusBadRequest,
	ErrCodeUnauthenticated: http.StatusUnauthorized,
	ErrCodeValidation:      http.StatusBadRequest,
}

// GetHTTPStatus returns the HTTP status code for an error code.
// Unknown codes fall back to 500.
func GetHTTPStatus(code string) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}
