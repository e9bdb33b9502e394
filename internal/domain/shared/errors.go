package shared

// DomainError represents a domain-level error
type DomainError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error implements the error interface
func (e *DomainError) Error() string {
	return e.Message
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// Is matches on the error code so sentinel errors below compare equal to
// contextualized errors created with the same code.
func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// Error codes for the rental lifecycle taxonomy
const (
	CodeNotFound          = "NOT_FOUND"
	CodeUnauthorized      = "UNAUTHORIZED"
	CodeIllegalTransition = "ILLEGAL_TRANSITION"
	CodeInvalidReading    = "INVALID_READING"
	CodeConflict          = "CONFLICT"
	CodePersistence       = "PERSISTENCE_FAILURE"
	CodeInvalidInput      = "INVALID_INPUT"
)

// Common domain errors
var (
	ErrNotFound          = NewDomainError(CodeNotFound, "Resource not found")
	ErrUnauthorized      = NewDomainError(CodeUnauthorized, "Not authorized to perform this action")
	ErrIllegalTransition = NewDomainError(CodeIllegalTransition, "Operation not allowed in current state")
	ErrInvalidReading    = NewDomainError(CodeInvalidReading, "Meter reading cannot regress")
	ErrConflict          = NewDomainError(CodeConflict, "Resource was modified by another process")
	ErrPersistence       = NewDomainError(CodePersistence, "Storage operation failed")
	ErrInvalidInput      = NewDomainError(CodeInvalidInput, "Invalid input provided")
)

// NewIllegalTransition builds an IllegalTransition error carrying the stage
// that blocked the caller, so the requesting party sees why they are stuck.
func NewIllegalTransition(message string) *DomainError {
	return NewDomainError(CodeIllegalTransition, message)
}

// NewConflict builds a Conflict error with context.
func NewConflict(message string) *DomainError {
	return NewDomainError(CodeConflict, message)
}

// NewUnauthorized builds an Unauthorized error with context.
func NewUnauthorized(message string) *DomainError {
	return NewDomainError(CodeUnauthorized, message)
}
