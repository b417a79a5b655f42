package errors

import "fmt"

// ErrorCode represents a flowdeck error code.
type ErrorCode string

const (
	ErrInvalidRequest   ErrorCode = "INVALID_REQUEST"    // 400
	ErrNotFound         ErrorCode = "NOT_FOUND"          // 404
	ErrEmptyPool        ErrorCode = "EMPTY_POOL"         // 404
	ErrAnalysisInFlight ErrorCode = "ANALYSIS_IN_FLIGHT" // 409
	ErrDumpTooLarge     ErrorCode = "DUMP_TOO_LARGE"     // 413
	ErrAnalysisFailed   ErrorCode = "ANALYSIS_FAILED"    // 502
	ErrInternal         ErrorCode = "INTERNAL"           // 500
)

// FlowError represents a structured error with code, status, and details.
type FlowError struct {
	Code    ErrorCode
	Status  int
	Message string
	Details map[string]any
}

// Error implements the error interface.
func (e *FlowError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// NewInvalidRequest creates a 400 error for invalid request parameters.
func NewInvalidRequest(msg string) *FlowError {
	return &FlowError{
		Code:    ErrInvalidRequest,
		Status:  400,
		Message: msg,
	}
}

// NewNotFound creates a 404 error for when an item cannot be found.
func NewNotFound(id string) *FlowError {
	return &FlowError{
		Code:    ErrNotFound,
		Status:  404,
		Message: fmt.Sprintf("item not found: %s", id),
		Details: map[string]any{"id": id},
	}
}

// NewEmptyPool creates a 404 error for when the quest pool has no candidates.
func NewEmptyPool() *FlowError {
	return &FlowError{
		Code:    ErrEmptyPool,
		Status:  404,
		Message: "no someday items to pick from",
	}
}

// NewAnalysisInFlight creates a 409 error for a rejected concurrent analysis.
func NewAnalysisInFlight() *FlowError {
	return &FlowError{
		Code:    ErrAnalysisInFlight,
		Status:  409,
		Message: "an analysis is already in flight for this session",
	}
}

// NewDumpTooLarge creates a 413 error when a brain dump exceeds the size limit.
func NewDumpTooLarge(max, actual int) *FlowError {
	return &FlowError{
		Code:    ErrDumpTooLarge,
		Status:  413,
		Message: fmt.Sprintf("brain dump exceeds maximum size: %d chars (max %d)", actual, max),
		Details: map[string]any{"max_chars": max, "actual_chars": actual},
	}
}

// NewAnalysisFailed creates a 502 error for a failed or unparsable
// classification response. The store is never mutated on this path.
func NewAnalysisFailed(err error) *FlowError {
	msg := "classification failed"
	if err != nil {
		msg = err.Error()
	}
	return &FlowError{
		Code:    ErrAnalysisFailed,
		Status:  502,
		Message: msg,
	}
}

// NewInternal creates a 500 error for unexpected internal errors.
func NewInternal(err error) *FlowError {
	msg := "internal error"
	if err != nil {
		msg = err.Error()
	}
	return &FlowError{
		Code:    ErrInternal,
		Status:  500,
		Message: msg,
	}
}

// Is checks if an error is a FlowError with the given code.
func Is(err error, code ErrorCode) bool {
	if fErr, ok := err.(*FlowError); ok {
		return fErr.Code == code
	}
	return false
}
