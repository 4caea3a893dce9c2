package errors

import (
	"errors"
	"net/http"
)

var (
	// ErrBoardNotFound is returned when a board id does not resolve.
	ErrBoardNotFound = errors.New("board not found")
	// ErrTaskNotFound is returned when a task id does not resolve.
	ErrTaskNotFound = errors.New("task not found")
	// ErrCommentNotFound is returned when a comment id does not resolve or the
	// comment does not belong to the addressed task.
	ErrCommentNotFound = errors.New("comment not found")
	// ErrUserNotFound is returned when a referenced user id or email does not resolve.
	ErrUserNotFound = errors.New("user not found")
	// ErrAccessDenied is returned when the entity exists but the caller fails
	// the access rule for it.
	ErrAccessDenied = errors.New("access denied")
	// ErrEmptyCommentContent is returned when comment content is empty after trimming.
	ErrEmptyCommentContent = errors.New("comment content must not be empty")
)

// ErrorResponse represents a standardized error response.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// HTTPError represents an HTTP error with status code.
type HTTPError struct {
	StatusCode int
	Message    string
	Code       string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewHTTPError creates a new HTTP error.
func NewHTTPError(statusCode int, message, code string) *HTTPError {
	return &HTTPError{
		StatusCode: statusCode,
		Message:    message,
		Code:       code,
	}
}

// ToErrorResponse converts an HTTPError to ErrorResponse.
func (e *HTTPError) ToErrorResponse() ErrorResponse {
	return ErrorResponse{
		Error: e.Message,
		Code:  e.Code,
	}
}

// MapErrorToHTTP maps domain errors to HTTP errors.
func MapErrorToHTTP(err error) *HTTPError {
	switch err {
	case ErrBoardNotFound:
		return NewHTTPError(http.StatusNotFound, err.Error(), "BOARD_NOT_FOUND")
	case ErrTaskNotFound:
		return NewHTTPError(http.StatusNotFound, err.Error(), "TASK_NOT_FOUND")
	case ErrCommentNotFound:
		return NewHTTPError(http.StatusNotFound, err.Error(), "COMMENT_NOT_FOUND")
	case ErrUserNotFound:
		return NewHTTPError(http.StatusNotFound, err.Error(), "USER_NOT_FOUND")
	case ErrAccessDenied:
		return NewHTTPError(http.StatusForbidden, err.Error(), "ACCESS_DENIED")
	case ErrEmptyCommentContent:
		return NewHTTPError(http.StatusBadRequest, err.Error(), "INVALID_INPUT")
	default:
		return NewHTTPError(http.StatusInternalServerError, "internal server error", "INTERNAL_ERROR")
	}
}
