package errors

import (
	"errors"
	"net/http"
)

var (
	// ErrNotAuthenticated is returned when an operation requires an active session.
	ErrNotAuthenticated = errors.New("not authenticated")
	// ErrForbidden is returned when the session's role does not permit the operation.
	ErrForbidden = errors.New("only admins can perform this action")
	// ErrNotFound is returned when the referenced account or record does not exist.
	ErrNotFound = errors.New("not found")
	// ErrConflict is returned when a unique field would collide with an existing account.
	ErrConflict = errors.New("duplicate value")
	// ErrInvalidCredential is returned when a supplied password does not match.
	ErrInvalidCredential = errors.New("invalid credentials")
	// ErrLastAdmin is returned when an edit would leave the network without an administrator.
	ErrLastAdmin = errors.New("cannot remove the last administrator")
	// ErrSelfDeletion is returned when an admin attempts to delete their own account.
	ErrSelfDeletion = errors.New("you cannot delete your own account")
	// ErrUpstream is returned when the assistant API call fails.
	ErrUpstream = errors.New("failed to get response from AI model")
	// ErrAssistantNotConfigured is returned when no assistant API key is configured.
	ErrAssistantNotConfigured = errors.New("assistant API key not configured")
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

// MapErrorToHTTP maps domain errors to HTTP errors. Services wrap sentinels
// with context, so matching uses errors.Is rather than equality.
func MapErrorToHTTP(err error) *HTTPError {
	switch {
	case errors.Is(err, ErrNotAuthenticated):
		return NewHTTPError(http.StatusUnauthorized, err.Error(), "NOT_AUTHENTICATED")
	case errors.Is(err, ErrForbidden):
		return NewHTTPError(http.StatusForbidden, err.Error(), "FORBIDDEN")
	case errors.Is(err, ErrNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "NOT_FOUND")
	case errors.Is(err, ErrConflict):
		return NewHTTPError(http.StatusConflict, err.Error(), "CONFLICT")
	case errors.Is(err, ErrInvalidCredential):
		return NewHTTPError(http.StatusUnauthorized, err.Error(), "INVALID_CREDENTIALS")
	case errors.Is(err, ErrLastAdmin):
		return NewHTTPError(http.StatusConflict, err.Error(), "LAST_ADMIN")
	case errors.Is(err, ErrSelfDeletion):
		return NewHTTPError(http.StatusConflict, err.Error(), "SELF_DELETION")
	case errors.Is(err, ErrAssistantNotConfigured):
		return NewHTTPError(http.StatusServiceUnavailable, err.Error(), "ASSISTANT_NOT_CONFIGURED")
	case errors.Is(err, ErrUpstream):
		return NewHTTPError(http.StatusBadGateway, err.Error(), "UPSTREAM_ERROR")
	default:
		return NewHTTPError(http.StatusInternalServerError, "internal server error", "INTERNAL_ERROR")
	}
}
