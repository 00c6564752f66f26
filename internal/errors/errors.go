package errors

import (
	"errors"
	"net/http"
)

var (
	// ErrDuplicateUsername is returned when the username is already taken.
	ErrDuplicateUsername = errors.New("username already taken")
	// ErrDuplicateEmail is returned when the email is already registered.
	ErrDuplicateEmail = errors.New("email already registered")
	// ErrInvalidCredentials is returned when email or password is incorrect.
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrAccessDenied is returned when the caller's role does not permit the operation.
	ErrAccessDenied = errors.New("access denied")
	// ErrNotFound is returned when a requested record does not exist.
	ErrNotFound = errors.New("record not found")
	// ErrInvalidState is returned when a status transition is not allowed.
	ErrInvalidState = errors.New("invalid state for this operation")
	// ErrMissingSelection is returned when an assignment lacks a delivery person or recipient.
	ErrMissingSelection = errors.New("both delivery person and recipient must be selected")
	// ErrValidation is returned when a required field is missing or malformed.
	ErrValidation = errors.New("invalid input")
	// ErrUnknownUserType is returned when a stored user carries an unrecognized
	// user type. This indicates corrupted data, not an authorization failure.
	ErrUnknownUserType = errors.New("unknown user type")
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
	switch {
	case errors.Is(err, ErrDuplicateUsername):
		return NewHTTPError(http.StatusConflict, err.Error(), "DUPLICATE_USERNAME")
	case errors.Is(err, ErrDuplicateEmail):
		return NewHTTPError(http.StatusConflict, err.Error(), "DUPLICATE_EMAIL")
	case errors.Is(err, ErrInvalidCredentials):
		return NewHTTPError(http.StatusUnauthorized, err.Error(), "INVALID_CREDENTIALS")
	case errors.Is(err, ErrAccessDenied):
		return NewHTTPError(http.StatusForbidden, err.Error(), "ACCESS_DENIED")
	case errors.Is(err, ErrNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "NOT_FOUND")
	case errors.Is(err, ErrInvalidState):
		return NewHTTPError(http.StatusConflict, err.Error(), "INVALID_STATE")
	case errors.Is(err, ErrMissingSelection):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "MISSING_SELECTION")
	case errors.Is(err, ErrValidation):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "VALIDATION_ERROR")
	case errors.Is(err, ErrUnknownUserType):
		return NewHTTPError(http.StatusInternalServerError, err.Error(), "UNKNOWN_USER_TYPE")
	default:
		return NewHTTPError(http.StatusInternalServerError, "internal server error", "INTERNAL_ERROR")
	}
}
