package flowsdk

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/soloday/soloday/pkg/httpx"
)

// Stable error codes shared between the service and the SDK.
const (
	ErrorCodeInvalidRequest    = "invalid_request"
	ErrorCodeInvalidToken      = "invalid_token"
	ErrorCodeInvalidCode       = "invalid_code"
	ErrorCodeNoActiveChallenge = "no_active_challenge"
	ErrorCodeTooManyAttempts   = "too_many_attempts"
	ErrorCodeRateLimited       = "rate_limited"
	ErrorCodeUsernameTaken     = "username_taken"
	ErrorCodeUsernameInvalid   = "username_invalid"
	ErrorCodeProfileExists     = "profile_exists"
	ErrorCodeProfileNotFound   = "profile_not_found"
	ErrorCodeDreamNotFound     = "dream_not_found"
	ErrorCodeServerError       = "server_error"
)

// APIError represents an error response from the service. It implements the
// error interface and is used both by the server (to write HTTP responses)
// and by the SDK client (to represent remote failures).
type APIError struct {
	// StatusCode is the HTTP status code for this error
	StatusCode int `json:"-"`

	// Code is the stable machine-readable error code
	Code string `json:"code"`

	// Message is a human-readable description of the error
	Message string `json:"message"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// WriteError writes this APIError to an HTTP response writer.
func (e *APIError) WriteError(w http.ResponseWriter) {
	httpx.WriteError(w, e.StatusCode, e.Code, e.Message)
}

// Predefined errors. Handlers write these; the SDK reconstructs them from
// response bodies so callers can match on Code.
var (
	ErrInvalidRequest = &APIError{
		StatusCode: http.StatusBadRequest,
		Code:       ErrorCodeInvalidRequest,
		Message:    "the request is malformed or missing required parameters",
	}

	ErrInvalidToken = &APIError{
		StatusCode: http.StatusUnauthorized,
		Code:       ErrorCodeInvalidToken,
		Message:    "invalid or missing access token",
	}

	ErrInvalidCode = &APIError{
		StatusCode: http.StatusUnauthorized,
		Code:       ErrorCodeInvalidCode,
		Message:    "the verification code is incorrect",
	}

	ErrNoActiveChallenge = &APIError{
		StatusCode: http.StatusNotFound,
		Code:       ErrorCodeNoActiveChallenge,
		Message:    "no active verification code for this target",
	}

	ErrTooManyAttempts = &APIError{
		StatusCode: http.StatusTooManyRequests,
		Code:       ErrorCodeTooManyAttempts,
		Message:    "too many failed attempts, request a new code",
	}

	ErrRateLimited = &APIError{
		StatusCode: http.StatusTooManyRequests,
		Code:       ErrorCodeRateLimited,
		Message:    "too many requests, slow down",
	}

	ErrUsernameTaken = &APIError{
		StatusCode: http.StatusConflict,
		Code:       ErrorCodeUsernameTaken,
		Message:    "this username is already taken",
	}

	ErrUsernameInvalid = &APIError{
		StatusCode: http.StatusBadRequest,
		Code:       ErrorCodeUsernameInvalid,
		Message:    "usernames need at least 3 letters, numbers, or underscores",
	}

	ErrProfileExists = &APIError{
		StatusCode: http.StatusConflict,
		Code:       ErrorCodeProfileExists,
		Message:    "this account already has a profile",
	}

	ErrProfileNotFound = &APIError{
		StatusCode: http.StatusNotFound,
		Code:       ErrorCodeProfileNotFound,
		Message:    "profile not found",
	}

	ErrDreamNotFound = &APIError{
		StatusCode: http.StatusNotFound,
		Code:       ErrorCodeDreamNotFound,
		Message:    "dream not found",
	}

	ErrServerError = &APIError{
		StatusCode: http.StatusInternalServerError,
		Code:       ErrorCodeServerError,
		Message:    "something went wrong, try again",
	}
)

// IsUsernameTaken reports whether err is the username uniqueness conflict.
func IsUsernameTaken(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Code == ErrorCodeUsernameTaken
}

// IsNotFound reports whether err is any of the service's not-found errors.
func IsNotFound(err error) bool {
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		return false
	}
	switch apiErr.Code {
	case ErrorCodeProfileNotFound, ErrorCodeDreamNotFound, ErrorCodeNoActiveChallenge:
		return true
	}
	return apiErr.StatusCode == http.StatusNotFound
}

// parseErrorResponse turns a non-success HTTP response body into a typed
// *APIError. Bodies that are not the service's error shape still produce a
// usable error carrying the status code.
func parseErrorResponse(resp *http.Response, body []byte) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}

	var errResp ErrorResponse
	if err := json.Unmarshal(body, &errResp); err == nil && errResp.Code != "" {
		return &APIError{
			StatusCode: resp.StatusCode,
			Code:       errResp.Code,
			Message:    errResp.Message,
		}
	}

	return &APIError{
		StatusCode: resp.StatusCode,
		Code:       ErrorCodeServerError,
		Message:    fmt.Sprintf("unexpected response status %d", resp.StatusCode),
	}
}
