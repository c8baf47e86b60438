package apierr

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/mcoot/torosvacas/internal/model"
	"github.com/mcoot/torosvacas/internal/services/auth"
)

// APIError is the JSON body of every error response
type APIError struct {
	Code    string              `json:"code"`
	Message string              `json:"message"`
	Errors  map[string][]string `json:"errors,omitempty"`
	Secret  string              `json:"secret,omitempty"`
}

// Common error codes
const (
	CodeInvalidRequest     = "INVALID_REQUEST"
	CodeValidationFailed   = "VALIDATION_FAILED"
	CodeUnauthorized       = "UNAUTHORIZED"
	CodeInvalidCredentials = "INVALID_CREDENTIALS"
	CodeEmailExists        = "EMAIL_EXISTS"
	CodeGameNotFound       = "GAME_NOT_FOUND"
	CodeGameOver           = "GAME_OVER"
	CodeDuplicateGuess     = "DUPLICATE_COMBINATION"
	CodeTimeout            = "GAME_TIMEOUT"
	CodeInvalidAttempt     = "INVALID_ATTEMPT"
	CodeNoHistory          = "NO_COMBINATION"
	CodeNotFound           = "NOT_FOUND"
	CodeMethodNotAllowed   = "METHOD_NOT_ALLOWED"
	CodeRateLimited        = "RATE_LIMITED"
	CodeEncodingError      = "ENCODING_ERROR"
	CodeInternalError      = "INTERNAL_ERROR"
)

// GameOverMessage is the message returned for guesses against finished games
const GameOverMessage = "Game Over"

// httpError combines an HTTP status code with an APIError
type httpError struct {
	status   int
	apiError APIError
}

// Error implements error interface
func (e *httpError) Error() string {
	return e.apiError.Message
}

// WriteError writes an error response to the response writer
func WriteError(w http.ResponseWriter, err error) {
	he := toHTTPError(err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(he.status)
	_ = json.NewEncoder(w).Encode(he.apiError)
}

// Status returns the HTTP status WriteError would use for err
func Status(err error) int {
	return toHTTPError(err).status
}

// toHTTPError converts an error to an httpError
func toHTTPError(err error) *httpError {
	var he *httpError
	if errors.As(err, &he) {
		return he
	}

	var verr *model.ValidationError
	if errors.As(err, &verr) {
		return &httpError{http.StatusUnprocessableEntity, APIError{
			Code:    CodeValidationFailed,
			Message: "The given data was invalid.",
			Errors:  verr.Fields,
		}}
	}

	var terr *model.TimeoutError
	if errors.As(err, &terr) {
		return &httpError{http.StatusBadRequest, APIError{
			Code:    CodeTimeout,
			Message: "Time is up, game over",
			Secret:  terr.Secret,
		}}
	}

	switch {
	// Game errors
	case errors.Is(err, model.ErrGameNotFound):
		return &httpError{http.StatusNotFound, APIError{Code: CodeGameNotFound, Message: "Game not found"}}
	case errors.Is(err, model.ErrGameOver):
		return &httpError{http.StatusBadRequest, APIError{Code: CodeGameOver, Message: GameOverMessage}}
	case errors.Is(err, model.ErrDuplicateGuess):
		return &httpError{http.StatusBadRequest, APIError{Code: CodeDuplicateGuess, Message: "Duplicate combination"}}
	case errors.Is(err, model.ErrInvalidAttempt):
		return &httpError{http.StatusBadRequest, APIError{Code: CodeInvalidAttempt, Message: "Invalid attempt number"}}
	case errors.Is(err, model.ErrNoHistoryAtAttempt):
		return &httpError{http.StatusNotFound, APIError{Code: CodeNoHistory, Message: "No combination found for this attempt"}}
	case errors.Is(err, model.ErrEncoding):
		return &httpError{http.StatusInternalServerError, APIError{Code: CodeEncodingError, Message: "Failed to store game history"}}

	// Auth errors
	case errors.Is(err, auth.ErrInvalidCredentials):
		return &httpError{http.StatusUnauthorized, APIError{Code: CodeInvalidCredentials, Message: "Invalid email or password"}}
	case errors.Is(err, auth.ErrInvalidSession):
		return &httpError{http.StatusUnauthorized, APIError{Code: CodeUnauthorized, Message: "Unauthenticated."}}
	case errors.Is(err, model.ErrEmailExists):
		return &httpError{http.StatusConflict, APIError{Code: CodeEmailExists, Message: "Email already registered"}}

	default:
		return &httpError{http.StatusInternalServerError, APIError{Code: CodeInternalError, Message: "Internal server error"}}
	}
}

// NewInvalidRequestError creates an invalid request error
func NewInvalidRequestError(message string) error {
	return &httpError{http.StatusBadRequest, APIError{Code: CodeInvalidRequest, Message: message}}
}

// NewUnauthorizedError creates an unauthorized error
func NewUnauthorizedError() error {
	return &httpError{http.StatusUnauthorized, APIError{Code: CodeUnauthorized, Message: "Unauthenticated."}}
}

// NewNotFoundError creates a route not found error
func NewNotFoundError() error {
	return &httpError{http.StatusNotFound, APIError{Code: CodeNotFound, Message: "Not found"}}
}

// NewMethodNotAllowedError creates a method not allowed error
func NewMethodNotAllowedError() error {
	return &httpError{http.StatusMethodNotAllowed, APIError{Code: CodeMethodNotAllowed, Message: "Method not allowed"}}
}

// NewInternalError creates an internal server error
func NewInternalError() error {
	return &httpError{http.StatusInternalServerError, APIError{Code: CodeInternalError, Message: "Internal server error"}}
}

// WriteRateLimited writes a 429 response with a Retry-After header
func WriteRateLimited(w http.ResponseWriter, _ *http.Request, retryAfter int) {
	w.Header().Set("Retry-After", strconv.Itoa(retryAfter))
	WriteError(w, &httpError{http.StatusTooManyRequests, APIError{
		Code:    CodeRateLimited,
		Message: "Too many requests. Please try again later.",
	}})
}
