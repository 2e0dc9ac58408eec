package apierr

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/mcoot/jumpbble/internal/model"
	"github.com/mcoot/jumpbble/internal/services/bot"
)

// APIError represents an API error response
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorResponse wraps an APIError
type ErrorResponse struct {
	Error APIError `json:"error"`
}

// Common error codes
const (
	CodeInvalidRequest   = "INVALID_REQUEST"
	CodeIllegalDirection = "ILLEGAL_DIRECTION"
	CodeInvalidHandIndex = "INVALID_HAND_INDEX"
	CodeInvalidLetter    = "INVALID_LETTER"
	CodeInvalidPosition  = "INVALID_POSITION"
	CodeInvalidConfig    = "INVALID_CONFIG"
	CodeGameOver         = "GAME_OVER"
	CodeGameNotFound     = "GAME_NOT_FOUND"
	CodeUnknownStrategy  = "UNKNOWN_STRATEGY"
	CodeUnavailable      = "UNAVAILABLE"
	CodeInternalError    = "INTERNAL_ERROR"
)

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
	_ = json.NewEncoder(w).Encode(ErrorResponse{Error: he.apiError})
}

// Status returns the HTTP status an error maps to
func Status(err error) int {
	return toHTTPError(err).status
}

// toHTTPError converts an error to an httpError. Rejected moves keep the
// wrapped message since it says which rule was broken.
func toHTTPError(err error) *httpError {
	var he *httpError
	if errors.As(err, &he) {
		return he
	}

	switch {
	case errors.Is(err, model.ErrGameNotFound):
		return &httpError{http.StatusNotFound, APIError{CodeGameNotFound, "Game not found"}}
	case errors.Is(err, model.ErrGameOver):
		return &httpError{http.StatusConflict, APIError{CodeGameOver, "Game is over"}}
	case errors.Is(err, model.ErrIllegalDirection):
		return &httpError{http.StatusUnprocessableEntity, APIError{CodeIllegalDirection, err.Error()}}
	case errors.Is(err, model.ErrInvalidHandIndex):
		return &httpError{http.StatusUnprocessableEntity, APIError{CodeInvalidHandIndex, err.Error()}}
	case errors.Is(err, model.ErrInvalidLetter):
		return &httpError{http.StatusUnprocessableEntity, APIError{CodeInvalidLetter, err.Error()}}
	case errors.Is(err, model.ErrInvalidPosition):
		return &httpError{http.StatusUnprocessableEntity, APIError{CodeInvalidPosition, err.Error()}}
	case errors.Is(err, model.ErrInvalidConfig):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidConfig, err.Error()}}
	case errors.Is(err, bot.ErrUnknownStrategy):
		return &httpError{http.StatusBadRequest, APIError{CodeUnknownStrategy, err.Error()}}

	default:
		return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
	}
}

// NewInvalidRequestError creates an invalid request error
func NewInvalidRequestError(message string) error {
	return &httpError{http.StatusBadRequest, APIError{CodeInvalidRequest, message}}
}

// NewUnavailableError creates a service unavailable error
func NewUnavailableError(message string) error {
	return &httpError{http.StatusServiceUnavailable, APIError{CodeUnavailable, message}}
}

// NewInternalError creates an internal server error
func NewInternalError() error {
	return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
}
