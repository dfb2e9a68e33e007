package handlers

import (
	"errors"

	"github.com/danielgtaylor/huma/v2"
	"github.com/snipurl/snipurl/internal/shortlink"
)

// errorModel is the wire shape of every failure: {"error": "<message>"}.
type errorModel struct {
	status  int
	Message string `json:"error"`
}

func (e *errorModel) Error() string {
	return e.Message
}

func (e *errorModel) GetStatus() int {
	return e.status
}

// newError replaces huma's RFC 7807 error model with the flat error body.
func newError(status int, message string, _ ...error) huma.StatusError {
	return &errorModel{
		status:  status,
		Message: message,
	}
}

// mapDomainError translates domain sentinels into HTTP failures with the
// API's exact error messages.
func mapDomainError(err error) error {
	switch {
	case errors.Is(err, shortlink.ErrMissingURL):
		return huma.Error400BadRequest("Missing required field: url")
	case errors.Is(err, shortlink.ErrInvalidURL):
		return huma.Error400BadRequest("Invalid URL format")
	case errors.Is(err, shortlink.ErrInvalidValidity):
		return huma.Error400BadRequest("Validity must be a positive integer")
	case errors.Is(err, shortlink.ErrInvalidCode):
		return huma.Error400BadRequest("Shortcode must be alphanumeric and 4-20 characters long")
	case errors.Is(err, shortlink.ErrCodeInUse):
		return huma.Error409Conflict("Shortcode already in use")
	case errors.Is(err, shortlink.ErrNotFound):
		return huma.Error404NotFound("Shortcode not found")
	case errors.Is(err, shortlink.ErrExpired):
		return huma.Error410Gone("Link has expired")
	default:
		return huma.Error500InternalServerError("Internal server error")
	}
}
