package shortlink

import "errors"

var (
	// ErrNotFound is returned when a shortcode has no entry in the store.
	ErrNotFound = errors.New("shortcode not found")

	// ErrCodeInUse is returned when creating an entry whose shortcode is taken.
	ErrCodeInUse = errors.New("shortcode already in use")

	// ErrExpired is returned when resolving an entry past its expiry.
	ErrExpired = errors.New("link has expired")

	// ErrMissingURL is returned when a create request omits the url field.
	ErrMissingURL = errors.New("missing url field")

	// ErrInvalidURL is returned when the url is not a well-formed http(s) URL.
	ErrInvalidURL = errors.New("invalid url format")

	// ErrInvalidCode is returned when a custom shortcode fails validation.
	ErrInvalidCode = errors.New("invalid shortcode")

	// ErrInvalidValidity is returned when validity is not a positive integer.
	ErrInvalidValidity = errors.New("invalid validity")
)
