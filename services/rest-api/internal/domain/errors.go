package domain

import "errors"

// Errors crossing the service boundary. Handlers map them to HTTP statuses;
// anything else is an internal error.
var (
	ErrValidation         = errors.New("validation failed")                  // 400
	ErrUserExists         = errors.New("email already registered")           // 400
	ErrInvalidCredentials = errors.New("incorrect email or password")        // 401
	ErrUnauthorized       = errors.New("invalid authentication credentials") // 401
	ErrNotFound           = errors.New("not found")                          // 404
)

// Storage lookups that found nothing. Each wraps ErrNotFound.
var (
	ErrUserNotFound     = notFound("user not found")
	ErrQuestionNotFound = notFound("question not found")
	ErrFavoriteNotFound = notFound("favorite question not found")
)

type notFoundError struct{ msg string }

func notFound(msg string) error { return &notFoundError{msg: msg} }

func (e *notFoundError) Error() string { return e.msg }

func (e *notFoundError) Unwrap() error { return ErrNotFound }

// Invalid marks err as a validation failure. The message is err's own.
func Invalid(err error) error { return &validationError{err: err} }

type validationError struct{ err error }

func (e *validationError) Error() string { return e.err.Error() }

func (e *validationError) Unwrap() []error { return []error{ErrValidation, e.err} }
