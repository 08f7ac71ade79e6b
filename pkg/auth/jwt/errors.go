package jwt

import "errors"

// Every validation failure wraps ErrInvalidToken so callers can treat them
// uniformly; the specific sentinel is kept for logging.
var (
	ErrInvalidToken         = errors.New("invalid token")
	ErrExpiredToken         = errors.New("token expired")
	ErrInvalidSignature     = errors.New("invalid token signature")
	ErrMalformedToken       = errors.New("malformed token")
	ErrInvalidSigningMethod = errors.New("invalid signing method")
	ErrWrongTokenType       = errors.New("wrong token type")
	ErrMissingKey           = errors.New("missing key")
	ErrWeakKey              = errors.New("signing key too short")
)
