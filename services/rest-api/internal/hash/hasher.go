// Package hash implements password hashing. New digests use the configured
// scheme; verification accepts any supported scheme so the configured one can
// change without locking existing users out.
package hash

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
)

const (
	Bcrypt   = "bcrypt"
	Argon2ID = "argon2id"
)

var (
	ErrInvalidHash         = errors.New("invalid hash format")
	ErrIncompatibleVersion = errors.New("incompatible argon2 version")
	ErrInvalidCost         = errors.New("invalid hash cost")
	ErrUnknownScheme       = errors.New("unknown hash scheme")
)

// Hasher hashes new passwords with one scheme and verifies digests of any
// supported scheme.
type Hasher struct {
	scheme string
	bcrypt *BcryptHasher
	argon2 *Argon2Hasher
}

// New returns a Hasher that hashes with scheme. An empty scheme means bcrypt.
func New(scheme string, bcryptCost int) (*Hasher, error) {
	if scheme == "" {
		scheme = Bcrypt
	}
	if scheme != Bcrypt && scheme != Argon2ID {
		return nil, fmt.Errorf("%w: %q", ErrUnknownScheme, scheme)
	}

	b, err := NewBcryptHasher(bcryptCost)
	if err != nil {
		return nil, err
	}

	return &Hasher{
		scheme: scheme,
		bcrypt: b,
		argon2: NewArgon2Hasher(),
	}, nil
}

// Hash hashes password with the configured scheme.
func (h *Hasher) Hash(password string) (string, error) {
	if h.scheme == Argon2ID {
		return h.argon2.Hash(password)
	}
	return h.bcrypt.Hash(password)
}

// Verify returns false for a wrong password and for any internal error. The
// error is logged, never returned, so a corrupt stored digest cannot break
// the request path.
func (h *Hasher) Verify(password, digest string) bool {
	var (
		ok  bool
		err error
	)

	switch {
	case strings.HasPrefix(digest, argon2Prefix):
		ok, err = h.argon2.Verify(password, digest)
	case strings.HasPrefix(digest, "$2"):
		ok, err = h.bcrypt.Verify(password, digest)
	default:
		err = ErrUnknownScheme
	}

	if err != nil {
		slog.Warn("password verification error", slog.String("op", "hash.Verify"), slog.Any("error", err))
		return false
	}
	return ok
}
