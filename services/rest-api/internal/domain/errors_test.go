package domain

import (
	"errors"
	"fmt"
	"testing"
)

func TestNotFoundWrapsErrNotFound(t *testing.T) {
	for _, err := range []error{ErrUserNotFound, ErrQuestionNotFound, ErrFavoriteNotFound} {
		if !errors.Is(err, ErrNotFound) {
			t.Errorf("%v does not wrap ErrNotFound", err)
		}
		if !errors.Is(fmt.Errorf("op: %w", err), err) {
			t.Errorf("%v lost identity after wrapping", err)
		}
	}
	if errors.Is(ErrUserNotFound, ErrQuestionNotFound) {
		t.Error("distinct not-found errors compare equal")
	}
}

func TestInvalid(t *testing.T) {
	cause := errors.New("email is required")
	err := Invalid(cause)

	if !errors.Is(err, ErrValidation) {
		t.Error("Invalid() does not wrap ErrValidation")
	}
	if !errors.Is(err, cause) {
		t.Error("Invalid() lost the cause")
	}
	if err.Error() != "email is required" {
		t.Errorf("Error() = %q", err.Error())
	}
}
