package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"translation-practice/services/rest-api/internal/domain"
	"translation-practice/services/rest-api/internal/middleware"
)

const maxBodyBytes = 1 << 20

var errInvalidBody = domain.Invalid(errors.New("invalid request body"))

// ErrorResponse is the body of every error answer.
type ErrorResponse struct {
	Detail string `json:"detail"`
}

func respondJSON(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func respondError(w http.ResponseWriter, statusCode int, message string) {
	respondJSON(w, statusCode, ErrorResponse{Detail: message})
}

// handleError maps a domain error to a status. Internal errors are logged and
// never echoed.
func handleError(w http.ResponseWriter, r *http.Request, op string, err error) {
	switch {
	case errors.Is(err, domain.ErrValidation):
		respondError(w, http.StatusBadRequest, validationMessage(err))
	case errors.Is(err, domain.ErrUserExists):
		respondError(w, http.StatusBadRequest, "Email already registered")
	case errors.Is(err, domain.ErrInvalidCredentials):
		w.Header().Set("WWW-Authenticate", "Bearer")
		respondError(w, http.StatusUnauthorized, "Incorrect email or password")
	case errors.Is(err, domain.ErrUnauthorized):
		w.Header().Set("WWW-Authenticate", "Bearer")
		respondError(w, http.StatusUnauthorized, "Invalid authentication credentials")
	case errors.Is(err, domain.ErrQuestionNotFound):
		respondError(w, http.StatusNotFound, "Question not found")
	case errors.Is(err, domain.ErrFavoriteNotFound):
		respondError(w, http.StatusNotFound, "Favorite question not found")
	case errors.Is(err, domain.ErrNotFound):
		respondError(w, http.StatusNotFound, "Not found")
	default:
		slog.Error("request failed",
			slog.String("op", op),
			slog.String("path", r.URL.Path),
			slog.Any("error", err),
		)
		respondError(w, http.StatusInternalServerError, "Internal server error")
	}
}

// validationMessage strips the ErrValidation wrapper added by domain.Invalid.
func validationMessage(err error) string {
	var multi interface{ Unwrap() []error }
	if errors.As(err, &multi) {
		for _, e := range multi.Unwrap() {
			if e != domain.ErrValidation {
				return e.Error()
			}
		}
	}
	return err.Error()
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		slog.Warn("failed to decode request", slog.String("path", r.URL.Path), slog.String("error", err.Error()))
		return errInvalidBody
	}
	return nil
}

func pathID(r *http.Request, name string) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil || id <= 0 {
		return 0, domain.Invalid(fmt.Errorf("invalid %s", name))
	}
	return id, nil
}

// identity is set by middleware.RequireAuth on every protected route.
func identity(r *http.Request) domain.Identity {
	id, ok := middleware.IdentityFrom(r.Context())
	if !ok {
		panic("handlers: identity missing, route is not behind RequireAuth")
	}
	return id
}
