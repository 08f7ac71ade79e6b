package handlers

import (
	"log/slog"
	"net/http"

	"github.com/jmoiron/sqlx"

	"translation-practice/services/rest-api/internal/service"
)

// AuthHandler serves registration, login and the account endpoints.
type AuthHandler struct {
	store service.UnitOfWork
	auth  *service.AuthService
}

// NewAuthHandler creates the auth handler.
func NewAuthHandler(store service.UnitOfWork, auth *service.AuthService) *AuthHandler {
	return &AuthHandler{store: store, auth: auth}
}

// CredentialsRequest is the body of register and login.
type CredentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// TokenResponse carries an access token.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// MeResponse describes the authenticated user.
type MeResponse struct {
	Email string `json:"email"`
}

// Register handles POST /api/v1/register
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req CredentialsRequest
	if err := decodeJSON(w, r, &req); err != nil {
		handleError(w, r, "AuthHandler.Register", err)
		return
	}

	var token string
	err := h.store.InTx(r.Context(), func(tx sqlx.ExtContext) error {
		var err error
		token, err = h.auth.Register(r.Context(), tx, req.Email, req.Password)
		return err
	})
	if err != nil {
		handleError(w, r, "AuthHandler.Register", err)
		return
	}

	respondJSON(w, http.StatusOK, TokenResponse{AccessToken: token, TokenType: "bearer"})
}

// Login handles POST /api/v1/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req CredentialsRequest
	if err := decodeJSON(w, r, &req); err != nil {
		handleError(w, r, "AuthHandler.Login", err)
		return
	}

	token, err := h.auth.Login(r.Context(), h.store.DB(), req.Email, req.Password)
	if err != nil {
		handleError(w, r, "AuthHandler.Login", err)
		return
	}

	respondJSON(w, http.StatusOK, TokenResponse{AccessToken: token, TokenType: "bearer"})
}

// Me handles GET /api/v1/me
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, MeResponse{Email: identity(r).Email})
}

// DeleteMe handles DELETE /api/v1/me
func (h *AuthHandler) DeleteMe(w http.ResponseWriter, r *http.Request) {
	id := identity(r)

	err := h.store.InTx(r.Context(), func(tx sqlx.ExtContext) error {
		return h.auth.DeleteAccount(r.Context(), tx, id)
	})
	if err != nil {
		handleError(w, r, "AuthHandler.DeleteMe", err)
		return
	}

	slog.Info("account deleted via api", slog.Int64("user_id", id.ID))
	w.WriteHeader(http.StatusNoContent)
}
