package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/veligame/adminpanel/internal/panel/service"
	"github.com/veligame/adminpanel/pkg/httpx"
	"github.com/veligame/adminpanel/pkg/slogx"
)

// LoginRequest is the POST /api/login body.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse carries the freshly minted access token.
type LoginResponse struct {
	Token string `json:"token"`
}

// RegisterRequest is the POST /api/register body.
type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RegisterResponse echoes the created account, without credential material.
type RegisterResponse struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

type LoginHandler struct {
	AuthService *service.AuthService
}

// ServeHTTP godoc
//
//	@Summary		Login Endpoint
//	@Description	Exchanges a username/password pair for a short-lived JWT access token
//	@Description	Unknown username and wrong password are indistinguishable to the caller
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		LoginRequest		true	"Credentials"
//	@Success		200		{object}	LoginResponse		"token"
//	@Failure		400		{object}	httpx.ErrorResponse	"error, error_description"
//	@Failure		404		{object}	httpx.ErrorResponse	"error, error_description"
//	@Failure		500		{object}	httpx.ErrorResponse	"error, error_description"
//	@Router			/api/login [post].
func (h *LoginHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest,
			"invalid_request", "Invalid JSON in request body")
		return
	}

	token, err := h.AuthService.Login(ctx, req.Username, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			// The admin frontend expects 404 for a failed login.
			httpx.WriteError(w, http.StatusNotFound,
				"invalid_credentials", "Username or password is incorrect")
			return
		}
		log.Error("login failed", "error", err)
		httpx.WriteError(w, http.StatusInternalServerError,
			"server_error", "Failed to process login")
		return
	}

	httpx.WriteJSON(w, http.StatusOK, LoginResponse{Token: token})
}

type RegisterHandler struct {
	AuthService *service.AuthService
}

// ServeHTTP godoc
//
//	@Summary		Registration Endpoint
//	@Description	Creates a new admin account with a unique username and email
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		RegisterRequest		true	"New account fields"
//	@Success		200		{object}	RegisterResponse	"id, username, email"
//	@Failure		400		{object}	httpx.ErrorResponse	"error, error_description"
//	@Failure		500		{object}	httpx.ErrorResponse	"error, error_description"
//	@Router			/api/register [post].
func (h *RegisterHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest,
			"invalid_request", "Invalid JSON in request body")
		return
	}

	user, err := h.AuthService.Register(ctx, req.Username, req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrAccountExists):
			httpx.WriteError(w, http.StatusBadRequest,
				"account_exists", "Username or email is already taken")
		case errors.Is(err, service.ErrInvalidRegistration):
			httpx.WriteError(w, http.StatusBadRequest,
				"invalid_request", "Username, email and password are required")
		default:
			log.Error("registration failed", "error", err)
			httpx.WriteError(w, http.StatusInternalServerError,
				"server_error", "Failed to register account")
		}
		return
	}

	httpx.WriteJSON(w, http.StatusOK, RegisterResponse{
		ID:       user.ID,
		Username: user.Username,
		Email:    user.Email,
	})
}
