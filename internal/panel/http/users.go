package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/veligame/adminpanel/internal/panel/domain"
	"github.com/veligame/adminpanel/internal/panel/service"
	"github.com/veligame/adminpanel/internal/panel/store"
	"github.com/veligame/adminpanel/pkg/httpx"
	"github.com/veligame/adminpanel/pkg/slogx"
)

// UserInfo is a user record as exposed over the API. The password hash
// never leaves the server.
type UserInfo struct {
	ID        string `json:"id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}

// UserRequest is the POST/PUT body for user management. Password is
// optional on update; empty keeps the current one.
type UserRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func toUserInfo(u domain.User) UserInfo {
	return UserInfo{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		CreatedAt: u.CreatedAt.Format(time.RFC3339),
		UpdatedAt: u.UpdatedAt.Format(time.RFC3339),
	}
}

// UsersHandler handles the administrative user CRUD endpoints.
type UsersHandler struct {
	UserService *service.UserService
}

// HandleList handles GET /users
//
//	@Summary		List Users
//	@Description	Returns all registered admin accounts, newest first
//	@Tags			Users
//	@Produce		json
//	@Security		BearerAuth
//	@Success		200	{array}		UserInfo
//	@Failure		401	{object}	httpx.ErrorResponse	"error, error_description"
//	@Failure		500	{object}	httpx.ErrorResponse	"error, error_description"
//	@Router			/users [get].
func (h *UsersHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	users, err := h.UserService.ListUsers(ctx)
	if err != nil {
		log.Error("failed to list users", "error", err)
		httpx.WriteError(w, http.StatusInternalServerError,
			"server_error", "Failed to list users")
		return
	}

	out := make([]UserInfo, len(users))
	for i, u := range users {
		out[i] = toUserInfo(u)
	}
	httpx.WriteJSON(w, http.StatusOK, out)
}

// HandleGet handles GET /users/{id}
//
//	@Summary		Get User
//	@Description	Returns a single admin account by id
//	@Tags			Users
//	@Produce		json
//	@Security		BearerAuth
//	@Param			id	path		string	true	"User ID (ULID)"
//	@Success		200	{object}	UserInfo
//	@Failure		401	{object}	httpx.ErrorResponse	"error, error_description"
//	@Failure		404	{object}	httpx.ErrorResponse	"error, error_description"
//	@Failure		500	{object}	httpx.ErrorResponse	"error, error_description"
//	@Router			/users/{id} [get].
func (h *UsersHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	user, err := h.UserService.GetUserByID(ctx, r.PathValue("id"))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			httpx.WriteError(w, http.StatusNotFound,
				"user_not_found", "User not found")
			return
		}
		log.Error("failed to get user", "error", err)
		httpx.WriteError(w, http.StatusInternalServerError,
			"server_error", "Failed to get user")
		return
	}

	httpx.WriteJSON(w, http.StatusOK, toUserInfo(user))
}

// HandleCreate handles POST /users
//
//	@Summary		Create User
//	@Description	Creates an admin account directly, bypassing self-registration
//	@Tags			Users
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			request	body		UserRequest	true	"New user fields"
//	@Success		201		{object}	UserInfo
//	@Failure		400		{object}	httpx.ErrorResponse	"error, error_description"
//	@Failure		401		{object}	httpx.ErrorResponse	"error, error_description"
//	@Failure		500		{object}	httpx.ErrorResponse	"error, error_description"
//	@Router			/users [post].
func (h *UsersHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req UserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest,
			"invalid_request", "Invalid JSON in request body")
		return
	}

	user, err := h.UserService.CreateUser(ctx, req.Username, req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidUser):
			httpx.WriteError(w, http.StatusBadRequest,
				"invalid_request", "Username, email and password are required")
		case errors.Is(err, store.ErrAlreadyExists):
			httpx.WriteError(w, http.StatusBadRequest,
				"account_exists", "Username or email is already taken")
		default:
			log.Error("failed to create user", "error", err)
			httpx.WriteError(w, http.StatusInternalServerError,
				"server_error", "Failed to create user")
		}
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, toUserInfo(user))
}

// HandleUpdate handles PUT /users/{id}
//
//	@Summary		Update User
//	@Description	Replaces username and email, and the password when one is submitted
//	@Tags			Users
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			id		path	string		true	"User ID (ULID)"
//	@Param			request	body	UserRequest	true	"Updated user fields"
//	@Success		204		"User updated"
//	@Failure		400		{object}	httpx.ErrorResponse	"error, error_description"
//	@Failure		401		{object}	httpx.ErrorResponse	"error, error_description"
//	@Failure		404		{object}	httpx.ErrorResponse	"error, error_description"
//	@Failure		500		{object}	httpx.ErrorResponse	"error, error_description"
//	@Router			/users/{id} [put].
func (h *UsersHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req UserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest,
			"invalid_request", "Invalid JSON in request body")
		return
	}

	err := h.UserService.UpdateUser(ctx, r.PathValue("id"), req.Username, req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, store.ErrNotFound):
			httpx.WriteError(w, http.StatusNotFound,
				"user_not_found", "User not found")
		case errors.Is(err, service.ErrInvalidUser):
			httpx.WriteError(w, http.StatusBadRequest,
				"invalid_request", "Username and email are required")
		case errors.Is(err, store.ErrAlreadyExists):
			httpx.WriteError(w, http.StatusBadRequest,
				"account_exists", "Username or email is already taken")
		default:
			log.Error("failed to update user", "error", err)
			httpx.WriteError(w, http.StatusInternalServerError,
				"server_error", "Failed to update user")
		}
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// HandleDelete handles DELETE /users/{id}
//
//	@Summary		Delete User
//	@Description	Removes an admin account
//	@Tags			Users
//	@Produce		json
//	@Security		BearerAuth
//	@Param			id	path	string	true	"User ID (ULID)"
//	@Success		204	"User deleted"
//	@Failure		401	{object}	httpx.ErrorResponse	"error, error_description"
//	@Failure		404	{object}	httpx.ErrorResponse	"error, error_description"
//	@Failure		500	{object}	httpx.ErrorResponse	"error, error_description"
//	@Router			/users/{id} [delete].
func (h *UsersHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	if err := h.UserService.DeleteUser(ctx, r.PathValue("id")); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			httpx.WriteError(w, http.StatusNotFound,
				"user_not_found", "User not found")
			return
		}
		log.Error("failed to delete user", "error", err)
		httpx.WriteError(w, http.StatusInternalServerError,
			"server_error", "Failed to delete user")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
