package api

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	app_errors "elelem/backend/internal/errors"
	"elelem/backend/internal/interfaces"
)

// AuthHandler serves registration, login, and the user read endpoints.
type AuthHandler struct {
	users interfaces.UserService
}

func NewAuthHandler(users interfaces.UserService) *AuthHandler {
	return &AuthHandler{users: users}
}

// RegisterRequest is the DTO for account creation.
type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email" example:"user@example.com"`
	Password string `json:"password" validate:"required,min=8"`
}

// LoginRequest is the DTO for credential exchange.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// HandleRegister godoc
// @Summary      Register a new user
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        user  body  RegisterRequest  true  "Credentials"
// @Success      201   {object}  model.User
// @Failure      400   {object}  ErrorResponse
// @Failure      409   {object}  ErrorResponse
// @Router       /v1/auth/register [post]
func (h *AuthHandler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, fmt.Errorf("%w: invalid request payload", app_errors.ErrValidation))
		return
	}
	if err := validateRequest(req); err != nil {
		respondWithError(w, err)
		return
	}

	user, err := h.users.Register(r.Context(), req.Email, req.Password)
	if err != nil {
		respondWithError(w, err)
		return
	}
	respondWithJSON(w, http.StatusCreated, user)
}

// HandleLogin godoc
// @Summary      Log in and receive a bearer token
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        credentials  body  LoginRequest  true  "Credentials"
// @Success      200  {object}  TokenResponse
// @Failure      401  {object}  ErrorResponse
// @Router       /v1/auth/login [post]
func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, fmt.Errorf("%w: invalid request payload", app_errors.ErrValidation))
		return
	}
	if err := validateRequest(req); err != nil {
		respondWithError(w, err)
		return
	}

	token, err := h.users.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		respondWithError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, TokenResponse{AccessToken: token, TokenType: "bearer"})
}

// HandleMe godoc
// @Summary      Get the current user
// @Tags         Users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  model.User
// @Failure      401  {object}  ErrorResponse
// @Router       /v1/users/me [get]
func (h *AuthHandler) HandleMe(w http.ResponseWriter, r *http.Request) {
	user, ok := UserFromContext(r.Context())
	if !ok {
		respondWithError(w, app_errors.ErrUnauthenticated)
		return
	}
	respondWithJSON(w, http.StatusOK, user)
}

// HandleGetUser godoc
// @Summary      Get a user by id (self only)
// @Tags         Users
// @Produce      json
// @Security     BearerAuth
// @Param        userID  path  string  true  "User ID"
// @Success      200  {object}  model.User
// @Failure      403  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /v1/users/{userID} [get]
func (h *AuthHandler) HandleGetUser(w http.ResponseWriter, r *http.Request) {
	requester, ok := UserFromContext(r.Context())
	if !ok {
		respondWithError(w, app_errors.ErrUnauthenticated)
		return
	}

	user, err := h.users.GetUser(r.Context(), requester.ID, chi.URLParam(r, "userID"))
	if err != nil {
		respondWithError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, user)
}
