package controllers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/kunal2899/event-management-api/internal/delivery/http/helpers"
	"github.com/kunal2899/event-management-api/internal/delivery/http/middleware"
	"github.com/kunal2899/event-management-api/internal/domain"
)

// RegisterUserRequest is the request body for POST /v1/users/register.
type RegisterUserRequest struct {
	Name     string `json:"name" validate:"required"`
	Address  string `json:"address" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,password"`
}

// LoginRequest is the request body for POST /v1/users/login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// RegisterUserResponse is the data payload for a successful registration.
type RegisterUserResponse struct {
	Message string             `json:"message"`
	User    *domain.PublicUser `json:"user"`
}

// LoginResponse is the data payload for a successful login.
type LoginResponse struct {
	Message string             `json:"message"`
	Token   string             `json:"token"`
	User    *domain.PublicUser `json:"user"`
}

// UserController handles user registration, login, and profile endpoints.
type UserController struct {
	Logger  *slog.Logger
	Service domain.UserService
}

// NewUserController creates a UserController with the given logger and service.
func NewUserController(logger *slog.Logger, svc domain.UserService) *UserController {
	return &UserController{
		Logger:  logger,
		Service: svc,
	}
}

func (c *UserController) internalError(w http.ResponseWriter, r *http.Request, err error) {
	c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
	helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, "something went wrong")
}

// Register godoc
// @Summary Register a new user
// @Description Create a new account with name, address, email, and password. Password must be at least 8 characters with upper, lower, digit, and symbol. Sends a welcome email on success.
// @Tags users
// @Accept json
// @Produce json
// @Param body body RegisterUserRequest true "Registration data"
// @Success 201 {object} helpers.APIResponse "data contains message and the created user"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request or validation_failed"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /v1/users/register [post]
func (c *UserController) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterUserRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	user, err := c.Service.Register(r.Context(), req.Name, req.Email, req.Password, req.Address)
	if err != nil {
		if errors.Is(err, domain.ErrDuplicateEmail) {
			helpers.WriteJSONError(w, http.StatusConflict, helpers.ErrCodeConflict, "Email already in use")
			return
		}
		c.internalError(w, r, err)
		return
	}

	helpers.WriteJSONSuccess(w, http.StatusCreated, RegisterUserResponse{
		Message: "User registered successfully",
		User:    user.Public(),
	})
}

// Login godoc
// @Summary Log in
// @Description Authenticate with email and password. Returns a JWT valid for 24 hours and the user.
// @Tags users
// @Accept json
// @Produce json
// @Param body body LoginRequest true "Login credentials"
// @Success 200 {object} helpers.APIResponse "data contains message, token, and user"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request or validation_failed"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /v1/users/login [post]
func (c *UserController) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	token, user, err := c.Service.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "Invalid email or password")
			return
		}
		c.internalError(w, r, err)
		return
	}

	helpers.WriteJSONSuccess(w, http.StatusOK, LoginResponse{
		Message: "Login successful",
		Token:   token,
		User:    user.Public(),
	})
}

// GetMe godoc
// @Summary Get current user
// @Description Returns the authenticated user's full profile (id, name, email, address, timestamps). The password hash is never serialized. Requires Bearer token.
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} helpers.APIResponse "data contains the user"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /v1/users/me [get]
func (c *UserController) GetMe(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	user, err := c.Service.GetProfile(r.Context(), identity.ID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "User not found")
			return
		}
		c.internalError(w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, user)
}

// GetMyEvents godoc
// @Summary List my registered events
// @Description Returns every event the authenticated user has registered for, with organizer name and registration date, ordered by event date. Requires Bearer token.
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} helpers.APIResponse "data contains the list of registered events"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /v1/users/me/events [get]
func (c *UserController) GetMyEvents(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	events, err := c.Service.ListRegisteredEvents(r.Context(), identity.ID)
	if err != nil {
		c.internalError(w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, events)
}
