// Package handler contains the HTTP handlers for the application.
package handler

import (
	"log/slog"
	"net/http"

	"mealtrack/internal/delivery/http/response"
	"mealtrack/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// AuthHandlerParams holds dependencies for AuthHandler, injected by Fx.
type AuthHandlerParams struct {
	fx.In

	AuthUC      usecase.AuthUsecase
	BootstrapUC usecase.BootstrapUsecase
	Logger      *slog.Logger
}

// AuthHandler holds dependencies for authentication and setup handlers.
type AuthHandler struct {
	authUC      usecase.AuthUsecase
	bootstrapUC usecase.BootstrapUsecase
	logger      *slog.Logger
}

// NewAuthHandler is the constructor for AuthHandler.
func NewAuthHandler(params AuthHandlerParams) *AuthHandler {
	return &AuthHandler{
		authUC:      params.AuthUC,
		bootstrapUC: params.BootstrapUC,
		logger:      params.Logger,
	}
}

// LoginRequest represents the request body for authenticating.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse carries the access token and the authenticated account.
type LoginResponse struct {
	AccessToken string           `json:"access_token"`
	Account     *AccountResponse `json:"account"`
}

// CreateSuperadminRequest represents the request body for the one-time
// superadmin setup.
type CreateSuperadminRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// Login handles the login request.
func (h *AuthHandler) Login(c echo.Context) error {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid login input")
	}

	if err := c.Validate(&req); err != nil {
		return response.BadRequest(c, "VALIDATION_ERROR", err.Error())
	}

	output, err := h.authUC.Login(c.Request().Context(), usecase.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, LoginResponse{
		AccessToken: output.AccessToken,
		Account:     newAccountResponse(output.Account),
	}, "Login successful")
}

// Logout handles the logout request. Logout never fails; a missing session
// is already the desired end state.
func (h *AuthHandler) Logout(c echo.Context) error {
	h.authUC.Logout(c.Request().Context())

	return response.Success(c, http.StatusOK, map[string]string{"message": "Successfully logged out"}, "Logout successful")
}

// Session handles the session resume request, revalidating the identity
// carried by the caller's token against the backing store.
func (h *AuthHandler) Session(c echo.Context) error {
	userID, err := h.getUserID(c)
	if err != nil {
		return err
	}

	account, err := h.authUC.Resume(c.Request().Context(), userID)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, newAccountResponse(account), "Session resumed successfully")
}

// SetupStatus reports whether the one-time superadmin setup has completed.
func (h *AuthHandler) SetupStatus(c echo.Context) error {
	exists, err := h.bootstrapUC.CheckSuperadminExists(c.Request().Context())
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, map[string]bool{"superadmin_exists": exists}, "Setup status retrieved successfully")
}

// CreateSuperadmin handles the one-time superadmin creation request.
func (h *AuthHandler) CreateSuperadmin(c echo.Context) error {
	var req CreateSuperadminRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid superadmin input")
	}

	if err := c.Validate(&req); err != nil {
		return response.BadRequest(c, "VALIDATION_ERROR", err.Error())
	}

	account, err := h.bootstrapUC.CreateSuperadmin(c.Request().Context(), usecase.SuperadminInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusCreated, newAccountResponse(account), "Superadmin created successfully")
}

// HealthCheck is a simple handler to check if the service is up.
func HealthCheck(c echo.Context) error {
	return response.Success(c, http.StatusOK, map[string]string{"status": "ok"}, "Service is healthy")
}

// getUserID extracts the user ID from the context
func (h *AuthHandler) getUserID(c echo.Context) (uuid.UUID, error) {
	userIDVal := c.Get("userID")
	userID, ok := userIDVal.(uuid.UUID)
	if !ok {
		return uuid.Nil, response.Unauthorized(c, "INVALID_TOKEN", "Invalid user ID in token")
	}

	return userID, nil
}
