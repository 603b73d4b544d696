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

// AccountHandlerParams holds dependencies for AccountHandler, injected by Fx.
type AccountHandlerParams struct {
	fx.In

	AccountUC usecase.AccountUsecase
	AuthUC    usecase.AuthUsecase
	Logger    *slog.Logger
}

// AccountHandler holds dependencies for account lifecycle handlers.
type AccountHandler struct {
	accountUC usecase.AccountUsecase
	authUC    usecase.AuthUsecase
	logger    *slog.Logger
}

// NewAccountHandler is the constructor for AccountHandler.
func NewAccountHandler(params AccountHandlerParams) *AccountHandler {
	return &AccountHandler{
		accountUC: params.AccountUC,
		authUC:    params.AuthUC,
		logger:    params.Logger,
	}
}

// SignupRequest represents the request body for self-registration.
type SignupRequest struct {
	Name          string  `json:"name" validate:"required"`
	Email         string  `json:"email" validate:"required,email"`
	Password      string  `json:"password" validate:"required"`
	Age           int     `json:"age" validate:"omitempty,gte=0,lte=150"`
	Weight        float64 `json:"weight" validate:"omitempty,gte=0"`
	Height        float64 `json:"height" validate:"omitempty,gte=0"`
	ActivityLevel string  `json:"activity_level"`
	Goal          string  `json:"goal"`
	DailyGoal     int     `json:"daily_goal" validate:"omitempty,gte=0"`
}

// UpdateProfileRequest represents the request body for a profile update.
// Absent fields are left untouched.
type UpdateProfileRequest struct {
	Name          *string  `json:"name"`
	Age           *int     `json:"age" validate:"omitempty,gte=0,lte=150"`
	Weight        *float64 `json:"weight" validate:"omitempty,gte=0"`
	Height        *float64 `json:"height" validate:"omitempty,gte=0"`
	ActivityLevel *string  `json:"activity_level"`
	Goal          *string  `json:"goal"`
	DailyGoal     *int     `json:"daily_goal" validate:"omitempty,gte=0"`
}

// Signup handles the self-registration request.
func (h *AccountHandler) Signup(c echo.Context) error {
	var req SignupRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid registration input")
	}

	if err := c.Validate(&req); err != nil {
		return response.BadRequest(c, "VALIDATION_ERROR", err.Error())
	}

	account, err := h.accountUC.Signup(c.Request().Context(), usecase.SignupInput{
		Name:          req.Name,
		Email:         req.Email,
		Password:      req.Password,
		Age:           req.Age,
		Weight:        req.Weight,
		Height:        req.Height,
		ActivityLevel: req.ActivityLevel,
		Goal:          req.Goal,
		DailyGoal:     req.DailyGoal,
	})
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusCreated, newAccountResponse(account), "Account registered successfully")
}

// GetProfile returns the profile of the account named by the caller's token.
func (h *AccountHandler) GetProfile(c echo.Context) error {
	userID, err := h.getUserID(c)
	if err != nil {
		return err
	}

	account, err := h.authUC.Resume(c.Request().Context(), userID)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, newAccountResponse(account), "Profile retrieved successfully")
}

// UpdateProfile handles the profile update request for the caller's account.
func (h *AccountHandler) UpdateProfile(c echo.Context) error {
	userID, err := h.getUserID(c)
	if err != nil {
		return err
	}

	var req UpdateProfileRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid profile input")
	}

	if err := c.Validate(&req); err != nil {
		return response.BadRequest(c, "VALIDATION_ERROR", err.Error())
	}

	account, err := h.accountUC.UpdateProfile(c.Request().Context(), userID, usecase.ProfilePatch{
		Name:          req.Name,
		Age:           req.Age,
		Weight:        req.Weight,
		Height:        req.Height,
		ActivityLevel: req.ActivityLevel,
		Goal:          req.Goal,
		DailyGoal:     req.DailyGoal,
	})
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, newAccountResponse(account), "Profile updated successfully")
}

// DeleteAccount handles the account deletion request for the caller's account.
func (h *AccountHandler) DeleteAccount(c echo.Context) error {
	userID, err := h.getUserID(c)
	if err != nil {
		return err
	}

	if err := h.accountUC.DeleteAccount(c.Request().Context(), userID); err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, map[string]string{"message": "Account deleted successfully"}, "Account deleted successfully")
}

// getUserID extracts the user ID from the context
func (h *AccountHandler) getUserID(c echo.Context) (uuid.UUID, error) {
	userIDVal := c.Get("userID")
	userID, ok := userIDVal.(uuid.UUID)
	if !ok {
		return uuid.Nil, response.Unauthorized(c, "INVALID_TOKEN", "Invalid user ID in token")
	}

	return userID, nil
}
