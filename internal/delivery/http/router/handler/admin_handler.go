package handler

import (
	"log/slog"
	"net/http"
	"strconv"

	"mealtrack/internal/delivery/http/response"
	"mealtrack/internal/domain/entity"
	"mealtrack/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// AdminHandlerParams holds dependencies for AdminHandler, injected by Fx.
type AdminHandlerParams struct {
	fx.In

	AdminUC usecase.AdminUsecase
	Logger  *slog.Logger
}

// AdminHandler holds dependencies for privileged administration handlers.
type AdminHandler struct {
	adminUC usecase.AdminUsecase
	logger  *slog.Logger
}

// NewAdminHandler is the constructor for AdminHandler.
func NewAdminHandler(params AdminHandlerParams) *AdminHandler {
	return &AdminHandler{
		adminUC: params.AdminUC,
		logger:  params.Logger,
	}
}

// SuspendUserRequest represents the request body for suspending an account.
type SuspendUserRequest struct {
	Reason string `json:"reason" validate:"required"`
}

// UpdateRoleRequest represents the request body for changing a role.
type UpdateRoleRequest struct {
	Role string `json:"role" validate:"required"`
}

// SuspendUser handles the request to suspend an account.
func (h *AdminHandler) SuspendUser(c echo.Context) error {
	actorID, err := h.getUserID(c)
	if err != nil {
		return err
	}

	targetID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_ID", "Invalid account ID")
	}

	var req SuspendUserRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid suspension input")
	}

	if err := c.Validate(&req); err != nil {
		return response.BadRequest(c, "VALIDATION_ERROR", err.Error())
	}

	if err := h.adminUC.SuspendUser(c.Request().Context(), actorID, targetID, req.Reason); err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, map[string]string{"message": "Account suspended successfully"}, "Account suspended successfully")
}

// ReactivateUser handles the request to reactivate a suspended account.
func (h *AdminHandler) ReactivateUser(c echo.Context) error {
	actorID, err := h.getUserID(c)
	if err != nil {
		return err
	}

	targetID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_ID", "Invalid account ID")
	}

	if err := h.adminUC.ReactivateUser(c.Request().Context(), actorID, targetID); err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, map[string]string{"message": "Account reactivated successfully"}, "Account reactivated successfully")
}

// UpdateRole handles the request to change an account's role.
func (h *AdminHandler) UpdateRole(c echo.Context) error {
	actorID, err := h.getUserID(c)
	if err != nil {
		return err
	}

	targetID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_ID", "Invalid account ID")
	}

	var req UpdateRoleRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid role input")
	}

	if err := c.Validate(&req); err != nil {
		return response.BadRequest(c, "VALIDATION_ERROR", err.Error())
	}

	account, err := h.adminUC.UpdateRole(c.Request().Context(), actorID, targetID, entity.Role(req.Role))
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, newAccountResponse(account), "Role updated successfully")
}

// DeleteUser handles the request to remove an account.
func (h *AdminHandler) DeleteUser(c echo.Context) error {
	actorID, err := h.getUserID(c)
	if err != nil {
		return err
	}

	targetID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_ID", "Invalid account ID")
	}

	if err := h.adminUC.DeleteUser(c.Request().Context(), actorID, targetID); err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, map[string]string{"message": "Account deleted successfully"}, "Account deleted successfully")
}

// ListAccounts handles the request to list all accounts.
func (h *AdminHandler) ListAccounts(c echo.Context) error {
	actorID, err := h.getUserID(c)
	if err != nil {
		return err
	}

	accounts, err := h.adminUC.ListAccounts(c.Request().Context(), actorID)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, newAccountResponseList(accounts), "Accounts retrieved successfully")
}

// Stats handles the request for aggregate account statistics.
func (h *AdminHandler) Stats(c echo.Context) error {
	actorID, err := h.getUserID(c)
	if err != nil {
		return err
	}

	stats, err := h.adminUC.Stats(c.Request().Context(), actorID)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, newAccountStatsResponse(stats), "Statistics retrieved successfully")
}

// SubscriptionHistory handles the request for one account's audit trail.
func (h *AdminHandler) SubscriptionHistory(c echo.Context) error {
	actorID, err := h.getUserID(c)
	if err != nil {
		return err
	}

	targetID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_ID", "Invalid account ID")
	}

	events, err := h.adminUC.SubscriptionHistory(c.Request().Context(), actorID, targetID)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, newSubscriptionEventResponseList(events), "Subscription history retrieved successfully")
}

// RecentSubscriptionEvents handles the request for the newest audit events
// across all accounts. An optional "limit" query parameter caps the result.
func (h *AdminHandler) RecentSubscriptionEvents(c echo.Context) error {
	actorID, err := h.getUserID(c)
	if err != nil {
		return err
	}

	limit := 0
	if raw := c.QueryParam("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			return response.BadRequest(c, "INVALID_INPUT", "Invalid limit parameter")
		}
		limit = parsed
	}

	events, err := h.adminUC.RecentSubscriptionEvents(c.Request().Context(), actorID, limit)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, newSubscriptionEventResponseList(events), "Subscription events retrieved successfully")
}

// getUserID extracts the user ID from the context
func (h *AdminHandler) getUserID(c echo.Context) (uuid.UUID, error) {
	userIDVal := c.Get("userID")
	userID, ok := userIDVal.(uuid.UUID)
	if !ok {
		return uuid.Nil, response.Unauthorized(c, "INVALID_TOKEN", "Invalid user ID in token")
	}

	return userID, nil
}
