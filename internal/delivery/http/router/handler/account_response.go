package handler

import (
	"time"

	"mealtrack/internal/domain/entity"
	"mealtrack/internal/usecase"
)

// AccountResponse is the account representation returned by the API.
// Entities carry no serialization tags; the delivery layer owns the shape.
type AccountResponse struct {
	ID            string    `json:"id"`
	Email         string    `json:"email"`
	Name          string    `json:"name"`
	Role          string    `json:"role"`
	Status        string    `json:"status"`
	Subscription  string    `json:"subscription_status"`
	Payment       string    `json:"payment_status"`
	Age           int       `json:"age"`
	Weight        float64   `json:"weight"`
	Height        float64   `json:"height"`
	ActivityLevel string    `json:"activity_level"`
	Goal          string    `json:"goal"`
	DailyGoal     int       `json:"daily_goal"`
	IsDemo        bool      `json:"is_demo"`
	CreatedAt     time.Time `json:"created_at"`
	LastLogin     time.Time `json:"last_login"`
}

func newAccountResponse(a *entity.Account) *AccountResponse {
	if a == nil {
		return nil
	}

	return &AccountResponse{
		ID:            a.ID.String(),
		Email:         a.Email,
		Name:          a.Name,
		Role:          a.Role.String(),
		Status:        string(a.Status),
		Subscription:  string(a.Subscription),
		Payment:       string(a.Payment),
		Age:           a.Age,
		Weight:        a.Weight,
		Height:        a.Height,
		ActivityLevel: a.ActivityLevel,
		Goal:          a.Goal,
		DailyGoal:     a.DailyGoal,
		IsDemo:        a.IsDemo,
		CreatedAt:     a.CreatedAt,
		LastLogin:     a.LastLogin,
	}
}

func newAccountResponseList(accounts []*entity.Account) []*AccountResponse {
	result := make([]*AccountResponse, 0, len(accounts))
	for _, a := range accounts {
		result = append(result, newAccountResponse(a))
	}

	return result
}

// SubscriptionEventResponse is the audit record representation returned by
// the API.
type SubscriptionEventResponse struct {
	ID          string    `json:"id"`
	UserID      string    `json:"user_id"`
	Action      string    `json:"action"`
	OldStatus   string    `json:"old_status"`
	NewStatus   string    `json:"new_status"`
	Reason      string    `json:"reason,omitempty"`
	PerformedBy string    `json:"performed_by"`
	CreatedAt   time.Time `json:"created_at"`
}

func newSubscriptionEventResponseList(events []*entity.SubscriptionEvent) []*SubscriptionEventResponse {
	result := make([]*SubscriptionEventResponse, 0, len(events))
	for _, e := range events {
		result = append(result, &SubscriptionEventResponse{
			ID:          e.ID.String(),
			UserID:      e.UserID.String(),
			Action:      string(e.Action),
			OldStatus:   string(e.OldStatus),
			NewStatus:   string(e.NewStatus),
			Reason:      e.Reason,
			PerformedBy: e.PerformedBy.String(),
			CreatedAt:   e.CreatedAt,
		})
	}

	return result
}

// AccountStatsResponse is the aggregate view returned by the stats endpoint.
type AccountStatsResponse struct {
	Total          int            `json:"total"`
	ByRole         map[string]int `json:"by_role"`
	Active         int            `json:"active"`
	Inactive       int            `json:"inactive"`
	BySubscription map[string]int `json:"by_subscription"`
}

func newAccountStatsResponse(stats *usecase.AccountStats) *AccountStatsResponse {
	byRole := make(map[string]int, len(stats.ByRole))
	for role, count := range stats.ByRole {
		byRole[role.String()] = count
	}
	bySubscription := make(map[string]int, len(stats.BySubscription))
	for status, count := range stats.BySubscription {
		bySubscription[string(status)] = count
	}

	return &AccountStatsResponse{
		Total:          stats.Total,
		ByRole:         byRole,
		Active:         stats.Active,
		Inactive:       stats.Inactive,
		BySubscription: bySubscription,
	}
}
