package models

import (
	"time"

	"github.com/magabrotheeeer/financeiro/internal/entitlement"
)

// SubscriptionStatus — текущее состояние подписки пользователя.
type SubscriptionStatus struct {
	Plan                      entitlement.Entitlements `json:"plan"`
	Status                    entitlement.Status       `json:"status"`
	Active                    bool                     `json:"active"`
	TrialEnd                  *time.Time               `json:"trial_end,omitempty"`
	SubscriptionEnd           *time.Time               `json:"subscription_end,omitempty"`
	TrialDaysRemaining        int                      `json:"trial_days_remaining"`
	SubscriptionDaysRemaining int                      `json:"subscription_days_remaining"`
}

// Checkout — сводка перед активацией плана.
type Checkout struct {
	Offer    entitlement.Offer        `json:"offer"`
	Current  entitlement.Entitlements `json:"current"`
	StartsAt time.Time                `json:"starts_at"`
	EndsAt   time.Time                `json:"ends_at"`
}
