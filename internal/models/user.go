// Package models содержит доменные сущности сервиса: пользователя, транзакции,
// счета к оплате и получению, финансовые цели, а также DTO запросов и
// агрегированные представления для дашборда и отчётов.
package models

import (
	"time"

	"github.com/magabrotheeeer/financeiro/internal/entitlement"
)

// User представляет зарегистрированного пользователя.
type User struct {
	UID             string             `json:"uid"`
	Username        string             `json:"username"`
	Email           string             `json:"email"`
	PasswordHash    string             `json:"-"`
	FullName        string             `json:"full_name"`
	Phone           string             `json:"phone,omitempty"`
	Active          bool               `json:"active"`
	CreatedAt       time.Time          `json:"created_at"`
	TrialStart      time.Time          `json:"trial_start"`
	TrialEnd        *time.Time         `json:"trial_end,omitempty"`
	Plan            entitlement.Plan   `json:"plan"`
	Status          entitlement.Status `json:"status"`
	SubscriptionEnd *time.Time         `json:"subscription_end,omitempty"`
}

// Subscription возвращает поля подписки пользователя.
func (u *User) Subscription() entitlement.State {
	return entitlement.State{
		Plan:            u.Plan,
		Status:          u.Status,
		TrialEnd:        u.TrialEnd,
		SubscriptionEnd: u.SubscriptionEnd,
	}
}

// SetSubscription записывает состояние подписки в пользователя.
func (u *User) SetSubscription(s entitlement.State) {
	u.Plan = s.Plan
	u.Status = s.Status
	u.TrialEnd = s.TrialEnd
	u.SubscriptionEnd = s.SubscriptionEnd
}

// RegisterRequest — данные формы регистрации.
type RegisterRequest struct {
	FullName        string `json:"full_name" validate:"required,min=2,max=120"`
	Username        string `json:"username" validate:"required,min=4,max=64"`
	Email           string `json:"email" validate:"required,email"`
	Phone           string `json:"phone" validate:"max=20"`
	Password        string `json:"password" validate:"required,min=6"`
	PasswordConfirm string `json:"password_confirm" validate:"required,eqfield=Password"`
}

// LoginRequest — данные формы входа.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// ForgotPasswordRequest — запрос на восстановление пароля.
type ForgotPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
}
