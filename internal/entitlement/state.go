package entitlement

import (
	"time"
)

// Status — хранимый статус подписки.
type Status string

const (
	StatusTrial   Status = "trial"
	StatusActive  Status = "active"
	StatusExpired Status = "expired"
)

// TrialPeriod — длительность пробного периода с момента регистрации.
const TrialPeriod = 7 * 24 * time.Hour

// SubscriptionDays — длительность оплаченного периода.
const SubscriptionDays = 30

// State — поля подписки пользователя.
type State struct {
	Plan            Plan
	Status          Status
	TrialEnd        *time.Time
	SubscriptionEnd *time.Time
}

// NewTrial возвращает состояние нового пользователя: пробный план до createdAt + 7 дней.
func NewTrial(createdAt time.Time) State {
	end := createdAt.Add(TrialPeriod)
	return State{
		Plan:     PlanTrial,
		Status:   StatusTrial,
		TrialEnd: &end,
	}
}

// IsActive сообщает, может ли пользователь пользоваться продуктом в момент now.
// Пробный период без даты окончания считается неактивным.
func IsActive(s State, now time.Time) bool {
	switch s.Status {
	case StatusTrial:
		return s.TrialEnd != nil && !now.After(*s.TrialEnd)
	case StatusActive:
		return s.SubscriptionEnd != nil && !now.After(*s.SubscriptionEnd)
	default:
		return false
	}
}

// EffectiveStatus пересчитывает статус по времени, не доверяя сохранённому значению.
func EffectiveStatus(s State, now time.Time) Status {
	if IsActive(s, now) {
		return s.Status
	}
	return StatusExpired
}

// Activate переводит подписку на платный план на 30 дней начиная с now.
// Повторная активация начинает окно заново.
func Activate(s State, p Plan, now time.Time) (State, error) {
	if !p.Paid() {
		return s, ErrInvalidPlan
	}
	end := now.AddDate(0, 0, SubscriptionDays)
	s.Plan = p
	s.Status = StatusActive
	s.SubscriptionEnd = &end
	return s, nil
}

// Current возвращает возможности, действующие для состояния s.
func Current(s State) Entitlements {
	return For(s.Plan)
}

// Effective возвращает возможности, действующие в момент now. Истёкшая подписка
// или пробный период получают возможности пробного плана.
func Effective(s State, now time.Time) Entitlements {
	if !IsActive(s, now) {
		return For(PlanTrial)
	}
	return Current(s)
}

// DaysRemaining возвращает число полных дней до end, не меньше нуля. Без даты возвращает 0.
func DaysRemaining(end *time.Time, now time.Time) int {
	if end == nil {
		return 0
	}
	d := end.Sub(now)
	if d <= 0 {
		return 0
	}
	return int(d / (24 * time.Hour))
}
