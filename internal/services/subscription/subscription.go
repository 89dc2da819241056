// Package subscription управляет тарифным планом пользователя: каталогом,
// оформлением, активацией и проверкой статуса.
package subscription

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/magabrotheeeer/financeiro/internal/entitlement"
	"github.com/magabrotheeeer/financeiro/internal/events"
	"github.com/magabrotheeeer/financeiro/internal/lib/tz"
	"github.com/magabrotheeeer/financeiro/internal/metrics"
	"github.com/magabrotheeeer/financeiro/internal/models"
)

// UserRepository определяет методы хранилища, нужные сервису подписок.
type UserRepository interface {
	GetUser(ctx context.Context, userUID string) (*models.User, error)
	UpdateSubscription(ctx context.Context, userUID string, state entitlement.State) error
}

// Service реализует бизнес-логику подписок.
type Service struct {
	users   UserRepository
	events  events.Publisher
	metrics *metrics.Metrics
	log     *slog.Logger
	now     func() time.Time
}

// NewService создает новый экземпляр Service.
func NewService(users UserRepository, publisher events.Publisher, m *metrics.Metrics, log *slog.Logger) *Service {
	return &Service{
		users:   users,
		events:  publisher,
		metrics: m,
		log:     log,
		now:     tz.Now,
	}
}

// Plans возвращает каталог платных планов.
func (s *Service) Plans() []entitlement.Offer {
	return entitlement.Catalogue()
}

// Checkout возвращает сводку по плану planID перед активацией.
func (s *Service) Checkout(ctx context.Context, userUID, planID string) (*models.Checkout, error) {
	const op = "subscription.Checkout"

	offer, err := lookupOffer(planID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	user, err := s.users.GetUser(ctx, userUID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	now := s.now().UTC()
	return &models.Checkout{
		Offer:    offer,
		Current:  entitlement.Effective(user.Subscription(), now),
		StartsAt: now,
		EndsAt:   now.AddDate(0, 0, entitlement.SubscriptionDays),
	}, nil
}

// Activate включает план planID на 30 дней. Оплата не проводится.
func (s *Service) Activate(ctx context.Context, userUID, planID string) (*models.SubscriptionStatus, error) {
	const op = "subscription.Activate"

	offer, err := lookupOffer(planID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	user, err := s.users.GetUser(ctx, userUID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	now := s.now().UTC()
	state, err := entitlement.Activate(user.Subscription(), offer.ID, now)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err := s.users.UpdateSubscription(ctx, userUID, state); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	user.SetSubscription(state)

	s.log.Info("plan activated", slog.String("user_uid", userUID), slog.String("plan", string(offer.ID)))
	s.metrics.PlanActivated(string(offer.ID))
	s.events.Publish(ctx, events.PlanActivated, userUID, map[string]any{
		"plan":             offer.ID,
		"price":            offer.Price,
		"subscription_end": state.SubscriptionEnd,
	})
	return statusOf(user, now), nil
}

// Status возвращает текущий план и статус пользователя.
func (s *Service) Status(ctx context.Context, userUID string) (*models.SubscriptionStatus, error) {
	const op = "subscription.Status"

	user, err := s.users.GetUser(ctx, userUID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return statusOf(user, s.now().UTC()), nil
}

// IsActive сообщает, действует ли пробный период или подписка пользователя.
func (s *Service) IsActive(ctx context.Context, userUID string) (bool, error) {
	const op = "subscription.IsActive"

	user, err := s.users.GetUser(ctx, userUID)
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}
	active := entitlement.IsActive(user.Subscription(), s.now().UTC())
	if !active {
		s.metrics.EntitlementDenied("subscription_inactive")
	}
	return active, nil
}

func lookupOffer(planID string) (entitlement.Offer, error) {
	plan, ok := entitlement.ParsePlan(planID)
	if !ok {
		return entitlement.Offer{}, entitlement.ErrInvalidPlan
	}
	offer, ok := entitlement.Lookup(plan)
	if !ok {
		return entitlement.Offer{}, entitlement.ErrInvalidPlan
	}
	return offer, nil
}

func statusOf(user *models.User, now time.Time) *models.SubscriptionStatus {
	state := user.Subscription()
	st := &models.SubscriptionStatus{
		Plan:            entitlement.Effective(state, now),
		Status:          entitlement.EffectiveStatus(state, now),
		Active:          entitlement.IsActive(state, now),
		TrialEnd:        state.TrialEnd,
		SubscriptionEnd: state.SubscriptionEnd,
	}
	if state.Status == entitlement.StatusTrial {
		st.TrialDaysRemaining = entitlement.DaysRemaining(state.TrialEnd, now)
	}
	if state.Status == entitlement.StatusActive {
		st.SubscriptionDaysRemaining = entitlement.DaysRemaining(state.SubscriptionEnd, now)
	}
	return st
}
