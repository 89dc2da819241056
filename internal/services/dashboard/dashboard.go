// Package dashboard собирает главную сводку пользователя и данные графика.
package dashboard

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/magabrotheeeer/financeiro/internal/entitlement"
	"github.com/magabrotheeeer/financeiro/internal/lib/month"
	"github.com/magabrotheeeer/financeiro/internal/lib/tz"
	"github.com/magabrotheeeer/financeiro/internal/models"
)

const (
	// RecentLimit — количество последних транзакций на дашборде.
	RecentLimit = 5
	// ChartMonths — количество месяцев на графике.
	ChartMonths = 6
)

// Repository определяет методы хранилища, нужные дашборду.
type Repository interface {
	GetUser(ctx context.Context, userUID string) (*models.User, error)
	ListTransactions(ctx context.Context, userUID string, limit int) ([]*models.Transaction, error)
	CountTransactions(ctx context.Context, userUID string) (int, error)
	SumByType(ctx context.Context, userUID string, from, to time.Time) (decimal.Decimal, decimal.Decimal, error)
	PendingTotal(ctx context.Context, userUID string, typ models.AccountType) (decimal.Decimal, error)
	ListGoals(ctx context.Context, userUID string, completed *bool) ([]*models.Goal, error)
}

// Service строит дашборд.
type Service struct {
	repo Repository
	now  func() time.Time
}

// NewService создает новый экземпляр Service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo, now: tz.Now}
}

// Overview возвращает сводку за текущий местный месяц.
func (s *Service) Overview(ctx context.Context, userUID string) (*models.Dashboard, error) {
	const op = "dashboard.Overview"

	user, err := s.repo.GetUser(ctx, userUID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	now := s.now().UTC()
	current := month.Of(now)
	from, to := current.Bounds()
	income, expense, err := s.repo.SumByType(ctx, userUID, from, to)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	recent, err := s.repo.ListTransactions(ctx, userUID, RecentLimit)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	receivables, err := s.repo.PendingTotal(ctx, userUID, models.Receivable)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	payables, err := s.repo.PendingTotal(ctx, userUID, models.Payable)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	active := false
	goals, err := s.repo.ListGoals(ctx, userUID, &active)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	count, err := s.repo.CountTransactions(ctx, userUID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	state := user.Subscription()
	d := &models.Dashboard{
		Month:              current.Label(),
		Monthly:            models.NewTotals(income, expense),
		RecentTransactions: recent,
		PendingReceivables: receivables,
		PendingPayables:    payables,
		Goals:              make([]models.GoalView, 0, len(goals)),
		Level:              models.LevelFor(count),
		Plan:               entitlement.Effective(state, now),
		Status:             entitlement.EffectiveStatus(state, now),
	}
	if d.RecentTransactions == nil {
		d.RecentTransactions = []*models.Transaction{}
	}
	if state.Status == entitlement.StatusTrial {
		d.TrialDaysRemaining = entitlement.DaysRemaining(state.TrialEnd, now)
	}
	for _, g := range goals {
		d.Goals = append(d.Goals, g.View(now))
	}
	d.GoalsSummary = summarizeGoals(goals)
	return d, nil
}

// Chart возвращает доходы и расходы за последние 6 календарных месяцев.
func (s *Service) Chart(ctx context.Context, userUID string) (*models.ChartData, error) {
	const op = "dashboard.Chart"

	periods := month.Window(s.now(), ChartMonths)
	data := &models.ChartData{
		Months:   make([]string, 0, len(periods)),
		Income:   make([]decimal.Decimal, 0, len(periods)),
		Expenses: make([]decimal.Decimal, 0, len(periods)),
	}
	for _, p := range periods {
		from, to := p.Bounds()
		income, expense, err := s.repo.SumByType(ctx, userUID, from, to)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		data.Months = append(data.Months, p.ShortLabel())
		data.Income = append(data.Income, income)
		data.Expenses = append(data.Expenses, expense)
	}
	return data, nil
}

func summarizeGoals(goals []*models.Goal) models.GoalsSummary {
	sum := models.GoalsSummary{
		TotalGoals:   len(goals),
		TotalTarget:  decimal.Zero,
		TotalCurrent: decimal.Zero,
	}
	if len(goals) == 0 {
		return sum
	}
	var progress float64
	for _, g := range goals {
		sum.TotalTarget = sum.TotalTarget.Add(g.TargetAmount)
		sum.TotalCurrent = sum.TotalCurrent.Add(g.CurrentAmount)
		progress += g.Progress()
	}
	sum.AverageProgress = decimal.NewFromFloat(progress / float64(len(goals))).Round(2).InexactFloat64()
	return sum
}
