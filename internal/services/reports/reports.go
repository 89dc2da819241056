// Package reports строит аналитику за 12 месяцев и экспорт отчёта в файл.
// Доступен только планам с возможностью Reports.
package reports

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"github.com/magabrotheeeer/financeiro/internal/entitlement"
	"github.com/magabrotheeeer/financeiro/internal/lib/month"
	"github.com/magabrotheeeer/financeiro/internal/lib/tz"
	"github.com/magabrotheeeer/financeiro/internal/metrics"
	"github.com/magabrotheeeer/financeiro/internal/models"
	"github.com/magabrotheeeer/financeiro/internal/report"
	"github.com/magabrotheeeer/financeiro/internal/services/financial"
)

// OverviewMonths — глубина помесячной аналитики.
const OverviewMonths = 12

// Repository определяет методы хранилища, нужные отчётам.
type Repository interface {
	GetUser(ctx context.Context, userUID string) (*models.User, error)
	ListTransactions(ctx context.Context, userUID string, limit int) ([]*models.Transaction, error)
	CountTransactions(ctx context.Context, userUID string) (int, error)
	SumByType(ctx context.Context, userUID string, from, to time.Time) (decimal.Decimal, decimal.Decimal, error)
	ExpensesByCategory(ctx context.Context, userUID string) ([]models.CategoryTotal, error)
	CountOverdue(ctx context.Context, userUID string, now time.Time) (int, error)
}

// Service реализует отчёты.
type Service struct {
	repo      Repository
	renderers map[string]report.Renderer
	metrics   *metrics.Metrics
	log       *slog.Logger
	now       func() time.Time
}

// NewService создает новый экземпляр Service с набором рендереров.
func NewService(repo Repository, m *metrics.Metrics, log *slog.Logger, renderers ...report.Renderer) *Service {
	byFormat := make(map[string]report.Renderer, len(renderers))
	for _, r := range renderers {
		byFormat[r.Format()] = r
	}
	return &Service{
		repo:      repo,
		renderers: byFormat,
		metrics:   m,
		log:       log,
		now:       tz.Now,
	}
}

// Overview возвращает помесячную динамику, расходы по категориям и KPI.
func (s *Service) Overview(ctx context.Context, userUID string) (*models.ReportOverview, error) {
	const op = "reports.Overview"

	if _, err := s.authorize(ctx, userUID); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	now := s.now().UTC()
	rows, err := s.monthly(ctx, userUID, now)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	categories, err := s.repo.ExpensesByCategory(ctx, userUID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	count, err := s.repo.CountTransactions(ctx, userUID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	overdue, err := s.repo.CountOverdue(ctx, userUID, now)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &models.ReportOverview{
		Monthly:    rows,
		Categories: financial.Label(categories),
		KPIs:       kpis(rows, count, overdue),
	}, nil
}

// Export строит файл отчёта в формате format ("pdf" или "xlsx").
func (s *Service) Export(ctx context.Context, userUID, format string) (*report.File, error) {
	const op = "reports.Export"

	renderer, ok := s.renderers[format]
	if !ok {
		return nil, fmt.Errorf("%s: %w", op, report.ErrUnknownFormat)
	}
	user, err := s.authorize(ctx, userUID)
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
	recent, err := s.repo.ListTransactions(ctx, userUID, report.RecentLimit)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	categories, err := s.repo.ExpensesByCategory(ctx, userUID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	rows, err := s.monthly(ctx, userUID, now)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	totals := models.NewTotals(income, expense)
	file, err := report.Build(renderer, report.Bundle{
		Title:       report.Title,
		UserName:    user.FullName,
		PlanName:    entitlement.Current(user.Subscription()).Name,
		GeneratedAt: now,
		Summary: report.Summary{
			Month:   current.Label(),
			Income:  totals.Income,
			Expense: totals.Expense,
			Balance: totals.Balance,
		},
		Monthly:      rows,
		Transactions: recent,
		Categories:   financial.Label(categories),
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	s.log.Info("report exported", slog.String("user_uid", userUID), slog.String("format", format), slog.Int("bytes", len(file.Data)))
	return file, nil
}

func (s *Service) authorize(ctx context.Context, userUID string) (*models.User, error) {
	user, err := s.repo.GetUser(ctx, userUID)
	if err != nil {
		return nil, err
	}
	if err := entitlement.Require(entitlement.Current(user.Subscription()), entitlement.FeatureReports); err != nil {
		s.metrics.EntitlementDenied("feature_reports")
		return nil, err
	}
	return user, nil
}

func (s *Service) monthly(ctx context.Context, userUID string, now time.Time) ([]models.MonthlyRow, error) {
	periods := month.Window(now, OverviewMonths)
	rows := make([]models.MonthlyRow, 0, len(periods))
	for _, p := range periods {
		from, to := p.Bounds()
		income, expense, err := s.repo.SumByType(ctx, userUID, from, to)
		if err != nil {
			return nil, err
		}
		rows = append(rows, models.MonthlyRow{
			Month:   p.Label(),
			Income:  income,
			Expense: expense,
			Profit:  income.Sub(expense),
		})
	}
	return rows, nil
}

func kpis(rows []models.MonthlyRow, count, overdue int) models.KPIs {
	income, expense := decimal.Zero, decimal.Zero
	for _, r := range rows {
		income = income.Add(r.Income)
		expense = expense.Add(r.Expense)
	}
	if count < 1 {
		count = 1
	}
	return models.KPIs{
		TotalIncome:   income,
		TotalExpenses: expense,
		NetProfit:     income.Sub(expense),
		AverageTicket: income.Div(decimal.NewFromInt(int64(count))).Round(2),
		Overdue:       overdue,
	}
}
