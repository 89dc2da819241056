// Package financial содержит бизнес-логику движения денег: транзакции,
// итоги по месяцам и категориям, счета к получению и к оплате.
package financial

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/magabrotheeeer/financeiro/internal/entitlement"
	"github.com/magabrotheeeer/financeiro/internal/events"
	"github.com/magabrotheeeer/financeiro/internal/lib/month"
	"github.com/magabrotheeeer/financeiro/internal/lib/tz"
	"github.com/magabrotheeeer/financeiro/internal/metrics"
	"github.com/magabrotheeeer/financeiro/internal/models"
	"github.com/magabrotheeeer/financeiro/internal/services"
)

// DefaultListLimit — количество транзакций в списке, если лимит не задан.
const DefaultListLimit = 50

// Repository определяет методы хранилища, нужные сервису.
type Repository interface {
	GetUser(ctx context.Context, userUID string) (*models.User, error)

	CreateTransaction(ctx context.Context, tx models.Transaction) (int64, error)
	GetTransaction(ctx context.Context, userUID string, id int64) (*models.Transaction, error)
	ListTransactions(ctx context.Context, userUID string, limit int) ([]*models.Transaction, error)
	UpdateTransaction(ctx context.Context, tx models.Transaction) error
	DeleteTransaction(ctx context.Context, userUID string, id int64) error
	CountTransactions(ctx context.Context, userUID string) (int, error)
	SumByType(ctx context.Context, userUID string, from, to time.Time) (decimal.Decimal, decimal.Decimal, error)
	ExpensesByCategory(ctx context.Context, userUID string) ([]models.CategoryTotal, error)

	CreateAccount(ctx context.Context, account models.Account) (int64, error)
	ListAccounts(ctx context.Context, userUID string, typ models.AccountType) ([]*models.Account, error)
	MarkPaid(ctx context.Context, userUID string, id int64, at time.Time) (*models.Account, *models.Transaction, error)
}

// Service реализует операции с транзакциями и счетами.
type Service struct {
	repo    Repository
	events  events.Publisher
	metrics *metrics.Metrics
	log     *slog.Logger
	now     func() time.Time
}

// NewService создает новый экземпляр Service.
func NewService(repo Repository, publisher events.Publisher, m *metrics.Metrics, log *slog.Logger) *Service {
	return &Service{
		repo:    repo,
		events:  publisher,
		metrics: m,
		log:     log,
		now:     tz.Now,
	}
}

// CreateTransaction сохраняет транзакцию, если план пользователя ещё допускает новую запись.
// При исчерпанном лимите возвращает entitlement.ErrTransactionLimit.
func (s *Service) CreateTransaction(ctx context.Context, userUID string, req models.TransactionRequest) (*models.Transaction, error) {
	const op = "financial.CreateTransaction"

	user, err := s.repo.GetUser(ctx, userUID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	count, err := s.repo.CountTransactions(ctx, userUID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err := entitlement.CheckTransactionCap(entitlement.Current(user.Subscription()), count); err != nil {
		s.metrics.EntitlementDenied("transaction_limit")
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	now := s.now().UTC()
	tx := models.Transaction{UserUID: userUID, CreatedAt: now}
	if err := s.apply(&tx, req, now); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	id, err := s.repo.CreateTransaction(ctx, tx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	tx.ID = id

	s.metrics.TransactionCreated(string(tx.Type))
	s.log.Info("transaction created", slog.String("user_uid", userUID), slog.Int64("id", id))
	return &tx, nil
}

// ListTransactions возвращает последние транзакции с итогами по всем записям пользователя.
func (s *Service) ListTransactions(ctx context.Context, userUID string, limit int) (*models.CashFlow, error) {
	const op = "financial.ListTransactions"

	if limit <= 0 {
		limit = DefaultListLimit
	}
	user, err := s.repo.GetUser(ctx, userUID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	txs, err := s.repo.ListTransactions(ctx, userUID, limit)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	income, expense, err := s.repo.SumByType(ctx, userUID, time.Time{}, time.Time{})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	count, err := s.repo.CountTransactions(ctx, userUID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	ents := entitlement.Current(user.Subscription())
	if txs == nil {
		txs = []*models.Transaction{}
	}
	return &models.CashFlow{
		Transactions: txs,
		Totals:       models.NewTotals(income, expense),
		Count:        count,
		Limit:        ents.TransactionsLimit,
		LimitReached: entitlement.CheckTransactionCap(ents, count) != nil,
	}, nil
}

// UpdateTransaction изменяет транзакцию пользователя. Для чужой или несуществующей возвращает storage.ErrNotFound.
func (s *Service) UpdateTransaction(ctx context.Context, userUID string, id int64, req models.TransactionRequest) (*models.Transaction, error) {
	const op = "financial.UpdateTransaction"

	tx, err := s.repo.GetTransaction(ctx, userUID, id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err := s.apply(tx, req, s.now().UTC()); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err := s.repo.UpdateTransaction(ctx, *tx); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return tx, nil
}

// DeleteTransaction удаляет транзакцию пользователя.
func (s *Service) DeleteTransaction(ctx context.Context, userUID string, id int64) error {
	const op = "financial.DeleteTransaction"

	if err := s.repo.DeleteTransaction(ctx, userUID, id); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// Categories возвращает фиксированный список категорий.
func (s *Service) Categories() []models.Category {
	return models.Categories()
}

// MonthlySummary считает доходы и расходы за местный календарный месяц.
func (s *Service) MonthlySummary(ctx context.Context, userUID string, year int, m time.Month) (models.Totals, error) {
	const op = "financial.MonthlySummary"

	if m < time.January || m > time.December || year < 1 {
		return models.Totals{}, fmt.Errorf("%s: %w", op, services.ErrInvalidInput)
	}
	from, to := month.Period{Year: year, Month: m}.Bounds()
	income, expense, err := s.repo.SumByType(ctx, userUID, from, to)
	if err != nil {
		return models.Totals{}, fmt.Errorf("%s: %w", op, err)
	}
	return models.NewTotals(income, expense), nil
}

// CurrentMonth возвращает текущий местный месяц.
func (s *Service) CurrentMonth() month.Period {
	return month.Of(s.now())
}

// CategoryBreakdown возвращает расходы по категориям с подписями.
func (s *Service) CategoryBreakdown(ctx context.Context, userUID string) ([]models.CategoryTotal, error) {
	const op = "financial.CategoryBreakdown"

	totals, err := s.repo.ExpensesByCategory(ctx, userUID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return Label(totals), nil
}

// Label заполняет подписи категорий.
func Label(totals []models.CategoryTotal) []models.CategoryTotal {
	out := make([]models.CategoryTotal, len(totals))
	for i, t := range totals {
		t.Label = models.CategoryLabel(t.Category)
		out[i] = t
	}
	return out
}

func (s *Service) apply(tx *models.Transaction, req models.TransactionRequest, now time.Time) error {
	date := tz.StartOfLocalDay(now)
	if req.Date != "" {
		d, err := tz.ParseLocalDate(req.Date)
		if err != nil {
			return services.ErrInvalidInput
		}
		date = d
	}
	amount := req.Amount.Round(2)
	if !amount.IsPositive() {
		return services.ErrInvalidInput
	}

	tx.Description = strings.TrimSpace(req.Description)
	tx.Amount = amount
	tx.Type = req.Type
	tx.Category = req.Category
	tx.Date = date
	tx.IsRecurring = req.IsRecurring
	tx.RecurrenceType = ""
	if req.IsRecurring {
		tx.RecurrenceType = req.RecurrenceType
	}
	return nil
}
