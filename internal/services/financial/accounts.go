package financial

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/magabrotheeeer/financeiro/internal/events"
	"github.com/magabrotheeeer/financeiro/internal/lib/tz"
	"github.com/magabrotheeeer/financeiro/internal/models"
	"github.com/magabrotheeeer/financeiro/internal/services"
)

// CreateAccount создает неоплаченный счёт. Срок задаётся местной датой.
func (s *Service) CreateAccount(ctx context.Context, userUID string, req models.AccountRequest) (*models.Account, error) {
	const op = "financial.CreateAccount"

	due, err := tz.ParseLocalDate(req.DueDate)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, services.ErrInvalidInput)
	}
	amount := req.Amount.Round(2)
	if !amount.IsPositive() {
		return nil, fmt.Errorf("%s: %w", op, services.ErrInvalidInput)
	}

	account := models.Account{
		UserUID:   userUID,
		Name:      strings.TrimSpace(req.Name),
		Type:      req.Type,
		Amount:    amount,
		DueDate:   &due,
		Status:    models.AccountPending,
		CreatedAt: s.now().UTC(),
	}
	id, err := s.repo.CreateAccount(ctx, account)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	account.ID = id
	return &account, nil
}

// ListAccounts возвращает счета, разделённые на получение и оплату, с суммами неоплаченных.
func (s *Service) ListAccounts(ctx context.Context, userUID string) (*models.AccountsOverview, error) {
	const op = "financial.ListAccounts"

	accounts, err := s.repo.ListAccounts(ctx, userUID, "")
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	overview := &models.AccountsOverview{
		Receivables: []*models.Account{},
		Payables:    []*models.Account{},
	}
	now := s.now()
	for _, a := range accounts {
		a.Overdue = a.IsOverdue(now)
		switch a.Type {
		case models.Receivable:
			overview.Receivables = append(overview.Receivables, a)
		case models.Payable:
			overview.Payables = append(overview.Payables, a)
		}
	}
	overview.TotalReceivables = models.PendingTotal(overview.Receivables)
	overview.TotalPayables = models.PendingTotal(overview.Payables)
	return overview, nil
}

// MarkAccountPaid отмечает счёт оплаченным и создаёт зеркальную транзакцию.
// Повторный вызов возвращает storage.ErrAlreadyPaid.
func (s *Service) MarkAccountPaid(ctx context.Context, userUID string, id int64) (*models.Account, *models.Transaction, error) {
	const op = "financial.MarkAccountPaid"

	account, tx, err := s.repo.MarkPaid(ctx, userUID, id, s.now().UTC())
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", op, err)
	}

	s.metrics.AccountPaid(string(account.Type))
	s.log.Info("account paid", slog.String("user_uid", userUID), slog.Int64("account_id", id), slog.Int64("transaction_id", tx.ID))
	s.events.Publish(ctx, events.AccountPaid, userUID, map[string]any{
		"account_id":     account.ID,
		"type":           account.Type,
		"amount":         account.Amount,
		"transaction_id": tx.ID,
	})
	return account, tx, nil
}
