package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/magabrotheeeer/financeiro/internal/lib/tz"
	"github.com/magabrotheeeer/financeiro/internal/models"
	"github.com/magabrotheeeer/financeiro/internal/storage"
)

const accountColumns = `id, user_uid, name, account_type, amount, due_date, status, created_at`

// CreateAccount сохраняет счёт в статусе pending и возвращает его ID.
func (s *Storage) CreateAccount(ctx context.Context, account models.Account) (int64, error) {
	const op = "storage.CreateAccount"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	createdAt := account.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}
	status := account.Status
	if status == "" {
		status = models.AccountPending
	}

	var id int64
	query := `INSERT INTO accounts (user_uid, name, account_type, amount, due_date, status, created_at)
			  VALUES ($1, $2, $3, $4, $5, $6, $7)
			  RETURNING id`
	if err := s.DB.QueryRowContext(ctx, query,
		account.UserUID, account.Name, string(account.Type), account.Amount,
		nullTime(account.DueDate), string(status), tz.ToUTC(createdAt),
	).Scan(&id); err != nil {
		return 0, mapError(op, err)
	}
	return id, nil
}

// GetAccount возвращает счёт пользователя по ID.
func (s *Storage) GetAccount(ctx context.Context, userUID string, id int64) (*models.Account, error) {
	const op = "storage.GetAccount"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + accountColumns + ` FROM accounts WHERE id = $1 AND user_uid = $2`
	a, err := scanAccount(s.DB.QueryRowContext(ctx, query, id, userUID))
	if err != nil {
		return nil, mapError(op, err)
	}
	return a, nil
}

// ListAccounts возвращает счета пользователя по сроку оплаты. Пустой typ означает все типы.
func (s *Storage) ListAccounts(ctx context.Context, userUID string, typ models.AccountType) ([]*models.Account, error) {
	const op = "storage.ListAccounts"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + accountColumns + `
			  FROM accounts
			  WHERE user_uid = $1 AND ($2::text = '' OR account_type = $2::text)
			  ORDER BY due_date NULLS LAST, id`
	rows, err := s.DB.QueryContext(ctx, query, userUID, string(typ))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	result := make([]*models.Account, 0)
	for rows.Next() {
		a, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, a)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

func scanAccount(row rowScanner) (*models.Account, error) {
	var (
		a           models.Account
		typ, status string
		dueDate     sql.NullTime
	)
	if err := row.Scan(&a.ID, &a.UserUID, &a.Name, &typ, &a.Amount, &dueDate, &status, &a.CreatedAt); err != nil {
		return nil, err
	}
	a.Type = models.AccountType(typ)
	a.Status = models.AccountStatus(status)
	a.DueDate = timePtr(dueDate)
	a.CreatedAt = tz.ToUTC(a.CreatedAt)
	return &a, nil
}

// PendingTotal суммирует неоплаченные счета пользователя заданного типа.
func (s *Storage) PendingTotal(ctx context.Context, userUID string, typ models.AccountType) (decimal.Decimal, error) {
	const op = "storage.PendingTotal"
	select {
	case <-ctx.Done():
		return decimal.Zero, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	var total decimal.Decimal
	query := `SELECT COALESCE(SUM(amount), 0)
			  FROM accounts
			  WHERE user_uid = $1 AND account_type = $2 AND status = 'pending'`
	if err := s.DB.QueryRowContext(ctx, query, userUID, string(typ)).Scan(&total); err != nil {
		return decimal.Zero, fmt.Errorf("%s: %w", op, err)
	}
	return total, nil
}

// CountOverdue возвращает количество неоплаченных счетов со сроком раньше now.
func (s *Storage) CountOverdue(ctx context.Context, userUID string, now time.Time) (int, error) {
	const op = "storage.CountOverdue"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	var count int
	query := `SELECT COUNT(*)
			  FROM accounts
			  WHERE user_uid = $1 AND status = 'pending' AND due_date < $2`
	if err := s.DB.QueryRowContext(ctx, query, userUID, tz.ToUTC(now)).Scan(&count); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return count, nil
}

// MarkPaid переводит счёт из pending в paid и в той же транзакции БД создаёт
// отражающую оплату транзакцию с датой at. Возвращает обновлённый счёт и созданную транзакцию.
//
// Счёт другого пользователя или несуществующий даёт storage.ErrNotFound,
// уже оплаченный — storage.ErrAlreadyPaid. Ошибка фиксации возвращается вызывающему.
func (s *Storage) MarkPaid(ctx context.Context, userUID string, id int64, at time.Time) (*models.Account, *models.Transaction, error) {
	const op = "storage.MarkPaid"
	select {
	case <-ctx.Done():
		return nil, nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	dbTx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: begin: %w", op, err)
	}
	defer func() {
		_ = dbTx.Rollback()
	}()

	query := `UPDATE accounts SET status = 'paid'
			  WHERE id = $1 AND user_uid = $2 AND status = 'pending'
			  RETURNING ` + accountColumns
	account, err := scanAccount(dbTx.QueryRowContext(ctx, query, id, userUID))
	if errors.Is(err, sql.ErrNoRows) {
		var exists bool
		if err := dbTx.QueryRowContext(ctx,
			`SELECT EXISTS (SELECT 1 FROM accounts WHERE id = $1 AND user_uid = $2)`, id, userUID,
		).Scan(&exists); err != nil {
			return nil, nil, fmt.Errorf("%s: %w", op, err)
		}
		if exists {
			return nil, nil, fmt.Errorf("%s: %w", op, storage.ErrAlreadyPaid)
		}
		return nil, nil, fmt.Errorf("%s: %w", op, storage.ErrNotFound)
	}
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", op, err)
	}

	settlement := account.Settlement(at)
	settlement.CreatedAt = at
	settlement.ID, err = insertTransaction(ctx, dbTx, settlement)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: insert transaction: %w", op, err)
	}

	if err := dbTx.Commit(); err != nil {
		return nil, nil, fmt.Errorf("%s: commit: %w", op, err)
	}
	return account, &settlement, nil
}
