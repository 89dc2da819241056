package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/magabrotheeeer/financeiro/internal/lib/tz"
	"github.com/magabrotheeeer/financeiro/internal/models"
)

const transactionColumns = `id, user_uid, description, amount, transaction_type, category,
	date, created_at, is_recurring, recurrence_type, account_id`

// querier — общий интерфейс *sql.DB и *sql.Tx для вставок.
type querier interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// CreateTransaction сохраняет транзакцию и возвращает её ID.
func (s *Storage) CreateTransaction(ctx context.Context, tx models.Transaction) (int64, error) {
	const op = "storage.CreateTransaction"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	id, err := insertTransaction(ctx, s.DB, tx)
	if err != nil {
		return 0, mapError(op, err)
	}
	return id, nil
}

func insertTransaction(ctx context.Context, db querier, tx models.Transaction) (int64, error) {
	createdAt := tx.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}
	var accountID sql.NullInt64
	if tx.AccountID != nil {
		accountID = sql.NullInt64{Int64: *tx.AccountID, Valid: true}
	}

	var id int64
	query := `INSERT INTO transactions (user_uid, description, amount, transaction_type, category,
			      date, created_at, is_recurring, recurrence_type, account_id)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
			  RETURNING id`
	err := db.QueryRowContext(ctx, query,
		tx.UserUID, tx.Description, tx.Amount, string(tx.Type), nullString(tx.Category),
		tz.ToUTC(tx.Date), tz.ToUTC(createdAt), tx.IsRecurring, nullString(tx.RecurrenceType), accountID,
	).Scan(&id)
	return id, err
}

// GetTransaction возвращает транзакцию пользователя по ID.
func (s *Storage) GetTransaction(ctx context.Context, userUID string, id int64) (*models.Transaction, error) {
	const op = "storage.GetTransaction"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE id = $1 AND user_uid = $2`
	tx, err := scanTransaction(s.DB.QueryRowContext(ctx, query, id, userUID))
	if err != nil {
		return nil, mapError(op, err)
	}
	return tx, nil
}

// ListTransactions возвращает транзакции пользователя от новых к старым.
// limit <= 0 означает все записи.
func (s *Storage) ListTransactions(ctx context.Context, userUID string, limit int) ([]*models.Transaction, error) {
	const op = "storage.ListTransactions"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + transactionColumns + `
			  FROM transactions
			  WHERE user_uid = $1
			  ORDER BY date DESC, id DESC`
	args := []any{userUID}
	if limit > 0 {
		query += ` LIMIT $2`
		args = append(args, limit)
	}

	rows, err := s.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	result := make([]*models.Transaction, 0)
	for rows.Next() {
		tx, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, tx)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

func scanTransaction(row rowScanner) (*models.Transaction, error) {
	var (
		tx                   models.Transaction
		typ                  string
		category, recurrence sql.NullString
		accountID            sql.NullInt64
	)
	if err := row.Scan(&tx.ID, &tx.UserUID, &tx.Description, &tx.Amount, &typ, &category,
		&tx.Date, &tx.CreatedAt, &tx.IsRecurring, &recurrence, &accountID); err != nil {
		return nil, err
	}
	tx.Type = models.TransactionType(typ)
	tx.Category = category.String
	tx.RecurrenceType = recurrence.String
	tx.Date = tz.ToUTC(tx.Date)
	tx.CreatedAt = tz.ToUTC(tx.CreatedAt)
	if accountID.Valid {
		id := accountID.Int64
		tx.AccountID = &id
	}
	return &tx, nil
}

// UpdateTransaction изменяет транзакцию пользователя по ID.
func (s *Storage) UpdateTransaction(ctx context.Context, tx models.Transaction) error {
	const op = "storage.UpdateTransaction"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE transactions
		      SET description = $1, amount = $2, transaction_type = $3, category = $4,
			      date = $5, is_recurring = $6, recurrence_type = $7
		      WHERE id = $8 AND user_uid = $9`
	res, err := s.DB.ExecContext(ctx, query,
		tx.Description, tx.Amount, string(tx.Type), nullString(tx.Category),
		tz.ToUTC(tx.Date), tx.IsRecurring, nullString(tx.RecurrenceType), tx.ID, tx.UserUID)
	if err != nil {
		return mapError(op, err)
	}
	return affected(op, res)
}

// DeleteTransaction удаляет транзакцию пользователя по ID.
func (s *Storage) DeleteTransaction(ctx context.Context, userUID string, id int64) error {
	const op = "storage.DeleteTransaction"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	res, err := s.DB.ExecContext(ctx, `DELETE FROM transactions WHERE id = $1 AND user_uid = $2`, id, userUID)
	if err != nil {
		return mapError(op, err)
	}
	return affected(op, res)
}

// CountTransactions возвращает общее количество транзакций пользователя.
func (s *Storage) CountTransactions(ctx context.Context, userUID string) (int, error) {
	const op = "storage.CountTransactions"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	var count int
	if err := s.DB.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM transactions WHERE user_uid = $1`, userUID).Scan(&count); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return count, nil
}

// SumByType суммирует доходы и расходы пользователя за полуинтервал [from, to).
// Нулевые границы снимают ограничение. Без данных возвращает нули.
func (s *Storage) SumByType(ctx context.Context, userUID string, from, to time.Time) (decimal.Decimal, decimal.Decimal, error) {
	const op = "storage.SumByType"
	select {
	case <-ctx.Done():
		return decimal.Zero, decimal.Zero, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT
			      COALESCE(SUM(amount) FILTER (WHERE transaction_type = 'income'), 0),
			      COALESCE(SUM(amount) FILTER (WHERE transaction_type = 'expense'), 0)
			  FROM transactions
			  WHERE user_uid = $1
			    AND ($2::timestamp IS NULL OR date >= $2)
			    AND ($3::timestamp IS NULL OR date < $3)`
	var income, expense decimal.Decimal
	if err := s.DB.QueryRowContext(ctx, query, userUID, nullTime(&from), nullTime(&to)).
		Scan(&income, &expense); err != nil {
		return decimal.Zero, decimal.Zero, fmt.Errorf("%s: %w", op, err)
	}
	return income, expense, nil
}

// ExpensesByCategory суммирует расходы пользователя по категориям, от больших к меньшим.
// Транзакции без категории попадают в группу с пустой категорией.
func (s *Storage) ExpensesByCategory(ctx context.Context, userUID string) ([]models.CategoryTotal, error) {
	const op = "storage.ExpensesByCategory"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT COALESCE(category, '') AS category, SUM(amount) AS total
			  FROM transactions
			  WHERE user_uid = $1 AND transaction_type = 'expense'
			  GROUP BY COALESCE(category, '')
			  ORDER BY total DESC, category`
	rows, err := s.DB.QueryContext(ctx, query, userUID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	result := make([]models.CategoryTotal, 0)
	for rows.Next() {
		var ct models.CategoryTotal
		if err := rows.Scan(&ct.Category, &ct.Total); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, ct)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}
