package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/magabrotheeeer/financeiro/internal/lib/tz"
	"github.com/magabrotheeeer/financeiro/internal/models"
)

const goalColumns = `id, user_uid, title, description, target_amount, current_amount,
	target_date, created_at, is_completed`

// CreateGoal сохраняет цель и возвращает её ID. Флаг выполнения пересчитывается перед записью.
func (s *Storage) CreateGoal(ctx context.Context, goal models.Goal) (int64, error) {
	const op = "storage.CreateGoal"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	goal.Sync()
	createdAt := goal.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	var id int64
	query := `INSERT INTO financial_goals (user_uid, title, description, target_amount, current_amount,
			      target_date, created_at, is_completed)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			  RETURNING id`
	if err := s.DB.QueryRowContext(ctx, query,
		goal.UserUID, goal.Title, nullString(goal.Description), goal.TargetAmount, goal.CurrentAmount,
		nullTime(goal.TargetDate), tz.ToUTC(createdAt), goal.IsCompleted,
	).Scan(&id); err != nil {
		return 0, mapError(op, err)
	}
	return id, nil
}

// GetGoal возвращает цель пользователя по ID.
func (s *Storage) GetGoal(ctx context.Context, userUID string, id int64) (*models.Goal, error) {
	const op = "storage.GetGoal"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + goalColumns + ` FROM financial_goals WHERE id = $1 AND user_uid = $2`
	g, err := scanGoal(s.DB.QueryRowContext(ctx, query, id, userUID))
	if err != nil {
		return nil, mapError(op, err)
	}
	return g, nil
}

// ListGoals возвращает цели пользователя. При completed == nil возвращаются все цели.
func (s *Storage) ListGoals(ctx context.Context, userUID string, completed *bool) ([]*models.Goal, error) {
	const op = "storage.ListGoals"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	var filter sql.NullBool
	if completed != nil {
		filter = sql.NullBool{Bool: *completed, Valid: true}
	}
	query := `SELECT ` + goalColumns + `
			  FROM financial_goals
			  WHERE user_uid = $1 AND ($2::boolean IS NULL OR is_completed = $2)
			  ORDER BY target_date NULLS LAST, id`
	rows, err := s.DB.QueryContext(ctx, query, userUID, filter)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	result := make([]*models.Goal, 0)
	for rows.Next() {
		g, err := scanGoal(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, g)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

func scanGoal(row rowScanner) (*models.Goal, error) {
	var (
		g           models.Goal
		description sql.NullString
		targetDate  sql.NullTime
	)
	if err := row.Scan(&g.ID, &g.UserUID, &g.Title, &description, &g.TargetAmount, &g.CurrentAmount,
		&targetDate, &g.CreatedAt, &g.IsCompleted); err != nil {
		return nil, err
	}
	g.Description = description.String
	g.TargetDate = timePtr(targetDate)
	g.CreatedAt = tz.ToUTC(g.CreatedAt)
	return &g, nil
}

// UpdateGoal перезаписывает цель пользователя, пересчитывая флаг выполнения.
func (s *Storage) UpdateGoal(ctx context.Context, goal models.Goal) error {
	const op = "storage.UpdateGoal"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	goal.Sync()
	query := `UPDATE financial_goals
		      SET title = $1, description = $2, target_amount = $3, current_amount = $4,
			      target_date = $5, is_completed = $6
		      WHERE id = $7 AND user_uid = $8`
	res, err := s.DB.ExecContext(ctx, query,
		goal.Title, nullString(goal.Description), goal.TargetAmount, goal.CurrentAmount,
		nullTime(goal.TargetDate), goal.IsCompleted, goal.ID, goal.UserUID)
	if err != nil {
		return mapError(op, err)
	}
	return affected(op, res)
}

// DeleteGoal удаляет цель пользователя.
func (s *Storage) DeleteGoal(ctx context.Context, userUID string, id int64) error {
	const op = "storage.DeleteGoal"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	res, err := s.DB.ExecContext(ctx, `DELETE FROM financial_goals WHERE id = $1 AND user_uid = $2`, id, userUID)
	if err != nil {
		return mapError(op, err)
	}
	return affected(op, res)
}
