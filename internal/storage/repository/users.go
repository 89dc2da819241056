package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/magabrotheeeer/financeiro/internal/entitlement"
	"github.com/magabrotheeeer/financeiro/internal/lib/tz"
	"github.com/magabrotheeeer/financeiro/internal/models"
)

const userColumns = `uid, username, email, password_hash, full_name, phone, active,
	created_at, trial_start_date, trial_end_date, subscription_plan,
	subscription_status, subscription_end_date`

// CreateUser сохраняет нового пользователя и возвращает его UID.
// Занятые email или username дают storage.ErrAlreadyExists.
func (s *Storage) CreateUser(ctx context.Context, user models.User) (string, error) {
	const op = "storage.CreateUser"
	select {
	case <-ctx.Done():
		return "", fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	var uid string
	query := `INSERT INTO users (username, email, password_hash, full_name, phone, active,
			      created_at, trial_start_date, trial_end_date, subscription_plan, subscription_status)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
			  RETURNING uid`
	err := s.DB.QueryRowContext(ctx, query,
		user.Username, user.Email, user.PasswordHash, user.FullName, nullString(user.Phone), user.Active,
		tz.ToUTC(user.CreatedAt), tz.ToUTC(user.TrialStart), nullTime(user.TrialEnd),
		string(user.Plan), string(user.Status),
	).Scan(&uid)
	if err != nil {
		return "", mapError(op, err)
	}
	return uid, nil
}

// GetUser возвращает пользователя по UID.
func (s *Storage) GetUser(ctx context.Context, userUID string) (*models.User, error) {
	return s.getUserBy(ctx, "storage.GetUser", "uid", userUID)
}

// GetUserByEmail возвращает пользователя по email.
func (s *Storage) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.getUserBy(ctx, "storage.GetUserByEmail", "email", email)
}

// GetUserByUsername возвращает пользователя по username.
func (s *Storage) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	return s.getUserBy(ctx, "storage.GetUserByUsername", "username", username)
}

// getUserBy ищет пользователя по одной колонке. column задаётся только константами.
func (s *Storage) getUserBy(ctx context.Context, op, column, value string) (*models.User, error) {
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + userColumns + ` FROM users WHERE ` + column + ` = $1`
	u, err := scanUser(s.DB.QueryRowContext(ctx, query, value))
	if err != nil {
		return nil, mapError(op, err)
	}
	return u, nil
}

func scanUser(row rowScanner) (*models.User, error) {
	var (
		u                models.User
		phone            sql.NullString
		trialEnd, subEnd sql.NullTime
		plan, status     string
	)
	if err := row.Scan(&u.UID, &u.Username, &u.Email, &u.PasswordHash, &u.FullName, &phone, &u.Active,
		&u.CreatedAt, &u.TrialStart, &trialEnd, &plan, &status, &subEnd); err != nil {
		return nil, err
	}
	u.Phone = phone.String
	u.CreatedAt = tz.ToUTC(u.CreatedAt)
	u.TrialStart = tz.ToUTC(u.TrialStart)
	u.TrialEnd = timePtr(trialEnd)
	u.SubscriptionEnd = timePtr(subEnd)
	u.Plan = entitlement.Plan(plan)
	u.Status = entitlement.Status(status)
	return &u, nil
}

// UpdateSubscription записывает план, статус и дату окончания подписки.
func (s *Storage) UpdateSubscription(ctx context.Context, userUID string, state entitlement.State) error {
	const op = "storage.UpdateSubscription"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE users
		      SET subscription_plan = $1,
			      subscription_status = $2,
			      subscription_end_date = $3
		      WHERE uid = $4`
	res, err := s.DB.ExecContext(ctx, query,
		string(state.Plan), string(state.Status), nullTime(state.SubscriptionEnd), userUID)
	if err != nil {
		return mapError(op, err)
	}
	return affected(op, res)
}
