// Package auth содержит логику регистрации, входа и выхода пользователей.
package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/magabrotheeeer/financeiro/internal/entitlement"
	"github.com/magabrotheeeer/financeiro/internal/events"
	"github.com/magabrotheeeer/financeiro/internal/lib/jwt"
	"github.com/magabrotheeeer/financeiro/internal/lib/password"
	"github.com/magabrotheeeer/financeiro/internal/lib/tz"
	"github.com/magabrotheeeer/financeiro/internal/models"
	"github.com/magabrotheeeer/financeiro/internal/services"
	"github.com/magabrotheeeer/financeiro/internal/storage"
)

// UserRepository описывает контракт для работы с пользователями в базе данных.
type UserRepository interface {
	// CreateUser сохраняет нового пользователя и возвращает его UID.
	CreateUser(ctx context.Context, user models.User) (string, error)
	// GetUserByEmail возвращает пользователя по email или storage.ErrNotFound.
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
}

// TokenRevoker заносит jti токена в денайлист на время ttl.
type TokenRevoker interface {
	Revoke(ctx context.Context, jti string, ttl time.Duration) error
}

// Service отвечает за регистрацию, вход и отзыв токенов.
type Service struct {
	users    UserRepository
	jwtMaker jwt.Maker
	revoker  TokenRevoker
	events   events.Publisher
	log      *slog.Logger
	now      func() time.Time
}

// NewService создает новый экземпляр Service.
func NewService(users UserRepository, jwtMaker jwt.Maker, revoker TokenRevoker, publisher events.Publisher, log *slog.Logger) *Service {
	return &Service{
		users:    users,
		jwtMaker: jwtMaker,
		revoker:  revoker,
		events:   publisher,
		log:      log,
		now:      tz.Now,
	}
}

// Register создает пользователя с пробным периодом на 7 дней.
// Занятые email или username дают storage.ErrAlreadyExists.
func (s *Service) Register(ctx context.Context, req models.RegisterRequest) (*models.User, error) {
	const op = "auth.Register"

	hashed, err := password.Hash(req.Password)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	now := s.now().UTC()
	user := models.User{
		Username:     strings.TrimSpace(req.Username),
		Email:        normalizeEmail(req.Email),
		PasswordHash: hashed,
		FullName:     strings.TrimSpace(req.FullName),
		Phone:        strings.TrimSpace(req.Phone),
		Active:       true,
		CreatedAt:    now,
		TrialStart:   now,
	}
	user.SetSubscription(entitlement.NewTrial(now))

	uid, err := s.users.CreateUser(ctx, user)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	user.UID = uid

	s.log.Info("user registered", slog.String("user_uid", uid))
	s.events.Publish(ctx, events.UserRegistered, uid, map[string]any{
		"username":  user.Username,
		"email":     user.Email,
		"trial_end": user.TrialEnd,
	})
	return &user, nil
}

// Login проверяет пароль и выпускает токен доступа.
// Неизвестный email и неверный пароль неразличимы: оба дают services.ErrInvalidCredentials.
func (s *Service) Login(ctx context.Context, req models.LoginRequest) (string, *models.User, error) {
	const op = "auth.Login"

	user, err := s.users.GetUserByEmail(ctx, normalizeEmail(req.Email))
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return "", nil, fmt.Errorf("%s: %w", op, services.ErrInvalidCredentials)
		}
		return "", nil, fmt.Errorf("%s: %w", op, err)
	}
	if err := password.Compare(user.PasswordHash, req.Password); err != nil {
		return "", nil, fmt.Errorf("%s: %w", op, services.ErrInvalidCredentials)
	}
	if !user.Active {
		return "", nil, fmt.Errorf("%s: %w", op, services.ErrInvalidCredentials)
	}

	token, err := s.jwtMaker.GenerateToken(user.UID, user.Username)
	if err != nil {
		return "", nil, fmt.Errorf("%s: %w", op, err)
	}
	return token, user, nil
}

// Logout отзывает токен до окончания срока его действия.
func (s *Service) Logout(ctx context.Context, claims *jwt.Claims) error {
	const op = "auth.Logout"

	if claims == nil || claims.ID == "" {
		return fmt.Errorf("%s: %w", op, services.ErrInvalidInput)
	}
	if err := s.revoker.Revoke(ctx, claims.ID, claims.TTL(s.now())); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	s.log.Info("token revoked", slog.String("user_uid", claims.UserUID))
	return nil
}

// ForgotPassword принимает запрос на восстановление пароля.
// Отправка письма не реализована, ответ не зависит от того, существует ли адрес.
func (s *Service) ForgotPassword(_ context.Context, email string) {
	s.log.Info("password reset requested", slog.String("email_domain", emailDomain(email)))
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func emailDomain(email string) string {
	if i := strings.LastIndex(email, "@"); i >= 0 {
		return email[i+1:]
	}
	return ""
}
