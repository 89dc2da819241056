package auth

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	gojwt "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/financeiro/internal/entitlement"
	"github.com/magabrotheeeer/financeiro/internal/events"
	"github.com/magabrotheeeer/financeiro/internal/lib/jwt"
	"github.com/magabrotheeeer/financeiro/internal/lib/password"
	"github.com/magabrotheeeer/financeiro/internal/models"
	"github.com/magabrotheeeer/financeiro/internal/services"
	"github.com/magabrotheeeer/financeiro/internal/storage"
)

// Мок для UserRepository
type UserRepoMock struct {
	mock.Mock
}

func (m *UserRepoMock) CreateUser(ctx context.Context, user models.User) (string, error) {
	args := m.Called(ctx, user)
	return args.String(0), args.Error(1)
}

func (m *UserRepoMock) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

type JwtMakerMock struct {
	mock.Mock
}

func (m *JwtMakerMock) GenerateToken(userUID, username string) (string, error) {
	args := m.Called(userUID, username)
	return args.String(0), args.Error(1)
}

func (m *JwtMakerMock) ParseToken(token string) (*jwt.Claims, error) {
	args := m.Called(token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*jwt.Claims), args.Error(1)
}

type RevokerMock struct {
	mock.Mock
}

func (m *RevokerMock) Revoke(ctx context.Context, jti string, ttl time.Duration) error {
	return m.Called(ctx, jti, ttl).Error(0)
}

type PublisherMock struct {
	mock.Mock
}

func (m *PublisherMock) Publish(ctx context.Context, eventType, userUID string, payload any) {
	m.Called(ctx, eventType, userUID, payload)
}

var fixedNow = time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

func newTestService(users *UserRepoMock, maker *JwtMakerMock, revoker *RevokerMock, pub *PublisherMock) *Service {
	s := NewService(users, maker, revoker, pub, slog.New(slog.NewTextHandler(io.Discard, nil)))
	s.now = func() time.Time { return fixedNow }
	return s
}

func TestService_Register(t *testing.T) {
	req := models.RegisterRequest{
		FullName:        " Maria Silva ",
		Username:        "maria",
		Email:           "Maria@Example.com ",
		Password:        "secret1",
		PasswordConfirm: "secret1",
	}

	t.Run("creates trial user and publishes event", func(t *testing.T) {
		users, pub := new(UserRepoMock), new(PublisherMock)
		users.On("CreateUser", mock.Anything, mock.MatchedBy(func(u models.User) bool {
			return u.Email == "maria@example.com" &&
				u.FullName == "Maria Silva" &&
				u.Plan == entitlement.PlanTrial &&
				u.Status == entitlement.StatusTrial &&
				u.TrialEnd != nil && u.TrialEnd.Equal(fixedNow.Add(7*24*time.Hour)) &&
				password.Compare(u.PasswordHash, "secret1") == nil
		})).Return("uid-1", nil).Once()
		pub.On("Publish", mock.Anything, events.UserRegistered, "uid-1", mock.Anything).Once()

		user, err := newTestService(users, nil, nil, pub).Register(context.Background(), req)

		require.NoError(t, err)
		assert.Equal(t, "uid-1", user.UID)
		assert.True(t, user.Active)
		users.AssertExpectations(t)
		pub.AssertExpectations(t)
	})

	t.Run("duplicate email", func(t *testing.T) {
		users, pub := new(UserRepoMock), new(PublisherMock)
		users.On("CreateUser", mock.Anything, mock.Anything).Return("", storage.ErrAlreadyExists).Once()

		_, err := newTestService(users, nil, nil, pub).Register(context.Background(), req)

		assert.ErrorIs(t, err, storage.ErrAlreadyExists)
		pub.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestService_Login(t *testing.T) {
	hash, err := password.Hash("secret1")
	require.NoError(t, err)
	active := &models.User{UID: "uid-1", Username: "maria", Email: "maria@example.com", PasswordHash: hash, Active: true}
	inactive := &models.User{UID: "uid-2", Username: "joao", Email: "joao@example.com", PasswordHash: hash}

	tests := []struct {
		name       string
		email      string
		password   string
		setupMocks func(u *UserRepoMock, j *JwtMakerMock)
		wantToken  string
		wantErr    error
	}{
		{
			name:     "success",
			email:    "MARIA@example.com",
			password: "secret1",
			setupMocks: func(u *UserRepoMock, j *JwtMakerMock) {
				u.On("GetUserByEmail", mock.Anything, "maria@example.com").Return(active, nil).Once()
				j.On("GenerateToken", "uid-1", "maria").Return("token", nil).Once()
			},
			wantToken: "token",
		},
		{
			name:     "unknown email",
			email:    "nobody@example.com",
			password: "secret1",
			setupMocks: func(u *UserRepoMock, _ *JwtMakerMock) {
				u.On("GetUserByEmail", mock.Anything, "nobody@example.com").Return(nil, storage.ErrNotFound).Once()
			},
			wantErr: services.ErrInvalidCredentials,
		},
		{
			name:     "wrong password",
			email:    "maria@example.com",
			password: "wrong",
			setupMocks: func(u *UserRepoMock, _ *JwtMakerMock) {
				u.On("GetUserByEmail", mock.Anything, "maria@example.com").Return(active, nil).Once()
			},
			wantErr: services.ErrInvalidCredentials,
		},
		{
			name:     "inactive user",
			email:    "joao@example.com",
			password: "secret1",
			setupMocks: func(u *UserRepoMock, _ *JwtMakerMock) {
				u.On("GetUserByEmail", mock.Anything, "joao@example.com").Return(inactive, nil).Once()
			},
			wantErr: services.ErrInvalidCredentials,
		},
		{
			name:     "store failure",
			email:    "maria@example.com",
			password: "secret1",
			setupMocks: func(u *UserRepoMock, _ *JwtMakerMock) {
				u.On("GetUserByEmail", mock.Anything, "maria@example.com").Return(nil, errors.New("db down")).Once()
			},
			wantErr: errors.New("db down"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			users, maker := new(UserRepoMock), new(JwtMakerMock)
			tt.setupMocks(users, maker)

			token, user, err := newTestService(users, maker, nil, nil).Login(context.Background(), models.LoginRequest{Email: tt.email, Password: tt.password})

			if tt.wantErr != nil {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr.Error())
				assert.Nil(t, user)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.wantToken, token)
				assert.Equal(t, "uid-1", user.UID)
			}
			users.AssertExpectations(t)
			maker.AssertExpectations(t)
		})
	}
}

func TestService_Logout(t *testing.T) {
	claims := &jwt.Claims{
		UserUID: "uid-1",
		RegisteredClaims: gojwt.RegisteredClaims{
			ID:        "jti-1",
			ExpiresAt: gojwt.NewNumericDate(fixedNow.Add(2 * time.Hour)),
		},
	}

	t.Run("revokes for remaining lifetime", func(t *testing.T) {
		revoker := new(RevokerMock)
		revoker.On("Revoke", mock.Anything, "jti-1", 2*time.Hour).Return(nil).Once()

		err := newTestService(nil, nil, revoker, nil).Logout(context.Background(), claims)

		require.NoError(t, err)
		revoker.AssertExpectations(t)
	})

	t.Run("denylist failure", func(t *testing.T) {
		revoker := new(RevokerMock)
		revoker.On("Revoke", mock.Anything, "jti-1", 2*time.Hour).Return(errors.New("redis down")).Once()

		err := newTestService(nil, nil, revoker, nil).Logout(context.Background(), claims)

		assert.Error(t, err)
	})

	t.Run("missing claims", func(t *testing.T) {
		err := newTestService(nil, nil, new(RevokerMock), nil).Logout(context.Background(), nil)
		assert.ErrorIs(t, err, services.ErrInvalidInput)
	})
}

func TestService_ForgotPassword(t *testing.T) {
	assert.NotPanics(t, func() {
		newTestService(nil, nil, nil, nil).ForgotPassword(context.Background(), "maria@example.com")
	})
}
