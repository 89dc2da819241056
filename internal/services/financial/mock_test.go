package financial

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/financeiro/internal/models"
)

type RepoMock struct {
	mock.Mock
}

func (m *RepoMock) GetUser(ctx context.Context, userUID string) (*models.User, error) {
	args := m.Called(ctx, userUID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *RepoMock) CreateTransaction(ctx context.Context, tx models.Transaction) (int64, error) {
	args := m.Called(ctx, tx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *RepoMock) GetTransaction(ctx context.Context, userUID string, id int64) (*models.Transaction, error) {
	args := m.Called(ctx, userUID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Transaction), args.Error(1)
}

func (m *RepoMock) ListTransactions(ctx context.Context, userUID string, limit int) ([]*models.Transaction, error) {
	args := m.Called(ctx, userUID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Transaction), args.Error(1)
}

func (m *RepoMock) UpdateTransaction(ctx context.Context, tx models.Transaction) error {
	return m.Called(ctx, tx).Error(0)
}

func (m *RepoMock) DeleteTransaction(ctx context.Context, userUID string, id int64) error {
	return m.Called(ctx, userUID, id).Error(0)
}

func (m *RepoMock) CountTransactions(ctx context.Context, userUID string) (int, error) {
	args := m.Called(ctx, userUID)
	return args.Int(0), args.Error(1)
}

func (m *RepoMock) SumByType(ctx context.Context, userUID string, from, to time.Time) (decimal.Decimal, decimal.Decimal, error) {
	args := m.Called(ctx, userUID, from, to)
	return args.Get(0).(decimal.Decimal), args.Get(1).(decimal.Decimal), args.Error(2)
}

func (m *RepoMock) ExpensesByCategory(ctx context.Context, userUID string) ([]models.CategoryTotal, error) {
	args := m.Called(ctx, userUID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.CategoryTotal), args.Error(1)
}

func (m *RepoMock) CreateAccount(ctx context.Context, account models.Account) (int64, error) {
	args := m.Called(ctx, account)
	return args.Get(0).(int64), args.Error(1)
}

func (m *RepoMock) ListAccounts(ctx context.Context, userUID string, typ models.AccountType) ([]*models.Account, error) {
	args := m.Called(ctx, userUID, typ)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Account), args.Error(1)
}

func (m *RepoMock) MarkPaid(ctx context.Context, userUID string, id int64, at time.Time) (*models.Account, *models.Transaction, error) {
	args := m.Called(ctx, userUID, id, at)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).(*models.Account), args.Get(1).(*models.Transaction), args.Error(2)
}

type PublisherMock struct {
	mock.Mock
}

func (m *PublisherMock) Publish(ctx context.Context, eventType, userUID string, payload any) {
	m.Called(ctx, eventType, userUID, payload)
}

// 12:00 UTC = 09:00 в São Paulo.
var fixedNow = time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

func newTestService(repo *RepoMock, pub *PublisherMock) *Service {
	s := NewService(repo, pub, nil, slog.New(slog.NewTextHandler(io.Discard, nil)))
	s.now = func() time.Time { return fixedNow }
	return s
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }
