package financial

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/financeiro/internal/entitlement"
	"github.com/magabrotheeeer/financeiro/internal/models"
	"github.com/magabrotheeeer/financeiro/internal/services"
	"github.com/magabrotheeeer/financeiro/internal/storage"
)

func userOnPlan(p entitlement.Plan) *models.User {
	u := &models.User{UID: "uid-1"}
	u.SetSubscription(entitlement.NewTrial(fixedNow))
	u.Plan = p
	return u
}

func TestService_CreateTransaction(t *testing.T) {
	req := models.TransactionRequest{
		Description: " Venda balcão ",
		Amount:      dec("150.456"),
		Type:        models.Income,
		Category:    models.CategorySales,
		Date:        "2025-03-09",
	}

	t.Run("stores with local date in UTC", func(t *testing.T) {
		repo := new(RepoMock)
		repo.On("GetUser", mock.Anything, "uid-1").Return(userOnPlan(entitlement.PlanMEI), nil).Once()
		repo.On("CountTransactions", mock.Anything, "uid-1").Return(99, nil).Once()
		repo.On("CreateTransaction", mock.Anything, mock.MatchedBy(func(tx models.Transaction) bool {
			return tx.UserUID == "uid-1" &&
				tx.Description == "Venda balcão" &&
				tx.Amount.Equal(dec("150.46")) &&
				tx.Date.Equal(time.Date(2025, 3, 9, 3, 0, 0, 0, time.UTC)) &&
				tx.RecurrenceType == ""
		})).Return(int64(7), nil).Once()

		tx, err := newTestService(repo, nil).CreateTransaction(context.Background(), "uid-1", req)

		require.NoError(t, err)
		assert.Equal(t, int64(7), tx.ID)
		repo.AssertExpectations(t)
	})

	t.Run("empty date defaults to local today", func(t *testing.T) {
		repo := new(RepoMock)
		repo.On("GetUser", mock.Anything, "uid-1").Return(userOnPlan(entitlement.PlanEnterprise), nil).Once()
		repo.On("CountTransactions", mock.Anything, "uid-1").Return(100000, nil).Once()
		repo.On("CreateTransaction", mock.Anything, mock.MatchedBy(func(tx models.Transaction) bool {
			return tx.Date.Equal(time.Date(2025, 3, 10, 3, 0, 0, 0, time.UTC)) && tx.RecurrenceType == "monthly"
		})).Return(int64(8), nil).Once()

		r := req
		r.Date = ""
		r.IsRecurring = true
		r.RecurrenceType = "monthly"
		_, err := newTestService(repo, nil).CreateTransaction(context.Background(), "uid-1", r)

		require.NoError(t, err)
		repo.AssertExpectations(t)
	})

	t.Run("trial cap reached", func(t *testing.T) {
		repo := new(RepoMock)
		repo.On("GetUser", mock.Anything, "uid-1").Return(userOnPlan(entitlement.PlanTrial), nil).Once()
		repo.On("CountTransactions", mock.Anything, "uid-1").Return(10, nil).Once()

		_, err := newTestService(repo, nil).CreateTransaction(context.Background(), "uid-1", req)

		assert.ErrorIs(t, err, entitlement.ErrTransactionLimit)
		repo.AssertNotCalled(t, "CreateTransaction", mock.Anything, mock.Anything)
	})

	t.Run("non positive amount", func(t *testing.T) {
		repo := new(RepoMock)
		repo.On("GetUser", mock.Anything, "uid-1").Return(userOnPlan(entitlement.PlanMEI), nil).Once()
		repo.On("CountTransactions", mock.Anything, "uid-1").Return(0, nil).Once()

		r := req
		r.Amount = decimal.Zero
		_, err := newTestService(repo, nil).CreateTransaction(context.Background(), "uid-1", r)

		assert.ErrorIs(t, err, services.ErrInvalidInput)
	})

	t.Run("amount rounds to zero", func(t *testing.T) {
		repo := new(RepoMock)
		repo.On("GetUser", mock.Anything, "uid-1").Return(userOnPlan(entitlement.PlanMEI), nil).Once()
		repo.On("CountTransactions", mock.Anything, "uid-1").Return(0, nil).Once()

		r := req
		r.Amount = dec("0.004")
		_, err := newTestService(repo, nil).CreateTransaction(context.Background(), "uid-1", r)

		assert.ErrorIs(t, err, services.ErrInvalidInput)
		repo.AssertNotCalled(t, "CreateTransaction", mock.Anything, mock.Anything)
	})
}

func TestService_ListTransactions(t *testing.T) {
	txs := []*models.Transaction{{ID: 1, Amount: dec("10"), Type: models.Income}}

	repo := new(RepoMock)
	repo.On("GetUser", mock.Anything, "uid-1").Return(userOnPlan(entitlement.PlanTrial), nil).Once()
	repo.On("ListTransactions", mock.Anything, "uid-1", DefaultListLimit).Return(txs, nil).Once()
	repo.On("SumByType", mock.Anything, "uid-1", time.Time{}, time.Time{}).Return(dec("300"), dec("120.50"), nil).Once()
	repo.On("CountTransactions", mock.Anything, "uid-1").Return(10, nil).Once()

	cf, err := newTestService(repo, nil).ListTransactions(context.Background(), "uid-1", 0)

	require.NoError(t, err)
	assert.Len(t, cf.Transactions, 1)
	assert.True(t, cf.Totals.Balance.Equal(dec("179.50")))
	assert.Equal(t, 10, cf.Limit)
	assert.True(t, cf.LimitReached)
	repo.AssertExpectations(t)
}

func TestService_UpdateTransaction(t *testing.T) {
	t.Run("not owned", func(t *testing.T) {
		repo := new(RepoMock)
		repo.On("GetTransaction", mock.Anything, "uid-1", int64(5)).Return(nil, storage.ErrNotFound).Once()

		_, err := newTestService(repo, nil).UpdateTransaction(context.Background(), "uid-1", 5, models.TransactionRequest{})

		assert.ErrorIs(t, err, storage.ErrNotFound)
	})

	t.Run("updates fields", func(t *testing.T) {
		repo := new(RepoMock)
		existing := &models.Transaction{ID: 5, UserUID: "uid-1", Description: "old", Amount: dec("1"), Type: models.Income}
		repo.On("GetTransaction", mock.Anything, "uid-1", int64(5)).Return(existing, nil).Once()
		repo.On("UpdateTransaction", mock.Anything, mock.MatchedBy(func(tx models.Transaction) bool {
			return tx.ID == 5 && tx.Description == "new" && tx.Type == models.Expense
		})).Return(nil).Once()

		tx, err := newTestService(repo, nil).UpdateTransaction(context.Background(), "uid-1", 5, models.TransactionRequest{
			Description: "new", Amount: dec("20"), Type: models.Expense, Date: "2025-03-01",
		})

		require.NoError(t, err)
		assert.Equal(t, "new", tx.Description)
		repo.AssertExpectations(t)
	})
}

func TestService_DeleteTransaction(t *testing.T) {
	repo := new(RepoMock)
	repo.On("DeleteTransaction", mock.Anything, "uid-1", int64(3)).Return(storage.ErrNotFound).Once()

	err := newTestService(repo, nil).DeleteTransaction(context.Background(), "uid-1", 3)

	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestService_MonthlySummary(t *testing.T) {
	t.Run("uses local month bounds", func(t *testing.T) {
		repo := new(RepoMock)
		from := time.Date(2025, 3, 1, 3, 0, 0, 0, time.UTC)
		to := time.Date(2025, 4, 1, 3, 0, 0, 0, time.UTC)
		repo.On("SumByType", mock.Anything, "uid-1", from, to).Return(decimal.Zero, decimal.Zero, nil).Once()

		totals, err := newTestService(repo, nil).MonthlySummary(context.Background(), "uid-1", 2025, time.March)

		require.NoError(t, err)
		assert.True(t, totals.Income.IsZero())
		assert.True(t, totals.Balance.IsZero())
		repo.AssertExpectations(t)
	})

	t.Run("invalid month", func(t *testing.T) {
		_, err := newTestService(new(RepoMock), nil).MonthlySummary(context.Background(), "uid-1", 2025, 13)
		assert.ErrorIs(t, err, services.ErrInvalidInput)
	})

	t.Run("store failure", func(t *testing.T) {
		repo := new(RepoMock)
		repo.On("SumByType", mock.Anything, "uid-1", mock.Anything, mock.Anything).Return(decimal.Zero, decimal.Zero, errors.New("db down")).Once()

		_, err := newTestService(repo, nil).MonthlySummary(context.Background(), "uid-1", 2025, time.March)

		assert.Error(t, err)
	})
}

func TestService_CategoryBreakdown(t *testing.T) {
	repo := new(RepoMock)
	repo.On("ExpensesByCategory", mock.Anything, "uid-1").Return([]models.CategoryTotal{
		{Category: models.CategoryMarketing, Total: dec("50")},
		{Category: "", Total: dec("5")},
	}, nil).Once()

	totals, err := newTestService(repo, nil).CategoryBreakdown(context.Background(), "uid-1")

	require.NoError(t, err)
	require.Len(t, totals, 2)
	assert.Equal(t, "Marketing", totals[0].Label)
	assert.Equal(t, models.UncategorizedLabel, totals[1].Label)
}

func TestService_CurrentMonth(t *testing.T) {
	p := newTestService(nil, nil).CurrentMonth()
	assert.Equal(t, 2025, p.Year)
	assert.Equal(t, time.March, p.Month)
}
