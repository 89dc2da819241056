package list

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/financeiro/internal/http/middlewarectx"
	"github.com/magabrotheeeer/financeiro/internal/models"
)

// MockService реализует интерфейс list.Service
type MockService struct {
	mock.Mock
}

func (m *MockService) ListAccounts(ctx context.Context, userUID string) (*models.AccountsOverview, error) {
	args := m.Called(ctx, userUID)
	if res := args.Get(0); res != nil {
		return res.(*models.AccountsOverview), args.Error(1)
	}
	return nil, args.Error(1)
}

func TestListHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	newRequest := func() *http.Request {
		req := httptest.NewRequest(http.MethodGet, "/accounts", nil)
		return req.WithContext(context.WithValue(req.Context(), middlewarectx.UserUID, "uid-1"))
	}

	t.Run("обзор счетов", func(t *testing.T) {
		m := new(MockService)
		m.On("ListAccounts", mock.Anything, "uid-1").Return(&models.AccountsOverview{
			Receivables:      []*models.Account{},
			Payables:         []*models.Account{},
			TotalReceivables: decimal.NewFromInt(300),
			TotalPayables:    decimal.Zero,
		}, nil)

		rr := httptest.NewRecorder()
		New(logger, m).ServeHTTP(rr, newRequest())

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Contains(t, rr.Body.String(), `"total_receivables":"300"`)
		assert.Contains(t, rr.Body.String(), `"total_payables":"0"`)
	})

	t.Run("ошибка хранилища", func(t *testing.T) {
		m := new(MockService)
		m.On("ListAccounts", mock.Anything, "uid-1").Return(nil, errors.New("db down"))

		rr := httptest.NewRecorder()
		New(logger, m).ServeHTTP(rr, newRequest())

		assert.Equal(t, http.StatusInternalServerError, rr.Code)
		assert.Contains(t, rr.Body.String(), "failed to list accounts")
	})
}
