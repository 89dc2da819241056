package status

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/financeiro/internal/entitlement"
	"github.com/magabrotheeeer/financeiro/internal/http/middlewarectx"
	"github.com/magabrotheeeer/financeiro/internal/models"
	"github.com/magabrotheeeer/financeiro/internal/storage"
)

// MockService реализует интерфейс status.Service
type MockService struct {
	mock.Mock
}

func (m *MockService) Status(ctx context.Context, userUID string) (*models.SubscriptionStatus, error) {
	args := m.Called(ctx, userUID)
	if res := args.Get(0); res != nil {
		return res.(*models.SubscriptionStatus), args.Error(1)
	}
	return nil, args.Error(1)
}

func TestStatusHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	t.Run("пробный период", func(t *testing.T) {
		m := new(MockService)
		m.On("Status", mock.Anything, "uid-1").Return(&models.SubscriptionStatus{
			Plan:               entitlement.For(entitlement.PlanTrial),
			Status:             entitlement.StatusTrial,
			Active:             true,
			TrialDaysRemaining: 5,
		}, nil)

		req := httptest.NewRequest(http.MethodGet, "/subscription/status", nil)
		req = req.WithContext(context.WithValue(req.Context(), middlewarectx.UserUID, "uid-1"))
		rr := httptest.NewRecorder()
		New(logger, m).ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Contains(t, rr.Body.String(), `"trial_days_remaining":5`)
		m.AssertExpectations(t)
	})

	t.Run("пользователь не найден", func(t *testing.T) {
		m := new(MockService)
		m.On("Status", mock.Anything, "uid-1").Return(nil, fmt.Errorf("op: %w", storage.ErrNotFound))

		req := httptest.NewRequest(http.MethodGet, "/subscription/status", nil)
		req = req.WithContext(context.WithValue(req.Context(), middlewarectx.UserUID, "uid-1"))
		rr := httptest.NewRecorder()
		New(logger, m).ServeHTTP(rr, req)

		assert.Equal(t, http.StatusNotFound, rr.Code)
	})
}
