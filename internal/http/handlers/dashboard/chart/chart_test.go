package chart

import (
	"context"
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

// MockService реализует интерфейс chart.Service
type MockService struct {
	mock.Mock
}

func (m *MockService) Chart(ctx context.Context, userUID string) (*models.ChartData, error) {
	args := m.Called(ctx, userUID)
	if res := args.Get(0); res != nil {
		return res.(*models.ChartData), args.Error(1)
	}
	return nil, args.Error(1)
}

func TestChartHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	zero := decimal.Zero

	m := new(MockService)
	m.On("Chart", mock.Anything, "uid-1").Return(&models.ChartData{
		Months:   []string{"Out", "Nov", "Dez", "Jan", "Fev", "Mar"},
		Income:   []decimal.Decimal{zero, zero, zero, zero, zero, decimal.NewFromInt(100)},
		Expenses: []decimal.Decimal{zero, zero, zero, zero, zero, zero},
	}, nil)

	req := httptest.NewRequest(http.MethodGet, "/dashboard/chart", nil)
	req = req.WithContext(context.WithValue(req.Context(), middlewarectx.UserUID, "uid-1"))
	rr := httptest.NewRecorder()
	New(logger, m).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `"months":["Out","Nov","Dez","Jan","Fev","Mar"]`)
	assert.Contains(t, rr.Body.String(), `"income":["0","0","0","0","0","100"]`)
	m.AssertExpectations(t)
}
