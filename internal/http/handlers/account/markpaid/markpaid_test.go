package markpaid

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/financeiro/internal/http/middlewarectx"
	"github.com/magabrotheeeer/financeiro/internal/models"
	"github.com/magabrotheeeer/financeiro/internal/storage"
)

// MockService реализует интерфейс markpaid.Service
type MockService struct {
	mock.Mock
}

func (m *MockService) MarkAccountPaid(ctx context.Context, userUID string, id int64) (*models.Account, *models.Transaction, error) {
	args := m.Called(ctx, userUID, id)
	acc, _ := args.Get(0).(*models.Account)
	tx, _ := args.Get(1).(*models.Transaction)
	return acc, tx, args.Error(2)
}

func TestMarkPaidHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	accountID := int64(4)

	tests := []struct {
		name           string
		id             string
		setupMock      func(*MockService)
		expectedStatus int
		expectedBody   []string
	}{
		{
			name: "счёт оплачен",
			id:   "4",
			setupMock: func(m *MockService) {
				m.On("MarkAccountPaid", mock.Anything, "uid-1", int64(4)).Return(
					&models.Account{ID: 4, Name: "Cliente A", Type: models.Receivable, Amount: decimal.NewFromInt(300), Status: models.AccountPaid},
					&models.Transaction{ID: 11, Description: "Recebimento: Cliente A", Amount: decimal.NewFromInt(300), Type: models.Income, AccountID: &accountID},
					nil,
				)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   []string{`"status":"paid"`, `"account_id":4`, `"description":"Recebimento: Cliente A"`},
		},
		{
			name: "уже оплачен",
			id:   "4",
			setupMock: func(m *MockService) {
				m.On("MarkAccountPaid", mock.Anything, "uid-1", int64(4)).
					Return(nil, nil, fmt.Errorf("op: %w", storage.ErrAlreadyPaid))
			},
			expectedStatus: http.StatusConflict,
			expectedBody:   []string{`"error":"account already paid"`},
		},
		{
			name: "чужой счёт",
			id:   "8",
			setupMock: func(m *MockService) {
				m.On("MarkAccountPaid", mock.Anything, "uid-1", int64(8)).
					Return(nil, nil, fmt.Errorf("op: %w", storage.ErrNotFound))
			},
			expectedStatus: http.StatusNotFound,
			expectedBody:   []string{`"error":"not found"`},
		},
		{
			name: "сбой фиксации",
			id:   "4",
			setupMock: func(m *MockService) {
				m.On("MarkAccountPaid", mock.Anything, "uid-1", int64(4)).Return(nil, nil, errors.New("commit failed"))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   []string{`"error":"failed to mark account as paid"`},
		},
		{
			name:           "некорректный id",
			id:             "x",
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   []string{"failed to decode id from url"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockService)
			tt.setupMock(mockService)

			req := httptest.NewRequest(http.MethodPost, "/accounts/"+tt.id+"/pay", nil)
			rctx := chi.NewRouteContext()
			rctx.URLParams.Add("id", tt.id)
			ctx := context.WithValue(req.Context(), chi.RouteCtxKey, rctx)
			ctx = context.WithValue(ctx, middleware.RequestIDKey, "test-request-id")
			ctx = context.WithValue(ctx, middlewarectx.UserUID, "uid-1")
			req = req.WithContext(ctx)

			rr := httptest.NewRecorder()
			New(logger, mockService).ServeHTTP(rr, req)

			assert.Equal(t, tt.expectedStatus, rr.Code)
			for _, want := range tt.expectedBody {
				assert.Contains(t, rr.Body.String(), want)
			}
			mockService.AssertExpectations(t)
		})
	}
}
