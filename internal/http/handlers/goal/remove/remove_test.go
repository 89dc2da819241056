package remove

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/financeiro/internal/http/middlewarectx"
	"github.com/magabrotheeeer/financeiro/internal/storage"
)

// MockService реализует интерфейс remove.Service
type MockService struct {
	mock.Mock
}

func (m *MockService) Delete(ctx context.Context, userUID string, id int64) error {
	args := m.Called(ctx, userUID, id)
	return args.Error(0)
}

func TestRemoveHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	for name, tc := range map[string]struct {
		err    error
		status int
	}{
		"удалено":    {status: http.StatusOK},
		"не найдено": {err: fmt.Errorf("op: %w", storage.ErrNotFound), status: http.StatusNotFound},
	} {
		t.Run(name, func(t *testing.T) {
			m := new(MockService)
			m.On("Delete", mock.Anything, "uid-1", int64(2)).Return(tc.err)

			req := httptest.NewRequest(http.MethodDelete, "/goals/2", nil)
			rctx := chi.NewRouteContext()
			rctx.URLParams.Add("id", "2")
			ctx := context.WithValue(req.Context(), chi.RouteCtxKey, rctx)
			ctx = context.WithValue(ctx, middlewarectx.UserUID, "uid-1")
			req = req.WithContext(ctx)

			rr := httptest.NewRecorder()
			New(logger, m).ServeHTTP(rr, req)

			assert.Equal(t, tc.status, rr.Code)
			m.AssertExpectations(t)
		})
	}
}
