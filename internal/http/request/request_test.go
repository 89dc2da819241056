package request

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi"
	"github.com/stretchr/testify/assert"

	"github.com/magabrotheeeer/financeiro/internal/http/middlewarectx"
	"github.com/magabrotheeeer/financeiro/internal/lib/validation"
	"github.com/magabrotheeeer/financeiro/internal/storage"
)

type payload struct {
	Name string `json:"name" validate:"required"`
}

func newNoopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestBind(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		wantOK     bool
		wantStatus int
		wantBody   string
	}{
		{name: "valid", body: `{"name":"x"}`, wantOK: true, wantStatus: http.StatusOK},
		{name: "malformed", body: `{"name":`, wantStatus: http.StatusBadRequest, wantBody: `"invalid request body"`},
		{name: "invalid", body: `{}`, wantStatus: http.StatusUnprocessableEntity, wantBody: `field name is a required field`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tt.body))
			w := httptest.NewRecorder()

			var dst payload
			ok := Bind(w, req, newNoopLogger(), validation.New(), &dst)

			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Contains(t, w.Body.String(), tt.wantBody)
		})
	}
}

func TestID(t *testing.T) {
	for param, want := range map[string]bool{"12": true, "abc": false, "0": false, "-3": false} {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		rctx := chi.NewRouteContext()
		rctx.URLParams.Add("id", param)
		req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
		w := httptest.NewRecorder()

		_, ok := ID(w, req, newNoopLogger(), "id")

		assert.Equal(t, want, ok, param)
		if !want {
			assert.Equal(t, http.StatusBadRequest, w.Code)
		}
	}
}

func TestFail(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	w := httptest.NewRecorder()
	Fail(w, req, newNoopLogger(), storage.ErrNotFound, "could not load")
	assert.Equal(t, http.StatusNotFound, w.Code)

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	w = httptest.NewRecorder()
	Fail(w, req, newNoopLogger(), errors.New("db down"), "could not load")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "could not load")
}

func TestUserUID(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	w := httptest.NewRecorder()
	_, ok := UserUID(w, req, newNoopLogger())
	assert.False(t, ok)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	req = req.WithContext(context.WithValue(req.Context(), middlewarectx.UserUID, "uid-1"))
	w = httptest.NewRecorder()
	uid, ok := UserUID(w, req, newNoopLogger())
	assert.True(t, ok)
	assert.Equal(t, "uid-1", uid)
}
