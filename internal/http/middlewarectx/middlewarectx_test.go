package middlewarectx_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/financeiro/internal/http/middlewarectx"
	"github.com/magabrotheeeer/financeiro/internal/lib/jwt"
)

type RevokedMock struct {
	mock.Mock
}

func (m *RevokedMock) IsRevoked(ctx context.Context, jti string) (bool, error) {
	args := m.Called(ctx, jti)
	return args.Bool(0), args.Error(1)
}

type SubscriptionMock struct {
	mock.Mock
}

func (m *SubscriptionMock) IsActive(ctx context.Context, userUID string) (bool, error) {
	args := m.Called(ctx, userUID)
	return args.Bool(0), args.Error(1)
}

func newNoopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))
}

func TestJWTMiddleware(t *testing.T) {
	maker := jwt.NewJWTMaker("secret", time.Hour)
	valid, err := maker.GenerateToken("uid-1", "maria")
	require.NoError(t, err)
	claims, err := maker.ParseToken(valid)
	require.NoError(t, err)

	foreign, err := jwt.NewJWTMaker("other", time.Hour).GenerateToken("uid-1", "maria")
	require.NoError(t, err)

	tests := []struct {
		name       string
		authHeader string
		revoked    *bool
		revokeErr  error
		wantStatus int
		wantCalled bool
	}{
		{name: "missing header", wantStatus: http.StatusUnauthorized},
		{name: "wrong scheme", authHeader: "Basic abc", wantStatus: http.StatusUnauthorized},
		{name: "bad signature", authHeader: "Bearer " + foreign, wantStatus: http.StatusUnauthorized},
		{name: "revoked", authHeader: "Bearer " + valid, revoked: boolPtr(true), wantStatus: http.StatusUnauthorized},
		{name: "denylist failure", authHeader: "Bearer " + valid, revoked: boolPtr(false), revokeErr: errors.New("redis down"), wantStatus: http.StatusInternalServerError},
		{name: "valid", authHeader: "Bearer " + valid, revoked: boolPtr(false), wantStatus: http.StatusOK, wantCalled: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			revokedMock := new(RevokedMock)
			if tt.revoked != nil {
				revokedMock.On("IsRevoked", mock.Anything, claims.ID).Return(*tt.revoked, tt.revokeErr).Once()
			}

			called := false
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				called = true
				uid, ok := middlewarectx.UserUIDFrom(r.Context())
				assert.True(t, ok)
				assert.Equal(t, "uid-1", uid)
				assert.Equal(t, "maria", r.Context().Value(middlewarectx.User))
				c, ok := middlewarectx.ClaimsFrom(r.Context())
				assert.True(t, ok)
				assert.Equal(t, claims.ID, c.ID)
				w.WriteHeader(http.StatusOK)
			})

			req := httptest.NewRequest(http.MethodGet, "/api/v1/transactions", nil)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}
			rec := httptest.NewRecorder()

			middlewarectx.JWTMiddleware(maker, revokedMock, newNoopLogger())(next).ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantCalled, called)
			revokedMock.AssertExpectations(t)
		})
	}
}

func TestJWTMiddleware_NilRevocationChecker(t *testing.T) {
	maker := jwt.NewJWTMaker("secret", time.Hour)
	token, err := maker.GenerateToken("uid-1", "maria")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()

	middlewarectx.JWTMiddleware(maker, nil, newNoopLogger())(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestSubscriptionStatusMiddleware(t *testing.T) {
	tests := []struct {
		name       string
		userUID    string
		active     bool
		err        error
		wantStatus int
		wantCalled bool
	}{
		{name: "no user", wantStatus: http.StatusUnauthorized},
		{name: "active", userUID: "uid-1", active: true, wantStatus: http.StatusOK, wantCalled: true},
		{name: "inactive", userUID: "uid-1", active: false, wantStatus: http.StatusPaymentRequired},
		{name: "store failure", userUID: "uid-1", err: errors.New("db down"), wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			subMock := new(SubscriptionMock)
			if tt.userUID != "" {
				subMock.On("IsActive", mock.Anything, tt.userUID).Return(tt.active, tt.err).Once()
			}

			called := false
			next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				called = true
				w.WriteHeader(http.StatusOK)
			})

			req := httptest.NewRequest(http.MethodGet, "/api/v1/dashboard", nil)
			if tt.userUID != "" {
				req = req.WithContext(context.WithValue(req.Context(), middlewarectx.UserUID, tt.userUID))
			}
			rec := httptest.NewRecorder()

			middlewarectx.SubscriptionStatusMiddleware(newNoopLogger(), subMock)(next).ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantCalled, called)
			if tt.wantStatus == http.StatusPaymentRequired {
				var body map[string]string
				require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
				assert.Equal(t, "/api/v1/plans", body["upgrade_url"])
			}
			subMock.AssertExpectations(t)
		})
	}
}

func TestRateLimitMiddleware(t *testing.T) {
	limiter := middlewarectx.NewRateLimiter(0.001, 2, 100, time.Minute)
	handler := middlewarectx.RateLimitMiddleware(newNoopLogger(), limiter)(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	do := func(remote string) int {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = remote
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		return rec.Code
	}

	assert.Equal(t, http.StatusOK, do("10.0.0.1:1000"))
	assert.Equal(t, http.StatusOK, do("10.0.0.1:1001"))
	assert.Equal(t, http.StatusTooManyRequests, do("10.0.0.1:1002"))
	assert.Equal(t, http.StatusOK, do("10.0.0.2:1000"))
}

func boolPtr(b bool) *bool { return &b }
