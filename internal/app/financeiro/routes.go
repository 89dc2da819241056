package financeiro

import (
	"log/slog"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	accountcreate "github.com/magabrotheeeer/financeiro/internal/http/handlers/account/create"
	accountlist "github.com/magabrotheeeer/financeiro/internal/http/handlers/account/list"
	"github.com/magabrotheeeer/financeiro/internal/http/handlers/account/markpaid"
	"github.com/magabrotheeeer/financeiro/internal/http/handlers/auth/forgot"
	"github.com/magabrotheeeer/financeiro/internal/http/handlers/auth/login"
	"github.com/magabrotheeeer/financeiro/internal/http/handlers/auth/logout"
	"github.com/magabrotheeeer/financeiro/internal/http/handlers/auth/register"
	"github.com/magabrotheeeer/financeiro/internal/http/handlers/dashboard/chart"
	dashboardoverview "github.com/magabrotheeeer/financeiro/internal/http/handlers/dashboard/overview"
	"github.com/magabrotheeeer/financeiro/internal/http/handlers/goal/complete"
	goalcreate "github.com/magabrotheeeer/financeiro/internal/http/handlers/goal/create"
	goallist "github.com/magabrotheeeer/financeiro/internal/http/handlers/goal/list"
	"github.com/magabrotheeeer/financeiro/internal/http/handlers/goal/progress"
	"github.com/magabrotheeeer/financeiro/internal/http/handlers/goal/reactivate"
	goalremove "github.com/magabrotheeeer/financeiro/internal/http/handlers/goal/remove"
	goalupdate "github.com/magabrotheeeer/financeiro/internal/http/handlers/goal/update"
	"github.com/magabrotheeeer/financeiro/internal/http/handlers/health"
	"github.com/magabrotheeeer/financeiro/internal/http/handlers/report/export"
	reportoverview "github.com/magabrotheeeer/financeiro/internal/http/handlers/report/overview"
	"github.com/magabrotheeeer/financeiro/internal/http/handlers/subscription/activate"
	"github.com/magabrotheeeer/financeiro/internal/http/handlers/subscription/checkout"
	"github.com/magabrotheeeer/financeiro/internal/http/handlers/subscription/plans"
	"github.com/magabrotheeeer/financeiro/internal/http/handlers/subscription/status"
	"github.com/magabrotheeeer/financeiro/internal/http/handlers/transaction/breakdown"
	"github.com/magabrotheeeer/financeiro/internal/http/handlers/transaction/categories"
	txcreate "github.com/magabrotheeeer/financeiro/internal/http/handlers/transaction/create"
	txlist "github.com/magabrotheeeer/financeiro/internal/http/handlers/transaction/list"
	txremove "github.com/magabrotheeeer/financeiro/internal/http/handlers/transaction/remove"
	"github.com/magabrotheeeer/financeiro/internal/http/handlers/transaction/summary"
	txupdate "github.com/magabrotheeeer/financeiro/internal/http/handlers/transaction/update"
	"github.com/magabrotheeeer/financeiro/internal/http/middlewarectx"
	"github.com/magabrotheeeer/financeiro/internal/metrics"
	authservice "github.com/magabrotheeeer/financeiro/internal/services/auth"
	"github.com/magabrotheeeer/financeiro/internal/services/dashboard"
	"github.com/magabrotheeeer/financeiro/internal/services/financial"
	"github.com/magabrotheeeer/financeiro/internal/services/goals"
	"github.com/magabrotheeeer/financeiro/internal/services/reports"
	subscriptionservice "github.com/magabrotheeeer/financeiro/internal/services/subscription"
)

// Deps — всё, что нужно маршрутам.
type Deps struct {
	Auth         *authservice.Service
	Subscription *subscriptionservice.Service
	Financial    *financial.Service
	Goals        *goals.Service
	Dashboard    *dashboard.Service
	Reports      *reports.Service

	Tokens   middlewarectx.TokenParser
	Revoked  middlewarectx.RevocationChecker
	Limiter  *middlewarectx.RateLimiter
	Metrics  *metrics.Metrics
	Gatherer prometheus.Gatherer
	Checks   map[string]health.Pinger
}

// RegisterRoutes регистрирует все маршруты приложения.
func RegisterRoutes(r chi.Router, logger *slog.Logger, d Deps) {
	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
		middleware.URLFormat,
		d.Metrics.Middleware,
	)

	r.Route("/api/v1", func(r chi.Router) {
		// Открытые конечные точки
		r.Group(func(r chi.Router) {
			r.Use(middlewarectx.RateLimitMiddleware(logger, d.Limiter))
			r.Get("/health", health.New(logger, d.Checks).ServeHTTP)
			r.Post("/auth/register", register.New(logger, d.Auth).ServeHTTP)
			r.Post("/auth/login", login.New(logger, d.Auth).ServeHTTP)
			r.Post("/auth/forgot-password", forgot.New(logger, d.Auth).ServeHTTP)
			r.Get("/plans", plans.New(d.Subscription).ServeHTTP)
		})

		// Группа с JWT аутентификацией
		r.Group(func(r chi.Router) {
			r.Use(middlewarectx.JWTMiddleware(d.Tokens, d.Revoked, logger))
			r.Use(middlewarectx.RateLimitMiddleware(logger, d.Limiter))

			r.Post("/auth/logout", logout.New(logger, d.Auth).ServeHTTP)
			r.Get("/subscription/status", status.New(logger, d.Subscription).ServeHTTP)
			r.Get("/subscription/checkout/{plan}", checkout.New(logger, d.Subscription).ServeHTTP)
			r.Post("/subscription/activate/{plan}", activate.New(logger, d.Subscription).ServeHTTP)

			// Требуется активный пробный период или подписка
			r.Group(func(r chi.Router) {
				r.Use(middlewarectx.SubscriptionStatusMiddleware(logger, d.Subscription))

				r.Get("/dashboard", dashboardoverview.New(logger, d.Dashboard).ServeHTTP)
				r.Get("/dashboard/chart", chart.New(logger, d.Dashboard).ServeHTTP)

				r.Post("/transactions", txcreate.New(logger, d.Financial).ServeHTTP)
				r.Get("/transactions", txlist.New(logger, d.Financial).ServeHTTP)
				r.Get("/transactions/summary", summary.New(logger, d.Financial).ServeHTTP)
				r.Get("/transactions/categories", categories.New(d.Financial).ServeHTTP)
				r.Get("/transactions/breakdown", breakdown.New(logger, d.Financial).ServeHTTP)
				r.Put("/transactions/{id}", txupdate.New(logger, d.Financial).ServeHTTP)
				r.Delete("/transactions/{id}", txremove.New(logger, d.Financial).ServeHTTP)

				r.Post("/accounts", accountcreate.New(logger, d.Financial).ServeHTTP)
				r.Get("/accounts", accountlist.New(logger, d.Financial).ServeHTTP)
				r.Post("/accounts/{id}/pay", markpaid.New(logger, d.Financial).ServeHTTP)

				r.Post("/goals", goalcreate.New(logger, d.Goals).ServeHTTP)
				r.Get("/goals", goallist.New(logger, d.Goals).ServeHTTP)
				r.Put("/goals/{id}", goalupdate.New(logger, d.Goals).ServeHTTP)
				r.Post("/goals/{id}/progress", progress.New(logger, d.Goals).ServeHTTP)
				r.Post("/goals/{id}/complete", complete.New(logger, d.Goals).ServeHTTP)
				r.Post("/goals/{id}/reactivate", reactivate.New(logger, d.Goals).ServeHTTP)
				r.Delete("/goals/{id}", goalremove.New(logger, d.Goals).ServeHTTP)

				r.Get("/reports", reportoverview.New(logger, d.Reports).ServeHTTP)
				r.Get("/reports/export/{format}", export.New(logger, d.Reports).ServeHTTP)
			})
		})
	})

	r.Handle("/metrics", promhttp.HandlerFor(d.Gatherer, promhttp.HandlerOpts{}))
	// Swagger docs endpoint
	r.Get("/docs/*", httpSwagger.WrapHandler)
}
