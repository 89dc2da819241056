// Package financeiro собирает компоненты сервиса и запускает HTTP-сервер.
package financeiro

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/streadway/amqp"

	"github.com/magabrotheeeer/financeiro/internal/cache"
	"github.com/magabrotheeeer/financeiro/internal/config"
	"github.com/magabrotheeeer/financeiro/internal/events"
	"github.com/magabrotheeeer/financeiro/internal/http/handlers/health"
	"github.com/magabrotheeeer/financeiro/internal/http/middlewarectx"
	"github.com/magabrotheeeer/financeiro/internal/lib/jwt"
	"github.com/magabrotheeeer/financeiro/internal/lib/rabbitmq"
	"github.com/magabrotheeeer/financeiro/internal/lib/sl"
	"github.com/magabrotheeeer/financeiro/internal/metrics"
	"github.com/magabrotheeeer/financeiro/internal/migrations"
	"github.com/magabrotheeeer/financeiro/internal/report"
	authservice "github.com/magabrotheeeer/financeiro/internal/services/auth"
	"github.com/magabrotheeeer/financeiro/internal/services/dashboard"
	"github.com/magabrotheeeer/financeiro/internal/services/financial"
	"github.com/magabrotheeeer/financeiro/internal/services/goals"
	"github.com/magabrotheeeer/financeiro/internal/services/reports"
	subscriptionservice "github.com/magabrotheeeer/financeiro/internal/services/subscription"
	"github.com/magabrotheeeer/financeiro/internal/storage/repository"
)

const rabbitRetryDelay = 2 * time.Second

type App struct {
	server          *http.Server
	logger          *slog.Logger
	db              *repository.Storage
	cache           *cache.Cache
	amqp            *amqp.Connection
	shutdownTimeout time.Duration
}

func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	db, err := repository.New(cfg.StorageConnectionString)
	if err != nil {
		return nil, err
	}
	if err = migrations.Run(db.DB, cfg.MigrationsPath); err != nil {
		_ = db.Close()
		return nil, err
	}
	version, dirty, err := migrations.Version(db.DB, cfg.MigrationsPath)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	if dirty {
		_ = db.Close()
		return nil, fmt.Errorf("financeiro.New: migration %d is dirty", version)
	}
	if err = repository.CheckDatabaseReady(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}
	logger.Info("database schema ready", slog.Uint64("version", uint64(version)))

	cacheRedis, err := cache.InitServer(ctx, cfg.RedisConnection)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	var (
		conn      *amqp.Connection
		publisher events.Publisher = events.NewNopPublisher(logger)
	)
	if cfg.RabbitMQ.Enabled {
		conn, err = rabbitmq.Connect(cfg.RabbitMQ.URL, cfg.RabbitMQ.Retries, rabbitRetryDelay)
		if err != nil {
			_ = db.Close()
			_ = cacheRedis.Close()
			return nil, err
		}
		ch, err := rabbitmq.SetupExchange(conn, cfg.RabbitMQ.Exchange)
		if err != nil {
			_ = conn.Close()
			_ = db.Close()
			_ = cacheRedis.Close()
			return nil, err
		}
		publisher = events.NewAMQPPublisher(ch, cfg.RabbitMQ.Exchange, logger)
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(registry)

	jwtMaker := jwt.NewJWTMaker(cfg.JWTSecretKey, cfg.TokenTTL)

	deps := Deps{
		Auth:         authservice.NewService(db, jwtMaker, cacheRedis, publisher, logger),
		Subscription: subscriptionservice.NewService(db, publisher, m, logger),
		Financial:    financial.NewService(db, publisher, m, logger),
		Goals:        goals.NewService(db, logger),
		Dashboard:    dashboard.NewService(db),
		Reports:      reports.NewService(db, m, logger, report.NewPDF(), report.NewXLSX()),
		Tokens:       jwtMaker,
		Revoked:      cacheRedis,
		Limiter:      middlewarectx.NewRateLimiter(cfg.RateLimit.RPS, cfg.RateLimit.Burst, cfg.RateLimit.Clients, cfg.RateLimit.Idle),
		Metrics:      m,
		Gatherer:     registry,
		Checks: map[string]health.Pinger{
			"database": db,
			"redis":    cacheRedis,
		},
	}

	router := chi.NewRouter()
	RegisterRoutes(router, logger, deps)

	srv := &http.Server{
		Addr:         cfg.AddressHTTP,
		Handler:      router,
		ReadTimeout:  cfg.TimeoutHTTP,
		WriteTimeout: cfg.TimeoutHTTP,
		IdleTimeout:  cfg.IdleTimeout,
	}

	return &App{
		server:          srv,
		logger:          logger,
		db:              db,
		cache:           cacheRedis,
		amqp:            conn,
		shutdownTimeout: cfg.ShutdownTimeout,
	}, nil
}

func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("HTTP server starting on", slog.String("address", a.server.Addr))
		err := a.server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			errCh <- nil
		} else {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		a.close()
		return err
	case <-ctx.Done():
		timeoutCtx, cancel := context.WithTimeout(context.Background(), a.shutdownTimeout)
		defer cancel()
		a.logger.Info("shutting down HTTP server gracefully")
		err := a.server.Shutdown(timeoutCtx)
		a.close()
		return err
	}
}

func (a *App) close() {
	if err := a.db.Close(); err != nil {
		a.logger.Error("failed to close database", sl.Err(err))
	}
	if err := a.cache.Close(); err != nil {
		a.logger.Error("failed to close redis", sl.Err(err))
	}
	if a.amqp != nil {
		if err := a.amqp.Close(); err != nil {
			a.logger.Error("failed to close rabbitmq connection", sl.Err(err))
		}
	}
}
