// Package metrics содержит метрики Prometheus сервиса и HTTP middleware для их сбора.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics — набор коллекторов. Методы безопасны для nil-получателя.
type Metrics struct {
	requests        *prometheus.CounterVec
	duration        *prometheus.HistogramVec
	transactions    *prometheus.CounterVec
	denials         *prometheus.CounterVec
	accountsPaid    *prometheus.CounterVec
	planActivations *prometheus.CounterVec
}

// New создаёт коллекторы и регистрирует их в reg.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Количество HTTP-запросов.",
		}, []string{"method", "route", "code"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Длительность обработки HTTP-запросов.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"}),
		transactions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "finance_transactions_created_total",
			Help: "Созданные транзакции по типу.",
		}, []string{"type"}),
		denials: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "finance_entitlement_denials_total",
			Help: "Отказы по тарифному плану.",
		}, []string{"reason"}),
		accountsPaid: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "finance_accounts_paid_total",
			Help: "Оплаченные счета по типу.",
		}, []string{"type"}),
		planActivations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "finance_plan_activations_total",
			Help: "Активации тарифных планов.",
		}, []string{"plan"}),
	}
	reg.MustRegister(m.requests, m.duration, m.transactions, m.denials, m.accountsPaid, m.planActivations)
	return m
}

// TransactionCreated учитывает созданную транзакцию.
func (m *Metrics) TransactionCreated(typ string) {
	if m == nil {
		return
	}
	m.transactions.WithLabelValues(typ).Inc()
}

// EntitlementDenied учитывает отказ по плану.
func (m *Metrics) EntitlementDenied(reason string) {
	if m == nil {
		return
	}
	m.denials.WithLabelValues(reason).Inc()
}

// AccountPaid учитывает оплату счёта.
func (m *Metrics) AccountPaid(typ string) {
	if m == nil {
		return
	}
	m.accountsPaid.WithLabelValues(typ).Inc()
}

// PlanActivated учитывает активацию плана.
func (m *Metrics) PlanActivated(plan string) {
	if m == nil {
		return
	}
	m.planActivations.WithLabelValues(plan).Inc()
}

// Middleware собирает количество и длительность запросов по шаблону маршрута chi.
func (m *Metrics) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if m == nil {
			next.ServeHTTP(w, r)
			return
		}
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		route := "unknown"
		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			if pattern := rctx.RoutePattern(); pattern != "" {
				route = pattern
			}
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		m.requests.WithLabelValues(r.Method, route, strconv.Itoa(status)).Inc()
		m.duration.WithLabelValues(r.Method, route).Observe(time.Since(start).Seconds())
	})
}
