package middlewarectx

import (
	"log/slog"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/render"
	"github.com/hashicorp/golang-lru/v2/expirable"
	"golang.org/x/time/rate"

	"github.com/magabrotheeeer/financeiro/internal/http/response"
)

// RateLimiter хранит отдельный token bucket на каждого клиента.
// Помнит не больше clients клиентов; bucket клиента без запросов дольше idle забывается.
type RateLimiter struct {
	mu       sync.Mutex
	limiters *expirable.LRU[string, *rate.Limiter]
	rps      rate.Limit
	burst    int
}

// NewRateLimiter создаёт ограничитель с rps запросов в секунду и очередью burst.
func NewRateLimiter(rps float64, burst, clients int, idle time.Duration) *RateLimiter {
	return &RateLimiter{
		limiters: expirable.NewLRU[string, *rate.Limiter](clients, nil, idle),
		rps:      rate.Limit(rps),
		burst:    burst,
	}
}

func (l *RateLimiter) limiter(key string) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()
	lim, ok := l.limiters.Get(key)
	if !ok {
		lim = rate.NewLimiter(l.rps, l.burst)
	}
	// Add продлевает срок жизни записи при каждом запросе.
	l.limiters.Add(key, lim)
	return lim
}

// Allow расходует один токен клиента key.
func (l *RateLimiter) Allow(key string) bool {
	return l.limiter(key).Allow()
}

// RateLimitMiddleware отвечает 429, если клиент превысил лимит.
// Клиент определяется по UID из токена, а без него по IP.
func RateLimitMiddleware(log *slog.Logger, l *RateLimiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := clientKey(r)
			if !l.Allow(key) {
				log.Warn("too many requests", slog.String("client", key))
				render.Status(r, http.StatusTooManyRequests)
				render.JSON(w, r, response.Error("too many requests"))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func clientKey(r *http.Request) string {
	if uid, ok := UserUIDFrom(r.Context()); ok {
		return "user:" + uid
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		host = r.RemoteAddr
	}
	return "ip:" + host
}
