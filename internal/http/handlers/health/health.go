package health

import (
	"context"
	"log/slog"
	"net/http"
	"sort"
	"time"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/financeiro/internal/http/response"
	"github.com/magabrotheeeer/financeiro/internal/lib/sl"
)

// Timeout ограничивает время одной проверки зависимости.
const Timeout = 2 * time.Second

// Pinger — зависимость, доступность которой проверяется в health.
type Pinger interface {
	Ping(ctx context.Context) error
}

type Handler struct {
	log    *slog.Logger
	checks map[string]Pinger
}

// New создаёт обработчик. checks может быть пустым, тогда отвечает только сам процесс.
func New(log *slog.Logger, checks map[string]Pinger) *Handler {
	return &Handler{
		log:    log,
		checks: checks,
	}
}

// ServeHTTP godoc
// @Summary Проверка состояния сервиса
// @Description Проверяет доступность базы данных и Redis.
// @Tags Health
// @Produce  json
// @Success 200 {object} response.Response
// @Failure 503 {object} response.Response "Зависимость недоступна"
// @Router /health [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.health"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	names := make([]string, 0, len(h.checks))
	for name := range h.checks {
		names = append(names, name)
	}
	sort.Strings(names)

	healthy := true
	results := make(map[string]string, len(names))
	for _, name := range names {
		ctx, cancel := context.WithTimeout(r.Context(), Timeout)
		err := h.checks[name].Ping(ctx)
		cancel()
		if err != nil {
			log.Error("dependency unavailable", slog.String("dependency", name), sl.Err(err))
			results[name] = "unavailable"
			healthy = false
			continue
		}
		results[name] = "ok"
	}

	data := map[string]any{"service": "ok", "checks": results}
	if !healthy {
		render.Status(r, http.StatusServiceUnavailable)
		render.JSON(w, r, response.Response{Status: response.StatusError, Error: "service unavailable", Data: data})
		return
	}
	render.JSON(w, r, response.StatusOKWithData(data))
}
