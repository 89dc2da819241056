package summary

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/financeiro/internal/http/request"
	"github.com/magabrotheeeer/financeiro/internal/http/response"
	"github.com/magabrotheeeer/financeiro/internal/lib/month"
	"github.com/magabrotheeeer/financeiro/internal/models"
)

type Service interface {
	MonthlySummary(ctx context.Context, userUID string, year int, m time.Month) (models.Totals, error)
	CurrentMonth() month.Period
}

type Handler struct {
	log     *slog.Logger
	service Service
}

func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Итоги за месяц
// @Description Доходы, расходы и баланс за календарный месяц по времени São Paulo. Без параметров берётся текущий месяц.
// @Tags Transactions
// @Produce  json
// @Security BearerAuth
// @Param year query int false "Год"
// @Param month query int false "Месяц (1-12)"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.ErrorResponse "Некорректный период"
// @Failure 422 {object} response.ErrorResponse "Месяц вне диапазона"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /transactions/summary [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.transaction.summary"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	uid, ok := request.UserUID(w, r, log)
	if !ok {
		return
	}

	period := h.service.CurrentMonth()
	q := r.URL.Query()
	if raw := q.Get("year"); raw != "" {
		y, err := strconv.Atoi(raw)
		if err != nil {
			h.badPeriod(w, r, log, raw)
			return
		}
		period.Year = y
	}
	if raw := q.Get("month"); raw != "" {
		m, err := strconv.Atoi(raw)
		if err != nil {
			h.badPeriod(w, r, log, raw)
			return
		}
		period.Month = time.Month(m)
	}

	totals, err := h.service.MonthlySummary(r.Context(), uid, period.Year, period.Month)
	if err != nil {
		request.Fail(w, r, log, err, "failed to summarize month")
		return
	}

	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"year":   period.Year,
		"month":  int(period.Month),
		"label":  period.Label(),
		"totals": totals,
	}))
}

func (h *Handler) badPeriod(w http.ResponseWriter, r *http.Request, log *slog.Logger, raw string) {
	log.Info("invalid period", slog.String("value", raw))
	render.Status(r, http.StatusBadRequest)
	render.JSON(w, r, response.Error("invalid period"))
}
