package chart

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/financeiro/internal/http/request"
	"github.com/magabrotheeeer/financeiro/internal/http/response"
	"github.com/magabrotheeeer/financeiro/internal/models"
)

type Service interface {
	Chart(ctx context.Context, userUID string) (*models.ChartData, error)
}

type Handler struct {
	log     *slog.Logger
	service Service
}

func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Данные графика
// @Description Доходы и расходы за последние 6 календарных месяцев.
// @Tags Dashboard
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /dashboard/chart [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.dashboard.chart"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	uid, ok := request.UserUID(w, r, log)
	if !ok {
		return
	}

	data, err := h.service.Chart(r.Context(), uid)
	if err != nil {
		request.Fail(w, r, log, err, "failed to load chart")
		return
	}

	render.JSON(w, r, response.StatusOKWithData(data))
}
