package overview

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
	Overview(ctx context.Context, userUID string) (*models.ReportOverview, error)
}

type Handler struct {
	log     *slog.Logger
	service Service
}

func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Аналитический отчёт
// @Description 12 месяцев доходов и расходов, анализ категорий и ключевые показатели. Доступно на платных планах.
// @Tags Reports
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Failure 402 {object} response.UpsellResponse "Недоступно в текущем плане"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /reports [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.report.overview"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	uid, ok := request.UserUID(w, r, log)
	if !ok {
		return
	}

	res, err := h.service.Overview(r.Context(), uid)
	if err != nil {
		request.Fail(w, r, log, err, "failed to build report")
		return
	}

	render.JSON(w, r, response.StatusOKWithData(res))
}
