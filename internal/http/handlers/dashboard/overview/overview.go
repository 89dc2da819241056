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
	Overview(ctx context.Context, userUID string) (*models.Dashboard, error)
}

type Handler struct {
	log     *slog.Logger
	service Service
}

func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Дашборд
// @Description Итоги месяца, последние транзакции, открытые счета, цели и уровень пользователя.
// @Tags Dashboard
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Failure 402 {object} response.UpsellResponse "Подписка неактивна"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /dashboard [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.dashboard.overview"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	uid, ok := request.UserUID(w, r, log)
	if !ok {
		return
	}

	dash, err := h.service.Overview(r.Context(), uid)
	if err != nil {
		request.Fail(w, r, log, err, "failed to load dashboard")
		return
	}

	render.JSON(w, r, response.StatusOKWithData(dash))
}
