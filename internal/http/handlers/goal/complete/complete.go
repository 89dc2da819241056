package complete

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
	Complete(ctx context.Context, userUID string, id int64) (*models.GoalView, error)
}

type Handler struct {
	log     *slog.Logger
	service Service
}

func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Завершить цель
// @Description Приравнивает накопленную сумму к целевой.
// @Tags Goals
// @Produce  json
// @Security BearerAuth
// @Param id path int true "ID цели"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.ErrorResponse "Некорректный ID"
// @Failure 404 {object} response.ErrorResponse "Цель не найдена"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /goals/{id}/complete [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.goal.complete"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	uid, ok := request.UserUID(w, r, log)
	if !ok {
		return
	}
	id, ok := request.ID(w, r, log, "id")
	if !ok {
		return
	}

	goal, err := h.service.Complete(r.Context(), uid, id)
	if err != nil {
		request.Fail(w, r, log, err, "failed to complete goal")
		return
	}

	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"goal":    goal,
		"message": "Parabéns! Meta concluída!",
	}))
}
