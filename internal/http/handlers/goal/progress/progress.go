package progress

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"
	"github.com/shopspring/decimal"

	"github.com/magabrotheeeer/financeiro/internal/http/request"
	"github.com/magabrotheeeer/financeiro/internal/http/response"
	"github.com/magabrotheeeer/financeiro/internal/lib/validation"
	"github.com/magabrotheeeer/financeiro/internal/models"
)

type Service interface {
	UpdateProgress(ctx context.Context, userUID string, id int64, amount decimal.Decimal) (*models.GoalView, error)
}

type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validation.New(),
	}
}

// ServeHTTP godoc
// @Summary Обновить накопленную сумму цели
// @Description Цель считается завершённой, как только сумма достигает целевой.
// @Tags Goals
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param id path int true "ID цели"
// @Param request body models.GoalProgressRequest true "Текущая сумма"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.ErrorResponse "Некорректный ID или JSON"
// @Failure 404 {object} response.ErrorResponse "Цель не найдена"
// @Failure 422 {object} response.ErrorResponse "Отрицательная сумма"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /goals/{id}/progress [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.goal.progress"

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

	var req models.GoalProgressRequest
	if !request.Bind(w, r, log, h.validate, &req) {
		return
	}

	goal, err := h.service.UpdateProgress(r.Context(), uid, id, req.Amount)
	if err != nil {
		request.Fail(w, r, log, err, "failed to update goal progress")
		return
	}

	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"goal": goal,
	}))
}
