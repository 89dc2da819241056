package create

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/financeiro/internal/http/request"
	"github.com/magabrotheeeer/financeiro/internal/http/response"
	"github.com/magabrotheeeer/financeiro/internal/lib/validation"
	"github.com/magabrotheeeer/financeiro/internal/models"
)

type Service interface {
	Create(ctx context.Context, userUID string, req models.GoalRequest) (*models.GoalView, error)
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
// @Summary Создать финансовую цель
// @Tags Goals
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param request body models.GoalRequest true "Данные цели"
// @Success 201 {object} response.Response "Цель создана"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /goals [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.goal.create"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	uid, ok := request.UserUID(w, r, log)
	if !ok {
		return
	}

	var req models.GoalRequest
	if !request.Bind(w, r, log, h.validate, &req) {
		return
	}

	goal, err := h.service.Create(r.Context(), uid, req)
	if err != nil {
		request.Fail(w, r, log, err, "failed to create goal")
		return
	}

	render.Status(r, http.StatusCreated)
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"goal":    goal,
		"message": "Meta criada com sucesso!",
	}))
}
