package activate

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/financeiro/internal/http/request"
	"github.com/magabrotheeeer/financeiro/internal/http/response"
	"github.com/magabrotheeeer/financeiro/internal/models"
)

type Service interface {
	Activate(ctx context.Context, userUID, planID string) (*models.SubscriptionStatus, error)
}

type Handler struct {
	log     *slog.Logger
	service Service
}

func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Активация платного плана
// @Description Оплата имитируется: план активируется сразу на 30 дней.
// @Tags Subscription
// @Produce  json
// @Security BearerAuth
// @Param plan path string true "Идентификатор плана" Enums(mei, professional, enterprise)
// @Success 200 {object} response.Response
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 404 {object} response.ErrorResponse "План не найден"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /subscription/activate/{plan} [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.subscription.activate"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	uid, ok := request.UserUID(w, r, log)
	if !ok {
		return
	}

	status, err := h.service.Activate(r.Context(), uid, chi.URLParam(r, "plan"))
	if err != nil {
		request.Fail(w, r, log, err, "failed to activate plan")
		return
	}

	log.Info("plan activated", slog.String("user_uid", uid), slog.String("plan", string(status.Plan.Plan)))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"subscription": status,
		"message":      "Assinatura ativada com sucesso!",
	}))
}
