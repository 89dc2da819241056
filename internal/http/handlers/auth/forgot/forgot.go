package forgot

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

// Message — единый ответ на запрос восстановления, не раскрывающий наличие адреса.
const Message = "Se o email estiver cadastrado, um link de recuperação será enviado."

type Service interface {
	ForgotPassword(ctx context.Context, email string)
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
// @Summary Восстановление пароля
// @Tags Auth
// @Accept  json
// @Produce  json
// @Param request body models.ForgotPasswordRequest true "Email"
// @Success 202 {object} response.Response
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Router /auth/forgot-password [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.forgot"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req models.ForgotPasswordRequest
	if !request.Bind(w, r, log, h.validate, &req) {
		return
	}

	h.service.ForgotPassword(r.Context(), req.Email)

	render.Status(r, http.StatusAccepted)
	render.JSON(w, r, response.StatusOKWithData(map[string]any{"message": Message}))
}
