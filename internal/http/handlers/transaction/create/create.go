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
	CreateTransaction(ctx context.Context, userUID string, req models.TransactionRequest) (*models.Transaction, error)
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
// @Summary Создать транзакцию
// @Description Без даты транзакция записывается на начало текущего дня по времени São Paulo.
// @Tags Transactions
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param request body models.TransactionRequest true "Данные транзакции"
// @Success 201 {object} response.Response "Транзакция создана"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 402 {object} response.UpsellResponse "Достигнут лимит плана"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /transactions [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.transaction.create"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	uid, ok := request.UserUID(w, r, log)
	if !ok {
		return
	}

	var req models.TransactionRequest
	if !request.Bind(w, r, log, h.validate, &req) {
		return
	}

	tx, err := h.service.CreateTransaction(r.Context(), uid, req)
	if err != nil {
		request.Fail(w, r, log, err, "failed to create transaction")
		return
	}

	render.Status(r, http.StatusCreated)
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"transaction": tx,
		"message":     "Transação adicionada com sucesso!",
	}))
}
