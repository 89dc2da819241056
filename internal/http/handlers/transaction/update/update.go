package update

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
	UpdateTransaction(ctx context.Context, userUID string, id int64, req models.TransactionRequest) (*models.Transaction, error)
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
// @Summary Изменить транзакцию
// @Tags Transactions
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param id path int true "ID транзакции"
// @Param request body models.TransactionRequest true "Новые данные"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.ErrorResponse "Некорректный ID или JSON"
// @Failure 404 {object} response.ErrorResponse "Транзакция не найдена"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /transactions/{id} [put]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.transaction.update"

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

	var req models.TransactionRequest
	if !request.Bind(w, r, log, h.validate, &req) {
		return
	}

	tx, err := h.service.UpdateTransaction(r.Context(), uid, id, req)
	if err != nil {
		request.Fail(w, r, log, err, "failed to update transaction")
		return
	}

	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"transaction": tx,
	}))
}
