package markpaid

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
	MarkAccountPaid(ctx context.Context, userUID string, id int64) (*models.Account, *models.Transaction, error)
}

type Handler struct {
	log     *slog.Logger
	service Service
}

func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Отметить счёт оплаченным
// @Description Помечает счёт оплаченным и в той же транзакции БД создаёт движение денег на его сумму.
// @Tags Accounts
// @Produce  json
// @Security BearerAuth
// @Param id path int true "ID счёта"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.ErrorResponse "Некорректный ID"
// @Failure 404 {object} response.ErrorResponse "Счёт не найден"
// @Failure 409 {object} response.ErrorResponse "Счёт уже оплачен"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /accounts/{id}/pay [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.account.markpaid"

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

	account, tx, err := h.service.MarkAccountPaid(r.Context(), uid, id)
	if err != nil {
		request.Fail(w, r, log, err, "failed to mark account as paid")
		return
	}

	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"account":     account,
		"transaction": tx,
		"message":     "Conta marcada como paga!",
	}))
}
