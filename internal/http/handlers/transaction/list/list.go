package list

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/financeiro/internal/http/request"
	"github.com/magabrotheeeer/financeiro/internal/http/response"
	"github.com/magabrotheeeer/financeiro/internal/models"
)

// MaxLimit — верхняя граница параметра limit.
const MaxLimit = 500

type Service interface {
	ListTransactions(ctx context.Context, userUID string, limit int) (*models.CashFlow, error)
}

type Handler struct {
	log     *slog.Logger
	service Service
}

func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Список транзакций
// @Description Последние транзакции и итоги по всем записям пользователя.
// @Tags Transactions
// @Produce  json
// @Security BearerAuth
// @Param limit query int false "Сколько транзакций вернуть (по умолчанию 50)"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.ErrorResponse "Некорректный limit"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /transactions [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.transaction.list"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	uid, ok := request.UserUID(w, r, log)
	if !ok {
		return
	}

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 || n > MaxLimit {
			log.Info("invalid limit", slog.String("limit", raw))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("invalid limit"))
			return
		}
		limit = n
	}

	flow, err := h.service.ListTransactions(r.Context(), uid, limit)
	if err != nil {
		request.Fail(w, r, log, err, "failed to list transactions")
		return
	}

	render.JSON(w, r, response.StatusOKWithData(flow))
}
