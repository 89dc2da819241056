package list

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
	ListAccounts(ctx context.Context, userUID string) (*models.AccountsOverview, error)
}

type Handler struct {
	log     *slog.Logger
	service Service
}

func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Счета к получению и к оплате
// @Description Суммы считаются только по неоплаченным счетам.
// @Tags Accounts
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /accounts [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.account.list"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	uid, ok := request.UserUID(w, r, log)
	if !ok {
		return
	}

	overview, err := h.service.ListAccounts(r.Context(), uid)
	if err != nil {
		request.Fail(w, r, log, err, "failed to list accounts")
		return
	}

	render.JSON(w, r, response.StatusOKWithData(overview))
}
