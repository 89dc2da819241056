package breakdown

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
	CategoryBreakdown(ctx context.Context, userUID string) ([]models.CategoryTotal, error)
}

type Handler struct {
	log     *slog.Logger
	service Service
}

func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Расходы по категориям
// @Tags Transactions
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /transactions/breakdown [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.transaction.breakdown"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	uid, ok := request.UserUID(w, r, log)
	if !ok {
		return
	}

	totals, err := h.service.CategoryBreakdown(r.Context(), uid)
	if err != nil {
		request.Fail(w, r, log, err, "failed to load categories")
		return
	}
	if totals == nil {
		totals = []models.CategoryTotal{}
	}

	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"categories": totals,
	}))
}
