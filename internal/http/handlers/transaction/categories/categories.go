package categories

import (
	"net/http"

	"github.com/go-chi/render"

	"github.com/magabrotheeeer/financeiro/internal/http/response"
	"github.com/magabrotheeeer/financeiro/internal/models"
)

type Service interface {
	Categories() []models.Category
}

type Handler struct {
	service Service
}

func New(service Service) *Handler {
	return &Handler{service: service}
}

// ServeHTTP godoc
// @Summary Категории транзакций
// @Tags Transactions
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /transactions/categories [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"categories": h.service.Categories(),
	}))
}
