package plans

import (
	"net/http"

	"github.com/go-chi/render"

	"github.com/magabrotheeeer/financeiro/internal/entitlement"
	"github.com/magabrotheeeer/financeiro/internal/http/response"
)

type Service interface {
	Plans() []entitlement.Offer
}

type Handler struct {
	service Service
}

func New(service Service) *Handler {
	return &Handler{service: service}
}

// ServeHTTP godoc
// @Summary Каталог платных планов
// @Tags Subscription
// @Produce  json
// @Success 200 {object} response.Response
// @Router /plans [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"plans": h.service.Plans(),
	}))
}
