package middlewarectx

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/financeiro/internal/http/response"
	"github.com/magabrotheeeer/financeiro/internal/lib/sl"
)

// SubscriptionChecker определяет, активен ли пробный период или подписка пользователя.
type SubscriptionChecker interface {
	IsActive(ctx context.Context, userUID string) (bool, error)
}

// SubscriptionStatusMiddleware пропускает запрос только при активной подписке.
// Для неактивной возвращает 402 и ссылку на каталог планов.
func SubscriptionStatusMiddleware(log *slog.Logger, subService SubscriptionChecker) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			const op = "middlewarectx.SubscriptionStatusMiddleware"
			log := log.With(
				slog.String("op", op),
				slog.String("request_id", middleware.GetReqID(r.Context())),
			)

			userUID, ok := UserUIDFrom(r.Context())
			if !ok {
				log.Error("user identification missing")
				render.Status(r, http.StatusUnauthorized)
				render.JSON(w, r, response.Error("user identification missing"))
				return
			}

			active, err := subService.IsActive(r.Context(), userUID)
			if err != nil {
				log.Error("failed to get subscription status", sl.Err(err))
				render.Status(r, http.StatusInternalServerError)
				render.JSON(w, r, response.Error("internal error"))
				return
			}

			if !active {
				log.Info("subscription inactive, access denied", slog.String("user_uid", userUID))
				render.Status(r, http.StatusPaymentRequired)
				render.JSON(w, r, response.Upsell("subscription inactive, choose a plan to continue"))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
