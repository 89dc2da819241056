package response

import (
	"errors"
	"net/http"

	"github.com/magabrotheeeer/financeiro/internal/entitlement"
	"github.com/magabrotheeeer/financeiro/internal/report"
	"github.com/magabrotheeeer/financeiro/internal/services"
	"github.com/magabrotheeeer/financeiro/internal/storage"
)

// FromError сопоставляет ошибку сервиса HTTP-статусу и телу ответа.
// Неизвестные ошибки считаются сбоем хранилища: 500 с сообщением fallback.
func FromError(err error, fallback string) (int, any) {
	switch {
	case errors.Is(err, storage.ErrNotFound):
		return http.StatusNotFound, Error("not found")
	case errors.Is(err, storage.ErrAlreadyExists):
		return http.StatusConflict, Error("already exists")
	case errors.Is(err, storage.ErrAlreadyPaid):
		return http.StatusConflict, Error("account already paid")
	case errors.Is(err, entitlement.ErrTransactionLimit):
		return http.StatusPaymentRequired, Upsell("transaction limit reached for current plan")
	case errors.Is(err, entitlement.ErrFeatureUnavailable):
		return http.StatusPaymentRequired, Upsell("feature not available in current plan")
	case errors.Is(err, entitlement.ErrSubscriptionInactive):
		return http.StatusPaymentRequired, Upsell("subscription inactive, choose a plan to continue")
	case errors.Is(err, entitlement.ErrInvalidPlan):
		return http.StatusNotFound, Error("plan not found")
	case errors.Is(err, report.ErrUnknownFormat):
		return http.StatusBadRequest, Error("unsupported report format")
	case errors.Is(err, services.ErrInvalidCredentials):
		return http.StatusUnauthorized, Error("invalid email or password")
	case errors.Is(err, services.ErrGoalCompleted):
		return http.StatusConflict, Error("goal is completed, lower current amount or raise target to reactivate")
	case errors.Is(err, services.ErrInvalidInput):
		return http.StatusUnprocessableEntity, Error("invalid input")
	default:
		return http.StatusInternalServerError, Error(fallback)
	}
}
