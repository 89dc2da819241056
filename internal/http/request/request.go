// Package request разбирает и валидирует JSON-тела запросов.
package request

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/financeiro/internal/http/middlewarectx"
	"github.com/magabrotheeeer/financeiro/internal/http/response"
	"github.com/magabrotheeeer/financeiro/internal/lib/sl"
)

// Bind декодирует тело в dst и проверяет его валидатором.
// При ошибке сам пишет ответ (400 для JSON, 422 для валидации) и возвращает false.
func Bind(w http.ResponseWriter, r *http.Request, log *slog.Logger, validate *validator.Validate, dst any) bool {
	if err := render.DecodeJSON(r.Body, dst); err != nil {
		log.Error("failed to decode request body", sl.Err(err))
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return false
	}

	if err := validate.Struct(dst); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			log.Info("validation failed", sl.Err(err))
			render.Status(r, http.StatusUnprocessableEntity)
			render.JSON(w, r, response.ValidationError(verrs))
			return false
		}
		log.Error("validation failed", sl.Err(err))
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return false
	}
	return true
}

// ID читает положительный идентификатор из параметра пути name.
// При ошибке пишет 400 и возвращает false.
func ID(w http.ResponseWriter, r *http.Request, log *slog.Logger, name string) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil || id <= 0 {
		log.Info("failed to decode id from url", slog.String("param", chi.URLParam(r, name)))
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error("failed to decode id from url"))
		return 0, false
	}
	return id, true
}

// UserUID достаёт UID пользователя, положенный JWT middleware.
// Без него пишет 401 и возвращает false.
func UserUID(w http.ResponseWriter, r *http.Request, log *slog.Logger) (string, bool) {
	uid, ok := middlewarectx.UserUIDFrom(r.Context())
	if !ok {
		log.Error("user uid not found in context")
		render.Status(r, http.StatusUnauthorized)
		render.JSON(w, r, response.Error("unauthorized"))
		return "", false
	}
	return uid, true
}

// Fail пишет ответ по ошибке сервиса. Сбои хранилища логируются как ошибки.
func Fail(w http.ResponseWriter, r *http.Request, log *slog.Logger, err error, fallback string) {
	status, body := response.FromError(err, fallback)
	if status >= http.StatusInternalServerError {
		log.Error(fallback, sl.Err(err))
	} else {
		log.Info(fallback, sl.Err(err), slog.Int("status", status))
	}
	render.Status(r, status)
	render.JSON(w, r, body)
}
