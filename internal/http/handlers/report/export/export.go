package export

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"

	"github.com/magabrotheeeer/financeiro/internal/http/request"
	"github.com/magabrotheeeer/financeiro/internal/lib/sl"
	"github.com/magabrotheeeer/financeiro/internal/report"
)

type Service interface {
	Export(ctx context.Context, userUID, format string) (*report.File, error)
}

type Handler struct {
	log     *slog.Logger
	service Service
}

func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Выгрузить отчёт файлом
// @Tags Reports
// @Produce  application/pdf
// @Produce  application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Security BearerAuth
// @Param format path string true "Формат файла" Enums(pdf, xlsx)
// @Success 200 {file} file
// @Failure 400 {object} response.ErrorResponse "Неизвестный формат"
// @Failure 402 {object} response.UpsellResponse "Недоступно в текущем плане"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /reports/export/{format} [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.report.export"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	uid, ok := request.UserUID(w, r, log)
	if !ok {
		return
	}

	file, err := h.service.Export(r.Context(), uid, chi.URLParam(r, "format"))
	if err != nil {
		request.Fail(w, r, log, err, "failed to export report")
		return
	}

	w.Header().Set("Content-Type", file.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", file.Name))
	w.Header().Set("Content-Length", strconv.Itoa(len(file.Data)))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(file.Data); err != nil {
		log.Error("failed to write report", sl.Err(err))
	}
}
