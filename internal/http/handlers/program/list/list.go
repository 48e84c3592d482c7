// Package list реализует HTTP-обработчик публичного каталога программ.
package list

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/makingkings/mentorship-api/internal/http/response"
	"github.com/makingkings/mentorship-api/internal/lib/sl"
	"github.com/makingkings/mentorship-api/internal/models"
)

// Handler обрабатывает HTTP-запросы списка программ.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики каталога.
type Service interface {
	List(ctx context.Context) ([]*models.Program, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Каталог программ
// @Description Возвращает все активные программы с ценой в долларах и найрах.
// @Tags Public
// @Produce  json
// @Success 200 {object} map[string]any "Список программ"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /program [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.program.list"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	programs, err := h.service.List(r.Context())
	if err != nil {
		log.Error("failed to list programs", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error(response.CodeInternal, "could not list programs"))
		return
	}

	log.Info("programs listed", slog.Int("count", len(programs)))
	render.JSON(w, r, response.OKWithData(programs))
}
