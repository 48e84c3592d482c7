// Package read реализует HTTP-обработчик чтения одной программы.
package read

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/makingkings/mentorship-api/internal/http/response"
	"github.com/makingkings/mentorship-api/internal/lib/sl"
	"github.com/makingkings/mentorship-api/internal/models"
	"github.com/makingkings/mentorship-api/internal/storage/repository"
)

// Handler обрабатывает HTTP-запросы чтения программы.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики каталога.
type Service interface {
	Get(ctx context.Context, id string) (*models.Program, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Программа по ID
// @Description Возвращает одну программу с ценой в долларах и найрах.
// @Tags Public
// @Produce  json
// @Param id path string true "ID программы"
// @Success 200 {object} map[string]any "Программа"
// @Failure 404 {object} response.ErrorResponse "Программа не найдена"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /program/{id} [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.program.read"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	id := chi.URLParam(r, "id")
	program, err := h.service.Get(r.Context(), id)
	if errors.Is(err, repository.ErrNotFound) {
		log.Warn("program not found", slog.String("id", id))
		w.WriteHeader(http.StatusNotFound)
		render.JSON(w, r, response.Error(response.CodeNotFound, "program not found"))
		return
	}
	if err != nil {
		log.Error("failed to read program", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error(response.CodeInternal, "could not read program"))
		return
	}

	render.JSON(w, r, response.OKWithData(program))
}
