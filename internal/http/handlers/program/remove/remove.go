// Package remove реализует HTTP-обработчик мягкого удаления программы.
package remove

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/makingkings/mentorship-api/internal/http/middlewarectx"
	"github.com/makingkings/mentorship-api/internal/http/response"
	"github.com/makingkings/mentorship-api/internal/lib/sl"
	"github.com/makingkings/mentorship-api/internal/storage/repository"
)

// Handler обрабатывает HTTP-запросы удаления программы.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики каталога.
type Service interface {
	Remove(ctx context.Context, adminID, id string) error
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Удалить программу
// @Description Мягко удаляет программу: строка помечается и исчезает из каталога, история подписок сохраняется.
// @Tags Programs
// @Produce  json
// @Param id path string true "ID программы"
// @Success 200 {object} map[string]any "Программа удалена"
// @Failure 401 {object} response.ErrorResponse "Администратор не авторизован"
// @Failure 404 {object} response.ErrorResponse "Программа не найдена"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /program/{id} [delete]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.program.remove"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	adminID, ok := r.Context().Value(middlewarectx.AdminID).(string)
	if !ok || adminID == "" {
		log.Error("admin id not found in context")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error(response.CodeUnauthorized, "unauthorized"))
		return
	}

	id := chi.URLParam(r, "id")
	err := h.service.Remove(r.Context(), adminID, id)
	if errors.Is(err, repository.ErrNotFound) {
		log.Warn("program not found", slog.String("id", id))
		w.WriteHeader(http.StatusNotFound)
		render.JSON(w, r, response.Error(response.CodeNotFound, "program not found"))
		return
	}
	if err != nil {
		log.Error("failed to remove program", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error(response.CodeInternal, "could not remove program"))
		return
	}

	log.Info("program removed", slog.String("id", id))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"id": id,
	}))
}
