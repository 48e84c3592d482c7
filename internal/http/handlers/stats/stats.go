// Package stats реализует HTTP-обработчик агрегатов админской панели.
package stats

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

// Handler обрабатывает HTTP-запросы агрегатов панели.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики справочников.
type Service interface {
	DashboardStats(ctx context.Context) (*models.DashboardStats, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Агрегаты панели
// @Description Возвращает счётчики пользователей, программ и свидетельств и последние записи.
// @Tags Dashboard
// @Produce  json
// @Success 200 {object} map[string]any "Агрегаты панели"
// @Failure 401 {object} response.ErrorResponse "Администратор не авторизован"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /dashboard-stats [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.stats"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	stats, err := h.service.DashboardStats(r.Context())
	if err != nil {
		log.Error("failed to collect dashboard stats", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error(response.CodeInternal, "could not collect dashboard stats"))
		return
	}

	render.JSON(w, r, response.OKWithData(stats))
}
