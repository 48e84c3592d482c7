// Package list реализует HTTP-обработчик листинга журнала действий
// администраторов.
package list

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/makingkings/mentorship-api/internal/http/listparams"
	"github.com/makingkings/mentorship-api/internal/http/response"
	"github.com/makingkings/mentorship-api/internal/lib/sl"
	"github.com/makingkings/mentorship-api/internal/models"
)

// Handler обрабатывает HTTP-запросы журнала действий.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики справочников.
type Service interface {
	ListActivity(ctx context.Context, filter models.ListFilter) ([]*models.ActivityLog, *models.Pagination, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Журнал действий
// @Description Возвращает страницу журнала действий администраторов, новые записи первыми.
// @Tags Activity
// @Produce  json
// @Param page query int false "Номер страницы"
// @Param limit query int false "Размер страницы"
// @Success 200 {object} map[string]any "Страница журнала"
// @Failure 401 {object} response.ErrorResponse "Администратор не авторизован"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /activity [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.activity.list"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	filter := listparams.Parse(r)
	logs, pagination, err := h.service.ListActivity(r.Context(), filter)
	if err != nil {
		log.Error("failed to list activity logs", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error(response.CodeInternal, "could not list activity logs"))
		return
	}

	render.JSON(w, r, response.OKWithData(map[string]any{
		"logs":       logs,
		"pagination": pagination,
	}))
}
