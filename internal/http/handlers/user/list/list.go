// Package list реализует HTTP-обработчик админского листинга
// пользователей с фильтром по роли, поиском и сортировкой.
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

// Handler обрабатывает HTTP-запросы листинга пользователей.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики справочников.
type Service interface {
	ListUsers(ctx context.Context, filter models.ListFilter) ([]*models.User, *models.Pagination, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Список пользователей
// @Description Возвращает страницу пользователей. Поддерживает role, search, sortBy, sortOrder, page, limit.
// @Tags Users
// @Produce  json
// @Param page query int false "Номер страницы"
// @Param limit query int false "Размер страницы"
// @Param role query string false "USER | PREMIUM | ALL"
// @Param search query string false "Поиск по email и имени"
// @Success 200 {object} map[string]any "Страница пользователей"
// @Failure 401 {object} response.ErrorResponse "Администратор не авторизован"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /users [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.user.list"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	filter := listparams.Parse(r)
	users, pagination, err := h.service.ListUsers(r.Context(), filter)
	if err != nil {
		log.Error("failed to list users", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error(response.CodeInternal, "could not list users"))
		return
	}

	log.Info("users listed",
		slog.Int("count", len(users)),
		slog.Int("total", pagination.TotalCount))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"users":      users,
		"pagination": pagination,
	}))
}
