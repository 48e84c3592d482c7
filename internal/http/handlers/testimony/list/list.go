// Package list реализует HTTP-обработчик админского листинга свидетельств.
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

// Handler обрабатывает HTTP-запросы листинга свидетельств.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики свидетельств.
type Service interface {
	List(ctx context.Context, filter models.ListFilter) ([]*models.Testimony, *models.Pagination, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Список свидетельств
// @Description Возвращает страницу свидетельств, включая неодобренные. Поддерживает search, page, limit.
// @Tags Testimonies
// @Produce  json
// @Param page query int false "Номер страницы"
// @Param limit query int false "Размер страницы"
// @Param search query string false "Поиск по email, имени и тексту"
// @Success 200 {object} map[string]any "Страница свидетельств"
// @Failure 401 {object} response.ErrorResponse "Администратор не авторизован"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /testimony [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.testimony.list"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	filter := listparams.Parse(r)
	testimonies, pagination, err := h.service.List(r.Context(), filter)
	if err != nil {
		log.Error("failed to list testimonies", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error(response.CodeInternal, "could not list testimonies"))
		return
	}

	log.Info("testimonies listed", slog.Int("count", len(testimonies)))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"testimonies": testimonies,
		"pagination":  pagination,
	}))
}
