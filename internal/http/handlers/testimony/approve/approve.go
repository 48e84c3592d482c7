// Package approve реализует HTTP-обработчик модерации свидетельства.
//
// Решение модератора перезаписывает флаг напрямую: одно и то же
// свидетельство можно одобрить, отклонить и одобрить снова.
package approve

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/makingkings/mentorship-api/internal/http/middlewarectx"
	"github.com/makingkings/mentorship-api/internal/http/response"
	"github.com/makingkings/mentorship-api/internal/lib/sl"
	"github.com/makingkings/mentorship-api/internal/models"
	"github.com/makingkings/mentorship-api/internal/storage/repository"
)

// Handler обрабатывает HTTP-запросы модерации свидетельства.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// Service описывает интерфейс бизнес-логики свидетельств.
type Service interface {
	Approve(ctx context.Context, adminID string, req models.DummyApproveTestimony) (*models.Testimony, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Модерация свидетельства
// @Description Перезаписывает флаг одобрения свидетельства и пишет действие в журнал.
// @Tags Testimonies
// @Accept  json
// @Produce  json
// @Param request body models.DummyApproveTestimony true "Решение модератора"
// @Success 200 {object} map[string]any "Свидетельство обновлено"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON или ошибка валидации"
// @Failure 401 {object} response.ErrorResponse "Администратор не авторизован"
// @Failure 404 {object} response.ErrorResponse "Свидетельство не найдено"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /testimony [put]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.testimony.approve"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req models.DummyApproveTestimony
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request body", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error(response.CodeBadRequest, "invalid request body"))
		return
	}

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}

	adminID, ok := r.Context().Value(middlewarectx.AdminID).(string)
	if !ok || adminID == "" {
		log.Error("admin id not found in context")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error(response.CodeUnauthorized, "unauthorized"))
		return
	}

	testimony, err := h.service.Approve(r.Context(), adminID, req)
	if errors.Is(err, repository.ErrNotFound) {
		log.Warn("testimony not found", slog.String("id", req.ID))
		w.WriteHeader(http.StatusNotFound)
		render.JSON(w, r, response.Error(response.CodeNotFound, "testimony not found"))
		return
	}
	if err != nil {
		log.Error("failed to approve testimony", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error(response.CodeInternal, "could not update testimony"))
		return
	}

	log.Info("testimony moderated",
		slog.String("id", testimony.ID),
		slog.Bool("approved", testimony.Approved != nil && *testimony.Approved))
	render.JSON(w, r, response.OKWithData(testimony))
}
