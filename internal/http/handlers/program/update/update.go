// Package update реализует HTTP-обработчик частичного обновления программы.
package update

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

// Handler обрабатывает HTTP-запросы обновления программы.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// Service описывает интерфейс бизнес-логики каталога.
type Service interface {
	Update(ctx context.Context, adminID string, req models.DummyUpdateProgram) (*models.Program, error)
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
// @Summary Обновить программу
// @Description Обновляет заполненные поля программы. Пустые поля не трогаются.
// @Tags Programs
// @Accept  json
// @Produce  json
// @Param request body models.DummyUpdateProgram true "Изменяемые поля"
// @Success 200 {object} map[string]any "Программа обновлена"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON или ошибка валидации"
// @Failure 401 {object} response.ErrorResponse "Администратор не авторизован"
// @Failure 404 {object} response.ErrorResponse "Программа не найдена"
// @Failure 409 {object} response.ErrorResponse "Имя программы занято"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /program [put]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.program.update"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req models.DummyUpdateProgram
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

	program, err := h.service.Update(r.Context(), adminID, req)
	switch {
	case errors.Is(err, repository.ErrNotFound):
		log.Warn("program not found", slog.String("id", req.ID))
		w.WriteHeader(http.StatusNotFound)
		render.JSON(w, r, response.Error(response.CodeNotFound, "program not found"))
		return
	case errors.Is(err, repository.ErrNameTaken):
		log.Warn("program name taken", slog.String("name", req.Name))
		w.WriteHeader(http.StatusConflict)
		render.JSON(w, r, response.Error(response.CodeNameTaken, "program with this name already exists"))
		return
	case err != nil:
		log.Error("failed to update program", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error(response.CodeInternal, "could not update program"))
		return
	}

	log.Info("program updated", slog.String("id", program.ID))
	render.JSON(w, r, response.OKWithData(program))
}
