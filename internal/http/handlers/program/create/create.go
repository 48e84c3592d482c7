// Package create реализует HTTP-обработчик создания программы.
//
// Доступен только администратору: действие пишется в журнал от имени
// администратора из контекста запроса.
package create

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

// Handler обрабатывает HTTP-запросы создания программы.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// Service описывает интерфейс бизнес-логики каталога.
type Service interface {
	Create(ctx context.Context, adminID string, req models.DummyCreateProgram) (*models.Program, error)
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
// @Summary Создать программу
// @Description Создает новую программу каталога. Имя уникально среди активных программ.
// @Tags Programs
// @Accept  json
// @Produce  json
// @Param request body models.DummyCreateProgram true "Данные программы"
// @Success 201 {object} map[string]any "Программа создана"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON или ошибка валидации"
// @Failure 401 {object} response.ErrorResponse "Администратор не авторизован"
// @Failure 409 {object} response.ErrorResponse "Имя программы занято"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /program [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.program.create"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req models.DummyCreateProgram
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request body", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error(response.CodeBadRequest, "invalid request body"))
		return
	}
	log.Info("request body decoded", slog.Any("request", req))

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

	program, err := h.service.Create(r.Context(), adminID, req)
	if errors.Is(err, repository.ErrNameTaken) {
		log.Warn("program name taken", slog.String("name", req.Name))
		w.WriteHeader(http.StatusConflict)
		render.JSON(w, r, response.Error(response.CodeNameTaken, "program with this name already exists"))
		return
	}
	if err != nil {
		log.Error("failed to create program", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error(response.CodeInternal, "could not create program"))
		return
	}

	log.Info("program created", slog.String("id", program.ID))
	w.WriteHeader(http.StatusCreated)
	render.JSON(w, r, response.OKWithData(program))
}
