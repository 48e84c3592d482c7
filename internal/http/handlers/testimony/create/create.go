// Package create реализует HTTP-обработчик публичной формы свидетельства.
//
// Новое свидетельство попадает на модерацию и наружу не отдаётся,
// пока модератор его не одобрит.
package create

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/makingkings/mentorship-api/internal/http/response"
	"github.com/makingkings/mentorship-api/internal/lib/sl"
	"github.com/makingkings/mentorship-api/internal/models"
)

// Handler обрабатывает HTTP-запросы подачи свидетельства.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// Service описывает интерфейс бизнес-логики свидетельств.
type Service interface {
	Create(ctx context.Context, req models.DummyTestimony) (*models.Testimony, error)
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
// @Summary Отправить свидетельство
// @Description Сохраняет свидетельство участника. Запись уходит на модерацию.
// @Tags Public
// @Accept  json
// @Produce  json
// @Param request body models.DummyTestimony true "Свидетельство"
// @Success 201 {object} map[string]any "Свидетельство принято"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON или ошибка валидации"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /testimony [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.testimony.create"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req models.DummyTestimony
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

	testimony, err := h.service.Create(r.Context(), req)
	if err != nil {
		log.Error("failed to create testimony", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error(response.CodeInternal, "could not create testimony"))
		return
	}

	log.Info("testimony created", slog.String("id", testimony.ID))
	w.WriteHeader(http.StatusCreated)
	render.JSON(w, r, response.OKWithData(testimony))
}
