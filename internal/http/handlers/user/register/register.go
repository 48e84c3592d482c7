// Package register реализует HTTP-обработчик публичной формы регистрации.
//
// Обработчик валидирует анкету, создаёт пользователя и шлёт
// приветственное письмо через сервис регистрации. Повторный email
// отклоняется со статусом 400 и стабильным кодом ошибки.
package register

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/makingkings/mentorship-api/internal/http/response"
	"github.com/makingkings/mentorship-api/internal/lib/mailer"
	"github.com/makingkings/mentorship-api/internal/lib/sl"
	"github.com/makingkings/mentorship-api/internal/models"
	"github.com/makingkings/mentorship-api/internal/storage/repository"
)

// Handler обрабатывает HTTP-запросы регистрации участников.
type Handler struct {
	log      *slog.Logger        // Логгер для записи операций и ошибок
	service  Service             // Сервис бизнес-логики регистрации
	validate *validator.Validate // Валидатор структуры входящих данных
}

// Service описывает интерфейс бизнес-логики регистрации.
type Service interface {
	Register(ctx context.Context, req models.DummyRegister) (*models.User, error)
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
// @Summary Регистрация участника
// @Description Создает пользователя по анкете и отправляет приветственное письмо. Дубликат email отклоняется.
// @Tags Public
// @Accept  json
// @Produce  json
// @Param request body models.DummyRegister true "Анкета участника"
// @Success 200 {object} map[string]any "Участник зарегистрирован"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON, ошибка валидации или занятый email"
// @Failure 404 {object} response.ErrorResponse "Программа не найдена"
// @Failure 502 {object} response.ErrorResponse "Письмо не отправлено"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /register [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.user.register"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req models.DummyRegister
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request body", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error(response.CodeBadRequest, "invalid request body"))
		return
	}
	log.Info("request body decoded", slog.String("email", req.Email))

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}
	log.Info("all fields are validated")

	user, err := h.service.Register(r.Context(), req)
	switch {
	case errors.Is(err, repository.ErrEmailTaken):
		log.Warn("email already registered", slog.String("email", req.Email))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error(response.CodeEmailRegistered, "user with this email already exists"))
		return
	case errors.Is(err, repository.ErrNotFound):
		log.Warn("program not found", slog.String("program_id", req.ProgramID))
		w.WriteHeader(http.StatusNotFound)
		render.JSON(w, r, response.Error(response.CodeNotFound, "program not found"))
		return
	case errors.Is(err, mailer.ErrSendFailed):
		log.Error("welcome email failed, registration rolled back", sl.Err(err))
		w.WriteHeader(http.StatusBadGateway)
		render.JSON(w, r, response.Error(response.CodeEmailSendFailure, "could not send welcome email, please retry"))
		return
	case err != nil:
		log.Error("failed to register user", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error(response.CodeInternal, "could not register user"))
		return
	}

	log.Info("user registered", slog.String("id", user.ID))
	render.JSON(w, r, response.OKWithData(user))
}
