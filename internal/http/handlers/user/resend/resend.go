// Package resend реализует HTTP-обработчик повторной отправки
// приветственного письма существующему участнику.
package resend

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

// Request — структура входных данных повторной отправки.
type Request struct {
	Email string `json:"email" validate:"required,email"`
}

// Handler обрабатывает HTTP-запросы повторной отправки письма.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// Service описывает интерфейс бизнес-логики повторной отправки.
type Service interface {
	ResendWelcome(ctx context.Context, email string) (*models.User, error)
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
// @Summary Повторная отправка приветственного письма
// @Description Шлёт приветственное письмо зарегистрированному участнику ещё раз.
// @Tags Public
// @Accept  json
// @Produce  json
// @Param request body Request true "Email участника"
// @Success 200 {object} map[string]any "Письмо отправлено"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON или ошибка валидации"
// @Failure 404 {object} response.ErrorResponse "Пользователь не найден"
// @Failure 502 {object} response.ErrorResponse "Письмо не отправлено"
// @Router /resend-email [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.user.resend"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req Request
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

	user, err := h.service.ResendWelcome(r.Context(), req.Email)
	switch {
	case errors.Is(err, repository.ErrNotFound):
		log.Warn("user not found", slog.String("email", req.Email))
		w.WriteHeader(http.StatusNotFound)
		render.JSON(w, r, response.Error(response.CodeNotFound, "user not found"))
		return
	case errors.Is(err, mailer.ErrSendFailed):
		log.Error("failed to resend welcome email", sl.Err(err))
		w.WriteHeader(http.StatusBadGateway)
		render.JSON(w, r, response.Error(response.CodeEmailSendFailure, "could not send welcome email"))
		return
	case err != nil:
		log.Error("failed to resend welcome email", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error(response.CodeInternal, "could not resend welcome email"))
		return
	}

	log.Info("welcome email resent", slog.String("id", user.ID))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"email": user.Email,
	}))
}
