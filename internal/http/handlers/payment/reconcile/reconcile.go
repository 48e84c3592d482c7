// Package reconcile реализует HTTP-обработчик сверки платежа.
//
// Платёжный виджет уже списал деньги на клиенте; обработчик записывает
// подписку и платёж, повышает уровень участника до PREMIUM и шлёт
// поздравительное письмо. Повторная сверка той же пары
// пользователь-программа отклоняется со статусом 409.
package reconcile

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
	"github.com/makingkings/mentorship-api/internal/services/payment"
	"github.com/makingkings/mentorship-api/internal/storage/repository"
)

// Handler обрабатывает HTTP-запросы сверки платежа.
type Handler struct {
	log      *slog.Logger        // Логгер для записи операций и ошибок
	service  Service             // Сервис бизнес-логики сверки
	validate *validator.Validate // Валидатор структуры входящих данных
}

// Service описывает интерфейс бизнес-логики сверки платежа.
type Service interface {
	Reconcile(ctx context.Context, req models.DummyReconcile) (*models.ReconcileResult, error)
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
// @Summary Сверка платежа
// @Description Записывает подписку и платёж, повышает участника до PREMIUM и шлёт поздравительное письмо.
// @Tags Public
// @Accept  json
// @Produce  json
// @Param request body models.DummyReconcile true "Данные платежа"
// @Success 200 {object} map[string]any "Платёж записан"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON, ошибка валидации или неподтверждённый платёж"
// @Failure 404 {object} response.ErrorResponse "Пользователь или программа не найдены"
// @Failure 409 {object} response.ErrorResponse "Подписка уже оплачена"
// @Failure 502 {object} response.ErrorResponse "Письмо не отправлено"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /send-email [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.payment.reconcile"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req models.DummyReconcile
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

	result, err := h.service.Reconcile(r.Context(), req)
	switch {
	case errors.Is(err, repository.ErrNotFound):
		log.Warn("user or program not found")
		w.WriteHeader(http.StatusNotFound)
		render.JSON(w, r, response.Error(response.CodeNotFound, "user or program not found"))
		return
	case errors.Is(err, repository.ErrAlreadySubscribed):
		log.Warn("subscription already paid", slog.String("email", req.Email))
		w.WriteHeader(http.StatusConflict)
		render.JSON(w, r, response.Error(response.CodeAlreadyPaid, "subscription for this program is already paid"))
		return
	case errors.Is(err, payment.ErrPaymentNotVerified):
		log.Warn("payment reference not verified", slog.String("reference", req.Reference))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error(response.CodeBadRequest, "payment could not be verified"))
		return
	case errors.Is(err, mailer.ErrSendFailed):
		log.Error("congratulation email failed, payment rolled back", sl.Err(err))
		w.WriteHeader(http.StatusBadGateway)
		render.JSON(w, r, response.Error(response.CodeEmailSendFailure, "could not send congratulation email, please retry"))
		return
	case err != nil:
		log.Error("failed to reconcile payment", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error(response.CodeInternal, "could not reconcile payment"))
		return
	}

	log.Info("payment reconciled", slog.String("user_id", result.User.ID))
	render.JSON(w, r, response.OKWithData(result))
}
