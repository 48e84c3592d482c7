// Package login реализует HTTP-обработчик входа администратора.
//
// Обработчик принимает email и пароль, проверяет их через сервис
// аутентификации и при успехе кладёт JWT в httpOnly cookie сессии
// панели. Токен дублируется в теле ответа для программных клиентов.
package login

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/makingkings/mentorship-api/internal/config"
	"github.com/makingkings/mentorship-api/internal/http/response"
	"github.com/makingkings/mentorship-api/internal/lib/sl"
	"github.com/makingkings/mentorship-api/internal/models"
	"github.com/makingkings/mentorship-api/internal/services/auth"
)

// Handler обрабатывает HTTP-запросы входа администратора.
type Handler struct {
	log      *slog.Logger        // Логгер для записи операций и ошибок
	service  Service             // Сервис бизнес-логики аутентификации
	cfg      config.JWTToken     // Параметры cookie сессии
	secure   bool                // Secure-флаг cookie, выключен только локально
	validate *validator.Validate // Валидатор структуры входящих данных
}

// Service описывает интерфейс бизнес-логики аутентификации.
type Service interface {
	Login(ctx context.Context, email, password string) (*models.Admin, string, error)
}

// New создает новый Handler с переданными логгером, сервисом и
// параметрами cookie.
func New(log *slog.Logger, service Service, cfg config.JWTToken, secure bool) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		cfg:      cfg,
		secure:   secure,
		validate: validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Вход администратора
// @Description Аутентифицирует администратора по email и паролю. Кладёт JWT в httpOnly cookie и возвращает его в теле.
// @Tags Auth
// @Accept  json
// @Produce  json
// @Param request body models.DummyLogin true "Учетные данные администратора"
// @Success 200 {object} map[string]any "Успешный вход"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON или ошибка валидации"
// @Failure 401 {object} response.ErrorResponse "Неверные учетные данные"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /login [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.login"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req models.DummyLogin
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

	admin, token, err := h.service.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			log.Warn("invalid credentials", slog.String("email", req.Email))
			w.WriteHeader(http.StatusUnauthorized)
			render.JSON(w, r, response.Error(response.CodeBadCredentials, "invalid email or password"))
			return
		}
		log.Error("failed to login", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error(response.CodeInternal, "could not login"))
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     h.cfg.CookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(h.cfg.TokenTTL.Seconds()),
		HttpOnly: true,
		Secure:   h.secure,
		SameSite: http.SameSiteLaxMode,
	})

	log.Info("admin logged in", slog.String("id", admin.ID))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"token": token,
		"admin": admin,
	}))
}
