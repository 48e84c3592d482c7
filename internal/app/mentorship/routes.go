// Package mentorship предоставляет маршруты основного приложения.
package mentorship

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/makingkings/mentorship-api/internal/config"
	activitylist "github.com/makingkings/mentorship-api/internal/http/handlers/activity/list"
	"github.com/makingkings/mentorship-api/internal/http/handlers/auth/login"
	"github.com/makingkings/mentorship-api/internal/http/handlers/health"
	"github.com/makingkings/mentorship-api/internal/http/handlers/payment/reconcile"
	programcreate "github.com/makingkings/mentorship-api/internal/http/handlers/program/create"
	programlist "github.com/makingkings/mentorship-api/internal/http/handlers/program/list"
	programread "github.com/makingkings/mentorship-api/internal/http/handlers/program/read"
	programremove "github.com/makingkings/mentorship-api/internal/http/handlers/program/remove"
	programupdate "github.com/makingkings/mentorship-api/internal/http/handlers/program/update"
	"github.com/makingkings/mentorship-api/internal/http/handlers/stats"
	testimonyapprove "github.com/makingkings/mentorship-api/internal/http/handlers/testimony/approve"
	testimonycreate "github.com/makingkings/mentorship-api/internal/http/handlers/testimony/create"
	testimonylist "github.com/makingkings/mentorship-api/internal/http/handlers/testimony/list"
	userlist "github.com/makingkings/mentorship-api/internal/http/handlers/user/list"
	userread "github.com/makingkings/mentorship-api/internal/http/handlers/user/read"
	"github.com/makingkings/mentorship-api/internal/http/handlers/user/register"
	"github.com/makingkings/mentorship-api/internal/http/handlers/user/resend"
	"github.com/makingkings/mentorship-api/internal/http/middlewarectx"
	authservice "github.com/makingkings/mentorship-api/internal/services/auth"
	directoryservice "github.com/makingkings/mentorship-api/internal/services/directory"
	paymentservice "github.com/makingkings/mentorship-api/internal/services/payment"
	programservice "github.com/makingkings/mentorship-api/internal/services/program"
	registrationservice "github.com/makingkings/mentorship-api/internal/services/registration"
	testimonyservice "github.com/makingkings/mentorship-api/internal/services/testimony"
)

// Services собирает сервисы, которыми пользуются маршруты.
type Services struct {
	Auth         *authservice.AuthService
	Registration *registrationservice.RegistrationService
	Payment      *paymentservice.PaymentService
	Program      *programservice.ProgramService
	Testimony    *testimonyservice.TestimonyService
	Directory    *directoryservice.DirectoryService
}

// RegisterRoutes регистрирует все маршруты приложения.
func RegisterRoutes(r chi.Router, logger *slog.Logger, cfg *config.Config, s *Services) {
	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
		middleware.URLFormat,
		middlewarectx.CORSMiddleware(cfg.CORS),
	)

	secureCookie := cfg.Env != "local"

	r.Route("/api", func(r chi.Router) {
		// Публичные формы маркетингового сайта
		r.Group(func(r chi.Router) {
			r.Use(middlewarectx.RateLimitMiddleware(5, 10, logger))
			r.Post("/register", register.New(logger, s.Registration).ServeHTTP)
			r.Post("/send-email", reconcile.New(logger, s.Payment).ServeHTTP)
			r.Post("/resend-email", resend.New(logger, s.Registration).ServeHTTP)
			r.Post("/testimony", testimonycreate.New(logger, s.Testimony).ServeHTTP)
			r.Post("/login", login.New(logger, s.Auth, cfg.JWTToken, secureCookie).ServeHTTP)
		})

		// Публичный каталог
		r.Get("/program", programlist.New(logger, s.Program).ServeHTTP)
		r.Get("/program/{id}", programread.New(logger, s.Program).ServeHTTP)
		r.Get("/health", health.New(logger).ServeHTTP)

		// Админская зона с JWT аутентификацией
		r.Group(func(r chi.Router) {
			r.Use(middlewarectx.JWTMiddleware(s.Auth, cfg.CookieName, logger))
			r.Post("/program", programcreate.New(logger, s.Program).ServeHTTP)
			r.Put("/program", programupdate.New(logger, s.Program).ServeHTTP)
			r.Delete("/program/{id}", programremove.New(logger, s.Program).ServeHTTP)
			r.Get("/users", userlist.New(logger, s.Directory).ServeHTTP)
			r.Get("/users/{id}", userread.New(logger, s.Directory).ServeHTTP)
			r.Get("/testimony", testimonylist.New(logger, s.Testimony).ServeHTTP)
			r.Put("/testimony", testimonyapprove.New(logger, s.Testimony).ServeHTTP)
			r.Get("/activity", activitylist.New(logger, s.Directory).ServeHTTP)
			r.Get("/dashboard-stats", stats.New(logger, s.Directory).ServeHTTP)
		})
	})

	// Страничный гейт панели: редиректы на вход и обратно. Сами
	// страницы рендерит фронтенд, бэкенд отвечает заглушкой.
	r.Route("/admin", func(r chi.Router) {
		r.Use(middlewarectx.AdminGateMiddleware(s.Auth, cfg.CookieName))
		r.Get("/*", func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusOK)
		})
	})

	r.Handle("/metrics", promhttp.Handler())
	// Swagger docs endpoint
	r.Get("/docs/*", httpSwagger.WrapHandler)
}
