// Package mentorship собирает основное приложение: хранилище, миграции,
// кеш, очередь уведомлений, сервисы и HTTP-сервер с маршрутами.
package mentorship

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"
	"github.com/streadway/amqp"

	"github.com/makingkings/mentorship-api/internal/cache"
	"github.com/makingkings/mentorship-api/internal/config"
	"github.com/makingkings/mentorship-api/internal/lib/jwt"
	"github.com/makingkings/mentorship-api/internal/lib/mailer"
	"github.com/makingkings/mentorship-api/internal/migrations"
	"github.com/makingkings/mentorship-api/internal/paystack"
	"github.com/makingkings/mentorship-api/internal/rabbitmq"
	authservice "github.com/makingkings/mentorship-api/internal/services/auth"
	directoryservice "github.com/makingkings/mentorship-api/internal/services/directory"
	paymentservice "github.com/makingkings/mentorship-api/internal/services/payment"
	programservice "github.com/makingkings/mentorship-api/internal/services/program"
	registrationservice "github.com/makingkings/mentorship-api/internal/services/registration"
	testimonyservice "github.com/makingkings/mentorship-api/internal/services/testimony"
	"github.com/makingkings/mentorship-api/internal/storage/repository"
)

// App инкапсулирует HTTP-сервер и внешние соединения приложения.
type App struct {
	server *http.Server
	logger *slog.Logger
	db     *repository.Storage
	conn   *amqp.Connection
	ch     *amqp.Channel
}

// New инициализирует все зависимости приложения и собирает маршруты.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	db, err := repository.New(cfg.StorageConnectionString)
	if err != nil {
		return nil, err
	}
	if err = migrations.Run(db.DB, cfg.MigrationsPath); err != nil {
		return nil, err
	}

	cacheRedis, err := cache.InitServer(ctx, cfg.RedisConnection)
	if err != nil {
		return nil, err
	}

	conn, err := rabbitmq.Connect(cfg.RabbitMQURL, cfg.RabbitMQMaxRetries, cfg.RabbitMQRetryDelay)
	if err != nil {
		return nil, err
	}
	ch, err := rabbitmq.SetupChannel(conn, rabbitmq.GetNotificationQueues())
	if err != nil {
		_ = conn.Close()
		return nil, err
	}
	notifier := rabbitmq.NewPublisher(ch)

	mailClient := mailer.NewClient(cfg.MailerAPIURL, cfg.MailerAPIKey, cfg.MailerFrom)
	paystackClient := paystack.NewClient(cfg.PaystackAPIURL, cfg.PaystackSecretKey)
	jwtMaker := jwt.NewJWTMaker(cfg.JWTSecretKey, cfg.TokenTTL)

	authService := authservice.NewAuthService(db, jwtMaker)
	registrationService := registrationservice.NewRegistrationService(db, mailClient, logger)
	paymentService := paymentservice.NewPaymentService(db, mailClient, paystackClient, cfg.CommunityURL, logger)
	programService := programservice.NewProgramService(db, cacheRedis, logger)
	testimonyService := testimonyservice.NewTestimonyService(db, notifier, logger)
	directoryService := directoryservice.NewDirectoryService(db, cacheRedis, logger)

	router := chi.NewRouter()
	RegisterRoutes(router, logger, cfg, &Services{
		Auth:         authService,
		Registration: registrationService,
		Payment:      paymentService,
		Program:      programService,
		Testimony:    testimonyService,
		Directory:    directoryService,
	})

	srv := &http.Server{
		Addr:         cfg.AddressHTTP,
		Handler:      router,
		ReadTimeout:  cfg.TimeoutHTTP,
		WriteTimeout: cfg.TimeoutHTTP,
		IdleTimeout:  cfg.IdleTimeout,
	}

	return &App{
		server: srv,
		logger: logger,
		db:     db,
		conn:   conn,
		ch:     ch,
	}, nil
}

// Run запускает HTTP-сервер и останавливает его при отмене контекста.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("HTTP server starting on", slog.String("address", a.server.Addr))
		err := a.server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			errCh <- nil
		} else {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		timeoutCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		a.logger.Info("shutting down HTTP server gracefully")
		err := a.server.Shutdown(timeoutCtx)
		_ = a.ch.Close()
		_ = a.conn.Close()
		_ = a.db.DB.Close()
		return err
	}
}
