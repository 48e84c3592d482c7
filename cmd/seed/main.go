// Команда seed наполняет базу стартовыми данными: двумя действующими
// программами и учётной записью супер-администратора. Повторный запуск
// безопасен: занятые имена программ пропускаются, администратор
// обновляется по email.
package main

import (
	"context"
	"errors"
	"log/slog"
	"os"

	"github.com/makingkings/mentorship-api/internal/config"
	"github.com/makingkings/mentorship-api/internal/lib/password"
	"github.com/makingkings/mentorship-api/internal/lib/sl"
	"github.com/makingkings/mentorship-api/internal/migrations"
	"github.com/makingkings/mentorship-api/internal/models"
	"github.com/makingkings/mentorship-api/internal/storage/repository"
)

func main() {
	cfg := config.MustLoad()
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	adminEmail := os.Getenv("SEED_ADMIN_EMAIL")
	adminPassword := os.Getenv("SEED_ADMIN_PASSWORD")
	if adminEmail == "" || adminPassword == "" {
		logger.Error("SEED_ADMIN_EMAIL and SEED_ADMIN_PASSWORD must be set")
		os.Exit(1)
	}

	db, err := repository.New(cfg.StorageConnectionString)
	if err != nil {
		logger.Error("failed to connect to storage", sl.Err(err))
		os.Exit(1)
	}
	defer func() {
		_ = db.DB.Close()
	}()
	if err := migrations.Run(db.DB, cfg.MigrationsPath); err != nil {
		logger.Error("failed to run migrations", sl.Err(err))
		os.Exit(1)
	}

	ctx := context.Background()

	programs := []models.Program{
		{
			Name: "Mentorship for Singles",
			Features: "Weekly group mentorship sessions; Access to recorded teachings; " +
				"Private community of singles; Monthly Q&A with mentors",
			Duration: "6 months",
			Price:    78,
		},
		{
			Name: "Premium Mentorship Program",
			Features: "Everything in Mentorship for Singles; One-on-one mentorship sessions; " +
				"Personalized growth plan; Direct access to lead mentors",
			Duration: "12 months",
			Price:    161.20,
		},
	}
	for _, p := range programs {
		if _, err := db.CreateProgram(ctx, p); err != nil {
			if errors.Is(err, repository.ErrNameTaken) {
				logger.Info("program already exists, skipping", slog.String("name", p.Name))
				continue
			}
			logger.Error("failed to seed program", slog.String("name", p.Name), sl.Err(err))
			os.Exit(1)
		}
		logger.Info("program seeded", slog.String("name", p.Name))
	}

	hash, err := password.GetHash(adminPassword)
	if err != nil {
		logger.Error("failed to hash admin password", sl.Err(err))
		os.Exit(1)
	}
	id, err := db.CreateAdmin(ctx, models.Admin{
		Email:        adminEmail,
		Name:         "Super Admin",
		PasswordHash: hash,
		Role:         models.RoleSuperAdmin,
		IsActive:     true,
	})
	if err != nil {
		logger.Error("failed to seed super admin", sl.Err(err))
		os.Exit(1)
	}

	logger.Info("super admin seeded", slog.String("id", id), slog.String("email", adminEmail))
}
