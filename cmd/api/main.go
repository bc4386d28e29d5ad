package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jhoicas/vacaciones-api/internal/application/auth"
	"github.com/jhoicas/vacaciones-api/internal/application/directory"
	"github.com/jhoicas/vacaciones-api/internal/application/notification"
	"github.com/jhoicas/vacaciones-api/internal/application/report"
	"github.com/jhoicas/vacaciones-api/internal/application/session"
	"github.com/jhoicas/vacaciones-api/internal/application/users"
	"github.com/jhoicas/vacaciones-api/internal/application/vacation"
	infrapdf "github.com/jhoicas/vacaciones-api/internal/infrastructure/pdf"
	"github.com/jhoicas/vacaciones-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/vacaciones-api/internal/interfaces/http"
	"github.com/jhoicas/vacaciones-api/pkg/config"
	"github.com/jhoicas/vacaciones-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	profileRepo := postgres.NewProfileRepository(pool)
	vacationRepo := postgres.NewVacationRepository(pool)
	notificationRepo := postgres.NewNotificationRepository(pool)
	credRepo := postgres.NewCredentialRepository(pool)
	sessionRepo := postgres.NewSessionRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	authUC := auth.NewAuthUseCase(credRepo, sessionRepo, profileRepo, auth.JWTConfig{
		Secret:        cfg.JWT.Secret,
		AccessMinutes: cfg.JWT.AccessMinutes,
		RefreshDays:   cfg.JWT.RefreshDays,
		Issuer:        cfg.JWT.Issuer,
	})
	resolver := session.NewResolver(authUC, log)
	directoryUC := directory.NewDirectoryUseCase(profileRepo, log)
	vacationUC := vacation.NewVacationUseCase(vacationRepo, notificationRepo, log)
	notificationUC := notification.NewNotificationUseCase(notificationRepo)
	usersUC := users.NewUsersUseCase(txRunner, profileRepo)
	reportUC := report.NewReportUseCase(vacationRepo, profileRepo, infrapdf.NewMarotoReportGenerator())

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Vacaciones API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:         authUC,
		Resolver:       resolver,
		DirectoryUC:    directoryUC,
		VacationUC:     vacationUC,
		NotificationUC: notificationUC,
		UsersUC:        usersUC,
		ReportUC:       reportUC,
		SessionCfg:     cfg.Session,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
