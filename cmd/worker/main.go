// Command worker sends task reminder emails on a fixed interval.
package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/SAP-F-2025/examprep-service/internal/auth"
	"github.com/SAP-F-2025/examprep-service/internal/config"
	"github.com/SAP-F-2025/examprep-service/internal/events"
	"github.com/SAP-F-2025/examprep-service/internal/jobs"
	"github.com/SAP-F-2025/examprep-service/internal/mailer"
	"github.com/SAP-F-2025/examprep-service/internal/repositories/postgres"
	"github.com/SAP-F-2025/examprep-service/internal/services"
	"github.com/SAP-F-2025/examprep-service/internal/validator"
	"github.com/SAP-F-2025/examprep-service/pkg"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.LogLevel,
	})).With("process", "reminder-worker")

	db, err := pkg.InitDatabase(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}

	var redisClient *redis.Client
	if cfg.RedisURL != "" {
		if redisClient, err = pkg.NewRedisClient(cfg); err != nil {
			logger.Warn("Redis unavailable, continuing without cache", "error", err)
			redisClient = nil
		}
	}

	repoManager := postgres.NewRepositoryManager(postgres.RepositoryConfig{DB: db, RedisClient: redisClient})
	if err := repoManager.Initialize(); err != nil {
		log.Fatalf("Failed to initialize repositories: %v", err)
	}

	tokens, err := auth.NewTokenManager(cfg.Auth.SecretKey, cfg.Auth.Algorithm, cfg.Auth.TokenLifetime)
	if err != nil {
		log.Fatalf("Failed to initialize token manager: %v", err)
	}

	publisher, err := events.NewPublisher(cfg.KafkaBrokers, logger)
	if err != nil {
		log.Fatalf("Failed to initialize event publisher: %v", err)
	}

	serviceManager := services.NewServiceManager(repoManager.GetRepository(), logger, validator.New(), services.ServiceManagerConfig{
		Tokens:         tokens,
		Publisher:      publisher,
		Mailer:         mailer.New(cfg.Email, logger),
		ReminderWindow: cfg.Reminder.Window,
	})
	if err := serviceManager.Initialize(context.Background()); err != nil {
		log.Fatalf("Failed to initialize services: %v", err)
	}
	reminders := serviceManager.Reminder()

	scheduler := jobs.NewScheduler(logger)
	err = scheduler.Every("task-reminders", cfg.Reminder.Interval, func(ctx context.Context) {
		report, err := reminders.RunPass(ctx, time.Now())
		if err != nil {
			logger.Error("Reminder pass failed", "error", err)
			return
		}
		if report.Eligible > 0 {
			logger.Info("Reminder pass finished", "eligible", report.Eligible, "sent", report.Sent,
				"skipped", report.Skipped, "failed", report.Failed)
		}
	})
	if err != nil {
		log.Fatalf("Failed to schedule reminders: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger.Info("Reminder worker started", "interval", cfg.Reminder.Interval.String(), "window", cfg.Reminder.Window.String())
	scheduler.Run(ctx)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := serviceManager.Shutdown(shutdownCtx); err != nil {
		logger.Error("Failed to shutdown services", "error", err)
	}
	if err := repoManager.Shutdown(shutdownCtx); err != nil {
		logger.Error("Failed to close repositories", "error", err)
	}
	logger.Info("Reminder worker stopped")
}
