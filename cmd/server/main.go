package main

import (
	"context"
	"errors"
	"log"
	"os/signal"
	"syscall"
	"time"

	"github.com/Spok95/school-attendance/internal/config"
	"github.com/Spok95/school-attendance/internal/db"
	"github.com/Spok95/school-attendance/internal/httpapi"
	"github.com/Spok95/school-attendance/internal/logging"
	"github.com/Spok95/school-attendance/internal/observability"
	"github.com/Spok95/school-attendance/internal/ops"
	"github.com/Spok95/school-attendance/internal/service"
	"github.com/Spok95/school-attendance/internal/upload"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

const release = "school-attendance@dev"

func main() {
	// Загрузка переменных окружения
	if err := godotenv.Load(); err != nil {
		log.Println("Не удалось загрузить .env файл, используем переменные окружения")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Конфигурация: %v", err)
	}

	logger, syncLog, err := logging.Init(cfg.LogLevel, cfg.Env)
	if err != nil {
		log.Fatalf("Логгер: %v", err)
	}
	defer syncLog()

	flushSentry, err := observability.InitSentry(cfg.SentryDSN, cfg.Env, release)
	if err != nil {
		logger.Warn("Sentry не инициализирован", zap.Error(err))
	}
	defer flushSentry()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	database, err := db.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.Fatal("Подключение к БД", zap.Error(err))
	}
	defer func() { _ = database.Close() }()

	if err := db.Migrate(database); err != nil {
		logger.Fatal("Миграция не удалась", zap.Error(err))
	}

	ops.Start(ctx, cfg.OpsAddr, database)

	svc := &service.Service{
		DB:            database,
		Log:           logger,
		Uploader:      upload.NewCloudinary(cfg.Cloudinary),
		TZOffsetHours: cfg.SchoolTZOffsetHours,
		MaxRangeDays:  cfg.MaxScheduleRangeDays,
		AdminLogin:    cfg.AdminLogin,
		AdminPassword: cfg.AdminPassword,
	}

	app := httpapi.New(svc, logger)

	errCh := make(chan error, 1)
	go func() {
		errCh <- app.Listen(cfg.HTTPAddr)
	}()
	logger.Info("сервер запущен",
		zap.String("addr", cfg.HTTPAddr),
		zap.String("ops_addr", cfg.OpsAddr),
		zap.Int("tz_offset_hours", cfg.SchoolTZOffsetHours))

	select {
	case <-ctx.Done():
		logger.Info("получен сигнал остановки")
	case err := <-errCh:
		if err != nil && !errors.Is(err, context.Canceled) {
			logger.Error("HTTP-сервер завершился с ошибкой", zap.Error(err))
		}
	}

	if err := app.ShutdownWithTimeout(5 * time.Second); err != nil {
		logger.Warn("остановка HTTP-сервера", zap.Error(err))
	}
	logger.Info("сервер остановлен")
}
