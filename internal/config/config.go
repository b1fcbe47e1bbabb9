package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/Spok95/school-attendance/internal/schedule"
)

type Config struct {
	DatabaseURL string
	HTTPAddr    string // API
	OpsAddr     string // /healthz и /metrics
	LogLevel    string
	Env         string // dev|prod
	SentryDSN   string

	// Админ один и задаётся окружением — в базе его нет.
	AdminLogin    string
	AdminPassword string

	// Смещение школьного времени от UTC в часах. Без DST.
	SchoolTZOffsetHours int
	// Предохранитель генератора уроков: максимум дней в диапазоне предмета.
	MaxScheduleRangeDays int

	Cloudinary CloudinaryConfig
}

type CloudinaryConfig struct {
	CloudName string
	APIKey    string
	APISecret string
	Folder    string
}

func Load() (*Config, error) {
	offset, err := getenvInt("SCHOOL_TZ_OFFSET_HOURS", schedule.DefaultOffsetHours)
	if err != nil {
		return nil, err
	}
	maxDays, err := getenvInt("MAX_SCHEDULE_RANGE_DAYS", 366)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		DatabaseURL:          mustEnv("DATABASE_URL"),
		HTTPAddr:             getenv("HTTP_ADDR", ":8080"),
		OpsAddr:              getenv("OPS_ADDR", ":9090"),
		LogLevel:             getenv("LOG_LEVEL", "info"),
		Env:                  getenv("ENV", "dev"),
		SentryDSN:            os.Getenv("SENTRY_DSN"),
		AdminLogin:           getenv("ADMIN_LOGIN", "admin"),
		AdminPassword:        mustEnv("ADMIN_PASSWORD"),
		SchoolTZOffsetHours:  offset,
		MaxScheduleRangeDays: maxDays,
		Cloudinary: CloudinaryConfig{
			CloudName: os.Getenv("CLOUDINARY_CLOUD_NAME"),
			APIKey:    os.Getenv("CLOUDINARY_API_KEY"),
			APISecret: os.Getenv("CLOUDINARY_API_SECRET"),
			Folder:    getenv("CLOUDINARY_FOLDER", "attendance-checker"),
		},
	}
	return cfg, nil
}

func mustEnv(k string) string {
	v := os.Getenv(k)
	if v == "" {
		panic("required env " + k + " is empty")
	}
	return v
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func getenvInt(k string, def int) (int, error) {
	v := os.Getenv(k)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", k, err)
	}
	return n, nil
}
