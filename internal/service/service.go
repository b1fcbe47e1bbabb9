package service

import (
	"database/sql"

	"github.com/Spok95/school-attendance/internal/upload"
	"go.uber.org/zap"
)

// Service — операции приложения поверх БД и хостинга изображений.
// Каждая операция — независимая единица работы в рамках запроса; межзапросной
// координации нет, полагаемся на подокументную атомарность хранилища
// (конкурентные правки — last-write-wins).
type Service struct {
	DB       *sql.DB
	Log      *zap.Logger
	Uploader upload.Uploader

	// Смещение школьного времени от UTC (часы) и предохранитель генератора.
	TZOffsetHours int
	MaxRangeDays  int

	// Учётные данные единственного администратора.
	AdminLogin    string
	AdminPassword string
}
