package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/Spok95/school-attendance/internal/ctxutil"
	"github.com/Spok95/school-attendance/internal/db"
	"github.com/Spok95/school-attendance/internal/metrics"
	"github.com/Spok95/school-attendance/internal/models"
	"go.uber.org/zap"
)

// PhotoFile — новая фотография из формы отчёта.
type PhotoFile struct {
	Filename string
	Open     func() (io.ReadCloser, error)
}

type RecordAttendanceInput struct {
	// Карта studentId → присутствовал. Итоговый список посещаемости — ровно
	// записи этой карты; пропущенные ученики не дописываются по умолчанию.
	AttendanceMap map[string]bool
	// URL прежних фотографий, которые клиент решил оставить.
	ExistingPhotos []string
	// Новые файлы; загружаются на хостинг до любой записи в БД.
	NewPhotos []PhotoFile
}

// RecordAttendance — терминальная запись отчёта по одному уроку: заменяет
// посещаемость целиком, добавляет фотографии и переводит урок в completed.
// Любой сбой загрузки фото прерывает операцию до записи в БД: частично
// записанных отчётов не бывает.
func (s *Service) RecordAttendance(ctx context.Context, now time.Time, lessonID string, in RecordAttendanceInput) error {
	if lessonID == "" || !db.ValidID(lessonID) {
		return validationf("некорректный идентификатор урока")
	}
	if in.AttendanceMap == nil {
		return validationf("карта посещаемости отсутствует")
	}

	dbCtx, cancel := ctxutil.WithDBTimeout(ctx)
	lesson, err := db.GetLessonByID(dbCtx, s.DB, lessonID)
	cancel()
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("%w: урок %s", ErrNotFound, lessonID)
		}
		return fmt.Errorf("чтение урока: %w", err)
	}

	// Сначала все загрузки, потом единственная запись в БД.
	photos := append([]string{}, in.ExistingPhotos...)
	for _, f := range in.NewPhotos {
		url, err := s.uploadPhoto(ctx, f)
		if err != nil {
			s.Log.Warn("загрузка фото провалилась, отчёт отменён",
				zap.String("lesson_id", lessonID), zap.String("file", f.Filename), zap.Error(err))
			return fmt.Errorf("%w: %s: %s", ErrUpload, f.Filename, err)
		}
		photos = append(photos, url)
	}

	attendance := make([]models.AttendanceEntry, 0, len(in.AttendanceMap))
	for studentID, present := range in.AttendanceMap {
		attendance = append(attendance, models.AttendanceEntry{StudentID: studentID, Present: present})
	}
	// Порядок записей не значим, но детерминированный список проще сверять.
	sort.Slice(attendance, func(i, j int) bool { return attendance[i].StudentID < attendance[j].StudentID })

	dbCtx, cancel = ctxutil.WithDBTimeout(ctx)
	defer cancel()
	if err := db.SaveAttendanceReport(dbCtx, s.DB, lesson.ID, attendance, photos, now); err != nil {
		return fmt.Errorf("сохранение отчёта: %w", err)
	}
	metrics.AttendanceReports.Inc()
	s.Log.Info("отчёт по уроку сохранён",
		zap.String("lesson_id", lesson.ID),
		zap.Int("attendance", len(attendance)),
		zap.Int("photos", len(photos)))
	return nil
}

func (s *Service) uploadPhoto(ctx context.Context, f PhotoFile) (string, error) {
	rc, err := f.Open()
	if err != nil {
		return "", err
	}
	defer func() { _ = rc.Close() }()
	return s.Uploader.Upload(ctx, f.Filename, rc)
}
