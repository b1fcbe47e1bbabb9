package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Spok95/school-attendance/internal/ctxutil"
	"github.com/Spok95/school-attendance/internal/db"
	"github.com/Spok95/school-attendance/internal/metrics"
	"github.com/Spok95/school-attendance/internal/models"
	"github.com/Spok95/school-attendance/internal/schedule"
	"go.uber.org/zap"
)

// CreateSubjectInput приходит уже провалидированным с границы HTTP
// (там своя структура запроса с разбором дат).
type CreateSubjectInput struct {
	Name       string
	TeacherID  string
	StudentIDs []string
	Schedule   []models.ScheduleRule
	StartDate  time.Time
	EndDate    time.Time
}

type UpdateSubjectInput struct {
	Name       string   `json:"name" validate:"required"`
	TeacherID  string   `json:"teacherId" validate:"required,len=24,hexadecimal"`
	StudentIDs []string `json:"studentIds" validate:"required,min=1,dive,len=24,hexadecimal"`
}

// CreateSubject создаёт предмет и синхронно разворачивает его расписание
// в уроки на весь диапазон. Вставка уроков идёт после вставки предмета и не
// транзакционна с ней, но её сбой всегда поднимается наверх — молча предмет
// без уроков не оставляем.
func (s *Service) CreateSubject(ctx context.Context, in CreateSubjectInput) (string, int, error) {
	if err := schedule.ValidateRules(in.Schedule); err != nil {
		return "", 0, fmt.Errorf("%w: %s", ErrValidation, err)
	}
	if err := schedule.ValidateRange(in.StartDate, in.EndDate, s.MaxRangeDays); err != nil {
		return "", 0, fmt.Errorf("%w: %s", ErrValidation, err)
	}

	drafts, err := schedule.Expand(in.StartDate, in.EndDate, in.Schedule, s.TZOffsetHours)
	if err != nil {
		return "", 0, fmt.Errorf("%w: %s", ErrValidation, err)
	}

	dbCtx, cancel := ctxutil.WithDBTimeout(ctx)
	defer cancel()

	subjectID, err := db.InsertSubject(dbCtx, s.DB, &models.Subject{
		Name:               in.Name,
		TeacherID:          in.TeacherID,
		StudentIDs:         in.StudentIDs,
		Schedule:           in.Schedule,
		StartDate:          schedule.StartOfDay(in.StartDate),
		PeriodicityEndDate: schedule.StartOfDay(in.EndDate),
		Active:             true,
	})
	if err != nil {
		return "", 0, fmt.Errorf("вставка предмета: %w", err)
	}

	inserted, err := db.InsertLessons(dbCtx, s.DB, subjectID, in.TeacherID, in.StudentIDs, drafts)
	if err != nil {
		// Предмет уже вставлен; сбой генерации не глотаем, а отдаём наверх.
		s.Log.Error("вставка уроков после создания предмета провалилась",
			zap.String("subject_id", subjectID), zap.Error(err))
		return subjectID, 0, fmt.Errorf("вставка уроков предмета %s: %w", subjectID, err)
	}
	metrics.LessonsGenerated.Add(float64(inserted))
	s.Log.Info("предмет создан",
		zap.String("subject_id", subjectID), zap.Int("lessons", inserted))
	return subjectID, inserted, nil
}

// UpdateSubject меняет имя/учителя/учеников предмета и переносит учителя и
// состав на будущие ещё не проведённые уроки. Завершённые уроки неизменны.
func (s *Service) UpdateSubject(ctx context.Context, now time.Time, id string, in UpdateSubjectInput) error {
	dbCtx, cancel := ctxutil.WithDBTimeout(ctx)
	defer cancel()

	if err := db.UpdateSubjectFields(dbCtx, s.DB, id, in.Name, in.TeacherID, in.StudentIDs); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("%w: предмет %s", ErrNotFound, id)
		}
		return fmt.Errorf("обновление предмета: %w", err)
	}

	today := schedule.StartOfDay(now)
	n, err := db.PropagateSubjectToFutureLessons(dbCtx, s.DB, id, in.TeacherID, in.StudentIDs, today)
	if err != nil {
		return fmt.Errorf("перенос изменений на будущие уроки: %w", err)
	}
	s.Log.Info("предмет обновлён", zap.String("subject_id", id), zap.Int64("lessons_touched", n))
	return nil
}

// DeleteSubject удаляет будущие уроки, затем сам предмет. Порядок сознательно
// обратный исходному: если чистка уроков упадёт, предмет остаётся на месте и
// операцию можно повторить — осиротевших будущих уроков не появляется.
// Прошедшие уроки сохраняются как история с висячей ссылкой на предмет.
func (s *Service) DeleteSubject(ctx context.Context, now time.Time, id string) error {
	dbCtx, cancel := ctxutil.WithDBTimeout(ctx)
	defer cancel()

	today := schedule.StartOfDay(now)
	n, err := db.DeleteLessonsFrom(dbCtx, s.DB, id, today)
	if err != nil {
		return fmt.Errorf("удаление будущих уроков: %w", err)
	}

	if err := db.DeleteSubject(dbCtx, s.DB, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("%w: предмет %s", ErrNotFound, id)
		}
		return fmt.Errorf("удаление предмета: %w", err)
	}
	s.Log.Info("предмет удалён", zap.String("subject_id", id), zap.Int64("future_lessons_removed", n))
	return nil
}

func (s *Service) GetSubject(ctx context.Context, id string) (*models.Subject, error) {
	dbCtx, cancel := ctxutil.WithDBTimeout(ctx)
	defer cancel()
	subject, err := db.GetSubjectByID(dbCtx, s.DB, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: предмет %s", ErrNotFound, id)
		}
		return nil, fmt.Errorf("чтение предмета: %w", err)
	}
	return subject, nil
}

func (s *Service) ListSubjects(ctx context.Context) ([]models.Subject, error) {
	dbCtx, cancel := ctxutil.WithDBTimeout(ctx)
	defer cancel()
	return db.ListSubjects(dbCtx, s.DB)
}
